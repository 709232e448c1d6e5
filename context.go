package seriate

import (
	"fmt"
	"reflect"

	"github.com/unkn0wn-root/seriate/internal/wire"
)

// Value framing: a varint tag selects nil, a backreference into the memo
// table, or a registry codec (tag-2 indexes the frozen codec list).
const (
	tagNil     = 0
	tagBackref = 1
	tagCodec   = 2 // first codec index
)

// SerializationContext tracks per-call state for one Marshal: the registry
// and the backreference memo. Not safe for concurrent use; Marshal creates a
// fresh context per call.
type SerializationContext struct {
	reg  *Registry
	refs map[refKey]int
	next int // next memo index; incremented for every inline value
}

type refKey struct {
	ptr uintptr
	typ reflect.Type
}

func newSerializationContext(reg *Registry) *SerializationContext {
	return &SerializationContext{reg: reg, refs: make(map[refKey]int)}
}

// refKeyOf returns an identity key for values that can meaningfully recur in
// a graph. Only pointer- and map-shaped values carry a stable identity;
// everything else is re-encoded inline on every occurrence.
func refKeyOf(v any) (refKey, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map:
		return refKey{ptr: rv.Pointer(), typ: rv.Type()}, true
	default:
		return refKey{}, false
	}
}

// WriteValue encodes one value: nil tag, backreference for an already-seen
// identity, or codec tag plus payload. The memo index for an inline value is
// claimed before its payload is written so that a value can reference itself
// through its children.
func (c *SerializationContext) WriteValue(v any, w *wire.Writer) error {
	if v == nil {
		w.WriteUvarint(tagNil)
		return nil
	}
	key, identified := refKeyOf(v)
	if identified {
		if idx, seen := c.refs[key]; seen {
			w.WriteUvarint(tagBackref)
			w.WriteUvarint(uint64(idx))
			return nil
		}
	}
	ent, err := c.reg.lookup(reflect.TypeOf(v))
	if err != nil {
		return err
	}
	w.WriteUvarint(uint64(ent.index) + tagCodec)
	idx := c.next
	c.next++
	if identified {
		c.refs[key] = idx
	}
	return ent.codec.Serialize(c, v, w)
}

// memoSlot is one decoded value's cell in the backreference table. A slot
// for a deferred value stays unresolved until its Producer runs; reads that
// land on it in the deferred lane park a waiter, reads in the full lane fail.
type memoSlot struct {
	resolved bool
	v        any
	waiters  []func(any)
}

// DeserializationContext tracks per-call state for one Unmarshal: the memo
// table (one slot per inline value, in decode order, mirroring the writer's
// index assignment) and the FIFO of pending deferred completions. The drain
// runs completions in enqueue order, which guarantees every producer runs
// strictly after the reads that populate its slots. Single-goroutine.
type DeserializationContext struct {
	reg     *Registry
	memo    []*memoSlot
	pending []func() error
}

func newDeserializationContext(reg *Registry) *DeserializationContext {
	return &DeserializationContext{reg: reg}
}

func (c *DeserializationContext) reserve() *memoSlot {
	s := &memoSlot{}
	c.memo = append(c.memo, s)
	return s
}

func (c *DeserializationContext) resolve(s *memoSlot, v any) {
	s.v = v
	s.resolved = true
	for _, wait := range s.waiters {
		wait(v)
	}
	s.waiters = nil
}

// ReadValue fully decodes the next value. A deferred codec encountered here
// has its producer forced immediately: the completions it scheduled are run
// first, so its slots are populated, then it materializes. A backreference
// into a still-unresolved slot means the stream demands a value from inside
// its own construction, which a full read cannot satisfy.
func (c *DeserializationContext) ReadValue(r *wire.Reader) (any, error) {
	tag, err := r.ReadUvarint()
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagNil:
		return nil, nil
	case tagBackref:
		s, err := c.backref(r)
		if err != nil {
			return nil, err
		}
		if !s.resolved {
			return nil, &InvalidFormatError{Msg: "backreference to a value still under construction"}
		}
		return s.v, nil
	}

	ent, err := c.reg.lookupIndex(tag - tagCodec)
	if err != nil {
		return nil, err
	}
	slot := c.reserve()
	switch cd := ent.codec.(type) {
	case ImmediateCodec:
		v, err := cd.Deserialize(c, r)
		if err != nil {
			return nil, err
		}
		c.resolve(slot, v)
		return v, nil
	case DeferredCodec:
		mark := len(c.pending)
		producer, err := cd.DeserializeDeferred(c, r)
		if err != nil {
			return nil, err
		}
		if err := c.drainFrom(mark); err != nil {
			return nil, err
		}
		v, err := producer()
		if err != nil {
			return nil, err
		}
		c.resolve(slot, v)
		return v, nil
	}
	return nil, fmt.Errorf("seriate: codec %q is neither immediate nor deferred", ent.codec.TypeID())
}

// ReadValueDeferred decodes the next value into done. For immediate codecs
// and resolved backreferences done runs before ReadValueDeferred returns;
// for deferred codecs it runs during the drain, once the value materializes;
// for a backreference into a pending slot it runs when that slot resolves.
// done must not read the stream.
func (c *DeserializationContext) ReadValueDeferred(r *wire.Reader, done func(any)) error {
	tag, err := r.ReadUvarint()
	if err != nil {
		return err
	}
	switch tag {
	case tagNil:
		done(nil)
		return nil
	case tagBackref:
		s, err := c.backref(r)
		if err != nil {
			return err
		}
		if s.resolved {
			done(s.v)
		} else {
			s.waiters = append(s.waiters, done)
		}
		return nil
	}

	ent, err := c.reg.lookupIndex(tag - tagCodec)
	if err != nil {
		return err
	}
	slot := c.reserve()
	switch cd := ent.codec.(type) {
	case ImmediateCodec:
		v, err := cd.Deserialize(c, r)
		if err != nil {
			return err
		}
		c.resolve(slot, v)
		done(v)
		return nil
	case DeferredCodec:
		producer, err := cd.DeserializeDeferred(c, r)
		if err != nil {
			return err
		}
		// Entry reads above were scheduled before this completion, so the
		// FIFO drain populates the producer's slots first.
		c.pending = append(c.pending, func() error {
			v, err := producer()
			if err != nil {
				return err
			}
			c.resolve(slot, v)
			done(v)
			return nil
		})
		return nil
	}
	return fmt.Errorf("seriate: codec %q is neither immediate nor deferred", ent.codec.TypeID())
}

func (c *DeserializationContext) backref(r *wire.Reader) (*memoSlot, error) {
	idx, err := r.ReadUvarint()
	if err != nil {
		return nil, err
	}
	if idx >= uint64(len(c.memo)) {
		return nil, &InvalidFormatError{Msg: fmt.Sprintf("backreference %d out of range (memo size %d)", idx, len(c.memo))}
	}
	return c.memo[idx], nil
}

// drain runs all pending completions in enqueue order.
func (c *DeserializationContext) drain() error {
	return c.drainFrom(0)
}

// drainFrom runs completions scheduled at or after mark, leaving earlier
// ones untouched. Used by full reads to force exactly the work a nested
// deferred codec scheduled.
func (c *DeserializationContext) drainFrom(mark int) error {
	for i := mark; i < len(c.pending); i++ {
		if err := c.pending[i](); err != nil {
			return err
		}
	}
	c.pending = c.pending[:mark]
	return nil
}
