package seriate

import (
	"fmt"
	"reflect"

	"github.com/unkn0wn-root/seriate/bimap"
	"github.com/unkn0wn-root/seriate/internal/wire"
)

// biMapCodec encodes *bimap.BiMap. The iteration order of the deserialized
// map is the same as the original map's.
//
// Decoding is two-phase: DeserializeDeferred allocates the key/value slot
// arrays and dispatches the entry reads, and the returned producer builds
// the map once the context guarantees every slot is populated. Values are
// read with full resolution required: an entry value cannot remain symbolic
// past its entry read, even though the map itself materializes later,
// because the builder hashes values for the inverse mapping.
//
// Uniqueness of keys and of values is enforced only at materialization, by
// bimap.Builder. A serialized bidirectional map cannot contain duplicates,
// so a duplicate here means stream corruption or a codec mismatch, never a
// recoverable input.
type biMapCodec struct{}

func (biMapCodec) TypeID() string            { return "bimap" }
func (biMapCodec) EncodedType() reflect.Type { return reflect.TypeOf((*bimap.BiMap)(nil)) }

func (biMapCodec) Serialize(c *SerializationContext, v any, w *wire.Writer) error {
	m := v.(*bimap.BiMap)
	w.WriteInt32(int32(m.Len()))
	return serializeMapEntries(c, w, m.All())
}

func (biMapCodec) DeserializeDeferred(c *DeserializationContext, r *wire.Reader) (Producer, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, &InvalidFormatError{Msg: fmt.Sprintf("expected non-negative size: %d", n)}
	}
	if n == 0 {
		return func() (any, error) { return bimap.Empty(), nil }, nil
	}

	buf := newEntryBuffer(int(n))
	if err := deserializeMapEntries(c, r, true, buf.keys, buf.values); err != nil {
		return nil, err
	}
	return buf.materialize, nil
}

// entryBuffer holds the index-aligned slot arrays between allocation and
// materialization. materialize runs exactly once, after the context's order
// guarantee; there is no completeness counter and no lock.
type entryBuffer struct {
	keys   []any
	values []any
}

func newEntryBuffer(n int) *entryBuffer {
	return &entryBuffer{
		keys:   make([]any, n),
		values: make([]any, n),
	}
}

func (b *entryBuffer) materialize() (any, error) {
	builder := bimap.NewBuilderSized(len(b.keys))
	for i := range b.keys {
		builder.Put(b.keys[i], b.values[i])
	}
	m, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return m, nil
}
