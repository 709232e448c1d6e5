package seriate

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/unkn0wn-root/seriate/internal/wire"
)

// RegistryBuilder accumulates codecs before the registry is frozen.
// NewRegistryBuilder seeds the framework's built-in codecs (leaf types, list,
// bimap); applications Add their own value codecs and then Build exactly
// once, at startup.
type RegistryBuilder struct {
	// Logger receives registration events on Build. Nil disables logging.
	Logger Logger

	codecs []Codec
}

func NewRegistryBuilder() *RegistryBuilder {
	b := &RegistryBuilder{}
	b.Add(stringCodec{})
	b.Add(int64Codec{})
	b.Add(boolCodec{})
	b.Add(float64Codec{})
	b.Add(bytesCodec{})
	b.Add(listCodec{})
	b.Add(biMapCodec{})
	return b
}

// Add registers a codec. Conflicts surface in Build, not here.
func (b *RegistryBuilder) Add(c Codec) *RegistryBuilder {
	b.codecs = append(b.codecs, c)
	return b
}

type registryEntry struct {
	codec Codec
	index int
}

// Registry is the frozen codec table. Wire indexes are assigned by sorted
// TypeID, so registries built from the same codec set are wire-compatible
// regardless of registration order. Immutable after Build; safe for
// concurrent use.
type Registry struct {
	byType  map[reflect.Type]*registryEntry
	byIndex []*registryEntry
	log     Logger
}

// Build freezes the builder into a Registry. It fails on duplicate TypeIDs,
// duplicate encoded types, and codecs that implement neither (or both) of
// the decode shapes.
func (b *RegistryBuilder) Build() (*Registry, error) {
	log := coalesce[Logger](b.Logger, NopLogger{})

	sorted := make([]Codec, len(b.codecs))
	copy(sorted, b.codecs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].TypeID() < sorted[j].TypeID() })

	reg := &Registry{
		byType:  make(map[reflect.Type]*registryEntry, len(sorted)),
		byIndex: make([]*registryEntry, 0, len(sorted)),
		log:     log,
	}
	seenID := make(map[string]bool, len(sorted))
	for _, c := range sorted {
		id := c.TypeID()
		if seenID[id] {
			return nil, fmt.Errorf("seriate: duplicate codec type id %q", id)
		}
		seenID[id] = true

		_, immediate := c.(ImmediateCodec)
		_, deferred := c.(DeferredCodec)
		if immediate == deferred {
			return nil, fmt.Errorf("seriate: codec %q must implement exactly one of Deserialize and DeserializeDeferred", id)
		}

		typ := c.EncodedType()
		if _, dup := reg.byType[typ]; dup {
			return nil, fmt.Errorf("seriate: duplicate codec for type %v", typ)
		}
		ent := &registryEntry{codec: c, index: len(reg.byIndex)}
		reg.byType[typ] = ent
		reg.byIndex = append(reg.byIndex, ent)
		log.Debug("registered codec", Fields{"typeID": id, "index": ent.index, "deferred": deferred})
	}
	return reg, nil
}

// MustBuild is like Build but panics on error. For package-level registries.
func (b *RegistryBuilder) MustBuild() *Registry {
	r, err := b.Build()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) lookup(t reflect.Type) (*registryEntry, error) {
	ent, ok := r.byType[t]
	if !ok {
		return nil, &NoCodecError{Type: t}
	}
	return ent, nil
}

func (r *Registry) lookupIndex(idx uint64) (*registryEntry, error) {
	if idx >= uint64(len(r.byIndex)) {
		return nil, &InvalidFormatError{Msg: fmt.Sprintf("codec index %d out of range (%d registered)", idx, len(r.byIndex))}
	}
	return r.byIndex[idx], nil
}

// Marshal serializes one value (and everything it references) to bytes.
func (r *Registry) Marshal(v any) ([]byte, error) {
	w := wire.NewWriter()
	c := newSerializationContext(r)
	if err := c.WriteValue(v, w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Unmarshal decodes one value from data. The root is read through the
// deferred lane, then the pending queue is drained, which materializes every
// producer strictly after its slots are populated. Trailing bytes after the
// root value are a format error.
func (r *Registry) Unmarshal(data []byte) (any, error) {
	rd := wire.NewReader(data)
	c := newDeserializationContext(r)

	var root any
	if err := c.ReadValueDeferred(rd, func(v any) { root = v }); err != nil {
		return nil, err
	}
	if err := c.drain(); err != nil {
		return nil, err
	}
	if rd.Len() != 0 {
		return nil, &InvalidFormatError{Msg: fmt.Sprintf("%d trailing bytes after root value", rd.Len())}
	}
	return root, nil
}
