package bimap

import (
	"fmt"
	"reflect"
)

// DuplicateKeyError reports two entries sharing a key at Build time.
type DuplicateKeyError struct {
	Key any
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("bimap: duplicate key %v", e.Key)
}

// DuplicateValueError reports two entries sharing a value at Build time.
type DuplicateValueError struct {
	Value any
}

func (e *DuplicateValueError) Error() string {
	return fmt.Sprintf("bimap: duplicate value %v", e.Value)
}

// UnhashableKeyError reports a key at Build time whose type is not
// comparable and therefore cannot be hashed for the forward mapping.
type UnhashableKeyError struct {
	Key any
}

func (e *UnhashableKeyError) Error() string {
	return fmt.Sprintf("bimap: unhashable key type %T", e.Key)
}

// UnhashableValueError reports a value at Build time whose type is not
// comparable and therefore cannot be hashed for the inverse mapping.
type UnhashableValueError struct {
	Value any
}

func (e *UnhashableValueError) Error() string {
	return fmt.Sprintf("bimap: unhashable value type %T", e.Value)
}

// hashable reports whether v can be used as a map key. The nil interface
// hashes fine; anything else must have a comparable dynamic type.
func hashable(v any) bool {
	if v == nil {
		return true
	}
	return reflect.TypeOf(v).Comparable()
}

// Builder accumulates entries for a BiMap. Put never fails; uniqueness of
// keys and values is enforced once, in Build. A Builder is single-use.
type Builder struct {
	keys   []any
	values []any
}

func NewBuilder() *Builder { return &Builder{} }

// NewBuilderSized pre-allocates for n entries.
func NewBuilderSized(n int) *Builder {
	return &Builder{
		keys:   make([]any, 0, n),
		values: make([]any, 0, n),
	}
}

// Put appends an entry. Insertion order is the iteration order of the built
// map. Both key and value must be comparable.
func (b *Builder) Put(key, value any) *Builder {
	b.keys = append(b.keys, key)
	b.values = append(b.values, value)
	return b
}

// Build constructs the immutable map. It fails with *UnhashableKeyError or
// *UnhashableValueError on the first entry whose key or value is not
// comparable, with *DuplicateKeyError on the first repeated key, and with
// *DuplicateValueError on the first repeated value, checked in insertion
// order with keys checked before values.
func (b *Builder) Build() (*BiMap, error) {
	if len(b.keys) == 0 {
		return Empty(), nil
	}
	m := &BiMap{
		forward:  make(map[any]any, len(b.keys)),
		backward: make(map[any]any, len(b.keys)),
		order:    make([]any, 0, len(b.keys)),
	}
	for i, k := range b.keys {
		v := b.values[i]
		// guard before any map access: hashing an unhashable key panics
		if !hashable(k) {
			return nil, &UnhashableKeyError{Key: k}
		}
		if !hashable(v) {
			return nil, &UnhashableValueError{Value: v}
		}
		if _, dup := m.forward[k]; dup {
			return nil, &DuplicateKeyError{Key: k}
		}
		if _, dup := m.backward[v]; dup {
			return nil, &DuplicateValueError{Value: v}
		}
		m.forward[k] = v
		m.backward[v] = k
		m.order = append(m.order, k)
	}
	return m, nil
}

// MustBuild is like Build but panics on duplicates. Handy for literals.
func (b *Builder) MustBuild() *BiMap {
	m, err := b.Build()
	if err != nil {
		panic(err)
	}
	return m
}
