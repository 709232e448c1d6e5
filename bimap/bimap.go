// Package bimap provides an immutable, insertion-order-preserving
// bidirectional map: both the key→value and value→key mappings are
// functions, enforced at construction time by rejecting duplicate keys
// and duplicate values.
//
// Keys and values must be Go-comparable; uniqueness is checked with the
// built-in map, and Build rejects non-comparable keys and values with typed
// errors rather than panicking. A BiMap is never mutated after Build, so
// instances are safe to share across goroutines without locking.
package bimap

import (
	"fmt"
	"iter"
)

// BiMap is an immutable bidirectional mapping. The zero value is an empty
// map; prefer Empty for the shared canonical instance.
type BiMap struct {
	forward  map[any]any
	backward map[any]any
	order    []any // keys in insertion order
}

var empty = &BiMap{}

// Empty returns the canonical empty BiMap. The same instance is returned on
// every call.
func Empty() *BiMap { return empty }

// Of builds a BiMap from alternating key, value arguments and panics on
// duplicates or an odd argument count. Intended for literals in tests and
// package-level variables; use a Builder for data-driven construction.
func Of(pairs ...any) *BiMap {
	if len(pairs)%2 != 0 {
		panic("bimap: Of requires an even number of arguments")
	}
	b := NewBuilderSized(len(pairs) / 2)
	for i := 0; i < len(pairs); i += 2 {
		b.Put(pairs[i], pairs[i+1])
	}
	return b.MustBuild()
}

// Len returns the number of entries. Len() equals the number of distinct
// keys and the number of distinct values.
func (m *BiMap) Len() int { return len(m.order) }

// Get returns the value mapped to key.
func (m *BiMap) Get(key any) (any, bool) {
	v, ok := m.forward[key]
	return v, ok
}

// GetInverse returns the key mapped to value.
func (m *BiMap) GetInverse(value any) (any, bool) {
	k, ok := m.backward[value]
	return k, ok
}

func (m *BiMap) ContainsKey(key any) bool {
	_, ok := m.forward[key]
	return ok
}

func (m *BiMap) ContainsValue(value any) bool {
	_, ok := m.backward[value]
	return ok
}

// Keys returns the keys in insertion order. The slice is a copy.
func (m *BiMap) Keys() []any {
	out := make([]any, len(m.order))
	copy(out, m.order)
	return out
}

// All iterates entries in insertion order.
func (m *BiMap) All() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		for _, k := range m.order {
			if !yield(k, m.forward[k]) {
				return
			}
		}
	}
}

// Equal reports whether m and o hold the same entries in the same order.
func (m *BiMap) Equal(o *BiMap) bool {
	if m.Len() != o.Len() {
		return false
	}
	for i, k := range m.order {
		if o.order[i] != k || m.forward[k] != o.forward[k] {
			return false
		}
	}
	return true
}

func (m *BiMap) String() string {
	s := "bimap{"
	for i, k := range m.order {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%v:%v", k, m.forward[k])
	}
	return s + "}"
}
