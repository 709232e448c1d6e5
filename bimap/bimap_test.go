package bimap

import (
	"errors"
	"testing"
)

func TestEmptyCanonical(t *testing.T) {
	if Empty() != Empty() {
		t.Fatalf("Empty must return the shared instance")
	}
	if Empty().Len() != 0 {
		t.Fatalf("empty map has non-zero length")
	}
	m, err := NewBuilder().Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if m != Empty() {
		t.Fatalf("building zero entries must yield the canonical empty map")
	}
}

func TestBothDirections(t *testing.T) {
	m := Of("a", int64(1), "b", int64(2), "c", int64(3))

	if m.Len() != 3 {
		t.Fatalf("Len: got %d want 3", m.Len())
	}
	if v, ok := m.Get("b"); !ok || v != int64(2) {
		t.Fatalf("Get(b): got %v ok=%v", v, ok)
	}
	if k, ok := m.GetInverse(int64(3)); !ok || k != "c" {
		t.Fatalf("GetInverse(3): got %v ok=%v", k, ok)
	}
	if _, ok := m.Get("zz"); ok {
		t.Fatalf("Get on absent key must miss")
	}
	if m.ContainsValue(int64(9)) {
		t.Fatalf("ContainsValue on absent value must be false")
	}
}

func TestInsertionOrderPreserved(t *testing.T) {
	m := Of("z", int64(0), "a", int64(1), "m", int64(2))

	wantKeys := []any{"z", "a", "m"}
	gotKeys := m.Keys()
	if len(gotKeys) != len(wantKeys) {
		t.Fatalf("Keys length: got %d want %d", len(gotKeys), len(wantKeys))
	}
	for i := range wantKeys {
		if gotKeys[i] != wantKeys[i] {
			t.Fatalf("Keys[%d]: got %v want %v", i, gotKeys[i], wantKeys[i])
		}
	}

	i := 0
	for k, v := range m.All() {
		if k != wantKeys[i] || v != int64(i) {
			t.Fatalf("All[%d]: got %v:%v", i, k, v)
		}
		i++
	}
	if i != 3 {
		t.Fatalf("All yielded %d entries", i)
	}
}

func TestDuplicateKeyRejected(t *testing.T) {
	_, err := NewBuilder().
		Put("k", int64(1)).
		Put("k", int64(2)).
		Build()
	var dup *DuplicateKeyError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateKeyError, got %v", err)
	}
	if dup.Key != "k" {
		t.Fatalf("offending key: got %v", dup.Key)
	}
}

func TestDuplicateValueRejected(t *testing.T) {
	_, err := NewBuilder().
		Put("a", int64(7)).
		Put("b", int64(7)).
		Build()
	var dup *DuplicateValueError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateValueError, got %v", err)
	}
	if dup.Value != int64(7) {
		t.Fatalf("offending value: got %v", dup.Value)
	}
}

func TestUnhashableKeyRejected(t *testing.T) {
	_, err := NewBuilder().
		Put([]byte{1}, int64(1)).
		Build()
	var uh *UnhashableKeyError
	if !errors.As(err, &uh) {
		t.Fatalf("expected UnhashableKeyError, got %v", err)
	}
}

func TestUnhashableValueRejected(t *testing.T) {
	_, err := NewBuilder().
		Put("k", []any{int64(1)}).
		Build()
	var uh *UnhashableValueError
	if !errors.As(err, &uh) {
		t.Fatalf("expected UnhashableValueError, got %v", err)
	}
}

func TestNilKeyAndValueAllowed(t *testing.T) {
	m, err := NewBuilder().
		Put(nil, int64(1)).
		Put("k", nil).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if v, ok := m.Get(nil); !ok || v != int64(1) {
		t.Fatalf("Get(nil): got %v ok=%v", v, ok)
	}
	if k, ok := m.GetInverse(nil); !ok || k != "k" {
		t.Fatalf("GetInverse(nil): got %v ok=%v", k, ok)
	}
}

func TestEqual(t *testing.T) {
	a := Of("x", int64(1), "y", int64(2))
	b := Of("x", int64(1), "y", int64(2))
	c := Of("y", int64(2), "x", int64(1)) // same content, different order

	if !a.Equal(b) {
		t.Fatalf("a and b must be equal")
	}
	if a.Equal(c) {
		t.Fatalf("order differs, maps must not compare equal")
	}
	if !Empty().Equal(Empty()) {
		t.Fatalf("empty maps must be equal")
	}
}
