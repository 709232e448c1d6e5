package wire

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestUvarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 1 << 21, math.MaxUint64}
	w := NewWriter()
	for _, v := range values {
		w.WriteUvarint(v)
	}
	r := NewReader(w.Bytes())
	for _, want := range values {
		got, err := r.ReadUvarint()
		if err != nil {
			t.Fatalf("ReadUvarint: %v", err)
		}
		if got != want {
			t.Fatalf("uvarint mismatch: got %d want %d", got, want)
		}
	}
	if r.Len() != 0 {
		t.Fatalf("expected full consumption, %d bytes left", r.Len())
	}
}

func TestInt32RoundTripIncludingNegative(t *testing.T) {
	values := []int32{0, 1, -1, 42, -42, math.MaxInt32, math.MinInt32}
	w := NewWriter()
	for _, v := range values {
		w.WriteInt32(v)
	}
	r := NewReader(w.Bytes())
	for _, want := range values {
		got, err := r.ReadInt32()
		if err != nil {
			t.Fatalf("ReadInt32: %v", err)
		}
		if got != want {
			t.Fatalf("int32 mismatch: got %d want %d", got, want)
		}
	}
}

// Negative int32 values are sign-extended to 64 bits, so they occupy ten
// bytes on the wire exactly like protobuf's int32.
func TestNegativeInt32IsTenBytes(t *testing.T) {
	w := NewWriter()
	w.WriteInt32(-1)
	if w.Len() != 10 {
		t.Fatalf("expected 10-byte encoding for -1, got %d", w.Len())
	}
}

func TestBytesAndStringRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteBytes([]byte{0xDE, 0xAD})
	w.WriteBytes(nil)
	w.WriteString("héllo")
	w.WriteString("")

	r := NewReader(w.Bytes())
	b, err := r.ReadBytes()
	if err != nil || !bytes.Equal(b, []byte{0xDE, 0xAD}) {
		t.Fatalf("bytes mismatch: %x err=%v", b, err)
	}
	b, err = r.ReadBytes()
	if err != nil || len(b) != 0 {
		t.Fatalf("empty bytes mismatch: %x err=%v", b, err)
	}
	s, err := r.ReadString()
	if err != nil || s != "héllo" {
		t.Fatalf("string mismatch: %q err=%v", s, err)
	}
	s, err = r.ReadString()
	if err != nil || s != "" {
		t.Fatalf("empty string mismatch: %q err=%v", s, err)
	}
}

func TestBoolAndFloat64RoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteBool(true)
	w.WriteBool(false)
	w.WriteFloat64(3.5)
	w.WriteFloat64(math.Inf(-1))

	r := NewReader(w.Bytes())
	if v, err := r.ReadBool(); err != nil || !v {
		t.Fatalf("bool true: got %v err=%v", v, err)
	}
	if v, err := r.ReadBool(); err != nil || v {
		t.Fatalf("bool false: got %v err=%v", v, err)
	}
	if v, err := r.ReadFloat64(); err != nil || v != 3.5 {
		t.Fatalf("float64: got %v err=%v", v, err)
	}
	if v, err := r.ReadFloat64(); err != nil || !math.IsInf(v, -1) {
		t.Fatalf("float64 -inf: got %v err=%v", v, err)
	}
}

func TestTruncatedReadsFail(t *testing.T) {
	w := NewWriter()
	w.WriteBytes([]byte("payload"))
	enc := w.Bytes()

	r := NewReader(enc[:len(enc)-3])
	if _, err := r.ReadBytes(); !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("expected ErrShortBuffer, got %v", err)
	}

	r = NewReader(nil)
	if _, err := r.ReadUvarint(); !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("expected ErrShortBuffer on empty uvarint, got %v", err)
	}
	if _, err := r.ReadBool(); !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("expected ErrShortBuffer on empty bool, got %v", err)
	}
	if _, err := r.ReadFloat64(); !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("expected ErrShortBuffer on empty float64, got %v", err)
	}

	// continuation bit set, stream ends
	r = NewReader([]byte{0x80})
	if _, err := r.ReadUvarint(); !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("expected ErrShortBuffer on dangling varint, got %v", err)
	}
}

func TestReadBytesCopies(t *testing.T) {
	w := NewWriter()
	w.WriteBytes([]byte{1, 2, 3})
	enc := w.Bytes()

	r := NewReader(enc)
	b, err := r.ReadBytes()
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	enc[len(enc)-1] = 0xFF
	if b[2] != 3 {
		t.Fatalf("ReadBytes must copy out of the source buffer")
	}
}
