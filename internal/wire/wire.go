// Package wire implements the low-level stream primitives for seriate's
// binary format: protobuf-style varints plus length-prefixed byte fields,
// over an append-only Writer and a bounds-checked Reader.
//
// Integer encodings follow google.golang.org/protobuf/encoding/protowire so
// that the output stays byte-compatible with protobuf's CodedOutputStream
// conventions: Int32 is a sign-extended 64-bit varint (negative values take
// ten bytes), Uvarint is a plain unsigned varint.
package wire

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

var ErrShortBuffer = errors.New("seriate/wire: short buffer")

// Writer accumulates encoded bytes. The zero value is ready to use.
type Writer struct {
	buf []byte
}

func NewWriter() *Writer { return &Writer{} }

// Bytes returns the accumulated encoding. The slice aliases the writer's
// internal buffer and is invalidated by further writes.
func (w *Writer) Bytes() []byte { return w.buf }

func (w *Writer) Len() int { return len(w.buf) }

func (w *Writer) WriteUvarint(v uint64) { w.buf = protowire.AppendVarint(w.buf, v) }

// WriteInt32 writes v as a sign-extended varint, matching protobuf int32.
func (w *Writer) WriteInt32(v int32) {
	w.buf = protowire.AppendVarint(w.buf, uint64(int64(v)))
}

func (w *Writer) WriteUint64(v uint64) { w.buf = protowire.AppendVarint(w.buf, v) }

func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf = append(w.buf, 1)
	} else {
		w.buf = append(w.buf, 0)
	}
}

func (w *Writer) WriteFloat64(v float64) {
	w.buf = protowire.AppendFixed64(w.buf, math.Float64bits(v))
}

// WriteBytes writes a uvarint length prefix followed by b.
func (w *Writer) WriteBytes(b []byte) {
	w.buf = protowire.AppendBytes(w.buf, b)
}

func (w *Writer) WriteString(s string) {
	w.buf = protowire.AppendString(w.buf, s)
}

// Reader consumes an encoding produced by Writer. All reads are
// bounds-checked; a truncated buffer surfaces ErrShortBuffer.
type Reader struct {
	buf []byte
	off int
}

func NewReader(b []byte) *Reader { return &Reader{buf: b} }

// Len reports the number of unconsumed bytes.
func (r *Reader) Len() int { return len(r.buf) - r.off }

func (r *Reader) ReadUvarint() (uint64, error) {
	v, n := protowire.ConsumeVarint(r.buf[r.off:])
	if n < 0 {
		return 0, fmt.Errorf("uvarint at offset %d: %w", r.off, ErrShortBuffer)
	}
	r.off += n
	return v, nil
}

// ReadInt32 reads a sign-extended varint and truncates it to int32,
// matching protobuf's int32 decoding.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUvarint()
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

func (r *Reader) ReadUint64() (uint64, error) { return r.ReadUvarint() }

func (r *Reader) ReadBool() (bool, error) {
	if r.off >= len(r.buf) {
		return false, fmt.Errorf("bool at offset %d: %w", r.off, ErrShortBuffer)
	}
	b := r.buf[r.off]
	r.off++
	return b != 0, nil
}

func (r *Reader) ReadFloat64() (float64, error) {
	v, n := protowire.ConsumeFixed64(r.buf[r.off:])
	if n < 0 {
		return 0, fmt.Errorf("float64 at offset %d: %w", r.off, ErrShortBuffer)
	}
	r.off += n
	return math.Float64frombits(v), nil
}

// ReadBytes reads a uvarint length prefix and returns a copy of the payload.
func (r *Reader) ReadBytes() ([]byte, error) {
	b, n := protowire.ConsumeBytes(r.buf[r.off:])
	if n < 0 {
		return nil, fmt.Errorf("bytes at offset %d: %w", r.off, ErrShortBuffer)
	}
	r.off += n
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (r *Reader) ReadString() (string, error) {
	b, n := protowire.ConsumeBytes(r.buf[r.off:])
	if n < 0 {
		return "", fmt.Errorf("string at offset %d: %w", r.off, ErrShortBuffer)
	}
	r.off += n
	return string(b), nil
}
