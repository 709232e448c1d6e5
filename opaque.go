package seriate

import (
	"reflect"

	"github.com/unkn0wn-root/seriate/internal/wire"
)

// NewOpaque adapts a byte-level Encode/Decode pair (see the codecs package)
// into a registry Codec for T. The payload is framed as length-prefixed
// opaque bytes; the inner codec owns everything inside the frame. Values of
// T cannot hold backreferences into the surrounding graph, so use this for
// leaf value types, not containers.
func NewOpaque[T any](id string, inner interface {
	Encode(T) ([]byte, error)
	Decode([]byte) (T, error)
}) Codec {
	return opaqueCodec[T]{id: id, inner: inner}
}

type opaqueCodec[T any] struct {
	id    string
	inner interface {
		Encode(T) ([]byte, error)
		Decode([]byte) (T, error)
	}
}

func (c opaqueCodec[T]) TypeID() string { return c.id }

func (c opaqueCodec[T]) EncodedType() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func (c opaqueCodec[T]) Serialize(_ *SerializationContext, v any, w *wire.Writer) error {
	b, err := c.inner.Encode(v.(T))
	if err != nil {
		return err
	}
	w.WriteBytes(b)
	return nil
}

func (c opaqueCodec[T]) Deserialize(_ *DeserializationContext, r *wire.Reader) (any, error) {
	b, err := r.ReadBytes()
	if err != nil {
		return nil, err
	}
	return c.inner.Decode(b)
}
