package seriate

import (
	"reflect"

	"github.com/unkn0wn-root/seriate/internal/wire"
)

// Producer stands in for a not-yet-finalized decoded value. The context
// invokes it exactly once, after every slot the producing codec allocated is
// guaranteed populated.
type Producer func() (any, error)

// Codec encodes and decodes values of exactly one Go type. Implementations
// must additionally satisfy ImmediateCodec or DeferredCodec; Registry.Build
// rejects codecs that satisfy neither or both.
//
// TypeID is the stable wire identity: codec indexes are assigned from the
// sorted TypeID list at Build time, so two registries built from the same
// codec set agree on the wire format.
type Codec interface {
	TypeID() string
	EncodedType() reflect.Type
	Serialize(c *SerializationContext, v any, w *wire.Writer) error
}

// ImmediateCodec decodes its value synchronously.
type ImmediateCodec interface {
	Codec
	Deserialize(c *DeserializationContext, r *wire.Reader) (any, error)
}

// DeferredCodec decodes in two phases: DeserializeDeferred allocates slots
// and dispatches entry reads (which may complete later via the context's
// pending queue), returning a Producer that materializes the final value.
// Immutable containers whose elements may arrive out of order use this shape.
type DeferredCodec interface {
	Codec
	DeserializeDeferred(c *DeserializationContext, r *wire.Reader) (Producer, error)
}
