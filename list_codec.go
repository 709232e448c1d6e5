package seriate

import (
	"fmt"
	"reflect"

	"github.com/unkn0wn-root/seriate/internal/wire"
)

// listCodec encodes []any as a count-prefixed sequence of values. Decoding
// is deferred: elements land in a slot array through the deferred lane, and
// the producer returns that same array, so a slot filled late (a
// backreference waiter inside a cycle) is visible in the returned slice.
type listCodec struct{}

func (listCodec) TypeID() string            { return "list" }
func (listCodec) EncodedType() reflect.Type { return reflect.TypeOf([]any(nil)) }

func (listCodec) Serialize(c *SerializationContext, v any, w *wire.Writer) error {
	list := v.([]any)
	w.WriteInt32(int32(len(list)))
	for _, e := range list {
		if err := c.WriteValue(e, w); err != nil {
			return err
		}
	}
	return nil
}

func (listCodec) DeserializeDeferred(c *DeserializationContext, r *wire.Reader) (Producer, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, &InvalidFormatError{Msg: fmt.Sprintf("expected non-negative size: %d", n)}
	}
	slots := make([]any, n)
	for i := range slots {
		i := i
		if err := c.ReadValueDeferred(r, func(v any) { slots[i] = v }); err != nil {
			return nil, err
		}
	}
	return func() (any, error) { return slots, nil }, nil
}
