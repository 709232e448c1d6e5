package seriate

import (
	"reflect"

	"github.com/unkn0wn-root/seriate/internal/wire"
)

// Built-in leaf codecs for the primitive value types the framework handles
// natively. Registered by NewRegistryBuilder.

type stringCodec struct{}

func (stringCodec) TypeID() string            { return "string" }
func (stringCodec) EncodedType() reflect.Type { return reflect.TypeOf("") }

func (stringCodec) Serialize(_ *SerializationContext, v any, w *wire.Writer) error {
	w.WriteString(v.(string))
	return nil
}

func (stringCodec) Deserialize(_ *DeserializationContext, r *wire.Reader) (any, error) {
	return r.ReadString()
}

type int64Codec struct{}

func (int64Codec) TypeID() string            { return "int64" }
func (int64Codec) EncodedType() reflect.Type { return reflect.TypeOf(int64(0)) }

func (int64Codec) Serialize(_ *SerializationContext, v any, w *wire.Writer) error {
	w.WriteUvarint(uint64(v.(int64)))
	return nil
}

func (int64Codec) Deserialize(_ *DeserializationContext, r *wire.Reader) (any, error) {
	u, err := r.ReadUvarint()
	if err != nil {
		return nil, err
	}
	return int64(u), nil
}

type boolCodec struct{}

func (boolCodec) TypeID() string            { return "bool" }
func (boolCodec) EncodedType() reflect.Type { return reflect.TypeOf(false) }

func (boolCodec) Serialize(_ *SerializationContext, v any, w *wire.Writer) error {
	w.WriteBool(v.(bool))
	return nil
}

func (boolCodec) Deserialize(_ *DeserializationContext, r *wire.Reader) (any, error) {
	return r.ReadBool()
}

type float64Codec struct{}

func (float64Codec) TypeID() string            { return "float64" }
func (float64Codec) EncodedType() reflect.Type { return reflect.TypeOf(float64(0)) }

func (float64Codec) Serialize(_ *SerializationContext, v any, w *wire.Writer) error {
	w.WriteFloat64(v.(float64))
	return nil
}

func (float64Codec) Deserialize(_ *DeserializationContext, r *wire.Reader) (any, error) {
	return r.ReadFloat64()
}

type bytesCodec struct{}

func (bytesCodec) TypeID() string            { return "bytes" }
func (bytesCodec) EncodedType() reflect.Type { return reflect.TypeOf([]byte(nil)) }

func (bytesCodec) Serialize(_ *SerializationContext, v any, w *wire.Writer) error {
	w.WriteBytes(v.([]byte))
	return nil
}

func (bytesCodec) Deserialize(_ *DeserializationContext, r *wire.Reader) (any, error) {
	return r.ReadBytes()
}
