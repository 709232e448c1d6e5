// Package codecs provides byte-level Encode/Decode pairs for application
// value types. They plug into the serialization framework through
// seriate.NewOpaque, which frames their output as a length-prefixed opaque
// payload.
package codecs

// Codec encodes/decodes values V to []byte.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
