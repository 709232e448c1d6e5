package codecs

import "encoding/json"

// JSON is a Codec that serializes values with encoding/json. The zero value
// is ready to use. Slower and larger than CBOR/msgpack but trivially
// inspectable in stored blobs.
type JSON[V any] struct{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }
func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}
