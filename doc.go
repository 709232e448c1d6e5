// Package seriate implements a binary serialization framework for object
// graphs with deferred, cycle-tolerant reconstruction. Codecs are registered
// per Go type in a Registry that is resolved once at startup; values are
// written as a varint codec tag followed by the codec's payload, with
// backreferences for values that appear more than once in a graph.
//
// Components:
//   - Codec: per-type encode/decode. Immediate codecs return their value
//     synchronously; deferred codecs return a Producer that materializes the
//     value once all of its slots are populated (two-phase decode).
//   - Registry: frozen codec table with stable wire indexes, plus the
//     top-level Marshal/Unmarshal entry points.
//   - bimap: immutable insertion-ordered bidirectional map; its codec is the
//     canonical deferred container codec.
//   - codecs: opaque leaf codecs (CBOR, msgpack, JSON, protobuf) bridged into
//     the registry for application value types.
//   - store + Archive: content-addressed blob storage for serialized graphs
//     (Ristretto, BigCache, Redis backends).
//
// Deferred decode:
//
//	producer, _ := codec.DeserializeDeferred(ctx, r) // allocates slots, dispatches entry reads
//	// the context drains pending completions; slots fill strictly before
//	v, _ := producer() // materializes exactly once
package seriate
