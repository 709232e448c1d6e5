package seriate

import (
	"fmt"
	"iter"

	"github.com/unkn0wn-root/seriate/internal/wire"
)

// serializeMapEntries writes one (key, value) pair per entry, in iteration
// order. A failure while writing a value is wrapped in an *EntryError
// carrying the key's text and the value's concrete type name; key failures
// pass through unwrapped so a composite key's own error message is not
// doubled up.
func serializeMapEntries(c *SerializationContext, w *wire.Writer, entries iter.Seq2[any, any]) error {
	var entryErr error
	for k, v := range entries {
		if err := c.WriteValue(k, w); err != nil {
			entryErr = err
			break
		}
		if err := c.WriteValue(v, w); err != nil {
			entryErr = &EntryError{
				Key:       fmt.Sprintf("%v", k),
				ValueType: fmt.Sprintf("%T", v),
				Err:       err,
			}
			break
		}
	}
	return entryErr
}

// deserializeMapEntries populates the index-aligned keys and values slot
// arrays, one serialized entry per index. Keys are always read fully. Values
// are read fully when fullValues is set; otherwise they arrive through the
// deferred lane and may land in their slot after this call returns. A value
// failure is wrapped in an *EntryError carrying the key's text (no value
// type: the value never resolved); key failures pass through unwrapped.
func deserializeMapEntries(c *DeserializationContext, r *wire.Reader, fullValues bool, keys, values []any) error {
	for i := range keys {
		k, err := c.ReadValue(r)
		if err != nil {
			return err
		}
		keys[i] = k

		if fullValues {
			v, err := c.ReadValue(r)
			if err != nil {
				return &EntryError{Key: fmt.Sprintf("%v", k), Err: err}
			}
			values[i] = v
			continue
		}

		i := i
		if err := c.ReadValueDeferred(r, func(v any) { values[i] = v }); err != nil {
			return &EntryError{Key: fmt.Sprintf("%v", k), Err: err}
		}
	}
	return nil
}
