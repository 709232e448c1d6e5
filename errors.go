package seriate

import (
	"fmt"
	"reflect"
)

// InvalidFormatError reports an input stream that cannot describe a valid
// value: a negative entry count, a backreference into a value still under
// construction, trailing bytes after the root value. Always fatal for the
// deserialization call; the stream cannot be re-read into something valid.
type InvalidFormatError struct {
	Msg string
}

func (e *InvalidFormatError) Error() string {
	return "seriate: invalid format: " + e.Msg
}

// NoCodecError reports a value type with no codec in the registry.
type NoCodecError struct {
	Type reflect.Type
}

func (e *NoCodecError) Error() string {
	return fmt.Sprintf("seriate: no codec registered for %v", e.Type)
}

// EntryError wraps a failure while (de)serializing one map entry's value.
// Key holds the entry key's textual representation. ValueType holds the
// value's concrete type name on the serialization side; it is empty when the
// failure happened during deserialization, where the value never resolved.
// Key-side failures are never wrapped in an EntryError.
type EntryError struct {
	Key       string
	ValueType string
	Err       error
}

func (e *EntryError) Error() string {
	if e.ValueType != "" {
		return fmt.Sprintf("seriate: entry value for key %s (type %s): %v", e.Key, e.ValueType, e.Err)
	}
	return fmt.Sprintf("seriate: entry value for key %s: %v", e.Key, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }
