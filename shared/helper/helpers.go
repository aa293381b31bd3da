package helper

import (
	"fmt"
)

// GetTypedValueOf2 asserts the result of a getter function to the expected type T.
// ok is false when the getter finds nothing or the value has another type.
func GetTypedValueOf2[T any](getFn func() (any, bool)) (res T, ok bool) {
	var raw any
	if raw, ok = getFn(); ok {
		res, ok = raw.(T)
	}
	return
}

// ErrUnexpectedType is returned when a binding holds a value of the wrong type.
var ErrUnexpectedType = fmt.Errorf("unexpected type")

// LookupTyped fetches key from bindings as a T.
// A missing key is not an error: found is false and val is the zero value.
func LookupTyped[T any](bindings map[string]any, key string) (val T, found bool, err error) {
	raw, found := bindings[key]
	if !found {
		return
	}
	val, ok := GetTypedValueOf2[T](func() (any, bool) { return raw, true })
	if !ok {
		err = fmt.Errorf("%w: %s is %T", ErrUnexpectedType, key, raw)
	}
	return
}
