package resolve

import (
	"fmt"
	"reflect"
	"unsafe"
)

// Unlock returns a view of v that can be read, set and called even though it
// was reached through an unexported field. Values that are already accessible
// are returned as they are; values that are not addressable cannot be
// unlocked and are returned unchanged. The second result reports whether an
// unlock took place.
func Unlock(v reflect.Value) (reflect.Value, bool) {
	if !v.IsValid() || v.CanInterface() || !v.CanAddr() {
		return v, false
	}
	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem(), true //nolint:gosec
}

// walk follows an index path from v through struct fields, dereferencing
// pointers on the way and unlocking every step that needs it.
func walk(v reflect.Value, path []int) (reflect.Value, bool, error) {
	unlocked := false
	for _, i := range path {
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, false, fmt.Errorf("%w: nil embedded pointer of type %s", ErrNilReceiver, v.Type())
			}
			v = v.Elem()
		}
		if v.Kind() != reflect.Struct {
			return reflect.Value{}, false, fmt.Errorf("%w: %s is not a struct", ErrInaccessible, v.Type())
		}
		if i >= v.NumField() {
			return reflect.Value{}, false, fmt.Errorf("%w: %s has no field %d", ErrInvalidArgumentValue, v.Type(), i)
		}

		var ok bool
		v, ok = Unlock(v.Field(i))
		unlocked = unlocked || ok
	}
	return v, unlocked, nil
}

// Receiver navigates from v along the embedded-field path of m to the value
// that declares the method.
func (m *Member) Receiver(v reflect.Value) (reflect.Value, error) {
	if !v.IsValid() {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrNilReceiver, m)
	}
	r, _, err := walk(v, m.Path)
	return r, err
}

// Value returns the variable of a KindVar member or the field of a KindField
// member read from recv. The second result reports whether an unexported
// field had to be unlocked on the way.
func (m *Member) Value(recv reflect.Value) (reflect.Value, bool, error) {
	switch m.Kind {
	case KindVar:
		return m.fn.Elem(), false, nil
	case KindField:
		if !recv.IsValid() || recv.Kind() == reflect.Pointer && recv.IsNil() {
			return reflect.Value{}, false, fmt.Errorf("%w: %s", ErrNilReceiver, m)
		}
		v, unlocked, err := walk(recv, m.Path)
		if err != nil {
			return reflect.Value{}, false, err
		}
		if !v.CanInterface() {
			return reflect.Value{}, false, fmt.Errorf("%w: %s: receiver is not addressable", ErrInaccessible, m)
		}
		return v, unlocked, nil
	default:
		return reflect.Value{}, false, fmt.Errorf("%w: %s is not a field", ErrInaccessible, m)
	}
}

// Set assigns value to the field or variable m reads from recv.
func (m *Member) Set(recv reflect.Value, value any) error {
	v, _, err := m.Value(recv)
	if err != nil {
		return err
	}
	if !v.CanSet() {
		return fmt.Errorf("%w: %s: value is not settable", ErrInaccessible, m)
	}

	cv, err := convert(value, v.Type())
	if err != nil {
		return fmt.Errorf("%w: set %s", err, m)
	}
	v.Set(cv)

	return nil
}
