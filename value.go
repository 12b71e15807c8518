package mirror

import (
	"reflect"
	"time"

	corereflect "github.com/anoideaopen/mirror/core/reflect"
	"github.com/anoideaopen/mirror/core/types"
	"github.com/spf13/cast"
)

// ValueHandle wraps an ordinary value. Values that are not addressable are
// copied into addressable storage when wrapped, so pointer-receiver methods
// and unexported fields are reachable; a Handle of a struct field shares the
// field's storage. The ValueHandle of nil reports KindNull and its
// reflective operations fail with ErrNilReceiver.
type ValueHandle struct {
	chain
	valueOps
}

func newValue(prev Handle, v reflect.Value) *ValueHandle {
	h := &ValueHandle{chain: chain{prev: prev}}
	h.valueOps = valueOps{self: h, v: addressable(v)}
	return h
}

func (h *ValueHandle) Back() Handle { return h.backOr(h) }

func (h *ValueHandle) Release() Handle {
	h.cut()
	return h
}

func (h *ValueHandle) Unwrap() any {
	if !h.v.IsValid() {
		return nil
	}
	return h.v.Interface()
}

func (h *ValueHandle) Type() reflect.Type {
	if !h.v.IsValid() {
		return types.NilType
	}
	return h.v.Type()
}

func (h *ValueHandle) Kind() Kind {
	if !h.v.IsValid() {
		return KindNull
	}
	return KindValue
}

func (h *ValueHandle) Is(other Handle) bool { return same(h, other) }

func (h *ValueHandle) String() string { return describe(h) }

// FieldValues returns Handles of every field of a struct value, those of
// embedded structs included unless shadowed. Non-struct values have none.
func (h *ValueHandle) FieldValues() (map[string]Handle, error) {
	if !h.v.IsValid() {
		return nil, nilReceiver(opGet, "")
	}
	recv := receiverOf(h.v)
	subject := recv.Type()

	out := make(map[string]Handle)
	for _, f := range env().resolver.Fields(subject) {
		v, _, err := f.Value(recv)
		if err != nil {
			return nil, newError(opGet, f.Name, subject, err)
		}
		out[f.Name] = wrapValue(h, v)
	}
	return out, nil
}

// Methods returns the sorted names of the methods Call can reach on the value.
func (h *ValueHandle) Methods() []string {
	if !h.v.IsValid() {
		return []string{}
	}
	return corereflect.MethodNames(receiverOf(h.v).Type())
}

// AsString converts the value to a string.
func (h *ValueHandle) AsString() (string, error) { return cast.ToStringE(h.Unwrap()) }

// AsInt converts the value to an int.
func (h *ValueHandle) AsInt() (int, error) { return cast.ToIntE(h.Unwrap()) }

// AsInt64 converts the value to an int64.
func (h *ValueHandle) AsInt64() (int64, error) { return cast.ToInt64E(h.Unwrap()) }

// AsFloat64 converts the value to a float64.
func (h *ValueHandle) AsFloat64() (float64, error) { return cast.ToFloat64E(h.Unwrap()) }

// AsBool converts the value to a bool.
func (h *ValueHandle) AsBool() (bool, error) { return cast.ToBoolE(h.Unwrap()) }

// AsDuration converts the value to a time.Duration.
func (h *ValueHandle) AsDuration() (time.Duration, error) { return cast.ToDurationE(h.Unwrap()) }

// AsStringSlice converts the value to a []string.
func (h *ValueHandle) AsStringSlice() ([]string, error) { return cast.ToStringSliceE(h.Unwrap()) }
