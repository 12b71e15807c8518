package mirror

import (
	"reflect"

	"github.com/anoideaopen/mirror/core/types"
)

// NullHandle stands for a nil value. Every reflective operation on it fails
// with ErrNilReceiver.
type NullHandle struct {
	chain
}

var root = &NullHandle{}

// Null returns the root Null Handle, the start of every chain.
func Null() *NullHandle {
	return root
}

func newNull(prev Handle) *NullHandle {
	return &NullHandle{chain: chain{prev: prev}}
}

// Back returns the predecessor, or the Handle itself at the root of a chain.
func (h *NullHandle) Back() Handle { return h.backOr(h) }

func (h *NullHandle) Release() Handle {
	if h != root {
		h.cut()
	}
	return h
}

func (h *NullHandle) Unwrap() any { return nil }

func (h *NullHandle) Type() reflect.Type { return types.NilType }

func (h *NullHandle) Kind() Kind { return KindNull }

// Is reports whether other is a Null Handle too.
func (h *NullHandle) Is(other Handle) bool {
	return other != nil && other.Kind() == KindNull
}

func (h *NullHandle) String() string { return "null" }

func (h *NullHandle) Call(name string, _ ...any) (Handle, error) {
	return nil, newError(opCall, name, types.NilType, ErrNilReceiver)
}

func (h *NullHandle) CallBy(_ any, name string, _ ...any) (Handle, error) {
	return nil, newError(opCallBy, name, types.NilType, ErrNilReceiver)
}

func (h *NullHandle) CallText(name string, _ ...string) (Handle, error) {
	return nil, newError(opCallText, name, types.NilType, ErrNilReceiver)
}

func (h *NullHandle) Create(_ ...any) (Handle, error) {
	return nil, newError(opCreate, "", types.NilType, ErrNilReceiver)
}

func (h *NullHandle) Field(name string) (Accessor, error) {
	return nil, newError(opField, name, types.NilType, ErrNilReceiver)
}

func (h *NullHandle) Method(name string, _ ...any) (Invoker, error) {
	return nil, newError(opMethod, name, types.NilType, ErrNilReceiver)
}

func (h *NullHandle) MethodTypes(name string, _ ...reflect.Type) (Invoker, error) {
	return nil, newError(opMethod, name, types.NilType, ErrNilReceiver)
}
