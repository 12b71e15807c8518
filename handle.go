package mirror

import (
	"fmt"
	"reflect"
)

// Kind tells which capabilities a Handle offers beyond the common ones.
type Kind int

const (
	KindNull Kind = iota
	KindValue
	KindClass
	KindField
	KindMethod
	KindConstructor
	KindMap
	KindBatch
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindClass:
		return "class"
	case KindField:
		return "field"
	case KindMethod:
		return "method"
	case KindConstructor:
		return "constructor"
	case KindMap:
		return "map"
	case KindBatch:
		return "batch"
	case KindEnum:
		return "enum"
	case KindNull:
		fallthrough
	default:
		return "null"
	}
}

// Handle is one node of a reflective call chain. Every operation that
// produces a Handle links it to the Handle it was invoked on, which Back
// returns.
type Handle interface {
	// Back returns the Handle this one was produced from. The root Null
	// Handle returns itself.
	Back() Handle
	// Release cuts the link to the predecessor, which becomes a fresh Null
	// Handle, and returns the receiver.
	Release() Handle
	// Unwrap returns the underlying value, nil for a Null Handle.
	Unwrap() any
	// Type returns the type of the underlying value.
	Type() reflect.Type
	Kind() Kind
	// Is reports whether other is this Handle or wraps an equal value.
	// Values that cannot be compared with == are equal when they share storage.
	Is(other Handle) bool

	// Call invokes the method name with args and wraps the result.
	Call(name string, args ...any) (Handle, error)
	// CallBy resolves name on this Handle's type and invokes it on receiver.
	CallBy(receiver any, name string, args ...any) (Handle, error)
	// CallText invokes name with arguments decoded from text into the
	// parameter types of the first method that accepts them.
	CallText(name string, args ...string) (Handle, error)
	// Create makes a new instance of this Handle's type.
	Create(args ...any) (Handle, error)
	Field(name string) (Accessor, error)
	// Method resolves name for args without invoking it; args become the
	// bound arguments.
	Method(name string, args ...any) (Invoker, error)
	// MethodTypes resolves name with exactly the given parameter types.
	MethodTypes(name string, types ...reflect.Type) (Invoker, error)

	String() string
}

// Accessor reads and writes a resolved field or variable.
type Accessor interface {
	Handle
	Get() (Handle, error)
	Set(value any) error
}

// Invoker calls a resolved method, function or method expression.
type Invoker interface {
	Handle
	// Invoke calls the member with args, or with the bound arguments when
	// args is empty.
	Invoke(args ...any) (Handle, error)
	// InvokeBy calls the member on receiver. For functions and method
	// expressions the receiver is passed as the first argument.
	InvokeBy(receiver any, args ...any) (Handle, error)
	// Bind returns a copy with args bound.
	Bind(args ...any) Invoker
}

// chain is the predecessor link shared by every Handle.
type chain struct {
	prev Handle
}

func (c *chain) backOr(self Handle) Handle {
	if c.prev == nil {
		return self
	}
	return c.prev
}

func (c *chain) cut() {
	c.prev = newNull(nil)
}

// On wraps value in the Handle matching it: a Null Handle for nil, a
// ClassHandle for a reflect.Type, a MappingHandle for a map[string]any, a
// BatchHandle for a []any and a ValueHandle for anything else. A Handle is
// returned as it is.
func On(value any) Handle {
	return wrap(Null(), value)
}

// OnValue wraps value in a ValueHandle whatever its type. A nil value gives
// a ValueHandle that behaves like the Null Handle.
func OnValue(value any) *ValueHandle {
	return newValue(Null(), reflect.ValueOf(unwrapArg(value)))
}

func wrap(prev Handle, value any) Handle {
	switch v := value.(type) {
	case nil:
		return newNull(prev)
	case Handle:
		return v
	case reflect.Value:
		return wrapValue(prev, v)
	}
	return wrapValue(prev, reflect.ValueOf(value))
}

func wrapValue(prev Handle, v reflect.Value) Handle {
	if v.IsValid() && v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	if !v.IsValid() || isNil(v) {
		return newNull(prev)
	}

	if v.CanInterface() {
		switch x := v.Interface().(type) {
		case reflect.Type:
			return newClass(prev, x)
		case map[string]any:
			return newMapping(prev, x)
		case []any:
			return newBatch(prev, x)
		}
	}

	return newValue(prev, v)
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return v.IsNil()
	default:
		return false
	}
}

func describe(h Handle) string {
	return fmt.Sprintf("%s<%v>", h.Kind(), h.Unwrap())
}

// same implements Handle.Is.
func same(h, other Handle) bool {
	if other == nil {
		return false
	}
	if h == other {
		return true
	}
	return equalValues(h.Unwrap(), other.Unwrap())
}

func equalValues(x, y any) (equal bool) {
	if x == nil || y == nil {
		return x == nil && y == nil
	}

	vx, vy := reflect.ValueOf(x), reflect.ValueOf(y)
	if vx.Type() != vy.Type() {
		return false
	}

	if vx.Type().Comparable() {
		// interface fields holding uncomparable values panic on ==
		defer func() {
			if recover() != nil {
				equal = false
			}
		}()
		return x == y
	}

	switch vx.Kind() {
	case reflect.Map, reflect.Func:
		return vx.Pointer() == vy.Pointer()
	case reflect.Slice:
		return vx.Pointer() == vy.Pointer() && vx.Len() == vy.Len()
	default:
		return false
	}
}

// unwrapArgs replaces Handle arguments with their underlying values.
func unwrapArgs(args []any) []any {
	out := make([]any, len(args))
	for i, arg := range args {
		out[i] = unwrapArg(arg)
	}
	return out
}

func unwrapArg(arg any) any {
	if h, ok := arg.(Handle); ok {
		return h.Unwrap()
	}
	return arg
}

// addressable returns v itself when it is addressable and an addressable
// copy otherwise, so pointer-receiver methods and unexported fields can be
// reached.
func addressable(v reflect.Value) reflect.Value {
	if !v.IsValid() || v.CanAddr() {
		return v
	}
	p := reflect.New(v.Type())
	p.Elem().Set(v)
	return p.Elem()
}

// receiverOf returns the value methods are resolved and called on: the
// address of addressable non-pointer values, v otherwise.
func receiverOf(v reflect.Value) reflect.Value {
	if v.IsValid() && v.CanAddr() && v.Kind() != reflect.Pointer && v.Kind() != reflect.Interface {
		return v.Addr()
	}
	return v
}
