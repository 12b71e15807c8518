package resolve

import (
	"fmt"
	"reflect"

	"github.com/anoideaopen/mirror/core/types"
)

// newImplicitConstructor describes the zero-value constructor of t. Structs
// are created as *T so they stay addressable, maps, slices and channels are
// made empty and everything else is the zero T. Interfaces and functions have
// no implicit constructor.
func newImplicitConstructor(t reflect.Type) *Member {
	result := t
	switch t.Kind() {
	case reflect.Interface, reflect.Func, reflect.Invalid, reflect.UnsafePointer:
		return nil
	case reflect.Struct:
		result = reflect.PointerTo(t)
	}
	return &Member{
		Name:     t.Name(),
		Kind:     KindConstructor,
		Owner:    t,
		Implicit: true,
		results:  []reflect.Type{result},
		exported: true,
	}
}

func instantiate(t reflect.Type) reflect.Value {
	switch t.Kind() {
	case reflect.Struct:
		return reflect.New(t)
	case reflect.Map:
		return reflect.MakeMap(t)
	case reflect.Slice:
		return reflect.MakeSlice(t, 0, 0)
	case reflect.Chan:
		return reflect.MakeChan(t, 0)
	default:
		return reflect.New(t).Elem()
	}
}

// Invoke calls m with args. recv is the receiver for methods and is ignored
// for every other kind. A trailing error result is stripped from the results;
// when it is non-nil the call fails with ErrInvocation wrapping it. Panics
// raised by the callee are recovered into ErrInvocation as well.
func Invoke(m *Member, recv reflect.Value, args []any) (results []reflect.Value, err error) {
	if !m.IsCallable() {
		return nil, fmt.Errorf("%w: %s is not callable", ErrInaccessible, m)
	}

	defer func() {
		if p := recover(); p != nil {
			results = nil
			err = fmt.Errorf("%w: %s: panic: %v", invocationErr(m), m, p)
		}
	}()

	in, spread, err := Arguments(m, args)
	if err != nil {
		return nil, err
	}

	if m.Implicit {
		return []reflect.Value{instantiate(m.Owner)}, nil
	}

	fn, err := m.callable(recv)
	if err != nil {
		return nil, err
	}

	var out []reflect.Value
	if spread {
		out = fn.CallSlice(in)
	} else {
		out = fn.Call(in)
	}

	if m.ReturnsError() {
		last := out[len(out)-1]
		out = out[:len(out)-1]
		if !last.IsNil() {
			cause, _ := last.Interface().(error)
			return nil, fmt.Errorf("%w: %s: %w", invocationErr(m), m, cause)
		}
	}

	return out, nil
}

// Fits reports whether a receiver of type actual can stand in for one of
// type want: T and *T are interchangeable, and any implementation fits an
// interface.
func Fits(actual, want reflect.Type) bool {
	if actual == nil || want == nil {
		return false
	}
	if types.Base(actual) == types.Base(want) {
		return true
	}
	return want.Kind() == reflect.Interface && actual.Implements(want)
}

func invocationErr(m *Member) error {
	if m.Kind == KindConstructor {
		return ErrInstantiation
	}
	return ErrInvocation
}

func (m *Member) callable(recv reflect.Value) (reflect.Value, error) {
	if m.Kind != KindMethod {
		return m.fn, nil
	}

	r, err := m.Receiver(recv)
	if err != nil {
		return reflect.Value{}, err
	}
	if r.Kind() == reflect.Interface && r.IsNil() {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrNilReceiver, m)
	}
	if r.Kind() != reflect.Pointer && r.Kind() != reflect.Interface && r.CanAddr() {
		r = r.Addr()
	}
	if !Fits(r.Type(), m.Owner) {
		return reflect.Value{}, fmt.Errorf("%w: receiver %s for %s", ErrInvalidArgumentValue, r.Type(), m)
	}

	fn := r.MethodByName(m.Name)
	if !fn.IsValid() {
		return reflect.Value{}, fmt.Errorf("%w: %s needs an addressable receiver", ErrInaccessible, m)
	}
	return fn, nil
}

// Arguments converts args to the parameter types of m. The boolean result
// reports whether the last value already is the variadic slice and must be
// passed with CallSlice.
func Arguments(m *Member, args []any) ([]reflect.Value, bool, error) {
	params := m.params
	n := len(params)

	if !m.variadic {
		if len(args) != n {
			return nil, false, fmt.Errorf("%w: %s takes %d, got %d", ErrIncorrectArgumentCount, m, n, len(args))
		}
		in, err := convertAll(params, args)
		return in, false, err
	}

	if len(args) == n {
		if in, err := convertAll(params, args); err == nil {
			return in, true, nil
		}
	}
	if len(args) < n-1 {
		return nil, false, fmt.Errorf("%w: %s takes at least %d, got %d", ErrIncorrectArgumentCount, m, n-1, len(args))
	}

	in, err := convertAll(params[:n-1], args[:n-1])
	if err != nil {
		return nil, false, err
	}
	elem := params[n-1].Elem()
	for i, arg := range args[n-1:] {
		v, err := convert(arg, elem)
		if err != nil {
			return nil, false, fmt.Errorf("%w: argument %d", err, n-1+i)
		}
		in = append(in, v)
	}
	return in, false, nil
}

func convertAll(params []reflect.Type, args []any) ([]reflect.Value, error) {
	in := make([]reflect.Value, len(params))
	for i, arg := range args {
		v, err := convert(arg, params[i])
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d", err, i)
		}
		in[i] = v
	}
	return in, nil
}

// convert turns arg into a value of type t under the compatibility rule: nil
// becomes the zero value of a nilable type, assignable values pass through,
// a value may be boxed into a pointer to it and a non-nil pointer may be
// unboxed to its element.
func convert(arg any, t reflect.Type) (reflect.Value, error) {
	if arg == nil {
		if nilable(t) {
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: nil for %s", ErrInvalidArgumentValue, t)
	}
	if v, ok := arg.(reflect.Value); ok {
		if !v.IsValid() {
			return convert(nil, t)
		}
		arg = v.Interface()
	}
	if _, ok := arg.(types.Nil); ok {
		return convert(nil, t)
	}

	v := reflect.ValueOf(arg)
	vt := v.Type()

	switch {
	case vt.AssignableTo(t):
		return v, nil
	case vt.Kind() == reflect.Pointer && vt.Elem().AssignableTo(t):
		if v.IsNil() {
			return convert(nil, t)
		}
		return v.Elem(), nil
	}

	if boxed := reflect.PointerTo(vt); boxed.AssignableTo(t) {
		p := reflect.New(vt)
		p.Elem().Set(v)
		return p, nil
	}

	return reflect.Value{}, fmt.Errorf("%w: %s is not assignable to %s", ErrInvalidArgumentValue, vt, t)
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}
