package mirror

import (
	"go/token"
	"reflect"
	"slices"

	corereflect "github.com/anoideaopen/mirror/core/reflect"
	"github.com/anoideaopen/mirror/core/resolve"
	"github.com/anoideaopen/mirror/core/telemetry"
	"github.com/anoideaopen/mirror/core/types"
	"github.com/samber/lo"
)

// ClassHandle wraps a type. Its operations reach the members that do not
// need an instance: Call and Method resolve registered functions and method
// expressions, Field resolves registered variables and Create resolves
// constructors.
type ClassHandle struct {
	chain
	t    reflect.Type
	self Handle // predecessor of results, the enclosing Handle when embedded
}

// OnType wraps t in a ClassHandle.
func OnType(t reflect.Type) *ClassHandle {
	return newClass(Null(), t)
}

// Class returns the ClassHandle of T.
func Class[T any]() *ClassHandle {
	return OnType(reflect.TypeOf((*T)(nil)).Elem())
}

func newClass(prev Handle, t reflect.Type) *ClassHandle {
	if t == nil {
		t = types.NilType
	}
	h := &ClassHandle{chain: chain{prev: prev}, t: t}
	h.self = h
	return h
}

func (h *ClassHandle) Back() Handle { return h.backOr(h) }

func (h *ClassHandle) Release() Handle {
	h.cut()
	return h
}

// Unwrap returns the wrapped reflect.Type.
func (h *ClassHandle) Unwrap() any { return h.t }

func (h *ClassHandle) Type() reflect.Type { return h.t }

func (h *ClassHandle) Kind() Kind { return KindClass }

func (h *ClassHandle) Is(other Handle) bool { return same(h, other) }

func (h *ClassHandle) String() string { return describe(h) }

// Call invokes the function or method expression name of the type. A method
// expression takes the receiver as its first argument.
func (h *ClassHandle) Call(name string, args ...any) (Handle, error) {
	args = unwrapArgs(args)

	m, err := env().resolver.Static(h.t, name, types.TypesOf(args), true)
	if err != nil {
		return nil, newError(opCall, name, h.t, err)
	}
	return invoke(h.self, opCall, telemetry.OpStatic, m, reflect.Value{}, h.t, args)
}

// CallBy invokes the method name of the type on receiver.
func (h *ClassHandle) CallBy(receiver any, name string, args ...any) (Handle, error) {
	return callByOn(h.self, h.methodSubject(), receiver, name, args)
}

func (h *ClassHandle) CallText(name string, args ...string) (Handle, error) {
	return callText(h.self, env().resolver.Candidates(h.t, name, true), reflect.Value{}, h.t, name, args)
}

// Create instantiates the type with the constructor args select. Structs are
// created as pointers.
func (h *ClassHandle) Create(args ...any) (Handle, error) {
	return createOn(h.self, h.t, args)
}

// Field resolves a variable registered against the type.
func (h *ClassHandle) Field(name string) (Accessor, error) {
	m, err := env().resolver.Var(h.t, name)
	if err != nil {
		return nil, newError(opField, name, h.t, err)
	}
	return newField(h.self, m, reflect.Value{}, h.t), nil
}

// Vars returns the variables registered against the type, sorted by name.
func (h *ClassHandle) Vars() []*FieldHandle {
	rt := env()
	names := lo.Keys(rt.registry.Vars(h.t))
	slices.Sort(names)

	return lo.FilterMap(names, func(name string, _ int) (*FieldHandle, bool) {
		m, err := rt.resolver.Var(h.t, name)
		if err != nil {
			return nil, false
		}
		return newField(h.self, m, reflect.Value{}, h.t), true
	})
}

func (h *ClassHandle) Method(name string, args ...any) (Invoker, error) {
	args = unwrapArgs(args)

	m, err := env().resolver.Static(h.t, name, types.TypesOf(args), true)
	if err != nil {
		return nil, newError(opMethod, name, h.t, err)
	}
	return newMethod(h.self, m, reflect.Value{}, h.t, args), nil
}

func (h *ClassHandle) MethodTypes(name string, ts ...reflect.Type) (Invoker, error) {
	m, err := env().resolver.Static(h.t, name, ts, false)
	if err != nil {
		return nil, newError(opMethod, name, h.t, err)
	}
	return newMethod(h.self, m, reflect.Value{}, h.t, nil), nil
}

// Constructor resolves the constructor Create would use for args and binds them.
func (h *ClassHandle) Constructor(args ...any) (*ConstructorHandle, error) {
	args = unwrapArgs(args)

	m, err := env().resolver.Constructor(h.t, types.TypesOf(args), true)
	if err != nil {
		return nil, newError(opCreate, types.Base(h.t).Name(), h.t, err)
	}
	return newConstructor(h.self, m, h.t, args), nil
}

// ConstructorTypes resolves the constructor with exactly the given parameter types.
func (h *ClassHandle) ConstructorTypes(ts ...reflect.Type) (*ConstructorHandle, error) {
	m, err := env().resolver.Constructor(h.t, ts, false)
	if err != nil {
		return nil, newError(opCreate, types.Base(h.t).Name(), h.t, err)
	}
	return newConstructor(h.self, m, h.t, nil), nil
}

// Constructors lists every constructor of the type, the implicit one last.
func (h *ClassHandle) Constructors() []*ConstructorHandle {
	return lo.Map(env().resolver.Constructors(h.t), func(m *resolve.Member, _ int) *ConstructorHandle {
		return newConstructor(h.self, m, h.t, nil)
	})
}

// Convert creates an instance with the implicit or registered zero-argument
// constructor and fills it from values, matching keys to field names without
// regard to case.
func (h *ClassHandle) Convert(values map[string]any) (Handle, error) {
	created, err := h.Create()
	if err != nil {
		return nil, err
	}

	v := reflect.ValueOf(created.Unwrap())
	if !v.IsValid() {
		return nil, newError(opConvert, "", h.t, ErrInstantiation)
	}
	target := v
	if v.Kind() != reflect.Pointer {
		target = reflect.New(v.Type())
		target.Elem().Set(v)
	}

	if err = decode(values, target.Interface()); err != nil {
		return nil, newError(opConvert, "", h.t, err)
	}

	if v.Kind() != reflect.Pointer {
		return wrapValue(h.self, target.Elem()), nil
	}
	return wrapValue(h.self, target), nil
}

// Methods returns the sorted names of the methods CallBy can reach on
// instances of the type.
func (h *ClassHandle) Methods() []string {
	return corereflect.MethodNames(h.methodSubject())
}

func (h *ClassHandle) Name() string { return h.t.Name() }

func (h *ClassHandle) PkgPath() string { return h.t.PkgPath() }

// IsExported reports whether the type can be named outside its package.
// Predeclared and unnamed types are.
func (h *ClassHandle) IsExported() bool {
	if h.t.PkgPath() == "" {
		return true
	}
	return token.IsExported(h.t.Name())
}

func (h *ClassHandle) IsInterface() bool { return h.t.Kind() == reflect.Interface }

func (h *ClassHandle) IsStruct() bool { return h.t.Kind() == reflect.Struct }

func (h *ClassHandle) IsPointer() bool { return h.t.Kind() == reflect.Pointer }

// IsBasic reports whether the type has a boolean, numeric or string kind.
func (h *ClassHandle) IsBasic() bool { return types.IsPrimitive(h.t) }

func (h *ClassHandle) IsInt() bool { return types.IsInt(h.t) }

func (h *ClassHandle) IsFloat() bool { return types.IsFloat(h.t) }

func (h *ClassHandle) IsBool() bool { return types.IsBool(h.t) }

func (h *ClassHandle) IsText() bool { return types.IsText(h.t) }

// Elem returns the element type of a pointer, slice, array, map or channel
// type, nil for any other.
func (h *ClassHandle) Elem() *ClassHandle {
	switch h.t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return newClass(h.self, h.t.Elem())
	default:
		return nil
	}
}

// Embedded returns the types embedded directly in the struct type.
func (h *ClassHandle) Embedded() []*ClassHandle {
	return lo.Map(resolve.Embedded(h.t), func(t reflect.Type, _ int) *ClassHandle {
		return newClass(h.self, t)
	})
}

// IsParentOf reports whether other is assignable to the type, implements it
// through its pointer or embeds it at any depth.
func (h *ClassHandle) IsParentOf(other reflect.Type) bool {
	if other == nil || other == h.t {
		return false
	}
	if other.AssignableTo(h.t) || resolve.Embeds(other, h.t) {
		return true
	}
	return h.t.Kind() == reflect.Interface && reflect.PointerTo(other).Implements(h.t)
}

// IsChildOf reports whether the type is assignable to other, implements it or embeds it.
func (h *ClassHandle) IsChildOf(other reflect.Type) bool {
	if other == nil {
		return false
	}
	return OnType(other).IsParentOf(h.t)
}

// methodSubject is the type whose method set instance calls resolve against.
func (h *ClassHandle) methodSubject() reflect.Type {
	switch h.t.Kind() {
	case reflect.Pointer, reflect.Interface:
		return h.t
	default:
		return reflect.PointerTo(h.t)
	}
}
