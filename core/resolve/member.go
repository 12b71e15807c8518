package resolve

import (
	"fmt"
	"reflect"

	"github.com/anoideaopen/mirror/core/types"
)

// Kind tells how a member is reached and called.
type Kind int

const (
	// KindMethod is a method called on a receiver value.
	KindMethod Kind = iota
	// KindFunc is a function registered against a type.
	KindFunc
	// KindMethodExpr is a method expression, the receiver is its first parameter.
	KindMethodExpr
	// KindConstructor is a registered or the implicit zero-value constructor.
	KindConstructor
	// KindField is a struct field.
	KindField
	// KindVar is a variable registered against a type.
	KindVar
)

func (k Kind) String() string {
	switch k {
	case KindMethod:
		return "method"
	case KindFunc:
		return "function"
	case KindMethodExpr:
		return "method expression"
	case KindConstructor:
		return "constructor"
	case KindField:
		return "field"
	case KindVar:
		return "variable"
	default:
		return "member"
	}
}

// Member is one resolved method, function, constructor, field or variable.
// Members are immutable and shared through the resolver caches.
type Member struct {
	Name  string
	Kind  Kind
	Owner reflect.Type // type declaring the member
	// Subject is the type a method or field was resolved on; Path starts there.
	Subject reflect.Type
	Path  []int        // embedded-field path to the receiver, or the field index path
	Depth int          // ancestor level the member was found at, 0 for the subject itself

	// Implicit marks the zero-value constructor every concrete type has.
	Implicit bool

	params   []reflect.Type
	results  []reflect.Type
	variadic bool
	exported bool
	typ      reflect.Type  // field or variable type
	fn       reflect.Value // function, method expression, constructor or variable pointer
}

// Params returns the parameter types, receiver excluded for methods.
func (m *Member) Params() []reflect.Type {
	out := make([]reflect.Type, len(m.params))
	copy(out, m.params)
	return out
}

// Results returns the result types of a callable member.
func (m *Member) Results() []reflect.Type {
	out := make([]reflect.Type, len(m.results))
	copy(out, m.results)
	return out
}

// IsVariadic reports whether the last parameter is variadic.
func (m *Member) IsVariadic() bool {
	return m.variadic
}

// IsExported reports whether the member is visible outside its package.
func (m *Member) IsExported() bool {
	return m.exported
}

// IsCallable reports whether the member can be invoked.
func (m *Member) IsCallable() bool {
	return m.Kind != KindField && m.Kind != KindVar
}

// Type returns the type of a field or variable, or the function type of a callable.
func (m *Member) Type() reflect.Type {
	if m.typ != nil {
		return m.typ
	}
	return reflect.FuncOf(m.params, m.results, m.variadic)
}

// ReturnsError reports whether the last result is an error.
func (m *Member) ReturnsError() bool {
	n := len(m.results)
	return n > 0 && m.results[n-1] == errorType
}

func (m *Member) String() string {
	switch m.Kind {
	case KindField, KindVar:
		return fmt.Sprintf("%s %s.%s %s", m.Kind, m.Owner, m.Name, m.typ)
	default:
		return fmt.Sprintf("%s %s.%s(%s)", m.Kind, m.Owner, m.Name, FormatTypes(m.params))
	}
}

var (
	errorType = reflect.TypeOf((*error)(nil)).Elem()
	nilType   = types.NilType
)

func newFuncMember(kind Kind, owner reflect.Type, name string, fn reflect.Value) *Member {
	ft := fn.Type()
	return &Member{
		Name:     name,
		Kind:     kind,
		Owner:    owner,
		params:   ins(ft, 0),
		results:  outs(ft),
		variadic: ft.IsVariadic(),
		exported: true,
		fn:       fn,
	}
}

func newMethodMember(subject, recv reflect.Type, method reflect.Method, path []int, depth int) *Member {
	skip := 1
	if recv.Kind() == reflect.Interface {
		skip = 0
	}
	return &Member{
		Name:     method.Name,
		Kind:     KindMethod,
		Owner:    recv,
		Subject:  subject,
		Path:     path,
		Depth:    depth,
		params:   ins(method.Type, skip),
		results:  outs(method.Type),
		variadic: method.Type.IsVariadic(),
		exported: method.IsExported(),
	}
}

func newFieldMember(subject, owner reflect.Type, field reflect.StructField, path []int, depth int) *Member {
	return &Member{
		Name:     field.Name,
		Kind:     KindField,
		Owner:    owner,
		Subject:  subject,
		Path:     path,
		Depth:    depth,
		exported: field.IsExported(),
		typ:      field.Type,
	}
}

// NewFunc describes fn as a function member called name on owner, for
// functions that were never registered.
func NewFunc(owner reflect.Type, name string, fn any) (*Member, error) {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		return nil, fmt.Errorf("%w: %T is not a function", ErrInvalidArgumentValue, fn)
	}
	if owner == nil {
		owner = nilType
	}
	return newFuncMember(KindFunc, owner, name, fv), nil
}

func newVarMember(owner reflect.Type, name string, ptr reflect.Value) *Member {
	return &Member{
		Name:     name,
		Kind:     KindVar,
		Owner:    owner,
		exported: true,
		typ:      ptr.Type().Elem(),
		fn:       ptr,
	}
}

func ins(ft reflect.Type, skip int) []reflect.Type {
	params := make([]reflect.Type, 0, ft.NumIn())
	for i := skip; i < ft.NumIn(); i++ {
		params = append(params, ft.In(i))
	}
	return params
}

func outs(ft reflect.Type) []reflect.Type {
	results := make([]reflect.Type, ft.NumOut())
	for i := range results {
		results[i] = ft.Out(i)
	}
	return results
}
