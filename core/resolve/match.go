package resolve

import (
	"reflect"

	"github.com/anoideaopen/mirror/core/types"
)

// Compatible reports whether an argument of type actual may be passed for a
// parameter of type declared. A nil argument is compatible with anything.
// Otherwise actual must be assignable to declared, either directly or in
// their value forms with one pointer stripped, so int and *int as well as
// T and *T are interchangeable. A value also fits an interface its pointer
// implements.
func Compatible(declared, actual reflect.Type) bool {
	if actual == nil || actual == nilType {
		return true
	}
	switch {
	case actual.AssignableTo(declared):
		return true
	case actual.Kind() == reflect.Pointer && actual.Elem().AssignableTo(declared):
		return true
	case reflect.PointerTo(actual).AssignableTo(declared):
		return true
	}
	return types.Wrapper(actual).AssignableTo(types.Wrapper(declared))
}

// Match reports whether the actual argument types fit the parameters of m
// under the compatibility rule. Variadic members accept the fixed parameters
// followed by any number of arguments compatible with the element type, or a
// single argument compatible with the slice type.
func Match(m *Member, actual []reflect.Type) bool {
	return match(m.params, m.variadic, actual)
}

func match(params []reflect.Type, variadic bool, actual []reflect.Type) bool {
	n := len(params)
	if len(actual) == n && allCompatible(params, actual) {
		return true
	}
	if !variadic || len(actual) < n-1 {
		return false
	}
	if !allCompatible(params[:n-1], actual[:n-1]) {
		return false
	}

	elem := params[n-1].Elem()
	for _, t := range actual[n-1:] {
		if !Compatible(elem, t) {
			return false
		}
	}
	return true
}

func allCompatible(params, actual []reflect.Type) bool {
	for i := range actual {
		if !Compatible(params[i], actual[i]) {
			return false
		}
	}
	return true
}

// exact reports whether the parameter types are literally the requested ones.
func exact(m *Member, want []reflect.Type) bool {
	if len(m.params) != len(want) {
		return false
	}
	for i := range want {
		if m.params[i] != want[i] {
			return false
		}
	}
	return true
}
