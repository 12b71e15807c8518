package resolve

import (
	"reflect"
	"testing"

	"github.com/anoideaopen/mirror/core/types"
	"github.com/stretchr/testify/assert"
)

func TestCompatible(t *testing.T) {
	anyType := reflect.TypeOf((*any)(nil)).Elem()
	intPtr := reflect.TypeOf((*int)(nil))

	testCases := []struct {
		name     string
		declared reflect.Type
		actual   reflect.Type
		want     bool
	}{
		{name: "same", declared: intType, actual: intType, want: true},
		{name: "nil marker", declared: intType, actual: types.NilType, want: true},
		{name: "untyped nil", declared: stringType, actual: nil, want: true},
		{name: "interface", declared: anyType, actual: intType, want: true},
		{name: "boxed to primitive", declared: intType, actual: intPtr, want: true},
		{name: "primitive to boxed", declared: intPtr, actual: intType, want: true},
		{name: "different primitive", declared: intType, actual: stringType, want: false},
		{name: "widening is not allowed", declared: reflect.TypeOf(int64(0)), actual: intType, want: false},
		{name: "struct pointer to value", declared: personType, actual: personPtrType, want: true},
		{name: "struct value to pointer", declared: personPtrType, actual: personType, want: true},
		{name: "interface implementation", declared: shapeType, actual: reflect.TypeOf(square{}), want: true},
		{name: "unrelated struct", declared: personType, actual: reflect.TypeOf(&square{}), want: false},
		{name: "double pointer", declared: personType, actual: reflect.PointerTo(personPtrType), want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Compatible(tc.declared, tc.actual))
		})
	}
}

func TestMatch(t *testing.T) {
	ints := reflect.TypeOf([]int{})

	testCases := []struct {
		name     string
		params   []reflect.Type
		variadic bool
		actual   []reflect.Type
		want     bool
	}{
		{name: "no params", want: true},
		{name: "count mismatch", params: []reflect.Type{intType}, want: false},
		{name: "positional", params: []reflect.Type{stringType, intType}, actual: []reflect.Type{stringType, intType}, want: true},
		{name: "swapped", params: []reflect.Type{stringType, intType}, actual: []reflect.Type{intType, stringType}, want: false},
		{name: "variadic empty", params: []reflect.Type{ints}, variadic: true, want: true},
		{name: "variadic spread", params: []reflect.Type{ints}, variadic: true, actual: []reflect.Type{intType, intType, intType}, want: true},
		{name: "variadic slice", params: []reflect.Type{ints}, variadic: true, actual: []reflect.Type{ints}, want: true},
		{name: "variadic wrong element", params: []reflect.Type{ints}, variadic: true, actual: []reflect.Type{intType, stringType}, want: false},
		{name: "variadic with fixed", params: []reflect.Type{stringType, ints}, variadic: true, actual: []reflect.Type{stringType, intType}, want: true},
		{name: "variadic missing fixed", params: []reflect.Type{stringType, ints}, variadic: true, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := &Member{params: tc.params, variadic: tc.variadic}
			assert.Equal(t, tc.want, Match(m, tc.actual))
		})
	}
}

func TestNames(t *testing.T) {
	testCases := []struct {
		in   string
		want []string
	}{
		{in: "GetName", want: []string{"GetName"}},
		{in: "getName", want: []string{"getName", "GetName"}},
		{in: "getURL", want: []string{"getURL", "GetURL", "GetUrl"}},
		{in: "user_name", want: []string{"user_name", "User_name", "UserName"}},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Names(tc.in))
		})
	}
}
