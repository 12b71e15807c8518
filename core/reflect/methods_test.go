package reflect

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

type greeter struct{}

func (greeter) Hello() {}

func (greeter) Bye(a int, b string) error { return nil }

func (*greeter) Reset() {}

type describer interface {
	Describe() string
	Name() string
}

func TestMethodNames(t *testing.T) {
	testCases := []struct {
		name string
		typ  reflect.Type
		want []string
	}{
		{name: "value", typ: reflect.TypeOf(greeter{}), want: []string{"Bye", "Hello"}},
		{name: "pointer", typ: reflect.TypeOf(&greeter{}), want: []string{"Bye", "Hello", "Reset"}},
		{name: "interface", typ: reflect.TypeOf((*describer)(nil)).Elem(), want: []string{"Describe", "Name"}},
		{name: "no methods", typ: reflect.TypeOf(0), want: []string{}},
		{name: "nil", typ: nil, want: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MethodNames(tc.typ))
		})
	}
}
