package mirror

import (
	"io"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassCreate(t *testing.T) {
	testCases := []struct {
		name string
		cls  *ClassHandle
		args []any
		want any
	}{
		{"two-argument constructor", Class[Person](), []any{"Ada", 36}, NewPerson("Ada", 36)},
		{"one-argument constructor", Class[Person](), []any{"Ada"}, NewPersonNamed("Ada")},
		{"implicit struct constructor", Class[Person](), nil, &Person{}},
		{"value constructor", Class[Color](), []any{"red", 0xff0000}, Color{Name: "red", RGB: 0xff0000}},
		{"basic type", Class[int](), nil, 0},
		{"map type", Class[map[string]int](), nil, map[string]int{}},
		{"slice type", Class[[]string](), nil, []string{}},
		{"pointer type", OnType(personPtrType), []any{"Ada", 36}, NewPerson("Ada", 36)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, err := tc.cls.Create(tc.args...)
			require.NoError(t, err)
			require.NotNil(t, h)
			assert.Equal(t, tc.want, h.Unwrap())
			assert.True(t, h.Back().Is(tc.cls))
		})
	}
}

func TestClassCreateErrors(t *testing.T) {
	_, err := Class[io.Reader]().Create()
	require.ErrorIs(t, err, ErrMemberNotFound)

	_, err = Class[Person]().Create(1, 2, 3)
	require.ErrorIs(t, err, ErrMemberNotFound)
	assert.Contains(t, err.Error(), "Person")
}

func TestClassStatics(t *testing.T) {
	cls := Class[Person]()

	res, err := cls.Call("parse", "Eve:30")
	require.NoError(t, err)
	assert.Equal(t, NewPerson("Eve", 30), res.Unwrap())

	_, err = cls.Call("Parse", "Eve")
	require.ErrorIs(t, err, ErrInvocation)

	res, err = cls.Call("GetName", NewPerson("Ada", 1))
	require.NoError(t, err)
	assert.Equal(t, "Ada", res.Unwrap())

	res, err = cls.Call("Describe", Person{Named: Named{Name: "Val"}})
	require.NoError(t, err)
	assert.Equal(t, "person Val", res.Unwrap())
}

func TestClassVars(t *testing.T) {
	cls := Class[Person]()

	f, err := cls.Field("Default")
	require.NoError(t, err)
	assert.Equal(t, KindField, f.Kind())

	v, err := f.Get()
	require.NoError(t, err)
	assert.Equal(t, defaultPerson, v.Unwrap())

	vars := cls.Vars()
	require.Len(t, vars, 1)
	assert.Equal(t, "Default", vars[0].Name())

	_, err = cls.Field("Missing")
	require.ErrorIs(t, err, ErrMemberNotFound)
}

func TestClassQueries(t *testing.T) {
	cls := Class[Person]()

	assert.Equal(t, "Person", cls.Name())
	assert.Equal(t, "github.com/anoideaopen/mirror", cls.PkgPath())
	assert.True(t, cls.IsExported())
	assert.True(t, cls.IsStruct())
	assert.False(t, cls.IsPointer())
	assert.False(t, cls.IsBasic())
	assert.Equal(t, KindClass, cls.Kind())
	assert.Equal(t, personType, cls.Unwrap())
	assert.Nil(t, cls.Elem())

	assert.True(t, Class[int]().IsInt())
	assert.True(t, Class[float64]().IsFloat())
	assert.True(t, Class[bool]().IsBool())
	assert.True(t, Class[string]().IsText())
	assert.True(t, Class[io.Reader]().IsInterface())
	assert.True(t, Class[int]().IsExported())

	ptr := OnType(personPtrType)
	assert.True(t, ptr.IsPointer())
	assert.Equal(t, personType, ptr.Elem().Type())

	embedded := cls.Embedded()
	require.Len(t, embedded, 1)
	assert.Equal(t, namedType, embedded[0].Type())

	assert.Equal(t, KindClass, OnType(nil).Kind())
}

func TestMethodNames(t *testing.T) {
	personMethods := []string{"Age", "Describe", "GetName", "Greet", "Nothing", "Pair", "Rename", "SetAge", "Total"}

	testCases := []struct {
		name string
		got  []string
		want []string
	}{
		{"class", Class[Person]().Methods(), personMethods},
		{"pointer class", OnType(personPtrType).Methods(), personMethods},
		{"interface class", Class[io.Reader]().Methods(), []string{"Read"}},
		{"value", OnValue(Named{}).Methods(), []string{"Describe", "GetName", "Greet"}},
		{"no methods", OnValue(7).Methods(), []string{}},
		{"nil", OnValue(nil).Methods(), []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.got)
		})
	}
}

func TestClassHierarchy(t *testing.T) {
	describer := reflect.TypeOf((*Describer)(nil)).Elem()

	testCases := []struct {
		name   string
		parent *ClassHandle
		child  reflect.Type
		want   bool
	}{
		{"embedded struct", Class[Named](), personType, true},
		{"implemented interface", OnType(describer), personType, true},
		{"same type", Class[Person](), personType, false},
		{"unrelated", Class[Color](), personType, false},
		{"reversed", Class[Person](), namedType, false},
		{"nil", Class[Person](), nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.parent.IsParentOf(tc.child))
		})
	}

	assert.True(t, Class[Person]().IsChildOf(namedType))
	assert.True(t, Class[Person]().IsChildOf(describer))
	assert.False(t, Class[Named]().IsChildOf(personType))
}

func TestClassConstructors(t *testing.T) {
	cls := Class[Person]()

	ctor, err := cls.Constructor("Ada", 36)
	require.NoError(t, err)
	assert.Equal(t, KindConstructor, ctor.Kind())
	assert.Equal(t, []reflect.Type{stringType, intType}, ctor.ParameterTypes())
	assert.Equal(t, []any{"Ada", 36}, ctor.Arguments())

	h, err := ctor.Create()
	require.NoError(t, err)
	assert.Equal(t, NewPerson("Ada", 36), h.Unwrap())
	assert.True(t, h.Back().Is(ctor))

	h, err = ctor.Bind("Bob", 2).Create()
	require.NoError(t, err)
	assert.Equal(t, NewPerson("Bob", 2), h.Unwrap())

	ctor, err = cls.ConstructorTypes(stringType)
	require.NoError(t, err)
	assert.Equal(t, 1, ctor.ParameterCount())

	h, err = ctor.Create("Eve")
	require.NoError(t, err)
	assert.Equal(t, NewPersonNamed("Eve"), h.Unwrap())

	_, err = cls.ConstructorTypes(intType)
	require.ErrorIs(t, err, ErrMemberNotFound)

	all := cls.Constructors()
	require.Len(t, all, 3)
	assert.True(t, all[2].IsImplicit())
	assert.False(t, all[0].IsImplicit())
}

func TestClassConvert(t *testing.T) {
	h, err := Class[Person]().Convert(map[string]any{
		"name": "Ada",
		"tags": []string{"math"},
	})
	require.NoError(t, err)
	assert.Equal(t, &Person{Named: Named{Name: "Ada"}, Tags: []string{"math"}}, h.Unwrap())

	h, err = Class[Color]().Convert(map[string]any{"name": "red", "rgb": "255"})
	require.NoError(t, err)
	assert.Equal(t, &Color{Name: "red", RGB: 255}, h.Unwrap())

	_, err = Class[Color]().Convert(map[string]any{"rgb": "bright"})
	require.Error(t, err)
}
