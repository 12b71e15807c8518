package types

import (
	"reflect"
)

// Nil is the marker type standing in for an untyped nil argument.
// It is compatible with every parameter during resolution.
type Nil struct{}

// NilType is the reflect.Type of Nil.
var NilType = reflect.TypeOf(Nil{})

// BasicTypes is a map of the predeclared type names to their types.
var BasicTypes = map[string]reflect.Type{
	"bool":       reflect.TypeOf(false),
	"string":     reflect.TypeOf(""),
	"int":        reflect.TypeOf(int(0)),
	"int8":       reflect.TypeOf(int8(0)),
	"int16":      reflect.TypeOf(int16(0)),
	"int32":      reflect.TypeOf(int32(0)),
	"int64":      reflect.TypeOf(int64(0)),
	"uint":       reflect.TypeOf(uint(0)),
	"uint8":      reflect.TypeOf(uint8(0)),
	"uint16":     reflect.TypeOf(uint16(0)),
	"uint32":     reflect.TypeOf(uint32(0)),
	"uint64":     reflect.TypeOf(uint64(0)),
	"uintptr":    reflect.TypeOf(uintptr(0)),
	"float32":    reflect.TypeOf(float32(0)),
	"float64":    reflect.TypeOf(float64(0)),
	"complex64":  reflect.TypeOf(complex64(0)),
	"complex128": reflect.TypeOf(complex128(0)),
	"byte":       reflect.TypeOf(byte(0)),
	"rune":       reflect.TypeOf(rune(0)),
	"any":        reflect.TypeOf((*any)(nil)).Elem(),
	"error":      reflect.TypeOf((*error)(nil)).Elem(),
}

// TypesOf returns the dynamic types of values. A nil value is reported as NilType.
func TypesOf(values []any) []reflect.Type {
	types := make([]reflect.Type, len(values))
	for i, v := range values {
		if v == nil {
			types[i] = NilType
			continue
		}
		types[i] = reflect.TypeOf(v)
	}
	return types
}

// IsPrimitive reports whether t has one of the basic kinds (booleans, numbers, strings).
// Named types such as `type Celsius float64` are primitive too.
func IsPrimitive(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	default:
		return false
	}
}

// Wrapper returns the pointer form of a primitive type, *int for int.
// Any other type is returned unchanged.
func Wrapper(t reflect.Type) reflect.Type {
	if IsPrimitive(t) {
		return reflect.PointerTo(t)
	}
	return t
}

// Primitive returns the primitive type behind a pointer form, int for *int.
// Any other type, including one that is not a known pointer form, is returned unchanged.
func Primitive(t reflect.Type) reflect.Type {
	if t != nil && t.Kind() == reflect.Pointer && IsPrimitive(t.Elem()) {
		return t.Elem()
	}
	return t
}

// Base strips one level of pointer indirection. Registrations are keyed by
// the base type so that T and *T share constructors, functions and variables.
func Base(t reflect.Type) reflect.Type {
	if t != nil && t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

// IsInt reports whether t is a signed or unsigned integer type or a pointer to one.
func IsInt(t reflect.Type) bool {
	switch kindOf(t) {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}

// IsFloat reports whether t is a floating point type or a pointer to one.
func IsFloat(t reflect.Type) bool {
	k := kindOf(t)
	return k == reflect.Float32 || k == reflect.Float64
}

// IsBool reports whether t is a boolean type or a pointer to one.
func IsBool(t reflect.Type) bool {
	return kindOf(t) == reflect.Bool
}

// IsText reports whether t is a string type or a pointer to one.
func IsText(t reflect.Type) bool {
	return kindOf(t) == reflect.String
}

func kindOf(t reflect.Type) reflect.Kind {
	t = Primitive(t)
	if t == nil {
		return reflect.Invalid
	}
	return t.Kind()
}
