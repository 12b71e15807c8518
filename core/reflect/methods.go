package reflect

import (
	"reflect"
	"slices"

	"github.com/samber/lo"
)

// MethodNames returns the sorted names of the exported methods in the method
// set of t. Pass the pointer type to include pointer-receiver methods.
func MethodNames(t reflect.Type) []string {
	if t == nil {
		return []string{}
	}

	names := lo.FilterMap(lo.Range(t.NumMethod()), func(i int, _ int) (string, bool) {
		m := t.Method(i)
		return m.Name, m.IsExported()
	})
	slices.Sort(names)

	return names
}
