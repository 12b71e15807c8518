package reflect

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/anoideaopen/mirror/core/types"
)

// ErrIncorrectArgumentCount is returned when the number of text arguments does not fit the parameters.
var ErrIncorrectArgumentCount = errors.New("incorrect number of arguments")

// ParseArguments parses text arguments into values of the given parameter
// types. For a variadic parameter list the arguments past the fixed ones are
// parsed into the element type of the last parameter. Every parsed value that
// implements types.Checker is checked before it is returned.
func ParseArguments(params []reflect.Type, variadic bool, args []string) ([]any, error) {
	n := len(params)
	switch {
	case !variadic && len(args) != n:
		return nil, fmt.Errorf("%w: found %d but expected %d", ErrIncorrectArgumentCount, len(args), n)
	case variadic && len(args) < n-1:
		return nil, fmt.Errorf("%w: found %d but expected at least %d", ErrIncorrectArgumentCount, len(args), n-1)
	}

	values := make([]any, len(args))
	for i, arg := range args {
		t := paramType(params, variadic, i)

		value, err := ParseValue(arg, t)
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d", err, i)
		}

		iface := value.Interface()
		if checker, ok := iface.(types.Checker); ok {
			if err := checker.Check(); err != nil {
				return nil, fmt.Errorf(
					"%w: '%s': validation failed: '%v': argument %d",
					ErrInvalidArgumentValue,
					arg,
					err.Error(),
					i,
				)
			}
		}

		values[i] = iface
	}

	return values, nil
}

func paramType(params []reflect.Type, variadic bool, i int) reflect.Type {
	if variadic && i >= len(params)-1 {
		return params[len(params)-1].Elem()
	}
	return params[i]
}
