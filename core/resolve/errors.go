package resolve

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/samber/lo"
)

// Resolution and invocation errors.
var (
	ErrMemberNotFound         = errors.New("member not found")
	ErrIncorrectArgumentCount = errors.New("incorrect number of arguments")
	ErrInvalidArgumentValue   = errors.New("invalid argument value")
	ErrNilReceiver            = errors.New("nil receiver")
	ErrInaccessible           = errors.New("member is not accessible")
	ErrInvocation             = errors.New("invocation failed")
	ErrInstantiation          = errors.New("instantiation failed")
)

// NotFoundError reports that no member matched a name and parameter types on a
// subject type or any of its embedded types.
type NotFoundError struct {
	Kind    Kind
	Name    string
	Types   []reflect.Type
	Subject reflect.Type
}

// Error returns a message naming the symbol, the attempted parameter types and the subject.
func (e *NotFoundError) Error() string {
	if e.Kind == KindField || e.Kind == KindVar {
		return fmt.Sprintf("%v: no %s '%s' on type %s", ErrMemberNotFound, e.Kind, e.Name, e.Subject)
	}

	return fmt.Sprintf(
		"%v: no %s '%s' with params [%s] on type %s",
		ErrMemberNotFound,
		e.Kind,
		e.Name,
		FormatTypes(e.Types),
		e.Subject,
	)
}

// Is makes errors.Is(err, ErrMemberNotFound) hold.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrMemberNotFound
}

// FormatTypes joins type names with commas; nil arguments print as "nil".
func FormatTypes(ts []reflect.Type) string {
	return strings.Join(lo.Map(ts, func(t reflect.Type, _ int) string {
		if t == nil || t == nilType {
			return "nil"
		}
		return t.String()
	}), ", ")
}
