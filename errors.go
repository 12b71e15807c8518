package mirror

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/anoideaopen/mirror/core/resolve"
	"github.com/anoideaopen/mirror/core/types"
)

// Causes carried by *Error.
var (
	ErrMemberNotFound         = resolve.ErrMemberNotFound
	ErrIncorrectArgumentCount = resolve.ErrIncorrectArgumentCount
	ErrInvalidArgumentValue   = resolve.ErrInvalidArgumentValue
	ErrNilReceiver            = resolve.ErrNilReceiver
	ErrInaccessible           = resolve.ErrInaccessible
	ErrInvocation             = resolve.ErrInvocation
	ErrInstantiation          = resolve.ErrInstantiation
	ErrTypeNotFound           = types.ErrTypeNotFound
	ErrIndexOutOfRange        = errors.New("index out of range")
	ErrAlreadyRegistered      = types.ErrAlreadyRegistered
)

// Error is the failure of a reflective operation. Err holds the cause, which
// can be matched with errors.Is against the sentinels of this package.
type Error struct {
	Op      string
	Name    string
	Subject reflect.Type
	Err     error
}

func (e *Error) Error() string {
	subject := "nil"
	if e.Subject != nil && e.Subject != types.NilType {
		subject = e.Subject.String()
	}

	if e.Name == "" {
		return fmt.Sprintf("mirror: %s on %s: %v", e.Op, subject, e.Err)
	}
	return fmt.Sprintf("mirror: %s '%s' on %s: %v", e.Op, e.Name, subject, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ElementError tells which element of a batch an operation failed on.
type ElementError struct {
	Index int
	Err   error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("element %d: %v", e.Index, e.Err)
}

func (e *ElementError) Unwrap() error {
	return e.Err
}

func newError(op, name string, subject reflect.Type, err error) error {
	var me *Error
	if errors.As(err, &me) && me.Op == op && me.Name == name {
		return err
	}
	return &Error{Op: op, Name: name, Subject: subject, Err: err}
}

const (
	opCall      = "call"
	opCallBy    = "callBy"
	opCallText  = "callText"
	opCreate    = "create"
	opField     = "field"
	opMethod    = "method"
	opInvoke    = "invoke"
	opGet       = "get"
	opSet       = "set"
	opFind      = "find"
	opConvert   = "convert"
	opDecode    = "decode"
	opConfigure = "configure"
	opEnum      = "enum"
	opMember    = "member"
)
