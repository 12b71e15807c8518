package mirror

import (
	"reflect"
	goruntime "runtime"
	"strings"

	"github.com/anoideaopen/mirror/core/resolve"
	"github.com/anoideaopen/mirror/core/types"
)

// memberInfo is the part shared by field, method and constructor Handles.
// Their reflective operations (Call, Field...) act on the *resolve.Member
// descriptor itself.
type memberInfo struct {
	chain
	valueOps
	member  *resolve.Member
	recv    reflect.Value
	subject reflect.Type
}

func (mi *memberInfo) init(self Handle, prev Handle, m *resolve.Member, recv reflect.Value, subject reflect.Type) {
	mi.chain = chain{prev: prev}
	mi.valueOps = valueOps{self: self, v: addressable(reflect.ValueOf(m))}
	mi.member = m
	mi.recv = recv
	mi.subject = subject
}

// Member returns the resolved member.
func (mi *memberInfo) Member() *resolve.Member { return mi.member }

// Receiver returns the value the member is read from or called on, nil for
// members that need none.
func (mi *memberInfo) Receiver() any {
	if !mi.recv.IsValid() || !mi.recv.CanInterface() {
		return nil
	}
	return mi.recv.Interface()
}

// Declaring returns the type that declares the member.
func (mi *memberInfo) Declaring() *ClassHandle {
	return newClass(mi.self, mi.member.Owner)
}

func (mi *memberInfo) IsExported() bool { return mi.member.IsExported() }

func (mi *memberInfo) Name() string { return mi.member.Name }

func (mi *memberInfo) Unwrap() any { return mi.member }

func (mi *memberInfo) Type() reflect.Type { return mi.v.Type() }

func (mi *memberInfo) Is(other Handle) bool { return same(mi.self, other) }

func (mi *memberInfo) String() string { return mi.member.String() }

// OnMember starts a chain at a member resolved elsewhere. receiver is the
// value a method or field is reached through and must be of the type the
// member was resolved on; it is ignored for every other kind. args become
// the bound arguments of methods, functions and constructors.
func OnMember(m *resolve.Member, receiver any, args ...any) (Handle, error) {
	if m == nil {
		return nil, newError(opMember, "", types.NilType, ErrInvalidArgumentValue)
	}
	args = unwrapArgs(args)

	switch m.Kind {
	case resolve.KindMethod, resolve.KindField:
		subject := m.Subject
		if subject == nil {
			subject = m.Owner
		}
		recv, err := explicitReceiver(subject, receiver)
		if err != nil {
			return nil, newError(opMember, m.Name, subject, err)
		}
		if m.Kind == resolve.KindField {
			return newField(Null(), m, recv, subject), nil
		}
		return newMethod(Null(), m, recv, subject, args), nil
	case resolve.KindVar:
		return newField(Null(), m, reflect.Value{}, m.Owner), nil
	case resolve.KindConstructor:
		return newConstructor(Null(), m, m.Owner, args), nil
	default:
		return newMethod(Null(), m, reflect.Value{}, m.Owner, args), nil
	}
}

// OnFunc starts a chain at the function fn, with args bound.
func OnFunc(fn any, args ...any) (*MethodHandle, error) {
	m, err := resolve.NewFunc(nil, funcName(fn), fn)
	if err != nil {
		return nil, newError(opMember, "", reflect.TypeOf(fn), err)
	}
	return newMethod(Null(), m, reflect.Value{}, m.Owner, unwrapArgs(args)), nil
}

// funcName returns the short name of a named function, "func" otherwise.
func funcName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return "func"
	}
	full := goruntime.FuncForPC(v.Pointer()).Name()
	if i := strings.LastIndexByte(full, '.'); i >= 0 {
		full = full[i+1:]
	}
	if full == "" {
		return "func"
	}
	return full
}
