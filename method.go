package mirror

import (
	"reflect"
	"slices"

	"github.com/anoideaopen/mirror/core/resolve"
	"github.com/anoideaopen/mirror/core/telemetry"
)

// MethodHandle calls one resolved method, function or method expression.
// Arguments given when it was resolved stay bound and are used by Invoke
// when it is called without any.
type MethodHandle struct {
	memberInfo
	bound []any
}

func newMethod(prev Handle, m *resolve.Member, recv reflect.Value, subject reflect.Type, args []any) *MethodHandle {
	h := &MethodHandle{bound: slices.Clone(args)}
	h.init(h, prev, m, recv, subject)
	return h
}

func (h *MethodHandle) Back() Handle { return h.backOr(h) }

func (h *MethodHandle) Release() Handle {
	h.cut()
	return h
}

func (h *MethodHandle) Kind() Kind { return KindMethod }

// Invoke calls the member with args, or with the bound arguments when args is empty.
func (h *MethodHandle) Invoke(args ...any) (Handle, error) {
	return invoke(h, opInvoke, h.spanOp(), h.member, h.recv, h.subject, h.arguments(args))
}

// InvokeBy calls the member on receiver. Functions and method expressions
// get receiver as their first argument.
func (h *MethodHandle) InvokeBy(receiver any, args ...any) (Handle, error) {
	args = h.arguments(args)
	if h.member.Kind != resolve.KindMethod {
		return invoke(h, opInvoke, h.spanOp(), h.member, reflect.Value{}, h.subject, append([]any{unwrapArg(receiver)}, args...))
	}

	recv, err := explicitReceiver(h.subject, receiver)
	if err != nil {
		return nil, newError(opInvoke, h.member.Name, h.subject, err)
	}
	return invoke(h, opInvoke, telemetry.OpCall, h.member, recv, h.subject, args)
}

// Bind returns a copy of the Handle with args bound.
func (h *MethodHandle) Bind(args ...any) Invoker {
	return newMethod(h.prev, h.member, h.recv, h.subject, unwrapArgs(args))
}

func (h *MethodHandle) arguments(args []any) []any {
	if len(args) == 0 {
		return slices.Clone(h.bound)
	}
	return unwrapArgs(args)
}

func (h *MethodHandle) spanOp() telemetry.OpTypeNum {
	if h.member.Kind == resolve.KindMethod {
		return telemetry.OpCall
	}
	return telemetry.OpStatic
}

// Arguments returns the bound arguments.
func (h *MethodHandle) Arguments() []any { return slices.Clone(h.bound) }

// IsBound reports whether the Handle carries a receiver.
func (h *MethodHandle) IsBound() bool { return h.recv.IsValid() }

func (h *MethodHandle) IsVariadic() bool { return h.member.IsVariadic() }

// ParameterTypes returns the parameter types, the receiver excluded for methods.
func (h *MethodHandle) ParameterTypes() []reflect.Type { return h.member.Params() }

func (h *MethodHandle) ParameterCount() int { return len(h.member.Params()) }

// ParameterType returns the type of the i-th parameter, nil when there is none.
func (h *MethodHandle) ParameterType(i int) *ClassHandle {
	params := h.member.Params()
	if i < 0 || i >= len(params) {
		return nil
	}
	return newClass(h, params[i])
}

func (h *MethodHandle) ReturnTypes() []reflect.Type { return h.member.Results() }

func (h *MethodHandle) ReturnsError() bool { return h.member.ReturnsError() }
