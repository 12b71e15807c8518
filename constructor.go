package mirror

import (
	"reflect"
	"slices"

	"github.com/anoideaopen/mirror/core/resolve"
	"github.com/anoideaopen/mirror/core/telemetry"
)

// ConstructorHandle creates instances with one resolved constructor.
type ConstructorHandle struct {
	memberInfo
	bound []any
}

func newConstructor(prev Handle, m *resolve.Member, t reflect.Type, args []any) *ConstructorHandle {
	h := &ConstructorHandle{bound: slices.Clone(args)}
	h.init(h, prev, m, reflect.Value{}, t)
	return h
}

func (h *ConstructorHandle) Back() Handle { return h.backOr(h) }

func (h *ConstructorHandle) Release() Handle {
	h.cut()
	return h
}

func (h *ConstructorHandle) Kind() Kind { return KindConstructor }

// Create instantiates with args, or with the bound arguments when args is empty.
func (h *ConstructorHandle) Create(args ...any) (Handle, error) {
	if len(args) == 0 {
		args = h.bound
	}
	return invoke(h, opCreate, telemetry.OpCreate, h.member, reflect.Value{}, h.subject, unwrapArgs(args))
}

// Bind returns a copy of the Handle with args bound.
func (h *ConstructorHandle) Bind(args ...any) *ConstructorHandle {
	return newConstructor(h.prev, h.member, h.subject, unwrapArgs(args))
}

func (h *ConstructorHandle) Arguments() []any { return slices.Clone(h.bound) }

// IsImplicit reports whether this is the zero-value constructor.
func (h *ConstructorHandle) IsImplicit() bool { return h.member.Implicit }

func (h *ConstructorHandle) IsVariadic() bool { return h.member.IsVariadic() }

func (h *ConstructorHandle) ParameterTypes() []reflect.Type { return h.member.Params() }

func (h *ConstructorHandle) ParameterCount() int { return len(h.member.Params()) }
