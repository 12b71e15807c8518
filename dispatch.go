package mirror

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	corereflect "github.com/anoideaopen/mirror/core/reflect"
	"github.com/anoideaopen/mirror/core/resolve"
	"github.com/anoideaopen/mirror/core/telemetry"
	"github.com/anoideaopen/mirror/core/types"
	"github.com/samber/lo"
)

// valueOps implements the Handle operations on a fixed value and links their
// results to self.
type valueOps struct {
	self Handle
	v    reflect.Value
}

func (o valueOps) Call(name string, args ...any) (Handle, error) {
	if !o.v.IsValid() {
		return nil, nilReceiver(opCall, name)
	}
	return callOn(o.self, o.v, name, args)
}

func (o valueOps) CallBy(receiver any, name string, args ...any) (Handle, error) {
	if !o.v.IsValid() {
		return nil, nilReceiver(opCallBy, name)
	}
	return callByOn(o.self, receiverOf(o.v).Type(), receiver, name, args)
}

func (o valueOps) CallText(name string, args ...string) (Handle, error) {
	if !o.v.IsValid() {
		return nil, nilReceiver(opCallText, name)
	}
	recv := receiverOf(o.v)
	subject := recv.Type()
	return callText(o.self, env().resolver.Candidates(subject, name, false), recv, subject, name, args)
}

func (o valueOps) Create(args ...any) (Handle, error) {
	if !o.v.IsValid() {
		return nil, nilReceiver(opCreate, "")
	}
	return createOn(o.self, o.v.Type(), args)
}

func (o valueOps) Field(name string) (Accessor, error) {
	if !o.v.IsValid() {
		return nil, nilReceiver(opField, name)
	}
	recv := receiverOf(o.v)
	subject := recv.Type()

	m, err := env().resolver.Field(subject, name)
	if err != nil {
		return nil, newError(opField, name, subject, err)
	}
	return newField(o.self, m, recv, subject), nil
}

func (o valueOps) Method(name string, args ...any) (Invoker, error) {
	if !o.v.IsValid() {
		return nil, nilReceiver(opMethod, name)
	}
	args = unwrapArgs(args)
	recv := receiverOf(o.v)
	subject := recv.Type()

	m, err := env().resolver.Method(subject, name, types.TypesOf(args), true)
	if err != nil {
		return nil, newError(opMethod, name, subject, err)
	}
	return newMethod(o.self, m, recv, subject, args), nil
}

func (o valueOps) MethodTypes(name string, ts ...reflect.Type) (Invoker, error) {
	if !o.v.IsValid() {
		return nil, nilReceiver(opMethod, name)
	}
	recv := receiverOf(o.v)
	subject := recv.Type()

	m, err := env().resolver.Method(subject, name, ts, false)
	if err != nil {
		return nil, newError(opMethod, name, subject, err)
	}
	return newMethod(o.self, m, recv, subject, nil), nil
}

func nilReceiver(op, name string) error {
	return newError(op, name, types.NilType, ErrNilReceiver)
}

func callOn(prev Handle, v reflect.Value, name string, args []any) (Handle, error) {
	args = unwrapArgs(args)
	recv := receiverOf(v)
	subject := recv.Type()

	m, err := env().resolver.Method(subject, name, types.TypesOf(args), true)
	if err != nil {
		return nil, newError(opCall, name, subject, err)
	}
	return invoke(prev, opCall, telemetry.OpCall, m, recv, subject, args)
}

func callByOn(prev Handle, subject reflect.Type, receiver any, name string, args []any) (Handle, error) {
	args = unwrapArgs(args)
	recv, err := explicitReceiver(subject, receiver)
	if err != nil {
		return nil, newError(opCallBy, name, subject, err)
	}

	m, err := env().resolver.Method(subject, name, types.TypesOf(args), true)
	if err != nil {
		return nil, newError(opCallBy, name, subject, err)
	}
	return invoke(prev, opCallBy, telemetry.OpCall, m, recv, subject, args)
}

// explicitReceiver prepares a receiver passed in by the caller for members
// resolved on subject. It must be a value or pointer of the subject type, or
// implement it when subject is an interface.
func explicitReceiver(subject reflect.Type, receiver any) (reflect.Value, error) {
	recv := receiverOf(addressable(reflect.ValueOf(unwrapArg(receiver))))
	if !recv.IsValid() {
		return reflect.Value{}, ErrNilReceiver
	}
	if !resolve.Fits(recv.Type(), subject) {
		return reflect.Value{}, fmt.Errorf("%w: receiver %s is not a %s", ErrInvalidArgumentValue, recv.Type(), subject)
	}
	return recv, nil
}

func createOn(prev Handle, t reflect.Type, args []any) (Handle, error) {
	args = unwrapArgs(args)

	m, err := env().resolver.Constructor(t, types.TypesOf(args), true)
	if err != nil {
		return nil, newError(opCreate, types.Base(t).Name(), t, err)
	}
	return invoke(prev, opCreate, telemetry.OpCreate, m, reflect.Value{}, t, args)
}

// callText tries the candidates in resolution order and invokes the first
// whose parameters the text arguments decode into.
func callText(
	prev Handle,
	candidates []*resolve.Member,
	recv reflect.Value,
	subject reflect.Type,
	name string,
	text []string,
) (Handle, error) {
	var parseErr error
	for _, m := range candidates {
		args, err := corereflect.ParseArguments(m.Params(), m.IsVariadic(), text)
		if err != nil {
			if !errors.Is(err, corereflect.ErrIncorrectArgumentCount) && parseErr == nil {
				parseErr = err
			}
			continue
		}
		return invoke(prev, opCallText, telemetry.OpCall, m, recv, subject, args)
	}

	if parseErr != nil {
		return nil, newError(opCallText, name, subject, fmt.Errorf("%w: %w", ErrInvalidArgumentValue, parseErr))
	}

	notFound := &resolve.NotFoundError{
		Kind:    resolve.KindMethod,
		Name:    name,
		Types:   lo.Times(len(text), func(int) reflect.Type { return reflect.TypeOf("") }),
		Subject: subject,
	}
	return nil, newError(opCallText, name, subject, notFound)
}

// invoke calls m inside a span and wraps the results.
func invoke(
	prev Handle,
	op string,
	spanOp telemetry.OpTypeNum,
	m *resolve.Member,
	recv reflect.Value,
	subject reflect.Type,
	args []any,
) (Handle, error) {
	_, span := telemetry.StartSpan(context.Background(), spanName(subject, m.Name), spanOp,
		telemetry.Member(m.Name),
		telemetry.Subject(subject),
		telemetry.Args(len(args)),
	)

	out, err := resolve.Invoke(m, recv, args)
	if err != nil {
		err = newError(op, m.Name, subject, err)
	}
	telemetry.EndSpan(span, err)
	if err != nil {
		return nil, err
	}

	return wrapResults(prev, out), nil
}

// wrapResults turns call results into a Handle: none gives a Null Handle,
// one a Handle of its value and several a BatchHandle.
func wrapResults(prev Handle, out []reflect.Value) Handle {
	switch len(out) {
	case 0:
		return newNull(prev)
	case 1:
		return wrapValue(prev, out[0])
	default:
		return newBatch(prev, lo.Map(out, func(v reflect.Value, _ int) any {
			return v.Interface()
		}))
	}
}

func spanName(subject reflect.Type, name string) string {
	if subject == nil {
		return name
	}
	return subject.String() + "." + name
}
