package telemetry

import (
	"reflect"

	"go.opentelemetry.io/otel/attribute"
)

// OpTypeNum is the kind of reflective operation a span covers.
type OpTypeNum int

func (t OpTypeNum) String() string {
	switch t {
	case OpCall:
		return "call"
	case OpStatic:
		return "static"
	case OpCreate:
		return "create"
	case OpGet:
		return "get"
	case OpSet:
		return "set"
	case OpUnknown:
		fallthrough
	default:
		return "unknown"
	}
}

const (
	OpUnknown OpTypeNum = iota
	OpCall
	OpStatic
	OpCreate
	OpGet
	OpSet
)

// Attribute keys set on reflective operation spans.
const (
	KeyOp      = attribute.Key("mirror.op")
	KeyMember  = attribute.Key("mirror.member")
	KeySubject = attribute.Key("mirror.subject")
	KeyArgs    = attribute.Key("mirror.args")
)

func OpType(t OpTypeNum) attribute.KeyValue {
	return KeyOp.String(t.String())
}

func Member(name string) attribute.KeyValue {
	return KeyMember.String(name)
}

func Subject(t reflect.Type) attribute.KeyValue {
	if t == nil {
		return KeySubject.String("nil")
	}
	return KeySubject.String(t.String())
}

func Args(n int) attribute.KeyValue {
	return KeyArgs.Int(n)
}
