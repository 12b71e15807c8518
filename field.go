package mirror

import (
	"context"
	"reflect"

	"github.com/anoideaopen/mirror/core/resolve"
	"github.com/anoideaopen/mirror/core/telemetry"
	"github.com/sirupsen/logrus"
)

// FieldHandle reads and writes one struct field or registered variable.
type FieldHandle struct {
	memberInfo
}

func newField(prev Handle, m *resolve.Member, recv reflect.Value, subject reflect.Type) *FieldHandle {
	h := &FieldHandle{}
	h.init(h, prev, m, recv, subject)
	return h
}

func (h *FieldHandle) Back() Handle { return h.backOr(h) }

func (h *FieldHandle) Release() Handle {
	h.cut()
	return h
}

func (h *FieldHandle) Kind() Kind { return KindField }

// Get reads the field. The result shares the field's storage.
func (h *FieldHandle) Get() (Handle, error) {
	return h.get(h.recv)
}

// GetFrom reads the same field from another receiver of the subject type.
func (h *FieldHandle) GetFrom(receiver any) (Handle, error) {
	if h.member.Kind != resolve.KindField {
		return h.get(reflect.Value{})
	}
	recv, err := explicitReceiver(h.subject, receiver)
	if err != nil {
		return nil, newError(opGet, h.member.Name, h.subject, err)
	}
	return h.get(recv)
}

func (h *FieldHandle) get(recv reflect.Value) (Handle, error) {
	_, span := telemetry.StartSpan(context.Background(), spanName(h.subject, h.member.Name), telemetry.OpGet,
		telemetry.Member(h.member.Name),
		telemetry.Subject(h.subject),
	)

	v, unlocked, err := h.member.Value(recv)
	if err != nil {
		err = newError(opGet, h.member.Name, h.subject, err)
	}
	telemetry.EndSpan(span, err)
	if err != nil {
		return nil, err
	}

	if unlocked {
		env().log.WithFields(logrus.Fields{
			"field":   h.member.Name,
			"subject": h.subject.String(),
		}).Debug("unexported field unlocked")
	}

	return wrapValue(h, v), nil
}

// Set assigns value to the field. A Handle value is unwrapped first.
func (h *FieldHandle) Set(value any) error {
	_, span := telemetry.StartSpan(context.Background(), spanName(h.subject, h.member.Name), telemetry.OpSet,
		telemetry.Member(h.member.Name),
		telemetry.Subject(h.subject),
	)

	err := h.member.Set(h.recv, unwrapArg(value))
	if err != nil {
		err = newError(opSet, h.member.Name, h.subject, err)
	}
	telemetry.EndSpan(span, err)

	return err
}

// FieldType returns the declared type of the field.
func (h *FieldHandle) FieldType() *ClassHandle {
	return newClass(h, h.member.Type())
}

// IsUnlocked reports whether reading the field needs an access unlock.
func (h *FieldHandle) IsUnlocked() bool {
	_, unlocked, err := h.member.Value(h.recv)
	return err == nil && unlocked
}
