package mirror

import (
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrEnumValue is returned when a constant cannot be made a value of the enum type.
var ErrEnumValue = fmt.Errorf("%w: not a value of the enum type", ErrInvalidArgumentValue)

// enumSet holds the named constants of one type in registration order.
type enumSet struct {
	mu     sync.RWMutex
	names  []string
	values map[string]any
}

var enums sync.Map // reflect.Type -> *enumSet

func enumSetOf(t reflect.Type) *enumSet {
	set, _ := enums.LoadOrStore(t, &enumSet{values: make(map[string]any)})
	return set.(*enumSet)
}

// add stores v under name unless the name is taken and returns the value
// stored under name.
func (s *enumSet) add(name string, v any) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.values[name]; ok {
		return prev, false
	}
	s.names = append(s.names, name)
	s.values[name] = v
	return v, true
}

func (s *enumSet) get(name string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[name]
	return v, ok
}

// EnumHandle manages the named constants of T, Go's counterpart of enum
// constants added at runtime. Constants are shared by every EnumHandle of
// the same T and are kept in registration order.
type EnumHandle[T any] struct {
	*ClassHandle
	set *enumSet
}

// OnEnum returns the EnumHandle of T.
func OnEnum[T any]() *EnumHandle[T] {
	c := Class[T]()
	h := &EnumHandle[T]{ClassHandle: c, set: enumSetOf(c.t)}
	c.self = h
	return h
}

func (h *EnumHandle[T]) Kind() Kind { return KindEnum }

func (h *EnumHandle[T]) String() string { return describe(h) }

func (h *EnumHandle[T]) Is(other Handle) bool { return same(h, other) }

func (h *EnumHandle[T]) Release() Handle {
	h.cut()
	return h
}

func (h *EnumHandle[T]) Back() Handle { return h.backOr(h) }

// Register adds v under name. A name that is already taken yields
// ErrAlreadyRegistered unless it holds an equal value.
func (h *EnumHandle[T]) Register(name string, v T) error {
	stored, added := h.set.add(name, v)
	if !added && !equalValues(stored, any(v)) {
		return newError(opEnum, name, h.t, fmt.Errorf("%w: constant '%s'", ErrAlreadyRegistered, name))
	}
	return nil
}

// Add returns the constant called name, creating it with the constructor
// args select when there is none yet. Concurrent adds of the same name all
// get the value stored first.
func (h *EnumHandle[T]) Add(name string, args ...any) (T, error) {
	var zero T

	if v, ok := h.set.get(name); ok {
		return v.(T), nil
	}

	created, err := h.Create(args...)
	if err != nil {
		return zero, newError(opEnum, name, h.t, err)
	}

	v, err := h.valueOf(created.Unwrap())
	if err != nil {
		return zero, newError(opEnum, name, h.t, err)
	}

	stored, added := h.set.add(name, v)
	if added {
		env().log.WithFields(logrus.Fields{
			"enum": h.t.String(),
			"name": name,
		}).Debug("enum constant added")
	}
	return stored.(T), nil
}

// valueOf converts a created value to T, dereferencing the *T constructors
// give for structs.
func (h *EnumHandle[T]) valueOf(x any) (T, error) {
	if v, ok := x.(T); ok {
		return v, nil
	}
	if p, ok := x.(*T); ok && p != nil {
		return *p, nil
	}

	var zero T
	return zero, fmt.Errorf("%w: %T", ErrEnumValue, x)
}

// ValueOf returns the constant called name.
func (h *EnumHandle[T]) ValueOf(name string) (T, bool) {
	v, ok := h.set.get(name)
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

func (h *EnumHandle[T]) Contains(name string) bool {
	_, ok := h.set.get(name)
	return ok
}

// Names returns the constant names in registration order.
func (h *EnumHandle[T]) Names() []string {
	h.set.mu.RLock()
	defer h.set.mu.RUnlock()

	return slices.Clone(h.set.names)
}

// Values returns the constants in registration order.
func (h *EnumHandle[T]) Values() []T {
	h.set.mu.RLock()
	defer h.set.mu.RUnlock()

	out := make([]T, len(h.set.names))
	for i, name := range h.set.names {
		out[i] = h.set.values[name].(T)
	}
	return out
}

// Ordinal returns the registration position of name, -1 when it is unknown.
func (h *EnumHandle[T]) Ordinal(name string) int {
	h.set.mu.RLock()
	defer h.set.mu.RUnlock()

	return slices.Index(h.set.names, name)
}

// Constant wraps the constant called name in a Handle linked to the enum.
func (h *EnumHandle[T]) Constant(name string) Handle {
	v, ok := h.set.get(name)
	if !ok {
		return newNull(h)
	}
	return wrap(h, v)
}
