package mirror

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/samber/lo"
)

var batchType = reflect.TypeOf([]any(nil))

// batchOps broadcasts the Handle operations to every item and collects the
// results, in item order, into a BatchHandle linked to self. The first
// failing item stops the broadcast with an *ElementError.
type batchOps struct {
	self  Handle
	items []Handle
}

func (o batchOps) each(fn func(Handle) (Handle, error)) (Handle, error) {
	out := make([]Handle, len(o.items))
	for i, item := range o.items {
		h, err := fn(item)
		if err != nil {
			return nil, &ElementError{Index: i, Err: err}
		}
		out[i] = h
	}
	return newBatchOf(o.self, out), nil
}

func (o batchOps) Call(name string, args ...any) (Handle, error) {
	return o.each(func(h Handle) (Handle, error) { return h.Call(name, args...) })
}

func (o batchOps) CallBy(receiver any, name string, args ...any) (Handle, error) {
	return o.each(func(h Handle) (Handle, error) { return h.CallBy(receiver, name, args...) })
}

func (o batchOps) CallText(name string, args ...string) (Handle, error) {
	return o.each(func(h Handle) (Handle, error) { return h.CallText(name, args...) })
}

func (o batchOps) Create(args ...any) (Handle, error) {
	return o.each(func(h Handle) (Handle, error) { return h.Create(args...) })
}

func (o batchOps) Field(name string) (Accessor, error) {
	out := make([]Accessor, len(o.items))
	for i, item := range o.items {
		a, err := item.Field(name)
		if err != nil {
			return nil, &ElementError{Index: i, Err: err}
		}
		out[i] = a
	}
	return newBatchField(o.self, out), nil
}

func (o batchOps) Method(name string, args ...any) (Invoker, error) {
	return o.invokers(func(h Handle) (Invoker, error) { return h.Method(name, args...) })
}

func (o batchOps) MethodTypes(name string, ts ...reflect.Type) (Invoker, error) {
	return o.invokers(func(h Handle) (Invoker, error) { return h.MethodTypes(name, ts...) })
}

func (o batchOps) invokers(fn func(Handle) (Invoker, error)) (Invoker, error) {
	out := make([]Invoker, len(o.items))
	for i, item := range o.items {
		inv, err := fn(item)
		if err != nil {
			return nil, &ElementError{Index: i, Err: err}
		}
		out[i] = inv
	}
	return newBatchMethod(o.self, out), nil
}

func (o batchOps) values() []any {
	return lo.Map(o.items, func(h Handle, _ int) any { return h.Unwrap() })
}

func (o batchOps) describe(kind Kind) string {
	return fmt.Sprintf("%s%v", kind, lo.Map(o.items, func(h Handle, _ int) string { return h.String() }))
}

// BatchHandle holds an ordered group of Handles. Every operation on it is
// applied to each element and gives a BatchHandle of the results.
type BatchHandle struct {
	chain
	batchOps
	vals []any
}

// OnBatch wraps values in a BatchHandle, each value in the Handle On would give.
func OnBatch(values ...any) *BatchHandle {
	return newBatch(Null(), values)
}

func newBatch(prev Handle, values []any) *BatchHandle {
	h := &BatchHandle{chain: chain{prev: prev}, vals: values}
	h.batchOps = batchOps{
		self: h,
		items: lo.Map(values, func(v any, _ int) Handle {
			return wrap(h, v)
		}),
	}
	return h
}

func newBatchOf(prev Handle, items []Handle) *BatchHandle {
	h := &BatchHandle{chain: chain{prev: prev}}
	h.batchOps = batchOps{self: h, items: items}
	h.vals = h.values()
	return h
}

func (h *BatchHandle) Back() Handle { return h.backOr(h) }

func (h *BatchHandle) Release() Handle {
	h.cut()
	return h
}

// Unwrap returns the values of the elements.
func (h *BatchHandle) Unwrap() any { return h.vals }

func (h *BatchHandle) Type() reflect.Type { return batchType }

func (h *BatchHandle) Kind() Kind { return KindBatch }

func (h *BatchHandle) Is(other Handle) bool { return same(h, other) }

func (h *BatchHandle) String() string { return h.describe(KindBatch) }

func (h *BatchHandle) Len() int { return len(h.items) }

// At returns the i-th element.
func (h *BatchHandle) At(i int) (Handle, error) {
	if i < 0 || i >= len(h.items) {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(h.items))
	}
	return h.items[i], nil
}

func (h *BatchHandle) Handles() []Handle { return slices.Clone(h.items) }

func (h *BatchHandle) Values() []any { return slices.Clone(h.vals) }

// BatchMethodHandle invokes a method resolved on every element of a batch.
type BatchMethodHandle struct {
	chain
	batchOps
	invokers []Invoker
}

func newBatchMethod(prev Handle, invokers []Invoker) *BatchMethodHandle {
	h := &BatchMethodHandle{chain: chain{prev: prev}, invokers: invokers}
	h.batchOps = batchOps{
		self:  h,
		items: lo.Map(invokers, func(inv Invoker, _ int) Handle { return inv }),
	}
	return h
}

func (h *BatchMethodHandle) Back() Handle { return h.backOr(h) }

func (h *BatchMethodHandle) Release() Handle {
	h.cut()
	return h
}

func (h *BatchMethodHandle) Unwrap() any { return h.values() }

func (h *BatchMethodHandle) Type() reflect.Type { return batchType }

func (h *BatchMethodHandle) Kind() Kind { return KindMethod }

func (h *BatchMethodHandle) Is(other Handle) bool { return h == other }

func (h *BatchMethodHandle) String() string { return h.describe(KindMethod) }

func (h *BatchMethodHandle) Invoke(args ...any) (Handle, error) {
	return h.each(func(item Handle) (Handle, error) { return item.(Invoker).Invoke(args...) })
}

func (h *BatchMethodHandle) InvokeBy(receiver any, args ...any) (Handle, error) {
	return h.each(func(item Handle) (Handle, error) { return item.(Invoker).InvokeBy(receiver, args...) })
}

func (h *BatchMethodHandle) Bind(args ...any) Invoker {
	return newBatchMethod(h.prev, lo.Map(h.invokers, func(inv Invoker, _ int) Invoker {
		return inv.Bind(args...)
	}))
}

// BatchFieldHandle reads and writes a field resolved on every element of a batch.
type BatchFieldHandle struct {
	chain
	batchOps
	accessors []Accessor
}

func newBatchField(prev Handle, accessors []Accessor) *BatchFieldHandle {
	h := &BatchFieldHandle{chain: chain{prev: prev}, accessors: accessors}
	h.batchOps = batchOps{
		self:  h,
		items: lo.Map(accessors, func(a Accessor, _ int) Handle { return a }),
	}
	return h
}

func (h *BatchFieldHandle) Back() Handle { return h.backOr(h) }

func (h *BatchFieldHandle) Release() Handle {
	h.cut()
	return h
}

func (h *BatchFieldHandle) Unwrap() any { return h.values() }

func (h *BatchFieldHandle) Type() reflect.Type { return batchType }

func (h *BatchFieldHandle) Kind() Kind { return KindField }

func (h *BatchFieldHandle) Is(other Handle) bool { return h == other }

func (h *BatchFieldHandle) String() string { return h.describe(KindField) }

// Get reads the field of every element.
func (h *BatchFieldHandle) Get() (Handle, error) {
	return h.each(func(item Handle) (Handle, error) { return item.(Accessor).Get() })
}

// Set writes value to the field of every element in order and stops at the
// first failure. Elements before the failing one keep the new value.
func (h *BatchFieldHandle) Set(value any) error {
	for i, a := range h.accessors {
		if err := a.Set(value); err != nil {
			return &ElementError{Index: i, Err: err}
		}
	}
	return nil
}
