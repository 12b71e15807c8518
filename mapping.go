package mirror

import (
	"reflect"
	"sort"

	"github.com/anoideaopen/mirror/core/stringsx"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

// MappingHandle wraps a map[string]any and treats getter and setter calls
// as key accesses: Call("getName") reads the "name" key and
// Call("setName", v) writes it. Other calls go to the map value itself.
type MappingHandle struct {
	chain
	valueOps
	m map[string]any
}

// OnMap wraps m in a MappingHandle. A nil map is replaced by an empty one.
func OnMap(m map[string]any) *MappingHandle {
	if m == nil {
		m = make(map[string]any)
	}
	return newMapping(Null(), m)
}

func newMapping(prev Handle, m map[string]any) *MappingHandle {
	h := &MappingHandle{chain: chain{prev: prev}, m: m}
	h.valueOps = valueOps{self: h, v: addressable(reflect.ValueOf(m))}
	return h
}

func (h *MappingHandle) Back() Handle { return h.backOr(h) }

func (h *MappingHandle) Release() Handle {
	h.cut()
	return h
}

func (h *MappingHandle) Unwrap() any { return h.m }

func (h *MappingHandle) Type() reflect.Type { return h.v.Type() }

func (h *MappingHandle) Kind() Kind { return KindMap }

func (h *MappingHandle) Is(other Handle) bool { return same(h, other) }

func (h *MappingHandle) String() string { return describe(h) }

// Call reads a key for a getter name without arguments, writes it for a
// setter name with one argument and resolves name on the map otherwise.
// A missing key reads as a Null Handle; a write returns a Null Handle.
func (h *MappingHandle) Call(name string, args ...any) (Handle, error) {
	switch kind, key := stringsx.AccessorKey(name); {
	case kind == stringsx.Getter && len(args) == 0:
		return wrap(h, h.m[key]), nil
	case kind == stringsx.Setter && len(args) == 1:
		h.m[key] = unwrapArg(args[0])
		return newNull(h), nil
	}

	return h.valueOps.Call(name, args...)
}

// Keys returns the keys of the map in sorted order.
func (h *MappingHandle) Keys() []string {
	keys := lo.Keys(h.m)
	sort.Strings(keys)
	return keys
}

// Decode fills the struct or map target points to from the map. Keys match
// field names without regard to case and values are converted weakly, so
// "42" decodes into an int.
func (h *MappingHandle) Decode(target any) error {
	if err := decode(h.m, target); err != nil {
		return newError(opDecode, "", reflect.TypeOf(target), err)
	}
	return nil
}

func decode(input map[string]any, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		Squash:           true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}
