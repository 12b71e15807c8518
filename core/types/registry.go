package types

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/anoideaopen/mirror/core/logger"
)

// Registry errors.
var (
	ErrTypeNotFound       = errors.New("type not found")
	ErrAlreadyRegistered  = errors.New("name already registered")
	ErrInvalidConstructor = errors.New("invalid constructor")
	ErrInvalidFunc        = errors.New("invalid function")
	ErrInvalidVar         = errors.New("invalid variable")
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Registry maps type names to types and holds the constructors, functions and
// variables registered against each type. Go cannot look a type up by name at
// runtime, so every type reachable by name has to be registered first,
// usually from an init function.
//
// A Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	names map[string]reflect.Type
	ctors map[reflect.Type][]reflect.Value
	funcs map[reflect.Type]map[string][]reflect.Value
	vars  map[reflect.Type]map[string]reflect.Value
}

// Default is the registry used by the package-level functions.
var Default = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		names: make(map[string]reflect.Type),
		ctors: make(map[reflect.Type][]reflect.Value),
		funcs: make(map[reflect.Type]map[string][]reflect.Value),
		vars:  make(map[reflect.Type]map[string]reflect.Value),
	}
}

// QualifiedNames returns the names a type is registered under: the short
// "pkg.Name" form and, for named types, the "import/path.Name" form.
func QualifiedNames(t reflect.Type) []string {
	names := []string{t.String()}
	if t.Name() != "" && t.PkgPath() != "" {
		if full := t.PkgPath() + "." + t.Name(); full != names[0] {
			names = append(names, full)
		}
	}
	return names
}

// Register associates t with its qualified names and the given aliases.
// Registering the same type twice is a no-op; an alias already taken by a
// different type yields ErrAlreadyRegistered.
func (r *Registry) Register(t reflect.Type, aliases ...string) error {
	if t == nil {
		return fmt.Errorf("%w: nil type", ErrTypeNotFound)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.register(t, aliases...)
}

func (r *Registry) register(t reflect.Type, aliases ...string) error {
	names := append(QualifiedNames(t), aliases...)
	for _, name := range names {
		if prev, ok := r.names[name]; ok && prev != t {
			return fmt.Errorf("%w: '%s' is bound to %s", ErrAlreadyRegistered, name, prev)
		}
	}
	for _, name := range names {
		r.names[name] = t
	}

	logger.For("types").WithField("type", t.String()).Debug("type registered")

	return nil
}

// RegisterConstructor registers fn as a constructor of the type of its first
// result. fn must return either the value alone or the value and an error.
// The result type is registered as well and returned.
func (r *Registry) RegisterConstructor(fn any) (reflect.Type, error) {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		return nil, fmt.Errorf("%w: %T is not a function", ErrInvalidConstructor, fn)
	}

	ft := fv.Type()
	switch {
	case ft.NumOut() == 1:
	case ft.NumOut() == 2 && ft.Out(1) == errorType:
	default:
		return nil, fmt.Errorf("%w: %s must return a value and an optional error", ErrInvalidConstructor, ft)
	}
	if ft.Out(0) == errorType {
		return nil, fmt.Errorf("%w: %s constructs an error", ErrInvalidConstructor, ft)
	}

	t := Base(ft.Out(0))

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.register(t); err != nil {
		return nil, err
	}
	r.ctors[t] = append(r.ctors[t], fv)

	return t, nil
}

// RegisterFunc registers fn as a function named name on type t, the Go
// equivalent of a static method. Several functions may share a name; the
// resolver picks one by its parameter types.
func (r *Registry) RegisterFunc(t reflect.Type, name string, fn any) error {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		return fmt.Errorf("%w: %T is not a function", ErrInvalidFunc, fn)
	}
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidFunc)
	}

	t = Base(t)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.register(t); err != nil {
		return err
	}
	if r.funcs[t] == nil {
		r.funcs[t] = make(map[string][]reflect.Value)
	}
	r.funcs[t][name] = append(r.funcs[t][name], fv)

	return nil
}

// RegisterVar registers the variable ptr points to under name on type t, the
// Go equivalent of a static field.
func (r *Registry) RegisterVar(t reflect.Type, name string, ptr any) error {
	pv := reflect.ValueOf(ptr)
	if pv.Kind() != reflect.Pointer || pv.IsNil() {
		return fmt.Errorf("%w: %T is not a non-nil pointer", ErrInvalidVar, ptr)
	}
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidVar)
	}

	t = Base(t)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.register(t); err != nil {
		return err
	}
	if r.vars[t] == nil {
		r.vars[t] = make(map[string]reflect.Value)
	}
	r.vars[t][name] = pv

	return nil
}

// Constructors returns the constructors registered for t (or the type t points to).
func (r *Registry) Constructors(t reflect.Type) []reflect.Value {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ctors := r.ctors[Base(t)]
	out := make([]reflect.Value, len(ctors))
	copy(out, ctors)
	return out
}

// Funcs returns the functions registered for t under name.
func (r *Registry) Funcs(t reflect.Type, name string) []reflect.Value {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fns := r.funcs[Base(t)][name]
	out := make([]reflect.Value, len(fns))
	copy(out, fns)
	return out
}

// FuncNames returns the names of the functions registered for t.
func (r *Registry) FuncNames(t reflect.Type) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.funcs[Base(t)]))
	for name := range r.funcs[Base(t)] {
		names = append(names, name)
	}
	return names
}

// Var returns the pointer to the variable registered for t under name.
func (r *Registry) Var(t reflect.Type, name string) (reflect.Value, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.vars[Base(t)][name]
	return v, ok
}

// Vars returns the variables registered for t by name.
func (r *Registry) Vars(t reflect.Type) map[string]reflect.Value {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]reflect.Value, len(r.vars[Base(t)]))
	for name, v := range r.vars[Base(t)] {
		out[name] = v
	}
	return out
}

// Lookup returns the type registered under name. Besides registered names it
// understands the predeclared types and the composite forms "[]T", "T[]",
// "*T" and "map[K]V" built from names it can look up.
func (r *Registry) Lookup(name string) (reflect.Type, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false
	}

	if t, ok := BasicTypes[name]; ok {
		return t, true
	}

	r.mu.RLock()
	t, ok := r.names[name]
	r.mu.RUnlock()
	if ok {
		return t, true
	}

	switch {
	case strings.HasPrefix(name, "[]"):
		if elem, ok := r.Lookup(name[2:]); ok {
			return reflect.SliceOf(elem), true
		}
	case strings.HasSuffix(name, "[]"):
		if elem, ok := r.Lookup(name[:len(name)-2]); ok {
			return reflect.SliceOf(elem), true
		}
	case strings.HasPrefix(name, "*"):
		if elem, ok := r.Lookup(name[1:]); ok {
			return reflect.PointerTo(elem), true
		}
	case strings.HasPrefix(name, "map["):
		keyName, elemName, ok := splitMapName(name[len("map["):])
		if !ok {
			return nil, false
		}
		key, ok := r.Lookup(keyName)
		if !ok || !key.Comparable() {
			return nil, false
		}
		if elem, ok := r.Lookup(elemName); ok {
			return reflect.MapOf(key, elem), true
		}
	}

	return nil, false
}

// splitMapName splits "K]V" at the bracket closing the key.
func splitMapName(s string) (key, elem string, ok bool) {
	depth := 0
	for i, c := range s {
		switch c {
		case '[':
			depth++
		case ']':
			if depth == 0 {
				return s[:i], s[i+1:], i > 0 && i+1 < len(s)
			}
			depth--
		}
	}
	return "", "", false
}

// Register registers T in the Default registry.
func Register[T any](aliases ...string) error {
	return Default.Register(reflect.TypeOf((*T)(nil)).Elem(), aliases...)
}

// MustRegister registers T in the Default registry and panics on error.
func MustRegister[T any](aliases ...string) reflect.Type {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if err := Default.Register(t, aliases...); err != nil {
		panic(err)
	}
	return t
}

// RegisterConstructor registers fn as a constructor in the Default registry.
func RegisterConstructor(fn any) error {
	_, err := Default.RegisterConstructor(fn)
	return err
}

// RegisterFunc registers fn as a function of T in the Default registry.
func RegisterFunc[T any](name string, fn any) error {
	return Default.RegisterFunc(reflect.TypeOf((*T)(nil)).Elem(), name, fn)
}

// RegisterVar registers a variable of T in the Default registry.
func RegisterVar[T any](name string, ptr any) error {
	return Default.RegisterVar(reflect.TypeOf((*T)(nil)).Elem(), name, ptr)
}
