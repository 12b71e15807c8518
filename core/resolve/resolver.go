package resolve

import (
	"reflect"

	"github.com/anoideaopen/mirror/core/logger"
	"github.com/anoideaopen/mirror/core/types"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Resolver finds members by name and parameter types and memoises the
// outcome. Lookups run two passes: an exact pass comparing parameter types
// literally, then, for fuzzy lookups only, a pass using Compatible. Both
// passes try the subject type first and then its embedded types, breadth
// first, so the most derived match wins.
//
// A Resolver is safe for concurrent use.
type Resolver struct {
	registry *types.Registry
	members  *cache
	fields   *cache
	log      *logrus.Entry
}

// New creates a resolver over registry with caches bounded to cacheSize
// entries each. A nil registry means types.Default.
func New(registry *types.Registry, cacheSize int) (*Resolver, error) {
	if registry == nil {
		registry = types.Default
	}
	members, err := newCache(cacheSize)
	if err != nil {
		return nil, err
	}
	fields, err := newCache(cacheSize)
	if err != nil {
		return nil, err
	}
	return &Resolver{
		registry: registry,
		members:  members,
		fields:   fields,
		log:      logger.For("resolve"),
	}, nil
}

// Registry returns the type registry the resolver reads statics and constructors from.
func (r *Resolver) Registry() *types.Registry {
	return r.registry
}

// Method resolves an instance method of subject. Pass the pointer type when
// the receiver is addressable so pointer-receiver methods are visible.
func (r *Resolver) Method(subject reflect.Type, name string, argTypes []reflect.Type, fuzzy bool) (*Member, error) {
	k := key{subject: subject, scope: scopeInstance, name: name, sig: signature(argTypes), fuzzy: fuzzy}
	return r.resolve(k, KindMethod, argTypes, func() []*Member {
		return r.methodCandidates(subject, name)
	})
}

// Static resolves a function registered against t or a method expression of
// t or *t, in that order.
func (r *Resolver) Static(t reflect.Type, name string, argTypes []reflect.Type, fuzzy bool) (*Member, error) {
	k := key{subject: t, scope: scopeStatic, name: name, sig: signature(argTypes), fuzzy: fuzzy}
	return r.resolve(k, KindFunc, argTypes, func() []*Member {
		return r.staticCandidates(t, name)
	})
}

// Constructor resolves a registered constructor of t, falling back to the
// implicit zero-value constructor when no arguments are given.
func (r *Resolver) Constructor(t reflect.Type, argTypes []reflect.Type, fuzzy bool) (*Member, error) {
	k := key{subject: t, scope: scopeConstructor, sig: signature(argTypes), fuzzy: fuzzy}
	return r.resolve(k, KindConstructor, argTypes, func() []*Member {
		return r.constructorCandidates(t)
	})
}

// Candidates lists every member named name, in resolution order. With static
// set it lists functions and method expressions, otherwise methods.
func (r *Resolver) Candidates(subject reflect.Type, name string, static bool) []*Member {
	if static {
		return r.staticCandidates(subject, name)
	}
	return r.methodCandidates(subject, name)
}

// Constructors lists the constructors of t, the implicit one last.
func (r *Resolver) Constructors(t reflect.Type) []*Member {
	return r.constructorCandidates(t)
}

func (r *Resolver) resolve(k key, kind Kind, argTypes []reflect.Type, candidates func() []*Member) (*Member, error) {
	if m, ok := r.members.load(k); ok {
		return m, nil
	}

	log := r.log.WithFields(logrus.Fields{
		"subject": k.subject.String(),
		"name":    k.name,
		"params":  FormatTypes(argTypes),
		"fuzzy":   k.fuzzy,
	})
	log.Debug("resolving member")

	all := candidates()
	m, ok := lo.Find(all, func(m *Member) bool { return exact(m, argTypes) })
	if !ok && k.fuzzy {
		m, ok = lo.Find(all, func(m *Member) bool { return Match(m, argTypes) })
	}
	if !ok {
		log.WithField("candidates", len(all)).Debug("no member matched")
		name := k.name
		if kind == KindConstructor {
			name = types.Base(k.subject).Name()
		}
		return nil, &NotFoundError{Kind: kind, Name: name, Types: argTypes, Subject: k.subject}
	}

	return r.members.store(k, m), nil
}

// Field resolves a field of subject: an exported field, promoted ones
// included, wins over an unexported field found by walking embedded types.
func (r *Resolver) Field(subject reflect.Type, name string) (*Member, error) {
	k := key{subject: subject, scope: scopeField, name: name}
	if m, ok := r.fields.load(k); ok {
		return m, nil
	}

	r.log.WithFields(logrus.Fields{"subject": subject.String(), "name": name}).Debug("resolving field")

	m := r.exportedField(subject, name)
	if m == nil {
		m = r.declaredField(subject, name)
	}
	if m == nil {
		return nil, &NotFoundError{Kind: KindField, Name: name, Subject: subject}
	}

	return r.fields.store(k, m), nil
}

// Var resolves a variable registered against t.
func (r *Resolver) Var(t reflect.Type, name string) (*Member, error) {
	k := key{subject: t, scope: scopeStaticField, name: name}
	if m, ok := r.fields.load(k); ok {
		return m, nil
	}

	for _, n := range Names(name) {
		if ptr, ok := r.registry.Var(t, n); ok {
			return r.fields.store(k, newVarMember(types.Base(t), n, ptr)), nil
		}
	}

	return nil, &NotFoundError{Kind: KindVar, Name: name, Subject: t}
}

// Fields lists the fields of subject and its embedded types, breadth first.
// A field shadowed by a shallower one of the same name is left out.
func (r *Resolver) Fields(subject reflect.Type) []*Member {
	var out []*Member
	seen := make(map[string]bool)
	for _, lvl := range ancestors(subject) {
		st := types.Base(lvl.typ)
		if st.Kind() != reflect.Struct {
			continue
		}
		for i := 0; i < st.NumField(); i++ {
			f := st.Field(i)
			if seen[f.Name] {
				continue
			}
			seen[f.Name] = true
			out = append(out, newFieldMember(subject, st, f, appendPath(lvl.path, i), lvl.depth))
		}
	}
	return out
}

func (r *Resolver) methodCandidates(subject reflect.Type, name string) []*Member {
	names := Names(name)

	var out []*Member
	for _, lvl := range ancestors(subject) {
		for _, n := range names {
			if method, ok := lvl.typ.MethodByName(n); ok {
				out = append(out, newMethodMember(subject, lvl.typ, method, lvl.path, lvl.depth))
			}
		}
	}
	return out
}

func (r *Resolver) staticCandidates(t reflect.Type, name string) []*Member {
	base := types.Base(t)
	names := Names(name)

	var out []*Member
	for _, n := range names {
		for _, fn := range r.registry.Funcs(base, n) {
			out = append(out, newFuncMember(KindFunc, base, n, fn))
		}
	}

	if base.Kind() == reflect.Interface {
		return out
	}
	for _, n := range names {
		for _, recv := range []reflect.Type{base, reflect.PointerTo(base)} {
			if method, ok := recv.MethodByName(n); ok {
				out = append(out, newFuncMember(KindMethodExpr, recv, method.Name, method.Func))
			}
		}
	}
	return out
}

func (r *Resolver) constructorCandidates(t reflect.Type) []*Member {
	base := types.Base(t)

	out := make([]*Member, 0, 1)
	for _, fn := range r.registry.Constructors(base) {
		out = append(out, newFuncMember(KindConstructor, base, base.Name(), fn))
	}
	if implicit := newImplicitConstructor(base); implicit != nil {
		out = append(out, implicit)
	}
	return out
}

func (r *Resolver) exportedField(subject reflect.Type, name string) *Member {
	st := types.Base(subject)
	if st.Kind() != reflect.Struct {
		return nil
	}
	for _, n := range Names(name) {
		if f, ok := st.FieldByName(n); ok && f.IsExported() {
			return newFieldMember(subject, declaringStruct(st, f.Index), f, f.Index, len(f.Index)-1)
		}
	}
	return nil
}

func (r *Resolver) declaredField(subject reflect.Type, name string) *Member {
	names := Names(name)
	for _, lvl := range ancestors(subject) {
		st := types.Base(lvl.typ)
		if st.Kind() != reflect.Struct {
			continue
		}
		for _, n := range names {
			if f, ok := st.FieldByName(n); ok && len(f.Index) == 1 {
				return newFieldMember(subject, st, f, appendPath(lvl.path, f.Index[0]), lvl.depth)
			}
		}
	}
	return nil
}

// declaringStruct returns the struct type that declares the field at index.
func declaringStruct(st reflect.Type, index []int) reflect.Type {
	for _, i := range index[:len(index)-1] {
		st = types.Base(st.Field(i).Type)
	}
	return st
}

// level is one step of the embedded-type walk.
type level struct {
	typ   reflect.Type
	path  []int
	depth int
}

// ancestors returns subject followed by its embedded types, breadth first.
// Embedded structs are represented by their pointer type so their whole
// method set is visible; the walk reaches them through addressable storage.
func ancestors(subject reflect.Type) []level {
	levels := []level{{typ: subject}}
	seen := map[reflect.Type]bool{types.Base(subject): true}

	for i := 0; i < len(levels); i++ {
		st := types.Base(levels[i].typ)
		if st.Kind() != reflect.Struct {
			continue
		}
		for j := 0; j < st.NumField(); j++ {
			f := st.Field(j)
			if !f.Anonymous {
				continue
			}
			et := types.Base(f.Type)
			if seen[et] {
				continue
			}
			seen[et] = true

			typ := f.Type
			if typ.Kind() == reflect.Struct {
				typ = reflect.PointerTo(typ)
			}
			levels = append(levels, level{
				typ:   typ,
				path:  appendPath(levels[i].path, j),
				depth: levels[i].depth + 1,
			})
		}
	}

	return levels
}

func appendPath(path []int, i int) []int {
	out := make([]int, len(path), len(path)+1)
	copy(out, path)
	return append(out, i)
}

// Embedded returns the types embedded directly in t, or in the struct t points to.
func Embedded(t reflect.Type) []reflect.Type {
	st := types.Base(t)
	if st == nil || st.Kind() != reflect.Struct {
		return nil
	}

	var out []reflect.Type
	for i := 0; i < st.NumField(); i++ {
		if f := st.Field(i); f.Anonymous {
			out = append(out, f.Type)
		}
	}
	return out
}

// Embeds reports whether t embeds target, or a pointer to it, at any depth.
func Embeds(t, target reflect.Type) bool {
	if t == nil || target == nil {
		return false
	}
	target = types.Base(target)
	for _, lvl := range ancestors(t)[1:] {
		if types.Base(lvl.typ) == target {
			return true
		}
	}
	return false
}
