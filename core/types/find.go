package types

import (
	"fmt"
	"plugin"
	"reflect"
	"strings"

	"github.com/anoideaopen/mirror/core/logger"
)

// Find resolves a type by name. The candidates are tried in order:
//  1. the name itself when it is predeclared, registered or a composite of those;
//  2. the name combined with each search prefix: a prefix ending in "*" is
//     concatenated with the name ("app.*" gives "app.User"), a prefix that
//     already ends with the name is used as-is, any other prefix is joined
//     with a dot;
//  3. symbols called name exported by the Go plugins at locations. An exported
//     constructor function registers its result type, an exported variable
//     registers its own type.
//
// Loading plugins is synchronous and cannot be cancelled. A location that
// fails to open is skipped.
func (r *Registry) Find(name string, prefixes, locations []string) (reflect.Type, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrTypeNotFound)
	}

	if t, ok := r.Lookup(name); ok {
		return t, nil
	}

	for _, prefix := range prefixes {
		if t, ok := r.Lookup(qualify(prefix, name)); ok {
			return t, nil
		}
	}

	if t, ok := r.findInPlugins(name, locations); ok {
		return t, nil
	}

	return nil, fmt.Errorf("%w: '%s'", ErrTypeNotFound, name)
}

func qualify(prefix, name string) string {
	switch {
	case strings.HasSuffix(prefix, "*"):
		return prefix[:len(prefix)-1] + name
	case strings.HasSuffix(prefix, name):
		return prefix
	default:
		return prefix + "." + name
	}
}

func (r *Registry) findInPlugins(name string, locations []string) (reflect.Type, bool) {
	log := logger.For("types")

	for _, location := range locations {
		p, err := plugin.Open(location)
		if err != nil {
			log.WithError(err).WithField("location", location).Debug("skipping plugin location")
			continue
		}

		sym, err := p.Lookup(name)
		if err != nil {
			continue
		}

		t, err := r.registerSymbol(sym)
		if err != nil {
			log.WithError(err).WithField("symbol", name).Warn("plugin symbol is neither a constructor nor a variable")
			continue
		}

		return t, true
	}

	return nil, false
}

func (r *Registry) registerSymbol(sym any) (reflect.Type, error) {
	v := reflect.ValueOf(sym)
	switch v.Kind() {
	case reflect.Func:
		return r.RegisterConstructor(sym)
	case reflect.Pointer:
		t := v.Type().Elem()
		return t, r.Register(t)
	default:
		return nil, fmt.Errorf("%w: symbol of type %T", ErrTypeNotFound, sym)
	}
}

// Find resolves a type by name in the Default registry.
func Find(name string, prefixes, locations []string) (reflect.Type, error) {
	return Default.Find(name, prefixes, locations)
}

// Lookup returns the type registered under name in the Default registry.
func Lookup(name string) (reflect.Type, bool) {
	return Default.Lookup(name)
}
