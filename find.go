package mirror

import (
	"slices"
)

type findOptions struct {
	prefixes  []string
	locations []string
}

// FindOption adjusts a Find lookup.
type FindOption func(*findOptions)

// WithPrefixes adds search prefixes tried when the bare name is unknown.
// They are tried before the prefixes set by Configure.
func WithPrefixes(prefixes ...string) FindOption {
	return func(o *findOptions) {
		o.prefixes = append(o.prefixes, prefixes...)
	}
}

// WithLocations adds Go plugins to load the type from when no registered
// name matches.
func WithLocations(locations ...string) FindOption {
	return func(o *findOptions) {
		o.locations = append(o.locations, locations...)
	}
}

// Find resolves a type by name and wraps it in a ClassHandle. Besides
// registered and predeclared names it tries the name under each search
// prefix and finally the plugins of the given locations.
func Find(name string, opts ...FindOption) (*ClassHandle, error) {
	o := &findOptions{}
	for _, opt := range opts {
		opt(o)
	}

	rt := env()
	t, err := rt.registry.Find(name, append(slices.Clone(o.prefixes), rt.prefixes...), o.locations)
	if err != nil {
		return nil, &Error{Op: opFind, Name: name, Err: err}
	}
	return OnType(t), nil
}
