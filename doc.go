// Package mirror is a fluent, chainable wrapper over Go reflection.
//
// Every reflective step returns a Handle that remembers the Handle it was
// produced from, so calls can be sequenced and walked back:
//
//	person, err := mirror.Class[Person]().Create("Ada", 36)
//	if err != nil {
//		return err
//	}
//	name, err := person.Call("getName")
//	if err != nil {
//		return err
//	}
//	name.Unwrap()          // "Ada"
//	name.Back().Is(person) // true
//
// Members are found by name and argument types. Lookups try an exact match on
// the parameter types first and then a compatible one, on the type itself
// before the types it embeds. Go cannot find a type by name, construct a type
// through a declared constructor or call a static member, so types,
// constructors, functions and variables reachable by name are registered with
// package core/types, typically from init functions:
//
//	func init() {
//		types.MustRegister[Person]()
//		_ = types.RegisterConstructor(NewPerson)
//	}
//
// Resolutions are cached and safe for concurrent use. Handles themselves are
// not synchronised.
package mirror
