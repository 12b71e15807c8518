package types

// Checker is an interface that can be implemented by types that can check themselves.
// Arguments decoded from text are checked before the call is made.
type Checker interface {
	Check() error
}
