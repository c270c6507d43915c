// Package guard provides the constructor guard pattern used by domain
// objects to detect instances that bypassed their factory functions.
// A zero-value guard marks an object as not constructed; only
// NewConstructorGuard produces a valid one.
package guard

import "errors"

// ErrNotConstructed is the default error returned when a guarded object
// was not created through its constructor.
var ErrNotConstructed = errors.New("object must be created via its constructor")

// ConstructorGuard marks a domain object as having passed through its
// factory function. Embed it as a private field and call Validate before
// trusting the object's invariants.
type ConstructorGuard struct {
	constructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate returns nil when the guard was created via NewConstructorGuard.
// For a zero-value guard it returns notConstructedErr, or ErrNotConstructed
// when notConstructedErr is nil.
func (g ConstructorGuard) Validate(notConstructedErr error) error {
	if g.constructed {
		return nil
	}
	if notConstructedErr == nil {
		return ErrNotConstructed
	}
	return notConstructedErr
}
