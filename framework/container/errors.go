package container

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// ErrNotRegistered is returned when neither scope holds an entry for the
	// requested type (and tag).
	ErrNotRegistered = errors.New("container: dependency not registered")

	// ErrCyclicDependency is returned when a type is requested while it is
	// already being resolved further up the same chain.
	ErrCyclicDependency = errors.New("container: cyclic dependency detected")

	// ErrConstruction is returned when no constructor strategy produced an
	// instance.
	ErrConstruction = errors.New("container: construction failed")

	// ErrInvalidRegistration is returned at registration time for input that
	// can never resolve (nil templates, mismatched implementation types,
	// malformed constructors).
	ErrInvalidRegistration = errors.New("container: invalid registration")

	// ErrDuplicateRegistration is returned when two registrations in the same
	// scope share a type and tag.
	ErrDuplicateRegistration = errors.New("container: duplicate registration")

	// ErrNotFoundInScene is returned by scene registrations when the host has
	// no matching live component.
	ErrNotFoundInScene = errors.New("container: component not found in scene")

	// ErrNoEnvironment is returned by operations that need a host
	// environment on a container created without one.
	ErrNoEnvironment = errors.New("container: no environment attached")
)

// NotRegisteredError reports the type (and tag) a failed lookup asked for.
type NotRegisteredError struct {
	Type reflect.Type
	Tag  string
}

func (e *NotRegisteredError) Error() string {
	if e.Tag == "" {
		return fmt.Sprintf("container: dependency with type %s was not registered", e.Type)
	}
	return fmt.Sprintf("container: dependency with type %s and tag %q was not registered", e.Type, e.Tag)
}

// Is makes errors.Is(err, ErrNotRegistered) hold.
func (e *NotRegisteredError) Is(target error) bool { return target == ErrNotRegistered }

// CycleError carries the resolution chain that closed the cycle. The last
// element is the type that was requested a second time.
type CycleError struct {
	Chain []reflect.Type
}

func (e *CycleError) Error() string {
	names := make([]string, len(e.Chain))
	for i, t := range e.Chain {
		names[i] = t.String()
	}
	return ErrCyclicDependency.Error() + ": " + strings.Join(names, " -> ")
}

// Is makes errors.Is(err, ErrCyclicDependency) hold.
func (e *CycleError) Is(target error) bool { return target == ErrCyclicDependency }

// ConstructionError names the type that could not be built and, for
// parameterized registrations, the values that were supplied.
type ConstructionError struct {
	Type   reflect.Type
	Params []any
	Cause  error
}

func (e *ConstructionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "container: no suitable constructor found for type %s", e.Type)
	if len(e.Params) > 0 {
		parts := make([]string, len(e.Params))
		for i, p := range e.Params {
			parts[i] = fmt.Sprintf("%T(%v)", p, p)
		}
		b.WriteString(" with parameters [" + strings.Join(parts, ", ") + "]")
	}
	if e.Cause != nil {
		b.WriteString(": " + e.Cause.Error())
	}
	return b.String()
}

func (e *ConstructionError) Unwrap() error { return e.Cause }

// Is makes errors.Is(err, ErrConstruction) hold.
func (e *ConstructionError) Is(target error) bool { return target == ErrConstruction }

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidRegistration}, args...)...)
}
