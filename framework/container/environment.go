package container

import "reflect"

// Placement positions a freshly instantiated component in the host world.
type Placement struct {
	Position [3]float64
	Rotation [4]float64 // quaternion x, y, z, w
}

// Environment is the host the container runs inside: it owns the live
// components, knows how to copy templates, and drives the periodic
// callback channels. The container never creates channels itself.
type Environment interface {
	// Components enumerates every live component, in host order.
	Components() []any

	// FindComponent returns the first live component assignable to t.
	FindComponent(t reflect.Type) (any, bool)

	// FindNamed returns the component assignable to t on the object called
	// name.
	FindNamed(name string, t reflect.Type) (any, bool)

	// Instantiate creates one more copy of template. at may be nil.
	Instantiate(template any, at *Placement) (any, error)

	// AddComponent creates a new object called name carrying a fresh
	// component of type t.
	AddComponent(name string, t reflect.Type) (any, error)

	Ticks() Channel[Tickable]
	LateTicks() Channel[LateTickable]
	FixedTicks() Channel[FixedTickable]
}
