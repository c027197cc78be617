package container

import (
	"reflect"

	"go.uber.org/zap"
)

// Tickable receives one Tick per frame.
type Tickable interface {
	Tick()
}

// LateTickable receives one LateTick per frame, after every Tick.
type LateTickable interface {
	LateTick()
}

// FixedTickable receives one FixedTick per fixed simulation step.
type FixedTickable interface {
	FixedTick()
}

// Channel is a host-owned periodic callback list.
type Channel[T any] interface {
	AddSubscriber(subscriber T)
}

// Capability classifies an instance against the periodic interfaces.
type Capability int

const (
	NoCapability Capability = iota
	Periodic
	LatePeriodic
	FixedPeriodic
)

func (c Capability) String() string {
	switch c {
	case Periodic:
		return "periodic"
	case LatePeriodic:
		return "late-periodic"
	case FixedPeriodic:
		return "fixed-periodic"
	default:
		return "none"
	}
}

// CapabilityOf returns the first capability obj satisfies, checked in the
// order periodic, late-periodic, fixed-periodic. An object implementing
// several interfaces is classified by the first one only.
func CapabilityOf(obj any) Capability {
	switch obj.(type) {
	case Tickable:
		return Periodic
	case LateTickable:
		return LatePeriodic
	case FixedTickable:
		return FixedPeriodic
	}
	return NoCapability
}

// attachIfCapable subscribes obj to the one channel matching its
// capability and reports which capability was attached.
func (c *Container) attachIfCapable(obj any) Capability {
	capability := CapabilityOf(obj)
	if capability == NoCapability {
		return NoCapability
	}
	if c.env == nil {
		c.log.Warn("capable instance not attached: no environment",
			zap.Stringer("type", reflect.TypeOf(obj)),
			zap.Stringer("capability", capability))
		return NoCapability
	}

	switch capability {
	case Periodic:
		c.env.Ticks().AddSubscriber(obj.(Tickable))
	case LatePeriodic:
		c.env.LateTicks().AddSubscriber(obj.(LateTickable))
	case FixedPeriodic:
		c.env.FixedTicks().AddSubscriber(obj.(FixedTickable))
	}

	c.log.Debug("attached to channel",
		zap.Stringer("type", reflect.TypeOf(obj)),
		zap.Stringer("capability", capability))
	return capability
}
