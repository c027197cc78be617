package container

import (
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// Builder collects the registrations of one scope activation. Register
// functions never fail on the spot: a rejected registration is recorded
// and reported by Build, and the caller gets a detached Binding so chains
// like Register(...).WithTag(...) stay safe.
type Builder struct {
	c        *Container
	bindings []*Binding
	errs     []error
}

// NewBuilder returns a builder whose scene and component registrations use
// c's environment.
func NewBuilder(c *Container) *Builder {
	return &Builder{c: c}
}

// Container returns the container the builder registers for.
func (b *Builder) Container() *Container { return b.c }

// Build turns the collected registrations into a registry. It fails with
// every recorded registration error, and with ErrDuplicateRegistration for
// keys registered twice.
func (b *Builder) Build() (*Registry, error) {
	errs := append([]error(nil), b.errs...)
	reg := NewRegistry()
	for _, bd := range b.bindings {
		if err := reg.Add(bd.key, bd.entry); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return reg, nil
}

func (b *Builder) add(t reflect.Type, e *Entry, what string) *Binding {
	bd := &Binding{key: Key{Type: t}, entry: e}
	b.bindings = append(b.bindings, bd)
	b.c.log.Debug("registered",
		zap.Stringer("type", t),
		zap.String("as", what),
		zap.Stringer("lifetime", e.lifetime))
	return bd
}

func (b *Builder) fail(t reflect.Type, err error) *Binding {
	b.errs = append(b.errs, err)
	return &Binding{key: Key{Type: t}}
}

// ── Constructor registrations ─────────────────────────────────────────────────

// Register registers T built by the first of ctors, or by zero construction
// when ctors is empty.
//
//	container.Register[*Clock](b, container.Singleton)
//	container.Register[*Physics](b, container.Transient, NewPhysics)
func Register[T any](b *Builder, l Lifetime, ctors ...any) *Binding {
	t := reflect.TypeFor[T]()
	return register(b, t, t, l, ctors)
}

// RegisterAs registers TService, built as TImpl.
//
//	container.RegisterAs[Scorer, *arcadeScorer](b, container.Singleton, newArcadeScorer)
func RegisterAs[TService, TImpl any](b *Builder, l Lifetime, ctors ...any) *Binding {
	service, impl := reflect.TypeFor[TService](), reflect.TypeFor[TImpl]()
	if !impl.AssignableTo(service) {
		return b.fail(service, invalid("%s is not assignable to %s", impl, service))
	}
	return register(b, service, impl, l, ctors)
}

func register(b *Builder, service, impl reflect.Type, l Lifetime, fns []any) *Binding {
	ctors, err := newConstructors(impl, fns)
	if err != nil {
		return b.fail(service, err)
	}
	factory := func(r Resolver) (any, error) {
		return r.(*session).construct(impl, ctors)
	}
	return b.add(service, NewEntry(factory, l), impl.String())
}

// RegisterWithParameters registers T built by the first constructor whose
// parameters can all be filled from params or the container.
//
//	container.RegisterWithParameters[*Spawner](b, container.Transient,
//	    []any{3, time.Second}, NewSpawner)
func RegisterWithParameters[T any](b *Builder, l Lifetime, params []any, ctors ...any) *Binding {
	t := reflect.TypeFor[T]()
	return registerWith(b, t, t, l, params, ctors)
}

// RegisterAsWithParameters is RegisterWithParameters registered under
// TService and built as TImpl.
func RegisterAsWithParameters[TService, TImpl any](b *Builder, l Lifetime, params []any, ctors ...any) *Binding {
	service, impl := reflect.TypeFor[TService](), reflect.TypeFor[TImpl]()
	if !impl.AssignableTo(service) {
		return b.fail(service, invalid("%s is not assignable to %s", impl, service))
	}
	return registerWith(b, service, impl, l, params, ctors)
}

func registerWith(b *Builder, service, impl reflect.Type, l Lifetime, params, fns []any) *Binding {
	ctors, err := newConstructors(impl, fns)
	if err != nil {
		return b.fail(service, err)
	}
	supplied := append([]any(nil), params...)
	factory := func(r Resolver) (any, error) {
		return r.(*session).constructWith(impl, ctors, supplied)
	}
	return b.add(service, NewEntry(factory, l), impl.String()+" with parameters")
}

// ── Instance & factory registrations ──────────────────────────────────────────

// RegisterInstance registers an existing value as a singleton. The value is
// handed out as is: it is not injected and not attached to any channel.
func RegisterInstance[T any](b *Builder, instance T) *Binding {
	t := reflect.TypeFor[T]()
	if isNil(instance) {
		return b.fail(t, invalid("nil instance for %s", t))
	}
	return b.add(t, NewInstanceEntry(instance), "instance")
}

// RegisterFactory registers a transient factory. Each product is injected
// and attached like any constructed instance.
func RegisterFactory[T any](b *Builder, factory func(r Resolver) (T, error)) *Binding {
	t := reflect.TypeFor[T]()
	if factory == nil {
		return b.fail(t, invalid("nil factory for %s", t))
	}
	f := func(r Resolver) (any, error) {
		v, err := factory(r)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
	return b.add(t, NewEntry(f, Transient), "factory")
}

// ── Scene registrations ───────────────────────────────────────────────────────

// RegisterFromScene registers the first live component assignable to T.
// The lookup happens now, at registration time.
func RegisterFromScene[T any](b *Builder) *Binding {
	t := reflect.TypeFor[T]()
	env := b.c.Environment()
	if env == nil {
		return b.fail(t, ErrNoEnvironment)
	}
	found, ok := env.FindComponent(t)
	if !ok {
		return b.fail(t, fmt.Errorf("%w: %s", ErrNotFoundInScene, t))
	}
	return b.add(t, NewInstanceEntry(found), "scene component")
}

// RegisterFromSceneNamed registers the component assignable to T on the
// scene object called name.
func RegisterFromSceneNamed[T any](b *Builder, name string) *Binding {
	t := reflect.TypeFor[T]()
	env := b.c.Environment()
	if env == nil {
		return b.fail(t, ErrNoEnvironment)
	}
	found, ok := env.FindNamed(name, t)
	if !ok {
		return b.fail(t, fmt.Errorf("%w: %s on %q", ErrNotFoundInScene, t, name))
	}
	return b.add(t, NewInstanceEntry(found), "scene component "+name)
}

// RegisterComponent registers copies of a component template. Every
// resolution of a transient registration instantiates a new copy; a
// singleton registration instantiates its copy on first resolution.
func RegisterComponent[T any](b *Builder, template T, l Lifetime) *Binding {
	t := reflect.TypeFor[T]()
	if isNil(template) {
		return b.fail(t, invalid("template for %s cannot be nil", t))
	}
	env := b.c.Environment()
	if env == nil {
		return b.fail(t, ErrNoEnvironment)
	}
	factory := func(Resolver) (any, error) {
		obj, err := env.Instantiate(template, nil)
		if err != nil {
			return nil, err
		}
		if _, ok := obj.(T); !ok {
			return nil, &ConstructionError{Type: t, Cause: fmt.Errorf("template produced %T", obj)}
		}
		return obj, nil
	}
	return b.add(t, NewEntry(factory, l), "component")
}
