package container

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// Resolver is what factories, constructors and injection methods use to
// reach their own dependencies. *Container is a Resolver too.
type Resolver interface {
	// Resolve returns the instance registered for t. An empty tag selects
	// by type, a non-empty tag selects by tag.
	Resolve(t reflect.Type, tag string) (any, error)

	// InjectInto fills the injectable members of obj.
	InjectInto(obj any) error
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container owns the global and local registries and runs resolution.
//
// It supports:
//   - two scopes searched local-first (Install / ClearLocal)
//   - singleton and transient entries
//   - tagged registrations
//   - constructor injection and manifest-driven member injection
//   - attaching fresh Tickable / LateTickable / FixedTickable instances to
//     the host's channels
//
// Every exported method is a top-level call and holds the container lock
// for its whole duration; nested resolution happens on the Resolver handed
// to factories. A *Container resolved as a dependency is bound to the
// resolution that produced it: while that resolution runs, calls on it join
// it instead of taking the lock, and afterwards they behave like calls on
// the container itself.
type Container struct {
	mu sync.Mutex

	global *Registry
	local  *Registry

	env Environment
	log *zap.Logger

	// Set on views handed out by the self registration.
	root  *Container
	bound *session
}

// Option configures a Container in New.
type Option func(*Container)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Container) {
		if l != nil {
			c.log = l
		}
	}
}

// WithEnvironment attaches the host environment.
func WithEnvironment(env Environment) Option {
	return func(c *Container) {
		c.env = env
	}
}

// New creates a container with empty scopes.
func New(opts ...Option) *Container {
	c := &Container{
		global: NewRegistry(),
		local:  NewRegistry(),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Environment returns the attached host, or nil.
func (c *Container) Environment() Environment { return c.env }

// Logger returns the container's logger.
func (c *Container) Logger() *zap.Logger { return c.log }

// ── Scopes ────────────────────────────────────────────────────────────────────

// Install replaces the registry of scope wholesale. Installing into Global
// also registers the container itself under *Container; each resolution
// gets a view bound to it.
func (c *Container) Install(scope Scope, reg *Registry) {
	root, release := c.acquire()
	defer release()

	if reg == nil {
		reg = NewRegistry()
	}

	switch scope {
	case Global:
		reg.set(KeyFor[*Container](), NewEntry(selfFactory, Transient))
		root.global = reg
	case Local:
		root.local = reg
	default:
		panic(fmt.Sprintf("container: unknown scope %d", scope))
	}

	root.log.Info("scope installed",
		zap.Stringer("scope", scope),
		zap.Int("entries", reg.Len()))
}

// ClearLocal drops every local registration together with its cached
// singletons.
func (c *Container) ClearLocal() {
	root, release := c.acquire()
	defer release()
	root.local = NewRegistry()
	root.log.Info("scope cleared", zap.Stringer("scope", Local))
}

// EntryInfo describes one registration for diagnostics.
type EntryInfo struct {
	Key      Key
	Lifetime Lifetime
	Cached   bool
}

// Entries lists the registrations of scope in registration order.
func (c *Container) Entries(scope Scope) []EntryInfo {
	root, release := c.acquire()
	defer release()

	reg := root.global
	if scope == Local {
		reg = root.local
	}
	out := make([]EntryInfo, 0, reg.Len())
	for _, k := range reg.Keys() {
		e, _ := reg.Get(k)
		out = append(out, EntryInfo{Key: k, Lifetime: e.lifetime, Cached: e.cached})
	}
	return out
}

func (c *Container) lookup(t reflect.Type, tag string) (*Entry, bool) {
	if e, ok := c.local.lookup(t, tag); ok {
		return e, true
	}
	return c.global.lookup(t, tag)
}

// ── Top-level operations ──────────────────────────────────────────────────────

// Resolve implements Resolver.
func (c *Container) Resolve(t reflect.Type, tag string) (any, error) {
	s, release := c.enter()
	defer release()
	return s.resolve(t, tag)
}

// InjectInto implements Resolver. Calling it twice on the same object
// resolves and assigns every member again.
func (c *Container) InjectInto(obj any) error {
	s, release := c.enter()
	defer release()
	return s.injectInto(obj)
}

// InjectAll runs member injection over every live component of the
// environment. Without an environment there is nothing to inject.
func (c *Container) InjectAll() error {
	s, release := c.enter()
	defer release()

	if c.env == nil {
		return nil
	}
	components := c.env.Components()
	for _, comp := range components {
		if err := s.injectInto(comp); err != nil {
			return err
		}
	}
	c.log.Debug("environment injected", zap.Int("components", len(components)))
	return nil
}

// Instantiate copies template through the environment and injects the
// copy before returning it. at may be nil.
func (c *Container) Instantiate(template any, at *Placement) (any, error) {
	s, release := c.enter()
	defer release()

	if c.env == nil {
		return nil, ErrNoEnvironment
	}
	if isNil(template) {
		return nil, invalid("nil template")
	}
	obj, err := c.env.Instantiate(template, at)
	if err != nil {
		return nil, err
	}
	if err := s.injectInto(obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// NewComponent creates a fresh object called name carrying a component of
// type t, and injects it.
func (c *Container) NewComponent(name string, t reflect.Type) (any, error) {
	s, release := c.enter()
	defer release()

	if c.env == nil {
		return nil, ErrNoEnvironment
	}
	obj, err := c.env.AddComponent(name, t)
	if err != nil {
		return nil, err
	}
	if err := s.injectInto(obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// ── Generics helpers ──────────────────────────────────────────────────────────

// Resolve resolves T (optionally by tag) and type-asserts the result.
//
//	log, err := container.Resolve[*zap.Logger](c)
//	db, err  := container.Resolve[Store](r, "primary")
func Resolve[T any](r Resolver, tag ...string) (T, error) {
	var zero T
	t := reflect.TypeFor[T]()

	v, err := r.Resolve(t, tagOf(tag))
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("container: Resolve[%s]: resolved to %T", t, v)
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on failure.
func MustResolve[T any](r Resolver, tag ...string) T {
	v, err := Resolve[T](r, tag...)
	if err != nil {
		panic(err)
	}
	return v
}

// Instantiate is the typed form of (*Container).Instantiate.
func Instantiate[T any](c *Container, template T, at ...*Placement) (T, error) {
	var zero T
	var placement *Placement
	if len(at) > 0 {
		placement = at[0]
	}
	v, err := c.Instantiate(template, placement)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("container: Instantiate[%s]: produced %T", reflect.TypeFor[T](), v)
	}
	return typed, nil
}

// NewComponent is the typed form of (*Container).NewComponent.
func NewComponent[T any](c *Container, name string) (T, error) {
	var zero T
	v, err := c.NewComponent(name, reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("container: NewComponent[%s]: produced %T", reflect.TypeFor[T](), v)
	}
	return typed, nil
}

// isNil reports whether v is nil or a nil pointer, map, slice, func or chan.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
