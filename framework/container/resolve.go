package container

import (
	"fmt"
	"reflect"
	"sync/atomic"
)

// session is one top-level resolution. It carries the stack of types
// currently being resolved, so cycle detection never sees state from an
// unrelated call.
type session struct {
	c     *Container
	stack []reflect.Type

	view *Container
	done atomic.Bool
}

// enter starts a top-level call. A view whose resolution is still running
// joins that resolution; anything else takes the lock and opens a new
// session.
func (c *Container) enter() (*session, func()) {
	if s := c.live(); s != nil {
		return s, func() {}
	}
	root := c.base()
	root.mu.Lock()
	s := &session{c: root}
	return s, func() {
		s.done.Store(true)
		root.mu.Unlock()
	}
}

// acquire is enter for calls that only touch the registries.
func (c *Container) acquire() (*Container, func()) {
	if s := c.live(); s != nil {
		return s.c, func() {}
	}
	root := c.base()
	root.mu.Lock()
	return root, root.mu.Unlock
}

func (c *Container) live() *session {
	if c.bound != nil && !c.bound.done.Load() {
		return c.bound
	}
	return nil
}

func (c *Container) base() *Container {
	if c.root != nil {
		return c.root
	}
	return c
}

// self returns the *Container handed to dependents of this session.
func (s *session) self() *Container {
	if s.view == nil {
		s.view = &Container{env: s.c.env, log: s.c.log, root: s.c, bound: s}
	}
	return s.view
}

func selfFactory(r Resolver) (any, error) {
	if s, ok := r.(*session); ok {
		return s.self(), nil
	}
	return nil, fmt.Errorf("container: self registration resolved outside a session")
}

func (s *session) Resolve(t reflect.Type, tag string) (any, error) { return s.resolve(t, tag) }

func (s *session) InjectInto(obj any) error { return s.injectInto(obj) }

// resolve runs the resolution state machine for one request:
// guard, push, lookup, materialize, inject, hook, pop.
func (s *session) resolve(t reflect.Type, tag string) (any, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil type", ErrNotRegistered)
	}
	if s.resolving(t) {
		chain := make([]reflect.Type, len(s.stack), len(s.stack)+1)
		copy(chain, s.stack)
		return nil, &CycleError{Chain: append(chain, t)}
	}

	s.stack = append(s.stack, t)
	defer func() { s.stack = s.stack[:len(s.stack)-1] }()

	e, ok := s.c.lookup(t, tag)
	if !ok {
		return nil, &NotRegisteredError{Type: t, Tag: tag}
	}

	if e.Singleton() && e.cached {
		return e.instance, nil
	}

	instance, err := e.factory(s)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", t, err)
	}
	if isNil(instance) {
		return nil, &ConstructionError{Type: t, Cause: fmt.Errorf("factory returned nil")}
	}
	if e.Singleton() {
		e.store(instance)
	}

	if err := s.injectInto(instance); err != nil {
		if e.Singleton() {
			e.drop()
		}
		return nil, err
	}
	s.c.attachIfCapable(instance)

	return instance, nil
}

func (s *session) resolving(t reflect.Type) bool {
	for _, r := range s.stack {
		if r == t {
			return true
		}
	}
	return false
}
