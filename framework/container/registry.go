package container

import (
	"fmt"
	"reflect"
)

// ── Scopes ────────────────────────────────────────────────────────────────────

// Scope names one of the container's two registries.
type Scope int

const (
	// Global lives for the whole application and is searched last.
	Global Scope = iota

	// Local belongs to the active scene and is searched first.
	Local
)

func (s Scope) String() string {
	switch s {
	case Global:
		return "global"
	case Local:
		return "local"
	default:
		return "unknown"
	}
}

// ParseScope maps "global" / "local" back to a Scope.
func ParseScope(name string) (Scope, bool) {
	switch name {
	case "global":
		return Global, true
	case "local":
		return Local, true
	}
	return 0, false
}

// ── Keys & entries ────────────────────────────────────────────────────────────

// Key identifies a registration. Two keys are equal when both Type and Tag
// are equal.
type Key struct {
	Type reflect.Type
	Tag  string
}

// KeyFor builds the key for T with an optional tag.
func KeyFor[T any](tag ...string) Key {
	return Key{Type: reflect.TypeFor[T](), Tag: tagOf(tag)}
}

func (k Key) String() string {
	if k.Tag == "" {
		return k.Type.String()
	}
	return fmt.Sprintf("%s#%s", k.Type, k.Tag)
}

// Factory produces one instance for an entry. Nested dependencies must be
// resolved through r.
type Factory func(r Resolver) (any, error)

// Entry is the stored recipe for one registration.
type Entry struct {
	factory  Factory
	lifetime Lifetime

	instance any
	cached   bool
}

// NewEntry wraps a factory with a lifetime.
func NewEntry(f Factory, l Lifetime) *Entry {
	return &Entry{factory: f, lifetime: l}
}

// NewInstanceEntry returns a singleton entry whose instance already exists.
// Resolving it never runs injection or capability hooks.
func NewInstanceEntry(instance any) *Entry {
	return &Entry{
		factory:  func(Resolver) (any, error) { return instance, nil },
		lifetime: Singleton,
		instance: instance,
		cached:   true,
	}
}

// Lifetime reports the entry's lifetime.
func (e *Entry) Lifetime() Lifetime { return e.lifetime }

// Singleton reports whether the entry caches its instance.
func (e *Entry) Singleton() bool { return e.lifetime == Singleton }

// Cached reports whether a singleton instance is currently held.
func (e *Entry) Cached() bool { return e.cached }

func (e *Entry) store(instance any) {
	e.instance = instance
	e.cached = true
}

func (e *Entry) drop() {
	e.instance = nil
	e.cached = false
}

// ── Registry ──────────────────────────────────────────────────────────────────

// Registry is an ordered Key → Entry mapping. A registry is installed into a
// scope as a whole and is not modified by resolution apart from singleton
// caching inside its entries.
type Registry struct {
	order   []Key
	entries map[Key]*Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[Key]*Entry)}
}

// Add appends an entry. A second entry for an equal key is rejected.
func (r *Registry) Add(k Key, e *Entry) error {
	if k.Type == nil {
		return invalid("nil type")
	}
	if e == nil || e.factory == nil {
		return invalid("nil entry for %s", k)
	}
	if _, exists := r.entries[k]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRegistration, k)
	}
	r.order = append(r.order, k)
	r.entries[k] = e
	return nil
}

// set adds or replaces an entry, keeping its position on replace.
func (r *Registry) set(k Key, e *Entry) {
	if _, exists := r.entries[k]; !exists {
		r.order = append(r.order, k)
	}
	r.entries[k] = e
}

// Get returns the entry stored under exactly k.
func (r *Registry) Get(k Key) (*Entry, bool) {
	if r == nil {
		return nil, false
	}
	e, ok := r.entries[k]
	return e, ok
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// Keys returns the keys in registration order.
func (r *Registry) Keys() []Key {
	if r == nil {
		return nil
	}
	out := make([]Key, len(r.order))
	copy(out, r.order)
	return out
}

// lookup finds the entry for a request.
//
// Untagged: the (t, "") entry, else the first entry of type t in order.
// Tagged: the (t, tag) entry, else the first entry with that tag whose type
// is assignable to t.
func (r *Registry) lookup(t reflect.Type, tag string) (*Entry, bool) {
	if r == nil {
		return nil, false
	}
	if e, ok := r.entries[Key{Type: t, Tag: tag}]; ok {
		return e, true
	}
	for _, k := range r.order {
		if tag == "" {
			if k.Type == t {
				return r.entries[k], true
			}
			continue
		}
		if k.Tag == tag && k.Type.AssignableTo(t) {
			return r.entries[k], true
		}
	}
	return nil, false
}

func tagOf(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return tags[0]
}
