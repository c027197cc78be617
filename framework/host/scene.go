package host

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"

	"github.com/km-arc/go-inject/framework/container"
)

var (
	// ErrNotPrefab is returned by Instantiate for templates that cannot copy
	// themselves.
	ErrNotPrefab = errors.New("host: template does not implement Prefab")

	// ErrNotComponentType is returned by AddComponent for types that are not
	// pointers to structs.
	ErrNotComponentType = errors.New("host: component type must be a pointer to a struct")
)

// Prefab is a component template.
type Prefab interface {
	// Clone returns a new, independent copy of the template.
	Clone() any
}

// Object is a named entity in the scene carrying components.
type Object struct {
	Name       string
	Placement  container.Placement
	Components []any
}

// Scene is the reference host environment: an ordered set of objects plus
// the three periodic channels.
type Scene struct {
	mu      sync.RWMutex
	objects []*Object

	ticks      *TickHandler
	lateTicks  *LateTickHandler
	fixedTicks *FixedTickHandler

	log *zap.Logger
}

var _ container.Environment = (*Scene)(nil)

// NewScene returns an empty scene with fresh channels.
func NewScene(log *zap.Logger) *Scene {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scene{
		ticks:      NewTickHandler(),
		lateTicks:  NewLateTickHandler(),
		fixedTicks: NewFixedTickHandler(),
		log:        log,
	}
}

// Spawn adds an object called name carrying components.
func (s *Scene) Spawn(name string, components ...any) *Object {
	obj := &Object{Name: name, Components: components}
	s.mu.Lock()
	s.objects = append(s.objects, obj)
	s.mu.Unlock()
	return obj
}

// Objects returns the live objects in spawn order.
func (s *Scene) Objects() []*Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Object, len(s.objects))
	copy(out, s.objects)
	return out
}

// Clear removes every object. Channel subscriptions are kept.
func (s *Scene) Clear() {
	s.mu.Lock()
	s.objects = nil
	s.mu.Unlock()
}

// ── container.Environment ─────────────────────────────────────────────────────

// Components lists every component of every object.
func (s *Scene) Components() []any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []any
	for _, obj := range s.objects {
		out = append(out, obj.Components...)
	}
	return out
}

func (s *Scene) FindComponent(t reflect.Type) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, obj := range s.objects {
		if c, ok := componentOf(obj, t); ok {
			return c, true
		}
	}
	return nil, false
}

func (s *Scene) FindNamed(name string, t reflect.Type) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, obj := range s.objects {
		if obj.Name == name {
			return componentOf(obj, t)
		}
	}
	return nil, false
}

// Instantiate clones template into a new object named after its type.
func (s *Scene) Instantiate(template any, at *container.Placement) (any, error) {
	prefab, ok := template.(Prefab)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotPrefab, template)
	}
	clone := prefab.Clone()
	if clone == nil {
		return nil, fmt.Errorf("host: %T cloned to nil", template)
	}

	obj := &Object{Name: fmt.Sprintf("%T(Clone)", template), Components: []any{clone}}
	if at != nil {
		obj.Placement = *at
	}
	s.mu.Lock()
	s.objects = append(s.objects, obj)
	s.mu.Unlock()

	s.log.Debug("instantiated", zap.String("object", obj.Name))
	return clone, nil
}

// AddComponent spawns an object called name carrying a zero *T for t = *T.
func (s *Scene) AddComponent(name string, t reflect.Type) (any, error) {
	if t == nil || t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %v", ErrNotComponentType, t)
	}
	comp := reflect.New(t.Elem()).Interface()
	s.Spawn(name, comp)
	return comp, nil
}

func (s *Scene) Ticks() container.Channel[container.Tickable]           { return s.ticks }
func (s *Scene) LateTicks() container.Channel[container.LateTickable]   { return s.lateTicks }
func (s *Scene) FixedTicks() container.Channel[container.FixedTickable] { return s.fixedTicks }

// SubscriberCounts reports the size of each channel.
func (s *Scene) SubscriberCounts() map[string]int {
	return map[string]int{
		container.Periodic.String():      s.ticks.Len(),
		container.LatePeriodic.String():  s.lateTicks.Len(),
		container.FixedPeriodic.String(): s.fixedTicks.Len(),
	}
}

func componentOf(obj *Object, t reflect.Type) (any, bool) {
	for _, c := range obj.Components {
		if c != nil && reflect.TypeOf(c).AssignableTo(t) {
			return c, true
		}
	}
	return nil, false
}
