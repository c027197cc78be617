package container_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-inject/framework/container"
)

// ── fake environment ─────────────────────────────────────────────────────────

type channel[T any] struct{ subs []T }

func (c *channel[T]) AddSubscriber(s T) { c.subs = append(c.subs, s) }

type named struct {
	name string
	comp any
}

type fakeEnv struct {
	objects []named
	ticks   channel[container.Tickable]
	late    channel[container.LateTickable]
	fixed   channel[container.FixedTickable]
}

func (e *fakeEnv) spawn(name string, comp any) { e.objects = append(e.objects, named{name, comp}) }

func (e *fakeEnv) Components() []any {
	out := make([]any, 0, len(e.objects))
	for _, o := range e.objects {
		out = append(out, o.comp)
	}
	return out
}

func (e *fakeEnv) FindComponent(t reflect.Type) (any, bool) {
	for _, o := range e.objects {
		if reflect.TypeOf(o.comp).AssignableTo(t) {
			return o.comp, true
		}
	}
	return nil, false
}

func (e *fakeEnv) FindNamed(name string, t reflect.Type) (any, bool) {
	for _, o := range e.objects {
		if o.name == name && reflect.TypeOf(o.comp).AssignableTo(t) {
			return o.comp, true
		}
	}
	return nil, false
}

func (e *fakeEnv) Instantiate(template any, _ *container.Placement) (any, error) {
	c, ok := template.(interface{ Clone() any })
	if !ok {
		return nil, errors.New("not cloneable")
	}
	clone := c.Clone()
	e.spawn("clone", clone)
	return clone, nil
}

func (e *fakeEnv) AddComponent(name string, t reflect.Type) (any, error) {
	comp := reflect.New(t.Elem()).Interface()
	e.spawn(name, comp)
	return comp, nil
}

func (e *fakeEnv) Ticks() container.Channel[container.Tickable]           { return &e.ticks }
func (e *fakeEnv) LateTicks() container.Channel[container.LateTickable]   { return &e.late }
func (e *fakeEnv) FixedTicks() container.Channel[container.FixedTickable] { return &e.fixed }

// ── fixtures ─────────────────────────────────────────────────────────────────

type Counter struct{ N int }

type Service interface{ Name() string }

type alpha struct{}

func (alpha) Name() string { return "alpha" }

type beta struct{}

func (*beta) Name() string { return "beta" }

type Clock struct{ ticks int }

func (c *Clock) Tick() { c.ticks++ }

type Late struct{}

func (*Late) LateTick() {}

type Fixed struct{}

func (*Fixed) FixedTick() {}

// Both implements every periodic interface.
type Both struct{}

func (*Both) Tick()      {}
func (*Both) LateTick()  {}
func (*Both) FixedTick() {}

type LateAndFixed struct{}

func (*LateAndFixed) LateTick()  {}
func (*LateAndFixed) FixedTick() {}

type Enemy struct {
	HP      int
	Counter *Counter
}

func (e *Enemy) Clone() any { return &Enemy{HP: e.HP} }

func (e *Enemy) InjectionPoints() []container.Member {
	return []container.Member{container.Field("Counter", &e.Counter)}
}

// ── helpers ──────────────────────────────────────────────────────────────────

// install builds fn's registrations and installs them into scope.
func install(t *testing.T, c *container.Container, scope container.Scope, fn func(b *container.Builder)) {
	t.Helper()
	b := container.NewBuilder(c)
	fn(b)
	reg, err := b.Build()
	require.NoError(t, err)
	c.Install(scope, reg)
}

func newEnvContainer() (*container.Container, *fakeEnv) {
	env := &fakeEnv{}
	return container.New(container.WithEnvironment(env)), env
}
