package container_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-inject/framework/container"
)

type Spawner struct {
	Count   int
	Every   time.Duration
	Counter *Counter
	via     string
}

func newSpawner(count int, every time.Duration, c *Counter) *Spawner {
	return &Spawner{Count: count, Every: every, Counter: c, via: "full"}
}

func newSpawnerCount(count int) *Spawner {
	return &Spawner{Count: count, via: "count"}
}

type Missing struct{}

func newSpawnerMissing(m *Missing) *Spawner { return &Spawner{via: "missing"} }

// ── Plain constructors ────────────────────────────────────────────────────────

func TestConstruct_ResolvesParameters(t *testing.T) {
	c := container.New()
	install(t, c, container.Global, func(b *container.Builder) {
		container.RegisterInstance(b, &Counter{N: 5})
		container.Register[*Enemy](b, container.Transient, func(c *Counter) *Enemy {
			return &Enemy{HP: c.N}
		})
	})

	e := container.MustResolve[*Enemy](c)
	assert.Equal(t, 5, e.HP)
}

func TestConstruct_FirstConstructorWins(t *testing.T) {
	c := container.New()
	install(t, c, container.Global, func(b *container.Builder) {
		container.Register[*Counter](b, container.Transient,
			func() *Counter { return &Counter{N: 1} },
			func() *Counter { return &Counter{N: 2} },
		)
	})

	assert.Equal(t, 1, container.MustResolve[*Counter](c).N)
}

func TestConstruct_ResolverParameter(t *testing.T) {
	c := container.New()
	install(t, c, container.Global, func(b *container.Builder) {
		container.RegisterInstance(b, &Counter{N: 9})
		container.Register[*Enemy](b, container.Transient, func(r container.Resolver) (*Enemy, error) {
			cnt, err := container.Resolve[*Counter](r)
			if err != nil {
				return nil, err
			}
			return &Enemy{HP: cnt.N}, nil
		})
	})

	assert.Equal(t, 9, container.MustResolve[*Enemy](c).HP)
}

func TestConstruct_MissingDependency(t *testing.T) {
	c := container.New()
	install(t, c, container.Global, func(b *container.Builder) {
		container.Register[*Spawner](b, container.Transient, newSpawnerMissing)
	})

	_, err := container.Resolve[*Spawner](c)
	assert.ErrorIs(t, err, container.ErrNotRegistered)
}

func TestConstruct_ZeroValueWithoutConstructor(t *testing.T) {
	c := container.New()
	install(t, c, container.Global, func(b *container.Builder) {
		container.Register[Counter](b, container.Transient)
		container.Register[int](b, container.Transient)
	})

	v, err := container.Resolve[Counter](c)
	require.NoError(t, err)
	assert.Equal(t, Counter{}, v)

	_, err = container.Resolve[int](c)
	assert.ErrorIs(t, err, container.ErrConstruction)
}

// ── Parameterized constructors ────────────────────────────────────────────────

func TestConstructWith_SuppliedAndResolved(t *testing.T) {
	c := container.New()
	install(t, c, container.Global, func(b *container.Builder) {
		container.RegisterInstance(b, &Counter{N: 1})
		container.RegisterWithParameters[*Spawner](b, container.Transient,
			[]any{3, time.Second}, newSpawner)
	})

	s := container.MustResolve[*Spawner](c)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, time.Second, s.Every)
	assert.NotNil(t, s.Counter)
}

func TestConstructWith_SkipsUnsatisfiableConstructor(t *testing.T) {
	c := container.New()
	install(t, c, container.Global, func(b *container.Builder) {
		container.RegisterWithParameters[*Spawner](b, container.Transient,
			[]any{4}, newSpawnerMissing, newSpawnerCount)
	})

	s := container.MustResolve[*Spawner](c)
	assert.Equal(t, "count", s.via)
	assert.Equal(t, 4, s.Count)
}

func TestConstructWith_NoSuitableConstructor(t *testing.T) {
	c := container.New()
	install(t, c, container.Global, func(b *container.Builder) {
		container.RegisterWithParameters[*Spawner](b, container.Transient,
			[]any{"text"}, newSpawnerMissing, newSpawnerCount)
	})

	_, err := container.Resolve[*Spawner](c)
	require.Error(t, err)
	assert.ErrorIs(t, err, container.ErrConstruction)

	var ce *container.ConstructionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, []any{"text"}, ce.Params)
	assert.Contains(t, err.Error(), "no suitable constructor found")
}

func TestConstructWith_ConstructorError(t *testing.T) {
	boom := errors.New("boom")
	c := container.New()
	install(t, c, container.Global, func(b *container.Builder) {
		container.RegisterWithParameters[*Spawner](b, container.Transient, nil,
			func() (*Spawner, error) { return nil, boom })
	})

	_, err := container.Resolve[*Spawner](c)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, container.ErrConstruction)
}

func TestConstructWith_RegisteredUnderService(t *testing.T) {
	c := container.New()
	install(t, c, container.Global, func(b *container.Builder) {
		container.RegisterAsWithParameters[Service, *beta](b, container.Singleton, nil,
			func() *beta { return &beta{} })
	})

	s, err := container.Resolve[Service](c)
	require.NoError(t, err)
	assert.Equal(t, "beta", s.Name())

	_, err = container.Resolve[*beta](c)
	assert.ErrorIs(t, err, container.ErrNotRegistered)
}

// ── Factories ─────────────────────────────────────────────────────────────────

func TestRegisterFactory_IsTransientAndInjected(t *testing.T) {
	c := container.New()
	install(t, c, container.Global, func(b *container.Builder) {
		container.Register[*Counter](b, container.Singleton)
		container.RegisterFactory(b, func(container.Resolver) (*Enemy, error) {
			return &Enemy{HP: 2}, nil
		})
	})

	a := container.MustResolve[*Enemy](c)
	b := container.MustResolve[*Enemy](c)
	assert.NotSame(t, a, b)
	assert.NotNil(t, a.Counter)
	assert.Same(t, a.Counter, b.Counter)
}
