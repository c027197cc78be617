package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-inject/framework/app"
	"github.com/km-arc/go-inject/framework/config"
	"github.com/km-arc/go-inject/framework/container"
)

type Clock struct{ Frames int }

func (c *Clock) Tick() { c.Frames++ }

type Level struct{ N int }

type Player struct{ Clock *Clock }

func (p *Player) InjectionPoints() []container.Member {
	return []container.Member{container.Field("Clock", &p.Clock)}
}

func newApp(t *testing.T, maxFrames int) *app.Application {
	t.Helper()
	cfg := &config.Config{
		App:  config.AppConfig{Name: "test", Env: "testing"},
		Loop: config.LoopConfig{FrameRate: 1000, FixedRate: 1000, MaxFrames: maxFrames},
		Log:  config.LogConfig{Level: "error"},
	}
	a, err := app.NewWithConfig(cfg)
	require.NoError(t, err)
	return a
}

func TestApplication_BootAndRun(t *testing.T) {
	a := newApp(t, 3)
	a.Project(container.ContextFunc(func(b *container.Builder) {
		container.Register[*Clock](b, container.Singleton)
	}))
	p := &Player{}
	a.Scene.Spawn("Player", p)

	require.NoError(t, a.Boot())
	assert.True(t, a.Booted())
	require.NotNil(t, p.Clock)

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, 3, p.Clock.Frames)
	assert.True(t, a.IsTesting())
}

func TestApplication_LoadSceneReplacesLocal(t *testing.T) {
	a := newApp(t, 0)
	level := func(n int) container.Context {
		return container.ContextFunc(func(b *container.Builder) {
			container.RegisterInstance(b, &Level{N: n})
		})
	}

	require.NoError(t, a.LoadScene(level(1)))
	assert.Equal(t, 1, container.MustResolve[*Level](a.Container).N)

	require.NoError(t, a.LoadScene(level(2)))
	assert.Equal(t, 2, container.MustResolve[*Level](a.Container).N)
	assert.Len(t, a.Container.Entries(container.Local), 1)
}

func TestApplication_BootFailure(t *testing.T) {
	a := newApp(t, 0)
	a.Project(container.ContextFunc(func(b *container.Builder) {
		container.RegisterInstance[*Level](b, nil)
	}))

	err := a.Boot()
	assert.ErrorIs(t, err, container.ErrInvalidRegistration)
	assert.False(t, a.Booted())
}
