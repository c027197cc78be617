// Package providers holds the framework's own registrations. The
// application composes them ahead of user contexts in the project scope.
package providers

import (
	"go.uber.org/zap"

	"github.com/km-arc/go-inject/framework/config"
	"github.com/km-arc/go-inject/framework/container"
	"github.com/km-arc/go-inject/framework/host"
)

// ── ConfigProvider ────────────────────────────────────────────────────────────

// ConfigProvider registers the loaded configuration.
//
// Registered types:
//   - *config.Config
//   - config.LoopConfig
type ConfigProvider struct {
	Config *config.Config
}

func (p ConfigProvider) RegisterDependencies(b *container.Builder) {
	container.RegisterInstance(b, p.Config)
	if p.Config != nil {
		container.RegisterInstance(b, p.Config.Loop)
	}
}

// ── LoggerProvider ────────────────────────────────────────────────────────────

// LoggerProvider registers the application logger. Named loggers are
// registered under their name as tag:
//
//	log, _ := container.Resolve[*zap.Logger](r, "physics")
type LoggerProvider struct {
	Logger *zap.Logger
	Named  []string
}

func (p LoggerProvider) RegisterDependencies(b *container.Builder) {
	container.RegisterInstance(b, p.Logger)
	if p.Logger == nil {
		return
	}
	for _, name := range p.Named {
		container.RegisterInstance(b, p.Logger.Named(name)).WithTag(name)
	}
}

// ── HostProvider ──────────────────────────────────────────────────────────────

// HostProvider registers the scene and its loop.
//
// Registered types:
//   - *host.Scene
//   - *host.Loop
type HostProvider struct {
	Scene *host.Scene
	Loop  *host.Loop
}

func (p HostProvider) RegisterDependencies(b *container.Builder) {
	container.RegisterInstance(b, p.Scene)
	container.RegisterInstance(b, p.Loop)
}

// Framework composes the three providers in registration order.
func Framework(cfg *config.Config, log *zap.Logger, scene *host.Scene, loop *host.Loop) container.Context {
	return container.Compose(
		ConfigProvider{Config: cfg},
		LoggerProvider{Logger: log},
		HostProvider{Scene: scene, Loop: loop},
	)
}
