package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/km-arc/go-inject/framework/config"
	"github.com/km-arc/go-inject/framework/container"
	"github.com/km-arc/go-inject/framework/host"
	"github.com/km-arc/go-inject/framework/inspect"
	"github.com/km-arc/go-inject/framework/logging"
	"github.com/km-arc/go-inject/framework/providers"
)

// Application wires configuration, logging, the host scene and the
// container together.
//
//	application, err := app.New()
//	application.Project(GameContext{})
//	application.Boot()
//	application.LoadScene(LevelOne{})
//	application.Run(ctx)
type Application struct {
	Container *container.Container
	Config    *config.Config
	Log       *zap.Logger
	Scene     *host.Scene
	Loop      *host.Loop

	project []container.Context
	booted  bool
	scene   *container.SceneContext
}

// New loads configuration from envFiles and builds the logger, scene, loop
// and container. Nothing is registered until Boot.
func New(envFiles ...string) (*Application, error) {
	cfg := config.Load(envFiles...)
	return NewWithConfig(cfg)
}

// NewWithConfig is New with an already loaded configuration.
func NewWithConfig(cfg *config.Config) (*Application, error) {
	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	log = log.With(zap.String("app", cfg.App.Name), zap.String("env", cfg.App.Env))

	scene := host.NewScene(log.Named("scene"))
	return &Application{
		Container: container.New(
			container.WithLogger(log.Named("container")),
			container.WithEnvironment(scene),
		),
		Config: cfg,
		Log:    log,
		Scene:  scene,
		Loop:   host.NewLoop(scene, cfg.Loop, log.Named("loop")),
	}, nil
}

// Project adds contexts to the project scope. They are registered after the
// framework providers when Boot runs.
func (a *Application) Project(contexts ...container.Context) {
	a.project = append(a.project, contexts...)
}

// Boot activates the project scope. Calling it again is a no-op.
func (a *Application) Boot() error {
	if a.booted {
		return nil
	}
	owner := container.Compose(append(
		[]container.Context{providers.Framework(a.Config, a.Log, a.Scene, a.Loop)},
		a.project...,
	)...)
	if err := container.NewProjectContext(a.Container, owner).Activate(); err != nil {
		return fmt.Errorf("boot: %w", err)
	}
	a.booted = true
	return nil
}

// Booted reports whether Boot has succeeded.
func (a *Application) Booted() bool { return a.booted }

// LoadScene replaces the local scope with ctx's registrations, deactivating
// the previous scene first.
func (a *Application) LoadScene(ctx container.Context) error {
	if !a.booted {
		if err := a.Boot(); err != nil {
			return err
		}
	}
	if a.scene != nil {
		a.scene.Deactivate()
	}
	sc := container.NewSceneContext(a.Container, ctx)
	if err := sc.Activate(); err != nil {
		return fmt.Errorf("load scene: %w", err)
	}
	a.scene = sc
	return nil
}

// Run boots the application (if needed), starts the inspect server when
// enabled, and runs the loop until ctx is done or the frame budget is
// spent.
func (a *Application) Run(ctx context.Context) error {
	if err := a.Boot(); err != nil {
		return err
	}
	a.Log.Info("running", zap.Bool("inspect", a.Config.Inspect.Enabled))

	if !a.Config.Inspect.Enabled {
		return a.Loop.Run(ctx)
	}

	srv := &http.Server{
		Addr:              a.Config.Inspect.Addr,
		Handler:           inspect.Handler(a.Container, a.Scene, a.Log.Named("inspect")),
		ReadHeaderTimeout: 5 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		a.Log.Info("inspect listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		if err := <-serveErr; err != nil {
			a.Log.Error("inspect server failed", zap.Error(err))
			cancel()
		}
	}()

	runErr := a.Loop.Run(loopCtx)

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config.App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.Config.App.Debug }
