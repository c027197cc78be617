package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/km-arc/go-inject/framework/app"
	"github.com/km-arc/go-inject/framework/container"
)

func main() {
	application, err := app.New() // loads .env automatically
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = application.Log.Sync() }()

	// ── Project scope: lives for the whole run ───────────────────────────────

	application.Project(container.ContextFunc(func(b *container.Builder) {
		container.Register[*Clock](b, container.Singleton)
		container.RegisterAs[Scorer, *arcadeScorer](b, container.Singleton, newArcadeScorer)
	}))

	if err := application.Boot(); err != nil {
		application.Log.Fatal("boot failed", zap.Error(err))
	}

	// ── Scene scope: replaced on every level load ────────────────────────────

	application.Scene.Spawn("Player", &Player{})

	err = application.LoadScene(container.ContextFunc(func(b *container.Builder) {
		container.Register[*Physics](b, container.Singleton)
		container.Register[*HUD](b, container.Singleton)
		container.RegisterComponent(b, &Enemy{HP: 3}, container.Transient).WithTag("grunt")
		container.RegisterFromSceneNamed[*Player](b, "Player")
	}))
	if err != nil {
		application.Log.Fatal("scene failed", zap.Error(err))
	}

	// Resolving hooks Physics and HUD into their channels.
	container.MustResolve[*Physics](application.Container)
	container.MustResolve[*HUD](application.Container)
	for range 2 {
		container.MustResolve[*Enemy](application.Container, "grunt")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		application.Log.Fatal("run failed", zap.Error(err))
	}

	clock := container.MustResolve[*Clock](application.Container)
	scorer := container.MustResolve[Scorer](application.Container)
	application.Log.Info("done",
		zap.Int("frames", clock.Frames),
		zap.Int("score", scorer.Score()))
}
