package host

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/km-arc/go-inject/framework/config"
)

// Loop drives a scene's channels: every frame runs the fixed steps that
// have come due, then Tick, then LateTick.
type Loop struct {
	scene *Scene

	frame     time.Duration
	fixed     time.Duration
	maxFrames int

	accumulated time.Duration
	frames      int

	log *zap.Logger
}

// NewLoop builds a loop from the configured rates.
func NewLoop(scene *Scene, cfg config.LoopConfig, log *zap.Logger) *Loop {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loop{
		scene:     scene,
		frame:     cfg.FrameInterval(),
		fixed:     cfg.FixedInterval(),
		maxFrames: cfg.MaxFrames,
		log:       log,
	}
}

// Frames returns how many frames have run.
func (l *Loop) Frames() int { return l.frames }

// Step runs one frame.
func (l *Loop) Step() {
	l.accumulated += l.frame
	for l.accumulated >= l.fixed {
		l.scene.fixedTicks.Invoke()
		l.accumulated -= l.fixed
	}
	l.scene.ticks.Invoke()
	l.scene.lateTicks.Invoke()
	l.frames++
}

// Run steps once per frame interval until ctx is done or the configured
// frame budget is spent. Cancellation is a normal stop and returns nil.
func (l *Loop) Run(ctx context.Context) error {
	l.log.Info("loop started",
		zap.Duration("frame", l.frame),
		zap.Duration("fixed", l.fixed),
		zap.Int("max_frames", l.maxFrames))

	ticker := time.NewTicker(l.frame)
	defer ticker.Stop()

	for l.maxFrames <= 0 || l.frames < l.maxFrames {
		select {
		case <-ctx.Done():
			l.log.Info("loop stopped", zap.Int("frames", l.frames))
			return nil
		case <-ticker.C:
			l.Step()
		}
	}

	l.log.Info("loop finished", zap.Int("frames", l.frames))
	return nil
}
