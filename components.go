package main

import (
	"go.uber.org/zap"

	"github.com/km-arc/go-inject/framework/container"
)

// Clock counts frames. It is Tickable, so resolving it once subscribes it.
type Clock struct {
	Frames int
}

func (c *Clock) Tick() { c.Frames++ }

// Scorer keeps the running score.
type Scorer interface {
	Add(points int)
	Score() int
}

type arcadeScorer struct {
	log   *zap.Logger
	total int
}

func newArcadeScorer(log *zap.Logger) *arcadeScorer {
	return &arcadeScorer{log: log}
}

func (s *arcadeScorer) Add(points int) {
	s.total += points
	s.log.Debug("score", zap.Int("points", points), zap.Int("total", s.total))
}

func (s *arcadeScorer) Score() int { return s.total }

// Physics steps at the fixed rate and scores one point per second of
// simulated time.
type Physics struct {
	Scorer Scorer
	steps  int
}

func (p *Physics) InjectionPoints() []container.Member {
	return []container.Member{
		container.Field("Scorer", &p.Scorer),
	}
}

func (p *Physics) FixedTick() {
	p.steps++
	if p.steps%50 == 0 {
		p.Scorer.Add(1)
	}
}

// HUD reads the clock after every frame.
type HUD struct {
	clock *Clock
	log   *zap.Logger
	shown int
}

func (h *HUD) InjectionPoints() []container.Member {
	return []container.Member{
		container.Method("Construct", h.Construct),
	}
}

func (h *HUD) Construct(clock *Clock, log *zap.Logger) {
	h.clock = clock
	h.log = log
}

func (h *HUD) LateTick() {
	if h.clock.Frames-h.shown >= 60 {
		h.shown = h.clock.Frames
		h.log.Info("hud", zap.Int("frame", h.clock.Frames))
	}
}

// Enemy is a prefab: every resolution of the template clones it.
type Enemy struct {
	HP     int
	Scorer Scorer
}

func (e *Enemy) Clone() any {
	return &Enemy{HP: e.HP}
}

func (e *Enemy) InjectionPoints() []container.Member {
	return []container.Member{
		container.Field("Scorer", &e.Scorer),
	}
}

// Player lives in the scene from the start and is injected when the scene
// scope activates.
type Player struct {
	Clock  *Clock
	Scorer Scorer
}

func (p *Player) InjectionPoints() []container.Member {
	return []container.Member{
		container.Field("Clock", &p.Clock),
		container.Property("Scorer", func(s Scorer) { p.Scorer = s }),
	}
}
