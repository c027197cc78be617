package container

import (
	"fmt"

	"go.uber.org/zap"
)

// ── Context ───────────────────────────────────────────────────────────────────

// Context declares the registrations of one scope.
//
//	type GameContext struct{}
//
//	func (GameContext) RegisterDependencies(b *container.Builder) {
//	    container.Register[*Clock](b, container.Singleton)
//	    container.RegisterAs[Scorer, *arcadeScorer](b, container.Singleton, newArcadeScorer)
//	}
type Context interface {
	RegisterDependencies(b *Builder)
}

// ContextFunc adapts a function to Context.
type ContextFunc func(b *Builder)

func (f ContextFunc) RegisterDependencies(b *Builder) { f(b) }

// Compose runs several contexts against the same builder, in order.
func Compose(contexts ...Context) Context {
	return ContextFunc(func(b *Builder) {
		for _, ctx := range contexts {
			if ctx != nil {
				ctx.RegisterDependencies(b)
			}
		}
	})
}

// ── Lifecycle ─────────────────────────────────────────────────────────────────

// lifecycle runs register → install → inject-everything for one scope.
type lifecycle struct {
	c      *Container
	owner  Context
	scope  Scope
	active bool
}

func (l *lifecycle) activate() error {
	if l.owner == nil {
		return invalid("%s context has no owner", l.scope)
	}

	b := NewBuilder(l.c)
	l.owner.RegisterDependencies(b)

	reg, err := b.Build()
	if err != nil {
		return fmt.Errorf("%s context: %w", l.scope, err)
	}

	l.c.Install(l.scope, reg)

	if err := l.c.InjectAll(); err != nil {
		if l.scope == Local {
			l.c.ClearLocal()
		}
		return fmt.Errorf("%s context: %w", l.scope, err)
	}

	l.active = true
	l.c.log.Info("context active", zap.Stringer("scope", l.scope))
	return nil
}

// ProjectContext populates the global scope. Activating it again replaces
// every global registration, cached singletons included.
type ProjectContext struct {
	lifecycle
}

// NewProjectContext binds owner's registrations to c's global scope.
func NewProjectContext(c *Container, owner Context) *ProjectContext {
	return &ProjectContext{lifecycle{c: c, owner: owner, scope: Global}}
}

// Activate registers, installs into the global scope, and injects every
// live component.
func (p *ProjectContext) Activate() error { return p.activate() }

// Active reports whether Activate has succeeded.
func (p *ProjectContext) Active() bool { return p.active }

// SceneContext populates the local scope for one scene.
type SceneContext struct {
	lifecycle
}

// NewSceneContext binds owner's registrations to c's local scope.
func NewSceneContext(c *Container, owner Context) *SceneContext {
	return &SceneContext{lifecycle{c: c, owner: owner, scope: Local}}
}

// Activate registers, installs into the local scope (replacing the previous
// scene's registrations), and injects every live component.
func (s *SceneContext) Activate() error { return s.activate() }

// Deactivate clears the local scope.
func (s *SceneContext) Deactivate() {
	if !s.active {
		return
	}
	s.c.ClearLocal()
	s.active = false
}

// Active reports whether the scene's registrations are installed.
func (s *SceneContext) Active() bool { return s.active }
