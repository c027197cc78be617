// Package container is the dependency-injection engine behind go-inject.
//
// # Overview
//
// A Container owns two registries. The global scope lives for the whole
// application; the local scope belongs to the active scene and is searched
// first. Registrations are declared by a Context, installed wholesale by a
// ProjectContext (global) or SceneContext (local), and resolved on demand.
//
// # Lifecycle
//
//  1. Create:   c := container.New(container.WithEnvironment(scene))
//  2. Project:  container.NewProjectContext(c, GameContext{}).Activate()
//  3. Scene:    container.NewSceneContext(c, LevelContext{}).Activate()
//  4. Resolve:  clock, err := container.Resolve[*Clock](c)
//
// Activating a context runs its RegisterDependencies, installs the result
// and then injects every live component of the environment.
//
// # Registrations
//
//	// Built by zero construction, members injected afterwards
//	container.Register[*Clock](b, container.Singleton)
//
//	// Built by a constructor; parameters are resolved by type
//	container.RegisterAs[Scorer, *arcadeScorer](b, container.Singleton, newArcadeScorer)
//
//	// Constructor parameters taken from supplied values first
//	container.RegisterWithParameters[*Spawner](b, container.Transient, []any{3}, NewSpawner)
//
//	// Pre-built values and scene components
//	container.RegisterInstance(b, cfg)
//	container.RegisterFromScene[*Camera](b)
//	container.RegisterComponent(b, enemyPrefab, container.Transient)
//
//	// Several registrations of one type, told apart by tag
//	container.Register[*Weapon](b, container.Singleton, NewSword).WithTag("primary")
//
// When a type has several constructors the first one listed is used; the
// parameterized form moves on to the next constructor only when a
// parameter's type is not registered at all.
//
// # Resolution
//
// Resolve looks in the local scope, then the global scope. A cached
// singleton is returned as is. Anything freshly produced is member-injected
// and, if it is Tickable, LateTickable or FixedTickable (checked in that
// order, first match only), subscribed to the host's matching channel
// before it is returned. Requesting a type that is already being resolved
// on the same chain fails with ErrCyclicDependency.
//
// # Member injection
//
// Objects declare their injectable members explicitly:
//
//	func (p *Player) InjectionPoints() []container.Member {
//	    return []container.Member{
//	        container.Method("Construct", p.Construct),
//	        container.Field("Score", &p.Score),
//	        container.Property("Weapon", p.SetWeapon, "primary"),
//	    }
//	}
//
// Methods run first, then fields, then properties.
//
// # Concurrency
//
// Exported Container methods serialize on one lock. Factories,
// constructors and injection methods that need the container take either a
// Resolver or a *Container parameter. The *Container they receive is bound
// to the running resolution, so calling it joins that resolution (cycle
// detection included) rather than waiting for the lock. Do not hand it to
// another goroutine while the resolution runs.
package container
