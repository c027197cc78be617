// Package host is a small frame-driven scene that implements
// container.Environment.
//
// A Scene holds named objects and their components, copies Prefab
// templates, and owns three channels: Tick (once per frame), LateTick
// (once per frame, after Tick) and FixedTick (once per fixed step). A Loop
// steps the scene at the configured rates.
//
//	scene := host.NewScene(log)
//	scene.Spawn("Player", &Player{})
//
//	c := container.New(container.WithEnvironment(scene))
//	...
//	host.NewLoop(scene, cfg.Loop, log).Run(ctx)
package host
