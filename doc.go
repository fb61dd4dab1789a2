// Package motion is a frame-driven animation engine.
//
// Motion animates property values (numbers, lengths, angles, colors and
// opaque tokens) with tweens, springs and sequences. It owns no clock and no
// goroutines: the host calls [Engine.Tick] once per frame with a timestamp
// and every running animation advances to it.
//
// # Quick start
//
//	engine := motion.New(motion.WithSink(mySink))
//	h, err := engine.Create(
//		motion.Position(100, 40).Merge(motion.Opacity(1)),
//		motion.Tween(0.4, motion.EaseOutCubic),
//		motion.OnElement(sprite),
//	)
//	// each frame:
//	engine.Tick(now)
//	x, _ := engine.Get(h, motion.PropX)
//
// Manual-loop animations push their values to the [PropertySink] once per
// tick. Every animation's values can also be read with [Engine.Get] or
// watched with [Engine.Watch].
//
// # Transitions
//
// A [Transition] is either fixed-duration, shaped by a named curve (via
// [gween]) or a cubic-bezier, or physics-driven by a [Spring]. Springs run
// until they come to rest. They are integrated in fixed steps of
// [SpringStep] seconds, so results do not depend on the host frame rate.
//
// [Sequence] chains steps with individual timing; [Engine.CreateGroup]
// staggers one transition across many targets.
//
// # Handles and lifecycle
//
// [Engine.Create] returns a [Handle], a slot index paired with a generation.
// Animations move through Idle, Running, Paused, Completed and Cancelled.
// Operations on terminal animations fail with [ErrInvalidHandle]; state can
// still be read until [Engine.Cleanup] releases the slot, after which the
// handle never matches again.
//
// # Backends
//
// When a [NativeFacility] is configured and supports every property of a
// tween, the animation is handed to it; otherwise it runs on the manual
// loop. The fallback is silent and values are computed the same way either
// way.
//
// # Performance
//
// A [PerformanceMonitor] tracks frame times against a [Budget]. While over
// budget the engine lowers the compositing layer cap, demoting the least
// recently active layers, and keeps released objects pooled. Nothing is
// aborted.
//
// # Concurrency
//
// An Engine is single-threaded. Hosts that tick from another goroutine must
// hold one lock around every engine call; [IntervalTicks] does this for its
// ticks.
//
// # Logging
//
// Motion logs through [log/slog] and is silent by default. Use [SetLogger]
// or [WithLogger] to enable output.
//
// [gween]: https://github.com/tanema/gween
package motion
