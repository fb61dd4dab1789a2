// Package ecs provides ECS adapters for motion's animation lifecycle.
//
// The primary adapter is [NewDonburiObserver], which publishes every
// animation state change into a [Donburi] world as a typed event. Subscribe
// to [LifecycleEventType] in your ECS systems to receive them.
//
// Usage:
//
//	engine := motion.New(motion.WithObserver(ecs.NewDonburiObserver(world)))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
