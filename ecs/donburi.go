package ecs

import (
	"github.com/phanxgames/motion"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// LifecycleEvent is one animation state change.
type LifecycleEvent struct {
	Handle motion.Handle
	From   motion.PlaybackState
	To     motion.PlaybackState
}

// Finished reports whether the animation reached a terminal state.
func (e LifecycleEvent) Finished() bool { return e.To.Terminal() }

// LifecycleEventType is the Donburi event type for animation state changes.
var LifecycleEventType = events.NewEventType[LifecycleEvent]()

type donburiObserver struct {
	world donburi.World
}

// NewDonburiObserver creates a motion.Observer backed by a Donburi world.
// Events are queued on LifecycleEventType and delivered by ProcessEvents.
func NewDonburiObserver(world donburi.World) motion.Observer {
	return &donburiObserver{world: world}
}

func (o *donburiObserver) AnimationStateChanged(h motion.Handle, from, to motion.PlaybackState) {
	LifecycleEventType.Publish(o.world, LifecycleEvent{Handle: h, From: from, To: to})
}
