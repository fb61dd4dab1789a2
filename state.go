package motion

// PlaybackState is the lifecycle state of an animation:
//
//	Idle -> Running -> {Paused <-> Running} -> {Completed | Cancelled}
//
// Completed and Cancelled are terminal.
type PlaybackState uint8

const (
	StateIdle PlaybackState = iota
	StateRunning
	StatePaused
	StateCompleted
	StateCancelled
)

func (s PlaybackState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Terminal reports whether s is Completed or Cancelled.
func (s PlaybackState) Terminal() bool {
	return s == StateCompleted || s == StateCancelled
}

// Observer is notified synchronously of every state change.
type Observer interface {
	AnimationStateChanged(h Handle, from, to PlaybackState)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(h Handle, from, to PlaybackState)

// AnimationStateChanged calls f(h, from, to).
func (f ObserverFunc) AnimationStateChanged(h Handle, from, to PlaybackState) { f(h, from, to) }
