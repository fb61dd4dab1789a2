package motion

// Backend identifies how an animation is driven.
type Backend uint8

const (
	// BackendManual advances the animation in Engine.Tick and pushes values
	// to the PropertySink.
	BackendManual Backend = iota
	// BackendNative hands the animation to the host's NativeFacility. The
	// engine still computes the same values each tick for reads.
	BackendNative
)

func (b Backend) String() string {
	switch b {
	case BackendManual:
		return "manual"
	case BackendNative:
		return "native"
	}
	return "unknown"
}

// NativeFacility is a host-provided declarative animation system, such as a
// compositor or a retained scene graph that tweens properties itself.
type NativeFacility interface {
	// Supports reports whether the facility can animate property.
	Supports(property string) bool
	// Play starts an animation. An error makes the engine fall back to the
	// manual loop for this animation.
	Play(req NativeRequest) (NativeAnimation, error)
}

// NativeRequest describes an animation handed to a NativeFacility.
type NativeRequest struct {
	Handle     Handle
	Element    any
	From       Target
	To         Target
	Transition Transition
}

// NativeAnimation controls an animation running inside a NativeFacility. The
// engine calls these to keep the facility in step with Pause, Resume and
// Stop.
type NativeAnimation interface {
	Pause()
	Resume()
	Cancel()
}

// chooseBackend picks the backend for a new entry. It returns the properties
// the facility rejected, if any, so the caller can record the fallback.
func chooseBackend(f NativeFacility, physics, sequence bool, to Target) (Backend, []string) {
	if f == nil || physics || sequence {
		return BackendManual, nil
	}
	var unsupported []string
	for _, k := range to.Keys() {
		if !f.Supports(k) {
			unsupported = append(unsupported, k)
		}
	}
	if len(unsupported) > 0 {
		return BackendManual, unsupported
	}
	return BackendNative, nil
}
