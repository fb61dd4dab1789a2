package motion

// Preset is a ready-made animation: where it starts, where it ends and how
// it gets there.
type Preset struct {
	Name       string
	From       Target
	To         Target
	Transition Transition
}

// Create starts p on e. opts apply after the preset's own start values, so a
// From given here replaces them.
func (p Preset) Create(e *Engine, opts ...CreateOption) (Handle, error) {
	return e.Create(p.To, p.Transition, append([]CreateOption{From(p.From)}, opts...)...)
}

// KeyframePreset is a ready-made sequence with its start values.
type KeyframePreset struct {
	Name     string
	From     Target
	Sequence Sequence
}

// Create starts p on e with CreateSequence.
func (p KeyframePreset) Create(e *Engine, opts ...CreateOption) (Handle, error) {
	return e.CreateSequence(p.Sequence, append([]CreateOption{From(p.From)}, opts...)...)
}

// Material Design cubic-bezier curves.
var (
	EaseStandard   = Bezier(0.4, 0, 0.2, 1)
	EaseAccelerate = Bezier(0.4, 0, 1, 1)
	EaseDecelerate = Bezier(0, 0, 0.2, 1)
)

// Entrances.

func FadeIn() Preset {
	return Preset{
		Name:       "fadeIn",
		From:       Opacity(0),
		To:         Opacity(1),
		Transition: Tween(0.3, EaseOut),
	}
}

// SlideUp fades in while rising distance pixels into place.
func SlideUp(distance float64) Preset {
	return Preset{
		Name:       "slideUp",
		From:       Target{PropOpacity: Number(0), PropY: Px(distance)},
		To:         Target{PropOpacity: Number(1), PropY: Px(0)},
		Transition: SpringTransition(SpringDefault),
	}
}

func ScaleIn() Preset {
	return Preset{
		Name:       "scaleIn",
		From:       Opacity(0).Merge(Scale(0.8, 0.8)),
		To:         Opacity(1).Merge(Scale(1, 1)),
		Transition: Tween(0.3, EaseOutBack),
	}
}

func PopIn() Preset {
	return Preset{
		Name:       "popIn",
		From:       Opacity(0).Merge(Scale(0, 0)),
		To:         Opacity(1).Merge(Scale(1, 1)),
		Transition: SpringTransition(SpringConfig{Stiffness: 200, Damping: 15, Mass: 1}),
	}
}

func RotateIn() Preset {
	return Preset{
		Name:       "rotateIn",
		From:       Opacity(0).Merge(Rotation(-180)),
		To:         Opacity(1).Merge(Rotation(0)),
		Transition: Tween(0.6, EaseOutBack),
	}
}

func FlipIn() Preset {
	return Preset{
		Name:       "flipIn",
		From:       Target{PropOpacity: Number(0), PropRotateY: Deg(-90)},
		To:         Target{PropOpacity: Number(1), PropRotateY: Deg(0)},
		Transition: Tween(0.7, EaseOut),
	}
}

// Exits start from the fully visible state.

func FadeOut() Preset {
	return Preset{
		Name:       "fadeOut",
		From:       Opacity(1),
		To:         Opacity(0),
		Transition: Tween(0.2, EaseIn),
	}
}

func ScaleOut() Preset {
	return Preset{
		Name:       "scaleOut",
		From:       Opacity(1).Merge(Scale(1, 1)),
		To:         Opacity(0).Merge(Scale(0.8, 0.8)),
		Transition: Tween(0.2, EaseIn),
	}
}

// PageFade fades a page in. Run it with the targets swapped to fade out.
func PageFade() Preset {
	return Preset{
		Name:       "pageFade",
		From:       Opacity(0),
		To:         Opacity(1),
		Transition: Tween(0.2, EaseInOut),
	}
}

// Spin turns one full revolution per second until stopped.
func Spin() Preset {
	return Preset{
		Name:       "spin",
		From:       Rotation(0),
		To:         Rotation(360),
		Transition: Transition{Duration: 1, Repeat: Forever()},
	}
}

// StaggerChildren is a transition for CreateGroup that starts each child
// delay seconds after the previous one.
func StaggerChildren(delay float64) Transition {
	tr := Tween(0.4, EaseOut)
	tr.Stagger = &Stagger{Each: delay, From: StaggerForward}
	return tr
}

// keyframe is a target reached at offset at (0 to 1) of the whole sequence.
// ease shapes the segment leaving it.
type keyframe struct {
	at   float64
	to   Target
	ease Easing
}

func keyframes(name string, duration float64, frames ...keyframe) KeyframePreset {
	steps := make([]Step, 0, len(frames)-1)
	for i := 1; i < len(frames); i++ {
		steps = append(steps, Step{
			Target:   frames[i].to,
			Duration: (frames[i].at - frames[i-1].at) * duration,
			Easing:   frames[i-1].ease,
		})
	}
	return KeyframePreset{Name: name, From: frames[0].to, Sequence: Sequence{Steps: steps}}
}

// Pulse grows to 105% and back over duration seconds.
func Pulse(duration float64) KeyframePreset {
	inOut := Named(EaseInOut)
	return keyframes("pulse", duration,
		keyframe{0, Scale(1, 1), inOut},
		keyframe{0.5, Scale(1.05, 1.05), inOut},
		keyframe{1, Scale(1, 1), Easing{}},
	)
}

// Bounce hops 20 pixels up and lands over duration seconds.
func Bounce(duration float64) KeyframePreset {
	return keyframes("bounce", duration,
		keyframe{0, Target{PropY: Px(0)}, Named(EaseOut)},
		keyframe{0.5, Target{PropY: Px(-20)}, Named(EaseIn)},
		keyframe{1, Target{PropY: Px(0)}, Easing{}},
	)
}

// Shake swings horizontally with shrinking amplitude over duration seconds.
func Shake(duration float64) KeyframePreset {
	inOut := Named(EaseInOut)
	x := func(at, px float64) keyframe { return keyframe{at, Target{PropX: Px(px)}, inOut} }
	return keyframes("shake", duration,
		x(0, 0), x(0.1, -10), x(0.2, 10), x(0.3, -10), x(0.4, 10),
		x(0.5, -5), x(0.6, 5), x(0.7, -2), x(0.8, 2), x(1, 0),
	)
}
