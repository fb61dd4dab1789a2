package motion

import (
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// SimulatedFacility is an in-process NativeFacility built on gween tweens.
// It stands in for a host compositor in tests and examples: every played
// animation is a group of float32 tweens advanced by Advance. Only numeric
// values of the configured properties are accepted.
//
// There is no clock of its own; the host calls Advance each frame.
type SimulatedFacility struct {
	props map[string]bool
	anims []*SimulatedAnimation
	// FailPlay makes Play return an error, for exercising the fallback path.
	FailPlay bool
}

// NewSimulatedFacility returns a facility that supports the given properties.
func NewSimulatedFacility(props ...string) *SimulatedFacility {
	f := &SimulatedFacility{props: make(map[string]bool, len(props))}
	for _, p := range props {
		f.props[p] = true
	}
	return f
}

// Supports reports whether property was passed to NewSimulatedFacility.
func (f *SimulatedFacility) Supports(property string) bool { return f.props[property] }

// Play starts a tween group for req.
func (f *SimulatedFacility) Play(req NativeRequest) (NativeAnimation, error) {
	if f.FailPlay {
		return nil, fmt.Errorf("simulated facility: play refused")
	}
	tr := req.Transition
	if tr.Repeat.Mode != RepeatNever || tr.IsPhysics() {
		return nil, fmt.Errorf("simulated facility: only single-shot tweens are supported")
	}
	a := &SimulatedAnimation{
		Element: req.Element,
		Handle:  req.Handle,
		delay:   float32(tr.Delay),
		values:  make(map[string]float64, len(req.To)),
	}
	fn := tweenFunc(tr.Easing)
	for _, k := range req.To.Keys() {
		from, ok1 := req.From[k].Float()
		to, ok2 := req.To[k].Float()
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("simulated facility: property %q is not numeric", k)
		}
		a.props = append(a.props, k)
		a.tweens = append(a.tweens, gween.New(float32(from), float32(to), float32(tr.Duration), fn))
		a.values[k] = from
	}
	f.anims = append(f.anims, a)
	return a, nil
}

// Advance moves every running animation forward by dt seconds and drops
// finished or cancelled ones.
func (f *SimulatedFacility) Advance(dt float32) {
	live := f.anims[:0]
	for _, a := range f.anims {
		a.update(dt)
		if !a.Done && !a.Cancelled {
			live = append(live, a)
		}
	}
	for i := len(live); i < len(f.anims); i++ {
		f.anims[i] = nil
	}
	f.anims = live
}

// Animations returns the animations still owned by the facility.
func (f *SimulatedFacility) Animations() []*SimulatedAnimation { return f.anims }

// SimulatedAnimation is one played request. It implements NativeAnimation.
type SimulatedAnimation struct {
	Element   any
	Handle    Handle
	Paused    bool
	Cancelled bool
	Done      bool

	delay  float32
	props  []string
	tweens []*gween.Tween
	values map[string]float64
}

// Value returns the facility's current value for property.
func (a *SimulatedAnimation) Value(property string) (float64, bool) {
	v, ok := a.values[property]
	return v, ok
}

func (a *SimulatedAnimation) Pause()  { a.Paused = true }
func (a *SimulatedAnimation) Resume() { a.Paused = false }
func (a *SimulatedAnimation) Cancel() { a.Cancelled = true }

func (a *SimulatedAnimation) update(dt float32) {
	if a.Done || a.Cancelled || a.Paused {
		return
	}
	if a.delay > 0 {
		a.delay -= dt
		if a.delay > 0 {
			return
		}
		dt = -a.delay
		a.delay = 0
	}
	allDone := true
	for i, tw := range a.tweens {
		val, finished := tw.Update(dt)
		a.values[a.props[i]] = float64(val)
		if !finished {
			allDone = false
		}
	}
	a.Done = allDone
}

// tweenFunc adapts an Easing to gween's (t, b, c, d) signature.
func tweenFunc(e Easing) ease.TweenFunc {
	if e.kind == easingNamed {
		if fn, ok := namedCurves[e.name]; ok {
			return fn
		}
	}
	return func(t, b, c, d float32) float32 {
		if d <= 0 {
			return b + c
		}
		return b + c*float32(e.Apply(float64(t/d)))
	}
}
