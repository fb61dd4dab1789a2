package motion

import (
	"fmt"
	"math"
)

// RepeatMode selects how many times an animation plays.
type RepeatMode uint8

const (
	RepeatNever    RepeatMode = iota // play once
	RepeatCount                      // play 1 + Count times
	RepeatInfinite                   // play until stopped
)

// Repeat configures repetition. With Alternate set, every other cycle plays
// backwards (yoyo).
type Repeat struct {
	Mode      RepeatMode
	Count     int
	Alternate bool
}

// MaxRepeatCount is the largest finite Repeat.Count. Use Forever beyond it.
const MaxRepeatCount = 1 << 30

// Times returns a Repeat playing n extra cycles.
func Times(n int) Repeat { return Repeat{Mode: RepeatCount, Count: n} }

// Forever returns an infinite Repeat.
func Forever() Repeat { return Repeat{Mode: RepeatInfinite} }

// Yoyo returns r with alternating direction.
func (r Repeat) Yoyo() Repeat {
	r.Alternate = true
	return r
}

// cycles returns the total number of plays, or -1 for infinite.
func (r Repeat) cycles() int {
	switch r.Mode {
	case RepeatCount:
		return 1 + r.Count
	case RepeatInfinite:
		return -1
	}
	return 1
}

// StaggerFrom selects the origin of a stagger.
type StaggerFrom uint8

const (
	StaggerForward   StaggerFrom = iota // first item starts first
	StaggerReverse                      // last item starts first
	StaggerCenter                       // middle item(s) start first
	StaggerFromIndex                    // Stagger.Origin starts first
)

// Stagger offsets the start of each item in a group by Each seconds per step
// of distance from the origin.
type Stagger struct {
	Each   float64
	From   StaggerFrom
	Origin int
}

// Transition describes the timing of an animation.
type Transition struct {
	// Duration in seconds. Ignored by spring easings, which run until rest.
	Duration float64
	// Delay before the animation starts, in seconds.
	Delay float64
	// Easing shapes progress; the zero value is linear.
	Easing Easing
	// Repeat configures repetition. Springs cannot repeat.
	Repeat Repeat
	// Stagger applies only to groups created with Engine.CreateGroup.
	Stagger *Stagger
	// ColorSpace selects how color properties blend.
	ColorSpace ColorSpace
}

// Tween returns a fixed-duration transition with a named easing.
func Tween(duration float64, name EaseName) Transition {
	return Transition{Duration: duration, Easing: Named(name)}
}

// SpringTransition returns a physics-driven transition.
func SpringTransition(cfg SpringConfig) Transition {
	return Transition{Easing: Spring(cfg)}
}

// IsPhysics reports whether the transition has no fixed duration.
func (t Transition) IsPhysics() bool { return t.Easing.IsSpring() }

// Validate rejects malformed transitions. Nothing is coerced.
func (t Transition) Validate() error {
	if !finite(t.Duration) || t.Duration < 0 {
		return fmt.Errorf("duration must be a finite non-negative number, got %v", t.Duration)
	}
	if !finite(t.Delay) || t.Delay < 0 {
		return fmt.Errorf("delay must be a finite non-negative number, got %v", t.Delay)
	}
	if err := t.Easing.Validate(); err != nil {
		return err
	}
	switch t.Repeat.Mode {
	case RepeatNever, RepeatInfinite:
	case RepeatCount:
		if t.Repeat.Count < 0 || t.Repeat.Count > MaxRepeatCount {
			return fmt.Errorf("repeat count must be in [0, %d], got %d", MaxRepeatCount, t.Repeat.Count)
		}
	default:
		return fmt.Errorf("unknown repeat mode %d", t.Repeat.Mode)
	}
	if t.IsPhysics() && t.Repeat.Mode != RepeatNever {
		return fmt.Errorf("spring transitions cannot repeat")
	}
	if s := t.Stagger; s != nil {
		if !finite(s.Each) || s.Each < 0 {
			return fmt.Errorf("stagger step must be a finite non-negative number, got %v", s.Each)
		}
		if s.From > StaggerFromIndex {
			return fmt.Errorf("unknown stagger origin %d", s.From)
		}
	}
	return nil
}

// tweenClock maps the local time of a fixed-duration transition (after the
// delay) to linear progress within the current cycle.
type tweenClock struct {
	duration  float64
	cycles    int // -1 = infinite
	alternate bool
}

func newTweenClock(t Transition) tweenClock {
	return tweenClock{duration: t.Duration, cycles: t.Repeat.cycles(), alternate: t.Repeat.Alternate}
}

// at returns the linear progress at local time and whether the final cycle
// has finished.
func (c tweenClock) at(local float64) (progress float64, done bool) {
	if local < 0 {
		return 0, false
	}
	if c.duration <= 0 {
		if c.cycles > 0 && c.alternate && c.cycles%2 == 0 {
			return 0, true
		}
		return 1, c.cycles != -1
	}
	if local == 0 {
		return 0, false
	}
	cycle := math.Floor(local / c.duration)
	if c.cycles != -1 && cycle >= float64(c.cycles) {
		last := c.cycles - 1
		if c.alternate && last%2 == 1 {
			return 0, true
		}
		return 1, true
	}
	progress = (local - cycle*c.duration) / c.duration
	if c.alternate && int64(cycle)%2 == 1 {
		progress = 1 - progress
	}
	return clampUnit(progress), false
}

// total returns the full active time of the transition, +Inf when infinite.
func (c tweenClock) total() float64 {
	if c.cycles == -1 {
		return math.Inf(1)
	}
	return c.duration * float64(c.cycles)
}
