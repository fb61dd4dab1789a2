package motion

import (
	"fmt"
	"math"
)

// Step is one segment of a Sequence. It animates the properties it names
// from wherever the sequence left them to Target.
type Step struct {
	Target   Target
	Duration float64
	Delay    float64
	Easing   Easing
}

// Sequence is an ordered list of steps. Gap is inserted between consecutive
// steps. A looping sequence wraps its local time modulo the cycle length;
// with Alternate, odd cycles play backwards.
type Sequence struct {
	Steps      []Step
	Gap        float64
	Loop       bool
	Alternate  bool
	ColorSpace ColorSpace
}

// Playhead locates a point in time inside a sequence.
type Playhead struct {
	// Index is the active step.
	Index int
	// Progress is the linear progress within the active step, in [0, 1].
	Progress float64
	// Cycle counts completed loops.
	Cycle int
	// Reversed is true on the backward half of an alternating loop.
	Reversed bool
	// Done is true once a non-looping sequence has finished.
	Done bool
}

// CycleDuration returns the length of one pass through every step.
func (s Sequence) CycleDuration() float64 {
	var total float64
	for i, st := range s.Steps {
		total += st.Delay + st.Duration
		if i > 0 {
			total += s.Gap
		}
	}
	return total
}

// Validate checks timings and easings. Steps may not use springs.
func (s Sequence) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("sequence has no steps")
	}
	if !finite(s.Gap) || s.Gap < 0 {
		return fmt.Errorf("sequence gap must be a finite non-negative number, got %v", s.Gap)
	}
	for i, st := range s.Steps {
		if !finite(st.Duration) || st.Duration < 0 || !finite(st.Delay) || st.Delay < 0 {
			return fmt.Errorf("step %d: duration and delay must be finite and non-negative", i)
		}
		if st.Easing.IsSpring() {
			return fmt.Errorf("step %d: springs are not allowed inside a sequence", i)
		}
		if err := st.Easing.Validate(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		if len(st.Target) == 0 {
			return fmt.Errorf("step %d: empty target", i)
		}
		if err := st.Target.validate(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}

// Locate returns the active step and the progress within it at time t.
func (s Sequence) Locate(t float64) Playhead {
	n := len(s.Steps)
	if n == 0 {
		return Playhead{Done: true}
	}
	if !finite(t) || t <= 0 {
		return Playhead{}
	}
	cycleLen := s.CycleDuration()
	if cycleLen <= 0 {
		return Playhead{Index: n - 1, Progress: 1, Done: !s.Loop}
	}
	if !s.Loop && t >= cycleLen {
		return Playhead{Index: n - 1, Progress: 1, Done: true}
	}

	cycle := math.Floor(t / cycleLen)
	local := t - cycle*cycleLen
	pos := Playhead{Cycle: int(cycle)}
	if s.Alternate && int64(cycle)%2 == 1 {
		pos.Reversed = true
		local = cycleLen - local
	}

	acc := 0.0
	for i, st := range s.Steps {
		if i > 0 {
			acc += s.Gap
		}
		start := acc + st.Delay
		end := start + st.Duration
		if local < end || i == n-1 {
			pos.Index = i
			switch {
			case local <= start:
				pos.Progress = 0
			case st.Duration <= 0 || local >= end:
				pos.Progress = 1
			default:
				pos.Progress = (local - start) / st.Duration
			}
			return pos
		}
		acc = end
		if i < n-1 && local < acc+s.Gap {
			pos.Index = i
			pos.Progress = 1
			return pos
		}
	}
	pos.Index = n - 1
	pos.Progress = 1
	return pos
}

// Sample returns every animated property at time t, starting from from.
func (s Sequence) Sample(from Target, t float64) (Target, error) {
	cs, err := compileSequence(s, from)
	if err != nil {
		return nil, err
	}
	out := make(Target, len(cs.final))
	cs.sampleInto(out, t)
	return out, nil
}

// compiledSequence caches the resolved state before every step.
type compiledSequence struct {
	seq    Sequence
	bases  []Target // full property state when step i begins
	final  Target
	props  []string
	length float64
}

func compileSequence(s Sequence, from Target) (*compiledSequence, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	state := Target{}
	var props []string
	for _, st := range s.Steps {
		for _, k := range st.Target.Keys() {
			if _, seen := state[k]; seen {
				continue
			}
			props = append(props, k)
			if v, ok := from[k]; ok {
				state[k] = v
			} else {
				state[k] = zeroLike(st.Target[k])
			}
		}
	}
	cs := &compiledSequence{seq: s, props: props, length: s.CycleDuration()}
	for i, st := range s.Steps {
		cs.bases = append(cs.bases, state.Clone())
		for _, k := range st.Target.Keys() {
			if !state[k].Compatible(st.Target[k]) {
				return nil, fmt.Errorf("step %d property %q: cannot interpolate %s to %s",
					i, k, state[k].Kind(), st.Target[k].Kind())
			}
		}
		state = state.Merge(st.Target)
	}
	cs.final = state
	return cs, nil
}

// sampleInto writes the state at time t into dst and reports whether the
// sequence has finished.
func (cs *compiledSequence) sampleInto(dst Target, t float64) bool {
	pos := cs.seq.Locate(t)
	if pos.Done {
		for k, v := range cs.final {
			dst[k] = v
		}
		return true
	}
	base := cs.bases[pos.Index]
	for k, v := range base {
		dst[k] = v
	}
	st := cs.seq.Steps[pos.Index]
	eased := st.Easing.Apply(pos.Progress)
	for k, end := range st.Target {
		dst[k] = interpolate(base[k], end, eased, cs.seq.ColorSpace)
	}
	return false
}
