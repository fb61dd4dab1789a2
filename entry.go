package motion

import "math"

type entryKind uint8

const (
	kindTween entryKind = iota
	kindSpring
	kindSequence
)

// entry is one registered animation. Entries are owned by the registry and
// recycled through the pool; nothing outside the engine holds a pointer.
type entry struct {
	handle     Handle
	kind       entryKind
	state      PlaybackState
	backend    Backend
	native     NativeAnimation
	element    any
	label      string
	onComplete func(Handle)

	from   Target
	to     Target
	props  []string
	values map[string]*MotionValue
	frame  Target // last computed values, handed to the sink

	delay  float64
	easing Easing
	space  ColorSpace
	clock  tweenClock

	integ          springIntegrator
	springs        []springState
	numeric        []bool
	progressSpring springState
	hasProgress    bool
	distance       float64

	seq *compiledSequence

	anchored bool
	last     float64
	elapsed  float64
	progress float64
}

// clear resets e for pooling, keeping its maps and slices.
func (e *entry) clear() {
	values, frame := e.values, e.frame
	clear(values)
	clear(frame)
	*e = entry{
		values:  values,
		frame:   frame,
		props:   e.props[:0],
		springs: e.springs[:0],
		numeric: e.numeric[:0],
	}
}

// live reports whether e accepts control operations.
func (e *entry) live() bool { return !e.state.Terminal() }

// advanceClock folds the time since the last tick into elapsed. The first
// tick after creation or resume only anchors.
func (e *entry) advanceClock(ts float64) {
	if !e.anchored {
		e.anchored = true
		e.last = ts
		return
	}
	if dt := ts - e.last; dt > 0 {
		e.elapsed += dt
	}
	e.last = ts
}

// initSprings prepares one scalar spring per numeric property and a shared
// progress spring for the rest.
func (e *entry) initSprings(cfg SpringConfig) {
	e.integ = newSpringIntegrator(cfg)
	e.restartSprings()
}

func (e *entry) restartSprings() {
	cfg := e.integ.cfg
	e.springs = e.springs[:0]
	e.numeric = e.numeric[:0]
	e.hasProgress = false
	e.distance = 0
	for _, k := range e.props {
		from, to := e.from[k], e.to[k]
		if from.IsNumeric() {
			e.springs = append(e.springs, e.integ.start(from.num, to.num, cfg.Velocity))
			e.numeric = append(e.numeric, true)
			e.distance += math.Abs(to.num - from.num)
			continue
		}
		e.springs = append(e.springs, springState{resting: true})
		e.numeric = append(e.numeric, false)
		e.hasProgress = true
	}
	if e.hasProgress {
		e.progressSpring = e.integ.start(0, 1, 0)
		e.distance++
	}
}

// sample computes every property at the entry's current elapsed time,
// stamps the MotionValues with now and reports whether the animation has
// finished.
func (e *entry) sample(now float64) bool {
	local := e.elapsed - e.delay
	if local < 0 {
		e.progress = 0
		return false
	}
	switch e.kind {
	case kindSpring:
		return e.sampleSpring(local, now)
	case kindSequence:
		done := e.seq.sampleInto(e.frame, local)
		for _, k := range e.props {
			e.values[k].setAt(e.frame[k], now)
		}
		switch {
		case done:
			e.progress = 1
		case e.seq.length <= 0:
			e.progress = 1
		case e.seq.seq.Loop:
			e.progress = math.Mod(local, e.seq.length) / e.seq.length
		default:
			e.progress = clampUnit(local / e.seq.length)
		}
		return done
	}

	p, done := e.clock.at(local)
	eased := e.easing.Apply(p)
	for _, k := range e.props {
		v := interpolate(e.from[k], e.to[k], eased, e.space)
		e.frame[k] = v
		e.values[k].setAt(v, now)
	}
	switch total := e.clock.total(); {
	case done:
		e.progress = 1
	case math.IsInf(total, 1):
		e.progress = p
	case total <= 0:
		e.progress = 1
	default:
		e.progress = clampUnit(local / total)
	}
	return done
}

func (e *entry) sampleSpring(local, now float64) bool {
	resting := true
	remaining := 0.0
	if e.hasProgress {
		e.integ.advanceTo(&e.progressSpring, local)
		resting = e.progressSpring.resting
		remaining += math.Abs(1 - e.progressSpring.pos)
	}
	for i, k := range e.props {
		var v Value
		if e.numeric[i] {
			st := &e.springs[i]
			e.integ.advanceTo(st, local)
			if !st.resting {
				resting = false
			}
			remaining += math.Abs(st.target - st.pos)
			v = e.to[k].withNum(st.pos)
		} else {
			v = interpolate(e.from[k], e.to[k], e.progressSpring.pos, e.space)
		}
		e.frame[k] = v
	}
	if resting {
		for _, k := range e.props {
			e.frame[k] = e.to[k]
		}
		remaining = 0
	}
	for _, k := range e.props {
		e.values[k].setAt(e.frame[k], now)
	}
	if e.distance > 0 {
		e.progress = clampUnit(1 - remaining/e.distance)
	} else {
		e.progress = 1
	}
	return resting
}
