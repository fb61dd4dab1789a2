package motion

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/harmonica"
)

// SpringStep is the fixed integration step of every spring, in seconds.
//
// Springs are advanced with harmonica's exact per-step solution of the damped
// oscillator. The state at local time t is always the state after
// floor(t/SpringStep) steps, so two hosts ticking at different frame rates
// observe identical values at the same timestamps.
const SpringStep = 1.0 / 120

// maxSpringSteps bounds the catch-up work done for one spring in one tick.
// A host that stalls for longer resumes from where the cap left it.
const maxSpringSteps = 1200

// springValueLimit bounds spring positions so a diverging configuration can
// never push Inf into a MotionValue.
const springValueLimit = 1e12

const defaultRestThreshold = 0.01

// SpringConfig describes a damped harmonic oscillator.
type SpringConfig struct {
	// Stiffness is the spring constant k. Must be > 0.
	Stiffness float64 `yaml:"stiffness"`
	// Damping is the damping coefficient c. Must be >= 0.
	Damping float64 `yaml:"damping"`
	// Mass is the attached mass m. Must be > 0.
	Mass float64 `yaml:"mass"`
	// Velocity is the initial velocity in value units per second.
	Velocity float64 `yaml:"velocity"`
	// RestDelta is the distance to target below which the spring may rest.
	// Zero means 0.01.
	RestDelta float64 `yaml:"restDelta"`
	// RestSpeed is the speed below which the spring may rest. Zero means 0.01.
	RestSpeed float64 `yaml:"restSpeed"`
}

// Spring presets.
var (
	SpringDefault = SpringConfig{Stiffness: 100, Damping: 10, Mass: 1}
	SpringGentle  = SpringConfig{Stiffness: 100, Damping: 20, Mass: 1}
	SpringBouncy  = SpringConfig{Stiffness: 200, Damping: 10, Mass: 1}
	SpringSnappy  = SpringConfig{Stiffness: 300, Damping: 30, Mass: 1}
	SpringStiff   = SpringConfig{Stiffness: 400, Damping: 40, Mass: 1}
	SpringWobbly  = SpringConfig{Stiffness: 180, Damping: 8, Mass: 1}
	SpringSlow    = SpringConfig{Stiffness: 50, Damping: 15, Mass: 1}
)

var springPresets = map[string]SpringConfig{
	"default": SpringDefault,
	"gentle":  SpringGentle,
	"bouncy":  SpringBouncy,
	"snappy":  SpringSnappy,
	"stiff":   SpringStiff,
	"wobbly":  SpringWobbly,
	"slow":    SpringSlow,
}

// SpringPreset looks up a preset by name (case-insensitive).
func SpringPreset(name string) (SpringConfig, bool) {
	cfg, ok := springPresets[strings.ToLower(strings.TrimSpace(name))]
	return cfg, ok
}

// Validate rejects physically meaningless parameters. Nothing is clamped.
func (c SpringConfig) Validate() error {
	for _, f := range []float64{c.Stiffness, c.Damping, c.Mass, c.Velocity, c.RestDelta, c.RestSpeed} {
		if !finite(f) {
			return fmt.Errorf("spring parameters must be finite")
		}
	}
	if c.Stiffness <= 0 {
		return fmt.Errorf("spring stiffness must be positive, got %v", c.Stiffness)
	}
	if c.Damping < 0 {
		return fmt.Errorf("spring damping must be non-negative, got %v", c.Damping)
	}
	if c.Mass <= 0 {
		return fmt.Errorf("spring mass must be positive, got %v", c.Mass)
	}
	if c.RestDelta < 0 || c.RestSpeed < 0 {
		return fmt.Errorf("spring rest thresholds must be non-negative")
	}
	return nil
}

func (c SpringConfig) restDelta() float64 {
	if c.RestDelta == 0 {
		return defaultRestThreshold
	}
	return c.RestDelta
}

func (c SpringConfig) restSpeed() float64 {
	if c.RestSpeed == 0 {
		return defaultRestThreshold
	}
	return c.RestSpeed
}

// NaturalFrequency returns ω = sqrt(k/m) in radians per second.
func (c SpringConfig) NaturalFrequency() float64 {
	return math.Sqrt(c.Stiffness / c.Mass)
}

// DampingRatio returns ζ = c / (2·sqrt(k·m)). Below 1 the spring oscillates.
func (c SpringConfig) DampingRatio() float64 {
	return c.Damping / (2 * math.Sqrt(c.Stiffness*c.Mass))
}

// EstimatedDuration estimates how long a spring released at the given
// displacement takes to come to rest. The estimate follows the slowest
// exponential envelope of the oscillator and is padded by a factor of two to
// absorb the polynomial term near critical damping. An undamped spring never
// settles and reports +Inf.
func (c SpringConfig) EstimatedDuration(displacement float64) float64 {
	d := math.Abs(displacement) + math.Abs(c.Velocity)/math.Max(c.NaturalFrequency(), 1)
	threshold := math.Min(c.restDelta(), c.restSpeed())
	if d < threshold {
		return 0
	}
	omega := c.NaturalFrequency()
	zeta := c.DampingRatio()
	var decay float64
	if zeta < 1 {
		decay = zeta * omega
	} else {
		decay = omega * (zeta - math.Sqrt(zeta*zeta-1))
	}
	if decay <= 0 {
		return math.Inf(1)
	}
	return 2 * math.Log(d*math.Max(1, omega)/threshold) / decay
}

// springState is one scalar spring moving toward target.
type springState struct {
	pos, vel float64
	target   float64
	steps    int64
	resting  bool
}

// springIntegrator advances springState values with a fixed-step harmonica
// spring built from one SpringConfig.
type springIntegrator struct {
	cfg  SpringConfig
	step harmonica.Spring
}

func newSpringIntegrator(cfg SpringConfig) springIntegrator {
	return springIntegrator{
		cfg:  cfg,
		step: harmonica.NewSpring(SpringStep, cfg.NaturalFrequency(), cfg.DampingRatio()),
	}
}

func (si *springIntegrator) start(from, to, velocity float64) springState {
	st := springState{pos: from, vel: velocity, target: to}
	st.resting = si.atRest(&st)
	return st
}

// advanceTo steps st until it has taken floor(elapsed/SpringStep) steps.
func (si *springIntegrator) advanceTo(st *springState, elapsed float64) {
	if st.resting {
		return
	}
	want := int64(math.Floor(elapsed/SpringStep + 1e-9))
	n := want - st.steps
	if n > maxSpringSteps {
		n = maxSpringSteps
	}
	for ; n > 0; n-- {
		st.pos, st.vel = si.step.Update(st.pos, st.vel, st.target)
		st.steps++
		if !finite(st.pos) || !finite(st.vel) {
			st.pos, st.vel = st.target, 0
		}
		st.pos = clampMagnitude(st.pos, springValueLimit)
		if si.atRest(st) {
			st.pos, st.vel = st.target, 0
			st.resting = true
			return
		}
	}
}

func (si *springIntegrator) atRest(st *springState) bool {
	return math.Abs(st.pos-st.target) < si.cfg.restDelta() &&
		math.Abs(st.vel) < si.cfg.restSpeed()
}

// SpringSimulator exposes the integrator for a single scalar, for hosts that
// want spring motion outside the engine and for tests.
type SpringSimulator struct {
	integ   springIntegrator
	state   springState
	elapsed float64
}

// NewSpringSimulator validates cfg and returns a simulator moving from from
// to to.
func NewSpringSimulator(cfg SpringConfig, from, to float64) (*SpringSimulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	if !finite(from) || !finite(to) {
		return nil, fmt.Errorf("%w: spring endpoints must be finite", ErrInvalidConfiguration)
	}
	integ := newSpringIntegrator(cfg)
	return &SpringSimulator{integ: integ, state: integ.start(from, to, cfg.Velocity)}, nil
}

// Advance moves the simulation forward by dt seconds. Non-finite or negative
// dt is ignored.
func (s *SpringSimulator) Advance(dt float64) {
	if !finite(dt) || dt <= 0 {
		return
	}
	s.elapsed += dt
	s.integ.advanceTo(&s.state, s.elapsed)
}

// Position returns the current position.
func (s *SpringSimulator) Position() float64 { return s.state.pos }

// Velocity returns the current velocity.
func (s *SpringSimulator) Velocity() float64 { return s.state.vel }

// Elapsed returns the simulated time.
func (s *SpringSimulator) Elapsed() float64 { return s.elapsed }

// IsAtRest reports whether both the distance to target and the speed have
// dropped below the rest thresholds.
func (s *SpringSimulator) IsAtRest() bool { return s.state.resting }
