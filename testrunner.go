package motion

import (
	"errors"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// testStep is a single action in a test script.
type testStep struct {
	Action string `yaml:"action"`
	// Label names the animation a step creates or refers to.
	Label string `yaml:"label"`

	Target     map[string]string `yaml:"target"`
	From       map[string]string `yaml:"from"`
	Transition TransitionConfig  `yaml:"transition"`
	// Use names a transition from the runner's Config instead of an inline
	// one.
	Use string `yaml:"use"`

	// At is the timestamp for tick and the local time for seek.
	At float64 `yaml:"at"`
	// Frames and Dt make tick advance several frames from the last tick.
	Frames int     `yaml:"frames"`
	Dt     float64 `yaml:"dt"`

	Property  string  `yaml:"property"`
	Want      string  `yaml:"want"`
	State     string  `yaml:"state"`
	Tolerance float64 `yaml:"tolerance"`
	// Error expects the step's operation to fail with the named class:
	// "invalid-handle", "invalid-configuration", "capacity" or
	// "unknown-property".
	Error string `yaml:"error"`
}

type testScript struct {
	Config Config     `yaml:"config"`
	Steps  []testStep `yaml:"steps"`
}

// TestRunner drives an Engine through a scripted scenario: create
// animations, tick, pause, seek and check values. Scripts are YAML (or
// JSON, which YAML accepts):
//
//	steps:
//	  - {action: create, label: box, target: {x: 100px}, transition: {duration: 1}}
//	  - {action: tick, at: 0}
//	  - {action: tick, at: 0.5}
//	  - {action: expect, label: box, property: x, want: 50px}
type TestRunner struct {
	config  Config
	steps   []testStep
	cursor  int
	handles map[string]Handle
	done    bool
}

// LoadTestScript parses a test script.
func LoadTestScript(data []byte) (*TestRunner, error) {
	script := testScript{Config: DefaultConfig()}
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	if err := script.Config.Validate(); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	for i, st := range script.Steps {
		if _, ok := errorClasses[st.Error]; st.Error != "" && !ok {
			return nil, fmt.Errorf("parse test script: step %d (%s): unknown error class %q", i+1, st.Action, st.Error)
		}
	}
	return &TestRunner{config: script.Config, steps: script.Steps, handles: make(map[string]Handle)}, nil
}

// Config returns the configuration embedded in the script.
func (r *TestRunner) Config() Config { return r.config }

// NewEngine returns an engine configured from the script plus opts.
func (r *TestRunner) NewEngine(opts ...Option) *Engine {
	return New(append([]Option{WithConfig(r.config)}, opts...)...)
}

// Done reports whether every step has run.
func (r *TestRunner) Done() bool { return r.done }

// Handle returns the handle created under label.
func (r *TestRunner) Handle(label string) (Handle, bool) {
	h, ok := r.handles[label]
	return h, ok
}

// Run executes every remaining step against e and stops at the first
// failure.
func (r *TestRunner) Run(e *Engine) error {
	for !r.done {
		if err := r.Step(e); err != nil {
			return err
		}
	}
	return nil
}

// Step executes the next step.
func (r *TestRunner) Step(e *Engine) error {
	if r.done {
		return nil
	}
	st := r.steps[r.cursor]
	r.cursor++
	if r.cursor >= len(r.steps) {
		r.done = true
	}
	err := r.exec(e, st)
	if st.Error != "" {
		if err == nil {
			return fmt.Errorf("step %d (%s): expected %s error", r.cursor, st.Action, st.Error)
		}
		if !errors.Is(err, errorClass(st.Error)) {
			return fmt.Errorf("step %d (%s): got %v, want %s error", r.cursor, st.Action, err, st.Error)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("step %d (%s): %w", r.cursor, st.Action, err)
	}
	return nil
}

// errorClasses maps the names accepted in a step's error field.
var errorClasses = map[string]error{
	"invalid-handle":        ErrInvalidHandle,
	"invalid-configuration": ErrInvalidConfiguration,
	"capacity":              ErrCapacityExceeded,
	"unknown-property":      ErrUnknownProperty,
}

func (r *TestRunner) exec(e *Engine, st testStep) error {
	switch st.Action {
	case "create":
		return r.create(e, st)
	case "tick":
		if st.Frames > 0 {
			ts := e.Now()
			for i := 0; i < st.Frames; i++ {
				ts += st.Dt
				e.Tick(ts)
			}
			return nil
		}
		e.Tick(st.At)
		return nil
	case "pause":
		return e.Pause(r.handles[st.Label])
	case "resume":
		return e.Resume(r.handles[st.Label])
	case "stop":
		return e.Stop(r.handles[st.Label])
	case "start":
		return e.Start(r.handles[st.Label])
	case "seek":
		return e.Seek(r.handles[st.Label], st.At)
	case "cleanup":
		e.Cleanup()
		return nil
	case "expect":
		return r.expect(e, st)
	}
	return fmt.Errorf("unknown action %q", st.Action)
}

func (r *TestRunner) create(e *Engine, st testStep) error {
	target, err := parseTarget(st.Target)
	if err != nil {
		return err
	}
	from, err := parseTarget(st.From)
	if err != nil {
		return err
	}
	var tr Transition
	if st.Use != "" {
		tr, err = r.config.Transition(st.Use)
	} else {
		tr, err = r.config.Resolve(st.Transition)
	}
	if err != nil {
		return err
	}
	h, err := e.Create(target, tr, From(from), WithLabel(st.Label))
	if err != nil {
		return err
	}
	r.handles[st.Label] = h
	return nil
}

func parseTarget(m map[string]string) (Target, error) {
	if len(m) == 0 {
		return nil, nil
	}
	t := make(Target, len(m))
	for k, s := range m {
		v, err := ParseValue(s)
		if err != nil {
			return nil, fmt.Errorf("%w: property %q: %v", ErrInvalidConfiguration, k, err)
		}
		t[k] = v
	}
	return t, nil
}

func (r *TestRunner) expect(e *Engine, st testStep) error {
	h := r.handles[st.Label]
	if st.State != "" {
		state, err := e.State(h)
		if err != nil {
			return err
		}
		if state.String() != st.State {
			return fmt.Errorf("%s: state = %s, want %s", st.Label, state, st.State)
		}
	}
	if st.Property == "" {
		return nil
	}
	got, err := e.Get(h, st.Property)
	if err != nil {
		return err
	}
	want, err := ParseValue(st.Want)
	if err != nil {
		return err
	}
	tol := st.Tolerance
	if tol == 0 {
		tol = 1e-6
	}
	if !valuesClose(got, want, tol) {
		return fmt.Errorf("%s.%s = %s, want %s", st.Label, st.Property, got, want)
	}
	return nil
}

// valuesClose compares two values with an absolute tolerance on numbers and
// color channels.
func valuesClose(a, b Value, tol float64) bool {
	if !a.Compatible(b) {
		return false
	}
	switch a.kind {
	case KindToken:
		return a.token == b.token
	case KindColor:
		return math.Abs(a.color.R-b.color.R) <= tol && math.Abs(a.color.G-b.color.G) <= tol &&
			math.Abs(a.color.B-b.color.B) <= tol && math.Abs(a.color.A-b.color.A) <= tol
	}
	return math.Abs(a.num-b.num) <= tol
}
