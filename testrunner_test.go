package motion

import (
	"errors"
	"strings"
	"testing"
)

const fadeScript = `
config:
  transitions:
    fade: {duration: 1}
steps:
  - {action: create, label: box, target: {x: 100px, opacity: "1"}, from: {opacity: "0"}, use: fade}
  - {action: tick, at: 0}
  - {action: tick, at: 0.5}
  - {action: expect, label: box, property: x, want: 50px, state: running}
  - {action: expect, label: box, property: opacity, want: "0.5"}
  - {action: pause, label: box}
  - {action: tick, at: 2}
  - {action: expect, label: box, property: x, want: 50px, state: paused}
  - {action: resume, label: box}
  - {action: tick, frames: 4, dt: 0.125}
  - {action: expect, label: box, property: x, want: 87.5px}
  - {action: seek, label: box, at: 1}
  - {action: tick, frames: 1, dt: 0.125}
  - {action: expect, label: box, state: completed}
  - {action: pause, label: box, error: invalid-handle}
  - {action: cleanup}
  - {action: expect, label: box, state: completed, error: invalid-handle}
`

func TestLoadTestScript(t *testing.T) {
	r, err := LoadTestScript([]byte(fadeScript))
	if err != nil {
		t.Fatal(err)
	}
	if len(r.steps) != 17 {
		t.Fatalf("steps = %d, want 17", len(r.steps))
	}
	if r.steps[0].Action != "create" || r.steps[0].Target["x"] != "100px" || r.steps[0].Use != "fade" {
		t.Errorf("step 0 = %+v", r.steps[0])
	}
	if r.steps[9].Frames != 4 || r.steps[9].Dt != 0.125 {
		t.Errorf("step 9 = %+v", r.steps[9])
	}
	if _, err := r.Config().Transition("fade"); err != nil {
		t.Errorf("embedded config: %v", err)
	}
}

func TestLoadTestScriptJSON(t *testing.T) {
	r, err := LoadTestScript([]byte(`{"steps": [{"action": "tick", "at": 0.5}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if r.steps[0].At != 0.5 {
		t.Errorf("At = %v", r.steps[0].At)
	}
}

func TestLoadTestScriptInvalid(t *testing.T) {
	if _, err := LoadTestScript([]byte("steps: [")); err == nil {
		t.Error("expected error for invalid YAML")
	}
	if _, err := LoadTestScript([]byte("steps: []")); err == nil {
		t.Error("expected error for empty steps")
	}
	if _, err := LoadTestScript([]byte("config: {capacity: -1}\nsteps: [{action: cleanup}]")); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("bad config err = %v", err)
	}
	_, err := LoadTestScript([]byte("steps: [{action: create, label: a, target: {x: 1px}, transition: {duration: 1}, error: capacty}]"))
	if err == nil || !strings.Contains(err.Error(), `unknown error class "capacty"`) {
		t.Errorf("misspelled error class err = %v", err)
	}
}

func TestTestRunnerRun(t *testing.T) {
	r, err := LoadTestScript([]byte(fadeScript))
	if err != nil {
		t.Fatal(err)
	}
	e := r.NewEngine()
	if err := r.Run(e); err != nil {
		t.Fatal(err)
	}
	if !r.Done() {
		t.Error("runner not done")
	}
	if _, ok := r.Handle("box"); !ok {
		t.Error("box handle not recorded")
	}
	if err := r.Step(e); err != nil {
		t.Errorf("Step after done: %v", err)
	}
}

func TestTestRunnerReportsMismatch(t *testing.T) {
	r, _ := LoadTestScript([]byte(`
steps:
  - {action: create, label: a, target: {x: 10px}, transition: {duration: 1}}
  - {action: tick, at: 0}
  - {action: tick, at: 0.5}
  - {action: expect, label: a, property: x, want: 6px}
`))
	err := r.Run(New())
	if err == nil || !strings.Contains(err.Error(), "step 4") {
		t.Errorf("err = %v, want a step 4 mismatch", err)
	}
}

func TestTestRunnerExpectedErrors(t *testing.T) {
	r, _ := LoadTestScript([]byte(`
config: {capacity: 1}
steps:
  - {action: create, label: a, target: {x: 10px}, transition: {duration: 1}}
  - {action: create, label: b, target: {x: 10px}, transition: {duration: 1}, error: capacity}
  - {action: expect, label: a, property: y, error: unknown-property}
  - {action: create, label: c, target: {x: 10px}, transition: {duration: -1}, error: invalid-configuration}
  - {action: seek, label: a, at: -1, error: invalid-configuration}
`))
	if err := r.Run(r.NewEngine()); err != nil {
		t.Fatal(err)
	}
}

func TestTestRunnerUnexpectedSuccess(t *testing.T) {
	r, _ := LoadTestScript([]byte(`
steps:
  - {action: create, label: a, target: {x: 10px}, transition: {duration: 1}, error: capacity}
`))
	if err := r.Run(New()); err == nil {
		t.Error("expected an error for a step that should have failed")
	}
}

func TestTestRunnerUnknownAction(t *testing.T) {
	r, _ := LoadTestScript([]byte(`steps: [{action: click}]`))
	if err := r.Run(New()); err == nil || !strings.Contains(err.Error(), "unknown action") {
		t.Errorf("err = %v", err)
	}
}

func TestValuesClose(t *testing.T) {
	if !valuesClose(Px(1), Px(1.0000001), 1e-6) {
		t.Error("near lengths not close")
	}
	if valuesClose(Px(1), Percent(1), 1) {
		t.Error("different units close")
	}
	if !valuesClose(Token("a"), Token("a"), 0) || valuesClose(Token("a"), Token("b"), 1) {
		t.Error("token comparison wrong")
	}
	if !valuesClose(RGBA(Color{0.5, 0.5, 0.5, 1}), RGBA(Color{0.5, 0.5, 0.5000001, 1}), 1e-6) {
		t.Error("near colors not close")
	}
}
