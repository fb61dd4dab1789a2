package motion

import (
	"errors"
	"math"
	"testing"
)

func twoStepSequence() Sequence {
	return Sequence{
		Steps: []Step{
			{Target: Target{PropX: Px(100)}, Duration: 1},
			{Target: Target{PropX: Px(50), PropY: Px(20)}, Duration: 1},
		},
		Gap: 0.5,
	}
}

func TestSequenceCycleDuration(t *testing.T) {
	s := twoStepSequence()
	s.Steps[1].Delay = 0.25
	if got := s.CycleDuration(); got != 2.75 {
		t.Errorf("CycleDuration = %v, want 2.75", got)
	}
}

func TestSequenceLocate(t *testing.T) {
	s := twoStepSequence()
	tests := []struct {
		at   float64
		want Playhead
	}{
		{0, Playhead{}},
		{0.5, Playhead{Index: 0, Progress: 0.5}},
		{1.2, Playhead{Index: 0, Progress: 1}},
		{2.0, Playhead{Index: 1, Progress: 0.5}},
		{2.5, Playhead{Index: 1, Progress: 1, Done: true}},
		{10, Playhead{Index: 1, Progress: 1, Done: true}},
	}
	for _, tt := range tests {
		if got := s.Locate(tt.at); got != tt.want {
			t.Errorf("Locate(%v) = %+v, want %+v", tt.at, got, tt.want)
		}
	}
}

func TestSequenceLocateLoop(t *testing.T) {
	s := twoStepSequence()
	s.Loop = true
	got := s.Locate(3.0)
	want := Playhead{Index: 0, Progress: 0.5, Cycle: 1}
	if got != want {
		t.Errorf("Locate(3) = %+v, want %+v", got, want)
	}
}

func TestSequenceLocateAlternate(t *testing.T) {
	s := twoStepSequence()
	s.Loop = true
	s.Alternate = true
	got := s.Locate(3.0)
	want := Playhead{Index: 1, Progress: 0.5, Cycle: 1, Reversed: true}
	if got != want {
		t.Errorf("Locate(3) = %+v, want %+v", got, want)
	}
}

func TestSequenceSample(t *testing.T) {
	s := twoStepSequence()
	from := Target{PropX: Px(0)}

	check := func(at float64, x, y float64) {
		t.Helper()
		got, err := s.Sample(from, at)
		if err != nil {
			t.Fatal(err)
		}
		if f, _ := got[PropX].Float(); math.Abs(f-x) > 1e-9 {
			t.Errorf("x at %v = %v, want %v", at, f, x)
		}
		if f, _ := got[PropY].Float(); math.Abs(f-y) > 1e-9 {
			t.Errorf("y at %v = %v, want %v", at, f, y)
		}
	}
	check(0.5, 50, 0)
	check(1.2, 100, 0) // in the gap
	check(2.0, 75, 10)
	check(3.0, 50, 20)
}

func TestSequenceValidate(t *testing.T) {
	bad := []Sequence{
		{},
		{Steps: []Step{{Target: Target{PropX: Px(1)}, Duration: 1}}, Gap: -1},
		{Steps: []Step{{Target: Target{PropX: Px(1)}, Duration: math.NaN()}}},
		{Steps: []Step{{Target: Target{}, Duration: 1}}},
		{Steps: []Step{{Target: Target{PropX: Px(1)}, Duration: 1, Easing: Spring(SpringDefault)}}},
	}
	for i, s := range bad {
		if err := s.Validate(); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}

func TestSequenceIncompatibleSteps(t *testing.T) {
	s := Sequence{Steps: []Step{
		{Target: Target{PropX: Px(10)}, Duration: 1},
		{Target: Target{PropX: Deg(10)}, Duration: 1},
	}}
	if _, err := s.Sample(nil, 0.5); err == nil {
		t.Error("expected error for px then deg")
	}
	e := New()
	if _, err := e.CreateSequence(s); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("CreateSequence err = %v, want ErrInvalidConfiguration", err)
	}
	if e.Len() != 0 {
		t.Errorf("Len = %d after rejected sequence", e.Len())
	}
}
