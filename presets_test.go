package motion

import (
	"math"
	"testing"
)

func TestPresetsReachTarget(t *testing.T) {
	presets := []Preset{
		FadeIn(), SlideUp(40), ScaleIn(), PopIn(), RotateIn(), FlipIn(),
		FadeOut(), ScaleOut(), PageFade(),
	}
	for _, p := range presets {
		t.Run(p.Name, func(t *testing.T) {
			e := New()
			h, err := p.Create(e)
			if err != nil {
				t.Fatal(err)
			}
			for k, want := range p.From {
				if got, _ := e.Get(h, k); !valuesClose(got, want, 1e-9) {
					t.Errorf("start %s = %v, want %v", k, got, want)
				}
			}
			for i := 0; i <= 600 && e.IsRunning(h); i++ {
				e.Tick(float64(i) / 60)
			}
			wantState(t, e, h, StateCompleted)
			for k, want := range p.To {
				if got, _ := e.Get(h, k); !valuesClose(got, want, 1e-9) {
					t.Errorf("end %s = %v, want %v", k, got, want)
				}
			}
		})
	}
}

func TestPresetFromOverride(t *testing.T) {
	e := New()
	h, err := FadeIn().Create(e, From(Opacity(0.5)))
	if err != nil {
		t.Fatal(err)
	}
	if o := getFloat(t, e, h, PropOpacity); o != 0.5 {
		t.Errorf("opacity = %v, want 0.5", o)
	}
}

func TestSpinRepeatsForever(t *testing.T) {
	e := New()
	h, err := Spin().Create(e)
	if err != nil {
		t.Fatal(err)
	}
	e.Tick(0)
	e.Tick(0.25)
	if r := getFloat(t, e, h, PropRotate); r != 90 {
		t.Errorf("rotate at 0.25s = %v, want 90", r)
	}
	e.Tick(100.5)
	if r := getFloat(t, e, h, PropRotate); r != 180 {
		t.Errorf("rotate at 100.5s = %v, want 180", r)
	}
	wantState(t, e, h, StateRunning)
}

func TestStaggerChildren(t *testing.T) {
	e := New()
	hs, err := e.CreateGroup([]Target{Opacity(1), Opacity(1), Opacity(1)}, StaggerChildren(0.1))
	if err != nil {
		t.Fatal(err)
	}
	e.Tick(0)
	e.Tick(0.1)
	if o := getFloat(t, e, hs[0], PropOpacity); o <= 0 {
		t.Errorf("first child opacity = %v, want > 0", o)
	}
	if o := getFloat(t, e, hs[2], PropOpacity); o != 0 {
		t.Errorf("third child opacity = %v, want 0 before its delay", o)
	}
	e.Tick(1)
	for i, h := range hs {
		if o := getFloat(t, e, h, PropOpacity); o != 1 {
			t.Errorf("child %d opacity = %v, want 1", i, o)
		}
	}
}

func TestKeyframePresets(t *testing.T) {
	tests := []struct {
		preset   KeyframePreset
		prop     string
		mid      float64 // timestamp of the peak
		peak     float64
		duration float64
		rest     float64
	}{
		{Pulse(0.8), PropScaleX, 0.4, 1.05, 0.8, 1},
		{Bounce(1), PropY, 0.5, -20, 1, 0},
		{Shake(0.5), PropX, 0.05, -10, 0.5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.preset.Name, func(t *testing.T) {
			e := New()
			h, err := tt.preset.Create(e)
			if err != nil {
				t.Fatal(err)
			}
			if v := getFloat(t, e, h, tt.prop); v != tt.rest {
				t.Errorf("start = %v, want %v", v, tt.rest)
			}
			e.Tick(0)
			e.Tick(tt.mid)
			if v := getFloat(t, e, h, tt.prop); math.Abs(v-tt.peak) > 1e-6 {
				t.Errorf("at %vs = %v, want %v", tt.mid, v, tt.peak)
			}
			e.Tick(tt.duration + 0.1)
			wantState(t, e, h, StateCompleted)
			if v := getFloat(t, e, h, tt.prop); v != tt.rest {
				t.Errorf("end = %v, want %v", v, tt.rest)
			}
		})
	}
}

func TestShakeStaysWithinAmplitude(t *testing.T) {
	e := New()
	h, err := Shake(0.5).Create(e)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i <= 40; i++ {
		e.Tick(float64(i) / 60)
		if x := getFloat(t, e, h, PropX); math.Abs(x) > 10+1e-9 {
			t.Fatalf("x at frame %d = %v, beyond 10px", i, x)
		}
	}
}
