package motion

import (
	"math"
	"testing"
)

func colorNear(a, b Color, tol float64) bool {
	return math.Abs(a.R-b.R) <= tol && math.Abs(a.G-b.G) <= tol &&
		math.Abs(a.B-b.B) <= tol && math.Abs(a.A-b.A) <= tol
}

func TestParseColorFormats(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#fff", Color{1, 1, 1, 1}},
		{"#000", Color{0, 0, 0, 1}},
		{"#f008", Color{1, 0, 0, 136.0 / 255}},
		{"#00ff00", Color{0, 1, 0, 1}},
		{"#0000ff80", Color{0, 0, 1, 128.0 / 255}},
		{"rgb(255, 0, 0)", Color{1, 0, 0, 1}},
		{"rgba(0, 0, 255, 0.5)", Color{0, 0, 1, 0.5}},
		{"rgb(100%, 50%, 0%)", Color{1, 0.5, 0, 1}},
		{"transparent", Color{0, 0, 0, 0}},
		{"red", Color{1, 0, 0, 1}},
		{"White", Color{1, 1, 1, 1}},
	}
	for _, tt := range tests {
		v, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		got, _ := v.Color()
		if !colorNear(got, tt.want, 1e-9) {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseColorRejects(t *testing.T) {
	for _, in := range []string{"#ff", "#gggggg", "rgb(1, 2)", "rgb(a, b, c)", "notacolor", "rgb(1,2,3"} {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("ParseColor(%q): expected error", in)
		}
	}
}

func TestMustParseColorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustParseColor("bogus")
}

func TestBlendColorEndpoints(t *testing.T) {
	a := Color{R: 1, G: 0.2, B: 0, A: 1}
	b := Color{R: 0, G: 0.4, B: 1, A: 0.5}
	for _, space := range []ColorSpace{ColorSpaceRGB, ColorSpaceLab, ColorSpaceHCL} {
		if got := BlendColor(a, b, 0, space); got != a {
			t.Errorf("%s: blend at 0 = %+v, want %+v", space, got, a)
		}
		if got := BlendColor(a, b, 1, space); got != b {
			t.Errorf("%s: blend at 1 = %+v, want %+v", space, got, b)
		}
		mid := BlendColor(a, b, 0.5, space)
		if math.Abs(mid.A-0.75) > 1e-12 {
			t.Errorf("%s: alpha at 0.5 = %v, want 0.75", space, mid.A)
		}
		for _, ch := range []float64{mid.R, mid.G, mid.B} {
			if ch < 0 || ch > 1 {
				t.Errorf("%s: channel out of range: %+v", space, mid)
			}
		}
	}
}

func TestBlendColorNonFiniteChannels(t *testing.T) {
	got := BlendColor(Color{R: math.NaN(), A: 1}, ColorBlack, 0.5, ColorSpaceRGB)
	if got != ColorBlack {
		t.Errorf("blend = %+v, want black", got)
	}
	if s := RGBA(got).String(); s != "rgba(0, 0, 0, 1)" {
		t.Errorf("String = %q", s)
	}
}

func TestBlendColorRGBMidpoint(t *testing.T) {
	got := BlendColor(Color{0, 0, 0, 1}, Color{1, 1, 1, 1}, 0.5, ColorSpaceRGB)
	if !colorNear(got, Color{0.5, 0.5, 0.5, 1}, 1e-12) {
		t.Errorf("midpoint = %+v", got)
	}
}

func TestBlendColorOvershootClamped(t *testing.T) {
	got := BlendColor(Color{0, 0, 0, 1}, Color{1, 1, 1, 1}, 1.3, ColorSpaceRGB)
	if got.R != 1 || got.G != 1 || got.B != 1 {
		t.Errorf("overshoot = %+v, want clamped to 1", got)
	}
}

func TestParseColorSpace(t *testing.T) {
	for in, want := range map[string]ColorSpace{"": ColorSpaceRGB, "rgb": ColorSpaceRGB, "LAB": ColorSpaceLab, "hcl": ColorSpaceHCL} {
		got, err := ParseColorSpace(in)
		if err != nil || got != want {
			t.Errorf("ParseColorSpace(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseColorSpace("cmyk"); err == nil {
		t.Error("expected error for cmyk")
	}
}

func TestColorString(t *testing.T) {
	if got := (Color{R: 1, G: 0.5, B: 0, A: 0.25}).String(); got != "rgba(255, 128, 0, 0.25)" {
		t.Errorf("String = %q", got)
	}
}
