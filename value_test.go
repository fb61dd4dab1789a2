package motion

import (
	"math"
	"testing"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
		unit Unit
		num  float64
	}{
		{"0", KindNumber, UnitNone, 0},
		{"-2.5", KindNumber, UnitNone, -2.5},
		{"12px", KindLength, UnitPx, 12},
		{"50%", KindLength, UnitPercent, 50},
		{"1.5rem", KindLength, UnitRem, 1.5},
		{"2em", KindLength, UnitEm, 2},
		{"10vw", KindLength, UnitVw, 10},
		{"45deg", KindAngle, UnitDeg, 45},
		{"0.5turn", KindAngle, UnitTurn, 0.5},
		{"3.14rad", KindAngle, UnitRad, 3.14},
	}
	for _, tt := range tests {
		v, err := ParseValue(tt.in)
		if err != nil {
			t.Errorf("ParseValue(%q): %v", tt.in, err)
			continue
		}
		if v.Kind() != tt.kind || v.Unit() != tt.unit {
			t.Errorf("ParseValue(%q) = %s/%q, want %s/%q", tt.in, v.Kind(), v.Unit(), tt.kind, tt.unit)
		}
		if f, _ := v.Float(); f != tt.num {
			t.Errorf("ParseValue(%q) = %v, want %v", tt.in, f, tt.num)
		}
	}
}

func TestParseValueColorAndToken(t *testing.T) {
	v, err := ParseValue("#ff0000")
	if err != nil {
		t.Fatal(err)
	}
	if c, ok := v.Color(); !ok || c.R != 1 || c.G != 0 || c.A != 1 {
		t.Errorf("#ff0000 = %v", v)
	}
	v, err = ParseValue("block")
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind() != KindToken || v.TokenString() != "block" {
		t.Errorf("block = %s %q", v.Kind(), v.TokenString())
	}
	if _, err := ParseValue("  "); err == nil {
		t.Error("expected error for empty value")
	}
}

func TestValueStringRoundTrip(t *testing.T) {
	for _, v := range []Value{Number(3), Px(12.5), Percent(40), Deg(90), Turn(0.25), Token("none")} {
		got, err := ParseValue(v.String())
		if err != nil {
			t.Errorf("ParseValue(%q): %v", v.String(), err)
			continue
		}
		if !got.Equal(v) {
			t.Errorf("round trip %q = %v", v.String(), got)
		}
	}
}

func TestValueCompatible(t *testing.T) {
	tests := []struct {
		a, b Value
		want bool
	}{
		{Number(1), Number(2), true},
		{Px(1), Px(2), true},
		{Px(1), Percent(2), false},
		{Deg(1), Rad(1), false},
		{Number(1), Px(1), false},
		{Token("a"), Token("b"), true},
		{RGBA(ColorWhite), RGBA(ColorTransparent), true},
		{RGBA(ColorWhite), Number(1), false},
	}
	for _, tt := range tests {
		if got := tt.a.Compatible(tt.b); got != tt.want {
			t.Errorf("%v.Compatible(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestValueToDegrees(t *testing.T) {
	if f, _ := Rad(math.Pi).ToDegrees().Float(); math.Abs(f-180) > 1e-12 {
		t.Errorf("pi rad = %v deg", f)
	}
	if f, _ := Turn(0.5).ToDegrees().Float(); f != 180 {
		t.Errorf("0.5 turn = %v deg", f)
	}
	if v := Px(3).ToDegrees(); !v.Equal(Px(3)) {
		t.Errorf("Px(3).ToDegrees() = %v", v)
	}
}

func TestLengthPanicsOnAngleUnit(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for Length with an angle unit")
		}
	}()
	Length(1, UnitDeg)
}

func TestZeroLike(t *testing.T) {
	if v := zeroLike(Px(40)); !v.Equal(Px(0)) {
		t.Errorf("zeroLike(40px) = %v", v)
	}
	c := Color{R: 0.2, G: 0.4, B: 0.6, A: 1}
	got, _ := zeroLike(RGBA(c)).Color()
	if got.R != c.R || got.A != 0 {
		t.Errorf("zeroLike(color) = %v", got)
	}
	if v := zeroLike(Token("x")); v.TokenString() != "x" {
		t.Errorf("zeroLike(token) = %v", v)
	}
}
