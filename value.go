package motion

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindNumber Kind = iota // plain unitless number
	KindLength             // number with a length unit (px, %, em, ...)
	KindAngle              // number with an angle unit (deg, rad, turn)
	KindToken              // opaque string, switched rather than blended
	KindColor              // composite RGBA color
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindLength:
		return "length"
	case KindAngle:
		return "angle"
	case KindToken:
		return "token"
	case KindColor:
		return "color"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Unit is the suffix of a length or angle value.
type Unit string

const (
	UnitNone    Unit = ""
	UnitPx      Unit = "px"
	UnitPercent Unit = "%"
	UnitEm      Unit = "em"
	UnitRem     Unit = "rem"
	UnitVw      Unit = "vw"
	UnitVh      Unit = "vh"
	UnitDeg     Unit = "deg"
	UnitRad     Unit = "rad"
	UnitTurn    Unit = "turn"
)

func (u Unit) isLength() bool {
	switch u {
	case UnitPx, UnitPercent, UnitEm, UnitRem, UnitVw, UnitVh:
		return true
	}
	return false
}

func (u Unit) isAngle() bool {
	return u == UnitDeg || u == UnitRad || u == UnitTurn
}

// Value is an animatable property value. The zero Value is the number 0.
// Values are immutable; every operation returns a new Value.
type Value struct {
	kind  Kind
	unit  Unit
	num   float64
	token string
	color Color
}

// Number returns a unitless numeric value.
func Number(v float64) Value { return Value{kind: KindNumber, num: v} }

// Px returns a pixel length.
func Px(v float64) Value { return Value{kind: KindLength, unit: UnitPx, num: v} }

// Percent returns a percentage length.
func Percent(v float64) Value { return Value{kind: KindLength, unit: UnitPercent, num: v} }

// Length returns a length in the given unit. It panics if u is not a length
// unit, which is a programming error rather than a runtime condition.
func Length(v float64, u Unit) Value {
	if !u.isLength() {
		panic(fmt.Sprintf("motion: %q is not a length unit", string(u)))
	}
	return Value{kind: KindLength, unit: u, num: v}
}

// Deg returns an angle in degrees.
func Deg(v float64) Value { return Value{kind: KindAngle, unit: UnitDeg, num: v} }

// Rad returns an angle in radians.
func Rad(v float64) Value { return Value{kind: KindAngle, unit: UnitRad, num: v} }

// Turn returns an angle in turns.
func Turn(v float64) Value { return Value{kind: KindAngle, unit: UnitTurn, num: v} }

// Token returns an opaque string value such as "block" or "hidden".
func Token(s string) Value { return Value{kind: KindToken, token: s} }

// RGBA returns a color value. Components are in [0, 1].
func RGBA(c Color) Value { return Value{kind: KindColor, color: c} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// Unit returns the unit of a length or angle value, UnitNone otherwise.
func (v Value) Unit() Unit { return v.unit }

// Float returns the numeric payload of number, length and angle values.
// ok is false for tokens and colors.
func (v Value) Float() (f float64, ok bool) {
	switch v.kind {
	case KindNumber, KindLength, KindAngle:
		return v.num, true
	}
	return 0, false
}

// TokenString returns the token payload, or "" for other kinds.
func (v Value) TokenString() string { return v.token }

// Color returns the color payload. ok is false for non-color values.
func (v Value) Color() (c Color, ok bool) {
	if v.kind != KindColor {
		return Color{}, false
	}
	return v.color, true
}

// IsNumeric reports whether v carries a single scalar that can be blended and
// differentiated (numbers, lengths and angles).
func (v Value) IsNumeric() bool {
	return v.kind == KindNumber || v.kind == KindLength || v.kind == KindAngle
}

// finite reports whether every float payload of v is finite.
func (v Value) finite() bool {
	switch v.kind {
	case KindColor:
		c := v.color
		return finite(c.R) && finite(c.G) && finite(c.B) && finite(c.A)
	case KindToken:
		return true
	}
	return finite(v.num)
}

// withNum returns a copy of v carrying a new scalar payload.
func (v Value) withNum(f float64) Value {
	v.num = f
	return v
}

// ToDegrees converts an angle to degrees. Non-angle values are returned as is.
func (v Value) ToDegrees() Value {
	if v.kind != KindAngle {
		return v
	}
	switch v.unit {
	case UnitRad:
		return Deg(v.num * 180 / math.Pi)
	case UnitTurn:
		return Deg(v.num * 360)
	}
	return v
}

// Compatible reports whether v and other may be interpolated together: same
// kind and, for lengths and angles, the same unit.
func (v Value) Compatible(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	if v.kind == KindLength || v.kind == KindAngle {
		return v.unit == other.unit
	}
	return true
}

// Equal reports whether two values are identical.
func (v Value) Equal(other Value) bool {
	return v == other
}

// String renders v in CSS-like notation ("12px", "45deg", "rgba(...)").
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return formatFloat(v.num)
	case KindLength, KindAngle:
		return formatFloat(v.num) + string(v.unit)
	case KindToken:
		return v.token
	case KindColor:
		return v.color.String()
	}
	return "?"
}

// zeroLike returns the neutral value of the same kind and unit as v, used as
// the start of an animation whose From target omits a property.
func zeroLike(v Value) Value {
	switch v.kind {
	case KindColor:
		c := v.color
		c.A = 0
		return RGBA(c)
	case KindToken:
		return v
	}
	return v.withNum(0)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// finite reports whether f is neither NaN nor ±Inf.
func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// valueUnits lists unit suffixes longest first so "rem" wins over "em".
var valueUnits = []Unit{UnitTurn, UnitDeg, UnitRad, UnitRem, UnitPx, UnitEm, UnitVw, UnitVh, UnitPercent}

// ParseValue parses the text form produced by Value.String: a number, a
// number with a length or angle unit, a color, or otherwise an opaque token.
func ParseValue(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{}, fmt.Errorf("parse value: empty string")
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if !finite(f) {
			return Value{}, fmt.Errorf("parse value %q: not finite", s)
		}
		return Number(f), nil
	}
	for _, u := range valueUnits {
		if !strings.HasSuffix(s, string(u)) {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s[:len(s)-len(u)]), 64)
		if err != nil {
			break
		}
		if !finite(f) {
			return Value{}, fmt.Errorf("parse value %q: not finite", s)
		}
		if u.isAngle() {
			return Value{kind: KindAngle, unit: u, num: f}, nil
		}
		return Value{kind: KindLength, unit: u, num: f}, nil
	}
	if c, err := parseColor(s); err == nil {
		return RGBA(c), nil
	}
	return Token(s), nil
}
