package motion

import (
	"fmt"
	"math"
)

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// clampUnit clamps value to [0, 1]. NaN maps to 0.
func clampUnit(value float64) float64 {
	if value < 0 || math.IsNaN(value) {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

// Lerp returns start + (end-start)*progress with progress clamped to [0, 1].
// Finite endpoints are returned exactly. Non-finite inputs never leak: a
// non-finite progress is treated as 0 and a non-finite result falls back to
// the nearest finite endpoint, or 0 when neither is.
func Lerp(start, end, progress float64) float64 {
	if !finite(progress) || progress <= 0 {
		return sanitize(start, start, end)
	}
	if progress >= 1 {
		return sanitize(end, end, start)
	}
	return sanitize(lerp(start, end, progress), start, end)
}

// sanitize replaces a non-finite computed value with start, then end, then 0.
func sanitize(v, start, end float64) float64 {
	if finite(v) {
		return v
	}
	if finite(start) {
		return start
	}
	if finite(end) {
		return end
	}
	return 0
}

// Interpolate blends two compatible values at eased progress p. p may fall
// outside [0, 1] for overshooting curves; numbers extrapolate, colors are
// clamped, tokens switch from start to end at p >= 0.5. Incompatible values
// return an error wrapping ErrInvalidConfiguration.
func Interpolate(start, end Value, p float64, space ColorSpace) (Value, error) {
	if !start.Compatible(end) {
		return Value{}, fmt.Errorf("%w: cannot interpolate %s to %s",
			ErrInvalidConfiguration, start.Kind(), end.Kind())
	}
	return interpolate(start, end, p, space), nil
}

// interpolate assumes compatible inputs.
func interpolate(start, end Value, p float64, space ColorSpace) Value {
	if !finite(p) {
		p = 0
	}
	switch start.kind {
	case KindToken:
		if p >= 0.5 {
			return end
		}
		return start
	case KindColor:
		return RGBA(BlendColor(start.color, end.color, p, space))
	}
	if p == 0 {
		return start.withNum(sanitize(start.num, start.num, end.num))
	}
	if p == 1 {
		return end.withNum(sanitize(end.num, end.num, start.num))
	}
	return start.withNum(sanitize(lerp(start.num, end.num, p), start.num, end.num))
}

// clampMagnitude bounds a physics result so runaway values are caught
// before they reach a MotionValue.
func clampMagnitude(v, limit float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-limit, math.Min(limit, v))
}
