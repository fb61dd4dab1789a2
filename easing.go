package motion

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tanema/gween/ease"
)

// EaseName identifies a named easing curve.
type EaseName string

// Named curves. The non-linear ones are evaluated through gween's ease package.
const (
	EaseLinear       EaseName = "linear"
	EaseIn           EaseName = "easeIn"
	EaseOut          EaseName = "easeOut"
	EaseInOut        EaseName = "easeInOut"
	EaseInQuad       EaseName = "inQuad"
	EaseOutQuad      EaseName = "outQuad"
	EaseInOutQuad    EaseName = "inOutQuad"
	EaseInCubic      EaseName = "inCubic"
	EaseOutCubic     EaseName = "outCubic"
	EaseInOutCubic   EaseName = "inOutCubic"
	EaseInQuart      EaseName = "inQuart"
	EaseOutQuart     EaseName = "outQuart"
	EaseInOutQuart   EaseName = "inOutQuart"
	EaseInQuint      EaseName = "inQuint"
	EaseOutQuint     EaseName = "outQuint"
	EaseInOutQuint   EaseName = "inOutQuint"
	EaseInSine       EaseName = "inSine"
	EaseOutSine      EaseName = "outSine"
	EaseInOutSine    EaseName = "inOutSine"
	EaseInExpo       EaseName = "inExpo"
	EaseOutExpo      EaseName = "outExpo"
	EaseInOutExpo    EaseName = "inOutExpo"
	EaseInCirc       EaseName = "inCirc"
	EaseOutCirc      EaseName = "outCirc"
	EaseInOutCirc    EaseName = "inOutCirc"
	EaseInBack       EaseName = "inBack"
	EaseOutBack      EaseName = "outBack"
	EaseInOutBack    EaseName = "inOutBack"
	EaseInElastic    EaseName = "inElastic"
	EaseOutElastic   EaseName = "outElastic"
	EaseInOutElastic EaseName = "inOutElastic"
	EaseInBounce     EaseName = "inBounce"
	EaseOutBounce    EaseName = "outBounce"
	EaseInOutBounce  EaseName = "inOutBounce"
)

// namedCurves maps curve names to gween ease functions. easeIn/easeOut/
// easeInOut are the quadratic curves.
//
// gween evaluates in float32, so eased progress carries a relative error of
// about 1e-7 (0.1px across a 1e6px range). Endpoints are exact; Apply never
// calls a curve at 0 or 1.
var namedCurves = map[EaseName]ease.TweenFunc{
	EaseIn:           ease.InQuad,
	EaseOut:          ease.OutQuad,
	EaseInOut:        ease.InOutQuad,
	EaseInQuad:       ease.InQuad,
	EaseOutQuad:      ease.OutQuad,
	EaseInOutQuad:    ease.InOutQuad,
	EaseInCubic:      ease.InCubic,
	EaseOutCubic:     ease.OutCubic,
	EaseInOutCubic:   ease.InOutCubic,
	EaseInQuart:      ease.InQuart,
	EaseOutQuart:     ease.OutQuart,
	EaseInOutQuart:   ease.InOutQuart,
	EaseInQuint:      ease.InQuint,
	EaseOutQuint:     ease.OutQuint,
	EaseInOutQuint:   ease.InOutQuint,
	EaseInSine:       ease.InSine,
	EaseOutSine:      ease.OutSine,
	EaseInOutSine:    ease.InOutSine,
	EaseInExpo:       ease.InExpo,
	EaseOutExpo:      ease.OutExpo,
	EaseInOutExpo:    ease.InOutExpo,
	EaseInCirc:       ease.InCirc,
	EaseOutCirc:      ease.OutCirc,
	EaseInOutCirc:    ease.InOutCirc,
	EaseInBack:       ease.InBack,
	EaseOutBack:      ease.OutBack,
	EaseInOutBack:    ease.InOutBack,
	EaseInElastic:    ease.InElastic,
	EaseOutElastic:   ease.OutElastic,
	EaseInOutElastic: ease.InOutElastic,
	EaseInBounce:     ease.InBounce,
	EaseOutBounce:    ease.OutBounce,
	EaseInOutBounce:  ease.InOutBounce,
}

// monotonicCurves lists the curves whose output never decreases. Back,
// elastic and bounce curves overshoot or oscillate.
var monotonicCurves = map[EaseName]bool{
	EaseLinear: true, EaseIn: true, EaseOut: true, EaseInOut: true,
	EaseInQuad: true, EaseOutQuad: true, EaseInOutQuad: true,
	EaseInCubic: true, EaseOutCubic: true, EaseInOutCubic: true,
	EaseInQuart: true, EaseOutQuart: true, EaseInOutQuart: true,
	EaseInQuint: true, EaseOutQuint: true, EaseInOutQuint: true,
	EaseInSine: true, EaseOutSine: true, EaseInOutSine: true,
	EaseInExpo: true, EaseOutExpo: true, EaseInOutExpo: true,
	EaseInCirc: true, EaseOutCirc: true, EaseInOutCirc: true,
}

// EaseNames returns every registered curve name, sorted.
func EaseNames() []EaseName {
	names := make([]EaseName, 0, len(namedCurves)+1)
	names = append(names, EaseLinear)
	for n := range namedCurves {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

type easingKind uint8

const (
	easingNamed easingKind = iota
	easingBezier
	easingSpring
)

// Easing selects how progress is shaped: a named curve, a cubic-bezier, or a
// spring. The zero Easing is linear.
type Easing struct {
	kind   easingKind
	name   EaseName
	bezier [4]float64
	curve  func(float64) float64
	spring SpringConfig
}

// Named returns the easing for a registered curve name. Unknown names are
// reported by Validate.
func Named(name EaseName) Easing {
	return Easing{kind: easingNamed, name: name}
}

// Bezier returns a CSS-style cubic-bezier easing with control points
// (x1, y1) and (x2, y2). x1 and x2 must lie in [0, 1].
func Bezier(x1, y1, x2, y2 float64) Easing {
	return Easing{
		kind:   easingBezier,
		bezier: [4]float64{x1, y1, x2, y2},
		curve:  CubicBezier(x1, y1, x2, y2),
	}
}

// Spring returns a physics-driven easing.
func Spring(cfg SpringConfig) Easing {
	return Easing{kind: easingSpring, spring: cfg}
}

// IsSpring reports whether e is physics driven.
func (e Easing) IsSpring() bool { return e.kind == easingSpring }

// SpringConfig returns the spring parameters of a spring easing.
func (e Easing) SpringConfig() (SpringConfig, bool) {
	return e.spring, e.kind == easingSpring
}

// Monotonic reports whether the curve output never decreases as progress grows.
func (e Easing) Monotonic() bool {
	switch e.kind {
	case easingNamed:
		return e.name == "" || monotonicCurves[e.name]
	case easingBezier:
		return e.bezier[1] >= 0 && e.bezier[1] <= 1 && e.bezier[3] >= 0 && e.bezier[3] <= 1
	}
	return false
}

// Validate rejects unknown curve names, out-of-range bezier x control points
// and malformed springs.
func (e Easing) Validate() error {
	switch e.kind {
	case easingNamed:
		if e.name == "" || e.name == EaseLinear {
			return nil
		}
		if _, ok := namedCurves[e.name]; !ok {
			return fmt.Errorf("unknown easing %q", string(e.name))
		}
	case easingBezier:
		for _, f := range e.bezier {
			if !finite(f) {
				return fmt.Errorf("bezier control point is not finite")
			}
		}
		if e.bezier[0] < 0 || e.bezier[0] > 1 || e.bezier[2] < 0 || e.bezier[2] > 1 {
			return fmt.Errorf("bezier x control points must be in [0, 1], got %v and %v",
				e.bezier[0], e.bezier[2])
		}
	case easingSpring:
		return e.spring.Validate()
	}
	return nil
}

// Apply maps linear progress p to eased progress. p is clamped to [0, 1] and
// the endpoints are returned exactly. Springs are not time-mapped curves;
// Apply treats them as linear.
func (e Easing) Apply(p float64) float64 {
	if !finite(p) || p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	var out float64
	switch e.kind {
	case easingBezier:
		out = e.curve(p)
	case easingNamed:
		fn, ok := namedCurves[e.name]
		if !ok {
			return p
		}
		out = float64(fn(float32(p), 0, 1, 1))
	default:
		return p
	}
	if !finite(out) {
		return p
	}
	return out
}

// String renders the easing in the text form accepted by ParseEasing.
func (e Easing) String() string {
	switch e.kind {
	case easingBezier:
		return fmt.Sprintf("bezier(%s, %s, %s, %s)", formatFloat(e.bezier[0]),
			formatFloat(e.bezier[1]), formatFloat(e.bezier[2]), formatFloat(e.bezier[3]))
	case easingSpring:
		return fmt.Sprintf("spring(%s, %s, %s)", formatFloat(e.spring.Stiffness),
			formatFloat(e.spring.Damping), formatFloat(e.spring.Mass))
	}
	if e.name == "" {
		return string(EaseLinear)
	}
	return string(e.name)
}

// ParseEasing parses a curve name ("outCubic"), "bezier(x1, y1, x2, y2)",
// "spring(stiffness, damping, mass)" or "spring(preset)".
func ParseEasing(s string) (Easing, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "bezier(") && strings.HasSuffix(s, ")"):
		nums, err := parseArgs(s[len("bezier(") : len(s)-1])
		if err != nil || len(nums) != 4 {
			return Easing{}, fmt.Errorf("parse easing %q: want 4 numbers", s)
		}
		e := Bezier(nums[0], nums[1], nums[2], nums[3])
		return e, e.Validate()
	case strings.HasPrefix(s, "spring(") && strings.HasSuffix(s, ")"):
		inner := strings.TrimSpace(s[len("spring(") : len(s)-1])
		if preset, ok := SpringPreset(inner); ok {
			return Spring(preset), nil
		}
		nums, err := parseArgs(inner)
		if err != nil || len(nums) != 3 {
			return Easing{}, fmt.Errorf("parse easing %q: want a preset or 3 numbers", s)
		}
		e := Spring(SpringConfig{Stiffness: nums[0], Damping: nums[1], Mass: nums[2]})
		return e, e.Validate()
	}
	e := Named(EaseName(s))
	return e, e.Validate()
}

func parseArgs(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		var f float64
		if _, err := fmt.Sscan(strings.TrimSpace(part), &f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// Bezier solver iteration limits.
const (
	bezierNewtonIterations    = 8
	bezierBisectionIterations = 24
	bezierEpsilon             = 1e-7
)

// CubicBezier returns a cubic-bezier easing function matching CSS
// cubic-bezier(). The curve's x(u) is inverted with Newton-Raphson; when that
// fails to converge the solver falls back to bisection and returns its
// nearest estimate.
func CubicBezier(x1, y1, x2, y2 float64) func(float64) float64 {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		u := t
		for range bezierNewtonIterations {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < bezierEpsilon {
				return sampleCurve(y1, y2, clampUnit(u))
			}
			dx := sampleCurveDerivative(x1, x2, u)
			if math.Abs(dx) < bezierEpsilon {
				break
			}
			u -= x / dx
		}

		lo, hi := 0.0, 1.0
		u = clampUnit(u)
		for range bezierBisectionIterations {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < bezierEpsilon {
				break
			}
			if x > 0 {
				hi = u
			} else {
				lo = u
			}
			u = (lo + hi) * 0.5
		}

		return sampleCurve(y1, y2, u)
	}
}

func sampleCurve(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func sampleCurveDerivative(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}
