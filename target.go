package motion

import (
	"fmt"
	"sort"
)

// Target maps property names to values. It describes a start state, an end
// state, or the state computed for one frame. Iteration order is irrelevant.
type Target map[string]Value

// Clone returns a shallow copy of t. Values are immutable so this is a full copy.
func (t Target) Clone() Target {
	out := make(Target, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Merge returns a new Target holding the properties of t overlaid by other.
func (t Target) Merge(other Target) Target {
	out := make(Target, len(t)+len(other))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Keys returns the property names of t in sorted order.
func (t Target) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// validate checks every value for non-finite payloads, color channels
// included.
func (t Target) validate() error {
	for _, k := range t.Keys() {
		if !t[k].finite() {
			return fmt.Errorf("property %q: non-finite value %v", k, t[k])
		}
	}
	return nil
}

// resolveFrom builds the start state for an animation toward to. Properties
// missing from from start at the zero value of the destination's kind.
// Every pair must be compatible.
func resolveFrom(from, to Target) (Target, error) {
	start := make(Target, len(to))
	for _, k := range to.Keys() {
		end := to[k]
		begin, ok := from[k]
		if !ok {
			begin = zeroLike(end)
		}
		if !begin.Compatible(end) {
			return nil, fmt.Errorf("property %q: cannot interpolate %s(%s) to %s(%s)",
				k, begin.Kind(), begin, end.Kind(), end)
		}
		start[k] = begin
	}
	return start, nil
}

// Property names understood by the layer heuristics and the host sinks.
const (
	PropX       = "x"
	PropY       = "y"
	PropScaleX  = "scaleX"
	PropScaleY  = "scaleY"
	PropRotate  = "rotate"
	PropRotateY = "rotateY"
	PropOpacity = "opacity"
	PropFill    = "fill"
)

// Position returns a Target moving x and y to the given pixel coordinates.
func Position(x, y float64) Target {
	return Target{PropX: Px(x), PropY: Px(y)}
}

// Scale returns a Target animating both scale axes.
func Scale(sx, sy float64) Target {
	return Target{PropScaleX: Number(sx), PropScaleY: Number(sy)}
}

// Rotation returns a Target animating rotation in degrees.
func Rotation(deg float64) Target {
	return Target{PropRotate: Deg(deg)}
}

// Opacity returns a Target animating opacity.
func Opacity(a float64) Target {
	return Target{PropOpacity: Number(a)}
}

// Fill returns a Target animating the fill color.
func Fill(c Color) Target {
	return Target{PropFill: RGBA(c)}
}
