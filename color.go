package motion

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// Common endpoints.
var (
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}
	ColorTransparent = Color{}
)

// ColorSpace selects how the RGB channels of two colors are blended. Alpha is
// always blended linearly.
type ColorSpace uint8

const (
	ColorSpaceRGB ColorSpace = iota // straight per-channel lerp
	ColorSpaceLab                   // CIE L*a*b*, perceptually even
	ColorSpaceHCL                   // polar Lab, keeps saturation through the blend
)

// String returns the config name of the color space.
func (cs ColorSpace) String() string {
	switch cs {
	case ColorSpaceLab:
		return "lab"
	case ColorSpaceHCL:
		return "hcl"
	default:
		return "rgb"
	}
}

// ParseColorSpace maps a config name to a ColorSpace.
func ParseColorSpace(s string) (ColorSpace, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rgb":
		return ColorSpaceRGB, nil
	case "lab":
		return ColorSpaceLab, nil
	case "hcl":
		return ColorSpaceHCL, nil
	}
	return ColorSpaceRGB, fmt.Errorf("unknown color space %q", s)
}

// String renders c as CSS rgba() with 0-255 channels.
func (c Color) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)",
		channel8(c.R), channel8(c.G), channel8(c.B), formatFloat(roundTo(c.A, 3)))
}

func (c Color) clamped() Color {
	return Color{clampUnit(c.R), clampUnit(c.G), clampUnit(c.B), clampUnit(c.A)}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

// ParseColor parses "#rgb", "#rgba", "#rrggbb", "#rrggbbaa", "rgb(r, g, b)",
// "rgba(r, g, b, a)" and CSS color names into a color Value.
func ParseColor(s string) (Value, error) {
	c, err := parseColor(s)
	if err != nil {
		return Value{}, err
	}
	return RGBA(c), nil
}

// MustParseColor is like ParseColor but panics on malformed input. Intended
// for package-level literals.
func MustParseColor(s string) Value {
	v, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return v
}

func parseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s)
	case strings.HasPrefix(s, "rgb"):
		return parseFuncColor(s)
	case s == "transparent":
		return ColorTransparent, nil
	}
	if rgba, ok := colornames.Map[s]; ok {
		return Color{
			R: float64(rgba.R) / 255,
			G: float64(rgba.G) / 255,
			B: float64(rgba.B) / 255,
			A: float64(rgba.A) / 255,
		}, nil
	}
	return Color{}, fmt.Errorf("parse color %q: unknown format", s)
}

func parseHexColor(s string) (Color, error) {
	hex := s[1:]
	alpha := 1.0
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 4:
		a, err := strconv.ParseUint(string([]byte{hex[3], hex[3]}), 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		alpha = float64(a) / 255
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		alpha = float64(a) / 255
		hex = hex[:6]
	default:
		return Color{}, fmt.Errorf("parse color %q: bad hex length", s)
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}

func parseFuncColor(s string) (Color, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Color{}, fmt.Errorf("parse color %q: malformed function", s)
	}
	parts := strings.Split(s[open+1:len(s)-1], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, fmt.Errorf("parse color %q: want 3 or 4 components", s)
	}
	var ch [4]float64
	ch[3] = 1
	for i, p := range parts {
		p = strings.TrimSpace(p)
		pct := strings.HasSuffix(p, "%")
		f, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
		if err != nil || !finite(f) {
			return Color{}, fmt.Errorf("parse color %q: component %d", s, i)
		}
		switch {
		case pct:
			f /= 100
		case i < 3:
			f /= 255
		}
		ch[i] = clampUnit(f)
	}
	return Color{ch[0], ch[1], ch[2], ch[3]}, nil
}

// BlendColor blends a toward b by t in the given space. t outside [0, 1] is
// allowed (springs overshoot); the result is clamped to valid channels.
func BlendColor(a, b Color, t float64, space ColorSpace) Color {
	if t <= 0 {
		return a.clamped()
	}
	if t == 1 {
		return b.clamped()
	}
	alpha := lerp(a.A, b.A, t)
	var out colorful.Color
	switch space {
	case ColorSpaceLab:
		out = a.colorful().BlendLab(b.colorful(), t)
	case ColorSpaceHCL:
		out = a.colorful().BlendHcl(b.colorful(), t)
	default:
		return Color{lerp(a.R, b.R, t), lerp(a.G, b.G, t), lerp(a.B, b.B, t), alpha}.clamped()
	}
	out = out.Clamped()
	return Color{out.R, out.G, out.B, alpha}.clamped()
}

func channel8(f float64) int {
	return int(math.Round(clampUnit(f) * 255))
}

func roundTo(f float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(f*p) / p
}
