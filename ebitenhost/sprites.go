package ebitenhost

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/motion"
)

// Sprite is a drawable rectangle whose fields are written by Sprites. A nil
// Image draws a solid rectangle of Width x Height tinted by Fill.
type Sprite struct {
	Name          string
	X, Y          float64
	ScaleX        float64
	ScaleY        float64
	Rotation      float64 // degrees
	Alpha         float64
	Fill          color.RGBA
	Width, Height float64
	Image         *ebiten.Image
	// Layered is set while the engine grants the sprite a layer.
	Layered bool
	// Extra holds animated properties Sprite has no field for.
	Extra map[string]motion.Value
}

// NewSprite returns an opaque white w x h sprite at (x, y).
func NewSprite(name string, x, y, w, h float64) *Sprite {
	return &Sprite{
		Name: name, X: x, Y: y,
		ScaleX: 1, ScaleY: 1, Alpha: 1,
		Fill:  color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Width: w, Height: h,
	}
}

// Sprites is a motion.PropertySink and motion.LayerHost for *Sprite
// elements. Other element types are ignored.
type Sprites struct{}

// Apply writes values onto the sprite.
func (Sprites) Apply(element any, values motion.Target) {
	s, ok := element.(*Sprite)
	if !ok || s == nil {
		return
	}
	for k, v := range values {
		switch k {
		case motion.PropX:
			s.X = number(v, s.X)
		case motion.PropY:
			s.Y = number(v, s.Y)
		case motion.PropScaleX:
			s.ScaleX = number(v, s.ScaleX)
		case motion.PropScaleY:
			s.ScaleY = number(v, s.ScaleY)
		case motion.PropRotate:
			s.Rotation = number(v.ToDegrees(), s.Rotation)
		case motion.PropOpacity:
			s.Alpha = number(v, s.Alpha)
		case motion.PropFill:
			if c, ok := v.Color(); ok {
				s.Fill = toRGBA(c)
			}
		default:
			if s.Extra == nil {
				s.Extra = make(map[string]motion.Value)
			}
			s.Extra[k] = v
		}
	}
}

// Promote implements motion.LayerHost.
func (Sprites) Promote(element any) {
	if s, ok := element.(*Sprite); ok && s != nil {
		s.Layered = true
	}
}

// Demote implements motion.LayerHost.
func (Sprites) Demote(element any) {
	if s, ok := element.(*Sprite); ok && s != nil {
		s.Layered = false
	}
}

func number(v motion.Value, fallback float64) float64 {
	if f, ok := v.Float(); ok {
		return f
	}
	return fallback
}

func toRGBA(c motion.Color) color.RGBA {
	ch := func(f float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, f)) * 255))
	}
	return color.RGBA{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: ch(c.A)}
}

var whitePixel *ebiten.Image

// DrawSprites draws sprites in order, centred on their position.
func DrawSprites(screen *ebiten.Image, sprites []*Sprite) {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	for _, s := range sprites {
		img := s.Image
		w, h := s.Width, s.Height
		sx, sy := s.ScaleX, s.ScaleY
		if img == nil {
			img = whitePixel
			sx, sy = sx*w, sy*h
			w, h = 1, 1
		} else {
			b := img.Bounds()
			w, h = float64(b.Dx()), float64(b.Dy())
		}
		var op ebiten.DrawImageOptions
		op.GeoM.Translate(-w/2, -h/2)
		op.GeoM.Scale(sx, sy)
		op.GeoM.Rotate(s.Rotation * math.Pi / 180)
		op.GeoM.Translate(s.X, s.Y)
		op.ColorScale.ScaleWithColor(s.Fill)
		op.ColorScale.ScaleAlpha(float32(s.Alpha))
		screen.DrawImage(img, &op)
	}
}
