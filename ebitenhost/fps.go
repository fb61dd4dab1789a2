package ebitenhost

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/motion"
)

// FPSOverlay displays FPS, TPS and the engine's animation stats. The text
// is refreshed every ~0.5 seconds.
type FPSOverlay struct {
	engine     *motion.Engine
	img        *ebiten.Image
	lastUpdate float64
	text       string
}

// NewFPSOverlay returns an overlay reporting on engine, which may be nil.
func NewFPSOverlay(engine *motion.Engine) *FPSOverlay {
	return &FPSOverlay{engine: engine, lastUpdate: 0.5}
}

// Update advances the refresh timer by dt seconds.
func (o *FPSOverlay) Update(dt float64) {
	o.lastUpdate += dt
	if o.lastUpdate < 0.5 {
		return
	}
	o.lastUpdate = 0
	o.text = o.format(ebiten.ActualFPS(), ebiten.ActualTPS())
}

func (o *FPSOverlay) format(fps, tps float64) string {
	s := fmt.Sprintf("FPS: %.1f\nTPS: %.1f", fps, tps)
	if o.engine == nil {
		return s
	}
	if r, ok := o.engine.Metrics(); ok {
		s += fmt.Sprintf("\nanims: %d layers: %d", r.ActiveAnimations, r.LayerCount)
		if r.OverBudget {
			s += " (over budget)"
		}
	}
	return s
}

// Draw renders the overlay in the top-left corner.
func (o *FPSOverlay) Draw(screen *ebiten.Image) {
	if o.img == nil {
		// 180x48 fits three short lines of debug text.
		o.img = ebiten.NewImage(180, 48)
	}
	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, o.text)
	screen.DrawImage(o.img, nil)
}
