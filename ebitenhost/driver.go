// Package ebitenhost runs motion engines inside an Ebitengine game.
//
// [Driver] is a motion.TickSource fed by ebiten's fixed-rate Update, [Sprites]
// is a property sink writing animated values onto [Sprite] structs, and
// [FPSOverlay] draws frame and animation stats.
package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/motion"
)

// Driver turns ebiten's Update calls into engine ticks. Update runs at a
// fixed TPS, so the timestamp advances by exactly 1/TPS per call and
// animations stay deterministic regardless of render speed.
type Driver struct {
	// TPS overrides ebiten.TPS() when non-zero.
	TPS int

	ticks motion.ManualTicks
	now   float64
}

// NewDriver returns a driver attached to each engine given.
func NewDriver(engines ...*motion.Engine) *Driver {
	d := &Driver{}
	for _, e := range engines {
		e.Attach(d)
	}
	return d
}

// Subscribe implements motion.TickSource.
func (d *Driver) Subscribe(fn func(float64)) func() {
	return d.ticks.Subscribe(fn)
}

// Update advances the clock by one tick and fires every subscriber. Call it
// from the game's Update.
func (d *Driver) Update() {
	tps := d.TPS
	if tps <= 0 {
		tps = ebiten.TPS()
	}
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	d.now += 1 / float64(tps)
	d.ticks.Fire(d.now)
}

// Now returns the timestamp of the last tick.
func (d *Driver) Now() float64 { return d.now }
