package motion

import (
	"fmt"
	"math"
)

// monitorWindow is the number of frame samples averaged by the monitor.
const monitorWindow = 60

// frameSlack tolerates timer jitter before a frame counts as over budget.
const frameSlack = 0.01

// Budget is the performance envelope the engine tries to stay within.
type Budget struct {
	// FrameTime is the target frame time in seconds.
	FrameTime float64 `yaml:"frameTime"`
	// MaxLayers caps compositing layers.
	MaxLayers int `yaml:"maxLayers"`
	// MaxPooled caps pooled objects of each kind.
	MaxPooled int `yaml:"maxPooled"`
	// MaxAnimations is the number of live animations considered healthy.
	MaxAnimations int `yaml:"maxAnimations"`
	// DegradedLayerFraction scales MaxLayers while over budget.
	DegradedLayerFraction float64 `yaml:"degradedLayerFraction"`
}

// DefaultBudget returns a budget for a 60 Hz host.
func DefaultBudget() Budget {
	return Budget{
		FrameTime:             1.0 / 60,
		MaxLayers:             50,
		MaxPooled:             256,
		MaxAnimations:         1024,
		DegradedLayerFraction: 0.5,
	}
}

// Validate rejects budgets that cannot be met.
func (b Budget) Validate() error {
	if !finite(b.FrameTime) || b.FrameTime <= 0 {
		return fmt.Errorf("budget frame time must be positive, got %v", b.FrameTime)
	}
	if b.MaxLayers < 0 || b.MaxPooled < 0 || b.MaxAnimations < 0 {
		return fmt.Errorf("budget limits must be non-negative")
	}
	if !finite(b.DegradedLayerFraction) || b.DegradedLayerFraction < 0 || b.DegradedLayerFraction > 1 {
		return fmt.Errorf("degraded layer fraction must be in [0, 1], got %v", b.DegradedLayerFraction)
	}
	return nil
}

// degradedLayers returns the layer cap applied while over budget.
func (b Budget) degradedLayers() int {
	return int(math.Floor(float64(b.MaxLayers) * b.DegradedLayerFraction))
}

// Advice is what the monitor recommends to the engine. It is advisory only;
// no animation is aborted because of it.
type Advice struct {
	// LayerCap is the number of compositing layers to allow.
	LayerCap int
	// PreferPool asks to keep released objects pooled instead of trimming.
	PreferPool bool
}

// Diagnostics counts events that do not fail an operation but are worth
// surfacing.
type Diagnostics struct {
	// UnsupportedProperties counts properties that forced a native
	// fallback.
	UnsupportedProperties int
	// NativeFallbacks counts animations that wanted the native facility
	// but run on the manual loop.
	NativeFallbacks int
	// RejectedTicks counts non-finite or backwards timestamps.
	RejectedTicks int
	// LayerDemotions counts layers taken away by budget pressure.
	LayerDemotions int
	// TickErrors holds the most recent entry failures, oldest first.
	TickErrors []TickError
}

// maxTickErrors bounds Diagnostics.TickErrors.
const maxTickErrors = 16

func (d *Diagnostics) recordTickError(te TickError) {
	if len(d.TickErrors) == maxTickErrors {
		copy(d.TickErrors, d.TickErrors[1:])
		d.TickErrors = d.TickErrors[:maxTickErrors-1]
	}
	d.TickErrors = append(d.TickErrors, te)
}

// PerformanceReport is a snapshot of the monitor and the engine.
type PerformanceReport struct {
	AverageFrameTime float64
	FPS              float64
	DroppedFrames    int
	ActiveAnimations int
	LayerCount       int
	PooledObjects    int
	// Utilization averages frame time, animations and layers against the
	// budget, each capped at 1.
	Utilization float64
	OverBudget  bool
	Advice      Advice
	Diagnostics Diagnostics
}

// PerformanceMonitor keeps a rolling window of frame times.
type PerformanceMonitor struct {
	budget  Budget
	samples [monitorWindow]float64
	next    int
	count   int
	sum     float64
	dropped int
	frames  int
}

// NewPerformanceMonitor returns a monitor measuring against b.
func NewPerformanceMonitor(b Budget) *PerformanceMonitor {
	return &PerformanceMonitor{budget: b}
}

// Budget returns the monitor's budget.
func (m *PerformanceMonitor) Budget() Budget { return m.budget }

// Record adds one frame time in seconds. Non-finite or negative samples are
// ignored. A frame spanning k budget frames counts k-1 dropped frames.
func (m *PerformanceMonitor) Record(dt float64) {
	if !finite(dt) || dt < 0 {
		return
	}
	if m.count == monitorWindow {
		m.sum -= m.samples[m.next]
	} else {
		m.count++
	}
	m.samples[m.next] = dt
	m.sum += dt
	m.next = (m.next + 1) % monitorWindow
	m.frames++
	if missed := int(math.Floor(dt/m.budget.FrameTime)) - 1; missed > 0 {
		m.dropped += missed
	}
}

// Frames returns the number of frames recorded.
func (m *PerformanceMonitor) Frames() int { return m.frames }

// DroppedFrames returns the total number of dropped frames.
func (m *PerformanceMonitor) DroppedFrames() int { return m.dropped }

// AverageFrameTime returns the mean of the window, or 0 with no samples.
func (m *PerformanceMonitor) AverageFrameTime() float64 {
	if m.count == 0 {
		return 0
	}
	avg := m.sum / float64(m.count)
	if avg < 0 {
		return 0
	}
	return avg
}

// Report builds a snapshot given the engine's live counts.
func (m *PerformanceMonitor) Report(active, layers, pooled int) PerformanceReport {
	b := m.budget
	avg := m.AverageFrameTime()
	r := PerformanceReport{
		AverageFrameTime: avg,
		DroppedFrames:    m.dropped,
		ActiveAnimations: active,
		LayerCount:       layers,
		PooledObjects:    pooled,
	}
	if avg > 0 {
		r.FPS = 1 / avg
	}
	r.OverBudget = avg > b.FrameTime*(1+frameSlack) ||
		active > b.MaxAnimations || layers > b.MaxLayers
	r.Utilization = (ratio(avg, b.FrameTime) + ratio(float64(active), float64(b.MaxAnimations)) +
		ratio(float64(layers), float64(b.MaxLayers))) / 3
	if r.OverBudget {
		r.Advice = Advice{LayerCap: b.degradedLayers(), PreferPool: true}
	} else {
		r.Advice = Advice{LayerCap: b.MaxLayers}
	}
	return r
}

// ratio returns v/limit capped at 1. A zero limit is saturated by any use.
func ratio(v, limit float64) float64 {
	if limit <= 0 {
		if v > 0 {
			return 1
		}
		return 0
	}
	return math.Min(v/limit, 1)
}

// Reset clears all samples.
func (m *PerformanceMonitor) Reset() {
	*m = PerformanceMonitor{budget: m.budget}
}
