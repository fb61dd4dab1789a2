package motion

import "time"

// tickStats holds per-tick counters. Timing is only measured in debug mode.
type tickStats struct {
	elapsed   time.Duration
	advanced  int
	completed int
	failed    int
}

// debugTickWarn is the tick duration above which debug mode warns.
const debugTickWarn = 4 * time.Millisecond

// debugLog logs tick stats. Only called when debug mode is on.
func (e *Engine) debugLog(stats tickStats) {
	e.logger.Debug("tick",
		"timestamp", e.now,
		"elapsed", stats.elapsed,
		"advanced", stats.advanced,
		"completed", stats.completed,
		"failed", stats.failed,
		"active", e.active,
		"layers", e.layers.Len(),
		"pooled", e.pool.size())
	if stats.elapsed > debugTickWarn {
		e.logger.Warn("slow tick", "elapsed", stats.elapsed, "threshold", debugTickWarn,
			"advanced", stats.advanced)
	}
	if n := e.reg.len(); n > e.budget.MaxAnimations {
		e.logger.Warn("registry above animation budget", "registered", n,
			"budget", e.budget.MaxAnimations)
	}
}
