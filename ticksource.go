package motion

import (
	"context"
	"sync"
	"time"
)

// TickSource is the host's per-frame callback mechanism. Subscribe registers
// fn to be called with a timestamp in seconds once per frame and returns a
// function that removes it.
type TickSource interface {
	Subscribe(fn func(ts float64)) (cancel func())
}

// ManualTicks is a TickSource fired by hand, for tests and hosts that
// already own a frame loop.
type ManualTicks struct {
	subs   map[int]func(float64)
	nextID int
}

// Subscribe implements TickSource.
func (m *ManualTicks) Subscribe(fn func(float64)) func() {
	if m.subs == nil {
		m.subs = make(map[int]func(float64))
	}
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	return func() { delete(m.subs, id) }
}

// Fire calls every subscriber with ts.
func (m *ManualTicks) Fire(ts float64) {
	for _, fn := range m.subs {
		fn(ts)
	}
}

// Len returns the number of subscribers.
func (m *ManualTicks) Len() int { return len(m.subs) }

// IntervalTicks fires subscribers from a time.Ticker goroutine. Every call
// holds Lock, so an engine attached here is safe to use from other
// goroutines as long as they hold the same lock.
type IntervalTicks struct {
	interval time.Duration
	// Lock guards the subscribed engines. Hold it around any engine call
	// made outside the tick.
	Lock sync.Locker

	mu     sync.Mutex
	subs   map[int]func(float64)
	nextID int
}

// NewIntervalTicks returns a source ticking every interval. A nil lock gets
// a fresh mutex.
func NewIntervalTicks(interval time.Duration, lock sync.Locker) *IntervalTicks {
	if lock == nil {
		lock = &sync.Mutex{}
	}
	return &IntervalTicks{interval: interval, Lock: lock, subs: make(map[int]func(float64))}
}

// Subscribe implements TickSource.
func (t *IntervalTicks) Subscribe(fn func(float64)) func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextID
	t.nextID++
	t.subs[id] = fn
	return func() {
		t.mu.Lock()
		delete(t.subs, id)
		t.mu.Unlock()
	}
}

// Run ticks until ctx is done and returns ctx.Err(). Timestamps are seconds
// since Run started.
func (t *IntervalTicks) Run(ctx context.Context) error {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	start := time.Now()
	fns := make([]func(float64), 0, 4)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			ts := now.Sub(start).Seconds()
			t.mu.Lock()
			fns = fns[:0]
			for _, fn := range t.subs {
				fns = append(fns, fn)
			}
			t.mu.Unlock()
			t.Lock.Lock()
			for _, fn := range fns {
				fn(ts)
			}
			t.Lock.Unlock()
		}
	}
}
