package motion

// valuePool keeps released MotionValues and entries for reuse by Create.
// After warmup, creating and cleaning up animations of the same shape does
// not allocate. limit caps how many of each kind are kept.
type valuePool struct {
	values  []*MotionValue
	entries []*entry
	limit   int
}

// acquireValue returns a reset MotionValue holding v.
func (p *valuePool) acquireValue(v Value, now float64, clock Clock) *MotionValue {
	if n := len(p.values); n > 0 {
		m := p.values[n-1]
		p.values[n-1] = nil
		p.values = p.values[:n-1]
		m.reset(clock)
		m.jump(v, now)
		return m
	}
	m := NewMotionValue(v, clock)
	m.lastSet = now
	m.hasSet = true
	return m
}

// releaseValue returns m to the pool. Subscribers are dropped on next
// acquire, not here, so a late reader still sees the final value.
func (p *valuePool) releaseValue(m *MotionValue) {
	if m == nil || len(p.values) >= p.limit {
		return
	}
	p.values = append(p.values, m)
}

func (p *valuePool) acquireEntry() *entry {
	if n := len(p.entries); n > 0 {
		e := p.entries[n-1]
		p.entries[n-1] = nil
		p.entries = p.entries[:n-1]
		return e
	}
	return &entry{}
}

// releaseEntry returns e and its values to the pool.
func (p *valuePool) releaseEntry(e *entry) {
	for _, k := range e.props {
		p.releaseValue(e.values[k])
	}
	e.clear()
	if len(p.entries) < p.limit {
		p.entries = append(p.entries, e)
	}
}

// trim shrinks both stacks to at most keep items.
func (p *valuePool) trim(keep int) {
	if keep < 0 {
		keep = 0
	}
	if len(p.values) > keep {
		clear(p.values[keep:])
		p.values = p.values[:keep]
	}
	if len(p.entries) > keep {
		clear(p.entries[keep:])
		p.entries = p.entries[:keep]
	}
}

// size returns the number of pooled objects.
func (p *valuePool) size() int { return len(p.values) + len(p.entries) }
