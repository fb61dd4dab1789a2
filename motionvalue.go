package motion

import "time"

// Clock provides the time used by MotionValue.Set to derive velocity. The
// engine stamps values with tick timestamps directly; the clock is only used
// for values set by hand.
type Clock interface {
	// Now returns the current time in seconds on any monotonic scale.
	Now() float64
}

type monotonicClock struct{ epoch time.Time }

func (c monotonicClock) Now() float64 { return time.Since(c.epoch).Seconds() }

// SystemClock returns a Clock backed by the monotonic system clock.
func SystemClock() Clock { return monotonicClock{epoch: time.Now()} }

// MotionValue is a reactive cell holding a Value and its velocity. Velocity is
// derived from consecutive sets: (v - previous) / dt.
//
// Subscribers are notified synchronously from Set. A subscriber must not call
// Set on the value that is notifying it; the engine is single-threaded and
// does not guard against re-entrancy.
type MotionValue struct {
	value    Value
	velocity float64
	lastSet  float64
	hasSet   bool
	clock    Clock

	listeners      map[int]func(Value)
	nextListenerID int
}

// NewMotionValue returns a MotionValue holding v. A nil clock uses the
// system clock.
func NewMotionValue(v Value, clock Clock) *MotionValue {
	if clock == nil {
		clock = SystemClock()
	}
	return &MotionValue{value: v, clock: clock}
}

// Get returns the current value without side effects.
func (m *MotionValue) Get() Value { return m.value }

// Velocity returns the velocity estimated by the last Set, in units per
// second. It is 0 for non-numeric values and when two sets share a timestamp.
func (m *MotionValue) Velocity() float64 { return m.velocity }

// Set stores v, recomputes velocity from the clock and notifies subscribers.
func (m *MotionValue) Set(v Value) {
	m.setAt(v, m.clock.Now())
}

// setAt is Set with an explicit timestamp; the engine uses the tick time.
func (m *MotionValue) setAt(v Value, now float64) {
	prev := m.value
	m.velocity = 0
	if m.hasSet && v.IsNumeric() && prev.Compatible(v) {
		if dt := now - m.lastSet; dt > 0 && finite(dt) {
			if vel := (v.num - prev.num) / dt; finite(vel) {
				m.velocity = vel
			}
		}
	}
	m.value = v
	m.lastSet = now
	m.hasSet = true
	m.notify()
}

// jump replaces the value without deriving velocity, used when an entry
// (re)starts so the first frame does not report a spurious velocity.
func (m *MotionValue) jump(v Value, now float64) {
	m.value = v
	m.velocity = 0
	m.lastSet = now
	m.hasSet = true
	m.notify()
}

// Subscribe registers fn to be called with the new value on every Set.
// Returns an unsubscribe function.
func (m *MotionValue) Subscribe(fn func(Value)) func() {
	if m.listeners == nil {
		m.listeners = make(map[int]func(Value))
	}
	id := m.nextListenerID
	m.nextListenerID++
	m.listeners[id] = fn
	return func() {
		delete(m.listeners, id)
	}
}

// SubscriberCount returns the number of active subscribers.
func (m *MotionValue) SubscriberCount() int { return len(m.listeners) }

func (m *MotionValue) notify() {
	for _, listener := range m.listeners {
		listener(m.value)
	}
}

// reset clears a value for pooled reuse. Listener IDs keep counting up so an
// unsubscribe func held from a previous owner cannot remove a new listener.
func (m *MotionValue) reset(clock Clock) {
	for id := range m.listeners {
		delete(m.listeners, id)
	}
	*m = MotionValue{clock: clock, listeners: m.listeners, nextListenerID: m.nextListenerID}
}
