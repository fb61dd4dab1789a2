package motion

import "fmt"

// Handle identifies one animation inside an Engine. It pairs a slot index
// with the slot's generation so a handle kept past Cleanup can never reach
// whatever animation later reuses the slot. The zero Handle is never valid.
type Handle struct {
	slot uint32
	gen  uint32
}

// Valid reports whether h was issued by an engine. It does not report
// whether the animation still exists; use Engine.State for that.
func (h Handle) Valid() bool { return h.gen != 0 }

// ID packs the handle into a single integer, useful as a map key outside the
// engine or in logs. Distinct live handles have distinct IDs.
func (h Handle) ID() uint64 { return uint64(h.gen)<<32 | uint64(h.slot) }

func (h Handle) String() string {
	if !h.Valid() {
		return "anim(invalid)"
	}
	return fmt.Sprintf("anim(%d.%d)", h.slot, h.gen)
}

type slot struct {
	gen   uint32
	entry *entry // nil while the slot is on the free list
}

// registry is a generational slot arena. Released slots go on a free list
// and their generation is bumped so stale handles miss.
type registry struct {
	slots    []slot
	free     []uint32
	live     int
	capacity int
}

func newRegistry(capacity int) registry {
	return registry{capacity: capacity}
}

// insert stores e in a free slot and returns its handle. It fails with
// ErrCapacityExceeded without touching existing entries when full.
func (r *registry) insert(e *entry) (Handle, error) {
	if r.capacity > 0 && r.live >= r.capacity {
		return Handle{}, ErrCapacityExceeded
	}
	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		idx = uint32(len(r.slots))
		r.slots = append(r.slots, slot{gen: 1})
	}
	s := &r.slots[idx]
	s.entry = e
	r.live++
	h := Handle{slot: idx, gen: s.gen}
	e.handle = h
	return h, nil
}

// get returns the entry behind h, or nil if h is stale or unknown.
func (r *registry) get(h Handle) *entry {
	if !h.Valid() || int(h.slot) >= len(r.slots) {
		return nil
	}
	s := &r.slots[h.slot]
	if s.gen != h.gen || s.entry == nil {
		return nil
	}
	return s.entry
}

// remove frees the slot behind h and returns its entry.
func (r *registry) remove(h Handle) *entry {
	e := r.get(h)
	if e == nil {
		return nil
	}
	s := &r.slots[h.slot]
	s.entry = nil
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	r.free = append(r.free, h.slot)
	r.live--
	return e
}

// each calls fn for every live entry in slot order. fn must not insert or
// remove entries.
func (r *registry) each(fn func(*entry)) {
	for i := range r.slots {
		if e := r.slots[i].entry; e != nil {
			fn(e)
		}
	}
}

func (r *registry) len() int { return r.live }
