package motion

import (
	"sort"
	"strings"
)

// layerFriendly reports whether a property can be animated on a compositing
// layer without re-rendering the element's contents.
func layerFriendly(prop string) bool {
	switch prop {
	case PropX, PropY, PropOpacity:
		return true
	}
	return strings.HasPrefix(prop, "scale") || strings.HasPrefix(prop, "rotate") ||
		strings.HasPrefix(prop, "translate")
}

// layerEligible reports whether every property of t is layer-friendly.
func layerEligible(t Target) bool {
	if len(t) == 0 {
		return false
	}
	for k := range t {
		if !layerFriendly(k) {
			return false
		}
	}
	return true
}

type layerRecord struct {
	element    any
	lastActive float64
}

// LayerManager tracks which animations hold a compositing layer. The number
// of layers is capped; lowering the cap demotes the least recently active
// layers first.
type LayerManager struct {
	max     int
	cap     int
	layers  map[Handle]*layerRecord
	scratch []Handle

	// OnPromote and OnDemote are called when a layer is granted or taken.
	OnPromote func(h Handle, element any)
	OnDemote  func(h Handle, element any)
}

// NewLayerManager returns a manager allowing at most max layers.
func NewLayerManager(max int) *LayerManager {
	if max < 0 {
		max = 0
	}
	return &LayerManager{max: max, cap: max, layers: make(map[Handle]*layerRecord)}
}

// Promote grants h a layer if one is free. It returns true if h holds a
// layer afterwards.
func (m *LayerManager) Promote(h Handle, element any, now float64) bool {
	if r, ok := m.layers[h]; ok {
		r.lastActive = now
		return true
	}
	if len(m.layers) >= m.cap {
		return false
	}
	m.layers[h] = &layerRecord{element: element, lastActive: now}
	if m.OnPromote != nil {
		m.OnPromote(h, element)
	}
	return true
}

// Demote releases h's layer, if any.
func (m *LayerManager) Demote(h Handle) {
	r, ok := m.layers[h]
	if !ok {
		return
	}
	delete(m.layers, h)
	if m.OnDemote != nil {
		m.OnDemote(h, r.element)
	}
}

// Touch marks h as active at now.
func (m *LayerManager) Touch(h Handle, now float64) {
	if r, ok := m.layers[h]; ok {
		r.lastActive = now
	}
}

// IsPromoted reports whether h holds a layer.
func (m *LayerManager) IsPromoted(h Handle) bool {
	_, ok := m.layers[h]
	return ok
}

// Len returns the number of layers in use.
func (m *LayerManager) Len() int { return len(m.layers) }

// Cap returns the current layer cap.
func (m *LayerManager) Cap() int { return m.cap }

// Max returns the configured maximum.
func (m *LayerManager) Max() int { return m.max }

// SetCap changes the cap, clamped to [0, Max]. Layers over the new cap are
// demoted least recently active first; ties go to the older handle slot.
// Returns the number of layers demoted.
func (m *LayerManager) SetCap(n int) int {
	if n < 0 {
		n = 0
	}
	if n > m.max {
		n = m.max
	}
	m.cap = n
	excess := len(m.layers) - n
	if excess <= 0 {
		return 0
	}
	m.scratch = m.scratch[:0]
	for h := range m.layers {
		m.scratch = append(m.scratch, h)
	}
	sort.Slice(m.scratch, func(i, j int) bool {
		a, b := m.layers[m.scratch[i]], m.layers[m.scratch[j]]
		if a.lastActive != b.lastActive {
			return a.lastActive < b.lastActive
		}
		return m.scratch[i].slot < m.scratch[j].slot
	})
	for _, h := range m.scratch[:excess] {
		m.Demote(h)
	}
	return excess
}
