package motion

import (
	"errors"
	"testing"
)

func TestRegistryInsertGet(t *testing.T) {
	r := newRegistry(0)
	a, b := &entry{}, &entry{}
	ha, _ := r.insert(a)
	hb, _ := r.insert(b)
	if ha == hb {
		t.Fatal("handles collide")
	}
	if r.get(ha) != a || r.get(hb) != b {
		t.Error("get returned the wrong entry")
	}
	if a.handle != ha {
		t.Error("insert did not stamp the entry")
	}
	if r.len() != 2 {
		t.Errorf("len = %d", r.len())
	}
}

func TestRegistryStaleHandle(t *testing.T) {
	r := newRegistry(0)
	h, _ := r.insert(&entry{})
	if r.remove(h) == nil {
		t.Fatal("remove failed")
	}
	if r.get(h) != nil {
		t.Error("removed handle still resolves")
	}
	if r.remove(h) != nil {
		t.Error("double remove succeeded")
	}
	h2, _ := r.insert(&entry{})
	if h2.slot != h.slot {
		t.Errorf("slot not reused: %d vs %d", h2.slot, h.slot)
	}
	if h2.gen == h.gen {
		t.Error("generation not bumped")
	}
	if r.get(h) != nil {
		t.Error("stale handle resolves to the new occupant")
	}
}

func TestRegistryCapacity(t *testing.T) {
	r := newRegistry(2)
	r.insert(&entry{})
	h, _ := r.insert(&entry{})
	if _, err := r.insert(&entry{}); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("err = %v, want ErrCapacityExceeded", err)
	}
	r.remove(h)
	if _, err := r.insert(&entry{}); err != nil {
		t.Errorf("insert after remove: %v", err)
	}
}

func TestHandleZeroValue(t *testing.T) {
	var h Handle
	if h.Valid() {
		t.Error("zero handle is valid")
	}
	if h.String() != "anim(invalid)" {
		t.Errorf("String = %q", h.String())
	}
	r := newRegistry(0)
	r.insert(&entry{})
	if r.get(h) != nil {
		t.Error("zero handle resolved")
	}
}

func TestHandleID(t *testing.T) {
	h := Handle{slot: 3, gen: 2}
	if h.ID() != 2<<32|3 {
		t.Errorf("ID = %d", h.ID())
	}
	if h.String() != "anim(3.2)" {
		t.Errorf("String = %q", h.String())
	}
}
