package motion

import "testing"

func TestPoolReusesValues(t *testing.T) {
	clock := &fakeClock{}
	p := valuePool{limit: 4}

	m := p.acquireValue(Number(1), 0, clock)
	m.Subscribe(func(Value) {})
	p.releaseValue(m)
	if p.size() != 1 {
		t.Fatalf("size = %d, want 1", p.size())
	}

	got := p.acquireValue(Px(7), 2, clock)
	if got != m {
		t.Error("pooled MotionValue not reused")
	}
	if got.Get() != Px(7) {
		t.Errorf("Get = %v, want 7px", got.Get())
	}
	if got.Velocity() != 0 {
		t.Errorf("Velocity = %v, want 0", got.Velocity())
	}
	if got.SubscriberCount() != 0 {
		t.Errorf("SubscriberCount = %d, want 0", got.SubscriberCount())
	}
	if p.size() != 0 {
		t.Errorf("size = %d, want 0", p.size())
	}
}

func TestPoolLimit(t *testing.T) {
	p := valuePool{limit: 1}
	p.releaseValue(NewMotionValue(Number(0), &fakeClock{}))
	p.releaseValue(NewMotionValue(Number(0), &fakeClock{}))
	p.releaseValue(nil)
	if len(p.values) != 1 {
		t.Errorf("pooled values = %d, want 1", len(p.values))
	}
}

func TestPoolReleaseEntry(t *testing.T) {
	clock := &fakeClock{}
	p := valuePool{limit: 8}

	en := p.acquireEntry()
	en.props = append(en.props, PropX, PropOpacity)
	en.values = map[string]*MotionValue{
		PropX:       p.acquireValue(Px(0), 0, clock),
		PropOpacity: p.acquireValue(Number(1), 0, clock),
	}
	en.state = StateCompleted
	en.label = "card"

	p.releaseEntry(en)
	if len(p.values) != 2 || len(p.entries) != 1 {
		t.Fatalf("pooled = %d values, %d entries; want 2, 1", len(p.values), len(p.entries))
	}
	if len(en.props) != 0 || len(en.values) != 0 || en.label != "" || en.state != StateIdle {
		t.Errorf("released entry not cleared: %+v", en)
	}
	if p.acquireEntry() != en {
		t.Error("pooled entry not reused")
	}
}

func TestPoolTrim(t *testing.T) {
	p := valuePool{limit: 8}
	for range 5 {
		p.releaseValue(NewMotionValue(Number(0), &fakeClock{}))
		p.entries = append(p.entries, &entry{})
	}
	p.trim(2)
	if len(p.values) != 2 || len(p.entries) != 2 {
		t.Errorf("after trim(2): %d values, %d entries", len(p.values), len(p.entries))
	}
	p.trim(-1)
	if p.size() != 0 {
		t.Errorf("after trim(-1): size = %d", p.size())
	}
}
