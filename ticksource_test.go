package motion

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestManualTicks(t *testing.T) {
	var src ManualTicks
	var a, b []float64
	cancelA := src.Subscribe(func(ts float64) { a = append(a, ts) })
	src.Subscribe(func(ts float64) { b = append(b, ts) })
	src.Fire(1)
	cancelA()
	src.Fire(2)
	if len(a) != 1 || a[0] != 1 {
		t.Errorf("a = %v", a)
	}
	if len(b) != 2 || b[1] != 2 {
		t.Errorf("b = %v", b)
	}
	if src.Len() != 1 {
		t.Errorf("Len = %d", src.Len())
	}
}

func TestIntervalTicksRun(t *testing.T) {
	var mu sync.Mutex
	src := NewIntervalTicks(time.Millisecond, &mu)
	e := New()
	h, _ := e.Create(Target{PropX: Px(100)}, linear(3600))
	e.Attach(src)

	fired := make(chan struct{}, 1)
	src.Subscribe(func(float64) {
		select {
		case fired <- struct{}{}:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- src.Run(ctx) }()

	for i := 0; i < 3; i++ {
		select {
		case <-fired:
		case <-time.After(5 * time.Second):
			t.Fatal("ticker never fired")
		}
	}
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Run returned %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if e.Now() <= 0 {
		t.Errorf("engine not ticked: Now = %v", e.Now())
	}
	if !e.IsRunning(h) {
		t.Error("animation stopped")
	}
}

func TestIntervalTicksDefaultLock(t *testing.T) {
	src := NewIntervalTicks(time.Second, nil)
	if src.Lock == nil {
		t.Fatal("nil lock not replaced")
	}
	cancel := src.Subscribe(func(float64) {})
	cancel()
	if len(src.subs) != 0 {
		t.Errorf("subs = %d", len(src.subs))
	}
}
