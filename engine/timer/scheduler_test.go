package timer

import (
	"reflect"
	"testing"
	"time"
)

func TestAdvanceRunsInDueOrder(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.After(300*time.Millisecond, func() { order = append(order, "c") })
	s.After(100*time.Millisecond, func() { order = append(order, "a") })
	s.After(100*time.Millisecond, func() { order = append(order, "b") })

	if ran := s.Advance(0.05); ran != 0 {
		t.Fatalf("expected nothing due at 50ms, ran %d", ran)
	}
	if ran := s.Advance(0.3); ran != 3 {
		t.Fatalf("expected 3 callbacks, ran %d", ran)
	}
	if !reflect.DeepEqual(order, []string{"a", "b", "c"}) {
		t.Errorf("unexpected order %v", order)
	}
	if s.Pending() != 0 {
		t.Errorf("expected no pending callbacks, got %d", s.Pending())
	}
}

func TestCancelPreventsCallback(t *testing.T) {
	s := NewScheduler()
	fired := false
	cancel := s.After(10*time.Millisecond, func() { fired = true })
	cancel()
	cancel()

	s.Advance(1)
	if fired {
		t.Error("cancelled callback ran")
	}
	if s.Pending() != 0 {
		t.Errorf("expected 0 pending, got %d", s.Pending())
	}
}

func TestChainedCallbacks(t *testing.T) {
	s := NewScheduler()
	var steps []time.Duration
	s.After(300*time.Millisecond, func() {
		steps = append(steps, s.Now())
		s.After(300*time.Millisecond, func() {
			steps = append(steps, s.Now())
		})
	})

	for i := 0; i < 60; i++ {
		s.Advance(1.0 / 60.0)
	}
	if len(steps) != 2 {
		t.Fatalf("expected both stages to run, got %d", len(steps))
	}
	if steps[1]-steps[0] < 300*time.Millisecond {
		t.Errorf("second stage ran too early: %v after first", steps[1]-steps[0])
	}
}

func TestZeroDelayRunsOnNextAdvance(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.After(0, func() { fired = true })
	if fired {
		t.Fatal("callback ran before Advance")
	}
	s.Advance(0)
	if !fired {
		t.Error("zero-delay callback did not run")
	}
}
