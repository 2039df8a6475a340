package event

import (
	"sync"
	"testing"
)

func TestPublishDeliversToMatchingHandlers(t *testing.T) {
	b := NewBus()
	var arrived, all []EventType
	b.Subscribe(EventArrived, func(e Event) { arrived = append(arrived, e.Type) })
	b.SubscribeAll(func(e Event) { all = append(all, e.Type) })

	b.Publish(Event{Type: EventArrived})
	b.Publish(Event{Type: EventZoneEnter})

	if len(arrived) != 1 || arrived[0] != EventArrived {
		t.Errorf("typed subscriber got %v", arrived)
	}
	if len(all) != 2 {
		t.Errorf("catch-all subscriber got %v", all)
	}
}

func TestUnsubscribe(t *testing.T) {
	b := NewBus()
	count := 0
	unsubscribe := b.Subscribe(EventCollected, func(Event) { count++ })

	b.Publish(Event{Type: EventCollected})
	unsubscribe()
	unsubscribe()
	b.Publish(Event{Type: EventCollected})

	if count != 1 {
		t.Errorf("expected 1 delivery, got %d", count)
	}
}

func TestHandlersRunInSubscriptionOrder(t *testing.T) {
	b := NewBus()
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		b.SubscribeAll(func(Event) { order = append(order, i) })
	}
	b.Publish(Event{Type: EventModeChanged})
	for i, v := range order {
		if v != i {
			t.Fatalf("handlers ran out of order: %v", order)
		}
	}
}

func TestPostAndDrain(t *testing.T) {
	b := NewBus()
	b.SetTick(42)
	var got []Event
	b.SubscribeAll(func(e Event) { got = append(got, e) })

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Post(Event{Type: EventZoneExit})
		}()
	}
	wg.Wait()

	if len(got) != 0 {
		t.Fatal("posted events delivered before Drain")
	}
	if n := b.Drain(); n != 10 {
		t.Fatalf("expected 10 drained events, got %d", n)
	}
	for _, e := range got {
		if e.Tick != 42 {
			t.Errorf("expected tick 42, got %d", e.Tick)
		}
	}
	if n := b.Drain(); n != 0 {
		t.Errorf("second drain delivered %d events", n)
	}
}

func TestHandlerMayPublish(t *testing.T) {
	b := NewBus()
	var seen []EventType
	b.Subscribe(EventCollected, func(Event) {
		b.Publish(Event{Type: EventCollectionComplete})
	})
	b.SubscribeAll(func(e Event) { seen = append(seen, e.Type) })

	b.Publish(Event{Type: EventCollected})
	if len(seen) != 2 {
		t.Errorf("expected nested publish to be delivered, got %v", seen)
	}
}

func TestEventTypeString(t *testing.T) {
	tests := []struct {
		typ  EventType
		want string
	}{
		{EventArrived, "arrived"},
		{EventModeChanged, "mode_changed"},
		{EventCollectionComplete, "collection_complete"},
		{EventType(0), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}
