package event

import (
	"sort"
	"sync"
)

// Handler receives published events.
type Handler func(Event)

// Bus is a typed observer hub between the simulation and its listeners.
//
// Publish dispatches synchronously on the caller's goroutine, which for the simulation is the tick
// goroutine. Post may be called from any goroutine; posted events are held until Drain.
type Bus interface {
	// Subscribe registers h for events of type t.
	//
	// Parameters:
	//   - t: the event type to listen for
	//   - h: the handler to call
	//
	// Returns:
	//   - func(): removes the subscription; safe to call more than once
	Subscribe(t EventType, h Handler) func()

	// SubscribeAll registers h for every event type.
	//
	// Parameters:
	//   - h: the handler to call
	//
	// Returns:
	//   - func(): removes the subscription; safe to call more than once
	SubscribeAll(h Handler) func()

	// Publish delivers e to all matching handlers in subscription order.
	// Events published with a zero Tick are stamped with the bus's current tick.
	//
	// Parameters:
	//   - e: the event to deliver
	Publish(e Event)

	// Post queues e for delivery on the next Drain. Safe for concurrent use.
	//
	// Parameters:
	//   - e: the event to queue
	Post(e Event)

	// Drain publishes all posted events in FIFO order.
	//
	// Returns:
	//   - int: the number of events delivered
	Drain() int

	// SetTick sets the tick stamped onto events published without one.
	//
	// Parameters:
	//   - tick: the current simulation tick
	SetTick(tick uint64)
}

type subscription struct {
	id      uint64
	all     bool
	typ     EventType
	handler Handler
}

type busImpl struct {
	mu      sync.Mutex
	nextID  uint64
	subs    map[uint64]subscription
	pending []Event
	tick    uint64
}

var _ Bus = &busImpl{}

// NewBus creates an empty Bus.
//
// Returns:
//   - Bus: the newly created bus
func NewBus() Bus {
	return &busImpl{
		subs: make(map[uint64]subscription),
	}
}

func (b *busImpl) Subscribe(t EventType, h Handler) func() {
	return b.add(subscription{typ: t, handler: h})
}

func (b *busImpl) SubscribeAll(h Handler) func() {
	return b.add(subscription{all: true, handler: h})
}

func (b *busImpl) add(s subscription) func() {
	b.mu.Lock()
	b.nextID++
	s.id = b.nextID
	b.subs[s.id] = s
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, s.id)
		b.mu.Unlock()
	}
}

func (b *busImpl) Publish(e Event) {
	b.mu.Lock()
	if e.Tick == 0 {
		e.Tick = b.tick
	}
	matched := make([]subscription, 0, len(b.subs))
	for _, s := range b.subs {
		if s.all || s.typ == e.Type {
			matched = append(matched, s)
		}
	}
	b.mu.Unlock()

	// handlers run outside the lock so they may publish or unsubscribe
	sort.Slice(matched, func(i, j int) bool { return matched[i].id < matched[j].id })
	for _, s := range matched {
		s.handler(e)
	}
}

func (b *busImpl) Post(e Event) {
	b.mu.Lock()
	b.pending = append(b.pending, e)
	b.mu.Unlock()
}

func (b *busImpl) Drain() int {
	b.mu.Lock()
	queued := b.pending
	b.pending = nil
	b.mu.Unlock()

	for _, e := range queued {
		b.Publish(e)
	}
	return len(queued)
}

func (b *busImpl) SetTick(tick uint64) {
	b.mu.Lock()
	b.tick = tick
	b.mu.Unlock()
}
