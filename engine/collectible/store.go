// Package collectible tracks which waypoint markers the avatar has picked up.
package collectible

import (
	"sync"

	"github.com/Carmen-Shannon/skyfolio/common"
	"github.com/Carmen-Shannon/skyfolio/engine/catalog"
	"github.com/Carmen-Shannon/skyfolio/engine/event"
)

// Store is the shared collected set. Membership is monotonic: ids are only ever added.
type Store interface {
	// Collect adds a known id to the collected set. Collecting an id twice, or an id that is not a
	// known waypoint, has no effect.
	//
	// Parameters:
	//   - id: the waypoint id
	//
	// Returns:
	//   - bool: true if the id was newly collected
	Collect(id int) bool

	// IsCollected reports whether id has been collected.
	//
	// Parameters:
	//   - id: the waypoint id
	//
	// Returns:
	//   - bool: true if collected
	IsCollected(id int) bool

	// Percentage returns |collected| / total * 100, capped at 100. A zero total reports 0.
	//
	// Returns:
	//   - float32: completion percentage
	Percentage() float32

	// Count returns the number of collected ids.
	Count() int

	// Total returns the number of ids needed for completion.
	Total() int

	// Collected returns the collected ids in the order they were collected.
	//
	// Returns:
	//   - []int: a copy of the collection history
	Collected() []int

	// LastCollected returns the most recently collected id.
	//
	// Returns:
	//   - int: the id
	//   - bool: false if nothing has been collected
	LastCollected() (int, bool)

	// LastCollectedPosition returns the position of the most recently collected waypoint.
	//
	// Returns:
	//   - common.Vec3: the waypoint position
	//   - bool: false if nothing has been collected
	LastCollectedPosition() (common.Vec3, bool)

	// WaypointNear finds a known waypoint within eps of p.
	//
	// Parameters:
	//   - p: the position to test
	//   - eps: match tolerance
	//
	// Returns:
	//   - int: the waypoint id
	//   - bool: false if none matches
	WaypointNear(p common.Vec3, eps float32) (int, bool)

	// Waypoints returns every known waypoint.
	Waypoints() []catalog.Waypoint

	// OnComplete registers fn to run once when the percentage first reaches 100.
	// Listeners run on the goroutine that called Collect.
	//
	// Parameters:
	//   - fn: the listener
	OnComplete(fn func())
}

type storeImpl struct {
	mu *sync.Mutex

	waypoints map[int]catalog.Waypoint
	order     []int
	collected map[int]bool
	history   []int
	total     int
	complete  bool

	listeners []func()
	bus       event.Bus
}

var _ Store = &storeImpl{}

// NewStore creates an empty Store. Without WithTotal the total is the number of known waypoints.
//
// Parameters:
//   - options: functional options to configure the store
//
// Returns:
//   - Store: the newly created store
func NewStore(options ...StoreBuilderOption) Store {
	s := &storeImpl{
		mu:        &sync.Mutex{},
		waypoints: make(map[int]catalog.Waypoint),
		collected: make(map[int]bool),
		total:     -1,
	}
	for _, option := range options {
		option(s)
	}
	if s.total < 0 {
		s.total = len(s.waypoints)
	}
	return s
}

func (s *storeImpl) Collect(id int) bool {
	s.mu.Lock()
	if _, known := s.waypoints[id]; !known || s.collected[id] {
		s.mu.Unlock()
		return false
	}
	s.collected[id] = true
	s.history = append(s.history, id)

	pct := s.percentage()
	count := len(s.history)
	completed := !s.complete && pct >= 100
	if completed {
		s.complete = true
	}
	listeners := append([]func(){}, s.listeners...)
	bus := s.bus
	total := s.total
	s.mu.Unlock()

	payload := event.CollectedPayload{ID: id, Count: count, Total: total, Percentage: pct}
	if bus != nil {
		bus.Publish(event.Event{Type: event.EventCollected, Payload: payload})
	}
	if completed {
		if bus != nil {
			bus.Publish(event.Event{Type: event.EventCollectionComplete, Payload: payload})
		}
		for _, fn := range listeners {
			fn()
		}
	}
	return true
}

func (s *storeImpl) IsCollected(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collected[id]
}

func (s *storeImpl) Percentage() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.percentage()
}

// percentage assumes the caller holds the mutex.
func (s *storeImpl) percentage() float32 {
	if s.total <= 0 {
		return 0
	}
	pct := float32(len(s.history)) / float32(s.total) * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}

func (s *storeImpl) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

func (s *storeImpl) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

func (s *storeImpl) Collected() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.history...)
}

func (s *storeImpl) LastCollected() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) == 0 {
		return 0, false
	}
	return s.history[len(s.history)-1], true
}

func (s *storeImpl) LastCollectedPosition() (common.Vec3, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) == 0 {
		return common.Vec3{}, false
	}
	return s.waypoints[s.history[len(s.history)-1]].Position, true
}

func (s *storeImpl) WaypointNear(p common.Vec3, eps float32) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.order {
		if s.waypoints[id].Position.Near(p, eps) {
			return id, true
		}
	}
	return 0, false
}

func (s *storeImpl) Waypoints() []catalog.Waypoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]catalog.Waypoint, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.waypoints[id])
	}
	return out
}

func (s *storeImpl) OnComplete(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}
