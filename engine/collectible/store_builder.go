package collectible

import (
	"github.com/Carmen-Shannon/skyfolio/engine/catalog"
	"github.com/Carmen-Shannon/skyfolio/engine/event"
)

// StoreBuilderOption is a functional option for configuring a Store.
type StoreBuilderOption func(*storeImpl)

// WithWaypoints sets the known waypoints. Ids outside this set are ignored by Collect.
//
// Parameters:
//   - waypoints: the collectible markers
//
// Returns:
//   - StoreBuilderOption: option function to apply
func WithWaypoints(waypoints []catalog.Waypoint) StoreBuilderOption {
	return func(s *storeImpl) {
		for _, w := range waypoints {
			if _, dup := s.waypoints[w.ID]; !dup {
				s.order = append(s.order, w.ID)
			}
			s.waypoints[w.ID] = w
		}
	}
}

// WithTotal overrides the number of collected ids that counts as complete.
//
// Parameters:
//   - total: ids needed for 100 percent
//
// Returns:
//   - StoreBuilderOption: option function to apply
func WithTotal(total int) StoreBuilderOption {
	return func(s *storeImpl) {
		if total >= 0 {
			s.total = total
		}
	}
}

// WithBus publishes collection events on b.
//
// Parameters:
//   - b: the event bus
//
// Returns:
//   - StoreBuilderOption: option function to apply
func WithBus(b event.Bus) StoreBuilderOption {
	return func(s *storeImpl) {
		s.bus = b
	}
}
