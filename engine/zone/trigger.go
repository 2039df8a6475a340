// Package zone turns raw sensor overlap callbacks into debounced enter and exit transitions for the
// destination trigger volumes.
package zone

import (
	"sync"

	"github.com/Carmen-Shannon/skyfolio/common"
	"github.com/Carmen-Shannon/skyfolio/engine/catalog"
	"github.com/Carmen-Shannon/skyfolio/engine/event"
)

// CharacterCollider is the body name the avatar is registered under.
const CharacterCollider = "character"

// Trigger is a named volume that reports when the avatar enters or leaves it.
type Trigger interface {
	// Name returns the zone name.
	Name() string

	// Destination returns the destination whose overlay this zone opens, if any.
	Destination() catalog.DestinationID

	// Box returns the trigger volume.
	Box() common.AABB

	// Inside reports whether the avatar is currently inside the zone.
	Inside() bool

	// Visited reports whether the avatar has ever entered the zone, or it was marked visited.
	Visited() bool

	// MarkVisited latches the visited flag. It is never cleared.
	MarkVisited()

	// HandleEnter feeds a raw overlap-start event. Events for other bodies and repeated enters are
	// ignored.
	//
	// Parameters:
	//   - other: name of the body that started overlapping
	//
	// Returns:
	//   - bool: true if this produced an enter transition
	HandleEnter(other string) bool

	// HandleExit feeds a raw overlap-end event. Events for other bodies and repeated exits are ignored.
	//
	// Parameters:
	//   - other: name of the body that stopped overlapping
	//
	// Returns:
	//   - bool: true if this produced an exit transition
	HandleExit(other string) bool
}

type triggerImpl struct {
	mu *sync.Mutex

	name        string
	destination catalog.DestinationID
	box         common.AABB
	collider    string

	inside  bool
	visited bool

	onEnter func(firstVisit bool)
	onExit  func()
	bus     event.Bus
}

var _ Trigger = &triggerImpl{}

// NewTrigger creates a Trigger that listens for the avatar's collider.
//
// Parameters:
//   - options: functional options to configure the trigger
//
// Returns:
//   - Trigger: the newly created trigger
func NewTrigger(options ...TriggerBuilderOption) Trigger {
	t := &triggerImpl{
		mu:       &sync.Mutex{},
		collider: CharacterCollider,
	}
	for _, option := range options {
		option(t)
	}
	return t
}

// FromSpec creates a Trigger for a catalog zone.
//
// Parameters:
//   - spec: the zone definition
//   - options: additional options applied after the spec
//
// Returns:
//   - Trigger: the newly created trigger
func FromSpec(spec catalog.ZoneSpec, options ...TriggerBuilderOption) Trigger {
	base := []TriggerBuilderOption{
		WithName(spec.Name),
		WithDestination(spec.Destination),
		WithBox(spec.Box()),
	}
	return NewTrigger(append(base, options...)...)
}

func (t *triggerImpl) Name() string {
	return t.name
}

func (t *triggerImpl) Destination() catalog.DestinationID {
	return t.destination
}

func (t *triggerImpl) Box() common.AABB {
	return t.box
}

func (t *triggerImpl) Inside() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inside
}

func (t *triggerImpl) Visited() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.visited
}

func (t *triggerImpl) MarkVisited() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.visited = true
}

func (t *triggerImpl) HandleEnter(other string) bool {
	t.mu.Lock()
	if other != t.collider || t.inside {
		t.mu.Unlock()
		return false
	}
	t.inside = true
	first := !t.visited
	t.visited = true
	onEnter := t.onEnter
	t.mu.Unlock()

	if t.bus != nil {
		t.bus.Publish(event.Event{
			Type: event.EventZoneEnter,
			Payload: event.ZonePayload{
				Name:        t.name,
				Destination: string(t.destination),
				FirstVisit:  first,
			},
		})
	}
	if onEnter != nil {
		onEnter(first)
	}
	return true
}

func (t *triggerImpl) HandleExit(other string) bool {
	t.mu.Lock()
	if other != t.collider || !t.inside {
		t.mu.Unlock()
		return false
	}
	t.inside = false
	onExit := t.onExit
	t.mu.Unlock()

	if t.bus != nil {
		t.bus.Publish(event.Event{
			Type: event.EventZoneExit,
			Payload: event.ZonePayload{
				Name:        t.name,
				Destination: string(t.destination),
			},
		})
	}
	if onExit != nil {
		onExit()
	}
	return true
}
