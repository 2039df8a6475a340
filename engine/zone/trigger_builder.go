package zone

import (
	"github.com/Carmen-Shannon/skyfolio/common"
	"github.com/Carmen-Shannon/skyfolio/engine/catalog"
	"github.com/Carmen-Shannon/skyfolio/engine/event"
)

// TriggerBuilderOption is a functional option for configuring a Trigger.
type TriggerBuilderOption func(*triggerImpl)

// WithName sets the zone name reported in events.
//
// Parameters:
//   - name: the zone name
//
// Returns:
//   - TriggerBuilderOption: option function to apply
func WithName(name string) TriggerBuilderOption {
	return func(t *triggerImpl) {
		t.name = name
	}
}

// WithDestination associates the zone with a navigation destination.
//
// Parameters:
//   - id: the destination id
//
// Returns:
//   - TriggerBuilderOption: option function to apply
func WithDestination(id catalog.DestinationID) TriggerBuilderOption {
	return func(t *triggerImpl) {
		t.destination = id
	}
}

// WithBox sets the trigger volume.
//
// Parameters:
//   - box: the world-space volume
//
// Returns:
//   - TriggerBuilderOption: option function to apply
func WithBox(box common.AABB) TriggerBuilderOption {
	return func(t *triggerImpl) {
		t.box = box
	}
}

// WithCollider changes which body name the trigger reacts to.
//
// Parameters:
//   - name: the body name
//
// Returns:
//   - TriggerBuilderOption: option function to apply
func WithCollider(name string) TriggerBuilderOption {
	return func(t *triggerImpl) {
		t.collider = name
	}
}

// WithOnEnter sets the callback for enter transitions.
//
// Parameters:
//   - fn: receives true on the first ever enter
//
// Returns:
//   - TriggerBuilderOption: option function to apply
func WithOnEnter(fn func(firstVisit bool)) TriggerBuilderOption {
	return func(t *triggerImpl) {
		t.onEnter = fn
	}
}

// WithOnExit sets the callback for exit transitions.
//
// Parameters:
//   - fn: the callback
//
// Returns:
//   - TriggerBuilderOption: option function to apply
func WithOnExit(fn func()) TriggerBuilderOption {
	return func(t *triggerImpl) {
		t.onExit = fn
	}
}

// WithBus publishes zone transitions on b.
//
// Parameters:
//   - b: the event bus
//
// Returns:
//   - TriggerBuilderOption: option function to apply
func WithBus(b event.Bus) TriggerBuilderOption {
	return func(t *triggerImpl) {
		t.bus = b
	}
}
