package physics

import "github.com/Carmen-Shannon/skyfolio/common"

// WorldBuilderOption is a functional option for configuring a World.
type WorldBuilderOption func(*worldImpl)

// WithGravity sets the world gravity acceleration.
//
// Parameters:
//   - g: gravity vector in units per second squared
//
// Returns:
//   - WorldBuilderOption: option function to apply
func WithGravity(g common.Vec3) WorldBuilderOption {
	return func(w *worldImpl) {
		w.gravity = g
	}
}

// WithBody registers a body during construction.
//
// Parameters:
//   - b: the body to add
//
// Returns:
//   - WorldBuilderOption: option function to apply
func WithBody(b RigidBody) WorldBuilderOption {
	return func(w *worldImpl) {
		w.bodies = append(w.bodies, b)
	}
}
