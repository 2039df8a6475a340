package physics

import "github.com/Carmen-Shannon/skyfolio/common"

// BodyBuilderOption is a functional option for configuring a RigidBody.
type BodyBuilderOption func(*bodyImpl)

// WithName sets the name sensors see when the body overlaps them.
//
// Parameters:
//   - name: the body name
//
// Returns:
//   - BodyBuilderOption: option function to apply
func WithName(name string) BodyBuilderOption {
	return func(b *bodyImpl) {
		b.name = name
	}
}

// WithPosition sets the initial world-space position.
//
// Parameters:
//   - p: starting position
//
// Returns:
//   - BodyBuilderOption: option function to apply
func WithPosition(p common.Vec3) BodyBuilderOption {
	return func(b *bodyImpl) {
		b.position = p
	}
}

// WithLinearDamping sets the per-second linear damping coefficient.
//
// Parameters:
//   - damping: non-negative damping coefficient
//
// Returns:
//   - BodyBuilderOption: option function to apply
func WithLinearDamping(damping float32) BodyBuilderOption {
	return func(b *bodyImpl) {
		if damping < 0 {
			damping = 0
		}
		b.linearDamping = damping
	}
}

// WithGravityScale scales world gravity for this body. 0 makes the body float.
//
// Parameters:
//   - scale: gravity multiplier
//
// Returns:
//   - BodyBuilderOption: option function to apply
func WithGravityScale(scale float32) BodyBuilderOption {
	return func(b *bodyImpl) {
		b.gravityScale = scale
	}
}

// WithCapsuleCollider approximates a capsule collider by its bounding box.
//
// Parameters:
//   - halfHeight: half the length of the capsule's cylindrical section
//   - radius: capsule radius
//   - offset: collider center relative to the body origin
//
// Returns:
//   - BodyBuilderOption: option function to apply
func WithCapsuleCollider(halfHeight, radius float32, offset common.Vec3) BodyBuilderOption {
	return func(b *bodyImpl) {
		b.colliderSize = common.V3(2*radius, 2*(halfHeight+radius), 2*radius)
		b.colliderOffset = offset
	}
}

// WithBoxCollider sets a box collider.
//
// Parameters:
//   - size: full extents of the box
//   - offset: box center relative to the body origin
//
// Returns:
//   - BodyBuilderOption: option function to apply
func WithBoxCollider(size, offset common.Vec3) BodyBuilderOption {
	return func(b *bodyImpl) {
		b.colliderSize = size
		b.colliderOffset = offset
	}
}
