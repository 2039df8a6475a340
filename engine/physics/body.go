package physics

import (
	"sync"

	"github.com/Carmen-Shannon/skyfolio/common"
)

// Body is the narrow view of a rigid body the avatar controller needs.
// The physics engine owns integration; callers only read the translation and read or write the
// linear velocity.
type Body interface {
	// Name returns the body's name, used by sensors to identify what entered them.
	//
	// Returns:
	//   - string: the body name
	Name() string

	// Translation returns the body's world-space position.
	//
	// Returns:
	//   - common.Vec3: the current position
	Translation() common.Vec3

	// SetTranslation teleports the body.
	//
	// Parameters:
	//   - p: the new world-space position
	//   - wake: wake the body if it is sleeping
	SetTranslation(p common.Vec3, wake bool)

	// LinearVelocity returns the body's linear velocity.
	//
	// Returns:
	//   - common.Vec3: velocity in units per second
	LinearVelocity() common.Vec3

	// SetLinearVelocity replaces the body's linear velocity.
	//
	// Parameters:
	//   - v: velocity in units per second
	//   - wake: wake the body if it is sleeping
	SetLinearVelocity(v common.Vec3, wake bool)
}

// RigidBody is a Body that the World can integrate and test against sensors.
type RigidBody interface {
	Body

	// Collider returns the body's collision volume in world space.
	//
	// Returns:
	//   - common.AABB: the world-space bounds
	Collider() common.AABB

	// Sleeping reports whether the body is at rest and skipped by integration.
	//
	// Returns:
	//   - bool: true when asleep
	Sleeping() bool

	// Integrate applies damping and gravity, then advances the position by dt seconds.
	//
	// Parameters:
	//   - dt: step duration in seconds
	//   - gravity: world gravity acceleration
	Integrate(dt float32, gravity common.Vec3)
}

// bodyImpl is a dynamic body with a box collider offset from its origin.
// Velocity decays as v *= 1/(1+dt*damping) each step.
type bodyImpl struct {
	mu *sync.Mutex

	name           string
	position       common.Vec3
	velocity       common.Vec3
	linearDamping  float32
	gravityScale   float32
	colliderOffset common.Vec3
	colliderSize   common.Vec3
	sleeping       bool
	sleepThreshold float32
}

var _ RigidBody = &bodyImpl{}

// NewBody creates a dynamic body at the origin with no damping, no gravity and a unit box collider.
//
// Parameters:
//   - options: functional options to configure the body
//
// Returns:
//   - RigidBody: the newly created body
func NewBody(options ...BodyBuilderOption) RigidBody {
	b := &bodyImpl{
		mu:             &sync.Mutex{},
		name:           "body",
		colliderSize:   common.V3(1, 1, 1),
		sleepThreshold: 1e-4,
	}
	for _, option := range options {
		option(b)
	}
	return b
}

func (b *bodyImpl) Name() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.name
}

func (b *bodyImpl) Translation() common.Vec3 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.position
}

func (b *bodyImpl) SetTranslation(p common.Vec3, wake bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.position = p
	if wake {
		b.sleeping = false
	}
}

func (b *bodyImpl) LinearVelocity() common.Vec3 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.velocity
}

func (b *bodyImpl) SetLinearVelocity(v common.Vec3, wake bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.velocity = v
	if wake {
		b.sleeping = false
	}
}

func (b *bodyImpl) Collider() common.AABB {
	b.mu.Lock()
	defer b.mu.Unlock()
	return common.NewAABB(b.position.Add(b.colliderOffset), b.colliderSize)
}

func (b *bodyImpl) Sleeping() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sleeping
}

func (b *bodyImpl) Integrate(dt float32, gravity common.Vec3) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sleeping || dt <= 0 {
		return
	}

	b.velocity = b.velocity.Add(gravity.Scale(b.gravityScale * dt))
	if b.linearDamping > 0 {
		b.velocity = b.velocity.Scale(1 / (1 + dt*b.linearDamping))
	}
	b.position = b.position.Add(b.velocity.Scale(dt))

	if b.gravityScale == 0 && b.velocity.Len() < b.sleepThreshold {
		b.velocity = common.Vec3{}
		b.sleeping = true
	}
}
