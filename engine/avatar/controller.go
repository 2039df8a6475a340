// Package avatar implements the avatar movement and camera-follow controller: a per-tick state
// machine that blends keyboard steering with scripted waypoint flights, eases orientation and camera
// framing, and collects waypoint markers along the way.
//
// The controller is not safe for concurrent use. Every method must be called from the goroutine
// that calls Tick; arrival callbacks run on that goroutine too.
package avatar

import (
	"github.com/Carmen-Shannon/skyfolio/common"
	"github.com/Carmen-Shannon/skyfolio/engine/camera"
	"github.com/Carmen-Shannon/skyfolio/engine/catalog"
	"github.com/Carmen-Shannon/skyfolio/engine/input"
	"github.com/Carmen-Shannon/skyfolio/engine/physics"
)

// Frame is the controller's output for one tick.
type Frame struct {
	// Ready is false when no body is mounted; every other field is then zero.
	Ready bool
	// Position is the body translation read at the start of the tick.
	Position common.Vec3
	// Velocity is the smoothed velocity written to the body.
	Velocity common.Vec3
	// TargetVelocity is the velocity the smoothing is easing toward.
	TargetVelocity common.Vec3
	// Yaw is the avatar's world facing: ContainerYaw plus BodyYaw.
	Yaw float32
	// BodyYaw is the avatar's facing relative to the steering heading.
	BodyYaw float32
	// ContainerYaw is the steering heading the chase camera orbits with.
	ContainerYaw float32
	// Tilt is the cosmetic banking angle.
	Tilt float32
	// Camera is the eased camera pose.
	Camera camera.Pose
	// Mode is the movement mode after the tick.
	Mode Mode
	// Fade is the transition overlay opacity, 0 clear and 1 fully white.
	Fade float32
}

// Controller drives one avatar body.
type Controller interface {
	// Tick advances the controller by one simulation step. It reads the body translation, runs the
	// manual or path branch, writes the smoothed velocity to the body and eases the camera.
	//
	// Parameters:
	//   - dt: step duration in seconds
	//   - in: keyboard intent sampled for this tick
	//
	// Returns:
	//   - Frame: the resulting pose, camera and mode
	Tick(dt float32, in input.Intent) Frame

	// MoveTo starts a scripted flight to a destination.
	//
	// With nil waypoints the path is the destination's target alone. Otherwise, if the last
	// collected waypoint appears in waypoints the flight starts just after it; if not, the path is
	// prefixed with the current position when that lies within the snap radius of the first
	// waypoint, else with the start coordinate. A path that resolves to nothing arrives immediately
	// and onArrived runs before MoveTo returns. Any path in flight is cancelled without its callback.
	//
	// Parameters:
	//   - dest: the destination id, reported in arrival events
	//   - waypoints: the destination's waypoints, or nil for a direct flight
	//   - onArrived: called once on arrival; may be nil
	MoveTo(dest catalog.DestinationID, waypoints []common.Vec3, onArrived func())

	// FollowPath flies path exactly as given. Any path in flight is cancelled without its callback.
	//
	// Parameters:
	//   - path: the points to fly through; empty arrives immediately
	//   - onComplete: called once on arrival; may be nil
	FollowPath(path []common.Vec3, onComplete func())

	// TeleportTo moves the body without integration, zeroes both velocities and cancels any path
	// without its callback. The camera snaps to the new position.
	//
	// Parameters:
	//   - position: the new world position
	//   - face: optional point to turn toward; nil keeps the current heading
	TeleportTo(position common.Vec3, face *common.Vec3)

	// Skip jumps to the last waypoint of the path in flight. Waypoints in between are not collected.
	// The callback fires on the next Tick. Does nothing in manual mode.
	Skip()

	// Cancel abandons the path in flight without its callback and returns to manual mode.
	Cancel()

	// MoveToWithFade fades out, calls MoveTo, then fades back in.
	//
	// Parameters:
	//   - dest: the destination id
	//   - waypoints: the destination's waypoints, or nil
	//   - onArrived: called once on arrival; may be nil
	MoveToWithFade(dest catalog.DestinationID, waypoints []common.Vec3, onArrived func())

	// TeleportWithFade fades out, calls TeleportTo, then fades back in and calls onDone.
	//
	// Parameters:
	//   - position: the new world position
	//   - face: optional point to turn toward
	//   - onDone: called after the fade in; may be nil
	TeleportWithFade(position common.Vec3, face *common.Vec3, onDone func())

	// Mount attaches the body the controller drives. A nil body unmounts it.
	//
	// Parameters:
	//   - body: the physics body
	Mount(body physics.Body)

	// Mounted reports whether a body is attached.
	Mounted() bool

	// Position returns the body translation, or zero when unmounted.
	Position() common.Vec3

	// Mode returns the current movement mode.
	Mode() Mode

	// Rig returns the camera rig the controller eases each tick.
	Rig() camera.CameraController
}
