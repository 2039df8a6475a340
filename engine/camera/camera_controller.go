package camera

import "github.com/Carmen-Shannon/skyfolio/common"

// Pose is a camera eye position and the point it looks at.
type Pose struct {
	Eye    common.Vec3 `json:"eye"`
	LookAt common.Vec3 `json:"look_at"`
}

// CameraController owns the camera's positional state. The eye and look-at point are each eased
// toward a goal pose every tick; orientation is never interpolated directly and is always derived
// from the two positions by the Camera.
type CameraController interface {
	// Position returns the camera's world-space eye position.
	//
	// Returns:
	//   - common.Vec3: the eye position
	Position() common.Vec3

	// Target returns the look-at point.
	//
	// Returns:
	//   - common.Vec3: the world-space look-at point
	Target() common.Vec3

	// Pose returns the eye and look-at point together.
	//
	// Returns:
	//   - Pose: the current pose
	Pose() Pose

	// Follow eases the eye and look-at point toward goal independently by factor t.
	//
	// Parameters:
	//   - goal: the pose to approach
	//   - t: interpolation factor in [0, 1]
	//
	// Returns:
	//   - Pose: the pose after easing
	Follow(goal Pose, t float32) Pose

	// Snap jumps straight to goal, used after teleports so the camera does not sweep across the map.
	//
	// Parameters:
	//   - goal: the new pose
	Snap(goal Pose)

	// Forward returns the unit view direction from eye to look-at point, or zero if they coincide.
	//
	// Returns:
	//   - common.Vec3: the view direction
	Forward() common.Vec3
}
