package camera

import "github.com/Carmen-Shannon/skyfolio/common"

// Framing holds the avatar-local camera offsets. Offsets are expressed in the heading frame, where
// +z is the direction the avatar steers toward.
type Framing struct {
	// ChaseOffset places the eye behind and above the avatar during manual flight.
	ChaseOffset common.Vec3 `yaml:"chase_offset"`
	// PathOffset swings the eye out to the side while following a path so the route stays visible.
	PathOffset common.Vec3 `yaml:"path_offset"`
	// LookAtOffset is the point ahead of the avatar the camera aims at.
	LookAtOffset common.Vec3 `yaml:"look_at_offset"`
}

// DefaultFraming returns the island's camera offsets.
func DefaultFraming() Framing {
	return Framing{
		ChaseOffset:  common.V3(0, 30, -50),
		PathOffset:   common.V3(-100, 30, -50),
		LookAtOffset: common.V3(0, 0, 25),
	}
}

// Chase returns the manual-flight goal: eye and look-at point both rotate rigidly with the heading.
//
// Parameters:
//   - avatar: avatar world position
//   - heading: steering yaw in radians
//
// Returns:
//   - Pose: the goal pose
func (f Framing) Chase(avatar common.Vec3, heading float32) Pose {
	return Pose{
		Eye:    avatar.Add(f.ChaseOffset.RotateY(heading)),
		LookAt: avatar.Add(f.LookAtOffset.RotateY(heading)),
	}
}

// Side returns the path-following goal: the eye sits at the side offset around the heading while the
// look-at point leads the avatar along its direction of travel.
//
// Parameters:
//   - avatar: avatar world position
//   - heading: steering yaw in radians
//   - travel: world yaw of the direction of travel
//
// Returns:
//   - Pose: the goal pose
func (f Framing) Side(avatar common.Vec3, heading, travel float32) Pose {
	return Pose{
		Eye:    avatar.Add(f.PathOffset.RotateY(heading)),
		LookAt: avatar.Add(f.LookAtOffset.RotateY(travel)),
	}
}
