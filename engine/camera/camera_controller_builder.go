package camera

import "github.com/Carmen-Shannon/skyfolio/common"

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithPosition sets the initial eye position.
//
// Parameters:
//   - p: world-space eye position
//
// Returns:
//   - CameraControllerOption: functional option to set the position
func WithPosition(p common.Vec3) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.position = p
	}
}

// WithTarget sets the initial look-at point.
//
// Parameters:
//   - p: world-space look-at point
//
// Returns:
//   - CameraControllerOption: functional option to set the target position
func WithTarget(p common.Vec3) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.target = p
	}
}

// WithPose sets both the eye and the look-at point.
//
// Parameters:
//   - p: the initial pose
//
// Returns:
//   - CameraControllerOption: functional option to set the pose
func WithPose(p Pose) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.position = p.Eye
		cc.target = p.LookAt
	}
}
