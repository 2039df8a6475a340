package camera

import "github.com/Carmen-Shannon/skyfolio/common"

// CameraBuilderOption is a functional option for configuring a Camera.
type CameraBuilderOption func(*cameraImpl)

// WithLens sets the perspective.
//
// Parameters:
//   - lens: field of view, aspect and clip planes
//
// Returns:
//   - CameraBuilderOption: functional option to set the lens
func WithLens(lens Lens) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.lens = lens
	}
}

// WithUp sets the camera's up vector.
func WithUp(up common.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = up
	}
}

// WithController attaches a controller to the camera.
// After all options are applied, the camera recomputes its matrices from the controller's state.
//
// Parameters:
//   - ctrl: the controller to attach
//
// Returns:
//   - CameraBuilderOption: functional option to set the controller
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}
