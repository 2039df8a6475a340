package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/skyfolio/common"
)

// Lens is the perspective the follow camera projects through.
type Lens struct {
	// Fov is the vertical field of view in radians.
	Fov float32
	// Aspect is width over height.
	Aspect float32
	Near   float32
	Far    float32
}

// DefaultLens returns a 45 degree, 16:9 perspective reaching 2000 units.
func DefaultLens() Lens {
	return Lens{Fov: 45.0 * math.Pi / 180.0, Aspect: 16.0 / 9.0, Near: 0.1, Far: 2000}
}

type cameraImpl struct {
	mu *sync.Mutex

	up   common.Vec3
	lens Lens

	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32
	frustum              common.Frustum

	controller CameraController
}

// Camera projects the pose of a CameraController through a Lens. Each Update recomputes the
// view, projection and view-projection matrices and the frustum used for visibility tests.
type Camera interface {
	// Lens returns the current perspective settings.
	Lens() Lens

	// SetLens replaces the perspective settings and recomputes matrices.
	//
	// Parameters:
	//   - lens: the new perspective
	SetLens(lens Lens)

	// SetAspect changes only the aspect ratio, for viewport resizes.
	SetAspect(aspect float32)

	// ViewMatrix returns the current 4x4 view matrix as 16 floats (column-major).
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current 4x4 projection matrix as 16 floats (column-major).
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns the current combined view-projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: projection * view
	ViewProjectionMatrix() [16]float32

	// Visible reports whether a box intersects the frustum from the last Update.
	//
	// Parameters:
	//   - box: the volume to test
	//
	// Returns:
	//   - bool: false if the box is certainly off screen
	Visible(box common.AABB) bool

	// Controller returns the attached CameraController, or nil.
	Controller() CameraController

	// SetController attaches a CameraController and recomputes matrices from its pose.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl CameraController)

	// Update reads the controller pose and recomputes matrices.
	// Call once per tick after the controller has moved. Without a controller it does nothing.
	Update()
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera with DefaultLens and a +Y up vector.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:                   &sync.Mutex{},
		up:                   common.V3(0, 1, 0),
		lens:                 DefaultLens(),
		viewMatrix:           identity,
		projectionMatrix:     identity,
		viewProjectionMatrix: identity,
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

var identity = [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

func (c *cameraImpl) Lens() Lens {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lens
}

func (c *cameraImpl) SetLens(lens Lens) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lens = lens
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lens.Aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Visible(box common.AABB) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller == nil {
		return false
	}
	return c.frustum.IntersectsAABB(box)
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
	c.updateMatrices()
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateMatrices()
}

// updateMatrices recalculates the matrices and frustum from the controller pose.
// This is a no-op when the controller is nil. Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	if c.controller == nil {
		return
	}

	pose := c.controller.Pose()
	l := c.lens
	common.LookAt(c.viewMatrix[:], pose.Eye, pose.LookAt, c.up)
	common.Perspective(c.projectionMatrix[:], l.Fov, l.Aspect, l.Near, l.Far)
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
	c.frustum = common.ExtractFrustumFromMatrix(c.viewProjectionMatrix[:])
}
