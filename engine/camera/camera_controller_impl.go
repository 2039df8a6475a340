package camera

import (
	"sync"

	"github.com/Carmen-Shannon/skyfolio/common"
)

// cameraControllerImpl is the follow rig behind the avatar.
type cameraControllerImpl struct {
	mu *sync.Mutex

	position common.Vec3
	target   common.Vec3
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a follow controller at the origin.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu: &sync.Mutex{},
	}
	for _, option := range options {
		option(cc)
	}
	return cc
}

func (cc *cameraControllerImpl) Position() common.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *cameraControllerImpl) Target() common.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *cameraControllerImpl) Pose() Pose {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return Pose{Eye: cc.position, LookAt: cc.target}
}

func (cc *cameraControllerImpl) Follow(goal Pose, t float32) Pose {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = cc.position.Lerp(goal.Eye, t)
	cc.target = cc.target.Lerp(goal.LookAt, t)
	return Pose{Eye: cc.position, LookAt: cc.target}
}

func (cc *cameraControllerImpl) Snap(goal Pose) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = goal.Eye
	cc.target = goal.LookAt
}

func (cc *cameraControllerImpl) Forward() common.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	d := cc.target.Sub(cc.position)
	if d.Len() < 1e-8 {
		return common.Vec3{}
	}
	return d.Normalize()
}
