package avatar

import (
	"math"
	"time"

	"github.com/Carmen-Shannon/skyfolio/common"
	"github.com/Carmen-Shannon/skyfolio/engine/camera"
	"github.com/Carmen-Shannon/skyfolio/engine/catalog"
	"github.com/Carmen-Shannon/skyfolio/engine/collectible"
	"github.com/Carmen-Shannon/skyfolio/engine/event"
	"github.com/Carmen-Shannon/skyfolio/engine/input"
	"github.com/Carmen-Shannon/skyfolio/engine/physics"
	"github.com/Carmen-Shannon/skyfolio/engine/timer"
)

type controllerImpl struct {
	params  Params
	framing camera.Framing
	start   common.Vec3

	body      physics.Body
	store     collectible.Store
	catalog   *catalog.Catalog
	bus       event.Bus
	scheduler timer.Scheduler
	rig       camera.CameraController
	rigPrimed bool

	refHz           float32
	manualInterrupt bool

	currentVelocity    common.Vec3
	targetVelocity     common.Vec3
	bodyYaw            float32
	bodyYawTarget      float32
	containerYaw       float32
	containerYawTarget float32
	tilt               float32
	tiltTarget         float32
	travelYaw          float32

	run *pathRun

	fadeDuration time.Duration
	fade         fadeState
}

var _ Controller = &controllerImpl{}

// NewController creates a Controller with the default flight tuning and camera framing.
// Without a body the controller does nothing until Mount is called.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(options ...ControllerBuilderOption) Controller {
	c := &controllerImpl{
		params:       DefaultParams(),
		framing:      camera.DefaultFraming(),
		start:        common.V3(0, 10, 0),
		fadeDuration: 300 * time.Millisecond,
	}
	for _, option := range options {
		option(c)
	}
	if c.rig == nil {
		c.rig = camera.NewCameraController()
	}
	return c
}

func (c *controllerImpl) Mount(body physics.Body) {
	c.body = body
	c.rigPrimed = false
}

func (c *controllerImpl) Mounted() bool {
	return c.body != nil
}

func (c *controllerImpl) Position() common.Vec3 {
	if c.body == nil {
		return common.Vec3{}
	}
	return c.body.Translation()
}

func (c *controllerImpl) Rig() camera.CameraController {
	return c.rig
}

func (c *controllerImpl) Mode() Mode {
	if c.run == nil {
		return ModeManual{}
	}
	return ModeFollowingPath{PathState: c.run.state()}
}

func (c *controllerImpl) Tick(dt float32, in input.Intent) Frame {
	if c.body == nil {
		return Frame{}
	}

	p := c.body.Translation()
	moveF := c.factor(c.params.MovementSmoothing, dt)
	rotF := c.factor(c.params.RotationSmoothing, dt)
	tiltF := c.factor(c.params.TiltSpeed, dt)

	if c.run != nil && c.manualInterrupt && in.Any() {
		c.cancelFade()
		c.cancelPath()
	}

	following := c.run != nil
	moving := false
	if following {
		if c.stepPath(p) {
			// The finishing tick leaves the body velocity as is; damping resumes next tick.
			return c.frame(p)
		}
	} else {
		moving = c.steer(dt, in)
	}

	c.currentVelocity = c.currentVelocity.Lerp(c.targetVelocity, moveF)
	c.body.SetLinearVelocity(c.currentVelocity, true)

	c.containerYaw = common.LerpAngle(c.containerYaw, c.containerYawTarget, rotF)
	if following || moving {
		c.bodyYaw = common.LerpAngle(c.bodyYaw, c.bodyYawTarget, rotF)
	}
	c.tilt = common.Lerp(c.tilt, c.tiltTarget, tiltF)

	var goal camera.Pose
	if following {
		goal = c.framing.Side(p, c.containerYaw, c.travelYaw)
	} else {
		goal = c.framing.Chase(p, c.containerYaw)
	}
	if !c.rigPrimed {
		c.rig.Snap(goal)
		c.rigPrimed = true
	} else {
		c.rig.Follow(goal, moveF)
	}

	return c.frame(p)
}

// steer runs the manual branch and reports whether there was horizontal intent.
func (c *controllerImpl) steer(dt float32, in input.Intent) bool {
	x, z := in.Horizontal()
	y := in.Vertical()

	if x != 0 {
		step := c.params.RotationSpeed * x
		if c.refHz > 0 {
			step *= c.params.RotationSmoothing * dt * c.refHz
		} else {
			step *= c.params.RotationSmoothing
		}
		c.containerYawTarget = common.NormalizeAngle(c.containerYawTarget + step)
	}

	moving := x != 0 || z != 0
	if moving {
		c.tiltTarget = c.params.TiltAngle
	} else {
		c.tiltTarget = 0
	}

	switch {
	case moving:
		c.bodyYawTarget = float32(math.Atan2(float64(x), float64(z)))
		heading := float64(c.containerYawTarget + c.bodyYawTarget)
		c.targetVelocity[0] = float32(math.Sin(heading)) * c.params.FlightSpeed
		c.targetVelocity[2] = float32(math.Cos(heading)) * c.params.FlightSpeed
		c.targetVelocity[1] = y * c.params.VerticalSpeed
	case y != 0:
		damping := c.params.HorizontalDamping
		if c.refHz > 0 {
			damping = float32(math.Pow(float64(damping), float64(dt*c.refHz)))
		}
		c.targetVelocity[0] *= damping
		c.targetVelocity[2] *= damping
		c.targetVelocity[1] = y * c.params.VerticalSpeed
	default:
		c.targetVelocity = common.Vec3{}
	}
	return moving
}

// factor returns the smoothing factor for this tick.
func (c *controllerImpl) factor(f, dt float32) float32 {
	if c.refHz > 0 {
		return common.SmoothingFactor(f, dt, c.refHz)
	}
	return f
}

func (c *controllerImpl) frame(p common.Vec3) Frame {
	return Frame{
		Ready:          true,
		Position:       p,
		Velocity:       c.currentVelocity,
		TargetVelocity: c.targetVelocity,
		Yaw:            common.NormalizeAngle(c.containerYaw + c.bodyYaw),
		BodyYaw:        c.bodyYaw,
		ContainerYaw:   c.containerYaw,
		Tilt:           c.tilt,
		Camera:         c.rig.Pose(),
		Mode:           c.Mode(),
		Fade:           c.fadeOpacity(),
	}
}

func (c *controllerImpl) TeleportTo(position common.Vec3, face *common.Vec3) {
	if c.body == nil {
		return
	}
	c.cancelFade()
	c.teleport(position, face)
}

func (c *controllerImpl) teleport(position common.Vec3, face *common.Vec3) {
	c.cancelPath()

	c.body.SetTranslation(position, true)
	c.currentVelocity = common.Vec3{}
	c.targetVelocity = common.Vec3{}
	c.body.SetLinearVelocity(common.Vec3{}, true)

	if face != nil {
		d := face.Sub(position)
		if d.HorizontalLen() > 1e-6 {
			yaw := float32(math.Atan2(float64(d[0]), float64(d[2])))
			c.containerYaw, c.containerYawTarget = yaw, yaw
			c.bodyYaw, c.bodyYawTarget = 0, 0
		}
	}

	c.rig.Snap(c.framing.Chase(position, c.containerYaw))
	c.rigPrimed = true
}

func (c *controllerImpl) Cancel() {
	if c.body == nil {
		return
	}
	c.cancelFade()
	c.cancelPath()
}

func (c *controllerImpl) publish(t event.EventType, payload any) {
	if c.bus != nil {
		c.bus.Publish(event.Event{Type: t, Payload: payload})
	}
}
