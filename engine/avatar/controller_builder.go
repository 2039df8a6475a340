package avatar

import (
	"time"

	"github.com/Carmen-Shannon/skyfolio/common"
	"github.com/Carmen-Shannon/skyfolio/engine/camera"
	"github.com/Carmen-Shannon/skyfolio/engine/catalog"
	"github.com/Carmen-Shannon/skyfolio/engine/collectible"
	"github.com/Carmen-Shannon/skyfolio/engine/event"
	"github.com/Carmen-Shannon/skyfolio/engine/physics"
	"github.com/Carmen-Shannon/skyfolio/engine/timer"
)

// ControllerBuilderOption is a functional option for configuring a Controller.
type ControllerBuilderOption func(*controllerImpl)

// WithBody mounts the body the controller drives.
//
// Parameters:
//   - body: the physics body
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithBody(body physics.Body) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.body = body
	}
}

// WithParams replaces the flight tuning.
//
// Parameters:
//   - p: the movement constants
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithParams(p Params) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.params = p
	}
}

// WithFraming replaces the camera offsets.
//
// Parameters:
//   - f: the camera framing
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithFraming(f camera.Framing) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.framing = f
	}
}

// WithCatalog supplies destination targets and the start coordinate.
//
// Parameters:
//   - cat: the island catalog
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithCatalog(cat *catalog.Catalog) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.catalog = cat
		if cat != nil {
			c.start = cat.Start
		}
	}
}

// WithStart sets the safe coordinate paths start from when the avatar is away from their first
// waypoint.
//
// Parameters:
//   - p: the start coordinate
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithStart(p common.Vec3) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.start = p
	}
}

// WithStore supplies the collected set used for path truncation and waypoint collection.
//
// Parameters:
//   - s: the collectible store
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithStore(s collectible.Store) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.store = s
	}
}

// WithBus publishes mode, arrival, cancellation and waypoint events on b.
//
// Parameters:
//   - b: the event bus
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithBus(b event.Bus) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.bus = b
	}
}

// WithScheduler enables fade transitions timed on s. Without a scheduler fades complete instantly.
//
// Parameters:
//   - s: the tick scheduler
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithScheduler(s timer.Scheduler) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.scheduler = s
	}
}

// WithCameraController replaces the camera rig the controller eases.
//
// Parameters:
//   - cc: the camera controller
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithCameraController(cc camera.CameraController) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.rig = cc
	}
}

// WithFadeDuration sets the length of each half of a fade transition. 0 disables fading.
//
// Parameters:
//   - d: fade-out and fade-in duration
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithFadeDuration(d time.Duration) ControllerBuilderOption {
	return func(c *controllerImpl) {
		if d < 0 {
			d = 0
		}
		c.fadeDuration = d
	}
}

// WithFrameRateIndependence converts the per-tick smoothing factors, tuned at refHz, to factors that
// give the same motion at any tick rate: f becomes 1-(1-f)^(dt*refHz). The steering step and the
// horizontal damping are scaled the same way. 0 keeps per-tick factors.
//
// Parameters:
//   - refHz: the tick rate the factors were tuned at
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithFrameRateIndependence(refHz float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		if refHz < 0 {
			refHz = 0
		}
		c.refHz = refHz
	}
}

// WithManualInterrupt makes live keyboard intent cancel a path in flight. The path's callback is
// dropped. Off by default: scripted flights ignore the keyboard.
//
// Parameters:
//   - enabled: whether intent interrupts paths
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithManualInterrupt(enabled bool) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.manualInterrupt = enabled
	}
}
