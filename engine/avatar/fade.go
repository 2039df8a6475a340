package avatar

import (
	"time"

	"github.com/Carmen-Shannon/skyfolio/common"
	"github.com/Carmen-Shannon/skyfolio/engine/catalog"
)

// fadeState ramps the overlay opacity between two values over the fade duration, measured on the
// scheduler clock.
type fadeState struct {
	from, to   float32
	startedAt  time.Duration
	generation uint64
	pending    []func()
}

func (c *controllerImpl) fadeOpacity() float32 {
	if c.scheduler == nil || c.fadeDuration <= 0 {
		return 0
	}
	elapsed := c.scheduler.Now() - c.fade.startedAt
	t := float32(elapsed) / float32(c.fadeDuration)
	if t >= 1 {
		return c.fade.to
	}
	if t < 0 {
		t = 0
	}
	return common.Lerp(c.fade.from, c.fade.to, t)
}

// rampFade starts a ramp from the current opacity to target.
func (c *controllerImpl) rampFade(target float32) {
	c.fade.from = c.fadeOpacity()
	c.fade.to = target
	c.fade.startedAt = c.scheduler.Now()
}

// cancelFade abandons any fade in progress and clears the overlay.
func (c *controllerImpl) cancelFade() {
	for _, cancel := range c.fade.pending {
		cancel()
	}
	c.fade.pending = nil
	c.fade.generation++
	c.fade.from, c.fade.to = 0, 0
}

// fades reports whether transitions are animated.
func (c *controllerImpl) fades() bool {
	return c.scheduler != nil && c.fadeDuration > 0
}

// after schedules fn for the fade generation current at call time; fn is skipped if another
// transition has started since.
func (c *controllerImpl) after(fn func()) {
	gen := c.fade.generation
	cancel := c.scheduler.After(c.fadeDuration, func() {
		if c.fade.generation != gen {
			return
		}
		fn()
	})
	c.fade.pending = append(c.fade.pending, cancel)
}

func (c *controllerImpl) MoveToWithFade(dest catalog.DestinationID, waypoints []common.Vec3, onArrived func()) {
	if c.body == nil {
		return
	}
	c.cancelFade()
	if !c.fades() {
		c.moveTo(dest, waypoints, onArrived)
		return
	}

	gen := c.fade.generation
	c.rampFade(1)
	c.after(func() {
		c.fade.pending = nil
		c.moveTo(dest, waypoints, onArrived)
		if c.fade.generation == gen {
			c.rampFade(0)
		}
	})
}

func (c *controllerImpl) TeleportWithFade(position common.Vec3, face *common.Vec3, onDone func()) {
	if c.body == nil {
		return
	}
	c.cancelFade()
	if !c.fades() {
		c.teleport(position, face)
		if onDone != nil {
			onDone()
		}
		return
	}

	var target *common.Vec3
	if face != nil {
		f := *face
		target = &f
	}
	c.rampFade(1)
	c.after(func() {
		c.fade.pending = nil
		c.teleport(position, target)
		c.rampFade(0)
		c.after(func() {
			c.fade.pending = nil
			if onDone != nil {
				onDone()
			}
		})
	})
}
