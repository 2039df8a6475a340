package avatar

import (
	"math"

	"github.com/Carmen-Shannon/skyfolio/common"
	"github.com/Carmen-Shannon/skyfolio/engine/catalog"
	"github.com/Carmen-Shannon/skyfolio/engine/event"
)

// pathRun is the private state of an in-flight path. The callback is never exposed.
type pathRun struct {
	path        []common.Vec3
	index       int
	destination catalog.DestinationID
	onComplete  func()
}

func (r *pathRun) state() PathState {
	return PathState{
		Path:        append([]common.Vec3(nil), r.path...),
		Index:       r.index,
		Destination: r.destination,
	}
}

func (c *controllerImpl) MoveTo(dest catalog.DestinationID, waypoints []common.Vec3, onArrived func()) {
	if c.body == nil {
		return
	}
	c.cancelFade()
	c.moveTo(dest, waypoints, onArrived)
}

func (c *controllerImpl) moveTo(dest catalog.DestinationID, waypoints []common.Vec3, onArrived func()) {
	var path []common.Vec3
	if waypoints == nil {
		if c.catalog != nil {
			if d, ok := c.catalog.Destination(dest); ok {
				path = []common.Vec3{d.Target}
			}
		}
	} else {
		path = c.resolve(waypoints)
	}
	c.follow(path, dest, onArrived)
}

// resolve applies the truncation and prefix rules to a destination's waypoints.
func (c *controllerImpl) resolve(waypoints []common.Vec3) []common.Vec3 {
	if c.store != nil {
		if last, ok := c.store.LastCollectedPosition(); ok {
			for i, w := range waypoints {
				if w.Near(last, c.params.CollectEpsilon) {
					return append([]common.Vec3(nil), waypoints[i+1:]...)
				}
			}
		}
	}
	if len(waypoints) == 0 {
		return nil
	}

	head := c.start
	if p := c.body.Translation(); p.Distance(waypoints[0]) <= c.params.SnapRadius {
		head = p
	}
	path := make([]common.Vec3, 0, len(waypoints)+1)
	path = append(path, head)
	return append(path, waypoints...)
}

func (c *controllerImpl) FollowPath(path []common.Vec3, onComplete func()) {
	if c.body == nil {
		return
	}
	c.cancelFade()
	c.follow(append([]common.Vec3(nil), path...), "", onComplete)
}

// follow replaces any path in flight with path, or arrives immediately when path is empty.
func (c *controllerImpl) follow(path []common.Vec3, dest catalog.DestinationID, onComplete func()) {
	wasFollowing := c.run != nil
	c.dropPath()

	if len(path) == 0 {
		if wasFollowing {
			c.publish(event.EventModeChanged, event.ModePayload{Mode: ModeManual{}.String()})
		}
		c.publish(event.EventArrived, event.DestinationPayload{Destination: string(dest)})
		if onComplete != nil {
			onComplete()
		}
		return
	}

	c.run = &pathRun{path: path, destination: dest, onComplete: onComplete}
	if !wasFollowing {
		c.publish(event.EventModeChanged, event.ModePayload{Mode: ModeFollowingPath{}.String()})
	}
}

// stepPath runs the path branch for one tick and reports whether the path finished.
// At most one waypoint is consumed per tick.
func (c *controllerImpl) stepPath(p common.Vec3) bool {
	r := c.run
	target := r.path[r.index]
	dir := target.Sub(p)

	if dir.Len() < c.params.ArrivalRadius {
		c.collectAt(target)
		r.index++
		c.publish(event.EventWaypointReached, event.WaypointPayload{Index: r.index - 1, Position: target})

		if r.index >= len(r.path) {
			c.finishPath()
			return true
		}
		target = r.path[r.index]
		dir = target.Sub(p)
	}

	dir = dir.Normalize()
	c.targetVelocity = common.V3(
		dir[0]*c.params.FlightSpeed,
		dir[1]*c.params.VerticalSpeed,
		dir[2]*c.params.FlightSpeed,
	)
	if dir.HorizontalLen() > 1e-6 {
		c.travelYaw = float32(math.Atan2(float64(dir[0]), float64(dir[2])))
		// Body yaw is relative to the heading, so the world facing lands on the travel direction.
		c.bodyYawTarget = common.NormalizeAngle(c.travelYaw - c.containerYaw)
	}
	c.tiltTarget = c.params.TiltAngle
	return false
}

// collectAt collects the marker sitting on a reached waypoint, if any.
func (c *controllerImpl) collectAt(p common.Vec3) {
	if c.store == nil {
		return
	}
	if id, ok := c.store.WaypointNear(p, c.params.CollectEpsilon); ok && !c.store.IsCollected(id) {
		c.store.Collect(id)
	}
}

// finishPath clears the path before running its callback so the callback may start another.
func (c *controllerImpl) finishPath() {
	r := c.run
	c.run = nil
	c.targetVelocity = common.Vec3{}

	c.publish(event.EventModeChanged, event.ModePayload{Mode: ModeManual{}.String()})
	c.publish(event.EventArrived, event.DestinationPayload{Destination: string(r.destination)})
	if r.onComplete != nil {
		r.onComplete()
	}
}

// dropPath discards the path in flight and its callback, announcing the cancellation.
func (c *controllerImpl) dropPath() {
	if c.run == nil {
		return
	}
	r := c.run
	c.run = nil
	c.publish(event.EventPathCancelled, event.DestinationPayload{Destination: string(r.destination)})
}

// cancelPath drops the path in flight and returns to manual mode.
func (c *controllerImpl) cancelPath() {
	if c.run == nil {
		return
	}
	c.dropPath()
	c.targetVelocity = common.Vec3{}
	c.publish(event.EventModeChanged, event.ModePayload{Mode: ModeManual{}.String()})
}

func (c *controllerImpl) Skip() {
	if c.body == nil || c.run == nil {
		return
	}
	last := len(c.run.path) - 1
	c.run.index = last

	target := c.run.path[last]
	c.body.SetTranslation(target, true)
	c.currentVelocity = common.Vec3{}
	c.targetVelocity = common.Vec3{}
	c.body.SetLinearVelocity(common.Vec3{}, true)

	c.rig.Snap(c.framing.Chase(target, c.containerYaw))
	c.rigPrimed = true
}
