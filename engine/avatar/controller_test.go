package avatar

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/Carmen-Shannon/skyfolio/common"
	"github.com/Carmen-Shannon/skyfolio/engine/catalog"
	"github.com/Carmen-Shannon/skyfolio/engine/collectible"
	"github.com/Carmen-Shannon/skyfolio/engine/event"
	"github.com/Carmen-Shannon/skyfolio/engine/input"
	"github.com/Carmen-Shannon/skyfolio/engine/physics"
	"github.com/Carmen-Shannon/skyfolio/engine/timer"
)

const dt = float32(1.0 / 60.0)

type recorder struct {
	events []event.Event
}

func (r *recorder) types() []event.EventType {
	out := make([]event.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func (r *recorder) count(t event.EventType) int {
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func newBody(p common.Vec3) physics.RigidBody {
	return physics.NewBody(physics.WithName("character"), physics.WithPosition(p))
}

func newRecordedController(t *testing.T, body physics.Body, options ...ControllerBuilderOption) (Controller, *recorder) {
	t.Helper()
	bus := event.NewBus()
	rec := &recorder{}
	bus.SubscribeAll(func(e event.Event) { rec.events = append(rec.events, e) })
	opts := append([]ControllerBuilderOption{WithBody(body), WithBus(bus)}, options...)
	return NewController(opts...), rec
}

func pathState(t *testing.T, c Controller) PathState {
	t.Helper()
	m, ok := c.Mode().(ModeFollowingPath)
	if !ok {
		t.Fatalf("expected following_path mode, got %s", c.Mode())
	}
	return m.PathState
}

func TestSingleWaypointExample(t *testing.T) {
	body := newBody(common.V3(0, 10, 0))
	c, rec := newRecordedController(t, body)

	calls := 0
	c.FollowPath([]common.Vec3{common.V3(5, 10, 0)}, func() { calls++ })

	f := c.Tick(dt, input.Intent{})
	if !f.TargetVelocity.Near(common.V3(30, 0, 0), 1e-4) {
		t.Fatalf("target velocity = %v, want (30,0,0)", f.TargetVelocity)
	}
	if !f.Velocity.Near(common.V3(1.5, 0, 0), 1e-4) {
		t.Errorf("smoothed velocity = %v, want (1.5,0,0)", f.Velocity)
	}
	if body.LinearVelocity() != f.Velocity {
		t.Error("velocity not written to the body")
	}

	body.SetTranslation(common.V3(2, 10, 0), true)
	c.Tick(dt, input.Intent{})
	if st := pathState(t, c); st.Index != 0 {
		t.Fatalf("index advanced at distance 3: %d", st.Index)
	}

	body.SetTranslation(common.V3(3.5, 10, 0), true)
	f = c.Tick(dt, input.Intent{})
	if calls != 1 {
		t.Fatalf("expected one callback, got %d", calls)
	}
	if IsFollowing(c.Mode()) || IsFollowing(f.Mode) {
		t.Error("mode should be manual after arrival")
	}
	if rec.count(event.EventArrived) != 1 {
		t.Errorf("expected one arrived event, got %d", rec.count(event.EventArrived))
	}
}

func TestArrivalFiresExactlyOnce(t *testing.T) {
	body := newBody(common.V3(0, 10, 0))
	c, _ := newRecordedController(t, body)

	calls := 0
	c.FollowPath([]common.Vec3{common.V3(1, 10, 0)}, func() { calls++ })
	c.Tick(dt, input.Intent{})
	if IsFollowing(c.Mode()) {
		t.Fatal("mode should be manual immediately after arrival")
	}
	for i := 0; i < 10; i++ {
		c.Tick(dt, input.Intent{})
	}
	if calls != 1 {
		t.Errorf("callback ran %d times", calls)
	}
}

func TestOneWaypointPerTick(t *testing.T) {
	body := newBody(common.V3(0, 10, 0))
	c, _ := newRecordedController(t, body)

	// all three points lie inside the arrival radius
	c.FollowPath([]common.Vec3{
		common.V3(0.5, 10, 0),
		common.V3(1, 10, 0),
		common.V3(1.5, 10, 0),
	}, nil)

	c.Tick(dt, input.Intent{})
	if st := pathState(t, c); st.Index != 1 {
		t.Fatalf("expected index 1 after one tick, got %d", st.Index)
	}
	c.Tick(dt, input.Intent{})
	c.Tick(dt, input.Intent{})
	if IsFollowing(c.Mode()) {
		t.Error("path should be done after three ticks")
	}
}

func TestMoveToTruncatesAfterLastCollected(t *testing.T) {
	p := []common.Vec3{
		common.V3(0, 10, 10),
		common.V3(0, 10, 20),
		common.V3(0, 10, 30),
		common.V3(0, 10, 40),
	}
	store := collectible.NewStore(collectible.WithWaypoints([]catalog.Waypoint{
		{ID: 0, Position: p[0]},
		{ID: 1, Position: p[1]},
		{ID: 2, Position: p[2]},
	}))
	store.Collect(1)

	body := newBody(common.V3(50, 50, 50))
	c, rec := newRecordedController(t, body, WithStore(store))

	calls := 0
	c.MoveTo("projects", p, func() { calls++ })

	st := pathState(t, c)
	if !reflect.DeepEqual(st.Path, p[2:]) {
		t.Fatalf("resolved path = %v, want %v", st.Path, p[2:])
	}
	if st.Destination != "projects" {
		t.Errorf("destination = %q", st.Destination)
	}

	body.SetTranslation(p[2], true)
	c.Tick(dt, input.Intent{})
	body.SetTranslation(p[3], true)
	c.Tick(dt, input.Intent{})

	if calls != 1 {
		t.Fatalf("expected arrival after two transitions, callback ran %d times", calls)
	}
	if n := rec.count(event.EventWaypointReached); n != 2 {
		t.Errorf("expected 2 waypoint transitions, got %d", n)
	}
	if !store.IsCollected(2) {
		t.Error("marker on a reached waypoint should be collected")
	}
	if store.IsCollected(0) {
		t.Error("truncated waypoint should not be collected")
	}
}

func TestMoveToPrefixesPath(t *testing.T) {
	waypoints := []common.Vec3{common.V3(10, 20, 10), common.V3(20, 20, 20)}

	t.Run("near first waypoint", func(t *testing.T) {
		pos := common.V3(11, 20, 10)
		c, _ := newRecordedController(t, newBody(pos))
		c.MoveTo(catalog.Projects, waypoints, nil)
		st := pathState(t, c)
		want := append([]common.Vec3{pos}, waypoints...)
		if !reflect.DeepEqual(st.Path, want) {
			t.Errorf("path = %v, want %v", st.Path, want)
		}
	})

	t.Run("far from first waypoint", func(t *testing.T) {
		start := common.V3(0, 10, 0)
		c, _ := newRecordedController(t, newBody(common.V3(-40, 5, 3)), WithStart(start))
		c.MoveTo(catalog.Projects, waypoints, nil)
		st := pathState(t, c)
		want := append([]common.Vec3{start}, waypoints...)
		if !reflect.DeepEqual(st.Path, want) {
			t.Errorf("path = %v, want %v", st.Path, want)
		}
	})
}

func TestMoveToWithoutWaypointsFliesToTarget(t *testing.T) {
	cat := catalog.Default()
	c, _ := newRecordedController(t, newBody(common.V3(0, 10, 0)), WithCatalog(cat))

	c.MoveTo(catalog.Projects, nil, nil)
	st := pathState(t, c)
	d, _ := cat.Destination(catalog.Projects)
	if len(st.Path) != 1 || st.Path[0] != d.Target {
		t.Errorf("path = %v, want [%v]", st.Path, d.Target)
	}
}

func TestMoveToUnresolvableArrivesImmediately(t *testing.T) {
	c, rec := newRecordedController(t, newBody(common.V3(0, 10, 0)))

	calls := 0
	c.MoveTo("nowhere", nil, func() { calls++ })
	if calls != 1 {
		t.Fatalf("expected synchronous arrival, got %d calls", calls)
	}
	c.MoveTo("nowhere", []common.Vec3{}, func() { calls++ })
	if calls != 2 {
		t.Fatalf("empty waypoints should arrive immediately, got %d calls", calls)
	}
	if IsFollowing(c.Mode()) {
		t.Error("mode should stay manual")
	}
	if rec.count(event.EventModeChanged) != 0 {
		t.Error("immediate arrival should not change mode")
	}
}

func TestSupersededPathDropsCallback(t *testing.T) {
	body := newBody(common.V3(0, 10, 0))
	c, rec := newRecordedController(t, body)

	cbA, cbB := 0, 0
	c.FollowPath([]common.Vec3{common.V3(100, 10, 0)}, func() { cbA++ })
	c.Tick(dt, input.Intent{})
	c.FollowPath([]common.Vec3{common.V3(0, 10, 100)}, func() { cbB++ })

	body.SetTranslation(common.V3(100, 10, 0), true)
	c.Tick(dt, input.Intent{})
	body.SetTranslation(common.V3(0, 10, 100), true)
	c.Tick(dt, input.Intent{})

	if cbA != 0 {
		t.Errorf("superseded callback ran %d times", cbA)
	}
	if cbB != 1 {
		t.Errorf("expected one call of the new callback, got %d", cbB)
	}
	if rec.count(event.EventPathCancelled) != 1 {
		t.Errorf("expected one cancellation event, got %d", rec.count(event.EventPathCancelled))
	}
	want := []event.EventType{
		event.EventModeChanged,
		event.EventPathCancelled,
		event.EventWaypointReached,
		event.EventModeChanged,
		event.EventArrived,
	}
	if !reflect.DeepEqual(rec.types(), want) {
		t.Errorf("events = %v, want %v", rec.types(), want)
	}
}

func TestCallbackMayStartNextPath(t *testing.T) {
	body := newBody(common.V3(0, 10, 0))
	c, _ := newRecordedController(t, body)

	second := 0
	c.FollowPath([]common.Vec3{common.V3(0, 10, 0)}, func() {
		c.FollowPath([]common.Vec3{common.V3(0, 10, 50)}, func() { second++ })
	})
	c.Tick(dt, input.Intent{})
	if !IsFollowing(c.Mode()) {
		t.Fatal("callback's path should be in flight")
	}
	body.SetTranslation(common.V3(0, 10, 50), true)
	c.Tick(dt, input.Intent{})
	if second != 1 {
		t.Errorf("second callback ran %d times", second)
	}
}

func TestTeleportCancelsPath(t *testing.T) {
	body := newBody(common.V3(0, 10, 0))
	c, rec := newRecordedController(t, body)

	calls := 0
	c.FollowPath([]common.Vec3{common.V3(100, 10, 0)}, func() { calls++ })
	for i := 0; i < 5; i++ {
		c.Tick(dt, input.Intent{})
	}

	face := common.V3(10, 10, 0)
	c.TeleportTo(common.V3(0, 10, 0), &face)

	if IsFollowing(c.Mode()) {
		t.Fatal("teleport should cancel the path")
	}
	if !body.LinearVelocity().IsZero() {
		t.Errorf("body velocity not reset: %v", body.LinearVelocity())
	}
	f := c.Tick(dt, input.Intent{})
	if !f.Velocity.IsZero() || !f.TargetVelocity.IsZero() {
		t.Errorf("velocities not reset: %v %v", f.Velocity, f.TargetVelocity)
	}
	if math.Abs(float64(f.Yaw-math.Pi/2)) > 1e-4 {
		t.Errorf("yaw = %v, want pi/2 facing +x", f.Yaw)
	}

	for i := 0; i < 10; i++ {
		c.Tick(dt, input.Intent{})
	}
	if calls != 0 {
		t.Error("cancelled callback ran")
	}
	if rec.count(event.EventPathCancelled) != 1 {
		t.Errorf("expected one cancellation, got %d", rec.count(event.EventPathCancelled))
	}
}

func TestSkipJumpsToLastWaypoint(t *testing.T) {
	p := []common.Vec3{
		common.V3(0, 10, 20),
		common.V3(0, 10, 40),
		common.V3(0, 10, 60),
	}
	store := collectible.NewStore(collectible.WithWaypoints([]catalog.Waypoint{
		{ID: 0, Position: p[0]},
		{ID: 1, Position: p[1]},
		{ID: 2, Position: p[2]},
	}))
	body := newBody(common.V3(0, 10, 0))
	c, _ := newRecordedController(t, body, WithStore(store))

	calls := 0
	c.FollowPath(p, func() { calls++ })
	c.Tick(dt, input.Intent{})
	c.Skip()

	if st := pathState(t, c); st.Index != 2 {
		t.Fatalf("index = %d after skip", st.Index)
	}
	if body.Translation() != p[2] {
		t.Errorf("body at %v after skip", body.Translation())
	}
	if calls != 0 {
		t.Fatal("callback should wait for the next tick")
	}

	c.Tick(dt, input.Intent{})
	if calls != 1 {
		t.Fatalf("expected arrival on the tick after skip, got %d calls", calls)
	}
	if store.IsCollected(0) || store.IsCollected(1) {
		t.Error("skipped waypoints were collected")
	}
}

func TestSkipInManualModeDoesNothing(t *testing.T) {
	body := newBody(common.V3(0, 10, 0))
	c, _ := newRecordedController(t, body)
	c.Skip()
	if body.Translation() != common.V3(0, 10, 0) {
		t.Error("skip moved the body in manual mode")
	}
}

func TestManualForward(t *testing.T) {
	c, _ := newRecordedController(t, newBody(common.V3(0, 10, 0)))
	f := c.Tick(dt, input.Intent{Forward: true})
	if !f.TargetVelocity.Near(common.V3(0, 0, 30), 1e-4) {
		t.Errorf("target velocity = %v", f.TargetVelocity)
	}
}

func TestManualSteeringTurnsLeftTowardPositiveX(t *testing.T) {
	c, _ := newRecordedController(t, newBody(common.V3(0, 10, 0)))

	var f Frame
	for i := 0; i < 20; i++ {
		f = c.Tick(dt, input.Intent{Forward: true, Left: true})
	}
	if f.ContainerYaw <= 0 {
		t.Errorf("holding left should raise the heading, got %v", f.ContainerYaw)
	}
	if f.TargetVelocity[0] <= 0 {
		t.Errorf("holding left should move toward +x, got %v", f.TargetVelocity)
	}
	if got := f.TargetVelocity.HorizontalLen(); math.Abs(float64(got-30)) > 1e-3 {
		t.Errorf("horizontal speed = %v, want 30", got)
	}
	if f.Tilt <= 0 {
		t.Errorf("tilt should grow while moving, got %v", f.Tilt)
	}
}

func TestVerticalOnlyDampsHorizontal(t *testing.T) {
	c, _ := newRecordedController(t, newBody(common.V3(0, 10, 0)))

	c.Tick(dt, input.Intent{Forward: true})
	f := c.Tick(dt, input.Intent{Up: true})
	if !f.TargetVelocity.Near(common.V3(0, 20, 30*0.95), 1e-3) {
		t.Errorf("target velocity = %v, want (0, 20, 28.5)", f.TargetVelocity)
	}

	f = c.Tick(dt, input.Intent{})
	if !f.TargetVelocity.IsZero() {
		t.Errorf("no intent should zero the target, got %v", f.TargetVelocity)
	}
}

func TestBodyYawFrozenWhenIdle(t *testing.T) {
	c, _ := newRecordedController(t, newBody(common.V3(0, 10, 0)))

	var f Frame
	for i := 0; i < 20; i++ {
		f = c.Tick(dt, input.Intent{Backward: true})
	}
	held := f.BodyYaw
	if math.Abs(float64(held)) <= 0.1 {
		t.Fatalf("body should turn toward backward, got %v", held)
	}
	for i := 0; i < 20; i++ {
		f = c.Tick(dt, input.Intent{})
	}
	if f.BodyYaw != held {
		t.Errorf("body yaw changed while idle: %v -> %v", held, f.BodyYaw)
	}
}

func TestPathFacesTravelDirection(t *testing.T) {
	c, _ := newRecordedController(t, newBody(common.V3(0, 10, 0)))
	c.FollowPath([]common.Vec3{common.V3(100, 10, 0)}, nil)

	var f Frame
	for i := 0; i < 200; i++ {
		f = c.Tick(dt, input.Intent{})
	}
	if math.Abs(float64(f.Yaw-math.Pi/2)) > 1e-2 {
		t.Errorf("yaw = %v, want pi/2", f.Yaw)
	}
	// side framing: eye swings to the path offset around the heading
	want := common.V3(0, 10, 0).Add(common.V3(-100, 30, -50))
	if !f.Camera.Eye.Near(want, 0.5) {
		t.Errorf("eye = %v, want near %v", f.Camera.Eye, want)
	}
	if !f.Camera.LookAt.Near(common.V3(25, 10, 0), 0.5) {
		t.Errorf("look-at = %v, want ahead along +x", f.Camera.LookAt)
	}
}

func TestPathBodyYawIsRelativeToHeading(t *testing.T) {
	c, _ := newRecordedController(t, newBody(common.V3(0, 10, 0)))
	impl := c.(*controllerImpl)
	impl.containerYaw, impl.containerYawTarget = 1, 1
	c.FollowPath([]common.Vec3{common.V3(100, 10, 0)}, nil)

	var f Frame
	for i := 0; i < 200; i++ {
		f = c.Tick(dt, input.Intent{})
	}
	if math.Abs(float64(f.ContainerYaw-1)) > 1e-4 {
		t.Fatalf("heading = %v, want it held at 1 during the flight", f.ContainerYaw)
	}
	if math.Abs(float64(f.BodyYaw-(math.Pi/2-1))) > 1e-2 {
		t.Errorf("body yaw = %v, want pi/2-1", f.BodyYaw)
	}
	if math.Abs(float64(f.Yaw-math.Pi/2)) > 1e-2 {
		t.Errorf("world yaw = %v, want pi/2", f.Yaw)
	}
}

func TestFinishingTickKeepsVelocity(t *testing.T) {
	body := newBody(common.V3(0, 10, 0))
	c, _ := newRecordedController(t, body)
	c.FollowPath([]common.Vec3{common.V3(5, 10, 0)}, nil)

	var prev Frame
	for i := 0; i < 5; i++ {
		prev = c.Tick(dt, input.Intent{})
	}
	if prev.Velocity.Len() == 0 {
		t.Fatal("expected the flight to be moving")
	}

	body.SetTranslation(common.V3(4.9, 10, 0), true)
	f := c.Tick(dt, input.Intent{})
	if IsFollowing(f.Mode) {
		t.Fatal("path should finish on this tick")
	}
	if f.Velocity != prev.Velocity || body.LinearVelocity() != prev.Velocity {
		t.Errorf("finishing tick velocity = %v (body %v), want %v", f.Velocity, body.LinearVelocity(), prev.Velocity)
	}
	if f.TargetVelocity != (common.Vec3{}) {
		t.Errorf("target velocity = %v, want zero", f.TargetVelocity)
	}

	next := c.Tick(dt, input.Intent{})
	if next.Velocity.Len() >= f.Velocity.Len() {
		t.Errorf("velocity %v not damped after the finish", next.Velocity)
	}
}

func TestManualInterrupt(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		c, _ := newRecordedController(t, newBody(common.V3(0, 10, 0)))
		c.FollowPath([]common.Vec3{common.V3(100, 10, 0)}, nil)
		c.Tick(dt, input.Intent{Forward: true})
		if !IsFollowing(c.Mode()) {
			t.Error("input should not cancel the path by default")
		}
	})

	t.Run("enabled", func(t *testing.T) {
		c, rec := newRecordedController(t, newBody(common.V3(0, 10, 0)), WithManualInterrupt(true))
		calls := 0
		c.FollowPath([]common.Vec3{common.V3(100, 10, 0)}, func() { calls++ })
		f := c.Tick(dt, input.Intent{Forward: true})
		if IsFollowing(c.Mode()) {
			t.Fatal("input should cancel the path")
		}
		if !f.TargetVelocity.Near(common.V3(0, 0, 30), 1e-4) {
			t.Errorf("manual branch should run on the interrupting tick, got %v", f.TargetVelocity)
		}
		if calls != 0 || rec.count(event.EventPathCancelled) != 1 {
			t.Errorf("calls=%d cancellations=%d", calls, rec.count(event.EventPathCancelled))
		}
	})
}

func TestUnmountedIsNoop(t *testing.T) {
	c := NewController()
	if f := c.Tick(dt, input.Intent{Forward: true}); f.Ready {
		t.Error("unmounted tick should not be ready")
	}
	calls := 0
	c.MoveTo(catalog.Contact, nil, func() { calls++ })
	c.FollowPath([]common.Vec3{common.V3(1, 1, 1)}, func() { calls++ })
	c.TeleportTo(common.V3(5, 5, 5), nil)
	c.Skip()
	if calls != 0 || IsFollowing(c.Mode()) || !c.Position().IsZero() {
		t.Error("operations should not run without a body")
	}

	body := newBody(common.V3(0, 10, 0))
	c.Mount(body)
	if !c.Mounted() || c.Position() != common.V3(0, 10, 0) {
		t.Error("mount did not attach the body")
	}
}

func TestMoveToWithFade(t *testing.T) {
	sched := timer.NewScheduler()
	body := newBody(common.V3(0, 10, 0))
	c, _ := newRecordedController(t, body, WithScheduler(sched), WithFadeDuration(300*time.Millisecond))

	step := func() Frame {
		sched.Advance(dt)
		return c.Tick(dt, input.Intent{})
	}

	c.MoveToWithFade("", []common.Vec3{common.V3(11, 20, 10)}, nil)
	f := step()
	if IsFollowing(f.Mode) {
		t.Fatal("path should start after the fade out")
	}
	if f.Fade <= 0 || f.Fade >= 1 {
		t.Errorf("fade should be ramping out, got %v", f.Fade)
	}

	for i := 0; i < 18; i++ {
		f = step()
	}
	if !IsFollowing(f.Mode) {
		t.Fatal("path should be in flight after 300ms")
	}
	if f.Fade < 0.9 {
		t.Errorf("overlay should be nearly opaque at the swap, got %v", f.Fade)
	}

	for i := 0; i < 20; i++ {
		f = step()
	}
	if f.Fade != 0 {
		t.Errorf("fade should be clear after fading in, got %v", f.Fade)
	}
}

func TestTeleportWithFade(t *testing.T) {
	sched := timer.NewScheduler()
	body := newBody(common.V3(0, 10, 0))
	c, _ := newRecordedController(t, body, WithScheduler(sched))

	done := 0
	c.TeleportWithFade(common.V3(40, 10, 40), nil, func() { done++ })
	for i := 0; i < 10; i++ {
		sched.Advance(dt)
		c.Tick(dt, input.Intent{})
	}
	if body.Translation() == common.V3(40, 10, 40) {
		t.Fatal("teleport should wait for the fade out")
	}
	for i := 0; i < 40; i++ {
		sched.Advance(dt)
		c.Tick(dt, input.Intent{})
	}
	if done != 1 {
		t.Errorf("onDone ran %d times", done)
	}
}

func TestPlainMoveToCancelsPendingFade(t *testing.T) {
	sched := timer.NewScheduler()
	body := newBody(common.V3(0, 10, 0))
	c, _ := newRecordedController(t, body, WithScheduler(sched))

	faded := 0
	c.MoveToWithFade("", []common.Vec3{common.V3(0, 10, 80)}, func() { faded++ })
	c.FollowPath([]common.Vec3{common.V3(80, 10, 0)}, nil)

	for i := 0; i < 40; i++ {
		sched.Advance(dt)
		c.Tick(dt, input.Intent{})
	}
	st := pathState(t, c)
	if st.Path[0] != common.V3(80, 10, 0) {
		t.Errorf("pending fade replaced the newer path: %v", st.Path)
	}
	if sched.Pending() != 0 {
		t.Errorf("fade callbacks left pending: %d", sched.Pending())
	}
}

func TestFrameRateIndependentSmoothing(t *testing.T) {
	run := func(hz int, seconds float32) Frame {
		step := 1 / float32(hz)
		c, _ := newRecordedController(t, newBody(common.V3(0, 10, 0)), WithFrameRateIndependence(60))
		var f Frame
		for i := 0; i < int(seconds*float32(hz)); i++ {
			f = c.Tick(step, input.Intent{Forward: true})
		}
		return f
	}

	at60 := run(60, 0.5)
	at120 := run(120, 0.5)
	if !at60.Velocity.Near(at120.Velocity, 0.05) {
		t.Errorf("velocity differs across rates: 60Hz %v, 120Hz %v", at60.Velocity, at120.Velocity)
	}
	if math.Abs(float64(at60.Tilt-at120.Tilt)) > 1e-3 {
		t.Errorf("tilt differs across rates: %v vs %v", at60.Tilt, at120.Tilt)
	}
}
