// Package island composes the avatar controller with the collectible markers, zone triggers and
// physics world, and exposes the navigation command surface shells drive.
package island

import (
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/skyfolio/common"
	"github.com/Carmen-Shannon/skyfolio/engine/avatar"
	"github.com/Carmen-Shannon/skyfolio/engine/camera"
	"github.com/Carmen-Shannon/skyfolio/engine/catalog"
	"github.com/Carmen-Shannon/skyfolio/engine/collectible"
	"github.com/Carmen-Shannon/skyfolio/engine/event"
	"github.com/Carmen-Shannon/skyfolio/engine/input"
	"github.com/Carmen-Shannon/skyfolio/engine/physics"
	"github.com/Carmen-Shannon/skyfolio/engine/timer"
	"github.com/Carmen-Shannon/skyfolio/engine/tuning"
	"github.com/Carmen-Shannon/skyfolio/engine/zone"
)

// Island is one session of the island: avatar, markers, zones and the active overlay step.
// Tick and the direct command methods must be called from the same goroutine; other goroutines use
// Submit and Snapshot.
type Island interface {
	// Tick advances the session by dt seconds with the given intent.
	// Order: queued commands, scheduler, controller, physics, queued events.
	//
	// Parameters:
	//   - dt: frame duration in seconds
	//   - in: the intent sampled for this tick
	//
	// Returns:
	//   - Snapshot: the state after the tick
	Tick(dt float32, in input.Intent) Snapshot

	// Submit queues a command for the next tick. Safe for concurrent use.
	//
	// Parameters:
	//   - cmd: the command to queue
	Submit(cmd Command)

	// Snapshot returns the state after the most recent tick. Safe for concurrent use.
	Snapshot() Snapshot

	MoveToWorkExperience()
	MoveToProjects()
	MoveToContact()

	// MoveTo flies to a destination behind a fade. Inside its zone the arrival is immediate; a visited
	// destination is reached by a faded teleport straight to its target, arriving once the fade clears.
	//
	// Parameters:
	//   - id: the destination
	MoveTo(id catalog.DestinationID)

	// SkipToDestination jumps a flight in progress to its last waypoint.
	SkipToDestination()

	// Step returns the open overlay step.
	Step() Step

	Bus() event.Bus
	Store() collectible.Store
	Controller() avatar.Controller
	Camera() camera.Camera
	Catalog() *catalog.Catalog
	Zones() []zone.Trigger
}

// ZoneState is the observable state of one trigger.
type ZoneState struct {
	Name        string                `json:"name"`
	Destination catalog.DestinationID `json:"destination"`
	Inside      bool                  `json:"inside"`
	Visited     bool                  `json:"visited"`
}

// Snapshot is the per-tick view shells render from.
type Snapshot struct {
	Tick      uint64
	Frame     avatar.Frame
	Step      Step
	Progress  float32
	Collected []int
	Total     int
	Zones     []ZoneState
	CanSkip   bool
	// ViewProjection is the follow camera's combined matrix (column-major).
	ViewProjection [16]float32
	// InView lists the uncollected markers whose volume intersects the camera frustum.
	InView []int
}

type islandImpl struct {
	catalog *catalog.Catalog
	tuning  tuning.Tuning
	logger  *log.Logger

	bus        event.Bus
	scheduler  timer.Scheduler
	world      physics.World
	body       physics.RigidBody
	store      collectible.Store
	controller avatar.Controller
	camera     camera.Camera
	zones      []zone.Trigger
	total      int

	tick uint64
	step Step

	inboxMu sync.Mutex
	inbox   []Command

	snapMu sync.RWMutex
	last   Snapshot
}

var _ Island = &islandImpl{}

// NewIsland builds a session from the catalog and tuning.
//
// Parameters:
//   - options: functional options to configure the island
//
// Returns:
//   - Island: the assembled session
func NewIsland(options ...IslandBuilderOption) Island {
	is := &islandImpl{
		tuning: tuning.Default(),
		logger: log.Default(),
		step:   StepIdle,
	}
	for _, option := range options {
		option(is)
	}
	if is.catalog == nil {
		is.catalog = catalog.Default()
	}
	if is.bus == nil {
		is.bus = event.NewBus()
	}
	is.total = common.Coalesce(is.total, len(is.catalog.Collectibles))

	is.scheduler = timer.NewScheduler()
	is.body = physics.NewBody(
		physics.WithName(zone.CharacterCollider),
		physics.WithPosition(is.catalog.Start),
		physics.WithGravityScale(0),
		physics.WithLinearDamping(0.95),
		physics.WithCapsuleCollider(1.8, 1.8, common.V3(0, 3, 0)),
	)
	is.world = physics.NewWorld(physics.WithBody(is.body))

	is.store = collectible.NewStore(
		collectible.WithWaypoints(is.catalog.Collectibles),
		collectible.WithTotal(is.total),
		collectible.WithBus(is.bus),
	)
	is.addCollectibleSensors()
	is.addZones()

	is.controller = avatar.NewController(
		avatar.WithBody(is.body),
		avatar.WithParams(is.tuning.Params()),
		avatar.WithFraming(is.tuning.Camera),
		avatar.WithCatalog(is.catalog),
		avatar.WithStore(is.store),
		avatar.WithBus(is.bus),
		avatar.WithScheduler(is.scheduler),
		avatar.WithFadeDuration(is.tuning.FadeDuration()),
		avatar.WithFrameRateIndependence(is.tuning.ReferenceHz),
		avatar.WithManualInterrupt(is.tuning.ManualInterrupt),
	)

	is.camera = camera.NewCamera(
		camera.WithLens(is.tuning.CameraLens()),
		camera.WithController(is.controller.Rig()),
	)

	is.bus.Subscribe(event.EventCollected, func(e event.Event) {
		if p, ok := e.Payload.(event.CollectedPayload); ok {
			is.world.RemoveSensor(collectibleSensor(p.ID))
		}
	})
	is.bus.Subscribe(event.EventCollectionComplete, func(event.Event) {
		is.logger.Printf("[Island] All %d markers collected", is.store.Total())
	})

	is.last = is.snapshot(avatar.Frame{})
	return is
}

func collectibleSensor(id int) string {
	return fmt.Sprintf("collectible:%d", id)
}

func (is *islandImpl) addCollectibleSensors() {
	for _, w := range is.catalog.Collectibles {
		id := w.ID
		box := common.NewAABB(w.Position, is.catalog.CollectibleSize)
		is.world.AddSensor(collectibleSensor(id), box, func(other string) {
			if other == zone.CharacterCollider {
				is.store.Collect(id)
			}
		}, nil)
	}
}

func (is *islandImpl) addZones() {
	for _, spec := range is.catalog.Zones() {
		dest := spec.Destination
		var t zone.Trigger
		t = zone.FromSpec(spec,
			zone.WithBus(is.bus),
			zone.WithOnEnter(func(firstVisit bool) {
				is.logger.Printf("[Island] Entered %s (first visit: %t)", t.Name(), firstVisit)
				is.setStep(StepFor(dest))
			}),
			zone.WithOnExit(func() {
				is.logger.Printf("[Island] Left %s", t.Name())
				if is.step == StepFor(dest) {
					is.setStep(StepIdle)
				}
			}),
		)
		is.world.AddSensor("zone:"+t.Name(), t.Box(),
			func(other string) { t.HandleEnter(other) },
			func(other string) { t.HandleExit(other) },
		)
		is.zones = append(is.zones, t)
	}
}

func (is *islandImpl) Tick(dt float32, in input.Intent) Snapshot {
	is.tick++
	is.bus.SetTick(is.tick)

	for _, cmd := range is.takeInbox() {
		is.apply(cmd)
	}
	is.scheduler.Advance(dt)
	frame := is.controller.Tick(dt, in)
	is.camera.Update()
	is.world.Step(dt)
	is.bus.Drain()

	snap := is.snapshot(frame)
	is.snapMu.Lock()
	is.last = snap
	is.snapMu.Unlock()
	return snap
}

func (is *islandImpl) snapshot(frame avatar.Frame) Snapshot {
	zones := make([]ZoneState, 0, len(is.zones))
	for _, z := range is.zones {
		zones = append(zones, ZoneState{
			Name:        z.Name(),
			Destination: z.Destination(),
			Inside:      z.Inside(),
			Visited:     z.Visited(),
		})
	}
	return Snapshot{
		Tick:           is.tick,
		Frame:          frame,
		Step:           is.step,
		Progress:       is.store.Percentage(),
		Collected:      is.store.Collected(),
		Total:          is.store.Total(),
		Zones:          zones,
		CanSkip:        avatar.IsFollowing(is.controller.Mode()),
		ViewProjection: is.camera.ViewProjectionMatrix(),
		InView:         is.markersInView(),
	}
}

// markersInView culls the uncollected markers against the camera frustum.
func (is *islandImpl) markersInView() []int {
	inView := []int{}
	for _, w := range is.catalog.Collectibles {
		if is.store.IsCollected(w.ID) {
			continue
		}
		if is.camera.Visible(common.NewAABB(w.Position, is.catalog.CollectibleSize)) {
			inView = append(inView, w.ID)
		}
	}
	return inView
}

func (is *islandImpl) Submit(cmd Command) {
	is.inboxMu.Lock()
	is.inbox = append(is.inbox, cmd)
	is.inboxMu.Unlock()
}

func (is *islandImpl) takeInbox() []Command {
	is.inboxMu.Lock()
	defer is.inboxMu.Unlock()
	cmds := is.inbox
	is.inbox = nil
	return cmds
}

func (is *islandImpl) apply(cmd Command) {
	switch cmd.Type {
	case CommandMoveTo:
		is.MoveTo(cmd.Destination)
	case CommandSkip:
		is.SkipToDestination()
	case CommandTeleport:
		is.controller.TeleportWithFade(cmd.Position, cmd.Face, nil)
	case CommandCancel:
		is.controller.Cancel()
	default:
		is.logger.Printf("[Island] Ignoring command of type %s", cmd.Type)
	}
}

func (is *islandImpl) Snapshot() Snapshot {
	is.snapMu.RLock()
	defer is.snapMu.RUnlock()
	return is.last
}

func (is *islandImpl) MoveToWorkExperience() { is.MoveTo(catalog.WorkExperience) }
func (is *islandImpl) MoveToProjects()       { is.MoveTo(catalog.Projects) }
func (is *islandImpl) MoveToContact()        { is.MoveTo(catalog.Contact) }

func (is *islandImpl) MoveTo(id catalog.DestinationID) {
	dest, ok := is.catalog.Destination(id)
	if !ok {
		is.logger.Printf("[Island] Unknown destination %q", id)
		is.controller.MoveTo(id, []common.Vec3{}, nil)
		return
	}

	onArrived := func() { is.arrive(id) }
	if t := is.zone(id); t != nil {
		if t.Inside() {
			is.controller.MoveTo(id, []common.Vec3{}, onArrived)
			return
		}
		if t.Visited() {
			is.controller.TeleportWithFade(dest.Target, nil, func() {
				is.controller.MoveTo(id, []common.Vec3{}, onArrived)
			})
			return
		}
	}
	is.controller.MoveToWithFade(id, dest.Waypoints(), onArrived)
}

func (is *islandImpl) arrive(id catalog.DestinationID) {
	is.logger.Printf("[Island] Arrived at %s", id)
	if t := is.zone(id); t != nil {
		t.MarkVisited()
	}
	is.setStep(StepFor(id))
}

func (is *islandImpl) SkipToDestination() {
	is.controller.Skip()
}

func (is *islandImpl) zone(id catalog.DestinationID) zone.Trigger {
	for _, t := range is.zones {
		if t.Destination() == id {
			return t
		}
	}
	return nil
}

func (is *islandImpl) setStep(s Step) {
	if is.step == s {
		return
	}
	is.step = s
	is.bus.Publish(event.Event{
		Type:    event.EventDestinationChanged,
		Payload: event.DestinationPayload{Destination: string(s)},
	})
}

func (is *islandImpl) Step() Step                    { return is.step }
func (is *islandImpl) Bus() event.Bus                { return is.bus }
func (is *islandImpl) Store() collectible.Store      { return is.store }
func (is *islandImpl) Camera() camera.Camera         { return is.camera }
func (is *islandImpl) Controller() avatar.Controller { return is.controller }
func (is *islandImpl) Catalog() *catalog.Catalog     { return is.catalog }
func (is *islandImpl) Zones() []zone.Trigger         { return append([]zone.Trigger(nil), is.zones...) }
