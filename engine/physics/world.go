// Package physics provides the minimal rigid-body simulation the island needs: floating bodies
// integrated at the tick rate and box sensors reporting intersection enter and exit.
package physics

import (
	"sort"
	"sync"

	"github.com/Carmen-Shannon/skyfolio/common"
)

// SensorCallback is invoked with the name of the body that started or stopped intersecting a sensor.
type SensorCallback func(other string)

// World owns bodies and sensors and steps them together.
type World interface {
	// AddBody registers a body for integration and sensor tests.
	//
	// Parameters:
	//   - b: the body to add
	AddBody(b RigidBody)

	// AddSensor registers a fixed box sensor. A sensor registered under an existing name replaces it.
	//
	// Parameters:
	//   - name: unique sensor name
	//   - box: world-space sensor volume
	//   - onEnter: called when a body starts intersecting the sensor; may be nil
	//   - onExit: called when a body stops intersecting the sensor; may be nil
	AddSensor(name string, box common.AABB, onEnter, onExit SensorCallback)

	// RemoveSensor removes a sensor. No exit callbacks fire for bodies still inside it.
	//
	// Parameters:
	//   - name: the sensor name
	//
	// Returns:
	//   - bool: true if a sensor was removed
	RemoveSensor(name string) bool

	// Sensors returns the names of all registered sensors in sorted order.
	//
	// Returns:
	//   - []string: sensor names
	Sensors() []string

	// Step integrates every body by dt seconds, then fires sensor callbacks for each intersection
	// that started or ended during the step. Callbacks run after all bodies have moved, ordered by
	// sensor name.
	//
	// Parameters:
	//   - dt: step duration in seconds
	Step(dt float32)
}

type sensor struct {
	name    string
	box     common.AABB
	onEnter SensorCallback
	onExit  SensorCallback
	inside  map[string]bool
}

type worldImpl struct {
	mu      *sync.Mutex
	gravity common.Vec3
	bodies  []RigidBody
	sensors map[string]*sensor
}

var _ World = &worldImpl{}

// NewWorld creates an empty world with standard downward gravity.
//
// Parameters:
//   - options: functional options to configure the world
//
// Returns:
//   - World: the newly created world
func NewWorld(options ...WorldBuilderOption) World {
	w := &worldImpl{
		mu:      &sync.Mutex{},
		gravity: common.V3(0, -9.81, 0),
		sensors: make(map[string]*sensor),
	}
	for _, option := range options {
		option(w)
	}
	return w
}

func (w *worldImpl) AddBody(b RigidBody) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.bodies = append(w.bodies, b)
}

func (w *worldImpl) AddSensor(name string, box common.AABB, onEnter, onExit SensorCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sensors[name] = &sensor{
		name:    name,
		box:     box,
		onEnter: onEnter,
		onExit:  onExit,
		inside:  make(map[string]bool),
	}
}

func (w *worldImpl) RemoveSensor(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.sensors[name]; !ok {
		return false
	}
	delete(w.sensors, name)
	return true
}

func (w *worldImpl) Sensors() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	names := make([]string, 0, len(w.sensors))
	for name := range w.sensors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (w *worldImpl) Step(dt float32) {
	w.mu.Lock()
	for _, b := range w.bodies {
		b.Integrate(dt, w.gravity)
	}

	names := make([]string, 0, len(w.sensors))
	for name := range w.sensors {
		names = append(names, name)
	}
	sort.Strings(names)

	var pending []func()
	for _, name := range names {
		s := w.sensors[name]
		for _, b := range w.bodies {
			bodyName := b.Name()
			now := s.box.Overlaps(b.Collider())
			was := s.inside[bodyName]
			switch {
			case now && !was:
				s.inside[bodyName] = true
				if s.onEnter != nil {
					cb := s.onEnter
					pending = append(pending, func() { cb(bodyName) })
				}
			case !now && was:
				delete(s.inside, bodyName)
				if s.onExit != nil {
					cb := s.onExit
					pending = append(pending, func() { cb(bodyName) })
				}
			}
		}
	}
	w.mu.Unlock()

	// callbacks may add or remove sensors
	for _, fn := range pending {
		fn()
	}
}
