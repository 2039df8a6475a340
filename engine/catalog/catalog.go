// Package catalog holds the static island layout: the start point, collectible markers, the shared
// flight route and the destinations that fly prefixes of it.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/Carmen-Shannon/skyfolio/common"
	"gopkg.in/yaml.v3"
)

// ErrInvalidCatalog is wrapped by every validation failure.
var ErrInvalidCatalog = errors.New("invalid catalog")

//go:embed default.yaml
var defaultYAML []byte

// DestinationID names a navigation destination.
type DestinationID string

const (
	WorkExperience DestinationID = "work_experience"
	Projects       DestinationID = "projects"
	Contact        DestinationID = "contact"
)

// Waypoint is a collectible marker.
type Waypoint struct {
	ID       int         `yaml:"id"`
	Position common.Vec3 `yaml:"position"`
}

// ZoneSpec is the trigger volume that opens a destination's overlay.
type ZoneSpec struct {
	Name        string        `yaml:"name"`
	Destination DestinationID `yaml:"-"`
	Position    common.Vec3   `yaml:"position"`
	Size        common.Vec3   `yaml:"size"`
}

// Box returns the zone volume.
func (z ZoneSpec) Box() common.AABB {
	return common.NewAABB(z.Position, z.Size)
}

// Destination is a named navigation target. Its waypoints are the first Stops points of the route.
type Destination struct {
	ID     DestinationID `yaml:"id"`
	Title  string        `yaml:"title"`
	Stops  int           `yaml:"stops"`
	Target common.Vec3   `yaml:"target"`
	Zone   ZoneSpec      `yaml:"zone"`

	waypoints []common.Vec3
}

// Waypoints returns a copy of the destination's flight path.
func (d Destination) Waypoints() []common.Vec3 {
	return append([]common.Vec3(nil), d.waypoints...)
}

// Catalog is the parsed island layout. It is immutable after Parse.
type Catalog struct {
	Start           common.Vec3   `yaml:"start"`
	CollectibleSize common.Vec3   `yaml:"collectible_size"`
	Collectibles    []Waypoint    `yaml:"collectibles"`
	Route           []common.Vec3 `yaml:"route"`
	Destinations    []Destination `yaml:"destinations"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the embedded island layout. It panics if the embedded file is invalid, which the
// package tests rule out.
//
// Returns:
//   - *Catalog: the shared default catalog; callers must not modify it
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(defaultYAML)
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("catalog: embedded default: %v", defaultErr))
	}
	return defaultCatalog
}

// Load reads and parses a catalog file.
//
// Parameters:
//   - path: path to a YAML catalog
//
// Returns:
//   - *Catalog: the parsed catalog
//   - error: read, decode or validation failure
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	c, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog and resolves each destination's waypoints.
//
// Parameters:
//   - raw: YAML document
//
// Returns:
//   - *Catalog: the parsed catalog
//   - error: decode or validation failure; validation failures wrap ErrInvalidCatalog
func Parse(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("catalog yaml: %w", err)
	}
	if c.CollectibleSize.IsZero() {
		c.CollectibleSize = common.V3(3, 3, 3)
	}
	for i := range c.Destinations {
		d := &c.Destinations[i]
		d.Zone.Destination = d.ID
		d.Zone.Name = common.Coalesce(d.Zone.Name, string(d.ID))
		d.Title = common.Coalesce(d.Title, string(d.ID))
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	for i := range c.Destinations {
		d := &c.Destinations[i]
		d.waypoints = append([]common.Vec3(nil), c.Route[:d.Stops]...)
	}
	return &c, nil
}

// Validate checks the structural rules the controller relies on: unique ids, positive volumes and
// destination stop counts that strictly increase so each path is a strict prefix of the next.
//
// Returns:
//   - error: the first violation found, wrapping ErrInvalidCatalog
func (c *Catalog) Validate() error {
	seen := make(map[int]bool, len(c.Collectibles))
	for _, w := range c.Collectibles {
		if w.ID < 0 {
			return fmt.Errorf("%w: collectible id %d is negative", ErrInvalidCatalog, w.ID)
		}
		if seen[w.ID] {
			return fmt.Errorf("%w: duplicate collectible id %d", ErrInvalidCatalog, w.ID)
		}
		seen[w.ID] = true
	}
	if !positive(c.CollectibleSize) {
		return fmt.Errorf("%w: collectible_size must be positive, got %v", ErrInvalidCatalog, c.CollectibleSize)
	}

	ids := make(map[DestinationID]bool, len(c.Destinations))
	prev := -1
	for _, d := range c.Destinations {
		if d.ID == "" {
			return fmt.Errorf("%w: destination without id", ErrInvalidCatalog)
		}
		if ids[d.ID] {
			return fmt.Errorf("%w: duplicate destination %q", ErrInvalidCatalog, d.ID)
		}
		ids[d.ID] = true

		if d.Stops < 0 || d.Stops > len(c.Route) {
			return fmt.Errorf("%w: destination %q has %d stops, route has %d points",
				ErrInvalidCatalog, d.ID, d.Stops, len(c.Route))
		}
		if d.Stops <= prev {
			return fmt.Errorf("%w: destination %q stops %d must exceed previous destination's %d",
				ErrInvalidCatalog, d.ID, d.Stops, prev)
		}
		prev = d.Stops

		if !positive(d.Zone.Size) {
			return fmt.Errorf("%w: zone for %q must have a positive size, got %v", ErrInvalidCatalog, d.ID, d.Zone.Size)
		}
	}
	return nil
}

func positive(v common.Vec3) bool {
	return v[0] > 0 && v[1] > 0 && v[2] > 0
}

// Destination looks up a destination by id.
//
// Parameters:
//   - id: the destination id
//
// Returns:
//   - Destination: the destination
//   - bool: false if the id is unknown
func (c *Catalog) Destination(id DestinationID) (Destination, bool) {
	for _, d := range c.Destinations {
		if d.ID == id {
			return d, true
		}
	}
	return Destination{}, false
}

// Waypoints returns a copy of a destination's flight path.
//
// Parameters:
//   - id: the destination id
//
// Returns:
//   - []common.Vec3: the path, nil for an unknown id
//   - bool: false if the id is unknown
func (c *Catalog) Waypoints(id DestinationID) ([]common.Vec3, bool) {
	d, ok := c.Destination(id)
	if !ok {
		return nil, false
	}
	return d.Waypoints(), true
}

// Zones returns every destination's trigger zone in catalog order.
func (c *Catalog) Zones() []ZoneSpec {
	zones := make([]ZoneSpec, 0, len(c.Destinations))
	for _, d := range c.Destinations {
		zones = append(zones, d.Zone)
	}
	return zones
}

// CollectibleNear finds the collectible whose position lies within eps of p.
//
// Parameters:
//   - p: the position to test
//   - eps: match tolerance
//
// Returns:
//   - int: the collectible id
//   - bool: false if no collectible matches
func (c *Catalog) CollectibleNear(p common.Vec3, eps float32) (int, bool) {
	for _, w := range c.Collectibles {
		if w.Position.Near(p, eps) {
			return w.ID, true
		}
	}
	return 0, false
}

// Collectible looks up a collectible by id.
//
// Parameters:
//   - id: the collectible id
//
// Returns:
//   - Waypoint: the collectible
//   - bool: false if the id is unknown
func (c *Catalog) Collectible(id int) (Waypoint, bool) {
	for _, w := range c.Collectibles {
		if w.ID == id {
			return w, true
		}
	}
	return Waypoint{}, false
}
