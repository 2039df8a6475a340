package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/skyfolio/common"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	if c.Start != common.V3(0, 10, 0) {
		t.Errorf("unexpected start %v", c.Start)
	}
	if len(c.Collectibles) != 12 {
		t.Errorf("expected 12 collectibles, got %d", len(c.Collectibles))
	}
	if len(c.Destinations) != 3 {
		t.Fatalf("expected 3 destinations, got %d", len(c.Destinations))
	}

	for _, id := range []DestinationID{WorkExperience, Projects, Contact} {
		if _, ok := c.Destination(id); !ok {
			t.Errorf("missing destination %q", id)
		}
	}
}

func TestDefaultWaypointsArePrefixes(t *testing.T) {
	c := Default()
	order := []DestinationID{WorkExperience, Projects, Contact}

	for i := 1; i < len(order); i++ {
		shorter, _ := c.Waypoints(order[i-1])
		longer, _ := c.Waypoints(order[i])
		if len(shorter) >= len(longer) {
			t.Fatalf("%s (%d) is not shorter than %s (%d)", order[i-1], len(shorter), order[i], len(longer))
		}
		for j := range shorter {
			if shorter[j] != longer[j] {
				t.Fatalf("%s diverges from %s at %d", order[i-1], order[i], j)
			}
		}
	}
}

func TestWaypointsReturnsCopy(t *testing.T) {
	c := Default()
	w, _ := c.Waypoints(WorkExperience)
	w[0] = common.V3(999, 999, 999)

	again, _ := c.Waypoints(WorkExperience)
	if again[0] == w[0] {
		t.Error("catalog waypoints were mutated through a returned slice")
	}
}

func TestZones(t *testing.T) {
	zones := Default().Zones()
	if len(zones) != 3 {
		t.Fatalf("expected 3 zones, got %d", len(zones))
	}
	z := zones[0]
	if z.Name != "work_experience" || z.Destination != WorkExperience {
		t.Errorf("unexpected zone identity %+v", z)
	}
	if !z.Box().Contains(common.V3(18, 35, 85)) {
		t.Error("zone box does not contain its own center")
	}
}

func TestCollectibleNear(t *testing.T) {
	c := Default()
	id, ok := c.CollectibleNear(common.V3(-17, 45.786, 45.436), 0.1)
	if !ok || id != 7 {
		t.Errorf("expected collectible 7, got %d, %v", id, ok)
	}
	if _, ok := c.CollectibleNear(common.V3(0, 0, 0), 0.1); ok {
		t.Error("unexpected match at origin")
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "stops not increasing",
			yaml: `
route: [[0,0,0],[1,0,0],[2,0,0]]
destinations:
  - { id: a, stops: 2, target: [0,0,0], zone: { position: [0,0,0], size: [1,1,1] } }
  - { id: b, stops: 2, target: [0,0,0], zone: { position: [0,0,0], size: [1,1,1] } }
`,
		},
		{
			name: "stops beyond route",
			yaml: `
route: [[0,0,0]]
destinations:
  - { id: a, stops: 3, target: [0,0,0], zone: { position: [0,0,0], size: [1,1,1] } }
`,
		},
		{
			name: "duplicate destination",
			yaml: `
route: [[0,0,0],[1,0,0]]
destinations:
  - { id: a, stops: 1, target: [0,0,0], zone: { position: [0,0,0], size: [1,1,1] } }
  - { id: a, stops: 2, target: [0,0,0], zone: { position: [0,0,0], size: [1,1,1] } }
`,
		},
		{
			name: "duplicate collectible",
			yaml: `
collectibles:
  - { id: 1, position: [0,0,0] }
  - { id: 1, position: [1,0,0] }
`,
		},
		{
			name: "empty zone",
			yaml: `
route: [[0,0,0]]
destinations:
  - { id: a, stops: 1, target: [0,0,0], zone: { position: [0,0,0], size: [0,1,1] } }
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Errorf("expected ErrInvalidCatalog, got %v", err)
			}
		})
	}
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("route: [[0,0]]"))
	if err == nil {
		t.Fatal("expected an error for a two-component point")
	}
	if errors.Is(err, ErrInvalidCatalog) {
		t.Error("decode errors should not be reported as validation errors")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "island.yaml")
	doc := `
start: [1, 2, 3]
route: [[0,0,0],[5,0,0]]
destinations:
  - { id: dock, stops: 2, target: [5,0,0], zone: { name: pier, position: [5,0,0], size: [4,4,4] } }
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	d, ok := c.Destination("dock")
	if !ok {
		t.Fatal("dock missing")
	}
	if d.Title != "dock" || d.Zone.Name != "pier" {
		t.Errorf("unexpected defaults title=%q zone=%q", d.Title, d.Zone.Name)
	}
	if len(d.Waypoints()) != 2 {
		t.Errorf("expected 2 waypoints, got %d", len(d.Waypoints()))
	}
	if c.CollectibleSize != common.V3(3, 3, 3) {
		t.Errorf("collectible size default not applied: %v", c.CollectibleSize)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
