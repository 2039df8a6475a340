// Package event carries typed notifications from the simulation to any number of listeners
// (overlay shells, the websocket bridge, the terminal HUD, audio).
package event

import "github.com/Carmen-Shannon/skyfolio/common"

// EventType identifies the kind of an Event.
type EventType uint8

const (
	// EventModeChanged fires when the avatar switches between manual flight and path following.
	EventModeChanged EventType = iota + 1
	// EventArrived fires once when a scripted move reaches its destination.
	EventArrived
	// EventPathCancelled fires when an in-flight path is superseded or interrupted.
	// Its arrival callback is dropped.
	EventPathCancelled
	// EventWaypointReached fires each time the path index advances.
	EventWaypointReached
	// EventCollected fires when a collectible is added to the collected set.
	EventCollected
	// EventCollectionComplete fires once when the collected percentage crosses to 100.
	EventCollectionComplete
	// EventZoneEnter fires when the avatar enters a trigger zone.
	EventZoneEnter
	// EventZoneExit fires when the avatar leaves a trigger zone.
	EventZoneExit
	// EventDestinationChanged fires when the active overlay destination changes.
	EventDestinationChanged
)

var typeNames = map[EventType]string{
	EventModeChanged:        "mode_changed",
	EventArrived:            "arrived",
	EventPathCancelled:      "path_cancelled",
	EventWaypointReached:    "waypoint_reached",
	EventCollected:          "collected",
	EventCollectionComplete: "collection_complete",
	EventZoneEnter:          "zone_enter",
	EventZoneExit:           "zone_exit",
	EventDestinationChanged: "destination_changed",
}

// String returns the wire name of the event type.
func (t EventType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Event is a single notification. Payload holds one of the *Payload structs below, matching Type.
type Event struct {
	Type    EventType
	Tick    uint64
	Payload any
}

// ModePayload accompanies EventModeChanged.
type ModePayload struct {
	Mode string `json:"mode"`
}

// DestinationPayload accompanies EventArrived, EventPathCancelled and EventDestinationChanged.
// An empty Destination means no destination (idle overlay, or a raw path with no destination).
type DestinationPayload struct {
	Destination string `json:"destination"`
}

// WaypointPayload accompanies EventWaypointReached.
type WaypointPayload struct {
	Index    int         `json:"index"`
	Position common.Vec3 `json:"position"`
}

// CollectedPayload accompanies EventCollected and EventCollectionComplete.
type CollectedPayload struct {
	ID         int     `json:"id"`
	Count      int     `json:"count"`
	Total      int     `json:"total"`
	Percentage float32 `json:"percentage"`
}

// ZonePayload accompanies EventZoneEnter and EventZoneExit.
type ZonePayload struct {
	Name        string `json:"name"`
	Destination string `json:"destination,omitempty"`
	FirstVisit  bool   `json:"first_visit,omitempty"`
}
