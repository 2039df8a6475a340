package avatar

import (
	"github.com/Carmen-Shannon/skyfolio/common"
	"github.com/Carmen-Shannon/skyfolio/engine/catalog"
)

// Mode is the avatar's movement mode: either ModeManual or ModeFollowingPath.
type Mode interface {
	// String returns the mode's wire name.
	String() string

	mode()
}

// ModeManual drives the avatar from live keyboard intent.
type ModeManual struct{}

// ModeFollowingPath flies the avatar through a list of waypoints independent of keyboard intent.
type ModeFollowingPath struct {
	PathState
}

// PathState is a snapshot of an in-flight path.
type PathState struct {
	// Path is the resolved list of points being flown, including any prefix point.
	Path []common.Vec3
	// Index is the position in Path currently being approached.
	Index int
	// Destination is the navigation destination the path leads to, empty for a raw path.
	Destination catalog.DestinationID
}

func (ModeManual) String() string        { return "manual" }
func (ModeManual) mode()                 {}
func (ModeFollowingPath) String() string { return "following_path" }
func (ModeFollowingPath) mode()          {}

// IsFollowing reports whether m is ModeFollowingPath.
func IsFollowing(m Mode) bool {
	_, ok := m.(ModeFollowingPath)
	return ok
}
