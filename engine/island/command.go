package island

import (
	"strings"

	"github.com/Carmen-Shannon/skyfolio/common"
	"github.com/Carmen-Shannon/skyfolio/engine/catalog"
)

// CommandType selects what a Command does.
type CommandType uint8

const (
	CommandMoveTo CommandType = iota + 1
	CommandSkip
	CommandTeleport
	CommandCancel
)

func (c CommandType) String() string {
	switch c {
	case CommandMoveTo:
		return "move_to"
	case CommandSkip:
		return "skip"
	case CommandTeleport:
		return "teleport"
	case CommandCancel:
		return "cancel"
	}
	return "unknown"
}

// Command is a navigation request queued from outside the tick goroutine.
type Command struct {
	Type        CommandType
	Destination catalog.DestinationID
	Position    common.Vec3
	Face        *common.Vec3
}

// Step is the destination whose overlay is currently open.
type Step string

const (
	StepIdle           Step = "IDLE"
	StepWorkExperience Step = "WORK_EXPERIENCE"
	StepProjects       Step = "PROJECTS"
	StepContact        Step = "CONTACT"
)

// StepFor maps a destination to its overlay step.
func StepFor(id catalog.DestinationID) Step {
	if id == "" {
		return StepIdle
	}
	return Step(strings.ToUpper(string(id)))
}

// CommandForKey maps the navigation keys shared by every front-end: 1, 2 and 3 fly to the work
// experience, projects and contact destinations, K skips the flight and X cancels it.
//
// Parameters:
//   - key: a virtual key code
//
// Returns:
//   - Command: the command bound to the key
//   - bool: false if the key is not a navigation key
func CommandForKey(key uint32) (Command, bool) {
	switch key {
	case common.Key1:
		return Command{Type: CommandMoveTo, Destination: catalog.WorkExperience}, true
	case common.Key2:
		return Command{Type: CommandMoveTo, Destination: catalog.Projects}, true
	case common.Key3:
		return Command{Type: CommandMoveTo, Destination: catalog.Contact}, true
	case common.KeyK:
		return Command{Type: CommandSkip}, true
	case common.KeyX:
		return Command{Type: CommandCancel}, true
	}
	return Command{}, false
}
