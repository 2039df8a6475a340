package bridge

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/skyfolio/common"
	"github.com/Carmen-Shannon/skyfolio/engine/avatar"
	"github.com/Carmen-Shannon/skyfolio/engine/camera"
	"github.com/Carmen-Shannon/skyfolio/engine/catalog"
	"github.com/Carmen-Shannon/skyfolio/engine/event"
	"github.com/Carmen-Shannon/skyfolio/engine/input"
	"github.com/Carmen-Shannon/skyfolio/engine/island"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalidCommand is wrapped by every rejected client message.
var ErrInvalidCommand = errors.New("invalid command")

//go:embed command.schema.json
var commandSchemaJSON string

var commandSchema = jsonschema.MustCompileString("command.schema.json", commandSchemaJSON)

const (
	TypeCommand = "command"
	TypeInput   = "input"
	TypeWelcome = "welcome"
	TypeFrame   = "frame"
	TypeEvent   = "event"
	TypeError   = "error"
)

// Message is an inbound client message after schema validation.
type Message struct {
	Type        string       `json:"type"`
	Command     string       `json:"command,omitempty"`
	Destination string       `json:"destination,omitempty"`
	Position    *common.Vec3 `json:"position,omitempty"`
	Face        *common.Vec3 `json:"face,omitempty"`
	Action      string       `json:"action,omitempty"`
	Held        bool         `json:"held,omitempty"`
}

// Decode validates raw against the client message schema and decodes it.
//
// Parameters:
//   - raw: the JSON text received from a client
//
// Returns:
//   - Message: the decoded message
//   - error: malformed JSON or a schema violation, wrapping ErrInvalidCommand
func Decode(raw []byte) (Message, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}
	if err := commandSchema.Validate(doc); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}
	var m Message
	if err := json.Unmarshal(raw, &m); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}
	return m, nil
}

// ToCommand converts a command message to an island command, rejecting destinations the catalog
// does not know.
//
// Parameters:
//   - cat: the catalog destinations are checked against, or nil to skip the check
//
// Returns:
//   - island.Command: the command to submit
//   - error: the message is not a command or names an unknown destination
func (m Message) ToCommand(cat *catalog.Catalog) (island.Command, error) {
	if m.Type != TypeCommand {
		return island.Command{}, fmt.Errorf("%w: %s message is not a command", ErrInvalidCommand, m.Type)
	}
	switch m.Command {
	case "move_to":
		id := catalog.DestinationID(m.Destination)
		if cat != nil {
			if _, ok := cat.Destination(id); !ok {
				return island.Command{}, fmt.Errorf("%w: unknown destination %q", ErrInvalidCommand, m.Destination)
			}
		}
		return island.Command{Type: island.CommandMoveTo, Destination: id}, nil
	case "skip":
		return island.Command{Type: island.CommandSkip}, nil
	case "cancel":
		return island.Command{Type: island.CommandCancel}, nil
	case "teleport":
		return island.Command{Type: island.CommandTeleport, Position: *m.Position, Face: m.Face}, nil
	}
	return island.Command{}, fmt.Errorf("%w: unknown command %q", ErrInvalidCommand, m.Command)
}

// ToAction resolves an input message's action name.
func (m Message) ToAction() (input.Action, error) {
	a, ok := input.ParseAction(m.Action)
	if !ok {
		return 0, fmt.Errorf("%w: unknown action %q", ErrInvalidCommand, m.Action)
	}
	return a, nil
}

// DestinationInfo lists a navigable destination in the welcome message.
type DestinationInfo struct {
	ID    catalog.DestinationID `json:"id"`
	Title string                `json:"title"`
}

// WelcomeMessage is the first message a client receives.
type WelcomeMessage struct {
	Type         string            `json:"type"`
	SessionID    string            `json:"session_id"`
	Destinations []DestinationInfo `json:"destinations"`
	Total        int               `json:"total"`
}

// FrameMessage is the per-frame state a renderer draws from.
type FrameMessage struct {
	Type        string             `json:"type"`
	Tick        uint64             `json:"tick"`
	Position    common.Vec3        `json:"position"`
	Velocity    common.Vec3        `json:"velocity"`
	Yaw         float32            `json:"yaw"`
	BodyYaw     float32            `json:"body_yaw"`
	Tilt        float32            `json:"tilt"`
	Model       [16]float32        `json:"model"`
	Camera      camera.Pose        `json:"camera"`
	Mode        string             `json:"mode"`
	Destination string             `json:"destination,omitempty"`
	Fade        float32            `json:"fade"`
	Progress    float32            `json:"progress"`
	Collected   []int              `json:"collected"`
	Total       int                `json:"total"`
	Step        island.Step        `json:"step"`
	CanSkip     bool               `json:"can_skip"`
	Zones       []island.ZoneState `json:"zones"`
	// ViewProjection is ready to upload as the camera uniform.
	ViewProjection [16]float32 `json:"view_projection"`
	InView         []int       `json:"in_view"`
}

// NewFrameMessage flattens a snapshot. The model matrix places the avatar with yaw about Y and the
// bank tilt about X.
//
// Parameters:
//   - snap: the island state after a tick
//
// Returns:
//   - FrameMessage: the message to send
func NewFrameMessage(snap island.Snapshot) FrameMessage {
	f := snap.Frame
	msg := FrameMessage{
		Type:      TypeFrame,
		Tick:      snap.Tick,
		Position:  f.Position,
		Velocity:  f.Velocity,
		Yaw:       f.Yaw,
		BodyYaw:   f.BodyYaw,
		Tilt:      f.Tilt,
		Camera:    f.Camera,
		Mode:      avatar.ModeManual{}.String(),
		Fade:      f.Fade,
		Progress:  snap.Progress,
		Collected: snap.Collected,
		Total:     snap.Total,
		Step:      snap.Step,
		CanSkip:   snap.CanSkip,
		Zones:     snap.Zones,

		ViewProjection: snap.ViewProjection,
		InView:         snap.InView,
	}
	if f.Mode != nil {
		msg.Mode = f.Mode.String()
	}
	if m, ok := f.Mode.(avatar.ModeFollowingPath); ok {
		msg.Destination = string(m.Destination)
	}
	if msg.Collected == nil {
		msg.Collected = []int{}
	}
	if msg.InView == nil {
		msg.InView = []int{}
	}
	common.BuildModelMatrix(msg.Model[:], f.Position, common.V3(f.Tilt, f.Yaw, 0), common.V3(1, 1, 1))
	return msg
}

// EventMessage mirrors a bus event.
type EventMessage struct {
	Type    string `json:"type"`
	Event   string `json:"event"`
	Tick    uint64 `json:"tick"`
	Payload any    `json:"payload,omitempty"`
}

// NewEventMessage wraps a bus event for clients.
func NewEventMessage(e event.Event) EventMessage {
	return EventMessage{
		Type:    TypeEvent,
		Event:   e.Type.String(),
		Tick:    e.Tick,
		Payload: e.Payload,
	}
}

// ErrorMessage reports a rejected client message.
type ErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}
