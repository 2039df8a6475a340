// Package input turns raw key state from any frontend into the per-tick movement intent the avatar
// controller consumes.
//
// Sign convention: left is +x, right is -x, forward is +z and backward is -z. Yaw 0 faces +z and
// positive yaw turns toward +x, so holding left steers the heading left when viewed from the chase
// camera.
package input

// Action is a logical movement action bound to one or more keys.
type Action uint8

const (
	ActionForward Action = iota
	ActionBackward
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	actionCount
)

var actionNames = [...]string{"forward", "backward", "left", "right", "up", "down"}

// String returns the action's logical name.
func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return "unknown"
}

// ParseAction maps a logical action name to an Action. "leftward" and "rightward" are accepted as
// aliases.
//
// Parameters:
//   - name: the action name
//
// Returns:
//   - Action: the matching action
//   - bool: false if the name is unknown
func ParseAction(name string) (Action, bool) {
	switch name {
	case "leftward":
		return ActionLeft, true
	case "rightward":
		return ActionRight, true
	}
	for i, n := range actionNames {
		if n == name {
			return Action(i), true
		}
	}
	return 0, false
}

// Intent is a snapshot of the movement flags, sampled once per tick.
type Intent struct {
	Forward  bool `json:"forward"`
	Backward bool `json:"backward"`
	Left     bool `json:"left"`
	Right    bool `json:"right"`
	Up       bool `json:"up"`
	Down     bool `json:"down"`
}

// Horizontal returns the steering intent: x is +1 for left and -1 for right, z is +1 for forward and
// -1 for backward. Opposing flags cancel.
func (i Intent) Horizontal() (x, z float32) {
	if i.Left {
		x++
	}
	if i.Right {
		x--
	}
	if i.Forward {
		z++
	}
	if i.Backward {
		z--
	}
	return x, z
}

// Vertical returns +1 for up, -1 for down, 0 when neither or both are held.
func (i Intent) Vertical() float32 {
	var y float32
	if i.Up {
		y++
	}
	if i.Down {
		y--
	}
	return y
}

// Moving reports whether the horizontal intent is nonzero.
func (i Intent) Moving() bool {
	x, z := i.Horizontal()
	return x != 0 || z != 0
}

// Any reports whether any axis has a nonzero intent.
func (i Intent) Any() bool {
	return i.Moving() || i.Vertical() != 0
}

// Set returns a copy of the intent with action a set to held.
func (i Intent) Set(a Action, held bool) Intent {
	switch a {
	case ActionForward:
		i.Forward = held
	case ActionBackward:
		i.Backward = held
	case ActionLeft:
		i.Left = held
	case ActionRight:
		i.Right = held
	case ActionUp:
		i.Up = held
	case ActionDown:
		i.Down = held
	}
	return i
}

// Or combines two intents, holding every action held in either.
func (i Intent) Or(o Intent) Intent {
	return Intent{
		Forward:  i.Forward || o.Forward,
		Backward: i.Backward || o.Backward,
		Left:     i.Left || o.Left,
		Right:    i.Right || o.Right,
		Up:       i.Up || o.Up,
		Down:     i.Down || o.Down,
	}
}

// Source produces the current intent. Implementations must be safe to sample from the tick
// goroutine while being fed from another.
type Source interface {
	// Intent returns the current intent snapshot.
	//
	// Returns:
	//   - Intent: the held actions
	Intent() Intent
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func() Intent

// Intent calls f.
func (f SourceFunc) Intent() Intent {
	return f()
}

type mergedSource []Source

// Merge combines sources so an action is held when any of them holds it. Nil sources are skipped.
//
// Parameters:
//   - sources: the sources to combine
//
// Returns:
//   - Source: the combined source
func Merge(sources ...Source) Source {
	m := make(mergedSource, 0, len(sources))
	for _, s := range sources {
		if s != nil {
			m = append(m, s)
		}
	}
	return m
}

func (m mergedSource) Intent() Intent {
	var in Intent
	for _, s := range m {
		in = in.Or(s.Intent())
	}
	return in
}
