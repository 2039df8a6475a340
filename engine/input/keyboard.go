package input

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/skyfolio/common"
)

// Keyboard is a Source fed by key events from a window or terminal.
// All methods are safe for concurrent use.
type Keyboard interface {
	Source

	// KeyDown marks a key held until the matching KeyUp.
	//
	// Parameters:
	//   - key: the key code (see common key constants)
	KeyDown(key uint32)

	// KeyUp releases a held key.
	//
	// Parameters:
	//   - key: the key code
	KeyUp(key uint32)

	// Tap marks a key held for the hold window. Frontends without key-up events call Tap on every
	// key press or repeat; the key stays held while repeats keep arriving.
	//
	// Parameters:
	//   - key: the key code
	Tap(key uint32)

	// Reset releases every key.
	Reset()

	// Bind maps a key to an action, replacing any previous binding for that key.
	//
	// Parameters:
	//   - key: the key code
	//   - action: the action the key drives
	Bind(key uint32, action Action)
}

type keyboardImpl struct {
	mu *sync.Mutex

	bindings   map[uint32]Action
	held       map[uint32]bool
	tappedAt   map[uint32]time.Time
	holdWindow time.Duration
	now        func() time.Time
}

var _ Keyboard = &keyboardImpl{}

// DefaultBindings returns W/A/S/D and the arrow keys for horizontal movement, Space for up and
// Shift or C for down.
//
// Returns:
//   - map[uint32]Action: a fresh binding map
func DefaultBindings() map[uint32]Action {
	return map[uint32]Action{
		common.KeyW:          ActionForward,
		common.KeyUp:         ActionForward,
		common.KeyS:          ActionBackward,
		common.KeyDown:       ActionBackward,
		common.KeyA:          ActionLeft,
		common.KeyLeft:       ActionLeft,
		common.KeyD:          ActionRight,
		common.KeyRight:      ActionRight,
		common.KeySpace:      ActionUp,
		common.KeyLeftShift:  ActionDown,
		common.KeyRightShift: ActionDown,
		common.KeyC:          ActionDown,
	}
}

// NewKeyboard creates a Keyboard with the default bindings and a 150ms tap hold window.
//
// Parameters:
//   - options: functional options to configure the keyboard
//
// Returns:
//   - Keyboard: the newly created keyboard
func NewKeyboard(options ...KeyboardBuilderOption) Keyboard {
	k := &keyboardImpl{
		mu:         &sync.Mutex{},
		bindings:   DefaultBindings(),
		held:       make(map[uint32]bool),
		tappedAt:   make(map[uint32]time.Time),
		holdWindow: 150 * time.Millisecond,
		now:        time.Now,
	}
	for _, option := range options {
		option(k)
	}
	return k
}

func (k *keyboardImpl) KeyDown(key uint32) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.held[key] = true
}

func (k *keyboardImpl) KeyUp(key uint32) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.held, key)
	delete(k.tappedAt, key)
}

func (k *keyboardImpl) Tap(key uint32) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.tappedAt[key] = k.now()
}

func (k *keyboardImpl) Reset() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.held = make(map[uint32]bool)
	k.tappedAt = make(map[uint32]time.Time)
}

func (k *keyboardImpl) Bind(key uint32, action Action) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.bindings[key] = action
}

func (k *keyboardImpl) Intent() Intent {
	k.mu.Lock()
	defer k.mu.Unlock()

	var in Intent
	for key := range k.held {
		if a, ok := k.bindings[key]; ok {
			in = in.Set(a, true)
		}
	}

	now := k.now()
	for key, at := range k.tappedAt {
		if now.Sub(at) > k.holdWindow {
			delete(k.tappedAt, key)
			continue
		}
		if a, ok := k.bindings[key]; ok {
			in = in.Set(a, true)
		}
	}
	return in
}
