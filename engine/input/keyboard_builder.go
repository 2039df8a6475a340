package input

import "time"

// KeyboardBuilderOption is a functional option for configuring a Keyboard.
type KeyboardBuilderOption func(*keyboardImpl)

// WithBindings replaces the default key bindings.
//
// Parameters:
//   - bindings: key code to action map; copied
//
// Returns:
//   - KeyboardBuilderOption: option function to apply
func WithBindings(bindings map[uint32]Action) KeyboardBuilderOption {
	return func(k *keyboardImpl) {
		k.bindings = make(map[uint32]Action, len(bindings))
		for key, a := range bindings {
			k.bindings[key] = a
		}
	}
}

// WithHoldWindow sets how long a tapped key stays held without a repeat.
//
// Parameters:
//   - d: the hold window
//
// Returns:
//   - KeyboardBuilderOption: option function to apply
func WithHoldWindow(d time.Duration) KeyboardBuilderOption {
	return func(k *keyboardImpl) {
		if d > 0 {
			k.holdWindow = d
		}
	}
}

// WithClock replaces the wall clock used to expire taps.
//
// Parameters:
//   - now: returns the current time
//
// Returns:
//   - KeyboardBuilderOption: option function to apply
func WithClock(now func() time.Time) KeyboardBuilderOption {
	return func(k *keyboardImpl) {
		if now != nil {
			k.now = now
		}
	}
}
