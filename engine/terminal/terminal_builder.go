package terminal

import (
	"time"

	"github.com/Carmen-Shannon/skyfolio/engine/input"
)

// TerminalBuilderOption is a functional option for configuring a Terminal.
type TerminalBuilderOption func(*terminalImpl)

// WithKeyboard replaces the key state the terminal taps into.
//
// Parameters:
//   - k: the keyboard
//
// Returns:
//   - TerminalBuilderOption: option function to apply
func WithKeyboard(k input.Keyboard) TerminalBuilderOption {
	return func(t *terminalImpl) {
		t.keyboard = k
	}
}

// WithOnQuit is called when the quit key is pressed.
//
// Parameters:
//   - fn: the quit callback
//
// Returns:
//   - TerminalBuilderOption: option function to apply
func WithOnQuit(fn func()) TerminalBuilderOption {
	return func(t *terminalImpl) {
		t.onQuit = fn
	}
}

// WithRefresh sets the HUD redraw interval.
//
// Parameters:
//   - d: the redraw interval
//
// Returns:
//   - TerminalBuilderOption: option function to apply
func WithRefresh(d time.Duration) TerminalBuilderOption {
	return func(t *terminalImpl) {
		if d > 0 {
			t.refresh = d
		}
	}
}

// WithLogLines sets how many event lines the HUD keeps.
//
// Parameters:
//   - n: the number of lines
//
// Returns:
//   - TerminalBuilderOption: option function to apply
func WithLogLines(n int) TerminalBuilderOption {
	return func(t *terminalImpl) {
		if n > 0 {
			t.maxLog = n
		}
	}
}
