package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW         = 87  // W key (ASCII)
	KeyA         = 65  // A key (ASCII)
	KeyS         = 83  // S key (ASCII)
	KeyD         = 68  // D key (ASCII)
	KeyC         = 67  // C key (ASCII)
	KeyK         = 75  // K key (ASCII)
	KeyX         = 88  // X key (ASCII)
	KeySpace     = 32  // Spacebar (ASCII)
	KeyBackspace = 259 // Backspace key (GLFW)
	KeyEsc       = 256 // Escape key (GLFW)

	Key1 = 49 // 1 key (ASCII)
	Key2 = 50 // 2 key (ASCII)
	Key3 = 51 // 3 key (ASCII)
)

// Arrow and modifier keys.
const (
	KeyRight      = 262 // Right arrow (GLFW)
	KeyLeft       = 263 // Left arrow (GLFW)
	KeyDown       = 264 // Down arrow (GLFW)
	KeyUp         = 265 // Up arrow (GLFW)
	KeyLeftShift  = 340 // Left Shift (GLFW)
	KeyRightShift = 344 // Right Shift (GLFW)
)

// KeyForRune maps a printable terminal rune onto the matching virtual key code so terminal and
// window front-ends share one key map. Lowercase letters map to their uppercase code.
//
// Parameters:
//   - r: the rune reported by the terminal
//
// Returns:
//   - uint32: the virtual key code
//   - bool: false if the rune has no printable key code
func KeyForRune(r rune) (uint32, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return uint32(r - 'a' + 'A'), true
	case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ':
		return uint32(r), true
	}
	return 0, false
}
