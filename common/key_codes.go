package common

// Virtual key codes for the visualizer's keyboard shortcuts.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyN   = 78  // N key (ASCII), adds a wave
	KeyR   = 82  // R key (ASCII), resets the turntable
	KeyEsc = 256 // Escape key (GLFW)
)
