package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW = 87 // W key (ASCII) - pan forward
	KeyA = 65 // A key (ASCII) - pan left
	KeyS = 83 // S key (ASCII) - pan back
	KeyD = 68 // D key (ASCII) - pan right
	KeyQ = 81 // Q key (ASCII) - pan up
	KeyE = 69 // E key (ASCII) - pan down

	KeyT = 84 // T key (ASCII) - start the guided tour
	KeyN = 78 // N key (ASCII) - skip to the next tour station
	KeyX = 88 // X key (ASCII) - stop the tour

	KeyH = 72 // H key (ASCII) - toggle shadows
	KeyP = 80 // P key (ASCII) - toggle post-processing

	KeySpace = 32  // Spacebar (ASCII)
	KeyEsc   = 256 // Escape key (GLFW)

	// Digit keys 1-4 force a quality tier; 0 clears the override.
	Key0 = 48
	Key1 = 49
	Key2 = 50
	Key3 = 51
	Key4 = 52
)

// Arrow keys orbit the camera when free-orbit input is enabled.
const (
	KeyRight = 262 // Right arrow (GLFW)
	KeyLeft  = 263 // Left arrow (GLFW)
	KeyDown  = 264 // Down arrow (GLFW)
	KeyUp    = 265 // Up arrow (GLFW)
)
