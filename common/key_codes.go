package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeySpace = 32  // Spacebar (ASCII)
	KeyEsc   = 256 // Escape key (GLFW)
	KeyRight = 262 // Right arrow (GLFW)
	KeyLeft  = 263 // Left arrow (GLFW)

	Key0 = 48 // 0 key (ASCII)
	Key1 = 49 // 1 key (ASCII)
	Key2 = 50 // 2 key (ASCII)
	Key3 = 51 // 3 key (ASCII)
	Key4 = 52 // 4 key (ASCII)
)

// SceneKey maps a number key to a scene index. Returns false for any other key.
//
// Parameters:
//   - keyCode: the virtual key code
//
// Returns:
//   - int: the scene index (0 for Key0 .. 4 for Key4)
//   - bool: true if the key selects a scene
func SceneKey(keyCode uint32) (int, bool) {
	if keyCode < Key0 || keyCode > Key4 {
		return 0, false
	}
	return int(keyCode - Key0), true
}
