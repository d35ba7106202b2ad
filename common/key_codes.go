package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyF     = 70  // F key (ASCII): toggle free-look
	KeyM     = 77  // M key (ASCII): toggle audio mute
	KeyN     = 78  // N key (ASCII): toggle day/night
	KeyR     = 82  // R key (ASCII): toggle rain
	KeySpace = 32  // Spacebar (ASCII): hold to activate the gate
	KeyEsc   = 256 // Escape key (GLFW)

	Key1 = 49 // 1 key (ASCII): focus left pillar
	Key2 = 50 // 2 key (ASCII): focus center pillar
	Key3 = 51 // 3 key (ASCII): focus right pillar
)
