package ui

import "time"

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconCopy     = "📋"
	IconError    = "❌"
)

// Text fragments
const (
	DashPlaceholder = "—"
)

// Layout sizing
const (
	StatusLabelWidth  float32 = 84
	ElapsedLabelWidth float32 = 72

	WindowWidth  float32 = 640
	WindowHeight float32 = 420
)

// Debounce durations
const (
	UIUpdateDebounce = 100 * time.Millisecond
)
