package model

// Centralized icons for terminal output
// Using simple single-width characters for consistent terminal rendering
const (
	IconOK      = "✓" // Step completed
	IconWarn    = "!" // Optional input missing, step skipped
	IconFail    = "✗" // Fatal failure
	IconPending = "·" // Not run yet (TUI)
	IconArrow   = "→" // Path attribution
)
