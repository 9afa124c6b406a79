// Package launcher generates the small scripts users actually run.
// A launcher changes into the install root, activates the bundled venv,
// and forwards every argument to the application entry point.
package launcher

import (
	"vrsetup/internal/model"
)

// Generator writes the platform's launcher form(s).
type Generator interface {
	// Generate writes the launcher(s), overwriting any existing copies,
	// and returns the path of the primary one.
	Generate(layout model.Layout) (string, error)
	// Paths lists every file Generate writes, for uninstall.
	Paths(layout model.Layout) []string
}

// ForPlatform selects the generator for a GOOS value.
func ForPlatform(goos string) Generator {
	if goos == "windows" {
		return &WindowsGenerator{}
	}
	return &PosixGenerator{}
}
