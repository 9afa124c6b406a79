package launcher

import (
	"fmt"
	"os"
	"path/filepath"

	"vrsetup/internal/model"
)

// PosixGenerator writes a single /bin/sh launcher into the user-local
// bin directory and marks it executable.
type PosixGenerator struct{}

func (g *PosixGenerator) Generate(layout model.Layout) (string, error) {
	path := g.Paths(layout)[0]
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}

	script := fmt.Sprintf(`#!/bin/sh
# Generated by vrsetup %s. Do not edit; re-running the installer rewrites this file.
cd %q || exit 1
. ./%s/bin/activate
exec python %s "$@"
`, model.Version, layout.InstallRoot, model.EnvDir, model.AppFile)

	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		return "", fmt.Errorf("writing launcher: %w", err)
	}
	// WriteFile only applies the mode on creation; an overwritten launcher
	// keeps whatever mode it had, so set it explicitly.
	if err := os.Chmod(path, 0o755); err != nil {
		return "", fmt.Errorf("marking launcher executable: %w", err)
	}
	return path, nil
}

func (g *PosixGenerator) Paths(layout model.Layout) []string {
	return []string{filepath.Join(layout.BinDir, model.LauncherName)}
}
