package install

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// provisioningMarker flags a venv whose creation never finished. It is
// written before `python -m venv` starts and removed after it succeeds,
// so an interrupted run leaves a state the next run detects and redoes
// instead of trusting a half-built environment.
const provisioningMarker = ".provisioning"

// envComplete reports whether envDir holds a finished environment.
func envComplete(envDir string) bool {
	if info, err := os.Stat(envDir); err != nil || !info.IsDir() {
		return false
	}
	_, err := os.Stat(filepath.Join(envDir, provisioningMarker))
	return os.IsNotExist(err)
}

// createEnv builds the venv from scratch, replacing whatever was there.
func (in *Installer) createEnv(ctx context.Context, python string) error {
	envDir := in.Layout.EnvDir
	if err := os.RemoveAll(envDir); err != nil {
		return fmt.Errorf("removing previous environment: %w", err)
	}
	if err := os.MkdirAll(envDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", envDir, err)
	}
	marker := filepath.Join(envDir, provisioningMarker)
	if err := os.WriteFile(marker, []byte("venv creation in progress\n"), 0o644); err != nil {
		return fmt.Errorf("writing provisioning marker: %w", err)
	}

	if err := in.Runner.Run(ctx, python, "-m", "venv", envDir); err != nil {
		return fmt.Errorf("creating virtual environment: %w", err)
	}
	if err := os.Remove(marker); err != nil {
		return fmt.Errorf("clearing provisioning marker: %w", err)
	}
	return nil
}

// envPython returns the environment's own interpreter. Running it is the
// process-scoped equivalent of `source venv/bin/activate`: nothing leaks
// into the caller's shell.
func (in *Installer) envPython() string {
	if in.GOOS == "windows" {
		return filepath.Join(in.Layout.EnvDir, "Scripts", "python.exe")
	}
	return filepath.Join(in.Layout.EnvDir, "bin", "python")
}
