package install

import (
	"fmt"
	"path/filepath"

	"vrsetup/internal/model"
)

// Plan returns the human-readable actions an install run would perform,
// without touching anything. Guards are evaluated against current state
// so the plan reflects what would really happen.
func (in *Installer) Plan() []string {
	lay := in.Layout
	actions := []string{
		fmt.Sprintf("Resolve a Python interpreter (%v)", interpreterCandidates(in.GOOS)),
		fmt.Sprintf("Ensure directory exists: %s", lay.InstallRoot),
		fmt.Sprintf("Copy %s -> %s", filepath.Join(lay.SourceDir, model.AppFile), lay.InstallRoot),
	}

	for _, optional := range []string{model.ManifestFile, model.SecretsFile} {
		src := filepath.Join(lay.SourceDir, optional)
		if fileExists(src) {
			actions = append(actions, fmt.Sprintf("Copy %s -> %s", src, lay.InstallRoot))
		} else {
			actions = append(actions, fmt.Sprintf("Skip %s (not present in %s)", optional, lay.SourceDir))
		}
	}

	if envComplete(lay.EnvDir) && !in.Fresh {
		actions = append(actions, fmt.Sprintf("Reuse existing virtual environment at %s", lay.EnvDir))
	} else {
		actions = append(actions, fmt.Sprintf("Create virtual environment at %s", lay.EnvDir))
	}
	actions = append(actions,
		"Upgrade pip inside the environment",
		fmt.Sprintf("Install dependencies from %s (if staged)", model.ManifestFile),
	)

	for _, p := range in.Launcher.Paths(lay) {
		actions = append(actions, "Write launcher: "+p)
	}

	if in.Registrar.OnPath(lay.BinDir) {
		actions = append(actions, fmt.Sprintf("%s already on PATH, nothing to register", lay.BinDir))
	} else {
		actions = append(actions, fmt.Sprintf("Ensure %s is on the persistent PATH (append at most once)", lay.BinDir))
	}
	return actions
}
