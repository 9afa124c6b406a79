package launcher

import (
	"fmt"
	"os"
	"path/filepath"

	"vrsetup/internal/model"
)

// WindowsGenerator writes two launcher forms into the install root: a
// PowerShell script and a legacy batch file for cmd.exe users. Both stay
// inside the root so uninstalling the root removes them too.
type WindowsGenerator struct{}

func (g *WindowsGenerator) Generate(layout model.Layout) (string, error) {
	paths := g.Paths(layout)
	ps1, bat := paths[0], paths[1]

	psScript := fmt.Sprintf(`# Generated by vrsetup %s. Do not edit; re-running the installer rewrites this file.
Set-Location "%s"
& ".\%s\Scripts\Activate.ps1"
& python %s @args
`, model.Version, layout.InstallRoot, model.EnvDir, model.AppFile)

	batScript := fmt.Sprintf(`@echo off
rem Generated by vrsetup %s.
cd /d "%s"
call %s\Scripts\activate.bat
python %s %%*
`, model.Version, layout.InstallRoot, model.EnvDir, model.AppFile)

	if err := os.WriteFile(ps1, []byte(psScript), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", filepath.Base(ps1), err)
	}
	if err := os.WriteFile(bat, []byte(batScript), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", filepath.Base(bat), err)
	}
	return ps1, nil
}

func (g *WindowsGenerator) Paths(layout model.Layout) []string {
	return []string{
		filepath.Join(layout.InstallRoot, model.LauncherName+".ps1"),
		filepath.Join(layout.InstallRoot, model.LauncherName+".bat"),
	}
}
