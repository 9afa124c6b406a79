package install

import (
	"fmt"
	"os/exec"
	"strings"
)

// lookPathDefault is what Installer.LookPath falls back to.
var lookPathDefault = exec.LookPath

// interpreterCandidates lists command names to probe, in preference
// order. Windows adds the py launcher, which is how python.org installs
// usually land on PATH there.
func interpreterCandidates(goos string) []string {
	names := []string{"python3", "python"}
	if goos == "windows" {
		names = append(names, "py")
	}
	return names
}

// findInterpreter resolves a Python on PATH via lookPath, or explains
// what to install. Nothing on disk is touched before this succeeds.
func findInterpreter(goos string, lookPath func(string) (string, error)) (string, error) {
	candidates := interpreterCandidates(goos)
	for _, name := range candidates {
		if path, err := lookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf(
		"no Python interpreter found (tried %s); install Python 3 from https://www.python.org and re-run",
		strings.Join(candidates, ", "))
}
