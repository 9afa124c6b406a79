// Package pathenv makes the launcher directory reachable from the user's
// shell. All mutation goes through Registrar.Ensure, which is idempotent:
// running it any number of times leaves at most one PATH entry behind.
package pathenv

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Registrar is the environment registrar: one idempotent ensure operation
// over whatever persistent PATH mechanism the platform uses (rc files on
// POSIX, the user environment registry key on Windows).
type Registrar interface {
	// OnPath reports whether dir is already visible on the process PATH.
	OnPath(dir string) bool
	// Ensure makes dir part of the persistent PATH, appending at most
	// once. It returns the files (or registry key) it actually modified;
	// an empty slice means everything was already in place.
	Ensure(dir string) ([]string, error)
}

// ShellRegistrar appends guarded PATH lines to shell rc files.
type ShellRegistrar struct {
	Home  string
	Shell Shell
	// PathVar overrides os.Getenv("PATH") in tests.
	PathVar string
}

func NewShellRegistrar(home string, shell Shell) *ShellRegistrar {
	return &ShellRegistrar{Home: home, Shell: shell}
}

func (r *ShellRegistrar) OnPath(dir string) bool {
	pathVar := r.PathVar
	if pathVar == "" {
		pathVar = os.Getenv("PATH")
	}
	clean := filepath.Clean(dir)
	for _, p := range filepath.SplitList(pathVar) {
		if p != "" && filepath.Clean(p) == clean {
			return true
		}
	}
	return false
}

func (r *ShellRegistrar) Ensure(dir string) ([]string, error) {
	line := r.Shell.PathLine(r.Home, dir)
	var touched []string
	for _, rc := range r.Shell.ConfigFiles(r.Home) {
		present, err := fileHasLine(rc, line)
		if err != nil {
			return touched, fmt.Errorf("checking %s: %w", rc, err)
		}
		if present {
			continue
		}
		if err := appendLine(rc, line); err != nil {
			return touched, fmt.Errorf("updating %s: %w", rc, err)
		}
		touched = append(touched, rc)
	}
	return touched, nil
}

// fileHasLine scans path for an exact (whitespace-trimmed) match of line.
// A missing file simply has no lines.
func fileHasLine(path, line string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	want := strings.TrimSpace(line)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == want {
			return true, nil
		}
	}
	return false, scanner.Err()
}

func appendLine(path, line string) error {
	// config.fish lives in a subdirectory that may not exist yet.
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = fmt.Fprintf(f, "\n# Added by the voice-recorder installer\n%s\n", line)
	return err
}
