//go:build windows

package pathenv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/windows/registry"
)

const userEnvKey = `Environment`

// RegistryRegistrar mutates the persistent user-level Path value directly
// instead of appending to a text file. Running terminals only pick the
// change up after a restart; the summary tells the user so.
type RegistryRegistrar struct {
	Home string
}

// New returns the registry-backed registrar on Windows.
func New(home string) Registrar {
	return &RegistryRegistrar{Home: home}
}

func (r *RegistryRegistrar) OnPath(dir string) bool {
	clean := filepath.Clean(dir)
	for _, p := range filepath.SplitList(os.Getenv("PATH")) {
		if p != "" && strings.EqualFold(filepath.Clean(p), clean) {
			return true
		}
	}
	return false
}

func (r *RegistryRegistrar) Ensure(dir string) ([]string, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, userEnvKey, registry.QUERY_VALUE|registry.SET_VALUE)
	if err != nil {
		return nil, fmt.Errorf("opening user environment key: %w", err)
	}
	defer key.Close()

	current, _, err := key.GetStringValue("Path")
	if err != nil && err != registry.ErrNotExist {
		return nil, fmt.Errorf("reading user Path: %w", err)
	}

	entry := homeRelative(r.Home, dir, "%USERPROFILE%")
	entry = filepath.FromSlash(entry)
	for _, p := range strings.Split(current, ";") {
		if strings.EqualFold(strings.TrimSpace(p), entry) {
			return nil, nil
		}
	}

	updated := entry
	if strings.TrimSpace(current) != "" {
		updated = strings.TrimRight(current, ";") + ";" + entry
	}
	// EXPAND_SZ so %USERPROFILE% is resolved when the variable is read.
	if err := key.SetExpandStringValue("Path", updated); err != nil {
		return nil, fmt.Errorf("writing user Path: %w", err)
	}
	return []string{`HKCU\` + userEnvKey + `\Path`}, nil
}
