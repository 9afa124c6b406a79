//go:build !windows

package pathenv

import "os"

// New returns the registrar for the caller's shell, detected from $SHELL.
func New(home string) Registrar {
	return NewShellRegistrar(home, DetectShell(os.Getenv("SHELL")))
}
