package pathenv

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Shell describes how a login shell is told about a new PATH directory.
type Shell interface {
	// Name is the short shell name ("zsh", "bash", "fish", "unknown").
	Name() string
	// ConfigFiles returns the rc file(s) the PATH line belongs in.
	ConfigFiles(home string) []string
	// PathLine renders the line to append for dir, preferring a
	// $HOME-relative form so the rc file survives a home move.
	PathLine(home, dir string) string
}

// ZshShell implements Shell for Zsh.
type ZshShell struct{}

func (s *ZshShell) Name() string { return "zsh" }

func (s *ZshShell) ConfigFiles(home string) []string {
	return []string{filepath.Join(home, ".zshrc")}
}

func (s *ZshShell) PathLine(home, dir string) string {
	return exportLine(home, dir)
}

// BashShell implements Shell for Bash.
type BashShell struct{}

func (s *BashShell) Name() string { return "bash" }

func (s *BashShell) ConfigFiles(home string) []string {
	return []string{filepath.Join(home, ".bashrc")}
}

func (s *BashShell) PathLine(home, dir string) string {
	return exportLine(home, dir)
}

// FishShell implements Shell for Fish. Fish does not read POSIX rc files,
// so the line goes into config.fish in fish's own syntax.
type FishShell struct{}

func (s *FishShell) Name() string { return "fish" }

func (s *FishShell) ConfigFiles(home string) []string {
	return []string{filepath.Join(home, ".config", "fish", "config.fish")}
}

func (s *FishShell) PathLine(home, dir string) string {
	return fmt.Sprintf("set -gx PATH %s $PATH", homeRelative(home, dir, "$HOME"))
}

// FallbackShell is used when detection fails: update both common rc files
// so the launcher is reachable whichever shell the user actually runs.
type FallbackShell struct{}

func (s *FallbackShell) Name() string { return "unknown" }

func (s *FallbackShell) ConfigFiles(home string) []string {
	return []string{
		filepath.Join(home, ".bashrc"),
		filepath.Join(home, ".zshrc"),
	}
}

func (s *FallbackShell) PathLine(home, dir string) string {
	return exportLine(home, dir)
}

// DetectShell identifies the caller's shell from $SHELL.
func DetectShell(shellPath string) Shell {
	base := filepath.Base(shellPath)
	switch {
	case strings.Contains(base, "zsh"):
		return &ZshShell{}
	case strings.Contains(base, "bash"):
		return &BashShell{}
	case strings.Contains(base, "fish"):
		return &FishShell{}
	}
	return &FallbackShell{}
}

func exportLine(home, dir string) string {
	return fmt.Sprintf(`export PATH="%s:$PATH"`, homeRelative(home, dir, "$HOME"))
}

// homeRelative rewrites dir as marker-relative ($HOME/...) when dir lives
// under home, otherwise returns it untouched.
func homeRelative(home, dir, marker string) string {
	if home == "" {
		return dir
	}
	rel, err := filepath.Rel(home, dir)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return dir
	}
	return marker + "/" + filepath.ToSlash(rel)
}
