package pathenv

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectShell(t *testing.T) {
	cases := []struct {
		shellPath string
		want      string
	}{
		{"/bin/zsh", "zsh"},
		{"/usr/local/bin/zsh", "zsh"},
		{"/bin/bash", "bash"},
		{"/usr/bin/fish", "fish"},
		{"/bin/dash", "unknown"},
		{"", "unknown"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, DetectShell(tc.shellPath).Name(), "shell path %q", tc.shellPath)
	}
}

func TestPathLineIsHomeRelative(t *testing.T) {
	home := filepath.Join("/", "home", "alice")
	bin := filepath.Join(home, ".local", "bin")

	require.Equal(t, `export PATH="$HOME/.local/bin:$PATH"`, (&ZshShell{}).PathLine(home, bin))
	require.Equal(t, `export PATH="$HOME/.local/bin:$PATH"`, (&BashShell{}).PathLine(home, bin))
	require.Equal(t, "set -gx PATH $HOME/.local/bin $PATH", (&FishShell{}).PathLine(home, bin))
}

func TestPathLineOutsideHomeStaysAbsolute(t *testing.T) {
	line := (&ZshShell{}).PathLine("/home/alice", "/opt/tools/bin")
	require.Equal(t, `export PATH="/opt/tools/bin:$PATH"`, line)
}

func TestConfigFiles(t *testing.T) {
	home := "/home/alice"

	require.Equal(t, []string{"/home/alice/.zshrc"}, (&ZshShell{}).ConfigFiles(home))
	require.Equal(t, []string{"/home/alice/.bashrc"}, (&BashShell{}).ConfigFiles(home))
	require.Equal(t,
		[]string{filepath.Join(home, ".config", "fish", "config.fish")},
		(&FishShell{}).ConfigFiles(home))

	// Detection failure updates both common rc files.
	require.Len(t, (&FallbackShell{}).ConfigFiles(home), 2)
}
