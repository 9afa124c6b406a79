package install

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"vrsetup/internal/model"
)

func TestPlanReflectsCurrentState(t *testing.T) {
	fx := newFixture(t)
	require.NoError(t, os.Remove(filepath.Join(fx.in.Layout.SourceDir, model.SecretsFile)))

	plan := fx.in.Plan()
	joined := strings.Join(plan, "\n")

	require.Contains(t, joined, "Resolve a Python interpreter")
	require.Contains(t, joined, "Create virtual environment")
	require.Contains(t, joined, "Skip "+model.SecretsFile)
	require.Contains(t, joined, "Write launcher")

	// Planning must not mutate anything.
	require.NoDirExists(t, fx.in.Layout.InstallRoot)

	// After a real install the plan switches to reuse.
	_, err := fx.in.Install(context.Background())
	require.NoError(t, err)
	joined = strings.Join(fx.in.Plan(), "\n")
	require.Contains(t, joined, "Reuse existing virtual environment")
}

func TestDefaultLayout(t *testing.T) {
	lay, err := DefaultLayout("~/src/recorder")
	require.NoError(t, err)

	require.Equal(t, ".voice-recorder", filepath.Base(lay.InstallRoot))
	require.Equal(t, lay.InstallRoot, filepath.Dir(lay.EnvDir))
	require.NotContains(t, lay.SourceDir, "~", "tilde must be expanded")
	require.NotEmpty(t, lay.BinDir)
}
