package install

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"vrsetup/internal/launcher"
	"vrsetup/internal/model"
	"vrsetup/internal/pathenv"
)

// fakeRunner records subprocess invocations and can fail selected ones.
type fakeRunner struct {
	calls   []string
	failOn  string // substring of the rendered command
	failErr error
}

func (r *fakeRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := name + " " + strings.Join(args, " ")
	r.calls = append(r.calls, cmd)
	if r.failOn != "" && strings.Contains(cmd, r.failOn) {
		if r.failErr != nil {
			return r.failErr
		}
		return fmt.Errorf("command failed: %s", cmd)
	}
	return nil
}

func (r *fakeRunner) callsContaining(sub string) []string {
	var out []string
	for _, c := range r.calls {
		if strings.Contains(c, sub) {
			out = append(out, c)
		}
	}
	return out
}

type fixture struct {
	in     *Installer
	runner *fakeRunner
	home   string
	rc     string // ~/.zshrc
}

// newFixture builds a complete source directory and a sandboxed home.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	src := t.TempDir()
	home := t.TempDir()

	writeSource(t, src, model.AppFile, "print('hello')\n")
	writeSource(t, src, model.ManifestFile, "openai\npyaudio\n")
	writeSource(t, src, model.SecretsFile, "OPENAI_API_KEY=sk-test\n")

	root := filepath.Join(home, ".voice-recorder")
	lay := model.Layout{
		SourceDir:   src,
		InstallRoot: root,
		EnvDir:      filepath.Join(root, model.EnvDir),
		BinDir:      filepath.Join(home, ".local", "bin"),
	}

	runner := &fakeRunner{}
	reg := pathenv.NewShellRegistrar(home, &pathenv.ZshShell{})
	reg.PathVar = "/usr/bin:/bin"

	return &fixture{
		in: &Installer{
			Layout:    lay,
			GOOS:      "linux",
			Runner:    runner,
			Launcher:  launcher.ForPlatform("linux"),
			Registrar: reg,
			LookPath: func(name string) (string, error) {
				if name == "python3" {
					return "/usr/bin/python3", nil
				}
				return "", errors.New("not found")
			},
		},
		runner: runner,
		home:   home,
		rc:     filepath.Join(home, ".zshrc"),
	}
}

func writeSource(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestInstallFreshMachine(t *testing.T) {
	fx := newFixture(t)
	sum, err := fx.in.Install(context.Background())
	require.NoError(t, err)

	lay := fx.in.Layout
	require.FileExists(t, filepath.Join(lay.InstallRoot, model.AppFile))
	require.FileExists(t, filepath.Join(lay.InstallRoot, model.ManifestFile))
	require.FileExists(t, filepath.Join(lay.InstallRoot, model.SecretsFile))
	require.DirExists(t, lay.EnvDir)
	require.FileExists(t, filepath.Join(lay.BinDir, model.LauncherName))

	// venv created, pip upgraded, dependencies installed.
	require.Len(t, fx.runner.callsContaining("-m venv"), 1)
	require.Len(t, fx.runner.callsContaining("--upgrade pip"), 1)
	require.Len(t, fx.runner.callsContaining("install -r"), 1)

	// One PATH line appended, new-shell advice given.
	data, readErr := os.ReadFile(fx.rc)
	require.NoError(t, readErr)
	require.Equal(t, 1, strings.Count(string(data), `export PATH="$HOME/.local/bin:$PATH"`))
	require.True(t, sum.NeedNewShell)
	require.Empty(t, sum.Warnings)
}

func TestInstallTwiceIsIdempotent(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.in.Install(context.Background())
	require.NoError(t, err)
	sum, err := fx.in.Install(context.Background())
	require.NoError(t, err)

	// Still exactly one PATH line.
	data, readErr := os.ReadFile(fx.rc)
	require.NoError(t, readErr)
	require.Equal(t, 1, strings.Count(string(data), `export PATH="$HOME/.local/bin:$PATH"`))

	// The completed environment is reused, not rebuilt.
	require.Len(t, fx.runner.callsContaining("-m venv"), 1)
	envStep := stepNamed(t, sum, "provision virtual environment")
	require.Contains(t, envStep.Detail, "reused")

	// No second-run advice about restarting the shell: nothing changed.
	require.False(t, sum.NeedNewShell)
}

func TestInstallFreshFlagRebuildsEnv(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.in.Install(context.Background())
	require.NoError(t, err)

	fx.in.Fresh = true
	_, err = fx.in.Install(context.Background())
	require.NoError(t, err)
	require.Len(t, fx.runner.callsContaining("-m venv"), 2)
}

func TestInstallRecreatesInterruptedEnv(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.in.Install(context.Background())
	require.NoError(t, err)

	// Simulate a run that died mid-provisioning.
	marker := filepath.Join(fx.in.Layout.EnvDir, provisioningMarker)
	require.NoError(t, os.WriteFile(marker, []byte("venv creation in progress\n"), 0o644))

	_, err = fx.in.Install(context.Background())
	require.NoError(t, err)
	require.Len(t, fx.runner.callsContaining("-m venv"), 2)
	require.NoFileExists(t, marker)
}

func TestInstallWithoutManifestWarnsAndSkipsDeps(t *testing.T) {
	fx := newFixture(t)
	require.NoError(t, os.Remove(filepath.Join(fx.in.Layout.SourceDir, model.ManifestFile)))

	sum, err := fx.in.Install(context.Background())
	require.NoError(t, err)

	require.Empty(t, fx.runner.callsContaining("install -r"))
	// pip itself is still upgraded.
	require.Len(t, fx.runner.callsContaining("--upgrade pip"), 1)

	require.Equal(t, model.OutcomeSkipped, stepNamed(t, sum, "stage "+model.ManifestFile).Outcome)
	require.Equal(t, model.OutcomeSkipped, stepNamed(t, sum, "install dependencies").Outcome)
	require.NotEmpty(t, sum.Warnings)
}

func TestInstallWithoutSecretsWarns(t *testing.T) {
	fx := newFixture(t)
	require.NoError(t, os.Remove(filepath.Join(fx.in.Layout.SourceDir, model.SecretsFile)))

	sum, err := fx.in.Install(context.Background())
	require.NoError(t, err)
	require.Equal(t, model.OutcomeSkipped, stepNamed(t, sum, "stage "+model.SecretsFile).Outcome)
}

func TestInstallSecretsWithoutKeyWarns(t *testing.T) {
	fx := newFixture(t)
	writeSource(t, fx.in.Layout.SourceDir, model.SecretsFile, "SOME_OTHER_VAR=1\n")

	sum, err := fx.in.Install(context.Background())
	require.NoError(t, err)
	require.Len(t, sum.Warnings, 1)
	require.Contains(t, sum.Warnings[0], "OPENAI_API_KEY")
}

func TestInstallAbortsBeforeMutationWithoutInterpreter(t *testing.T) {
	fx := newFixture(t)
	fx.in.LookPath = func(string) (string, error) { return "", errors.New("not found") }

	sum, err := fx.in.Install(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "no Python interpreter found")

	// Nothing was created: the failure happened before any mutation.
	require.NoDirExists(t, fx.in.Layout.InstallRoot)
	require.Len(t, sum.Steps, 1)
}

func TestInstallFailsWhenDependencyInstallFails(t *testing.T) {
	fx := newFixture(t)
	fx.runner.failOn = "install -r"

	_, err := fx.in.Install(context.Background())
	require.Error(t, err)
}

func TestInstallFailsWhenEnvCreationFails(t *testing.T) {
	fx := newFixture(t)
	fx.runner.failOn = "-m venv"

	_, err := fx.in.Install(context.Background())
	require.Error(t, err)

	// The marker stays behind so the next run knows the env is unusable.
	require.FileExists(t, filepath.Join(fx.in.Layout.EnvDir, provisioningMarker))
	require.False(t, envComplete(fx.in.Layout.EnvDir))
}

func TestUninstallAfterInstall(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.in.Install(context.Background())
	require.NoError(t, err)

	sum := fx.in.Uninstall()
	require.False(t, Failed(sum))
	require.NoDirExists(t, fx.in.Layout.InstallRoot)
	require.NoFileExists(t, filepath.Join(fx.in.Layout.BinDir, model.LauncherName))

	// The PATH line is intentionally left alone.
	data, readErr := os.ReadFile(fx.rc)
	require.NoError(t, readErr)
	require.Contains(t, string(data), `export PATH="$HOME/.local/bin:$PATH"`)
}

func TestUninstallOnCleanMachine(t *testing.T) {
	fx := newFixture(t)
	sum := fx.in.Uninstall()

	require.False(t, Failed(sum))
	require.Contains(t, stepNamed(t, sum, "remove install root").Detail, "nothing to remove")
	require.Contains(t, stepNamed(t, sum, "remove launcher").Detail, "nothing to remove")
}

func TestObserverSeesEveryStep(t *testing.T) {
	fx := newFixture(t)
	var started, done []string
	fx.in.Observer = observerFuncs{
		started: func(name string) { started = append(started, name) },
		done:    func(res model.StepResult) { done = append(done, res.Name) },
	}

	sum, err := fx.in.Install(context.Background())
	require.NoError(t, err)
	require.Equal(t, started, done)
	require.Len(t, done, len(sum.Steps))
}

type observerFuncs struct {
	started func(string)
	done    func(model.StepResult)
}

func (o observerFuncs) StepStarted(name string)       { o.started(name) }
func (o observerFuncs) StepDone(res model.StepResult) { o.done(res) }

func stepNamed(t *testing.T, sum *model.Summary, name string) model.StepResult {
	t.Helper()
	for _, s := range sum.Steps {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("no step named %q in summary", name)
	return model.StepResult{}
}
