// Package install holds the provisioning and teardown workflows. Both are
// straight-line sequences of guarded steps: every step checks external
// state (filesystem, PATH) before acting, so re-running either workflow
// converges instead of erroring.
package install

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
	homedir "github.com/mitchellh/go-homedir"

	"vrsetup/internal/launcher"
	"vrsetup/internal/model"
	"vrsetup/internal/pathenv"
)

// Observer watches the workflow, one step at a time. The plain CLI mode,
// the JSON mode and the TUI all consume the same engine through this.
type Observer interface {
	StepStarted(name string)
	StepDone(res model.StepResult)
}

type nopObserver struct{}

func (nopObserver) StepStarted(string)        {}
func (nopObserver) StepDone(model.StepResult) {}

// Installer wires the workflow to the machine. Every collaborator has a
// production default from New and a swappable seam for tests.
type Installer struct {
	Layout    model.Layout
	GOOS      string
	Runner    CommandRunner
	Launcher  launcher.Generator
	Registrar pathenv.Registrar
	Observer  Observer

	// LookPath resolves interpreter candidates; exec.LookPath normally.
	LookPath func(string) (string, error)
	// Fresh forces venv recreation even when a complete one exists.
	Fresh bool
}

// DefaultLayout resolves the per-user paths for this machine. sourceDir
// may use a leading tilde.
func DefaultLayout(sourceDir string) (model.Layout, error) {
	home, err := homedir.Dir()
	if err != nil {
		return model.Layout{}, fmt.Errorf("resolving home directory: %w", err)
	}
	src, err := homedir.Expand(sourceDir)
	if err != nil {
		return model.Layout{}, fmt.Errorf("resolving source directory: %w", err)
	}
	if src == "" {
		src = "."
	}

	root := filepath.Join(home, ".voice-recorder")
	layout := model.Layout{
		SourceDir:   src,
		InstallRoot: root,
		EnvDir:      filepath.Join(root, model.EnvDir),
		BinDir:      xdg.BinHome,
	}
	if runtime.GOOS == "windows" {
		// Windows launchers live inside the install root; there is no
		// ~/.local/bin convention to lean on.
		layout.BinDir = root
	}
	return layout, nil
}

// New returns an Installer bound to the real machine.
func New(layout model.Layout, verbose bool) *Installer {
	return &Installer{
		Layout:    layout,
		GOOS:      runtime.GOOS,
		Runner:    &ExecRunner{Verbose: verbose},
		Launcher:  launcher.ForPlatform(runtime.GOOS),
		Registrar: pathenv.New(filepath.Dir(layout.InstallRoot)),
		Observer:  nopObserver{},
		LookPath:  lookPathDefault,
	}
}

func (in *Installer) observer() Observer {
	if in.Observer == nil {
		return nopObserver{}
	}
	return in.Observer
}

// step runs one named unit, records it in the summary, and reports it to
// the observer. A returned error from fn is fatal to the whole run.
func (in *Installer) step(sum *model.Summary, name string, fn func() (model.StepResult, error)) error {
	obs := in.observer()
	obs.StepStarted(name)
	res, err := fn()
	res.Name = name
	if err != nil {
		res.Outcome = model.OutcomeFailed
		res.Detail = err.Error()
	}
	sum.Steps = append(sum.Steps, res)
	if res.Outcome == model.OutcomeSkipped && res.Detail != "" {
		sum.Warn(res.Detail)
	}
	obs.StepDone(res)
	return err
}

func ok(detail string) (model.StepResult, error) {
	return model.StepResult{Outcome: model.OutcomeOK, Detail: detail}, nil
}

func skipped(detail string) (model.StepResult, error) {
	return model.StepResult{Outcome: model.OutcomeSkipped, Detail: detail}, nil
}

// Install runs the provisioning workflow. The returned summary is always
// usable, even when err != nil: it records how far the run got.
func (in *Installer) Install(ctx context.Context) (*model.Summary, error) {
	sum := &model.Summary{Action: "install", Layout: in.Layout}
	lay := in.Layout

	// Interpreter resolution runs first so a missing Python aborts
	// before any filesystem mutation.
	lookPath := in.LookPath
	if lookPath == nil {
		lookPath = lookPathDefault
	}

	var python string
	err := in.step(sum, "resolve Python interpreter", func() (model.StepResult, error) {
		p, err := findInterpreter(in.GOOS, lookPath)
		if err != nil {
			return model.StepResult{}, err
		}
		python = p
		return ok(p)
	})
	if err != nil {
		return sum, err
	}

	if err := in.step(sum, "create install root", func() (model.StepResult, error) {
		if err := os.MkdirAll(lay.InstallRoot, 0o755); err != nil {
			return model.StepResult{}, err
		}
		return ok(lay.InstallRoot)
	}); err != nil {
		return sum, err
	}

	if err := in.step(sum, "stage "+model.AppFile, func() (model.StepResult, error) {
		src := filepath.Join(lay.SourceDir, model.AppFile)
		if !fileExists(src) {
			return model.StepResult{}, fmt.Errorf("%s not found in %s", model.AppFile, lay.SourceDir)
		}
		if err := copyFile(src, filepath.Join(lay.InstallRoot, model.AppFile)); err != nil {
			return model.StepResult{}, err
		}
		return ok("")
	}); err != nil {
		return sum, err
	}

	manifestStaged := false
	if err := in.step(sum, "stage "+model.ManifestFile, func() (model.StepResult, error) {
		src := filepath.Join(lay.SourceDir, model.ManifestFile)
		if !fileExists(src) {
			return skipped(model.ManifestFile + " not found; dependencies will not be installed")
		}
		if err := copyFile(src, filepath.Join(lay.InstallRoot, model.ManifestFile)); err != nil {
			return model.StepResult{}, err
		}
		manifestStaged = true
		return ok("")
	}); err != nil {
		return sum, err
	}

	if err := in.step(sum, "stage "+model.SecretsFile, func() (model.StepResult, error) {
		src := filepath.Join(lay.SourceDir, model.SecretsFile)
		if !fileExists(src) {
			return skipped(model.SecretsFile + " not found; add your API key to " +
				filepath.Join(lay.InstallRoot, model.SecretsFile) + " before first use")
		}
		dst := filepath.Join(lay.InstallRoot, model.SecretsFile)
		if err := copyFile(src, dst); err != nil {
			return model.StepResult{}, err
		}
		if warns := inspectSecrets(dst); len(warns) > 0 {
			for _, w := range warns {
				sum.Warn(w)
			}
			return ok("staged, with warnings")
		}
		return ok("")
	}); err != nil {
		return sum, err
	}

	if err := in.step(sum, "provision virtual environment", func() (model.StepResult, error) {
		if envComplete(lay.EnvDir) && !in.Fresh {
			return ok("existing environment reused (use --fresh to rebuild)")
		}
		if err := in.createEnv(ctx, python); err != nil {
			return model.StepResult{}, err
		}
		return ok(lay.EnvDir)
	}); err != nil {
		return sum, err
	}

	// From here on, package commands run the venv's own interpreter.
	// That is the whole of "activation" for this process; the caller's
	// shell is never touched.
	envPy := in.envPython()

	if err := in.step(sum, "upgrade pip", func() (model.StepResult, error) {
		if err := in.Runner.Run(ctx, envPy, "-m", "pip", "install", "--upgrade", "pip"); err != nil {
			return model.StepResult{}, err
		}
		return ok("")
	}); err != nil {
		return sum, err
	}

	if err := in.step(sum, "install dependencies", func() (model.StepResult, error) {
		if !manifestStaged {
			return skipped("no " + model.ManifestFile + " staged; skipping dependency install")
		}
		manifest := filepath.Join(lay.InstallRoot, model.ManifestFile)
		if err := in.Runner.Run(ctx, envPy, "-m", "pip", "install", "-r", manifest); err != nil {
			return model.StepResult{}, err
		}
		return ok("")
	}); err != nil {
		return sum, err
	}

	if err := in.step(sum, "write launcher", func() (model.StepResult, error) {
		path, err := in.Launcher.Generate(lay)
		if err != nil {
			return model.StepResult{}, err
		}
		sum.LauncherPath = path
		return ok(path)
	}); err != nil {
		return sum, err
	}

	if err := in.step(sum, "register PATH entry", func() (model.StepResult, error) {
		if in.Registrar.OnPath(lay.BinDir) {
			return ok(lay.BinDir + " already on PATH")
		}
		touched, err := in.Registrar.Ensure(lay.BinDir)
		if err != nil {
			return model.StepResult{}, err
		}
		sum.PathTouched = touched
		if len(touched) == 0 {
			return ok("PATH entry already present")
		}
		sum.NeedNewShell = true
		return ok("updated " + strings.Join(touched, ", "))
	}); err != nil {
		return sum, err
	}

	return sum, nil
}
