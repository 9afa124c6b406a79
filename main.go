package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"

	"vrsetup/internal/install"
	"vrsetup/internal/model"
	"vrsetup/internal/report"
	"vrsetup/internal/tui"
)

func checkUpdate(currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      "voicetools",
		Repository: "vrsetup",
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		return // Silently fail
	}

	if res.Outdated {
		fmt.Printf("\n✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Println("👉 Download it from https://github.com/voicetools/vrsetup/releases")
	} else {
		fmt.Printf("✅ You are using the latest version: %s\n", currentVer)
	}
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: vrsetup [options]\n\n")
		fmt.Fprintf(os.Stderr, "vrsetup installs the voice-recorder app into a per-user directory,\n")
		fmt.Fprintf(os.Stderr, "provisions an isolated Python environment, registers a launcher and\n")
		fmt.Fprintf(os.Stderr, "makes it reachable from your shell. Re-running is always safe.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  vrsetup                  # Install from the current directory\n")
		fmt.Fprintf(os.Stderr, "  vrsetup -s ~/src/vr      # Install from another source directory\n")
		fmt.Fprintf(os.Stderr, "  vrsetup --dry-run        # Show what would happen\n")
		fmt.Fprintf(os.Stderr, "  vrsetup --uninstall      # Remove the installation (PATH lines stay)\n")
	}

	uninstallFlag := pflag.Bool("uninstall", false, "Remove the installed app and launcher")
	sourceFlag := pflag.StringP("source", "s", ".", "Directory containing voice_recorder.py and requirements.txt")
	dryRunFlag := pflag.BoolP("dry-run", "n", false, "Print the install plan without changing anything")
	freshFlag := pflag.Bool("fresh", false, "Recreate the virtual environment even if one exists")
	tuiFlag := pflag.BoolP("tui", "t", false, "Install with a progress UI")
	jsonFlag := pflag.BoolP("json", "j", false, "Emit the run summary as JSON")
	verboseFlag := pflag.BoolP("verbose", "v", false, "Stream subprocess output (venv, pip)")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for the latest release")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("vrsetup version %s\n", model.Version)
		return
	}

	if *updateFlag {
		checkUpdate(model.Version)
		return
	}

	layout, err := install.DefaultLayout(*sourceFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	in := install.New(layout, *verboseFlag)
	in.Fresh = *freshFlag

	switch {
	case *uninstallFlag:
		runUninstallMode(in, *jsonFlag)
	case *dryRunFlag:
		fmt.Print(report.RenderPlan(in.Plan()))
	case *tuiFlag:
		runTuiMode(in)
	default:
		runInstallMode(in, *jsonFlag)
	}
}

func runInstallMode(in *install.Installer, asJSON bool) {
	sum, err := in.Install(context.Background())
	emit(sum, asJSON)
	if err != nil {
		os.Exit(1)
	}
}

func runUninstallMode(in *install.Installer, asJSON bool) {
	// Uninstall never aborts early: deletion failures are reported and
	// the remaining cleanup still runs.
	sum := in.Uninstall()
	emit(sum, asJSON)
}

func runTuiMode(in *install.Installer) {
	m := tui.InitialModel(in)
	p := tea.NewProgram(m)
	final, err := p.Run()
	if err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}

	app := final.(tui.AppModel)
	if app.Quit {
		fmt.Println("Aborted. Re-run vrsetup to finish the install; the environment will be rebuilt.")
		os.Exit(1)
	}
	if app.Summary != nil {
		emit(app.Summary, false)
	}
	if app.Err != nil {
		os.Exit(1)
	}
}

func emit(sum *model.Summary, asJSON bool) {
	if asJSON {
		report.WriteJSON(os.Stdout, sum)
		return
	}
	fmt.Print(report.Render(sum))
}
