// Package report renders a run's summary for humans (lipgloss) or
// machines (--json).
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"vrsetup/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42")) // Green

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // Orange

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	boxStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("63"))
)

// Render formats the full summary: step transcript, then the where-is-
// everything box, then warnings and PATH advice.
func Render(sum *model.Summary) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("voice-recorder "+sum.Action) + "\n\n")

	for _, s := range sum.Steps {
		b.WriteString(stepLine(s) + "\n")
	}

	if sum.Action == "install" && !hasFailure(sum) {
		b.WriteString("\n" + boxStyle.Render(locations(sum)) + "\n")
	}

	for _, w := range sum.Warnings {
		b.WriteString("\n" + warnStyle.Render(model.IconWarn+" "+w))
	}
	if len(sum.Warnings) > 0 {
		b.WriteString("\n")
	}

	if sum.NeedNewShell {
		b.WriteString("\n" + warnStyle.Render("Open a new terminal (or re-source your shell config) so PATH picks up the launcher.") + "\n")
	}
	return b.String()
}

func stepLine(s model.StepResult) string {
	switch s.Outcome {
	case model.OutcomeOK:
		line := okStyle.Render(model.IconOK) + " " + s.Name
		if s.Detail != "" {
			line += dimStyle.Render("  " + model.IconArrow + " " + s.Detail)
		}
		return line
	case model.OutcomeSkipped:
		return warnStyle.Render(model.IconWarn) + " " + s.Name + dimStyle.Render("  (skipped) "+s.Detail)
	default:
		return failStyle.Render(model.IconFail+" "+s.Name) + "\n    " + failStyle.Render(s.Detail)
	}
}

func locations(sum *model.Summary) string {
	lay := sum.Layout
	lines := []string{
		"Installed to:  " + lay.InstallRoot,
	}
	if sum.LauncherPath != "" {
		lines = append(lines, "Launcher:      "+sum.LauncherPath)
	}
	lines = append(lines,
		"Secrets file:  "+filepath.Join(lay.InstallRoot, model.SecretsFile),
		"Usage log:     "+filepath.Join(lay.InstallRoot, model.UsageLogFile)+"  (written by the app)",
		"",
		"Run it with:   "+model.LauncherName,
	)
	return strings.Join(lines, "\n")
}

func hasFailure(sum *model.Summary) bool {
	for _, s := range sum.Steps {
		if s.Outcome == model.OutcomeFailed {
			return true
		}
	}
	return false
}

// WriteJSON emits the summary for scripting, mirroring what Render shows.
func WriteJSON(w io.Writer, sum *model.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sum)
}

// RenderPlan formats a dry-run plan.
func RenderPlan(actions []string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("voice-recorder install (dry run)") + "\n\n")
	for i, a := range actions {
		b.WriteString(fmt.Sprintf("%2d. %s\n", i+1, a))
	}
	b.WriteString("\n" + dimStyle.Render("Nothing was changed. Re-run without --dry-run to install.") + "\n")
	return b.String()
}
