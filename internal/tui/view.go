package tui

import (
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
		Foreground(lipgloss.Color("42"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208"))

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

func (m AppModel) View() string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Installing voice-recorder") + "\n\n")

	for _, s := range m.Done {
		icon := okStyle.Render(model.IconOK)
		switch s.Outcome {
		case model.OutcomeSkipped:
			icon = warnStyle.Render(model.IconWarn)
		case model.OutcomeFailed:
			icon = failStyle.Render(model.IconFail)
		}
		b.WriteString("  " + icon + " " + s.Name + "\n")
	}

	if m.Current != "" {
		b.WriteString("  " + m.Spinner.View() + " " + m.Current + dimStyle.Render("...") + "\n")
	}

	if m.Summary == nil {
		b.WriteString("\n" + dimStyle.Render("  q / ctrl+c to abort") + "\n")
	}
	return b.String()
}
