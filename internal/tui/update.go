package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"vrsetup/internal/model"
)

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stepStartedMsg:
		m.Current = string(msg)
		return m, m.wait()

	case stepDoneMsg:
		m.Current = ""
		m.Done = append(m.Done, model.StepResult(msg))
		return m, m.wait()

	case runDoneMsg:
		m.Summary = msg.sum
		m.Err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		// Interrupting mid-install leaves the provisioning marker in
		// place, so the next run knows to start the environment over.
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			m.Quit = true
			return m, tea.Quit
		}
	}
	return m, nil
}
