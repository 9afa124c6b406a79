package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"vrsetup/internal/install"
	"vrsetup/internal/model"
)

// Messages flowing from the install goroutine into the UI.
type (
	stepStartedMsg string
	stepDoneMsg    model.StepResult
	runDoneMsg     struct {
		sum *model.Summary
		err error
	}
)

// AppModel holds the TUI state while an install runs underneath it.
type AppModel struct {
	// Data
	Done    []model.StepResult
	Current string
	Summary *model.Summary
	Err     error
	Quit    bool

	// Components
	Spinner spinner.Model

	installer *install.Installer
	events    chan tea.Msg
}

// chanObserver forwards workflow events into the bubbletea loop.
type chanObserver struct {
	events chan tea.Msg
}

func (o chanObserver) StepStarted(name string)       { o.events <- stepStartedMsg(name) }
func (o chanObserver) StepDone(res model.StepResult) { o.events <- stepDoneMsg(res) }

// InitialModel returns the initial state, wiring the installer's
// observer to this model's event channel.
func InitialModel(in *install.Installer) AppModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	events := make(chan tea.Msg)
	in.Observer = chanObserver{events: events}
	return AppModel{
		Spinner:   sp,
		installer: in,
		events:    events,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, m.start(), m.wait())
}

// start launches the install once; completion arrives via the channel so
// it is ordered after the step events the run produced.
func (m AppModel) start() tea.Cmd {
	return func() tea.Msg {
		go func() {
			sum, err := m.installer.Install(context.Background())
			m.events <- runDoneMsg{sum: sum, err: err}
		}()
		return nil
	}
}

func (m AppModel) wait() tea.Cmd {
	return func() tea.Msg { return <-m.events }
}
