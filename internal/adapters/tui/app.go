package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"contexere/internal/adapters/tui/views"
	"contexere/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewTimeline ViewState = iota
	ViewHelp
)

// App is the main TUI application model
type App struct {
	editor  ports.EditorOpener
	watcher *Watcher

	state    ViewState
	timeline *views.TimelineModel
	help     *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application. ed and watcher may be nil.
func NewApp(src views.Source, ed ports.EditorOpener, watcher *Watcher) *App {
	return &App{
		editor:   ed,
		watcher:  watcher,
		state:    ViewTimeline,
		timeline: views.NewTimelineModel(src),
		help:     views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.timeline.Init(), a.watch())
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.timeline.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case dirChangedMsg:
		return a, tea.Batch(a.timeline.Reload(), a.watch())

	case watchErrMsg:
		a.timeline.SetMessage("Live refresh stopped: "+msg.err.Error(), true)
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToTimelineMsg:
		a.state = ViewTimeline
		return a, nil

	case views.OpenEditorMsg:
		return a, a.openEditor(msg.Path)

	case editorFinishedMsg:
		if msg.err != nil {
			a.timeline.SetMessage(msg.err.Error(), true)
		}
		return a, a.timeline.Reload()
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewTimeline:
		_, cmd = a.timeline.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

func (a *App) watch() tea.Cmd {
	if a.watcher == nil {
		return nil
	}
	return a.watcher.Wait
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewHelp:
		return a.help.View()
	default:
		return a.timeline.View()
	}
}
