package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"cdrlink/internal/adapters/tui/views"
	"cdrlink/internal/application"
	"cdrlink/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewGraph ViewState = iota
	ViewPrompt
	ViewConfirm
	ViewHelp
)

// App is the main TUI application model
type App struct {
	editor ports.EditorOpener
	log    *zap.Logger

	state   ViewState
	graph   *views.GraphModel
	prompt  *views.PromptModel
	confirm *views.ConfirmationModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application. The editor may be nil, in which
// case notes can only be appended from the prompt.
func NewApp(ws *application.Workspace, store ports.SnapshotStore, exporter ports.Exporter, ed ports.EditorOpener, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		editor:  ed,
		log:     log,
		state:   ViewGraph,
		graph:   views.NewGraphModel(ws, store, exporter, log.Named("tui")),
		prompt:  views.NewPromptModel(),
		confirm: views.NewConfirmationModel(),
		help:    views.NewHelpModel(),
	}
}

// State returns the active view
func (a *App) State() ViewState { return a.state }

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.graph.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.graph.SetSize(msg.Width, msg.Height)
		a.prompt.SetSize(msg.Width, msg.Height)
		a.confirm.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToGraphMsg:
		a.state = ViewGraph
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToPromptMsg:
		a.state = ViewPrompt
		return a, a.prompt.Open(msg)

	case views.SwitchToConfirmMsg:
		a.state = ViewConfirm
		a.confirm.Open(msg)
		return a, nil

	// Results routed back to the chart
	case views.PromptSubmittedMsg:
		a.state = ViewGraph
		return a, a.graph.HandlePrompt(msg)

	case views.ConfirmedMsg:
		a.state = ViewGraph
		return a, a.graph.HandleConfirm(msg)

	case views.EditNotesMsg:
		return a, a.openEditor(msg)

	case views.NotesEditedMsg:
		return a, a.graph.HandleNotesEdited(msg)

	case tea.KeyMsg:
		var cmd tea.Cmd
		switch a.state {
		case ViewPrompt:
			_, cmd = a.prompt.Update(msg)
		case ViewConfirm:
			_, cmd = a.confirm.Update(msg)
		case ViewHelp:
			_, cmd = a.help.Update(msg)
		default:
			_, cmd = a.graph.Update(msg)
		}
		return a, cmd
	}

	// Job results and command outcomes always reach the chart, whatever
	// view is in front
	_, cmd := a.graph.Update(msg)
	if a.state == ViewPrompt {
		var blink tea.Cmd
		_, blink = a.prompt.Update(msg)
		cmd = tea.Batch(cmd, blink)
	}
	return a, cmd
}

func (a *App) openEditor(msg views.EditNotesMsg) tea.Cmd {
	done := func(err error) tea.Msg {
		return views.NotesEditedMsg{Pair: msg.Pair, Path: msg.Path, Err: err}
	}
	if a.editor == nil {
		return func() tea.Msg { return done(errNoEditor) }
	}

	cmd, err := a.editor.Command(msg.Path)
	if err != nil {
		return func() tea.Msg { return done(err) }
	}

	a.log.Debug("opening notes in editor", zap.String("pair", msg.Pair.String()), zap.String("path", msg.Path))
	return tea.ExecProcess(cmd, done)
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewPrompt:
		return a.prompt.View()
	case ViewConfirm:
		return a.confirm.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.graph.View()
	}
}
