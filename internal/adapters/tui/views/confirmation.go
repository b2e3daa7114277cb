package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"cdrlink/internal/adapters/tui/styles"
)

// ConfirmKeyMap defines key bindings for confirmation views
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// ConfirmationModel asks a yes/no question before a destructive action
type ConfirmationModel struct {
	ViewState
	Action   Action
	Target   Target
	Question string
	Keys     ConfirmKeyMap
}

// NewConfirmationModel creates a new confirmation model with default keys
func NewConfirmationModel() *ConfirmationModel {
	return &ConfirmationModel{
		Keys: DefaultConfirmKeys,
	}
}

// Open prepares the model for a new question
func (m *ConfirmationModel) Open(msg SwitchToConfirmMsg) {
	m.Action = msg.Action
	m.Target = msg.Target
	m.Question = msg.Question
	m.ClearMessage()
}

// Update handles messages for the confirmation view
func (m *ConfirmationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	_, cmd := m.HandleKeyMsg(keyMsg,
		func() tea.Msg { return ConfirmedMsg{Action: m.Action, Target: m.Target} },
		func() tea.Msg { return SwitchToGraphMsg{} },
	)
	return m, cmd
}

// HandleKeyMsg processes key messages for confirmation views.
// Returns (handled, cmd) where handled is true if the key was processed.
func (m *ConfirmationModel) HandleKeyMsg(msg tea.KeyMsg, onConfirm, onCancel func() tea.Msg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Cancel):
		return true, func() tea.Msg { return onCancel() }
	case key.Matches(msg, m.Keys.Confirm):
		return true, func() tea.Msg { return onConfirm() }
	}
	return false, nil
}

// Init is a no-op
func (m *ConfirmationModel) Init() tea.Cmd { return nil }

// View renders the question and the target
func (m *ConfirmationModel) View() string {
	return NewViewBuilder().
		Title("Confirm").
		Raw(RenderTargetInfo(m.Target, actionVerb(m.Action))).
		BlankLine().
		BlankLine().
		Line(RenderConfirmPrompt(m.Question)).
		String()
}

// RenderConfirmPrompt renders the standard confirmation prompt
func RenderConfirmPrompt(question string) string {
	var b strings.Builder
	b.WriteString(question)
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))
	return b.String()
}

// RenderTargetInfo renders the phone or pair an action applies to
func RenderTargetInfo(t Target, action string) string {
	if t.Label() == "" {
		return ""
	}

	kind := "Phone"
	if t.HasPair() {
		kind = "Link"
	}

	var b strings.Builder
	b.WriteString(styles.InputLabel.Render(action + " " + kind + ":"))
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(t.Label())
	return b.String()
}

func actionVerb(a Action) string {
	switch a {
	case ActionDeletePhone, ActionDeleteEdge:
		return "Delete"
	case ActionNote:
		return "Note"
	case ActionAlias:
		return "Alias"
	case ActionOwner:
		return "Assign"
	default:
		return "Edit"
	}
}
