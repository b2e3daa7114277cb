package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"cdrlink/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	width  int
	height int
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToGraphMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("cdrlink Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.Subtitle.Render("Call detail record link chart"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Selection"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move through phones or links"))
	b.WriteString(helpLine("tab", "Switch between phones and links"))
	b.WriteString(helpLine("pgup / pgdown", "Page through the list"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Filter"))
	b.WriteString("\n")
	b.WriteString(helpLine("+ / -", "Raise / lower minimum calls per link"))
	b.WriteString(helpLine("] / [", "Raise / lower maximum phones"))
	b.WriteString(helpLine("u", "Show / hide unassigned phones"))
	b.WriteString(helpLine("p", "Show / hide person-linked phones"))
	b.WriteString(helpLine("w", "Set date and time-of-day window"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Chart"))
	b.WriteString("\n")
	b.WriteString(helpLine("H / J / K / L", "Drag the selected phone"))
	b.WriteString(helpLine("shift+arrows", "Pan"))
	b.WriteString(helpLine("z / Z / 0", "Zoom in / out / reset"))
	b.WriteString(helpLine("r", "Recompute layout, releasing dragged phones"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Edit"))
	b.WriteString("\n")
	b.WriteString(helpLine("i", "Add a phone"))
	b.WriteString(helpLine("a", "Set alias of the selected phone"))
	b.WriteString(helpLine("c", "Cycle color of the selected phone"))
	b.WriteString(helpLine("o", "Assign the selected phone to a person"))
	b.WriteString(helpLine("n", "Add a note to the selected link"))
	b.WriteString(helpLine("e", "Edit the selected link's notes in $EDITOR"))
	b.WriteString(helpLine("d", "Delete the selection"))
	b.WriteString(helpLine("y", "Copy the selection's label"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Workspace"))
	b.WriteString("\n")
	b.WriteString(helpLine("s / l", "Save / load a snapshot"))
	b.WriteString(helpLine("x", "Export the chart"))
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	n := len([]rune(s))
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}

// SetSize updates the view dimensions
func (m *HelpModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
