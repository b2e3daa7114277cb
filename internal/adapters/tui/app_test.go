package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cdrlink/internal/adapters/svg"
	"cdrlink/internal/adapters/tui/views"
	"cdrlink/internal/application"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newApp(t *testing.T) *App {
	t.Helper()
	ws := application.NewWorkspace(application.DefaultOptions(), nil)
	_, err := ws.AddPhone("111", "")
	require.NoError(t, err)
	a := NewApp(ws, nil, svg.NewExporter(), nil, nil)
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	a.Update(a.Init()())
	return a
}

// step feeds msg and then every message its command produces, one level deep
func step(a *App, msg tea.Msg) {
	_, cmd := a.Update(msg)
	if cmd != nil {
		if next := cmd(); next != nil {
			a.Update(next)
		}
	}
}

func TestApp_HelpRoundTrip(t *testing.T) {
	a := newApp(t)

	step(a, runes("?"))
	assert.Equal(t, ViewHelp, a.State())
	assert.Contains(t, a.View(), "cdrlink Help")

	step(a, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewGraph, a.State())
}

func TestApp_PromptCancelReturnsToGraph(t *testing.T) {
	a := newApp(t)

	step(a, runes("a"))
	require.Equal(t, ViewPrompt, a.State())
	assert.Contains(t, a.View(), "Set Alias")

	step(a, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewGraph, a.State())
}

func TestApp_ConfirmCancelKeepsPhone(t *testing.T) {
	a := newApp(t)

	step(a, runes("d"))
	require.Equal(t, ViewConfirm, a.State())
	assert.Contains(t, a.View(), "111")

	step(a, runes("n"))
	assert.Equal(t, ViewGraph, a.State())
	assert.Len(t, a.graph.ViewModel().Nodes, 1)
}

func TestApp_EditNotesWithoutEditor(t *testing.T) {
	a := newApp(t)

	_, cmd := a.Update(views.EditNotesMsg{Path: "/nonexistent/notes.txt"})
	require.NotNil(t, cmd)
	msg, ok := cmd().(views.NotesEditedMsg)
	require.True(t, ok)
	assert.ErrorIs(t, msg.Err, errNoEditor)
}
