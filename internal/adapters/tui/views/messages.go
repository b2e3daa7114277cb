package views

import (
	"cdrlink/internal/application"
	"cdrlink/internal/domain"
)

// Action names what a prompt or confirmation is for
type Action int

const (
	ActionNone Action = iota
	ActionNote
	ActionAlias
	ActionOwner
	ActionAddPhone
	ActionWindow
	ActionSave
	ActionLoad
	ActionExport
	ActionDeletePhone
	ActionDeleteEdge
)

// Target is the selection an action applies to. Only one of Phone and Pair
// is set, or neither for workspace-wide actions.
type Target struct {
	Phone domain.PhoneID
	Pair  domain.PairKey
}

// HasPair reports whether the target is an edge
func (t Target) HasPair() bool { return t.Pair != (domain.PairKey{}) }

// Label is the human name of the target
func (t Target) Label() string {
	switch {
	case t.HasPair():
		return t.Pair.String()
	case t.Phone != "":
		return t.Phone.String()
	default:
		return ""
	}
}

// View switching messages
type (
	SwitchToGraphMsg struct{}
	SwitchToHelpMsg  struct{}

	// SwitchToPromptMsg opens a form whose values come back in PromptSubmittedMsg
	SwitchToPromptMsg struct {
		Action Action
		Title  string
		Target Target
		Fields []InputField
	}

	// SwitchToConfirmMsg asks before a destructive action
	SwitchToConfirmMsg struct {
		Action   Action
		Target   Target
		Question string
	}
)

// PromptSubmittedMsg carries the trimmed field values in field order
type PromptSubmittedMsg struct {
	Action Action
	Target Target
	Values []string
}

// ConfirmedMsg is sent when the user accepts a confirmation
type ConfirmedMsg struct {
	Action Action
	Target Target
}

// EditNotesMsg asks the app to open the pair's notes in an external editor
type EditNotesMsg struct {
	Pair domain.PairKey
	Path string
}

// NotesEditedMsg is sent when the external editor exits
type NotesEditedMsg struct {
	Pair domain.PairKey
	Path string
	Err  error
}

// filterDoneMsg delivers a background filter job's result
type filterDoneMsg struct {
	result application.Result
}

// actionDoneMsg reports a finished command
type actionDoneMsg struct {
	message string
	err     error
	refresh bool
}
