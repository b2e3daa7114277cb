package commands

import (
	"context"
	"fmt"

	"cdrlink/internal/application"
	"cdrlink/internal/domain"
)

// DeleteEdgeResult contains the result of deleting an edge
type DeleteEdgeResult struct {
	Pair    domain.PairKey
	Message string
}

// DeleteEdgeCommand removes every call and note between two phones
type DeleteEdgeCommand struct {
	ws     *application.Workspace
	PhoneA string
	PhoneB string
}

// NewDeleteEdgeCommand creates a new DeleteEdgeCommand
func NewDeleteEdgeCommand(ws *application.Workspace, phoneA, phoneB string) *DeleteEdgeCommand {
	return &DeleteEdgeCommand{ws: ws, PhoneA: phoneA, PhoneB: phoneB}
}

// Validate checks if the pair is valid
func (c *DeleteEdgeCommand) Validate() error {
	_, err := application.ValidatePair(c.PhoneA, c.PhoneB)
	return err
}

// Execute runs the delete edge command
func (c *DeleteEdgeCommand) Execute(ctx context.Context) (*DeleteEdgeResult, error) {
	pair, err := application.ValidatePair(c.PhoneA, c.PhoneB)
	if err != nil {
		return nil, err
	}

	if err := c.ws.DeleteEdge(pair); err != nil {
		return nil, fmt.Errorf("failed to delete edge %s: %w", pair, err)
	}
	if _, err := c.ws.Refresh(ctx); err != nil {
		return nil, err
	}

	return &DeleteEdgeResult{
		Pair:    pair,
		Message: fmt.Sprintf("Deleted edge: %s", pair),
	}, nil
}

// NoteResult contains the result of a note change
type NoteResult struct {
	Pair    domain.PairKey
	Notes   []string
	Message string
}

// NoteCommand attaches text to a pair. Replace swaps out existing notes
// instead of appending; empty Text clears them.
type NoteCommand struct {
	ws      *application.Workspace
	PhoneA  string
	PhoneB  string
	Text    string
	Replace bool
}

// NewNoteCommand creates a new NoteCommand
func NewNoteCommand(ws *application.Workspace, phoneA, phoneB, text string, replace bool) *NoteCommand {
	return &NoteCommand{ws: ws, PhoneA: phoneA, PhoneB: phoneB, Text: text, Replace: replace}
}

// Validate checks if the pair is valid
func (c *NoteCommand) Validate() error {
	_, err := application.ValidatePair(c.PhoneA, c.PhoneB)
	return err
}

// Execute runs the note command
func (c *NoteCommand) Execute(ctx context.Context) (*NoteResult, error) {
	pair, err := application.ValidatePair(c.PhoneA, c.PhoneB)
	if err != nil {
		return nil, err
	}

	if c.Replace {
		err = c.ws.SetNote(pair, c.Text)
	} else {
		err = c.ws.AddNote(pair, c.Text)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update note on %s: %w", pair, err)
	}
	if _, err := c.ws.Refresh(ctx); err != nil {
		return nil, err
	}

	res := &NoteResult{Pair: pair, Message: fmt.Sprintf("Cleared notes on %s", pair)}
	if agg, err := c.ws.EdgeStats(pair); err == nil {
		res.Notes = agg.Notes
	}
	if len(res.Notes) > 0 {
		res.Message = fmt.Sprintf("Noted %s: %s", pair, c.Text)
	}
	return res, nil
}
