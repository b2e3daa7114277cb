package commands

import (
	"context"
	"fmt"

	"cdrlink/internal/application"
	"cdrlink/internal/layout"
)

// MovePhoneResult contains the placement after a move
type MovePhoneResult struct {
	Placement layout.Placement
	Message   string
}

// MovePhoneCommand pins a visible phone at a logical position
type MovePhoneCommand struct {
	ws    *application.Workspace
	Phone string
	X     float64
	Y     float64
}

// NewMovePhoneCommand creates a new MovePhoneCommand
func NewMovePhoneCommand(ws *application.Workspace, phone string, x, y float64) *MovePhoneCommand {
	return &MovePhoneCommand{ws: ws, Phone: phone, X: x, Y: y}
}

// Validate checks if the move is valid
func (c *MovePhoneCommand) Validate() error {
	_, err := application.ValidatePhone("phone", c.Phone)
	return err
}

// Execute runs the move command
func (c *MovePhoneCommand) Execute(ctx context.Context) (*MovePhoneResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	id, _ := application.ValidatePhone("phone", c.Phone)

	if err := c.ws.Drag(id, layout.Position{X: c.X, Y: c.Y}); err != nil {
		return nil, fmt.Errorf("failed to move %s: %w", id, err)
	}
	pl, _ := c.ws.Placement(id)
	return &MovePhoneResult{
		Placement: pl,
		Message:   fmt.Sprintf("Moved %s to (%.0f, %.0f)", id, pl.Position.X, pl.Position.Y),
	}, nil
}

// ResetLayoutResult contains the number of repositioned phones
type ResetLayoutResult struct {
	Moved   int
	Message string
}

// ResetLayoutCommand recomputes positions of every visible phone, discarding
// manual placements
type ResetLayoutCommand struct {
	ws *application.Workspace
}

// NewResetLayoutCommand creates a new ResetLayoutCommand
func NewResetLayoutCommand(ws *application.Workspace) *ResetLayoutCommand {
	return &ResetLayoutCommand{ws: ws}
}

// Execute runs the reset command
func (c *ResetLayoutCommand) Execute(ctx context.Context) (*ResetLayoutResult, error) {
	moved, err := c.ws.ResetLayout(ctx)
	if err != nil {
		return nil, err
	}
	return &ResetLayoutResult{Moved: moved, Message: fmt.Sprintf("Re-laid out %d phones", moved)}, nil
}
