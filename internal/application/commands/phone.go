package commands

import (
	"context"
	"fmt"

	"cdrlink/internal/application"
	"cdrlink/internal/domain"
)

// AddPhoneResult contains the result of adding a phone
type AddPhoneResult struct {
	Phone   domain.Phone
	Message string
}

// AddPhoneCommand adds an isolated phone
type AddPhoneCommand struct {
	ws    *application.Workspace
	Phone string
	Alias string
}

// NewAddPhoneCommand creates a new AddPhoneCommand
func NewAddPhoneCommand(ws *application.Workspace, phone, alias string) *AddPhoneCommand {
	return &AddPhoneCommand{ws: ws, Phone: phone, Alias: alias}
}

// Validate checks if the phone number is usable
func (c *AddPhoneCommand) Validate() error {
	_, err := application.ValidatePhone("phone", c.Phone)
	return err
}

// Execute runs the add phone command
func (c *AddPhoneCommand) Execute(ctx context.Context) (*AddPhoneResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	p, err := c.ws.AddPhone(c.Phone, c.Alias)
	if err != nil {
		return nil, fmt.Errorf("failed to add phone: %w", err)
	}
	if _, err := c.ws.Refresh(ctx); err != nil {
		return nil, err
	}

	return &AddPhoneResult{
		Phone:   p,
		Message: fmt.Sprintf("Added phone: %s", p.ID),
	}, nil
}

// EditPhoneResult contains the result of editing a phone
type EditPhoneResult struct {
	ID         domain.PhoneID
	ColorIndex int
	Message    string
}

// EditPhoneCommand changes a phone's alias and/or colour. A nil Alias leaves
// the alias alone; an empty one clears it.
type EditPhoneCommand struct {
	ws         *application.Workspace
	Phone      string
	Alias      *string
	CycleColor bool
}

// NewEditPhoneCommand creates a new EditPhoneCommand
func NewEditPhoneCommand(ws *application.Workspace, phone string, alias *string, cycleColor bool) *EditPhoneCommand {
	return &EditPhoneCommand{ws: ws, Phone: phone, Alias: alias, CycleColor: cycleColor}
}

// Validate checks if the edit is valid
func (c *EditPhoneCommand) Validate() error {
	if _, err := application.ValidatePhone("phone", c.Phone); err != nil {
		return err
	}
	if c.Alias == nil && !c.CycleColor {
		return &application.ValidationError{
			Field:   "alias",
			Message: "nothing to change: give an alias or cycle the colour",
		}
	}
	return nil
}

// Execute runs the edit phone command
func (c *EditPhoneCommand) Execute(ctx context.Context) (*EditPhoneResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	id, _ := application.ValidatePhone("phone", c.Phone)

	res := &EditPhoneResult{ID: id}
	if c.Alias != nil {
		if err := c.ws.SetAlias(id, *c.Alias); err != nil {
			return nil, fmt.Errorf("failed to set alias: %w", err)
		}
	}
	if c.CycleColor {
		idx, err := c.ws.CycleColor(id)
		if err != nil {
			return nil, fmt.Errorf("failed to change colour: %w", err)
		}
		res.ColorIndex = idx
	}
	if _, err := c.ws.Refresh(ctx); err != nil {
		return nil, err
	}

	res.Message = fmt.Sprintf("Updated phone: %s", id)
	return res, nil
}

// DeletePhoneResult contains the result of deleting a phone
type DeletePhoneResult struct {
	DeletedID domain.PhoneID
	Message   string
}

// DeletePhoneCommand deletes a phone and every edge touching it
type DeletePhoneCommand struct {
	ws    *application.Workspace
	Phone string
}

// NewDeletePhoneCommand creates a new DeletePhoneCommand
func NewDeletePhoneCommand(ws *application.Workspace, phone string) *DeletePhoneCommand {
	return &DeletePhoneCommand{ws: ws, Phone: phone}
}

// Validate checks if the delete operation is valid
func (c *DeletePhoneCommand) Validate() error {
	_, err := application.ValidatePhone("phone", c.Phone)
	return err
}

// Execute runs the delete phone command
func (c *DeletePhoneCommand) Execute(ctx context.Context) (*DeletePhoneResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	id, _ := application.ValidatePhone("phone", c.Phone)

	if err := c.ws.DeletePhone(id); err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", id, err)
	}
	if _, err := c.ws.Refresh(ctx); err != nil {
		return nil, err
	}

	return &DeletePhoneResult{
		DeletedID: id,
		Message:   fmt.Sprintf("Deleted phone: %s", id),
	}, nil
}
