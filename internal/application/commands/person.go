package commands

import (
	"context"
	"fmt"

	"cdrlink/internal/application"
	"cdrlink/internal/domain"
)

// PersonResult contains the result of a person operation
type PersonResult struct {
	Person  domain.Person
	Message string
}

// AddPersonCommand registers a named person
type AddPersonCommand struct {
	ws   *application.Workspace
	Name string
}

// NewAddPersonCommand creates a new AddPersonCommand
func NewAddPersonCommand(ws *application.Workspace, name string) *AddPersonCommand {
	return &AddPersonCommand{ws: ws, Name: name}
}

func (c *AddPersonCommand) Validate() error {
	return application.ValidateRequired("name", c.Name)
}

// Execute runs the add person command
func (c *AddPersonCommand) Execute(ctx context.Context) (*PersonResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	p, err := c.ws.AddPerson(c.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to add person: %w", err)
	}
	return &PersonResult{Person: p, Message: fmt.Sprintf("Added person: %s (%s)", p.Name, p.ID)}, nil
}

// RenamePersonCommand renames a person, found by ID or current name
type RenamePersonCommand struct {
	ws     *application.Workspace
	Person string
	Name   string
}

// NewRenamePersonCommand creates a new RenamePersonCommand
func NewRenamePersonCommand(ws *application.Workspace, person, name string) *RenamePersonCommand {
	return &RenamePersonCommand{ws: ws, Person: person, Name: name}
}

func (c *RenamePersonCommand) Validate() error {
	if err := application.ValidateRequired("personID", c.Person); err != nil {
		return err
	}
	return application.ValidateRequired("name", c.Name)
}

// Execute runs the rename person command
func (c *RenamePersonCommand) Execute(ctx context.Context) (*PersonResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	p, err := c.ws.ResolvePerson(c.Person)
	if err != nil {
		return nil, err
	}
	if err := c.ws.RenamePerson(p.ID, c.Name); err != nil {
		return nil, fmt.Errorf("failed to rename %s: %w", p.Name, err)
	}
	if _, err := c.ws.Refresh(ctx); err != nil {
		return nil, err
	}
	old := p.Name
	p, _ = c.ws.ResolvePerson(string(p.ID))
	return &PersonResult{Person: p, Message: fmt.Sprintf("Renamed: %s → %s", old, p.Name)}, nil
}

// DeletePersonCommand removes a person; their phones become unassigned
type DeletePersonCommand struct {
	ws     *application.Workspace
	Person string
}

// NewDeletePersonCommand creates a new DeletePersonCommand
func NewDeletePersonCommand(ws *application.Workspace, person string) *DeletePersonCommand {
	return &DeletePersonCommand{ws: ws, Person: person}
}

func (c *DeletePersonCommand) Validate() error {
	return application.ValidateRequired("personID", c.Person)
}

// Execute runs the delete person command
func (c *DeletePersonCommand) Execute(ctx context.Context) (*PersonResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	p, err := c.ws.ResolvePerson(c.Person)
	if err != nil {
		return nil, err
	}
	if err := c.ws.DeletePerson(p.ID); err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", p.Name, err)
	}
	if _, err := c.ws.Refresh(ctx); err != nil {
		return nil, err
	}
	return &PersonResult{Person: p, Message: fmt.Sprintf("Deleted person: %s", p.Name)}, nil
}

// AssignCommand links a phone to a person, or unlinks it with Unassign
type AssignCommand struct {
	ws       *application.Workspace
	Person   string
	Phone    string
	Unassign bool
}

// NewAssignCommand creates a new AssignCommand
func NewAssignCommand(ws *application.Workspace, person, phone string, unassign bool) *AssignCommand {
	return &AssignCommand{ws: ws, Person: person, Phone: phone, Unassign: unassign}
}

// Validate checks if the assignment is valid
func (c *AssignCommand) Validate() error {
	if err := application.ValidateRequired("personID", c.Person); err != nil {
		return err
	}
	_, err := application.ValidatePhone("phone", c.Phone)
	return err
}

// Execute runs the assign command
func (c *AssignCommand) Execute(ctx context.Context) (*PersonResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	id, _ := application.ValidatePhone("phone", c.Phone)
	p, err := c.ws.ResolvePerson(c.Person)
	if err != nil {
		return nil, err
	}

	verb := "Assigned"
	if c.Unassign {
		verb = "Unassigned"
		err = c.ws.UnassignPhone(p.ID, id)
	} else {
		err = c.ws.AssignPhone(p.ID, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", p.Name, err)
	}
	if _, err := c.ws.Refresh(ctx); err != nil {
		return nil, err
	}

	p, _ = c.ws.ResolvePerson(string(p.ID))
	return &PersonResult{Person: p, Message: fmt.Sprintf("%s %s: %s", verb, p.Name, id)}, nil
}
