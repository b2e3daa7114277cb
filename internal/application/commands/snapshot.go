package commands

import (
	"context"
	"fmt"

	"cdrlink/internal/application"
	"cdrlink/internal/domain"
	"cdrlink/internal/ports"
)

// SnapshotResult contains the result of a save or load
type SnapshotResult struct {
	Name    string
	Summary domain.Summary
	Message string
}

// SaveCommand stores the workspace under a name, replacing any earlier save
type SaveCommand struct {
	ws    *application.Workspace
	store ports.SnapshotStore
	Name  string
}

// NewSaveCommand creates a new SaveCommand
func NewSaveCommand(ws *application.Workspace, store ports.SnapshotStore, name string) *SaveCommand {
	return &SaveCommand{ws: ws, store: store, Name: name}
}

func (c *SaveCommand) Validate() error {
	return application.ValidateRequired("name", c.Name)
}

// Execute runs the save command
func (c *SaveCommand) Execute(ctx context.Context) (*SnapshotResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	snap := c.ws.Snapshot()
	if err := c.store.Save(c.Name, snap); err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", c.Name, err)
	}
	totals := c.ws.Totals()
	return &SnapshotResult{
		Name:    c.Name,
		Summary: totals,
		Message: fmt.Sprintf("Saved %s: %d phones, %d edges", c.Name, totals.NodeCount, totals.EdgeCount),
	}, nil
}

// LoadCommand replaces the workspace with a stored snapshot
type LoadCommand struct {
	ws    *application.Workspace
	store ports.SnapshotStore
	Name  string
}

// NewLoadCommand creates a new LoadCommand
func NewLoadCommand(ws *application.Workspace, store ports.SnapshotStore, name string) *LoadCommand {
	return &LoadCommand{ws: ws, store: store, Name: name}
}

func (c *LoadCommand) Validate() error {
	return application.ValidateRequired("name", c.Name)
}

// Execute runs the load command
func (c *LoadCommand) Execute(ctx context.Context) (*SnapshotResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	snap, err := c.store.Load(c.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", c.Name, err)
	}
	if err := c.ws.Restore(ctx, snap); err != nil {
		return nil, fmt.Errorf("failed to restore %s: %w", c.Name, err)
	}
	totals := c.ws.Totals()
	return &SnapshotResult{
		Name:    c.Name,
		Summary: totals,
		Message: fmt.Sprintf("Loaded %s: %d phones, %d edges", c.Name, totals.NodeCount, totals.EdgeCount),
	}, nil
}

// ListSnapshotsCommand lists stored snapshots
type ListSnapshotsCommand struct {
	store ports.SnapshotStore
}

// NewListSnapshotsCommand creates a new ListSnapshotsCommand
func NewListSnapshotsCommand(store ports.SnapshotStore) *ListSnapshotsCommand {
	return &ListSnapshotsCommand{store: store}
}

// Execute runs the list command
func (c *ListSnapshotsCommand) Execute(ctx context.Context) ([]domain.SnapshotInfo, error) {
	return c.store.List()
}

// DeleteSnapshotCommand removes a stored snapshot
type DeleteSnapshotCommand struct {
	store ports.SnapshotStore
	Name  string
}

// NewDeleteSnapshotCommand creates a new DeleteSnapshotCommand
func NewDeleteSnapshotCommand(store ports.SnapshotStore, name string) *DeleteSnapshotCommand {
	return &DeleteSnapshotCommand{store: store, Name: name}
}

func (c *DeleteSnapshotCommand) Validate() error {
	return application.ValidateRequired("name", c.Name)
}

// Execute runs the delete command
func (c *DeleteSnapshotCommand) Execute(ctx context.Context) (*SnapshotResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := c.store.Delete(c.Name); err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", c.Name, err)
	}
	return &SnapshotResult{Name: c.Name, Message: fmt.Sprintf("Deleted snapshot: %s", c.Name)}, nil
}
