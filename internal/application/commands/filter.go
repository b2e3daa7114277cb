package commands

import (
	"context"
	"fmt"

	"cdrlink/internal/application"
	"cdrlink/internal/filter"
)

// FilterResult contains the view produced by a filter
type FilterResult struct {
	View    *filter.FilteredGraph
	Message string
}

// FilterCommand replaces the active filter and waits for the new view
type FilterCommand struct {
	ws   *application.Workspace
	Spec filter.Spec
}

// NewFilterCommand creates a new FilterCommand
func NewFilterCommand(ws *application.Workspace, spec filter.Spec) *FilterCommand {
	return &FilterCommand{ws: ws, Spec: spec}
}

// Validate checks the filter bounds
func (c *FilterCommand) Validate() error {
	return c.Spec.Validate()
}

// Execute runs the filter command
func (c *FilterCommand) Execute(ctx context.Context) (*FilterResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	view, err := c.ws.SetFilter(ctx, c.Spec)
	if err != nil {
		return nil, fmt.Errorf("failed to apply filter: %w", err)
	}
	s := view.Summary()
	return &FilterResult{
		View:    view,
		Message: fmt.Sprintf("Showing %d phones and %d edges (%d records)", s.NodeCount, s.EdgeCount, s.TotalRecords),
	}, nil
}
