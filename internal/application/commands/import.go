package commands

import (
	"context"
	"fmt"

	"cdrlink/internal/application"
	"cdrlink/internal/domain"
	"cdrlink/internal/ports"
)

// ImportResult contains the result of an import
type ImportResult struct {
	Summary domain.ImportSummary
	Message string
}

// ImportCommand reads a call table and merges it into the workspace
type ImportCommand struct {
	ws     *application.Workspace
	reader ports.RowReader
	Path   string
}

// NewImportCommand creates a new ImportCommand
func NewImportCommand(ws *application.Workspace, reader ports.RowReader, path string) *ImportCommand {
	return &ImportCommand{
		ws:     ws,
		reader: reader,
		Path:   path,
	}
}

// Validate checks if the import is valid
func (c *ImportCommand) Validate() error {
	return application.ValidateRequired("path", c.Path)
}

// Execute runs the import command
func (c *ImportCommand) Execute(ctx context.Context) (*ImportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	columns, rows, err := c.reader.ReadRows(c.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.Path, err)
	}

	summary, err := c.ws.Import(ctx, columns, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to import %s: %w", c.Path, err)
	}
	if _, err := c.ws.Refresh(ctx); err != nil {
		return nil, err
	}

	return &ImportResult{
		Summary: summary,
		Message: fmt.Sprintf("Imported %d records (%d skipped, %d new phones) using the %s format",
			summary.RecordsProcessed, summary.RecordsSkipped, summary.NewNodesAdded, summary.Schema),
	}, nil
}
