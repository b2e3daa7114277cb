package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cdrlink/internal/application"
	"cdrlink/internal/domain"
	"cdrlink/internal/ports"
)

// ExportResult contains where the document was written
type ExportResult struct {
	Path    string
	Mode    domain.PageMode
	Message string
}

// ExportCommand renders the current view to a document file
type ExportCommand struct {
	ws       *application.Workspace
	exporter ports.Exporter
	Path     string
	Title    string
	Mode     string
}

// NewExportCommand creates a new ExportCommand
func NewExportCommand(ws *application.Workspace, exporter ports.Exporter, path, title, mode string) *ExportCommand {
	return &ExportCommand{ws: ws, exporter: exporter, Path: path, Title: title, Mode: mode}
}

// Validate checks the output path and page mode
func (c *ExportCommand) Validate() error {
	if err := application.ValidateRequired("path", c.Path); err != nil {
		return err
	}
	if c.Mode == "" {
		return nil
	}
	if _, err := application.ParsePageMode(c.Mode); err != nil {
		return &application.ValidationError{Field: "mode", Message: err.Error()}
	}
	return nil
}

// Execute runs the export command. The output file is only replaced once the
// document has been fully written.
func (c *ExportCommand) Execute(ctx context.Context) (*ExportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	mode := domain.PageLetterLandscape
	if c.Mode != "" {
		mode, _ = application.ParsePageMode(c.Mode)
	}
	path := c.Path
	if filepath.Ext(path) == "" {
		path += c.exporter.Extension()
	}
	title := strings.TrimSpace(c.Title)
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := c.exporter.Export(tmp, title, c.ws.View(), mode); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}

	return &ExportResult{
		Path:    path,
		Mode:    mode,
		Message: fmt.Sprintf("Exported %s (%s)", path, mode),
	}, nil
}
