package commands

import (
	"context"
	"fmt"

	"cdrlink/internal/application"
	"cdrlink/internal/ingest"
	"cdrlink/internal/ports"
)

// SampleResult contains where the sample was written
type SampleResult struct {
	Path    string
	Rows    int
	Message string
}

// GenerateSampleCommand writes a synthetic call table
type GenerateSampleCommand struct {
	writer ports.RowWriter
	Path   string
	Seed   uint64
	Phones int
	Rows   int
}

// NewGenerateSampleCommand creates a new GenerateSampleCommand
func NewGenerateSampleCommand(writer ports.RowWriter, path string, seed uint64, phones, rows int) *GenerateSampleCommand {
	return &GenerateSampleCommand{writer: writer, Path: path, Seed: seed, Phones: phones, Rows: rows}
}

// Validate checks the sample size
func (c *GenerateSampleCommand) Validate() error {
	if err := application.ValidateRequired("path", c.Path); err != nil {
		return err
	}
	if c.Phones < 2 {
		return &application.ValidationError{Field: "phones", Message: "at least 2 phones are required"}
	}
	if c.Rows < 1 {
		return &application.ValidationError{Field: "rows", Message: "at least 1 row is required"}
	}
	return nil
}

// Execute runs the sample command
func (c *GenerateSampleCommand) Execute(ctx context.Context) (*SampleResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	rows := ingest.GenerateSample(c.Seed, c.Phones, c.Rows)
	if err := c.writer.WriteRows(c.Path, ingest.SampleColumns, rows); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", c.Path, err)
	}
	return &SampleResult{
		Path:    c.Path,
		Rows:    len(rows),
		Message: fmt.Sprintf("Wrote %d sample rows over %d phones to %s", len(rows), c.Phones, c.Path),
	}, nil
}
