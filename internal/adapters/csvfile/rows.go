package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cdrlink/internal/domain"
	"cdrlink/internal/ports"
)

// Rows reads and writes call tables as CSV files with a header line
type Rows struct{}

// Ensure Rows implements the row ports
var (
	_ ports.RowReader = Rows{}
	_ ports.RowWriter = Rows{}
)

func NewRows() Rows { return Rows{} }

// ReadRows reads the header and every data line. Short lines leave their
// missing columns empty; extra cells are dropped.
func (Rows) ReadRows(path string) ([]string, []domain.RawRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer file.Close()
	return Decode(file)
}

// Decode reads a CSV table from r
func Decode(r io.Reader) ([]string, []domain.RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, errors.New("CSV file is empty")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("error reading CSV header: %w", err)
	}
	columns := make([]string, len(header))
	for i, col := range header {
		columns[i] = strings.TrimSpace(col)
	}
	if len(columns) > 0 {
		columns[0] = strings.TrimPrefix(columns[0], "\ufeff")
	}

	var rows []domain.RawRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("error reading CSV: %w", err)
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		row := make(domain.RawRow, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return columns, rows, nil
}

// WriteRows writes the header followed by one line per row
func (Rows) WriteRows(path string, columns []string, rows []domain.RawRow) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	if err := Encode(file, columns, rows); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Encode writes a CSV table to w
func Encode(w io.Writer, columns []string, rows []domain.RawRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}
	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			record[i] = row[col]
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("error writing CSV: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
