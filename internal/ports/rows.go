package ports

import "cdrlink/internal/domain"

// RowReader reads a table of CDR rows keyed by header name
type RowReader interface {
	ReadRows(path string) (columns []string, rows []domain.RawRow, err error)
}

// RowWriter writes rows in the given column order
type RowWriter interface {
	WriteRows(path string, columns []string, rows []domain.RawRow) error
}
