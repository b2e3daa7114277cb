package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for graph and registry operations
var (
	ErrNotFound        = errors.New("not found")
	ErrSelfLoop        = errors.New("self loop")
	ErrAlreadyExists   = errors.New("already exists")
	ErrInvalidPhone    = errors.New("invalid phone number")
	ErrSchemaDetection = errors.New("schema detection failed")
	ErrStaleResult     = errors.New("stale result")
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
	ErrEmptyName       = errors.New("name is required")
)

// SelfLoopError is returned when both parties of a call are the same phone
type SelfLoopError struct {
	Phone PhoneID
}

func (e *SelfLoopError) Error() string {
	return fmt.Sprintf("phone %s cannot call itself", e.Phone)
}

func (e *SelfLoopError) Is(target error) bool {
	return target == ErrSelfLoop
}

// NotFoundError reports a missing phone, edge or person
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// SchemaDetectionError is returned when no known column layout matches an import
type SchemaDetectionError struct {
	Columns []string
}

func (e *SchemaDetectionError) Error() string {
	return fmt.Sprintf("cannot detect caller/receiver columns in [%s]", strings.Join(e.Columns, ", "))
}

func (e *SchemaDetectionError) Is(target error) bool {
	return target == ErrSchemaDetection
}

// StaleResultError marks a background result superseded by a newer job
type StaleResultError struct {
	Seq    uint64
	Latest uint64
}

func (e *StaleResultError) Error() string {
	return fmt.Sprintf("result %d superseded by job %d", e.Seq, e.Latest)
}

func (e *StaleResultError) Is(target error) bool {
	return target == ErrStaleResult
}
