package application

import (
	"cdrlink/internal/domain"
	"cdrlink/internal/ingest"
	"cdrlink/internal/validation"
)

// Sentinel errors for common conditions
var (
	ErrNotFound        = domain.ErrNotFound
	ErrSelfLoop        = domain.ErrSelfLoop
	ErrAlreadyExists   = domain.ErrAlreadyExists
	ErrInvalidPhone    = domain.ErrInvalidPhone
	ErrSchemaDetection = domain.ErrSchemaDetection
	ErrCorruptSnapshot = domain.ErrCorruptSnapshot
	ErrStaleResult     = domain.ErrStaleResult
	ErrMalformedRow    = ingest.ErrMalformedRow
)

// ValidationError represents a validation failure with details
type ValidationError = validation.Error

// Typed errors carrying the failing identifiers
type (
	NotFoundError        = domain.NotFoundError
	SelfLoopError        = domain.SelfLoopError
	SchemaDetectionError = domain.SchemaDetectionError
	StaleResultError     = domain.StaleResultError
)
