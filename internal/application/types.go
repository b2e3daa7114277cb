package application

import (
	"cdrlink/internal/domain"
	"cdrlink/internal/filter"
	"cdrlink/internal/layout"
)

// Re-export domain types for use by adapters
type (
	PhoneID       = domain.PhoneID
	PairKey       = domain.PairKey
	Phone         = domain.Phone
	PhoneStats    = domain.PhoneStats
	PersonID      = domain.PersonID
	Person        = domain.Person
	Aggregate     = domain.Aggregate
	Summary       = domain.Summary
	ImportSummary = domain.ImportSummary
	Snapshot      = domain.Snapshot
	ViewModel     = domain.ViewModel
	ViewNode      = domain.ViewNode
	ViewEdge      = domain.ViewEdge
	PageMode      = domain.PageMode
)

// Re-export view and layout types
type (
	FilterSpec    = filter.Spec
	FilteredGraph = filter.FilteredGraph
	Position      = layout.Position
	Placement     = layout.Placement
	Viewport      = layout.Viewport
)

// ParsePageMode accepts letter-landscape, a4-landscape or native-fit
func ParsePageMode(s string) (PageMode, error) {
	return domain.ParsePageMode(s)
}

// DefaultFilterSpec shows every node and edge
func DefaultFilterSpec() FilterSpec {
	return filter.DefaultSpec()
}
