package domain

import (
	"strings"
	"time"
)

// Direction of a call as seen from the first party
type Direction int

const (
	DirectionUnknown Direction = iota
	DirectionOutbound
	DirectionInbound
)

func (d Direction) String() string {
	switch d {
	case DirectionOutbound:
		return "Outbound"
	case DirectionInbound:
		return "Inbound"
	default:
		return "Unknown"
	}
}

// ParseDirection maps "outbound", "outgoing" and "out" (any case) to
// DirectionOutbound and anything non-empty to DirectionInbound.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "outbound", "outgoing", "out":
		return DirectionOutbound
	case "":
		return DirectionUnknown
	default:
		return DirectionInbound
	}
}

// Record is stored on an edge. It is either a Call or a Note.
type Record interface {
	isRecord()
}

// Call is a single phone call between the two parties of an edge
type Call struct {
	Start       time.Time
	End         time.Time // zero when the source only carried a start time
	Duration    time.Duration
	HasDuration bool
	Direction   Direction
}

func (Call) isRecord() {}

// Note is free text attached to a pair without representing a call
type Note struct {
	Text      string
	CreatedAt time.Time
}

func (Note) isRecord() {}

// CanonicalRecord is a normalized call between two parties
type CanonicalRecord struct {
	PartyA PhoneID
	PartyB PhoneID
	Call   Call
}

// Pair returns the canonical pair key of the record
func (r CanonicalRecord) Pair() (PairKey, error) {
	return NewPairKey(r.PartyA, r.PartyB)
}

// RawRow maps column names to cell values
type RawRow map[string]string

// ImportSummary reports the outcome of a single import
type ImportSummary struct {
	Schema           string
	RecordsProcessed int
	RecordsSkipped   int
	NewNodesAdded    int
}
