package domain

import (
	"fmt"
	"time"
)

// SnapshotVersion is bumped whenever the document layout changes
const SnapshotVersion = 1

// Snapshot is the serializable save/load record of a workspace
type Snapshot struct {
	Version   int          `json:"version"`
	SavedAt   time.Time    `json:"savedAt"`
	Phones    []PhoneDoc   `json:"phones"`
	Persons   []PersonDoc  `json:"persons"`
	Edges     []EdgeDoc    `json:"edges"`
	ViewState ViewStateDoc `json:"viewState"`
}

type PhoneDoc struct {
	ID          string       `json:"id"`
	Alias       string       `json:"alias,omitempty"`
	ColorIndex  int          `json:"colorIndex,omitempty"`
	Position    *PositionDoc `json:"position,omitempty"`
	LayoutState string       `json:"layoutState,omitempty"`
}

type PositionDoc struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type PersonDoc struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Phones []string `json:"phones"`
}

type EdgeDoc struct {
	PairKey string      `json:"pairKey"`
	Records []RecordDoc `json:"records"`
}

// RecordDoc flattens the Call/Note variant; Kind selects which fields apply
type RecordDoc struct {
	Kind            string     `json:"kind"`
	Start           *time.Time `json:"start,omitempty"`
	End             *time.Time `json:"end,omitempty"`
	DurationSeconds *float64   `json:"durationSeconds,omitempty"`
	Direction       string     `json:"direction,omitempty"`
	Text            string     `json:"text,omitempty"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
}

type ViewStateDoc struct {
	Zoom float64 `json:"zoom"`
	PanX float64 `json:"panX"`
	PanY float64 `json:"panY"`
}

const (
	recordKindCall = "call"
	recordKindNote = "note"
)

// EncodeRecord converts a record into its document form
func EncodeRecord(rec Record) RecordDoc {
	switch r := rec.(type) {
	case Call:
		start := r.Start
		doc := RecordDoc{Kind: recordKindCall, Start: &start, Direction: r.Direction.String()}
		if !r.End.IsZero() {
			end := r.End
			doc.End = &end
		}
		if r.HasDuration {
			secs := r.Duration.Seconds()
			doc.DurationSeconds = &secs
		}
		return doc
	case Note:
		created := r.CreatedAt
		return RecordDoc{Kind: recordKindNote, Text: r.Text, CreatedAt: &created}
	}
	return RecordDoc{}
}

// DecodeRecord is the inverse of EncodeRecord
func DecodeRecord(doc RecordDoc) (Record, error) {
	switch doc.Kind {
	case recordKindCall:
		if doc.Start == nil {
			return nil, fmt.Errorf("%w: call without start", ErrCorruptSnapshot)
		}
		c := Call{Start: *doc.Start, Direction: ParseDirection(doc.Direction)}
		if doc.Direction == DirectionUnknown.String() {
			c.Direction = DirectionUnknown
		}
		if doc.End != nil {
			c.End = *doc.End
		}
		if doc.DurationSeconds != nil {
			if *doc.DurationSeconds < 0 {
				return nil, fmt.Errorf("%w: negative duration", ErrCorruptSnapshot)
			}
			c.Duration = time.Duration(*doc.DurationSeconds * float64(time.Second))
			c.HasDuration = true
		}
		return c, nil
	case recordKindNote:
		n := Note{Text: doc.Text}
		if doc.CreatedAt != nil {
			n.CreatedAt = *doc.CreatedAt
		}
		return n, nil
	default:
		return nil, fmt.Errorf("%w: unknown record kind %q", ErrCorruptSnapshot, doc.Kind)
	}
}

// EncodeGraph fills the phones, persons and edges of a snapshot.
// Positions and view state are filled by the caller.
func EncodeGraph(g *Graph, reg *Registry) Snapshot {
	snap := Snapshot{Version: SnapshotVersion}
	for _, p := range g.Phones() {
		snap.Phones = append(snap.Phones, PhoneDoc{ID: string(p.ID), Alias: p.Alias, ColorIndex: p.ColorIndex})
	}
	for _, person := range reg.Persons() {
		doc := PersonDoc{ID: string(person.ID), Name: person.Name, Phones: []string{}}
		for _, id := range person.Phones {
			doc.Phones = append(doc.Phones, string(id))
		}
		snap.Persons = append(snap.Persons, doc)
	}
	for _, pair := range g.Pairs() {
		doc := EdgeDoc{PairKey: pair.String()}
		for _, rec := range g.edges[pair] {
			doc.Records = append(doc.Records, EncodeRecord(rec))
		}
		snap.Edges = append(snap.Edges, doc)
	}
	return snap
}

// DecodeGraph rebuilds a graph and registry from a snapshot. Nothing is
// returned unless the whole document is valid.
func DecodeGraph(snap Snapshot) (*Graph, *Registry, error) {
	if snap.Version > SnapshotVersion {
		return nil, nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptSnapshot, snap.Version)
	}
	g := NewGraph()
	for _, doc := range snap.Phones {
		id, err := NormalizePhone(doc.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
		}
		g.PutPhone(Phone{ID: id, Alias: doc.Alias, ColorIndex: doc.ColorIndex})
	}
	for _, edge := range snap.Edges {
		pair, err := ParsePairKey(edge.PairKey)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
		}
		if len(edge.Records) == 0 {
			return nil, nil, fmt.Errorf("%w: edge %s has no records", ErrCorruptSnapshot, pair)
		}
		recs := make([]Record, 0, len(edge.Records))
		for _, rd := range edge.Records {
			rec, err := DecodeRecord(rd)
			if err != nil {
				return nil, nil, fmt.Errorf("edge %s: %w", pair, err)
			}
			recs = append(recs, rec)
		}
		if err := g.AddRecords(pair, recs...); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
		}
	}

	reg := NewRegistry()
	for _, doc := range snap.Persons {
		person := Person{ID: PersonID(doc.ID), Name: doc.Name}
		for _, raw := range doc.Phones {
			id, err := NormalizePhone(raw)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: person %s: %v", ErrCorruptSnapshot, doc.ID, err)
			}
			person.Phones = append(person.Phones, id)
		}
		if err := reg.PutPerson(person); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
		}
	}
	return g, reg, nil
}
