package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Graph is the canonical undirected multigraph of phones and call records.
// Records live once per unordered pair; incident keeps phone -> pairs.
//
// Invariants:
//   - every endpoint of an edge is a node
//   - an edge exists iff it holds at least one record
//
// Graph is not safe for concurrent use; callers own synchronization.
type Graph struct {
	phones   map[PhoneID]*Phone
	edges    map[PairKey][]Record
	incident map[PhoneID]map[PairKey]struct{}
}

func NewGraph() *Graph {
	return &Graph{
		phones:   make(map[PhoneID]*Phone),
		edges:    make(map[PairKey][]Record),
		incident: make(map[PhoneID]map[PairKey]struct{}),
	}
}

// AddOrGetPhone returns the phone, creating it on first sight. created
// reports whether a new node was added.
func (g *Graph) AddOrGetPhone(id PhoneID) (p Phone, created bool) {
	if existing, ok := g.phones[id]; ok {
		return *existing, false
	}
	np := &Phone{ID: id}
	g.phones[id] = np
	return *np, true
}

// AddPhone creates a phone explicitly and rejects duplicates
func (g *Graph) AddPhone(id PhoneID, alias string) (Phone, error) {
	if _, ok := g.phones[id]; ok {
		return Phone{}, fmt.Errorf("phone %s: %w", id, ErrAlreadyExists)
	}
	np := &Phone{ID: id, Alias: alias}
	g.phones[id] = np
	return *np, nil
}

// PutPhone inserts or replaces a phone with all its attributes
func (g *Graph) PutPhone(p Phone) {
	cp := p
	g.phones[p.ID] = &cp
}

// Phone looks up a node
func (g *Graph) Phone(id PhoneID) (Phone, bool) {
	p, ok := g.phones[id]
	if !ok {
		return Phone{}, false
	}
	return *p, true
}

func (g *Graph) HasPhone(id PhoneID) bool {
	_, ok := g.phones[id]
	return ok
}

// RecordCall stores a call between a and b on their shared edge
func (g *Graph) RecordCall(a, b PhoneID, c Call) error {
	pair, err := NewPairKey(a, b)
	if err != nil {
		return err
	}
	g.appendRecords(pair, c)
	return nil
}

// AddRecords appends records to a canonical pair, creating nodes as needed
func (g *Graph) AddRecords(pair PairKey, recs ...Record) error {
	canonical, err := NewPairKey(pair.A, pair.B)
	if err != nil {
		return err
	}
	if canonical != pair {
		return fmt.Errorf("pair %s is not canonical", pair)
	}
	if len(recs) == 0 {
		return nil
	}
	g.appendRecords(pair, recs...)
	return nil
}

func (g *Graph) appendRecords(pair PairKey, recs ...Record) {
	g.AddOrGetPhone(pair.A)
	g.AddOrGetPhone(pair.B)
	g.edges[pair] = append(g.edges[pair], recs...)
	g.link(pair.A, pair)
	g.link(pair.B, pair)
}

func (g *Graph) link(id PhoneID, pair PairKey) {
	set, ok := g.incident[id]
	if !ok {
		set = make(map[PairKey]struct{})
		g.incident[id] = set
	}
	set[pair] = struct{}{}
}

func (g *Graph) unlink(pair PairKey) {
	delete(g.edges, pair)
	for _, id := range []PhoneID{pair.A, pair.B} {
		if set, ok := g.incident[id]; ok {
			delete(set, pair)
			if len(set) == 0 {
				delete(g.incident, id)
			}
		}
	}
}

// DeletePhone removes a node and every edge touching it
func (g *Graph) DeletePhone(id PhoneID) error {
	if _, ok := g.phones[id]; !ok {
		return &NotFoundError{Kind: "phone", ID: string(id)}
	}
	for pair := range g.incident[id] {
		g.unlink(pair)
	}
	delete(g.incident, id)
	delete(g.phones, id)
	return nil
}

// DeleteEdge removes all calls and notes for a pair
func (g *Graph) DeleteEdge(pair PairKey) error {
	if _, ok := g.edges[pair]; !ok {
		return &NotFoundError{Kind: "edge", ID: pair.String()}
	}
	g.unlink(pair)
	return nil
}

// EdgeStats aggregates the records of a pair
func (g *Graph) EdgeStats(pair PairKey) (Aggregate, bool) {
	recs, ok := g.edges[pair]
	if !ok {
		return Aggregate{}, false
	}
	return AggregateEdge(pair, recs), true
}

// AddManualNote appends a note to the pair, creating the nodes when needed.
// Empty text clears every note on the pair instead; call records are kept.
func (g *Graph) AddManualNote(a, b PhoneID, text string, at time.Time) error {
	pair, err := NewPairKey(a, b)
	if err != nil {
		return err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		g.clearNotes(pair)
		return nil
	}
	g.appendRecords(pair, Note{Text: text, CreatedAt: at})
	return nil
}

// SetNote replaces any notes on the pair with a single note. Empty text clears.
func (g *Graph) SetNote(a, b PhoneID, text string, at time.Time) error {
	pair, err := NewPairKey(a, b)
	if err != nil {
		return err
	}
	g.clearNotes(pair)
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	g.appendRecords(pair, Note{Text: text, CreatedAt: at})
	return nil
}

func (g *Graph) clearNotes(pair PairKey) {
	recs, ok := g.edges[pair]
	if !ok {
		return
	}
	kept := recs[:0:0]
	for _, r := range recs {
		if _, isNote := r.(Note); !isNote {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		g.unlink(pair)
		return
	}
	g.edges[pair] = kept
}

// SetAlias changes a phone's display alias. Empty clears it.
func (g *Graph) SetAlias(id PhoneID, alias string) error {
	p, ok := g.phones[id]
	if !ok {
		return &NotFoundError{Kind: "phone", ID: string(id)}
	}
	p.Alias = strings.TrimSpace(alias)
	return nil
}

// CycleColor advances a phone's colour index modulo the palette size
func (g *Graph) CycleColor(id PhoneID, paletteSize int) (int, error) {
	p, ok := g.phones[id]
	if !ok {
		return 0, &NotFoundError{Kind: "phone", ID: string(id)}
	}
	if paletteSize <= 0 {
		return p.ColorIndex, nil
	}
	p.ColorIndex = (p.ColorIndex + 1) % paletteSize
	return p.ColorIndex, nil
}

// Phones returns all nodes sorted by ID
func (g *Graph) Phones() []Phone {
	out := make([]Phone, 0, len(g.phones))
	for _, p := range g.phones {
		out = append(out, *p)
	}
	slices.SortFunc(out, func(a, b Phone) int { return strings.Compare(string(a.ID), string(b.ID)) })
	return out
}

// PhoneIDs returns all node IDs sorted
func (g *Graph) PhoneIDs() []PhoneID {
	out := make([]PhoneID, 0, len(g.phones))
	for id := range g.phones {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Pairs returns all edge keys sorted by (A, B)
func (g *Graph) Pairs() []PairKey {
	out := make([]PairKey, 0, len(g.edges))
	for pair := range g.edges {
		out = append(out, pair)
	}
	sortPairs(out)
	return out
}

// IncidentPairs returns the edges touching id, sorted
func (g *Graph) IncidentPairs(id PhoneID) []PairKey {
	set := g.incident[id]
	out := make([]PairKey, 0, len(set))
	for pair := range set {
		out = append(out, pair)
	}
	sortPairs(out)
	return out
}

// HasRecords reports whether any edge touches id
func (g *Graph) HasRecords(id PhoneID) bool {
	return len(g.incident[id]) > 0
}

// Records returns a copy of the records stored on a pair
func (g *Graph) Records(pair PairKey) []Record {
	return slices.Clone(g.edges[pair])
}

func (g *Graph) NodeCount() int { return len(g.phones) }
func (g *Graph) EdgeCount() int { return len(g.edges) }

// RecordCount counts call records, excluding notes
func (g *Graph) RecordCount() int {
	n := 0
	for _, recs := range g.edges {
		for _, r := range recs {
			if _, ok := r.(Call); ok {
				n++
			}
		}
	}
	return n
}

// CanonicalRecords flattens every call into normalized form, ordered by pair
func (g *Graph) CanonicalRecords() []CanonicalRecord {
	var out []CanonicalRecord
	for _, pair := range g.Pairs() {
		for _, r := range g.edges[pair] {
			if c, ok := r.(Call); ok {
				out = append(out, CanonicalRecord{PartyA: pair.A, PartyB: pair.B, Call: c})
			}
		}
	}
	return out
}

// Clone returns a deep copy. Records are values, so copying the slices is enough.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		phones:   make(map[PhoneID]*Phone, len(g.phones)),
		edges:    make(map[PairKey][]Record, len(g.edges)),
		incident: make(map[PhoneID]map[PairKey]struct{}, len(g.incident)),
	}
	for id, p := range g.phones {
		cp := *p
		c.phones[id] = &cp
	}
	for pair, recs := range g.edges {
		c.edges[pair] = slices.Clone(recs)
	}
	for id, set := range g.incident {
		cs := make(map[PairKey]struct{}, len(set))
		for pair := range set {
			cs[pair] = struct{}{}
		}
		c.incident[id] = cs
	}
	return c
}

// PhoneStats summarizes a phone's activity
type PhoneStats struct {
	TotalCalls     int
	TotalDuration  time.Duration
	UniqueContacts int
}

// FormatTotalDuration renders "Xh Ym" or "Ym"
func (s PhoneStats) FormatTotalDuration() string {
	mins := int(s.TotalDuration / time.Minute)
	if mins >= 60 {
		return fmt.Sprintf("%dh %dm", mins/60, mins%60)
	}
	return fmt.Sprintf("%dm", mins)
}

// PhoneStats computes totals over every call touching id
func (g *Graph) PhoneStats(id PhoneID) (PhoneStats, error) {
	if _, ok := g.phones[id]; !ok {
		return PhoneStats{}, &NotFoundError{Kind: "phone", ID: string(id)}
	}
	var s PhoneStats
	for pair := range g.incident[id] {
		contacted := false
		for _, r := range g.edges[pair] {
			c, ok := r.(Call)
			if !ok {
				continue
			}
			contacted = true
			s.TotalCalls++
			if c.HasDuration {
				s.TotalDuration += c.Duration
			}
		}
		if contacted {
			s.UniqueContacts++
		}
	}
	return s, nil
}

func sortPairs(pairs []PairKey) {
	slices.SortFunc(pairs, func(x, y PairKey) int {
		if c := strings.Compare(string(x.A), string(y.A)); c != 0 {
			return c
		}
		return strings.Compare(string(x.B), string(y.B))
	})
}
