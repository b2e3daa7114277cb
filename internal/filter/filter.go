package filter

import (
	"cmp"
	"context"
	"slices"

	"cdrlink/internal/domain"
)

// Category is how a visible node is drawn
type Category int

const (
	CategoryUnassignedPhone Category = iota
	CategoryPersonLinked
)

func (c Category) String() string {
	if c == CategoryPersonLinked {
		return "person-linked"
	}
	return "unassigned-phone"
}

// FilteredGraph is an immutable view produced by Apply. It owns copies of
// everything it exposes.
type FilteredGraph struct {
	spec       Spec
	graph      *domain.Graph
	aggregates map[domain.PairKey]domain.Aggregate
	owners     map[domain.PhoneID]domain.PersonID
	summary    domain.Summary
	maxCalls   int
}

// Apply filters g in five steps: date/time window, re-aggregation, minimum
// call count, node cap by activity, then node-type visibility. owners maps
// each assigned phone to its resolved person. Neither input is modified.
//
// Notes are outside the date/time window and the call minimum: an edge that
// carries only notes survives both steps.
func Apply(g *domain.Graph, owners map[domain.PhoneID]domain.PersonID, spec Spec) (*FilteredGraph, error) {
	return ApplyContext(context.Background(), g, owners, spec, 1)
}

// ApplyContext is Apply with cancellation and chunked re-aggregation over
// the given number of workers.
func ApplyContext(ctx context.Context, g *domain.Graph, owners map[domain.PhoneID]domain.PersonID, spec Spec, workers int) (*FilteredGraph, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	// date/time window; notes always pass
	windowed := make(map[domain.PairKey][]domain.Record)
	var calls []domain.CanonicalRecord
	for _, pair := range g.Pairs() {
		var kept []domain.Record
		for _, rec := range g.Records(pair) {
			if c, ok := rec.(domain.Call); ok {
				if !spec.Admits(c.Start) {
					continue
				}
				calls = append(calls, domain.CanonicalRecord{PartyA: pair.A, PartyB: pair.B, Call: c})
			}
			kept = append(kept, rec)
		}
		if len(kept) > 0 {
			windowed[pair] = kept
		}
	}

	// re-aggregate, then drop pairs under the call minimum
	aggs, err := domain.AggregateParallel(ctx, calls, workers)
	if err != nil {
		return nil, err
	}
	for pair, recs := range windowed {
		agg, ok := aggs[pair]
		if !ok {
			agg = domain.Aggregate{Pair: pair}
		}
		for _, rec := range recs {
			if n, isNote := rec.(domain.Note); isNote {
				agg.Notes = append(agg.Notes, n.Text)
			}
		}
		if agg.CallCount > 0 && agg.CallCount < spec.MinCalls {
			delete(windowed, pair)
			delete(aggs, pair)
			continue
		}
		aggs[pair] = agg
	}

	// nodes survive through an edge, or when they never had records
	score := make(map[domain.PhoneID]int)
	for pair, agg := range aggs {
		score[pair.A] += agg.CallCount
		score[pair.B] += agg.CallCount
	}
	var candidates []domain.PhoneID
	for _, id := range g.PhoneIDs() {
		if _, linked := score[id]; linked || !g.HasRecords(id) {
			candidates = append(candidates, id)
		}
	}

	if len(candidates) > spec.MaxNodes {
		slices.SortStableFunc(candidates, func(a, b domain.PhoneID) int {
			if c := cmp.Compare(score[b], score[a]); c != 0 {
				return c
			}
			return cmp.Compare(a, b)
		})
		candidates = candidates[:spec.MaxNodes]
	}

	visible := make(map[domain.PhoneID]bool, len(candidates))
	for _, id := range candidates {
		_, owned := owners[id]
		show := spec.ShowPhones && ((owned && spec.ShowPersons) || (!owned && spec.ShowUnassignedPhones))
		if show {
			visible[id] = true
		}
	}

	fg := &FilteredGraph{
		spec:       spec,
		graph:      domain.NewGraph(),
		aggregates: make(map[domain.PairKey]domain.Aggregate),
		owners:     make(map[domain.PhoneID]domain.PersonID),
	}
	for id := range visible {
		p, _ := g.Phone(id)
		fg.graph.PutPhone(p)
		if person, ok := owners[id]; ok {
			fg.owners[id] = person
		}
	}
	for pair, recs := range windowed {
		if !visible[pair.A] || !visible[pair.B] {
			continue
		}
		if err := fg.graph.AddRecords(pair, recs...); err != nil {
			return nil, err
		}
		fg.aggregates[pair] = aggs[pair]
		fg.maxCalls = max(fg.maxCalls, aggs[pair].CallCount)
	}

	persons := make(map[domain.PersonID]struct{})
	for _, person := range fg.owners {
		persons[person] = struct{}{}
	}
	fg.summary = domain.Summarize(fg.graph, len(persons))
	return fg, nil
}

// Spec returns the filter the view was built with
func (f *FilteredGraph) Spec() Spec { return f.spec }

// Graph returns a private copy of the view's nodes and records, suitable as
// input to another Apply
func (f *FilteredGraph) Graph() *domain.Graph { return f.graph.Clone() }

// Nodes lists visible phones sorted by ID
func (f *FilteredGraph) Nodes() []domain.Phone { return f.graph.Phones() }

// NodeIDs lists visible phone IDs sorted
func (f *FilteredGraph) NodeIDs() []domain.PhoneID { return f.graph.PhoneIDs() }

// Pairs lists visible edges sorted
func (f *FilteredGraph) Pairs() []domain.PairKey { return f.graph.Pairs() }

func (f *FilteredGraph) HasNode(id domain.PhoneID) bool { return f.graph.HasPhone(id) }

// Edge returns the re-aggregated statistics of a visible edge
func (f *FilteredGraph) Edge(pair domain.PairKey) (domain.Aggregate, bool) {
	agg, ok := f.aggregates[pair]
	return agg, ok
}

// Edges lists the statistics of every visible edge, sorted by pair
func (f *FilteredGraph) Edges() []domain.Aggregate {
	out := make([]domain.Aggregate, 0, len(f.aggregates))
	for _, pair := range f.graph.Pairs() {
		out = append(out, f.aggregates[pair])
	}
	return out
}

// Owner returns the resolved person of a visible phone
func (f *FilteredGraph) Owner(id domain.PhoneID) (domain.PersonID, bool) {
	p, ok := f.owners[id]
	return p, ok
}

// Category classifies a visible node
func (f *FilteredGraph) Category(id domain.PhoneID) Category {
	if _, ok := f.owners[id]; ok {
		return CategoryPersonLinked
	}
	return CategoryUnassignedPhone
}

// MaxCallCount is the largest call count among visible edges
func (f *FilteredGraph) MaxCallCount() int { return f.maxCalls }

func (f *FilteredGraph) Summary() domain.Summary { return f.summary }

// Owners returns a copy of the owner map restricted to visible nodes
func (f *FilteredGraph) Owners() map[domain.PhoneID]domain.PersonID {
	out := make(map[domain.PhoneID]domain.PersonID, len(f.owners))
	for k, v := range f.owners {
		out[k] = v
	}
	return out
}
