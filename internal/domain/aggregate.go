package domain

import (
	"fmt"
	"strings"
	"time"
)

// Aggregate holds per-pair statistics derived from an edge's records
type Aggregate struct {
	Pair            PairKey
	CallCount       int
	FirstCall       time.Time
	LastCall        time.Time
	TotalDuration   time.Duration
	DurationSamples int
	Notes           []string
}

// AverageDuration is the mean over calls that carried a duration
func (a Aggregate) AverageDuration() time.Duration {
	if a.DurationSamples == 0 {
		return 0
	}
	return a.TotalDuration / time.Duration(a.DurationSamples)
}

// AverageDurationSeconds is AverageDuration as fractional seconds
func (a Aggregate) AverageDurationSeconds() float64 {
	if a.DurationSamples == 0 {
		return 0
	}
	return a.TotalDuration.Seconds() / float64(a.DurationSamples)
}

// NoteOnly reports whether the pair carries notes but no calls
func (a Aggregate) NoteOnly() bool {
	return a.CallCount == 0 && len(a.Notes) > 0
}

// DateRangeLabel formats the first/last call days:
//
//	same day   2024-01-05
//	same year  01/05-01/09/2024
//	otherwise  2024-12-30 to 2025-01-02
func (a Aggregate) DateRangeLabel() string {
	if a.CallCount == 0 {
		return ""
	}
	first, last := a.FirstCall, a.LastCall
	fy, fm, fd := first.Date()
	ly, lm, ld := last.Date()
	switch {
	case fy == ly && fm == lm && fd == ld:
		return first.Format("2006-01-02")
	case fy == ly:
		return fmt.Sprintf("%02d/%02d-%02d/%02d/%04d", int(fm), fd, int(lm), ld, ly)
	default:
		return first.Format("2006-01-02") + " to " + last.Format("2006-01-02")
	}
}

// AverageDurationLabel renders the average as "Nm Ss" below a minute and
// "X.Ym avg" from a minute up. Empty when no call had a duration.
func (a Aggregate) AverageDurationLabel() string {
	if a.DurationSamples == 0 {
		return ""
	}
	secs := a.AverageDurationSeconds()
	if secs < 60 {
		whole := int(secs)
		return fmt.Sprintf("%dm %ds", whole/60, whole%60)
	}
	return fmt.Sprintf("%.1fm avg", secs/60)
}

// Label is the edge text shown by renderers. Note-only edges carry no
// call-count line.
func (a Aggregate) Label() string {
	var lines []string
	if a.CallCount > 0 {
		lines = append(lines, fmt.Sprintf("%d calls", a.CallCount), a.DateRangeLabel())
		if avg := a.AverageDurationLabel(); avg != "" {
			lines = append(lines, avg)
		}
	}
	lines = append(lines, a.Notes...)
	return strings.Join(lines, "\n")
}

func (a *Aggregate) addCall(c Call) {
	if a.CallCount == 0 || c.Start.Before(a.FirstCall) {
		a.FirstCall = c.Start
	}
	if a.CallCount == 0 || c.Start.After(a.LastCall) {
		a.LastCall = c.Start
	}
	a.CallCount++
	if c.HasDuration && c.Duration >= 0 {
		a.TotalDuration += c.Duration
		a.DurationSamples++
	}
}

func (a *Aggregate) merge(o *Aggregate) {
	if o.CallCount > 0 {
		if a.CallCount == 0 || o.FirstCall.Before(a.FirstCall) {
			a.FirstCall = o.FirstCall
		}
		if a.CallCount == 0 || o.LastCall.After(a.LastCall) {
			a.LastCall = o.LastCall
		}
	}
	a.CallCount += o.CallCount
	a.TotalDuration += o.TotalDuration
	a.DurationSamples += o.DurationSamples
	a.Notes = append(a.Notes, o.Notes...)
}

// Accumulator groups records by pair in a single pass. Accumulators built
// over disjoint chunks can be merged.
type Accumulator struct {
	groups map[PairKey]*Aggregate
}

func NewAccumulator() *Accumulator {
	return &Accumulator{groups: make(map[PairKey]*Aggregate)}
}

func (acc *Accumulator) group(pair PairKey) *Aggregate {
	g, ok := acc.groups[pair]
	if !ok {
		g = &Aggregate{Pair: pair}
		acc.groups[pair] = g
	}
	return g
}

// Add folds one record into the pair's aggregate
func (acc *Accumulator) Add(pair PairKey, rec Record) {
	g := acc.group(pair)
	switch r := rec.(type) {
	case Call:
		g.addCall(r)
	case Note:
		g.Notes = append(g.Notes, r.Text)
	}
}

// AddCanonical folds a normalized call, canonicalizing its pair
func (acc *Accumulator) AddCanonical(rec CanonicalRecord) error {
	pair, err := rec.Pair()
	if err != nil {
		return err
	}
	acc.group(pair).addCall(rec.Call)
	return nil
}

// Merge folds other into acc. other must not be used afterwards.
func (acc *Accumulator) Merge(other *Accumulator) {
	for pair, o := range other.groups {
		acc.group(pair).merge(o)
	}
}

// Len returns the number of pairs seen so far
func (acc *Accumulator) Len() int {
	return len(acc.groups)
}

// Result returns the aggregates keyed by pair
func (acc *Accumulator) Result() map[PairKey]Aggregate {
	out := make(map[PairKey]Aggregate, len(acc.groups))
	for pair, g := range acc.groups {
		out[pair] = *g
	}
	return out
}

// AggregateRecords groups normalized calls by unordered pair
func AggregateRecords(records []CanonicalRecord) (map[PairKey]Aggregate, error) {
	acc := NewAccumulator()
	for _, rec := range records {
		if err := acc.AddCanonical(rec); err != nil {
			return nil, err
		}
	}
	return acc.Result(), nil
}

// AggregateEdge summarizes the records stored on a single edge
func AggregateEdge(pair PairKey, records []Record) Aggregate {
	g := Aggregate{Pair: pair}
	for _, rec := range records {
		switch r := rec.(type) {
		case Call:
			g.addCall(r)
		case Note:
			g.Notes = append(g.Notes, r.Text)
		}
	}
	return g
}
