package ingest

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"cdrlink/internal/domain"
)

// ErrMalformedRow is matched by every RowError
var ErrMalformedRow = errors.New("malformed row")

// RowError describes why a single row was skipped
type RowError struct {
	Row    int
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

func (e *RowError) Is(target error) bool {
	return target == ErrMalformedRow
}

// Normalizer converts raw rows into canonical records for one schema
type Normalizer struct {
	schema Schema
	loc    *time.Location
	now    func() time.Time
}

// Option configures a Normalizer
type Option func(*Normalizer)

// WithLocation sets the zone used for timestamps without an offset
func WithLocation(loc *time.Location) Option {
	return func(n *Normalizer) { n.loc = loc }
}

// WithClock replaces time.Now for rows without a time column
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) { n.now = now }
}

func NewNormalizer(schema Schema, opts ...Option) *Normalizer {
	n := &Normalizer{schema: schema, loc: time.Local, now: time.Now}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Normalizer) Schema() Schema { return n.schema }

// Records lazily yields one canonical record per usable row. Rows that cannot
// be used yield a *RowError instead; iteration continues after them.
func (n *Normalizer) Records(rows []domain.RawRow) iter.Seq2[domain.CanonicalRecord, error] {
	return func(yield func(domain.CanonicalRecord, error) bool) {
		parse := n.rowParser(rows)
		for i, row := range rows {
			rec, err := parse(row)
			if err != nil {
				err = &RowError{Row: i + 1, Reason: err.Error()}
			}
			if !yield(rec, err) {
				return
			}
		}
	}
}

// Normalize collects every usable record and counts the skipped rows
func (n *Normalizer) Normalize(rows []domain.RawRow) ([]domain.CanonicalRecord, domain.ImportSummary) {
	summary := domain.ImportSummary{Schema: n.schema.Kind.String()}
	records := make([]domain.CanonicalRecord, 0, len(rows))
	for rec, err := range n.Records(rows) {
		if err != nil {
			summary.RecordsSkipped++
			continue
		}
		records = append(records, rec)
	}
	summary.RecordsProcessed = len(records)
	return records, summary
}

func (n *Normalizer) rowParser(rows []domain.RawRow) func(domain.RawRow) (domain.CanonicalRecord, error) {
	if n.schema.Kind == SchemaNew {
		parseTime := func(s string) (time.Time, error) { return parseStrict(s, n.loc) }
		if n.strictFailsMajority(rows) {
			parseTime = func(s string) (time.Time, error) { return parseFreeForm(s, n.loc) }
		}
		return func(row domain.RawRow) (domain.CanonicalRecord, error) {
			return n.parseNew(row, parseTime)
		}
	}
	return n.parseCallerReceiver
}

// strictFailsMajority reports whether more than half of the rows fail the
// strict month/day/year layout, in which case the whole import switches to
// free-form parsing.
func (n *Normalizer) strictFailsMajority(rows []domain.RawRow) bool {
	if len(rows) == 0 {
		return false
	}
	failed := 0
	for _, row := range rows {
		if _, err := parseStrict(joinDateTime(row[n.schema.Date], row[n.schema.Start]), n.loc); err != nil {
			failed++
		}
	}
	return failed*2 > len(rows)
}

func joinDateTime(date, clock string) string {
	return strings.TrimSpace(date) + " " + strings.TrimSpace(clock)
}

func (n *Normalizer) parseNew(row domain.RawRow, parseTime func(string) (time.Time, error)) (domain.CanonicalRecord, error) {
	s := n.schema
	target, err := requirePhone(row, s.Target)
	if err != nil {
		return domain.CanonicalRecord{}, err
	}
	other, err := requirePhone(row, s.Other)
	if err != nil {
		return domain.CanonicalRecord{}, err
	}
	date, clock := row[s.Date], row[s.Start]
	if strings.TrimSpace(date) == "" || strings.TrimSpace(clock) == "" {
		return domain.CanonicalRecord{}, errors.New("missing date or start")
	}
	start, err := parseTime(joinDateTime(date, clock))
	if err != nil {
		return domain.CanonicalRecord{}, err
	}

	dir := domain.ParseDirection(row[s.Direction])
	caller, receiver := other, target
	if dir == domain.DirectionOutbound {
		caller, receiver = target, other
	}
	if caller == receiver {
		return domain.CanonicalRecord{}, &domain.SelfLoopError{Phone: caller}
	}

	c := domain.Call{Start: start, Direction: dir}
	if s.End != "" && strings.TrimSpace(row[s.End]) != "" {
		end, err := parseTime(joinDateTime(date, row[s.End]))
		if err == nil && !end.Before(start) {
			c.End = end
			c.Duration = end.Sub(start)
			c.HasDuration = true
		}
	}
	return domain.CanonicalRecord{PartyA: caller, PartyB: receiver, Call: c}, nil
}

func (n *Normalizer) parseCallerReceiver(row domain.RawRow) (domain.CanonicalRecord, error) {
	s := n.schema
	caller, err := requirePhone(row, s.Caller)
	if err != nil {
		return domain.CanonicalRecord{}, err
	}
	receiver, err := requirePhone(row, s.Receiver)
	if err != nil {
		return domain.CanonicalRecord{}, err
	}
	if caller == receiver {
		return domain.CanonicalRecord{}, &domain.SelfLoopError{Phone: caller}
	}

	c := domain.Call{Direction: domain.DirectionOutbound}
	if s.Time == "" {
		c.Start = n.now()
	} else {
		start, err := parseFreeForm(row[s.Time], n.loc)
		if err != nil {
			return domain.CanonicalRecord{}, err
		}
		c.Start = start
	}

	if s.Duration != "" {
		if raw := strings.TrimSpace(row[s.Duration]); raw != "" {
			d, err := parseDuration(raw)
			if err != nil {
				return domain.CanonicalRecord{}, err
			}
			if d < 0 {
				return domain.CanonicalRecord{}, fmt.Errorf("negative duration %q", raw)
			}
			c.Duration = d
			c.HasDuration = true
			c.End = c.Start.Add(d)
		}
	}
	return domain.CanonicalRecord{PartyA: caller, PartyB: receiver, Call: c}, nil
}

func requirePhone(row domain.RawRow, column string) (domain.PhoneID, error) {
	raw := strings.TrimSpace(row[column])
	if raw == "" {
		return "", fmt.Errorf("missing %s", column)
	}
	return domain.NormalizePhone(raw)
}
