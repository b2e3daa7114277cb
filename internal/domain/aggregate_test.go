package domain

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func call(start time.Time, secs int) Call {
	return Call{Start: start, Duration: time.Duration(secs) * time.Second, HasDuration: true}
}

func TestAggregateRecords_Statistics(t *testing.T) {
	records := []CanonicalRecord{
		{PartyA: "A", PartyB: "B", Call: call(day(2024, 1, 1), 10)},
		{PartyA: "B", PartyB: "A", Call: call(day(2024, 1, 3), 20)},
		{PartyA: "A", PartyB: "B", Call: call(day(2024, 1, 2), 30)},
	}

	aggs, err := AggregateRecords(records)
	require.NoError(t, err)
	require.Len(t, aggs, 1)

	agg := aggs[PairKey{A: "A", B: "B"}]
	assert.Equal(t, 3, agg.CallCount)
	assert.Equal(t, 20.0, agg.AverageDurationSeconds())
	assert.Equal(t, day(2024, 1, 1), agg.FirstCall)
	assert.Equal(t, day(2024, 1, 3), agg.LastCall)
}

func TestAggregateRecords_SkipsMissingDurations(t *testing.T) {
	records := []CanonicalRecord{
		{PartyA: "A", PartyB: "B", Call: call(day(2024, 1, 1), 40)},
		{PartyA: "A", PartyB: "B", Call: Call{Start: day(2024, 1, 1)}},
	}
	aggs, err := AggregateRecords(records)
	require.NoError(t, err)

	agg := aggs[PairKey{A: "A", B: "B"}]
	assert.Equal(t, 2, agg.CallCount)
	assert.Equal(t, 1, agg.DurationSamples)
	assert.Equal(t, 40*time.Second, agg.AverageDuration())
}

func TestAggregateRecords_SelfLoop(t *testing.T) {
	_, err := AggregateRecords([]CanonicalRecord{{PartyA: "A", PartyB: "A", Call: call(day(2024, 1, 1), 1)}})
	assert.ErrorIs(t, err, ErrSelfLoop)
}

func TestAggregate_DateRangeLabel(t *testing.T) {
	tests := []struct {
		name        string
		first, last time.Time
		want        string
	}{
		{name: "same day", first: day(2024, 1, 5), last: day(2024, 1, 5), want: "2024-01-05"},
		{name: "same year", first: day(2024, 1, 5), last: day(2024, 1, 9), want: "01/05-01/09/2024"},
		{name: "cross year", first: day(2024, 12, 30), last: day(2025, 1, 2), want: "2024-12-30 to 2025-01-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := NewAccumulator()
			pair := PairKey{A: "A", B: "B"}
			acc.Add(pair, call(tt.last, 1))
			acc.Add(pair, call(tt.first, 1))
			assert.Equal(t, tt.want, acc.Result()[pair].DateRangeLabel())
		})
	}
}

func TestAggregate_AverageDurationLabel(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{secs: 30, want: "0m 30s"},
		{secs: 59, want: "0m 59s"},
		{secs: 60, want: "1.0m avg"},
		{secs: 90, want: "1.5m avg"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			agg := AggregateEdge(PairKey{A: "A", B: "B"}, []Record{call(day(2024, 1, 1), tt.secs)})
			assert.Equal(t, tt.want, agg.AverageDurationLabel())
		})
	}

	empty := AggregateEdge(PairKey{A: "A", B: "B"}, []Record{Call{Start: day(2024, 1, 1)}})
	assert.Empty(t, empty.AverageDurationLabel())
}

func TestAggregate_Label(t *testing.T) {
	pair := PairKey{A: "A", B: "B"}

	agg := AggregateEdge(pair, []Record{
		call(day(2024, 1, 1), 60),
		call(day(2024, 1, 2), 120),
		Note{Text: "burner"},
	})
	assert.Equal(t, "2 calls\n01/01-01/02/2024\n1.5m avg\nburner", agg.Label())

	noteOnly := AggregateEdge(pair, []Record{Note{Text: "met in person"}})
	assert.True(t, noteOnly.NoteOnly())
	assert.Equal(t, "met in person", noteOnly.Label())
	assert.Empty(t, noteOnly.DateRangeLabel())
}

func TestAggregateParallel_MatchesSequential(t *testing.T) {
	var records []CanonicalRecord
	for i := range 20000 {
		a := PhoneID(fmt.Sprintf("%03d", i%17))
		b := PhoneID(fmt.Sprintf("%03d", 100+i%5))
		records = append(records, CanonicalRecord{
			PartyA: a,
			PartyB: b,
			Call:   call(day(2024, time.Month(1+i%12), 1+i%28), i%600),
		})
	}

	want, err := AggregateRecords(records)
	require.NoError(t, err)
	got, err := AggregateParallel(context.Background(), records, 4)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestAggregateParallel_Cancelled(t *testing.T) {
	records := make([]CanonicalRecord, 10000)
	for i := range records {
		records[i] = CanonicalRecord{PartyA: "A", PartyB: "B", Call: call(day(2024, 1, 1), 1)}
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := AggregateParallel(ctx, records, 4)
	assert.ErrorIs(t, err, context.Canceled)
}
