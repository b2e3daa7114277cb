package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cdrlink/internal/domain"
)

var newColumns = []string{"Target Number", "Call Direction", "From or To Number", "Date", "Start", "End"}

func newRow(target, dir, other, date, start, end string) domain.RawRow {
	return domain.RawRow{
		"Target Number":     target,
		"Call Direction":    dir,
		"From or To Number": other,
		"Date":              date,
		"Start":             start,
		"End":               end,
	}
}

func mustSchema(t *testing.T, cols []string) Schema {
	t.Helper()
	s, err := DetectSchema(cols)
	require.NoError(t, err)
	return s
}

func TestNormalizer_NewFormat_Direction(t *testing.T) {
	n := NewNormalizer(mustSchema(t, newColumns), WithLocation(time.UTC))
	rows := []domain.RawRow{
		newRow("111", "Outgoing", "222", "01/05/2024", "10:00:00", "10:01:30"),
		newRow("111", "Inbound", "333", "01/05/2024", "11:00:00", "11:00:30"),
	}

	recs, summary := n.Normalize(rows)
	require.Len(t, recs, 2)
	assert.Equal(t, 0, summary.RecordsSkipped)
	assert.Equal(t, 2, summary.RecordsProcessed)
	assert.Equal(t, "new", summary.Schema)

	assert.Equal(t, domain.PhoneID("111"), recs[0].PartyA)
	assert.Equal(t, domain.PhoneID("222"), recs[0].PartyB)
	assert.Equal(t, 90*time.Second, recs[0].Call.Duration)
	assert.Equal(t, domain.DirectionOutbound, recs[0].Call.Direction)

	assert.Equal(t, domain.PhoneID("333"), recs[1].PartyA)
	assert.Equal(t, domain.PhoneID("111"), recs[1].PartyB)
}

func TestNormalizer_NewFormat_NegativeDurationIsMissing(t *testing.T) {
	n := NewNormalizer(mustSchema(t, newColumns), WithLocation(time.UTC))
	recs, summary := n.Normalize([]domain.RawRow{
		newRow("111", "out", "222", "01/05/2024", "10:00:00", "09:59:00"),
	})
	require.Len(t, recs, 1)
	assert.Zero(t, summary.RecordsSkipped)
	assert.False(t, recs[0].Call.HasDuration)
	assert.Zero(t, recs[0].Call.Duration)
}

func TestNormalizer_NewFormat_StrictMajorityKeepsStrict(t *testing.T) {
	n := NewNormalizer(mustSchema(t, newColumns), WithLocation(time.UTC))
	rows := []domain.RawRow{
		newRow("111", "out", "222", "01/05/2024", "10:00:00", "10:00:10"),
		newRow("111", "out", "222", "01/06/2024", "10:00:00", "10:00:10"),
		newRow("111", "out", "222", "2024-01-07", "10:00:00", "10:00:10"),
	}
	recs, summary := n.Normalize(rows)
	assert.Len(t, recs, 2)
	assert.Equal(t, 1, summary.RecordsSkipped)
}

func TestNormalizer_NewFormat_FallsBackToFreeForm(t *testing.T) {
	n := NewNormalizer(mustSchema(t, newColumns), WithLocation(time.UTC))
	rows := []domain.RawRow{
		newRow("111", "out", "222", "2024-01-05", "10:00:00", "10:00:10"),
		newRow("111", "out", "222", "2024-01-06", "10:00:00", "10:00:10"),
		newRow("111", "out", "222", "01/07/2024", "10:00:00", "10:00:10"),
	}
	recs, summary := n.Normalize(rows)
	require.Len(t, recs, 3)
	assert.Zero(t, summary.RecordsSkipped)
	assert.Equal(t, time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC), recs[0].Call.Start)
	assert.Equal(t, time.Date(2024, 1, 7, 10, 0, 0, 0, time.UTC), recs[2].Call.Start)
}

func TestNormalizer_SkipsMalformedRows(t *testing.T) {
	n := NewNormalizer(mustSchema(t, newColumns), WithLocation(time.UTC))
	rows := []domain.RawRow{
		newRow("", "out", "222", "01/05/2024", "10:00:00", ""),
		newRow("111", "out", "abc", "01/05/2024", "10:00:00", ""),
		newRow("111", "out", "111", "01/05/2024", "10:00:00", ""),
		newRow("111", "out", "222", "01/05/2024", "", ""),
		newRow("111", "out", "222", "01/05/2024", "10:00:00", ""),
	}

	var rowErrs []error
	var got int
	for _, err := range n.Records(rows) {
		if err != nil {
			rowErrs = append(rowErrs, err)
			continue
		}
		got++
	}
	assert.Equal(t, 1, got)
	require.Len(t, rowErrs, 4)
	for _, err := range rowErrs {
		assert.ErrorIs(t, err, ErrMalformedRow)
	}

	var re *RowError
	require.ErrorAs(t, rowErrs[0], &re)
	assert.Equal(t, 1, re.Row)
}

func TestNormalizer_Records_StopsEarly(t *testing.T) {
	n := NewNormalizer(mustSchema(t, newColumns), WithLocation(time.UTC))
	rows := GenerateSample(1, 5, 50)
	seen := 0
	for range n.Records(rows) {
		seen++
		if seen == 3 {
			break
		}
	}
	assert.Equal(t, 3, seen)
}

func TestNormalizer_OldFormat(t *testing.T) {
	schema := mustSchema(t, []string{"caller", "receiver", "timestamp", "duration"})
	n := NewNormalizer(schema, WithLocation(time.UTC))

	rows := []domain.RawRow{
		{"caller": "A1", "receiver": "200", "timestamp": "2024-01-01 10:00:00", "duration": "60"},
		{"caller": "100", "receiver": "200", "timestamp": "2024-01-01 10:00:00", "duration": "00:02:00"},
		{"caller": "100", "receiver": "300", "timestamp": "2024-01-02 10:00:00", "duration": ""},
		{"caller": "100", "receiver": "300", "timestamp": "yesterday", "duration": "5"},
		{"caller": "100", "receiver": "300", "timestamp": "2024-01-02 10:00:00", "duration": "-5"},
	}
	recs, summary := n.Normalize(rows)
	require.Len(t, recs, 2)
	assert.Equal(t, 3, summary.RecordsSkipped)
	assert.Equal(t, 2*time.Minute, recs[0].Call.Duration)
	assert.True(t, recs[0].Call.HasDuration)
	assert.False(t, recs[1].Call.HasDuration)
}

func TestNormalizer_OldFormat_DefaultsToNow(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	n := NewNormalizer(mustSchema(t, []string{"caller", "receiver"}), WithClock(func() time.Time { return fixed }))

	recs, _ := n.Normalize([]domain.RawRow{{"caller": "100", "receiver": "200"}})
	require.Len(t, recs, 1)
	assert.Equal(t, fixed, recs[0].Call.Start)
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"90", 90 * time.Second},
		{"1.5", 1500 * time.Millisecond},
		{"01:30", 90 * time.Second},
		{"01:00:00", time.Hour},
		{"2m5s", 125 * time.Second},
		{"-00:30", -30 * time.Second},
		{"-0:00:45", -45 * time.Second},
		{"-01:30", -90 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDuration(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	for _, bad := range []string{"soon", "00:-30", "--00:30", "01:+30"} {
		_, err := parseDuration(bad)
		assert.Error(t, err, bad)
	}
}

func TestNormalizer_OldFormat_SignedClockDurationSkipsRow(t *testing.T) {
	n := NewNormalizer(mustSchema(t, []string{"caller", "receiver", "timestamp", "duration"}), WithLocation(time.UTC))
	rows := []domain.RawRow{
		{"caller": "111", "receiver": "222", "timestamp": "2024-01-01 10:00:00", "duration": "-00:30"},
		{"caller": "111", "receiver": "222", "timestamp": "2024-01-01 11:00:00", "duration": "-0:00:45"},
		{"caller": "111", "receiver": "222", "timestamp": "2024-01-01 12:00:00", "duration": "00:30"},
	}

	recs, summary := n.Normalize(rows)
	require.Len(t, recs, 1)
	assert.Equal(t, 2, summary.RecordsSkipped)
	assert.Equal(t, 30*time.Second, recs[0].Call.Duration)
}

func TestGenerateSample_Deterministic(t *testing.T) {
	a := GenerateSample(7, 10, 100)
	b := GenerateSample(7, 10, 100)
	assert.Equal(t, a, b)
	assert.Len(t, a, 100)

	n := NewNormalizer(mustSchema(t, SampleColumns), WithLocation(time.UTC))
	recs, summary := n.Normalize(a)
	assert.Len(t, recs, 100)
	assert.Zero(t, summary.RecordsSkipped)
	for _, r := range recs {
		assert.NotEqual(t, r.PartyA, r.PartyB)
		assert.True(t, r.Call.HasDuration)
		assert.GreaterOrEqual(t, r.Call.Duration, 30*time.Second)
	}
}
