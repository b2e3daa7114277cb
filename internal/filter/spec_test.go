package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cdrlink/internal/validation"
)

func tod(t *testing.T, s string) *TimeOfDay {
	t.Helper()
	v, err := ParseTimeOfDay(s)
	require.NoError(t, err)
	return &v
}

func date(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return &d
}

func TestParseTimeOfDay(t *testing.T) {
	v, err := ParseTimeOfDay("08:30")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(8*3600+30*60), v)
	assert.Equal(t, "08:30:00", v.String())

	v, err = ParseTimeOfDay("23:59:59")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(86399), v)

	for _, bad := range []string{"24:00", "8", "12:60", "aa:bb", "1:2:3:4"} {
		_, err := ParseTimeOfDay(bad)
		assert.Error(t, err, bad)
	}
}

func TestSpec_Validate(t *testing.T) {
	s := DefaultSpec()
	require.NoError(t, s.Validate())

	s.MinCalls = 0
	var verr *validation.Error
	require.ErrorAs(t, s.Validate(), &verr)
	assert.Equal(t, "minCalls", verr.Field)

	s = DefaultSpec()
	s.MaxNodes = 0
	require.ErrorAs(t, s.Validate(), &verr)
	assert.Equal(t, "maxNodes", verr.Field)

	s = DefaultSpec()
	s.DateFrom = date(t, "2024-02-01")
	s.DateTo = date(t, "2024-01-01")
	require.ErrorAs(t, s.Validate(), &verr)
	assert.Equal(t, "dateTo", verr.Field)
}

func TestSpec_Admits(t *testing.T) {
	at := func(s string) time.Time {
		v, err := time.Parse("2006-01-02 15:04", s)
		require.NoError(t, err)
		return v
	}

	tests := []struct {
		name string
		spec Spec
		when string
		want bool
	}{
		{name: "unbounded", spec: Spec{}, when: "2024-01-01 03:00", want: true},
		{name: "date inclusive lower", spec: Spec{DateFrom: date(t, "2024-01-01")}, when: "2024-01-01 00:00", want: true},
		{name: "date inclusive upper", spec: Spec{DateTo: date(t, "2024-01-01")}, when: "2024-01-01 23:59", want: true},
		{name: "after date to", spec: Spec{DateTo: date(t, "2024-01-01")}, when: "2024-01-02 00:00", want: false},
		{name: "inside time window", spec: Spec{TimeFrom: tod(t, "09:00"), TimeTo: tod(t, "17:00")}, when: "2024-01-01 17:00", want: true},
		{name: "outside time window", spec: Spec{TimeFrom: tod(t, "09:00"), TimeTo: tod(t, "17:00")}, when: "2024-01-01 17:01", want: false},
		{name: "wrapping window late", spec: Spec{TimeFrom: tod(t, "22:00"), TimeTo: tod(t, "02:00")}, when: "2024-01-01 23:30", want: true},
		{name: "wrapping window early", spec: Spec{TimeFrom: tod(t, "22:00"), TimeTo: tod(t, "02:00")}, when: "2024-01-01 01:30", want: true},
		{name: "wrapping window midday", spec: Spec{TimeFrom: tod(t, "22:00"), TimeTo: tod(t, "02:00")}, when: "2024-01-01 12:00", want: false},
		{name: "only time from", spec: Spec{TimeFrom: tod(t, "12:00")}, when: "2024-01-01 11:59", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.spec.Admits(at(tt.when)))
		})
	}
}

func TestSpec_SetWindow(t *testing.T) {
	spec := DefaultSpec()
	require.NoError(t, spec.SetWindow("2024-03-01", "", "22:00", "06:00"))
	require.NotNil(t, spec.DateFrom)
	assert.Nil(t, spec.DateTo)
	assert.Equal(t, TimeOfDay(22*3600), *spec.TimeFrom)
	assert.Equal(t, TimeOfDay(6*3600+59), *spec.TimeTo)

	err := spec.SetWindow("03/01/2024", "", "", "")
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "dateFrom", verr.Field)

	require.Error(t, spec.SetWindow("", "", "25:00", ""))
}

func TestSpec_SetWindow_MinuteBoundIncludesWholeMinute(t *testing.T) {
	at := func(s string) time.Time {
		v, err := time.Parse("2006-01-02 15:04:05", s)
		require.NoError(t, err)
		return v
	}

	spec := DefaultSpec()
	require.NoError(t, spec.SetWindow("", "", "14:00", "14:30"))
	assert.True(t, spec.Admits(at("2024-01-01 14:30:00")))
	assert.True(t, spec.Admits(at("2024-01-01 14:30:45")))
	assert.True(t, spec.Admits(at("2024-01-01 14:30:59")))
	assert.False(t, spec.Admits(at("2024-01-01 14:31:00")))
	assert.False(t, spec.Admits(at("2024-01-01 13:59:59")))

	require.NoError(t, spec.SetWindow("", "", "14:00", "14:30:10"))
	assert.True(t, spec.Admits(at("2024-01-01 14:30:10")))
	assert.False(t, spec.Admits(at("2024-01-01 14:30:11")))
}

func TestParseTimeOfDayEnd(t *testing.T) {
	v, err := ParseTimeOfDayEnd("23:59")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(86399), v)

	v, err = ParseTimeOfDayEnd("06:00:00")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(6*3600), v)

	_, err = ParseTimeOfDayEnd("24:00")
	assert.Error(t, err)
}
