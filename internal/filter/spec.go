// Package filter derives read-only views of a call graph.
package filter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cdrlink/internal/validation"
)

// TimeOfDay is seconds since midnight
type TimeOfDay int

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS"
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	limits := []int{23, 59, 59}
	total := 0
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 || v > limits[i] {
			return 0, fmt.Errorf("invalid time of day %q", s)
		}
		total = total*60 + v
	}
	if len(parts) == 2 {
		total *= 60
	}
	return TimeOfDay(total), nil
}

// ParseTimeOfDayEnd parses an inclusive upper bound. "HH:MM" covers the
// whole minute, so it ends at HH:MM:59.
func ParseTimeOfDayEnd(s string) (TimeOfDay, error) {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		return 0, err
	}
	if strings.Count(strings.TrimSpace(s), ":") == 1 {
		t += 59
	}
	return t, nil
}

func (t TimeOfDay) String() string {
	s := int(t)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s/60%60, s%60)
}

func timeOfDay(t time.Time) TimeOfDay {
	h, m, s := t.Clock()
	return TimeOfDay(h*3600 + m*60 + s)
}

// ParseDate parses a calendar day in YYYY-MM-DD form
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(s))
}

// dayKey orders calendar days independent of zone and clock
func dayKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// Spec constrains which records, edges and nodes appear in a view.
// Nil bounds impose no constraint. A TimeFrom later than TimeTo selects a
// window that wraps past midnight.
type Spec struct {
	DateFrom             *time.Time `json:"dateFrom,omitempty"`
	DateTo               *time.Time `json:"dateTo,omitempty"`
	TimeFrom             *TimeOfDay `json:"timeFrom,omitempty" validate:"omitnil,min=0,max=86399"`
	TimeTo               *TimeOfDay `json:"timeTo,omitempty" validate:"omitnil,min=0,max=86399"`
	MinCalls             int        `json:"minCalls" validate:"min=1"`
	MaxNodes             int        `json:"maxNodes" validate:"min=1"`
	ShowPhones           bool       `json:"showPhones"`
	ShowPersons          bool       `json:"showPersons"`
	ShowUnassignedPhones bool       `json:"showUnassignedPhones"`
}

// DefaultSpec shows everything
func DefaultSpec() Spec {
	return Spec{MinCalls: 1, MaxNodes: 500, ShowPhones: true, ShowPersons: true, ShowUnassignedPhones: true}
}

func (s Spec) Validate() error {
	if err := validation.Struct(s); err != nil {
		return err
	}
	if s.DateFrom != nil && s.DateTo != nil && dayKey(*s.DateTo) < dayKey(*s.DateFrom) {
		return &validation.Error{Field: "dateTo", Message: "dateTo must not be before dateFrom"}
	}
	return nil
}

// Admits reports whether a call start falls inside the date and time window
func (s Spec) Admits(t time.Time) bool {
	if s.DateFrom != nil || s.DateTo != nil {
		day := dayKey(t)
		if s.DateFrom != nil && day < dayKey(*s.DateFrom) {
			return false
		}
		if s.DateTo != nil && day > dayKey(*s.DateTo) {
			return false
		}
	}
	if s.TimeFrom == nil && s.TimeTo == nil {
		return true
	}
	tod := timeOfDay(t)
	switch {
	case s.TimeFrom != nil && s.TimeTo != nil && *s.TimeFrom > *s.TimeTo:
		return tod >= *s.TimeFrom || tod <= *s.TimeTo
	case s.TimeFrom != nil && tod < *s.TimeFrom:
		return false
	case s.TimeTo != nil && tod > *s.TimeTo:
		return false
	}
	return true
}

// SetWindow parses the date and time bounds from text. Empty strings open the
// corresponding bound.
func (s *Spec) SetWindow(dateFrom, dateTo, timeFrom, timeTo string) error {
	var err error
	if s.DateFrom, err = optional(dateFrom, ParseDate); err != nil {
		return &validation.Error{Field: "dateFrom", Message: err.Error()}
	}
	if s.DateTo, err = optional(dateTo, ParseDate); err != nil {
		return &validation.Error{Field: "dateTo", Message: err.Error()}
	}
	if s.TimeFrom, err = optional(timeFrom, ParseTimeOfDay); err != nil {
		return &validation.Error{Field: "timeFrom", Message: err.Error()}
	}
	if s.TimeTo, err = optional(timeTo, ParseTimeOfDayEnd); err != nil {
		return &validation.Error{Field: "timeTo", Message: err.Error()}
	}
	return nil
}

func optional[T any](raw string, parse func(string) (T, error)) (*T, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	v, err := parse(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
