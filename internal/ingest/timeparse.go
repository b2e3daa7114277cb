package ingest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// StrictLayout is the month/day/year form used by the carrier export
const StrictLayout = "01/02/2006 15:04:05"

// freeFormLayouts are tried in order when the strict layout does not apply
var freeFormLayouts = []string{
	StrictLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"01/02/2006 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 3:04:05 PM",
	"2006/01/02 15:04:05",
	"02-Jan-2006 15:04:05",
	"Jan 2, 2006 15:04:05",
	"Jan 2, 2006 3:04 PM",
	"2006-01-02",
	"01/02/2006",
}

var errUnparsableTime = errors.New("unparsable time")

func parseStrict(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(StrictLayout, strings.TrimSpace(s), loc)
}

func parseFreeForm(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errUnparsableTime
	}
	for _, layout := range freeFormLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil && secs > 1e9 {
		return time.Unix(secs, 0).In(loc), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", errUnparsableTime, s)
}

// parseDuration accepts plain seconds ("90", "90.5"), clock form
// ("01:30", "00:01:30") or Go duration syntax ("1m30s").
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	if strings.Contains(s, ":") {
		// the sign belongs to the whole value, not the first field
		clock, negative := strings.CutPrefix(s, "-")
		parts := strings.Split(clock, ":")
		if len(parts) > 3 {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		var total float64
		for _, p := range parts {
			if strings.ContainsAny(p, "+-") {
				return 0, fmt.Errorf("invalid duration %q", s)
			}
			v, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return 0, fmt.Errorf("invalid duration %q", s)
			}
			total = total*60 + v
		}
		if negative {
			total = -total
		}
		return time.Duration(total * float64(time.Second)), nil
	}
	return time.ParseDuration(s)
}
