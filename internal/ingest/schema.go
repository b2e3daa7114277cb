// Package ingest turns heterogeneous CDR rows into canonical call records.
package ingest

import (
	"strings"

	"cdrlink/internal/domain"
)

// SchemaKind identifies which column layout an import uses
type SchemaKind int

const (
	SchemaNew SchemaKind = iota + 1
	SchemaOld
	SchemaAuto
)

func (k SchemaKind) String() string {
	switch k {
	case SchemaNew:
		return "new"
	case SchemaOld:
		return "old"
	case SchemaAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// Schema maps logical fields to the actual column names of an input.
// Empty names mean the column is absent.
type Schema struct {
	Kind SchemaKind

	// new format
	Target    string
	Direction string
	Other     string
	Date      string
	Start     string
	End       string

	// old and auto-detected formats
	Caller   string
	Receiver string
	Time     string
	Duration string
}

var (
	callerPatterns   = []string{"caller", "from", "source", "originator", "a_number"}
	receiverPatterns = []string{"receiver", "to", "destination", "called", "b_number"}
	timeHints        = []string{"time", "date", "when"}
	durationHints    = []string{"duration", "secs", "seconds"}
)

// DetectSchema picks the column layout, trying the new format, then the old
// caller/receiver format, then fuzzy column-name matching.
func DetectSchema(columns []string) (Schema, error) {
	byName := make(map[string]string, len(columns))
	for _, c := range columns {
		key := strings.ToLower(strings.TrimSpace(c))
		if _, dup := byName[key]; !dup {
			byName[key] = c
		}
	}
	col := func(name string) string { return byName[name] }

	if s, ok := detectNew(col); ok {
		return s, nil
	}

	if caller, receiver := col("caller"), col("receiver"); caller != "" && receiver != "" {
		s := Schema{Kind: SchemaOld, Caller: caller, Receiver: receiver, Duration: col("duration")}
		s.Time = col("timestamp")
		if s.Time == "" {
			s.Time = findColumn(columns, timeHints, caller, receiver)
		}
		return s, nil
	}

	caller := matchColumn(columns, callerPatterns)
	receiver := matchColumn(columns, receiverPatterns, caller)
	if caller == "" || receiver == "" {
		return Schema{}, &domain.SchemaDetectionError{Columns: columns}
	}
	s := Schema{Kind: SchemaAuto, Caller: caller, Receiver: receiver}
	s.Duration = findColumn(columns, durationHints, caller, receiver)
	s.Time = findColumn(columns, timeHints, caller, receiver, s.Duration)
	return s, nil
}

func detectNew(col func(string) string) (Schema, bool) {
	s := Schema{
		Kind:      SchemaNew,
		Target:    col("target number"),
		Direction: col("call direction"),
		Other:     col("from or to number"),
		Date:      col("date"),
		Start:     col("start"),
		End:       col("end"),
	}
	if s.Target == "" || s.Direction == "" || s.Other == "" || s.Date == "" || s.Start == "" {
		return Schema{}, false
	}
	return s, true
}

// tokens splits a column name into lower-case words on any non-alphanumeric rune
func tokens(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return "_" + b.String() + "_"
}

// matchColumn returns the first column whose name contains a pattern as a
// whole word. Multi-word patterns such as a_number match across separators.
func matchColumn(columns, patterns []string, exclude ...string) string {
	for _, p := range patterns {
		needle := "_" + p + "_"
		for _, c := range columns {
			if isExcluded(c, exclude) {
				continue
			}
			if strings.Contains(tokens(c), needle) {
				return c
			}
		}
	}
	return ""
}

// findColumn returns the first column whose name contains any hint as a substring
func findColumn(columns, hints []string, exclude ...string) string {
	for _, c := range columns {
		if isExcluded(c, exclude) {
			continue
		}
		lower := strings.ToLower(c)
		for _, h := range hints {
			if strings.Contains(lower, h) {
				return c
			}
		}
	}
	return ""
}

func isExcluded(c string, exclude []string) bool {
	for _, e := range exclude {
		if e != "" && c == e {
			return true
		}
	}
	return false
}
