package domain

// Summary is the statistics block shown in exports and status views
type Summary struct {
	NodeCount    int
	EdgeCount    int
	TotalRecords int
	PersonCount  int
	DateRange    string
}

// Summarize computes statistics over a graph. personCount is supplied by the
// caller because the visible persons depend on the current view.
func Summarize(g *Graph, personCount int) Summary {
	span := Aggregate{}
	for _, recs := range g.edges {
		for _, r := range recs {
			if c, ok := r.(Call); ok {
				span.addCall(c)
			}
		}
	}
	return Summary{
		NodeCount:    g.NodeCount(),
		EdgeCount:    g.EdgeCount(),
		TotalRecords: span.CallCount,
		PersonCount:  personCount,
		DateRange:    span.DateRangeLabel(),
	}
}
