package svg

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cdrlink/internal/domain"
)

func sampleView() domain.ViewModel {
	return domain.ViewModel{
		Nodes: []domain.ViewNode{
			{ID: "111", Label: "hub\n111", Category: "person-linked", Owner: "Ana", Logical: domain.Point{X: 0, Y: 0}},
			{ID: "222", Label: "222", Category: "unassigned-phone", Color: 3, Logical: domain.Point{X: 400, Y: 200}},
		},
		Edges: []domain.ViewEdge{
			{Pair: domain.PairKey{A: "111", B: "222"}, Label: "12 calls\n2024-03-01", Calls: 12, Weight: 5, Stroke: 3},
		},
		Summary: domain.Summary{NodeCount: 2, EdgeCount: 1, TotalRecords: 12, PersonCount: 1, DateRange: "2024-03-01"},
		Zoom:    3,
	}
}

func export(t *testing.T, title string, view domain.ViewModel, mode domain.PageMode) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, NewExporter().Export(&buf, title, view, mode))
	return buf.String()
}

// wellFormed walks the whole document with encoding/xml
func wellFormed(t *testing.T, doc string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		require.NoError(t, err)
	}
}

func TestExport_PageSizes(t *testing.T) {
	tests := []struct {
		mode domain.PageMode
		want string
	}{
		{domain.PageLetterLandscape, `width="1056" height="816"`},
		{domain.PageA4Landscape, `width="1123" height="794"`},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			doc := export(t, "Case", sampleView(), tt.mode)
			assert.Contains(t, doc, tt.want)
			wellFormed(t, doc)
		})
	}
}

func TestExport_NativeFitSizesToContent(t *testing.T) {
	doc := export(t, "Case", sampleView(), domain.PageNativeFit)
	wellFormed(t, doc)

	// 400 + node width 150 + margins 72
	assert.Contains(t, doc, `width="622"`)
}

func TestExport_Content(t *testing.T) {
	doc := export(t, `Smith & "Jones"`, sampleView(), domain.PageLetterLandscape)

	assert.Contains(t, doc, "Smith &amp; &quot;Jones&quot;")
	assert.Contains(t, doc, "2 phones · 1 links · 12 records · 1 persons · 2024-03-01")
	assert.Contains(t, doc, ">12 calls</tspan>")
	assert.Contains(t, doc, ">(Ana)</tspan>")
	assert.Contains(t, doc, Palette[3])
	assert.Equal(t, 2, strings.Count(doc, "<rect x="))
}

func TestExport_IgnoresScreenZoom(t *testing.T) {
	view := sampleView()
	a := export(t, "Case", view, domain.PageA4Landscape)
	view.Zoom = 0.2
	view.Pan = domain.Point{X: 500, Y: -500}
	b := export(t, "Case", view, domain.PageA4Landscape)
	assert.Equal(t, a, b)
}

func TestExport_EmptyView(t *testing.T) {
	doc := export(t, "Empty", domain.ViewModel{}, domain.PageLetterLandscape)
	wellFormed(t, doc)
	assert.Contains(t, doc, "No phones match the current filter")
}

func TestExport_UnknownMode(t *testing.T) {
	err := NewExporter().Export(io.Discard, "x", sampleView(), domain.PageMode("tabloid"))
	require.Error(t, err)
}

func TestNum(t *testing.T) {
	assert.Equal(t, "12", num(12))
	assert.Equal(t, "12.5", num(12.5))
	assert.Equal(t, "0.33", num(1.0/3))
}
