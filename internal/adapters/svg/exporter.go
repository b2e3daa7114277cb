package svg

import (
	"fmt"
	"io"
	"math"
	"strings"

	"cdrlink/internal/domain"
	"cdrlink/internal/ports"
)

// Page sizes in CSS pixels (96 per inch)
var pageSizes = map[domain.PageMode][2]float64{
	domain.PageLetterLandscape: {1056, 816},
	domain.PageA4Landscape:     {1123, 794},
}

// Palette is indexed by a phone's colour index
var Palette = []string{"#2563eb", "#16a34a", "#dc2626", "#9333ea", "#ea580c", "#0891b2", "#ca8a04", "#db2777"}

const (
	margin     = 36.0
	headerH    = 64.0
	nodeW      = 150.0
	nodeLineH  = 16.0
	nodePad    = 10.0
	fontFamily = "Helvetica, Arial, sans-serif"
	maxScale   = 2.0
)

// Exporter renders a view model as a standalone SVG document
type Exporter struct{}

// Ensure Exporter implements ports.Exporter
var _ ports.Exporter = Exporter{}

func NewExporter() Exporter { return Exporter{} }

func (Exporter) Extension() string { return ".svg" }

// box is a node rectangle in page coordinates
type box struct {
	node  domain.ViewNode
	lines []string
	x, y  float64 // centre
	w, h  float64
}

func nodeLines(n domain.ViewNode) []string {
	lines := strings.Split(n.Label, "\n")
	if n.Owner != "" {
		lines = append(lines, "("+n.Owner+")")
	}
	return lines
}

func nodeHeight(lines int) float64 {
	return float64(lines)*nodeLineH + 2*nodePad
}

// bounds returns the extent of every node box in logical coordinates
func bounds(nodes []domain.ViewNode) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, n := range nodes {
		h := nodeHeight(len(nodeLines(n)))
		minX = min(minX, n.Logical.X-nodeW/2)
		maxX = max(maxX, n.Logical.X+nodeW/2)
		minY = min(minY, n.Logical.Y-h/2)
		maxY = max(maxY, n.Logical.Y+h/2)
	}
	return minX, minY, maxX, maxY
}

// Export writes the title and summary followed by the chart fitted to the
// page. Logical positions are used so the output does not depend on the
// on-screen zoom and pan.
func (Exporter) Export(w io.Writer, title string, view domain.ViewModel, mode domain.PageMode) error {
	size, fixed := pageSizes[mode]
	if !fixed && mode != domain.PageNativeFit {
		return fmt.Errorf("unknown page mode %q", mode)
	}

	var contentW, contentH float64
	var minX, minY float64
	if len(view.Nodes) > 0 {
		var maxX, maxY float64
		minX, minY, maxX, maxY = bounds(view.Nodes)
		contentW, contentH = maxX-minX, maxY-minY
	}

	scale := 1.0
	if fixed {
		areaW := size[0] - 2*margin
		areaH := size[1] - 2*margin - headerH
		if contentW > 0 && contentH > 0 {
			scale = min(areaW/contentW, areaH/contentH, maxScale)
		}
	} else {
		size[0] = max(contentW+2*margin, 480)
		size[1] = contentH + 2*margin + headerH
	}
	pageW, pageH := size[0], size[1]

	// centre the scaled content in the area below the header
	areaW := pageW - 2*margin
	areaH := pageH - 2*margin - headerH
	offX := margin + (areaW-contentW*scale)/2
	offY := margin + headerH + (areaH-contentH*scale)/2
	toPage := func(p domain.Point) (float64, float64) {
		return offX + (p.X-minX)*scale, offY + (p.Y-minY)*scale
	}

	boxes := make(map[domain.PhoneID]box, len(view.Nodes))
	for _, n := range view.Nodes {
		lines := nodeLines(n)
		x, y := toPage(n.Logical)
		boxes[n.ID] = box{node: n, lines: lines, x: x, y: y, w: nodeW * scale, h: nodeHeight(len(lines)) * scale}
	}

	var svg strings.Builder
	fmt.Fprintf(&svg, `<?xml version="1.0" encoding="UTF-8"?>
<svg width="%s" height="%s" viewBox="0 0 %s %s" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="#ffffff"/>
<defs>
<style>
.title-text { font-family: %s; font-size: 20px; font-weight: bold; fill: #0f172a; }
.summary-text { font-family: %s; font-size: 12px; fill: #475569; }
.edge-text { font-family: %s; fill: #334155; }
.node-text { font-family: %s; fill: #0f172a; }
</style>
</defs>
`, num(pageW), num(pageH), num(pageW), num(pageH), fontFamily, fontFamily, fontFamily, fontFamily)

	writeHeader(&svg, title, view.Summary)

	if len(view.Nodes) == 0 {
		fmt.Fprintf(&svg, `<text x="%s" y="%s" text-anchor="middle" class="summary-text">No phones match the current filter</text>`+"\n",
			num(pageW/2), num(margin+headerH+areaH/2))
	}

	for _, e := range view.Edges {
		a, okA := boxes[e.Pair.A]
		b, okB := boxes[e.Pair.B]
		if !okA || !okB {
			continue
		}
		writeEdge(&svg, e, a, b, scale)
	}
	for _, n := range view.Nodes {
		writeNode(&svg, boxes[n.ID], scale)
	}

	svg.WriteString("</svg>\n")
	_, err := io.WriteString(w, svg.String())
	return err
}

func writeHeader(svg *strings.Builder, title string, s domain.Summary) {
	fmt.Fprintf(svg, `<text x="%s" y="%s" class="title-text">%s</text>`+"\n", num(margin), num(margin+20), escapeXML(title))
	line := fmt.Sprintf("%d phones · %d links · %d records · %d persons", s.NodeCount, s.EdgeCount, s.TotalRecords, s.PersonCount)
	if s.DateRange != "" {
		line += " · " + s.DateRange
	}
	fmt.Fprintf(svg, `<text x="%s" y="%s" class="summary-text">%s</text>`+"\n", num(margin), num(margin+42), escapeXML(line))
	fmt.Fprintf(svg, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#cbd5e1" stroke-width="1"/>`+"\n",
		num(margin), num(margin+54), "100%", num(margin+54))
}

func writeEdge(svg *strings.Builder, e domain.ViewEdge, a, b box, scale float64) {
	dash := ""
	if e.Calls == 0 {
		dash = ` stroke-dasharray="6 4"`
	}
	fmt.Fprintf(svg, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#64748b" stroke-width="%s" stroke-opacity="0.8"%s/>`+"\n",
		num(a.x), num(a.y), num(b.x), num(b.y), num(max(e.Stroke*scale, 0.5)), dash)

	if e.Label == "" {
		return
	}
	fontSize := max(10*scale, 4)
	lines := strings.Split(e.Label, "\n")
	mx, my := (a.x+b.x)/2, (a.y+b.y)/2-float64(len(lines)-1)*fontSize*1.2/2
	fmt.Fprintf(svg, `<text x="%s" y="%s" text-anchor="middle" class="edge-text" font-size="%s">`, num(mx), num(my), num(fontSize))
	writeLines(svg, lines, mx, fontSize*1.2)
	svg.WriteString("</text>\n")
}

func writeNode(svg *strings.Builder, b box, scale float64) {
	color := Palette[((b.node.Color%len(Palette))+len(Palette))%len(Palette)]
	dash := ` stroke-dasharray="4 2"`
	if b.node.Category == "person-linked" {
		dash = ""
	}
	fmt.Fprintf(svg, `<rect x="%s" y="%s" width="%s" height="%s" rx="%s" fill="#f8fafc" stroke="%s" stroke-width="2"%s/>`+"\n",
		num(b.x-b.w/2), num(b.y-b.h/2), num(b.w), num(b.h), num(6*scale), color, dash)

	fontSize := max(12*scale, 4)
	lineH := nodeLineH * scale
	top := b.y - float64(len(b.lines)-1)*lineH/2 + fontSize/3
	fmt.Fprintf(svg, `<text x="%s" y="%s" text-anchor="middle" class="node-text" font-size="%s">`, num(b.x), num(top), num(fontSize))
	writeLines(svg, b.lines, b.x, lineH)
	svg.WriteString("</text>\n")
}

func writeLines(svg *strings.Builder, lines []string, x, lineH float64) {
	for i, line := range lines {
		dy := "0"
		if i > 0 {
			dy = num(lineH)
		}
		fmt.Fprintf(svg, `<tspan x="%s" dy="%s">%s</tspan>`, num(x), dy, escapeXML(line))
	}
}

// num formats a coordinate with at most two decimals
func num(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
