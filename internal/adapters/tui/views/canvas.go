package views

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cdrlink/internal/adapters/tui/styles"
	"cdrlink/internal/domain"
)

// Render-space pixels covered by one terminal cell. Cells are about twice
// as tall as they are wide.
const (
	pxPerCol   = 12.0
	pxPerRow   = 24.0
	labelWidth = 14
)

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellEdge
	cellEdgeHeavy
	cellEdgeNote
	cellEdgeSelected
	cellLabel
	cellNode
	cellNodeSelected
)

type cell struct {
	r     rune
	kind  cellKind
	color int
}

// chart is a character raster of one view frame
type chart struct {
	cols, rows int
	cells      [][]cell
}

func newChart(cols, rows int) *chart {
	c := &chart{cols: max(cols, 1), rows: max(rows, 1)}
	c.cells = make([][]cell, c.rows)
	for y := range c.cells {
		c.cells[y] = make([]cell, c.cols)
		for x := range c.cells[y] {
			c.cells[y][x] = cell{r: ' '}
		}
	}
	return c
}

func (c *chart) set(x, y int, v cell) {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return
	}
	if c.cells[y][x].kind >= cellNode && v.kind < cellNode {
		return
	}
	c.cells[y][x] = v
}

// drawChart rasterizes a view model. Render coordinates are used, so zoom
// and pan move the picture; the logical centroid sits at the middle.
func drawChart(vm domain.ViewModel, cols, rows int, sel Target) *chart {
	c := newChart(cols, rows)
	if len(vm.Nodes) == 0 {
		msg := "No phones match the current filter"
		x := max((c.cols-len(msg))/2, 0)
		for i, r := range msg {
			c.set(x+i, c.rows/2, cell{r: r, kind: cellLabel})
		}
		return c
	}

	var cx, cy float64
	for _, n := range vm.Nodes {
		cx += n.Logical.X
		cy += n.Logical.Y
	}
	cx /= float64(len(vm.Nodes))
	cy /= float64(len(vm.Nodes))

	at := make(map[domain.PhoneID][2]int, len(vm.Nodes))
	for _, n := range vm.Nodes {
		x := c.cols/2 + int(math.Round((n.Render.X-cx)/pxPerCol))
		y := c.rows/2 + int(math.Round((n.Render.Y-cy)/pxPerRow))
		at[n.ID] = [2]int{x, y}
	}

	for _, e := range vm.Edges {
		a, okA := at[e.Pair.A]
		b, okB := at[e.Pair.B]
		if !okA || !okB {
			continue
		}
		kind := cellEdge
		switch {
		case sel.HasPair() && sel.Pair == e.Pair:
			kind = cellEdgeSelected
		case e.Calls == 0:
			kind = cellEdgeNote
		case e.Stroke >= 5:
			kind = cellEdgeHeavy
		}
		c.line(a[0], a[1], b[0], b[1], kind)
	}

	for _, n := range vm.Nodes {
		p := at[n.ID]
		label := []rune(truncate(firstLine(n.Label), labelWidth))
		for i, r := range label {
			c.set(p[0]+2+i, p[1], cell{r: r, kind: cellLabel})
		}
	}

	for _, n := range vm.Nodes {
		p := at[n.ID]
		glyph := '●'
		if n.Owner == "" {
			glyph = '○'
		}
		kind := cellNode
		if sel.Phone == n.ID || (sel.HasPair() && sel.Pair.Has(n.ID)) {
			kind = cellNodeSelected
		}
		c.set(p[0], p[1], cell{r: glyph, kind: kind, color: n.Color})
	}
	return c
}

// line draws the segment between two cells, excluding its endpoints
func (c *chart) line(x0, y0, x1, y1 int, kind cellKind) {
	dx, dy := x1-x0, y1-y0
	glyph := edgeGlyph(dx, dy, kind)
	steps := max(abs(dx), abs(dy))
	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)
		x := x0 + int(math.Round(float64(dx)*t))
		y := y0 + int(math.Round(float64(dy)*t))
		c.set(x, y, cell{r: glyph, kind: kind})
	}
}

func edgeGlyph(dx, dy int, kind cellKind) rune {
	if kind == cellEdgeNote {
		return '·'
	}
	switch {
	case abs(dy)*2 <= abs(dx):
		return '─'
	case abs(dx)*2 <= abs(dy):
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Plain returns the raster without styling
func (c *chart) Plain() string {
	lines := make([]string, c.rows)
	for y, row := range c.cells {
		var b strings.Builder
		for _, v := range row {
			b.WriteRune(v.r)
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

// Render returns the raster with runs of equally styled cells colored
func (c *chart) Render() string {
	lines := make([]string, c.rows)
	for y, row := range c.cells {
		var b, run strings.Builder
		prev := row[0]
		flush := func() {
			b.WriteString(cellStyle(prev).Render(run.String()))
			run.Reset()
		}
		for _, v := range row {
			if v.kind != prev.kind || v.color != prev.color {
				flush()
				prev = v
			}
			run.WriteRune(v.r)
		}
		flush()
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

func cellStyle(v cell) lipgloss.Style {
	switch v.kind {
	case cellEdge:
		return styles.EdgeLine
	case cellEdgeHeavy:
		return styles.EdgeHeavy
	case cellEdgeNote:
		return styles.EdgeNote
	case cellEdgeSelected:
		return styles.Success
	case cellLabel:
		return styles.NodeLabel
	case cellNode:
		return styles.NodeStyle(v.color, false)
	case cellNodeSelected:
		return styles.NodeStyle(v.color, true)
	default:
		return lipgloss.NewStyle()
	}
}
