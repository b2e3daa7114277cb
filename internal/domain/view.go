package domain

import (
	"fmt"
	"strings"
	"time"
)

// Point is a 2D coordinate handed to renderers
type Point struct {
	X float64
	Y float64
}

// ViewNode is a visible phone as a renderer sees it
type ViewNode struct {
	ID       PhoneID
	Label    string
	Owner    string // person name, empty when unassigned
	Category string // "person-linked" or "unassigned-phone"
	Color    int
	Logical  Point
	Render   Point
}

// ViewEdge is a visible pair as a renderer sees it
type ViewEdge struct {
	Pair   PairKey
	Label  string
	Calls  int
	Weight float64 // normalized by the busiest visible edge
	Stroke float64 // pixel width, grows with call volume
}

// ViewModel is everything a renderer or exporter needs for one frame
type ViewModel struct {
	Nodes   []ViewNode
	Edges   []ViewEdge
	Summary Summary
	Zoom    float64
	Pan     Point
}

// Node looks up a node by ID
func (v ViewModel) Node(id PhoneID) (ViewNode, bool) {
	for _, n := range v.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return ViewNode{}, false
}

// StrokeWidth is 2px plus 1px per ten calls, capped at 8px
func StrokeWidth(calls int) float64 {
	return float64(min(2+calls/10, 8))
}

// PageMode selects the export page geometry
type PageMode string

const (
	PageLetterLandscape PageMode = "letter-landscape"
	PageA4Landscape     PageMode = "a4-landscape"
	PageNativeFit       PageMode = "native-fit"
)

// PageModes lists the supported modes
var PageModes = []PageMode{PageLetterLandscape, PageA4Landscape, PageNativeFit}

// ParsePageMode accepts the mode names case-insensitively
func ParsePageMode(s string) (PageMode, error) {
	m := PageMode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range PageModes {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown page mode %q (want letter-landscape, a4-landscape or native-fit)", s)
}

// SnapshotInfo describes a stored snapshot without loading it
type SnapshotInfo struct {
	Name    string
	SavedAt time.Time
	Phones  int
	Edges   int
}
