// Package layout computes and tracks logical node positions.
package layout

import "math"

// State is the per-node positioning state
type State int

const (
	Unpositioned State = iota
	AutoPositioned
	ManuallyPositioned
)

func (s State) String() string {
	switch s {
	case AutoPositioned:
		return "auto"
	case ManuallyPositioned:
		return "manual"
	default:
		return "unpositioned"
	}
}

// ParseState is the inverse of String; unknown values map to Unpositioned
func ParseState(s string) State {
	switch s {
	case "auto":
		return AutoPositioned
	case "manual":
		return ManuallyPositioned
	default:
		return Unpositioned
	}
}

// Position is a point in the unbounded logical plane
type Position struct {
	X float64
	Y float64
}

func (p Position) Add(o Position) Position { return Position{X: p.X + o.X, Y: p.Y + o.Y} }
func (p Position) Sub(o Position) Position { return Position{X: p.X - o.X, Y: p.Y - o.Y} }
func (p Position) Scale(f float64) Position { return Position{X: p.X * f, Y: p.Y * f} }
func (p Position) Len() float64 { return math.Hypot(p.X, p.Y) }
func (p Position) Near(o Position, tol float64) bool { return p.Sub(o).Len() <= tol }

// Placement is a node's position together with how it was obtained
type Placement struct {
	Position Position
	State    State
}

// Config tunes the force-directed layout
type Config struct {
	Iterations int     // step budget per run
	K          float64 // optimal distance in units of Scale
	Scale      float64 // logical units per layout unit
	Seed       uint64
	Epsilon    float64 // stop when the largest move falls below Epsilon*K*Scale
}

// DefaultConfig matches the reference 50 iterations and k=2.5
func DefaultConfig() Config {
	return Config{Iterations: 50, K: 2.5, Scale: 100, Seed: 42, Epsilon: 0.001}
}

func (c Config) optimal() float64 {
	k, s := c.K, c.Scale
	if k <= 0 {
		k = 2.5
	}
	if s <= 0 {
		s = 100
	}
	return k * s
}

const (
	gridColumns = 3
	gridDX      = 300
	gridDY      = 150
	gridX0      = 200
	gridY0      = 120
)

// GridPosition is the slot used for the index-th explicitly added phone
func GridPosition(index int) Position {
	if index < 0 {
		index = 0
	}
	return Position{
		X: gridX0 + float64(index%gridColumns)*gridDX,
		Y: gridY0 + float64(index/gridColumns)*gridDY,
	}
}
