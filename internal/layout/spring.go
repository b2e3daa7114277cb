package layout

import (
	"math"
	"math/rand/v2"
	"slices"

	"cdrlink/internal/domain"
)

// Input is a self-contained layout problem. It holds no references to
// mutable engine state.
type Input struct {
	Nodes   []domain.PhoneID
	Edges   []domain.PairKey
	Initial map[domain.PhoneID]Position // warm start; missing nodes are seeded randomly
	Fixed   map[domain.PhoneID]bool     // exert forces but never move
}

// Stats describes a finished run
type Stats struct {
	Iterations int
	Converged  bool
	Moved      int
}

// Spring runs a Fruchterman-Reingold style simulation. Repulsion between every
// pair falls with the squared distance; attraction along edges grows linearly
// with distance, so two connected nodes settle at the optimal distance.
// The result is deterministic for a given input and seed.
func Spring(in Input, cfg Config) (map[domain.PhoneID]Position, Stats) {
	nodes := slices.Clone(in.Nodes)
	slices.Sort(nodes)
	nodes = slices.Compact(nodes)

	n := len(nodes)
	out := make(map[domain.PhoneID]Position, n)
	if n == 0 {
		return out, Stats{Converged: true}
	}

	L := cfg.optimal()
	index := make(map[domain.PhoneID]int, n)
	for i, id := range nodes {
		index[id] = i
	}

	pos := make([]Position, n)
	fixed := make([]bool, n)
	seedPositions(nodes, in.Initial, pos, L, cfg.Seed)
	for i, id := range nodes {
		fixed[i] = in.Fixed[id]
	}

	type link struct{ a, b int }
	links := make([]link, 0, len(in.Edges))
	for _, e := range in.Edges {
		a, okA := index[e.A]
		b, okB := index[e.B]
		if okA && okB && a != b {
			links = append(links, link{a, b})
		}
	}

	iterations := cfg.Iterations
	if iterations <= 0 {
		iterations = DefaultConfig().Iterations
	}
	temp0 := L * math.Max(1, math.Sqrt(float64(n))) * 0.5
	epsilon := cfg.Epsilon * L
	disp := make([]Position, n)
	stats := Stats{}

	for iter := 0; iter < iterations; iter++ {
		clear(disp)

		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				delta := pos[i].Sub(pos[j])
				d := delta.Len()
				if d < 1e-9 {
					// coincident nodes: separate along a fixed direction
					angle := float64(i*7+j*13) * 0.618
					delta = Position{X: math.Cos(angle), Y: math.Sin(angle)}.Scale(L * 0.01)
					d = delta.Len()
				}
				f := L * L * L / (d * d)
				push := delta.Scale(f / d)
				disp[i] = disp[i].Add(push)
				disp[j] = disp[j].Sub(push)
			}
		}

		for _, l := range links {
			delta := pos[l.a].Sub(pos[l.b])
			if delta.Len() < 1e-9 {
				continue
			}
			// magnitude d along the unit vector delta/d
			pull := delta
			disp[l.a] = disp[l.a].Sub(pull)
			disp[l.b] = disp[l.b].Add(pull)
		}

		temp := temp0 * (1 - float64(iter)/float64(iterations))
		maxMove := 0.0
		for i := range pos {
			if fixed[i] {
				continue
			}
			d := disp[i].Len()
			if d < 1e-12 {
				continue
			}
			step := math.Min(d, temp)
			pos[i] = pos[i].Add(disp[i].Scale(step / d))
			maxMove = math.Max(maxMove, step)
		}

		stats.Iterations = iter + 1
		if maxMove < epsilon {
			stats.Converged = true
			break
		}
	}

	for i, id := range nodes {
		out[id] = pos[i]
		if !fixed[i] {
			stats.Moved++
		}
	}
	return out, stats
}

// seedPositions copies warm-start positions and scatters the rest in a square
// around their centroid. Random draws happen in sorted node order.
func seedPositions(nodes []domain.PhoneID, initial map[domain.PhoneID]Position, pos []Position, L float64, seed uint64) {
	var centroid Position
	known := 0
	for _, id := range nodes {
		if p, ok := initial[id]; ok {
			centroid = centroid.Add(p)
			known++
		}
	}
	if known > 0 {
		centroid = centroid.Scale(1 / float64(known))
	}

	side := L * math.Max(1, math.Sqrt(float64(len(nodes))))
	rng := rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d))
	for i, id := range nodes {
		if p, ok := initial[id]; ok {
			pos[i] = p
			continue
		}
		pos[i] = Position{
			X: centroid.X + (rng.Float64()-0.5)*side,
			Y: centroid.Y + (rng.Float64()-0.5)*side,
		}
	}
}
