package layout

import (
	"sync"

	"go.uber.org/zap"

	"cdrlink/internal/domain"
)

type node struct {
	pos     Position
	state   State
	version uint64 // bumped on every manual write
}

// Engine owns logical positions. Manual writes take the lock briefly and never
// wait on a running layout: Plan copies what a run needs, Compute runs
// without the lock, and Apply drops any node written manually in between.
type Engine struct {
	mu    sync.RWMutex
	cfg   Config
	nodes map[domain.PhoneID]*node
	log   *zap.Logger
}

func NewEngine(cfg Config, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{cfg: cfg, nodes: make(map[domain.PhoneID]*node), log: log}
}

// Config returns the layout tuning
func (e *Engine) Config() Config { return e.cfg }

// Placement returns a node's position and state
func (e *Engine) Placement(id domain.PhoneID) (Placement, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	n, ok := e.nodes[id]
	if !ok {
		return Placement{}, false
	}
	return Placement{Position: n.pos, State: n.state}, true
}

// Placements copies every tracked node
func (e *Engine) Placements() map[domain.PhoneID]Placement {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(map[domain.PhoneID]Placement, len(e.nodes))
	for id, n := range e.nodes {
		out[id] = Placement{Position: n.pos, State: n.state}
	}
	return out
}

// Drag pins a node at pos and marks it manually positioned
func (e *Engine) Drag(id domain.PhoneID, pos Position) {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := e.ensure(id)
	n.pos = pos
	n.state = ManuallyPositioned
	n.version++
}

// MoveBy shifts a node by a logical delta and pins it
func (e *Engine) MoveBy(id domain.PhoneID, delta Position) Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := e.ensure(id)
	n.pos = n.pos.Add(delta)
	n.state = ManuallyPositioned
	n.version++
	return n.pos
}

// Place sets a node's position and state, used when restoring or seeding
func (e *Engine) Place(id domain.PhoneID, p Placement) {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := e.ensure(id)
	n.pos = p.Position
	n.state = p.State
	n.version++
}

// Forget stops tracking the given nodes
func (e *Engine) Forget(ids ...domain.PhoneID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, id := range ids {
		delete(e.nodes, id)
	}
}

// Clear drops every tracked node
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nodes = make(map[domain.PhoneID]*node)
}

func (e *Engine) ensure(id domain.PhoneID) *node {
	n, ok := e.nodes[id]
	if !ok {
		n = &node{}
		e.nodes[id] = n
	}
	return n
}

// Plan is a layout run prepared from a consistent copy of engine state
type Plan struct {
	input    Input
	cfg      Config
	versions map[domain.PhoneID]uint64
	reset    bool
}

// Needed reports whether running the plan could move anything
func (p *Plan) Needed() bool {
	return p != nil && len(p.versions) > 0
}

// Result is the output of Compute, applied with Engine.Apply
type Result struct {
	positions map[domain.PhoneID]Position
	versions  map[domain.PhoneID]uint64
	Stats     Stats
}

// Prepare registers unseen nodes as unpositioned and copies what a run over
// the given subgraph needs. Without reset, manually positioned nodes stay
// fixed and the run is skipped when every node already has a position.
// With reset every node is recomputed from scratch.
func (e *Engine) Prepare(nodes []domain.PhoneID, edges []domain.PairKey, reset bool) *Plan {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := &Plan{
		input: Input{
			Nodes:   nodes,
			Edges:   edges,
			Initial: make(map[domain.PhoneID]Position, len(nodes)),
			Fixed:   make(map[domain.PhoneID]bool),
		},
		cfg:      e.cfg,
		versions: make(map[domain.PhoneID]uint64, len(nodes)),
		reset:    reset,
	}

	pending := false
	for _, id := range nodes {
		n := e.ensure(id)
		if n.state == Unpositioned {
			pending = true
		}
	}

	for _, id := range nodes {
		n := e.nodes[id]
		switch {
		case reset:
			p.versions[id] = n.version
		case n.state == ManuallyPositioned:
			p.input.Initial[id] = n.pos
			p.input.Fixed[id] = true
		case n.state == AutoPositioned:
			p.input.Initial[id] = n.pos
			if pending {
				p.versions[id] = n.version
			}
		default:
			p.versions[id] = n.version
		}
	}
	return p
}

// Compute runs the simulation. It touches no engine state and may run on any
// goroutine.
func (p *Plan) Compute() Result {
	pos, stats := Spring(p.input, p.cfg)
	for id := range pos {
		if _, movable := p.versions[id]; !movable {
			delete(pos, id)
		}
	}
	return Result{positions: pos, versions: p.versions, Stats: stats}
}

// Apply writes computed positions back, skipping nodes that were dragged,
// placed or forgotten after the plan was prepared. It returns how many nodes
// were updated.
func (e *Engine) Apply(r Result) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	applied := 0
	for id, pos := range r.positions {
		n, ok := e.nodes[id]
		if !ok || n.version != r.versions[id] {
			continue
		}
		n.pos = pos
		n.state = AutoPositioned
		applied++
	}
	e.log.Debug("layout applied",
		zap.Int("iterations", r.Stats.Iterations),
		zap.Bool("converged", r.Stats.Converged),
		zap.Int("updated", applied),
		zap.Int("skipped", len(r.positions)-applied),
	)
	return applied
}

// Sync positions any new nodes of the subgraph, leaving manual placements alone
func (e *Engine) Sync(nodes []domain.PhoneID, edges []domain.PairKey) int {
	plan := e.Prepare(nodes, edges, false)
	if !plan.Needed() {
		return 0
	}
	return e.Apply(plan.Compute())
}

// Reset recomputes every node of the subgraph, manual ones included
func (e *Engine) Reset(nodes []domain.PhoneID, edges []domain.PairKey) int {
	return e.Apply(e.Prepare(nodes, edges, true).Compute())
}
