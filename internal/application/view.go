package application

import (
	"cdrlink/internal/domain"
)

// View assembles what a renderer needs from the current filtered graph,
// the stored positions and the viewport.
func (w *Workspace) View() domain.ViewModel {
	fg := w.Current()
	vp := w.Viewport()
	placements := w.layout.Placements()

	w.mu.RLock()
	names := make(map[domain.PersonID]string)
	for _, p := range w.registry.Persons() {
		names[p.ID] = p.Name
	}
	w.mu.RUnlock()

	vm := domain.ViewModel{
		Summary: fg.Summary(),
		Zoom:    vp.Zoom,
		Pan:     domain.Point{X: vp.Pan.X, Y: vp.Pan.Y},
	}
	for _, p := range fg.Nodes() {
		n := domain.ViewNode{
			ID:       p.ID,
			Label:    p.DisplayLabel(),
			Category: fg.Category(p.ID).String(),
			Color:    p.ColorIndex,
		}
		if owner, ok := fg.Owner(p.ID); ok {
			n.Owner = names[owner]
		}
		if pl, ok := placements[p.ID]; ok {
			r := vp.ToRender(pl.Position)
			n.Logical = domain.Point{X: pl.Position.X, Y: pl.Position.Y}
			n.Render = domain.Point{X: r.X, Y: r.Y}
		}
		vm.Nodes = append(vm.Nodes, n)
	}

	maxCalls := fg.MaxCallCount()
	for _, agg := range fg.Edges() {
		weight := w.opts.MinWeight
		if maxCalls > 0 && agg.CallCount > 0 {
			weight += (w.opts.MaxWeight - w.opts.MinWeight) * float64(agg.CallCount) / float64(maxCalls)
		}
		vm.Edges = append(vm.Edges, domain.ViewEdge{
			Pair:   agg.Pair,
			Label:  agg.Label(),
			Calls:  agg.CallCount,
			Weight: weight,
			Stroke: domain.StrokeWidth(agg.CallCount),
		})
	}
	return vm
}
