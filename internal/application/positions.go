package application

import (
	"context"

	"cdrlink/internal/domain"
	"cdrlink/internal/layout"
)

// Drag pins a visible phone at a logical position. It only takes the layout
// lock, so it proceeds while a filter job is running and wins over it.
func (w *Workspace) Drag(id domain.PhoneID, pos layout.Position) error {
	if !w.Current().HasNode(id) {
		return &domain.NotFoundError{Kind: "phone", ID: string(id)}
	}
	w.layout.Drag(id, pos)
	return nil
}

// DragBy moves a visible phone by a render-space delta
func (w *Workspace) DragBy(id domain.PhoneID, dx, dy float64) (layout.Position, error) {
	if !w.Current().HasNode(id) {
		return layout.Position{}, &domain.NotFoundError{Kind: "phone", ID: string(id)}
	}
	delta := w.Viewport().LogicalDelta(dx, dy)
	return w.layout.MoveBy(id, delta), nil
}

// ResetLayout recomputes every visible node, manual placements included
func (w *Workspace) ResetLayout(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	view := w.Current()
	return w.layout.Reset(view.NodeIDs(), view.Pairs()), nil
}

// Placement returns a phone's stored position
func (w *Workspace) Placement(id domain.PhoneID) (layout.Placement, bool) {
	return w.layout.Placement(id)
}

// Viewport returns a copy of the zoom and pan state
func (w *Workspace) Viewport() layout.Viewport {
	w.vmu.Lock()
	defer w.vmu.Unlock()
	return w.viewport
}

// SetZoom sets the zoom factor, clamped to the configured range
func (w *Workspace) SetZoom(z float64) float64 {
	w.vmu.Lock()
	defer w.vmu.Unlock()
	return w.viewport.SetZoom(z)
}

// ZoomStep applies one wheel notch
func (w *Workspace) ZoomStep(in bool) float64 {
	w.vmu.Lock()
	defer w.vmu.Unlock()
	return w.viewport.Step(in)
}

// ZoomAt scales around a render-space anchor that stays fixed on screen
func (w *Workspace) ZoomAt(factor float64, anchor layout.Position) float64 {
	w.vmu.Lock()
	defer w.vmu.Unlock()
	return w.viewport.ZoomAt(factor, anchor)
}

func (w *Workspace) Pan(dx, dy float64) {
	w.vmu.Lock()
	defer w.vmu.Unlock()
	w.viewport.PanBy(dx, dy)
}
