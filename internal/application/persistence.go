package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"cdrlink/internal/domain"
	"cdrlink/internal/layout"
)

// Snapshot captures graph, registry, positions and view state
func (w *Workspace) Snapshot() *domain.Snapshot {
	w.mu.RLock()
	snap := domain.EncodeGraph(w.graph, w.registry)
	w.mu.RUnlock()

	placements := w.layout.Placements()
	for i := range snap.Phones {
		pl, ok := placements[domain.PhoneID(snap.Phones[i].ID)]
		if !ok || pl.State == layout.Unpositioned {
			continue
		}
		snap.Phones[i].Position = &domain.PositionDoc{X: pl.Position.X, Y: pl.Position.Y}
		snap.Phones[i].LayoutState = pl.State.String()
	}

	vp := w.Viewport()
	snap.ViewState = domain.ViewStateDoc{Zoom: vp.Zoom, PanX: vp.Pan.X, PanY: vp.Pan.Y}
	snap.SavedAt = w.opts.Clock().UTC()
	return &snap
}

// Restore replaces the whole workspace with a snapshot. The document is
// decoded completely before anything is replaced.
func (w *Workspace) Restore(ctx context.Context, snap *domain.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("%w: empty document", domain.ErrCorruptSnapshot)
	}
	g, reg, err := domain.DecodeGraph(*snap)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.graph = g
	w.registry = reg
	w.layout.Clear()
	for _, doc := range snap.Phones {
		if doc.Position == nil {
			continue
		}
		state := layout.ParseState(doc.LayoutState)
		if state == layout.Unpositioned {
			state = layout.AutoPositioned
		}
		w.layout.Place(domain.PhoneID(doc.ID), layout.Placement{
			Position: layout.Position{X: doc.Position.X, Y: doc.Position.Y},
			State:    state,
		})
	}
	w.mu.Unlock()

	w.vmu.Lock()
	w.viewport = layout.NewViewport(w.opts.Zoom)
	if snap.ViewState.Zoom > 0 {
		w.viewport.SetZoom(snap.ViewState.Zoom)
	}
	w.viewport.Pan = layout.Position{X: snap.ViewState.PanX, Y: snap.ViewState.PanY}
	w.vmu.Unlock()

	w.log.Info("snapshot restored",
		zap.Int("phones", g.NodeCount()),
		zap.Int("edges", g.EdgeCount()),
		zap.Int("persons", reg.Len()),
	)
	_, err = w.Refresh(ctx)
	return err
}
