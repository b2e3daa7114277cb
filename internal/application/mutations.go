package application

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"cdrlink/internal/domain"
	"cdrlink/internal/ingest"
	"cdrlink/internal/layout"
)

// Import detects the schema of a table, normalizes its rows and merges the
// records into the graph. The merge is staged on a copy and committed in one
// swap, so a failed or cancelled import leaves the graph untouched.
func (w *Workspace) Import(ctx context.Context, columns []string, rows []domain.RawRow) (domain.ImportSummary, error) {
	schema, err := ingest.DetectSchema(columns)
	if err != nil {
		return domain.ImportSummary{}, err
	}
	norm := ingest.NewNormalizer(schema, ingest.WithLocation(w.opts.Location), ingest.WithClock(w.opts.Clock))
	records, summary := norm.Normalize(rows)

	w.mu.Lock()
	defer w.mu.Unlock()

	staged := w.graph.Clone()
	for i, rec := range records {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return domain.ImportSummary{}, err
			}
		}
		for _, id := range []domain.PhoneID{rec.PartyA, rec.PartyB} {
			if _, created := staged.AddOrGetPhone(id); created {
				summary.NewNodesAdded++
			}
		}
		if err := staged.RecordCall(rec.PartyA, rec.PartyB, rec.Call); err != nil {
			return domain.ImportSummary{}, fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	w.graph = staged

	w.log.Info("import committed",
		zap.String("schema", summary.Schema),
		zap.Int("processed", summary.RecordsProcessed),
		zap.Int("skipped", summary.RecordsSkipped),
		zap.Int("new_nodes", summary.NewNodesAdded),
	)
	return summary, nil
}

// AddPhone creates an isolated phone on the default grid
func (w *Workspace) AddPhone(raw, alias string) (domain.Phone, error) {
	id, err := ValidatePhone("phone", raw)
	if err != nil {
		return domain.Phone{}, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	p, err := w.graph.AddPhone(id, strings.TrimSpace(alias))
	if err != nil {
		return domain.Phone{}, err
	}
	w.layout.Place(id, layout.Placement{
		Position: layout.GridPosition(w.graph.NodeCount() - 1),
		State:    layout.AutoPositioned,
	})
	return p, nil
}

// DeletePhone removes a phone with every incident edge, its ownership links
// and its position
func (w *Workspace) DeletePhone(id domain.PhoneID) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.graph.DeletePhone(id); err != nil {
		return err
	}
	w.registry.ForgetPhone(id)
	w.layout.Forget(id)
	return nil
}

// DeleteEdge removes every record between two phones
func (w *Workspace) DeleteEdge(pair domain.PairKey) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.graph.DeleteEdge(pair)
}

// AddNote appends a note to a pair; empty text clears the pair's notes
func (w *Workspace) AddNote(pair domain.PairKey, text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.graph.AddManualNote(pair.A, pair.B, text, w.opts.Clock())
}

// SetNote replaces a pair's notes with a single note
func (w *Workspace) SetNote(pair domain.PairKey, text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.graph.SetNote(pair.A, pair.B, text, w.opts.Clock())
}

func (w *Workspace) SetAlias(id domain.PhoneID, alias string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.graph.SetAlias(id, strings.TrimSpace(alias))
}

// CycleColor advances a phone through the palette and returns the new index
func (w *Workspace) CycleColor(id domain.PhoneID) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.graph.CycleColor(id, w.opts.Palette)
}

func (w *Workspace) AddPerson(name string) (domain.Person, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.registry.AddPerson(name)
}

func (w *Workspace) RenamePerson(id domain.PersonID, name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.registry.RenamePerson(id, name)
}

func (w *Workspace) DeletePerson(id domain.PersonID) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.registry.DeletePerson(id)
}

// AssignPhone links an existing phone to a person
func (w *Workspace) AssignPhone(person domain.PersonID, phone domain.PhoneID) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.graph.HasPhone(phone) {
		return &domain.NotFoundError{Kind: "phone", ID: string(phone)}
	}
	return w.registry.AssignPhone(person, phone)
}

func (w *Workspace) UnassignPhone(person domain.PersonID, phone domain.PhoneID) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.registry.UnassignPhone(person, phone)
}
