package commands

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cdrlink/internal/application"
	"cdrlink/internal/domain"
	"cdrlink/internal/filter"
	"cdrlink/internal/ingest"
)

func seeded(t *testing.T) *application.Workspace {
	t.Helper()
	ws := newWorkspace()
	_, err := NewImportCommand(ws, seededReader(), "calls.csv").Execute(context.Background())
	require.NoError(t, err)
	return ws
}

func TestImportCommand(t *testing.T) {
	ws := newWorkspace()
	res, err := NewImportCommand(ws, seededReader(), "calls.csv").Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, res.Summary.RecordsProcessed)
	assert.Equal(t, 3, res.Summary.NewNodesAdded)
	assert.Contains(t, res.Message, "Imported 3 records")
	assert.Len(t, ws.Current().Nodes(), 3)
}

func TestImportCommand_Errors(t *testing.T) {
	ws := newWorkspace()

	_, err := NewImportCommand(ws, seededReader(), " ").Execute(context.Background())
	var verr *application.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "file path is required")

	_, err = NewImportCommand(ws, &fakeReader{err: os.ErrNotExist}, "missing.csv").Execute(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = NewImportCommand(ws, &fakeReader{columns: []string{"a", "b"}}, "odd.csv").Execute(context.Background())
	require.ErrorIs(t, err, application.ErrSchemaDetection)
}

func TestPhoneCommands_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     interface{ Validate() error }
		wantErr string
	}{
		{name: "add valid", cmd: &AddPhoneCommand{Phone: "+1 (555) 010-0000"}},
		{name: "add empty", cmd: &AddPhoneCommand{Phone: ""}, wantErr: "phone number is required"},
		{name: "add letters", cmd: &AddPhoneCommand{Phone: "call me"}, wantErr: "invalid phone number"},
		{name: "edit nothing", cmd: &EditPhoneCommand{Phone: "111"}, wantErr: "nothing to change"},
		{name: "edit colour", cmd: &EditPhoneCommand{Phone: "111", CycleColor: true}},
		{name: "delete empty", cmd: &DeletePhoneCommand{}, wantErr: "phone number is required"},
		{name: "edge self loop", cmd: &DeleteEdgeCommand{PhoneA: "111", PhoneB: "1-1-1"}, wantErr: "paired with itself"},
		{name: "note missing B", cmd: &NoteCommand{PhoneA: "111"}, wantErr: "second phone number is required"},
		{name: "move valid", cmd: &MovePhoneCommand{Phone: "111"}},
		{name: "assign no person", cmd: &AssignCommand{Phone: "111"}, wantErr: "person ID is required"},
		{name: "export bad mode", cmd: &ExportCommand{Path: "x", Mode: "tabloid"}, wantErr: "unknown page mode"},
		{name: "sample too few phones", cmd: &GenerateSampleCommand{Path: "x", Phones: 1, Rows: 1}, wantErr: "at least 2 phones"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAddAndEditPhone(t *testing.T) {
	ws := newWorkspace()
	ctx := context.Background()

	added, err := NewAddPhoneCommand(ws, "555-0100", "desk").Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PhoneID("5550100"), added.Phone.ID)
	assert.True(t, ws.Current().HasNode("5550100"))

	_, err = NewAddPhoneCommand(ws, "5550100", "").Execute(ctx)
	require.ErrorIs(t, err, application.ErrAlreadyExists)

	alias := "reception"
	edited, err := NewEditPhoneCommand(ws, "5550100", &alias, true).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, edited.ColorIndex)

	node, ok := ws.View().Node("5550100")
	require.True(t, ok)
	assert.Equal(t, "reception\n5550100", node.Label)
}

func TestDeletePhoneAndEdge(t *testing.T) {
	ws := seeded(t)
	ctx := context.Background()

	_, err := NewDeleteEdgeCommand(ws, "333", "111").Execute(ctx)
	require.NoError(t, err)
	assert.Len(t, ws.Pairs(), 1)

	_, err = NewDeleteEdgeCommand(ws, "333", "111").Execute(ctx)
	require.ErrorIs(t, err, application.ErrNotFound)

	_, err = NewDeletePhoneCommand(ws, "222").Execute(ctx)
	require.NoError(t, err)
	assert.Empty(t, ws.Pairs())
	assert.False(t, ws.Current().HasNode("222"))
}

func TestNoteCommand(t *testing.T) {
	ws := seeded(t)
	ctx := context.Background()

	res, err := NewNoteCommand(ws, "222", "111", "siblings", false).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "111|222", res.Pair.String())
	assert.Equal(t, []string{"siblings"}, res.Notes)

	res, err = NewNoteCommand(ws, "111", "222", "cousins", true).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"cousins"}, res.Notes)

	res, err = NewNoteCommand(ws, "111", "222", "", false).Execute(ctx)
	require.NoError(t, err)
	assert.Empty(t, res.Notes)
	assert.Contains(t, res.Message, "Cleared")

	// a note alone creates an edge between phones that never called
	_, err = NewNoteCommand(ws, "222", "333", "same office", false).Execute(ctx)
	require.NoError(t, err)
	agg, ok := ws.Current().Edge(domain.PairKey{A: "222", B: "333"})
	require.True(t, ok)
	assert.True(t, agg.NoteOnly())
}

func TestPersonCommands(t *testing.T) {
	ws := seeded(t)
	ctx := context.Background()

	added, err := NewAddPersonCommand(ws, "Dana").Execute(ctx)
	require.NoError(t, err)

	_, err = NewAssignCommand(ws, "Dana", "111", false).Execute(ctx)
	require.NoError(t, err)
	assigned, err := NewAssignCommand(ws, string(added.Person.ID), "222", false).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.PhoneID{"111", "222"}, assigned.Person.Phones)
	assert.Equal(t, filter.CategoryPersonLinked, ws.Current().Category("111"))

	renamed, err := NewRenamePersonCommand(ws, "Dana", "Dana K").Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Dana K", renamed.Person.Name)

	unassigned, err := NewAssignCommand(ws, "Dana K", "111", true).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.PhoneID{"222"}, unassigned.Person.Phones)
	assert.Equal(t, filter.CategoryUnassignedPhone, ws.Current().Category("111"))

	_, err = NewAssignCommand(ws, "Nobody", "111", false).Execute(ctx)
	require.ErrorIs(t, err, application.ErrNotFound)

	_, err = NewDeletePersonCommand(ws, "Dana K").Execute(ctx)
	require.NoError(t, err)
	assert.Empty(t, ws.Persons())
	assert.Equal(t, filter.CategoryUnassignedPhone, ws.Current().Category("222"))
}

func TestFilterCommand(t *testing.T) {
	ws := seeded(t)
	spec := filter.DefaultSpec()
	spec.MinCalls = 2

	res, err := NewFilterCommand(ws, spec).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.View.Summary().NodeCount)
	assert.Contains(t, res.Message, "Showing 2 phones and 1 edges")

	spec.MinCalls = 0
	_, err = NewFilterCommand(ws, spec).Execute(context.Background())
	require.Error(t, err)
	assert.Equal(t, 2, ws.Spec().MinCalls)
}

func TestMoveAndResetLayout(t *testing.T) {
	ws := seeded(t)
	ctx := context.Background()

	moved, err := NewMovePhoneCommand(ws, "111", 12, 34).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12.0, moved.Placement.Position.X)

	_, err = NewMovePhoneCommand(ws, "999", 0, 0).Execute(ctx)
	require.ErrorIs(t, err, application.ErrNotFound)

	reset, err := NewResetLayoutCommand(ws).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, reset.Moved)
}

func TestSaveLoadList(t *testing.T) {
	ws := seeded(t)
	store := newMemStore()
	ctx := context.Background()

	_, err := NewMovePhoneCommand(ws, "333", 1, 2).Execute(ctx)
	require.NoError(t, err)
	saved, err := NewSaveCommand(ws, store, "case-1").Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, saved.Summary.NodeCount)

	list, err := NewListSnapshotsCommand(store).Execute(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "case-1", list[0].Name)

	fresh := newWorkspace()
	loaded, err := NewLoadCommand(fresh, store, "case-1").Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Summary.EdgeCount)
	pl, ok := fresh.Placement("333")
	require.True(t, ok)
	assert.Equal(t, 1.0, pl.Position.X)

	_, err = NewLoadCommand(fresh, store, "nope").Execute(ctx)
	require.ErrorIs(t, err, application.ErrNotFound)

	_, err = NewDeleteSnapshotCommand(store, "case-1").Execute(ctx)
	require.NoError(t, err)
	_, err = NewDeleteSnapshotCommand(store, "case-1").Execute(ctx)
	assert.True(t, errors.Is(err, application.ErrNotFound))
}

func TestExportCommand(t *testing.T) {
	ws := seeded(t)
	dir := t.TempDir()

	res, err := NewExportCommand(ws, textExporter{}, filepath.Join(dir, "chart"), "", "").Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "chart.txt"), res.Path)
	assert.Equal(t, domain.PageLetterLandscape, res.Mode)

	body, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "chart letter-landscape 3 2", string(body))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestGenerateSampleCommand(t *testing.T) {
	w := &fakeWriter{}
	res, err := NewGenerateSampleCommand(w, "sample.csv", 7, 5, 40).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 40, res.Rows)
	assert.Equal(t, ingest.SampleColumns, w.columns)

	// the generated table imports cleanly
	ws := newWorkspace()
	summary, err := ws.Import(context.Background(), w.columns, w.rows)
	require.NoError(t, err)
	assert.Equal(t, "new", summary.Schema)
	assert.Equal(t, 40, summary.RecordsProcessed)
}
