package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cdrlink/internal/domain"
	"cdrlink/internal/filter"
	"cdrlink/internal/layout"
)

var oldColumns = []string{"caller", "receiver", "timestamp", "duration"}

func callRow(from, to, when, secs string) domain.RawRow {
	return domain.RawRow{"caller": from, "receiver": to, "timestamp": when, "duration": secs}
}

func newTestWorkspace(t *testing.T) *Workspace {
	t.Helper()
	opts := DefaultOptions()
	opts.Location = time.UTC
	opts.Clock = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	opts.Workers = 2
	return NewWorkspace(opts, nil)
}

func importRows(t *testing.T, w *Workspace, rows ...domain.RawRow) domain.ImportSummary {
	t.Helper()
	summary, err := w.Import(context.Background(), oldColumns, rows)
	require.NoError(t, err)
	_, err = w.Refresh(context.Background())
	require.NoError(t, err)
	return summary
}

func TestWorkspace_ImportThenView(t *testing.T) {
	w := newTestWorkspace(t)
	summary := importRows(t, w,
		callRow("111", "222", "2024-03-01 10:00:00", "30"),
		callRow("222", "111", "2024-03-01 11:00:00", "90"),
		callRow("111", "333", "2024-03-02 09:00:00", ""),
		callRow("111", "111", "2024-03-02 09:00:00", "5"),
		callRow("444", "555", "not a time", "5"),
	)

	assert.Equal(t, "old", summary.Schema)
	assert.Equal(t, 3, summary.RecordsProcessed)
	assert.Equal(t, 2, summary.RecordsSkipped)
	assert.Equal(t, 3, summary.NewNodesAdded)

	vm := w.View()
	require.Len(t, vm.Nodes, 3)
	require.Len(t, vm.Edges, 2)

	byPair := map[string]domain.ViewEdge{}
	for _, e := range vm.Edges {
		byPair[e.Pair.String()] = e
	}
	busy := byPair["111|222"]
	assert.Equal(t, 2, busy.Calls)
	assert.Equal(t, "2 calls\n2024-03-01\n1.0m avg", busy.Label)
	assert.InDelta(t, 5.0, busy.Weight, 1e-9)
	assert.InDelta(t, 3.0, byPair["111|333"].Weight, 1e-9)

	for _, n := range vm.Nodes {
		assert.Equal(t, "unassigned-phone", n.Category)
		assert.NotEqual(t, domain.Point{}, n.Logical, "node %s was not positioned", n.ID)
	}
	assert.Equal(t, 3, vm.Summary.TotalRecords)
}

func TestWorkspace_ImportSchemaFailureLeavesGraph(t *testing.T) {
	w := newTestWorkspace(t)
	importRows(t, w, callRow("111", "222", "2024-03-01 10:00:00", "30"))

	_, err := w.Import(context.Background(), []string{"foo", "bar"}, []domain.RawRow{{"foo": "1", "bar": "2"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSchemaDetection))
	assert.Equal(t, 2, w.Totals().NodeCount)
}

func TestWorkspace_ImportCancelledCommitsNothing(t *testing.T) {
	w := newTestWorkspace(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := w.Import(ctx, oldColumns, []domain.RawRow{callRow("111", "222", "2024-03-01 10:00:00", "30")})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, w.Totals().NodeCount)
}

func TestWorkspace_StaleResultDiscarded(t *testing.T) {
	w := newTestWorkspace(t)
	importRows(t, w,
		callRow("111", "222", "2024-03-01 10:00:00", "30"),
		callRow("111", "222", "2024-03-01 11:00:00", "30"),
		callRow("111", "333", "2024-03-02 09:00:00", "30"),
	)
	ctx := context.Background()

	loose := filter.DefaultSpec()
	strict := filter.DefaultSpec()
	strict.MinCalls = 2

	first := w.SubmitFilter(ctx, loose)
	second := w.SubmitFilter(ctx, strict)
	require.Greater(t, second.Seq, first.Seq)

	r1, err := first.Wait(ctx)
	require.NoError(t, err)
	r2, err := second.Wait(ctx)
	require.NoError(t, err)

	// apply out of order: the newer result lands first
	require.NoError(t, w.ApplyResult(r2))
	err = w.ApplyResult(r1)
	var stale *domain.StaleResultError
	require.ErrorAs(t, err, &stale)
	assert.Equal(t, first.Seq, stale.Seq)
	assert.Equal(t, second.Seq, stale.Latest)

	assert.Same(t, r2.View, w.Current())
	assert.Equal(t, 1, w.Current().Summary().EdgeCount)
	assert.Equal(t, 2, w.Spec().MinCalls)
}

func TestWorkspace_JobSeesGraphAtSubmission(t *testing.T) {
	w := newTestWorkspace(t)
	importRows(t, w, callRow("111", "222", "2024-03-01 10:00:00", "30"))
	ctx := context.Background()

	job := w.SubmitFilter(ctx, w.Spec())
	_, err := w.AddPhone("999", "late")
	require.NoError(t, err)

	r, err := job.Wait(ctx)
	require.NoError(t, err)
	assert.False(t, r.View.HasNode("999"))
}

func TestWorkspace_ManualPositionSurvivesRefreshAndImport(t *testing.T) {
	w := newTestWorkspace(t)
	importRows(t, w, callRow("111", "222", "2024-03-01 10:00:00", "30"))

	pinned := layout.Position{X: 640, Y: 480}
	require.NoError(t, w.Drag("111", pinned))

	importRows(t, w,
		callRow("111", "333", "2024-03-02 10:00:00", "30"),
		callRow("333", "444", "2024-03-02 11:00:00", "30"),
	)

	pl, ok := w.Placement("111")
	require.True(t, ok)
	assert.Equal(t, layout.ManuallyPositioned, pl.State)
	assert.Equal(t, pinned, pl.Position)

	other, ok := w.Placement("444")
	require.True(t, ok)
	assert.Equal(t, layout.AutoPositioned, other.State)
}

func TestWorkspace_HiddenNodeKeepsPosition(t *testing.T) {
	w := newTestWorkspace(t)
	importRows(t, w,
		callRow("111", "222", "2024-03-01 10:00:00", "30"),
		callRow("111", "222", "2024-03-01 11:00:00", "30"),
		callRow("111", "333", "2024-03-02 09:00:00", "30"),
	)
	require.NoError(t, w.Drag("333", layout.Position{X: 1, Y: 2}))

	spec := filter.DefaultSpec()
	spec.MinCalls = 2
	_, err := w.SetFilter(context.Background(), spec)
	require.NoError(t, err)
	assert.False(t, w.Current().HasNode("333"))

	spec.MinCalls = 1
	_, err = w.SetFilter(context.Background(), spec)
	require.NoError(t, err)
	pl, _ := w.Placement("333")
	assert.Equal(t, layout.Position{X: 1, Y: 2}, pl.Position)
}

func TestWorkspace_DragsDuringJobsWin(t *testing.T) {
	w := newTestWorkspace(t)
	var rows []domain.RawRow
	for _, other := range []string{"201", "202", "203", "204", "205", "206"} {
		rows = append(rows, callRow("100", other, "2024-03-01 10:00:00", "30"))
	}
	importRows(t, w, rows...)

	ctx := context.Background()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range 20 {
			_, err := w.Refresh(ctx)
			assert.NoError(t, err)
		}
	}()
	last := layout.Position{}
	go func() {
		defer wg.Done()
		for i := range 200 {
			last = layout.Position{X: float64(i), Y: float64(-i)}
			assert.NoError(t, w.Drag("100", last))
		}
	}()
	wg.Wait()

	_, err := w.Refresh(ctx)
	require.NoError(t, err)

	pl, _ := w.Placement("100")
	assert.Equal(t, layout.ManuallyPositioned, pl.State)
	assert.Equal(t, last, pl.Position)
}

func TestWorkspace_DragUnknownPhone(t *testing.T) {
	w := newTestWorkspace(t)
	err := w.Drag("999", layout.Position{})
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = w.DragBy("999", 1, 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWorkspace_DragByUsesZoom(t *testing.T) {
	w := newTestWorkspace(t)
	_, err := w.AddPhone("111", "")
	require.NoError(t, err)
	_, err = w.Refresh(context.Background())
	require.NoError(t, err)

	before, _ := w.Placement("111")
	w.SetZoom(2)
	after, err := w.DragBy("111", 10, -20)
	require.NoError(t, err)
	assert.InDelta(t, before.Position.X+5, after.X, 1e-9)
	assert.InDelta(t, before.Position.Y-10, after.Y, 1e-9)
}

func TestWorkspace_AddPhoneUsesGrid(t *testing.T) {
	w := newTestWorkspace(t)
	_, err := w.AddPhone("(555) 123-4567", "desk")
	require.NoError(t, err)
	_, err = w.AddPhone("5551234567", "")
	require.ErrorIs(t, err, domain.ErrAlreadyExists)
	_, err = w.AddPhone("abc", "")
	require.Error(t, err)

	pl, ok := w.Placement("5551234567")
	require.True(t, ok)
	assert.Equal(t, layout.GridPosition(0), pl.Position)
	assert.Equal(t, layout.AutoPositioned, pl.State)
}

func TestWorkspace_DeletePhoneCascades(t *testing.T) {
	w := newTestWorkspace(t)
	importRows(t, w,
		callRow("111", "222", "2024-03-01 10:00:00", "30"),
		callRow("111", "333", "2024-03-02 09:00:00", "30"),
	)
	alice, err := w.AddPerson("Alice")
	require.NoError(t, err)
	require.NoError(t, w.AssignPhone(alice.ID, "111"))

	require.NoError(t, w.DeletePhone("111"))
	_, err = w.Refresh(context.Background())
	require.NoError(t, err)

	assert.Empty(t, w.Pairs())
	_, placed := w.Placement("111")
	assert.False(t, placed)
	p, err := w.ResolvePerson("Alice")
	require.NoError(t, err)
	assert.Empty(t, p.Phones)
	assert.ErrorIs(t, w.DeletePhone("111"), domain.ErrNotFound)
}

func TestWorkspace_PersonsDriveCategories(t *testing.T) {
	w := newTestWorkspace(t)
	importRows(t, w, callRow("111", "222", "2024-03-01 10:00:00", "30"))

	bob, err := w.AddPerson("Bob")
	require.NoError(t, err)
	require.ErrorIs(t, w.AssignPhone(bob.ID, "999"), domain.ErrNotFound)
	require.NoError(t, w.AssignPhone(bob.ID, "222"))
	_, err = w.Refresh(context.Background())
	require.NoError(t, err)

	node, ok := w.View().Node("222")
	require.True(t, ok)
	assert.Equal(t, "person-linked", node.Category)
	assert.Equal(t, "Bob", node.Owner)

	info, err := w.PhoneInfo("222")
	require.NoError(t, err)
	require.NotNil(t, info.Owner)
	assert.Equal(t, bob.ID, info.Owner.ID)
	assert.Equal(t, 1, info.Stats.TotalCalls)
}

func TestWorkspace_Notes(t *testing.T) {
	w := newTestWorkspace(t)
	importRows(t, w, callRow("111", "222", "2024-03-01 10:00:00", "30"))
	pair, err := domain.NewPairKey("222", "111")
	require.NoError(t, err)

	require.NoError(t, w.AddNote(pair, "met in person"))
	require.NoError(t, w.SetNote(pair, "brothers"))
	agg, err := w.EdgeStats(pair)
	require.NoError(t, err)
	assert.Equal(t, []string{"brothers"}, agg.Notes)

	require.NoError(t, w.AddNote(pair, ""))
	agg, err = w.EdgeStats(pair)
	require.NoError(t, err)
	assert.Empty(t, agg.Notes)
	assert.Equal(t, 1, agg.CallCount)
}

func TestWorkspace_SnapshotRoundTrip(t *testing.T) {
	w := newTestWorkspace(t)
	importRows(t, w,
		callRow("111", "222", "2024-03-01 10:00:00", "30"),
		callRow("111", "333", "2024-03-02 09:00:00", "30"),
	)
	carol, err := w.AddPerson("Carol")
	require.NoError(t, err)
	require.NoError(t, w.AssignPhone(carol.ID, "333"))
	require.NoError(t, w.SetAlias("111", "hub"))
	require.NoError(t, w.Drag("222", layout.Position{X: 10, Y: 20}))
	w.SetZoom(2.5)
	w.Pan(30, 40)

	snap := w.Snapshot()
	assert.Equal(t, domain.SnapshotVersion, snap.Version)

	restored := newTestWorkspace(t)
	require.NoError(t, restored.Restore(context.Background(), snap))

	assert.Equal(t, w.Totals(), restored.Totals())
	pl, ok := restored.Placement("222")
	require.True(t, ok)
	assert.Equal(t, layout.ManuallyPositioned, pl.State)
	assert.Equal(t, layout.Position{X: 10, Y: 20}, pl.Position)

	vp := restored.Viewport()
	assert.InDelta(t, 2.5, vp.Zoom, 1e-9)
	assert.Equal(t, layout.Position{X: 30, Y: 40}, vp.Pan)

	info, err := restored.PhoneInfo("333")
	require.NoError(t, err)
	require.NotNil(t, info.Owner)
	assert.Equal(t, "Carol", info.Owner.Name)
	hub, err := restored.PhoneInfo("111")
	require.NoError(t, err)
	assert.Equal(t, "hub", hub.Phone.Alias)
	assert.Len(t, restored.View().Nodes, 3)
}

func TestWorkspace_RestoreCorruptKeepsState(t *testing.T) {
	w := newTestWorkspace(t)
	importRows(t, w, callRow("111", "222", "2024-03-01 10:00:00", "30"))

	bad := &domain.Snapshot{
		Version: domain.SnapshotVersion,
		Edges:   []domain.EdgeDoc{{PairKey: "not-a-pair"}},
	}
	err := w.Restore(context.Background(), bad)
	require.ErrorIs(t, err, domain.ErrCorruptSnapshot)
	assert.Equal(t, 2, w.Totals().NodeCount)
	assert.ErrorIs(t, w.Restore(context.Background(), nil), domain.ErrCorruptSnapshot)
}

func TestWorkspace_SetFilterRejectsInvalid(t *testing.T) {
	w := newTestWorkspace(t)
	spec := filter.DefaultSpec()
	spec.MaxNodes = 0
	_, err := w.SetFilter(context.Background(), spec)
	require.Error(t, err)
	assert.Equal(t, filter.DefaultSpec(), w.Spec())
}

func TestWorkspace_ResetLayoutReleasesManual(t *testing.T) {
	w := newTestWorkspace(t)
	importRows(t, w, callRow("111", "222", "2024-03-01 10:00:00", "30"))
	require.NoError(t, w.Drag("111", layout.Position{X: 5000, Y: 5000}))

	moved, err := w.ResetLayout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, moved)

	pl, _ := w.Placement("111")
	assert.Equal(t, layout.AutoPositioned, pl.State)
	assert.NotEqual(t, layout.Position{X: 5000, Y: 5000}, pl.Position)
}
