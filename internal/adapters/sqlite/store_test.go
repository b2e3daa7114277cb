package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cdrlink/internal/domain"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	require.NoError(t, s.Open(filepath.Join(t.TempDir(), "nested", "workspace.db")))
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleSnapshot(t *testing.T, savedAt time.Time) *domain.Snapshot {
	t.Helper()
	g := domain.NewGraph()
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, g.RecordCall("111", "222", domain.Call{Start: start, Duration: time.Minute, HasDuration: true}))
	require.NoError(t, g.AddManualNote("222", "333", "same desk", start))
	reg := domain.NewRegistry()
	p, err := reg.AddPerson("Erin")
	require.NoError(t, err)
	require.NoError(t, reg.AssignPhone(p.ID, "111"))

	snap := domain.EncodeGraph(g, reg)
	snap.SavedAt = savedAt
	snap.Phones[0].Position = &domain.PositionDoc{X: 1, Y: 2}
	snap.Phones[0].LayoutState = "manual"
	snap.ViewState = domain.ViewStateDoc{Zoom: 1.5, PanX: 10}
	return &snap
}

func TestStore_SaveLoad(t *testing.T) {
	s := openStore(t)
	saved := sampleSnapshot(t, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))

	require.NoError(t, s.Save("case", saved))
	loaded, err := s.Load("case")
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)

	g, reg, err := domain.DecodeGraph(*loaded)
	require.NoError(t, err)
	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 1, reg.Len())
}

func TestStore_SaveReplaces(t *testing.T) {
	s := openStore(t)
	first := sampleSnapshot(t, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, s.Save("case", first))

	second := sampleSnapshot(t, time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC))
	second.Edges = second.Edges[:1]
	require.NoError(t, s.Save("case", second))

	infos, err := s.List()
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, 1, infos[0].Edges)
	assert.True(t, infos[0].SavedAt.Equal(second.SavedAt))
}

func TestStore_ListOrder(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Save("later", sampleSnapshot(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, s.Save("earlier", sampleSnapshot(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))))

	infos, err := s.List()
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "earlier", infos[0].Name)
	assert.Equal(t, 3, infos[0].Phones)
}

func TestStore_MissingAndDelete(t *testing.T) {
	s := openStore(t)

	_, err := s.Load("nope")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.ErrorIs(t, s.Delete("nope"), domain.ErrNotFound)

	require.NoError(t, s.Save("case", sampleSnapshot(t, time.Now())))
	require.NoError(t, s.Delete("case"))
	_, err = s.Load("case")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_CorruptBody(t *testing.T) {
	s := openStore(t)
	_, err := s.db.Exec(`INSERT INTO snapshots (name, saved_at, phones, edges, body) VALUES ('bad', 0, 0, 0, '{not json')`)
	require.NoError(t, err)

	_, err = s.Load("bad")
	require.ErrorIs(t, err, domain.ErrCorruptSnapshot)
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workspace.db")
	s := NewStore()
	require.NoError(t, s.Open(path))
	require.NoError(t, s.Save("case", sampleSnapshot(t, time.Now())))
	require.NoError(t, s.Close())

	again := NewStore()
	require.NoError(t, again.Open(path))
	defer again.Close()
	infos, err := again.List()
	require.NoError(t, err)
	assert.Len(t, infos, 1)
}

func TestStore_UsesWriteAheadLog(t *testing.T) {
	s := openStore(t)

	var mode string
	require.NoError(t, s.db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}
