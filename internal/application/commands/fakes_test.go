package commands

import (
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"cdrlink/internal/application"
	"cdrlink/internal/domain"
)

type fakeReader struct {
	columns []string
	rows    []domain.RawRow
	err     error
}

func (r *fakeReader) ReadRows(path string) ([]string, []domain.RawRow, error) {
	return r.columns, r.rows, r.err
}

type fakeWriter struct {
	path    string
	columns []string
	rows    []domain.RawRow
}

func (w *fakeWriter) WriteRows(path string, columns []string, rows []domain.RawRow) error {
	w.path, w.columns, w.rows = path, columns, rows
	return nil
}

type memStore struct {
	mu    sync.Mutex
	snaps map[string]domain.Snapshot
}

func newMemStore() *memStore { return &memStore{snaps: map[string]domain.Snapshot{}} }

func (s *memStore) Open(string) error { return nil }
func (s *memStore) Close() error      { return nil }

func (s *memStore) Save(name string, snap *domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[name] = *snap
	return nil
}

func (s *memStore) Load(name string) (*domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.snaps[name]
	if !ok {
		return nil, &domain.NotFoundError{Kind: "snapshot", ID: name}
	}
	return &snap, nil
}

func (s *memStore) List() ([]domain.SnapshotInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.SnapshotInfo
	for name, snap := range s.snaps {
		out = append(out, domain.SnapshotInfo{Name: name, SavedAt: snap.SavedAt, Phones: len(snap.Phones), Edges: len(snap.Edges)})
	}
	slices.SortFunc(out, func(a, b domain.SnapshotInfo) int { return a.SavedAt.Compare(b.SavedAt) })
	return out, nil
}

func (s *memStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.snaps[name]; !ok {
		return &domain.NotFoundError{Kind: "snapshot", ID: name}
	}
	delete(s.snaps, name)
	return nil
}

type textExporter struct{}

func (textExporter) Extension() string { return ".txt" }

func (textExporter) Export(w io.Writer, title string, view domain.ViewModel, mode domain.PageMode) error {
	_, err := fmt.Fprintf(w, "%s %s %d %d", title, mode, len(view.Nodes), len(view.Edges))
	return err
}

var oldColumns = []string{"caller", "receiver", "timestamp", "duration"}

func newWorkspace() *application.Workspace {
	opts := application.DefaultOptions()
	opts.Location = time.UTC
	opts.Clock = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return application.NewWorkspace(opts, nil)
}

func seededReader() *fakeReader {
	return &fakeReader{
		columns: oldColumns,
		rows: []domain.RawRow{
			{"caller": "111", "receiver": "222", "timestamp": "2024-03-01 10:00:00", "duration": "30"},
			{"caller": "222", "receiver": "111", "timestamp": "2024-03-02 10:00:00", "duration": "90"},
			{"caller": "111", "receiver": "333", "timestamp": "2024-03-03 10:00:00", "duration": "60"},
		},
	}
}
