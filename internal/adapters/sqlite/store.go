package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cdrlink/internal/domain"
	"cdrlink/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Store implements ports.SnapshotStore using SQLite. Each snapshot is one row
// holding the JSON document plus a few columns for listing.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Ensure Store implements SnapshotStore
var _ ports.SnapshotStore = (*Store)(nil)

// NewStore creates a new SQLite snapshot store
func NewStore() *Store {
	return &Store{}
}

// Open creates or opens the database file at path
func (s *Store) Open(path string) error {
	// Expand ~ in path
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	s.dbPath = path

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS snapshots (
			name TEXT PRIMARY KEY,
			saved_at INTEGER NOT NULL,
			phones INTEGER NOT NULL,
			edges INTEGER NOT NULL,
			body TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_snapshots_saved_at ON snapshots(saved_at);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if err := s.checkVersion(); err != nil {
		db.Close()
		return err
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file in use
func (s *Store) Path() string { return s.dbPath }

// checkVersion stamps a fresh database and refuses one written by a newer schema
func (s *Store) checkVersion() error {
	var version string
	err := s.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = s.db.Exec("INSERT INTO meta (key, value) VALUES ('schema_version', ?)", schemaVersion)
		return err
	case err != nil:
		return fmt.Errorf("failed to read metadata: %w", err)
	case version != schemaVersion:
		return fmt.Errorf("unsupported database schema version %s", version)
	}
	return nil
}

// Save writes the snapshot, replacing any with the same name. The write is a
// single transaction; a failure leaves the previous snapshot in place.
func (s *Store) Save(name string, snap *domain.Snapshot) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tx, err := s.begin()
	if err != nil {
		return err
	}
	defer tx.rollback()

	if err := tx.put(name, snap, body); err != nil {
		return err
	}
	return tx.commit()
}

// Load reads a snapshot by name
func (s *Store) Load(name string) (*domain.Snapshot, error) {
	var body string
	err := s.db.QueryRow(`SELECT body FROM snapshots WHERE name = ?`, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Kind: "snapshot", ID: name}
	}
	if err != nil {
		return nil, err
	}

	var snap domain.Snapshot
	if err := json.Unmarshal([]byte(body), &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptSnapshot, err)
	}
	return &snap, nil
}

// List returns every snapshot, oldest first
func (s *Store) List() ([]domain.SnapshotInfo, error) {
	rows, err := s.db.Query(`
		SELECT name, saved_at, phones, edges
		FROM snapshots ORDER BY saved_at, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []domain.SnapshotInfo
	for rows.Next() {
		var info domain.SnapshotInfo
		var savedAt int64
		if err := rows.Scan(&info.Name, &savedAt, &info.Phones, &info.Edges); err != nil {
			return nil, err
		}
		info.SavedAt = time.UnixMilli(savedAt).UTC()
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Delete removes a snapshot by name
func (s *Store) Delete(name string) error {
	res, err := s.db.Exec(`DELETE FROM snapshots WHERE name = ?`, name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &domain.NotFoundError{Kind: "snapshot", ID: name}
	}
	return nil
}
