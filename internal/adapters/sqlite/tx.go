package sqlite

import (
	"database/sql"
	"fmt"

	"cdrlink/internal/domain"
)

// storeTx wraps a write transaction
type storeTx struct {
	tx   *sql.Tx
	done bool
}

func (s *Store) begin() (*storeTx, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &storeTx{tx: tx}, nil
}

// put inserts or replaces a snapshot row
func (t *storeTx) put(name string, snap *domain.Snapshot, body []byte) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO snapshots (name, saved_at, phones, edges, body)
		VALUES (?, ?, ?, ?, ?)
	`, name, snap.SavedAt.UnixMilli(), len(snap.Phones), len(snap.Edges), string(body))
	if err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", name, err)
	}
	return nil
}

// commit commits the transaction
func (t *storeTx) commit() error {
	t.done = true
	return t.tx.Commit()
}

// rollback aborts the transaction unless it was committed
func (t *storeTx) rollback() {
	if !t.done {
		t.tx.Rollback()
	}
}
