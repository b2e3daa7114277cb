package ports

import "cdrlink/internal/domain"

// SnapshotStore persists named workspace snapshots
type SnapshotStore interface {
	// Lifecycle
	Open(path string) error
	Close() error

	// Snapshots are replaced atomically; a failed Save leaves the previous one intact
	Save(name string, snap *domain.Snapshot) error
	Load(name string) (*domain.Snapshot, error)
	List() ([]domain.SnapshotInfo, error)
	Delete(name string) error
}
