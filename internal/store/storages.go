package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/worldsync/internal/config"
	"github.com/MKhiriev/worldsync/internal/logger"
)

// ClientStorages groups the persistence owned by the sync client: the
// snapshot file and the resolution journal.
type ClientStorages struct {
	// Snapshots is the sole writer of the snapshot file.
	Snapshots *FileSnapshotStore

	// Journal records every resolution attempt.
	Journal ResolutionJournal

	db *DB
}

// NewClientStorages opens the journal database, applies migrations and
// prepares the snapshot file store.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Snapshots: NewFileSnapshotStore(cfg.Snapshot.Path, logger, WithBackup(cfg.Snapshot.KeepBackup)),
		Journal:   NewResolutionJournal(db, logger),
		db:        db,
	}, nil
}

// Close releases the journal database.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
