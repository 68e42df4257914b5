package store

import (
	"database/sql"

	"github.com/MKhiriev/worldsync/internal/logger"
	"github.com/MKhiriev/worldsync/migrations"
)

// DB wraps the journal database connection.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate applies the embedded journal schema.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
