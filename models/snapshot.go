package models

import "time"

// SnapshotSchemaVersion is the version written into every snapshot file.
const SnapshotSchemaVersion uint32 = 1

// Snapshot is the durable local recovery copy of the committed remote set.
type Snapshot struct {
	SchemaVersion uint32        `json:"schema_version"`
	SavedAt       *time.Time    `json:"saved_at,omitempty"`
	WorldObjects  []WorldObject `json:"world_objects"`
}

// WriteResult reports the completion of one snapshot write.
type WriteResult struct {
	// Objects is the set that was persisted.
	Objects []WorldObject
	// Fingerprint is the hex fingerprint of Objects.
	Fingerprint string
	// Attempts is the number of write attempts made.
	Attempts int
	Err      error
}
