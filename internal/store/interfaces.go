// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/worldsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// SnapshotStore is the sole writer of the local snapshot file.
type SnapshotStore interface {
	// Write canonicalizes objects and atomically replaces the primary file.
	// It returns the persisted snapshot.
	Write(ctx context.Context, objects []models.WorldObject) (models.Snapshot, error)

	// Read parses the primary file. It returns ErrSnapshotNotFound when the
	// file is absent and ErrCorruptSnapshot when it cannot be used.
	Read(ctx context.Context) (models.Snapshot, error)

	// Path returns the location of the primary file.
	Path() string
}

// ResolutionJournal is the audit log of resolution attempts.
type ResolutionJournal interface {
	Record(ctx context.Context, record models.ResolutionRecord) error
	Recent(ctx context.Context, limit uint64) ([]models.ResolutionRecord, error)
}
