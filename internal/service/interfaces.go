// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/worldsync/internal/fingerprint"
	"github.com/MKhiriev/worldsync/internal/store"
	"github.com/MKhiriev/worldsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// MirrorView is the read-only mirrored set handed to renderers and the UI.
// Rows appear only after the remote store confirmed them.
type MirrorView interface {
	// Objects returns a copy of the mirrored set sorted by id.
	Objects() []models.WorldObject

	// Lookup returns a copy of the row with id.
	Lookup(id string) (models.WorldObject, bool)

	// Len returns the number of mirrored rows.
	Len() int

	// Version grows with every change applied to the mirror.
	Version() uint64

	// Fingerprint hashes the current mirrored set.
	Fingerprint() fingerprint.Hash
}

// Observer receives the notifications the UI and renderers react to. Calls
// may come from the detector, the writer, and the sweep goroutines and must
// not block.
type Observer interface {
	// StateChanged delivers every SyncState change.
	StateChanged(state models.SyncState)

	// MirrorChanged delivers every change applied to the mirror.
	MirrorChanged(change models.MirrorChange)

	// Warning delivers a non-fatal, user-visible notice.
	Warning(warning models.Warning)
}

// Editor is the edit request boundary. Every request is gated by the sync
// state and validated before a pending op is registered and the mutation is
// sent. A returned op is only pending: the change becomes visible in the
// mirror when the remote store confirms it.
//
// Rejections are returned as *models.EditRejection.
type Editor interface {
	// InsertObject creates a new object with a generated id.
	InsertObject(ctx context.Context, assetPath string, transform models.Transform, shape *models.CollisionShape) (models.PendingOp, error)

	// SetTransform replaces translation, rotation and scale of an object.
	SetTransform(ctx context.Context, id string, transform models.Transform) (models.PendingOp, error)

	// Move replaces only the translation of an object.
	Move(ctx context.Context, id string, translation models.Vec3) (models.PendingOp, error)

	// Rotate replaces only the rotation of an object.
	Rotate(ctx context.Context, id string, rotation models.Quat) (models.PendingOp, error)

	// Scale replaces only the scale of an object.
	Scale(ctx context.Context, id string, scale models.Vec3) (models.PendingOp, error)

	// Delete removes an object.
	Delete(ctx context.Context, id string) (models.PendingOp, error)

	// SetCollision replaces the collision shape of an object. nil clears it.
	SetCollision(ctx context.Context, id string, shape *models.CollisionShape) (models.PendingOp, error)
}

// Resolver runs the explicit conflict resolution actions. Both are mutually
// exclusive and journaled.
type Resolver interface {
	// AcceptSnapshot pushes the snapshot contents to the remote store with
	// one bulk replace and returns to InSync once every row is confirmed.
	AcceptSnapshot(ctx context.Context) (models.ResolutionRecord, error)

	// AcceptRemote overwrites the snapshot with the mirrored remote set and
	// returns to InSync.
	AcceptRemote(ctx context.Context) (models.ResolutionRecord, error)
}

// SnapshotWriter is the part of store.DebouncedWriter the service drives.
type SnapshotWriter interface {
	Request(p store.Payload)
	WriteNow(ctx context.Context, p store.Payload) (models.Snapshot, error)
}
