// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter connects the sync agent to the authoritative remote store.
//
// [RemoteStore] decouples the service layer from the transport. Two
// implementations ship: an HTTP long-poll client for the development gateway
// ([NewHTTPRemoteStore]) and an in-process adapter over a [worlddb.World]
// ([NewMemoryRemoteStore]). Both deliver the same ordered message stream.
//
// Transport failures are mapped to the sentinel errors in errors.go so that
// callers can use [errors.Is] regardless of the transport.
package adapter

import (
	"context"

	"github.com/MKhiriev/worldsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_store_mock.go -package=mock

// RemoteStore is the authoritative world-object table as seen by one editor.
//
// Mutation calls only submit a request. A nil error means the request was
// accepted for delivery, not that it committed: confirmation arrives solely as
// row events on the subscription stream.
type RemoteStore interface {
	// Subscribe starts the subscription stream. The first message after every
	// (re)connect is MessageInitialRows carrying the full table; row events
	// follow in commit order. MessageDisconnected is delivered once per outage
	// and the adapter keeps reconnecting until ctx is done, when the channel
	// is closed.
	Subscribe(ctx context.Context) (<-chan models.RemoteMessage, error)

	// Insert submits a new row.
	Insert(ctx context.Context, obj models.WorldObject) error

	// SetTransform submits a transform replacement for an existing row.
	SetTransform(ctx context.Context, id string, transform models.Transform) error

	// Delete submits the removal of an existing row.
	Delete(ctx context.Context, id string) error

	// SetCollision submits a collision shape replacement. nil clears it.
	SetCollision(ctx context.Context, id string, shape *models.CollisionShape) error

	// ReplaceAll submits a bulk replacement that makes the table equal to
	// objects. Every given row is echoed as an insert or update event and
	// every other row as a delete event.
	ReplaceAll(ctx context.Context, objects []models.WorldObject) error
}
