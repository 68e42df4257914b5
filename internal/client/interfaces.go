// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/worldsync/internal/service"
	"github.com/MKhiriev/worldsync/models"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until ctx is done or the
	// user quits.
	Run(ctx context.Context) error
}

// StatusSource is the part of the sync session the status router serves:
// its state for reads and its editor for edit requests.
type StatusSource interface {
	State() models.SyncState
	Pending() []models.PendingOp
	RecentResolutions(ctx context.Context, limit uint64) ([]models.ResolutionRecord, error)
	Editor() service.Editor
}
