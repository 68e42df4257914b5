// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// RejectionCode identifies why an edit request was refused before any
// mutation was sent to the remote store.
type RejectionCode string

const (
	// RejectBlockedOutOfSync is returned while the snapshot and the remote
	// set disagree.
	RejectBlockedOutOfSync RejectionCode = "BLOCKED_OUT_OF_SYNC"
	// RejectBlockedSyncing is returned while startup or a re-baseline has
	// not settled yet.
	RejectBlockedSyncing RejectionCode = "BLOCKED_SYNCING"
	// RejectBlockedResolving is returned while a resolution action runs.
	RejectBlockedResolving RejectionCode = "BLOCKED_RESOLVING"
	// RejectInvalidAssetPath is returned for absolute, empty, or escaping
	// asset paths.
	RejectInvalidAssetPath RejectionCode = "INVALID_ASSET_PATH"
	// RejectInvalidTransform is returned for non-finite or degenerate
	// transforms.
	RejectInvalidTransform RejectionCode = "INVALID_TRANSFORM"
	// RejectInvalidCollisionShape is returned for shapes missing the fields
	// of their kind or carrying non-positive dimensions.
	RejectInvalidCollisionShape RejectionCode = "INVALID_COLLISION_SHAPE"
	// RejectObjectNotFound is returned when the target id is not mirrored.
	RejectObjectNotFound RejectionCode = "OBJECT_NOT_FOUND"
	// RejectDuplicateID is returned when inserting an id that already exists.
	RejectDuplicateID RejectionCode = "DUPLICATE_ID"
)

// EditRejection is the error returned by the edit boundary.
type EditRejection struct {
	Code   RejectionCode
	Op     OpKind
	Reason string
}

func (e *EditRejection) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s rejected: %s", e.Op, e.Code)
	}
	return fmt.Sprintf("%s rejected: %s: %s", e.Op, e.Code, e.Reason)
}

// Is matches any *EditRejection carrying the same code, so callers can write
// errors.Is(err, &models.EditRejection{Code: models.RejectBlockedOutOfSync}).
func (e *EditRejection) Is(target error) bool {
	t, ok := target.(*EditRejection)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Reject builds an *EditRejection.
func Reject(code RejectionCode, op OpKind, reason string) *EditRejection {
	return &EditRejection{Code: code, Op: op, Reason: reason}
}
