package models

import "time"

// ResolutionAction names one of the two irreversible recovery actions.
type ResolutionAction string

const (
	// ActionAcceptSnapshot pushes the snapshot over the remote store.
	ActionAcceptSnapshot ResolutionAction = "accept_snapshot"
	// ActionAcceptRemote overwrites the snapshot with the mirrored set.
	ActionAcceptRemote ResolutionAction = "accept_remote"
)

// ResolutionOutcome is the final result of a resolution action.
type ResolutionOutcome string

const (
	OutcomeSucceeded ResolutionOutcome = "succeeded"
	OutcomeFailed    ResolutionOutcome = "failed"
)

// ResolutionRecord is one audited resolution attempt.
type ResolutionRecord struct {
	ID                  string            `json:"id"`
	Action              ResolutionAction  `json:"action"`
	Outcome             ResolutionOutcome `json:"outcome"`
	StartedAt           time.Time         `json:"started_at"`
	FinishedAt          time.Time         `json:"finished_at"`
	SnapshotFingerprint string            `json:"snapshot_fingerprint"`
	RemoteFingerprint   string            `json:"remote_fingerprint"`
	ObjectCount         int               `json:"object_count"`
	Error               string            `json:"error,omitempty"`
}
