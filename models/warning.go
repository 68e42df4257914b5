package models

import "time"

// WarningKind classifies non-fatal conditions surfaced to the user.
type WarningKind string

const (
	WarningPendingTimeout   WarningKind = "pending_timeout"
	WarningSnapshotWrite    WarningKind = "snapshot_write_failed"
	WarningCorruptSnapshot  WarningKind = "corrupt_snapshot"
	WarningConnectivity     WarningKind = "connectivity"
	WarningResolutionFailed WarningKind = "resolution_failed"
)

// Warning is a user-visible, recoverable notice.
type Warning struct {
	Kind     WarningKind
	Message  string
	TargetID string
	At       time.Time
}
