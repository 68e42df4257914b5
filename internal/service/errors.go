package service

import "errors"

var (
	// ErrResolutionInProgress is returned when a resolution action is invoked
	// while another one runs.
	ErrResolutionInProgress = errors.New("resolution already in progress")

	// ErrResolutionFailed wraps every failed resolution attempt. The state
	// stays OutOfSync and the action may be retried.
	ErrResolutionFailed = errors.New("resolution failed")

	// ErrNotSettled is returned for resolution requests before the first
	// subscription has been applied.
	ErrNotSettled = errors.New("sync state not settled yet")

	// ErrFingerprintMismatch is returned when the remote set does not match
	// the expected baseline after a resolution.
	ErrFingerprintMismatch = errors.New("fingerprint mismatch")

	// ErrNoUsableSnapshot is returned by accept_snapshot when the snapshot is
	// missing or corrupt.
	ErrNoUsableSnapshot = errors.New("no usable snapshot")

	// ErrBatchTimedOut fails a batch when one of its members timed out.
	ErrBatchTimedOut = errors.New("batch member timed out")

	// ErrBatchSuperseded fails a batch when one of its members was replaced.
	ErrBatchSuperseded = errors.New("batch member superseded")

	// ErrBatchCancelled fails a batch whose members were withdrawn.
	ErrBatchCancelled = errors.New("batch cancelled")
)
