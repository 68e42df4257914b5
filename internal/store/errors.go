package store

import "errors"

// Snapshot file errors. Callers should use [errors.Is] to match against these
// values.
var (
	// ErrSnapshotNotFound is returned by Read when no primary snapshot file
	// exists yet, e.g. on a fresh install.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrCorruptSnapshot is returned by Read when the primary file exists but
	// cannot be parsed, holds duplicate ids, or carries an unsupported
	// schema version. The file has already been moved aside when this error
	// is returned.
	ErrCorruptSnapshot = errors.New("corrupt snapshot")

	// ErrSnapshotWrite is returned when writing the snapshot failed after
	// every attempt. The previous primary file is left untouched.
	ErrSnapshotWrite = errors.New("snapshot write failed")

	// ErrWriterClosed is returned by DebouncedWriter.WriteNow after the
	// writer loop has stopped.
	ErrWriterClosed = errors.New("snapshot writer closed")
)

// Low-level database operation errors returned (or wrapped) by the
// resolution journal.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query with the
	// query builder fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when an INSERT or DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRows is returned when scanning a result row fails.
	ErrScanningRows = errors.New("failed to scan journal rows")
)
