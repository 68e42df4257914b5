package adapter

import "errors"

var (
	// ErrRemoteUnavailable is returned when the remote store cannot be reached.
	ErrRemoteUnavailable = errors.New("remote store unavailable")

	// ErrBadRequest is returned when the remote store rejects the arguments.
	ErrBadRequest = errors.New("bad request")

	// ErrUnauthorized is returned when the editor identity is missing or invalid.
	ErrUnauthorized = errors.New("editor unauthorized")

	// ErrNotFound is returned when a reducer addresses an unknown row.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when an insert reuses an existing id.
	ErrConflict = errors.New("conflict")

	// ErrEventsExpired is returned when the event cursor is no longer served
	// and the subscription must re-read the full table.
	ErrEventsExpired = errors.New("event cursor expired")

	// ErrInternalServerError is returned for 5xx responses.
	ErrInternalServerError = errors.New("internal server error")
)
