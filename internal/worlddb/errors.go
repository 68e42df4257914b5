package worlddb

import "errors"

var (
	// ErrObjectNotFound is returned by reducers addressing an id that has no row.
	ErrObjectNotFound = errors.New("world object not found")

	// ErrDuplicateID is returned when an insert reuses an existing id.
	ErrDuplicateID = errors.New("world object id already exists")

	// ErrInvalidObject wraps validation failures of reducer arguments.
	ErrInvalidObject = errors.New("invalid world object")

	// ErrEventsExpired is returned when a subscriber asks for events that are
	// no longer retained or that the table never issued. The subscriber must
	// re-read the full row set.
	ErrEventsExpired = errors.New("event cursor expired")
)
