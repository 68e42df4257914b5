// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of the gateway transport. Callers can match against them
// with [errors.Is].
var (
	// ErrUnknownModule is returned when the {module} path segment names a
	// database module this gateway does not serve.
	ErrUnknownModule = errors.New("unknown module")

	// ErrInvalidCursor is returned when the "after" query parameter is not an
	// unsigned integer.
	ErrInvalidCursor = errors.New("invalid `after` cursor")

	// ErrInvalidWait is returned when the "wait" query parameter is not a
	// non-negative duration.
	ErrInvalidWait = errors.New("invalid `wait` duration")

	// ErrInvalidBody is returned when a reducer body cannot be decoded.
	ErrInvalidBody = errors.New("invalid request body")

	// ErrEmptyAuthorizationHeader is returned by the auth middleware when an
	// identity is required but the request carries no "Authorization" header.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidIdentity is returned when the identity token is malformed,
	// expired or signed with another key.
	ErrInvalidIdentity = errors.New("invalid editor identity")
)
