// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/worldsync/internal/adapter"
	"github.com/MKhiriev/worldsync/internal/service"
)

// humanizeError turns resolution and transport failures into a line fit for
// the error overlay.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, service.ErrResolutionInProgress):
		return "A resolution is already running"
	case errors.Is(err, service.ErrNotSettled):
		return "Still syncing with the remote store, try again in a moment"
	case errors.Is(err, service.ErrNoUsableSnapshot):
		return "No usable snapshot on disk, accept remote instead"
	case errors.Is(err, service.ErrFingerprintMismatch):
		return "The remote world still differs from the snapshot after the replace"
	case errors.Is(err, adapter.ErrRemoteUnavailable):
		return "Remote store unavailable"
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Network unavailable or remote store down"
	}

	return err.Error()
}
