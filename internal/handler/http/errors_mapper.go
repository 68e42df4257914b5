package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/worldsync/internal/validators"
	"github.com/MKhiriev/worldsync/internal/worlddb"
)

// errorStatuses is scanned in order, so table errors win over the validation
// errors they may wrap.
var errorStatuses = []struct {
	err    error
	status int
}{
	{worlddb.ErrObjectNotFound, http.StatusNotFound},
	{worlddb.ErrDuplicateID, http.StatusConflict},
	{worlddb.ErrEventsExpired, http.StatusGone},
	{worlddb.ErrInvalidObject, http.StatusBadRequest},

	{validators.ErrInvalidID, http.StatusBadRequest},
	{validators.ErrDuplicateID, http.StatusBadRequest},
	{validators.ErrInvalidAssetPath, http.StatusBadRequest},
	{validators.ErrInvalidTransform, http.StatusBadRequest},
	{validators.ErrInvalidCollisionShape, http.StatusBadRequest},

	{ErrUnknownModule, http.StatusNotFound},
	{ErrInvalidCursor, http.StatusBadRequest},
	{ErrInvalidWait, http.StatusBadRequest},
	{ErrInvalidBody, http.StatusBadRequest},
	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized},
	{ErrInvalidIdentity, http.StatusUnauthorized},

	{context.DeadlineExceeded, http.StatusGatewayTimeout},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}
