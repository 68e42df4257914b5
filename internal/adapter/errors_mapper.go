package adapter

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/worldsync/internal/worlddb"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, body)
	case http.StatusGone:
		return fmt.Errorf("%w: %s", ErrEventsExpired, body)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: %s", ErrRemoteUnavailable, body)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, body)
	default:
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
	}
}

// mapWorldError translates in-process reducer errors to the transport
// sentinels so both adapters fail the same way.
func mapWorldError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, worlddb.ErrObjectNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, worlddb.ErrDuplicateID):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, worlddb.ErrInvalidObject):
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	case errors.Is(err, worlddb.ErrEventsExpired):
		return fmt.Errorf("%w: %w", ErrEventsExpired, err)
	default:
		return err
	}
}
