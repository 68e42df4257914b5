package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/worldsync/internal/adapter"
	"github.com/MKhiriev/worldsync/internal/logger"
	"github.com/MKhiriev/worldsync/internal/utils"
)

// auth verifies the editor identity token on reducer calls.
//
// When the gateway has no identity key every request passes without an
// identity. Otherwise the "Authorization: Bearer <token>" header must carry
// an HS256 token issued by [adapter.IdentityIssuer]; its subject, the editor
// id, is stored in the context with [utils.WithEditorID]. Rejections answer
// 401.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.identityKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		editorID, err := h.identify(r.Header.Get("Authorization"))
		if err != nil {
			log.Err(err).Msg("reducer call without valid identity")
			utils.WriteError(w, err.Error(), http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithEditorID(r.Context(), editorID)))
	})
}

func (h *Handler) identify(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrEmptyAuthorizationHeader
	}

	token, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		return "", errors.Join(ErrInvalidIdentity, err)
	}

	editorID, err := utils.ValidateIdentityToken(token, h.identityKey, adapter.IdentityIssuer)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidIdentity, err)
	}
	return editorID, nil
}
