package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidAuthorizationHeader is returned when a header is not of the form
// "Bearer <token>".
var ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")

// GenerateIdentityToken signs an HS256 token that identifies one editor
// instance to the remote store. The editor id travels in the subject claim.
//
// All parameters are required.
//
// Example usage:
//
//	token, err := utils.GenerateIdentityToken("worldsync", "editor-1", time.Hour, "secret")
func GenerateIdentityToken(issuer, editorID string, tokenDuration time.Duration, signKey string) (string, error) {
	if issuer == "" || editorID == "" || tokenDuration <= 0 || signKey == "" {
		return "", errors.New("invalid params for generating identity token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   editorID,
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing identity token: %w", err)
	}
	return signed, nil
}

// ValidateIdentityToken verifies the signature, issuer and expiry of
// tokenString and returns the editor id from its subject claim.
func ValidateIdentityToken(tokenString, signKey, issuer string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, jwt.WithIssuer(issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("error occurred validating identity token: %w", err)
	}

	editorID, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if editorID == "" {
		return "", errors.New("empty subject error")
	}
	return editorID, nil
}

// ParseBearerToken extracts the token from an Authorization header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}
	return parts[1], nil
}
