// Package utils provides small helpers shared by the worldsync client and the
// development gateway: context keys, JSON response writing, the resty client
// constructor, editor identity tokens and id generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// EditorIDCtxKey holds the editor identity extracted from a verified token.
var EditorIDCtxKey = contextKey("editorID")

// WithEditorID returns a copy of ctx carrying editorID.
func WithEditorID(ctx context.Context, editorID string) context.Context {
	return context.WithValue(ctx, EditorIDCtxKey, editorID)
}

// GetEditorIDFromContext returns the editor identity stored by the auth
// middleware. ok is false when the value is missing, empty or of another type.
func GetEditorIDFromContext(ctx context.Context) (string, bool) {
	editorID, ok := ctx.Value(EditorIDCtxKey).(string)
	return editorID, ok && editorID != ""
}
