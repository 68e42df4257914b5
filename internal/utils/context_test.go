package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextKeyString(t *testing.T) {
	assert.Equal(t, "editorID", EditorIDCtxKey.String())
}

func TestGetEditorIDFromContext(t *testing.T) {
	tests := []struct {
		name   string
		ctx    context.Context
		want   string
		wantOK bool
	}{
		{name: "set", ctx: WithEditorID(context.Background(), "editor-1"), want: "editor-1", wantOK: true},
		{name: "missing", ctx: context.Background()},
		{name: "empty", ctx: WithEditorID(context.Background(), "")},
		{name: "wrong type", ctx: context.WithValue(context.Background(), EditorIDCtxKey, 42)},
		{name: "plain string key", ctx: context.WithValue(context.Background(), "editorID", "editor-1")}, //nolint:staticcheck
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := GetEditorIDFromContext(tt.ctx)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
