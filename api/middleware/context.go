package middleware

import (
	"context"

	"github.com/aimingmed/sctracker-console/internal/workspace"
)

type contextKey string

const (
	ctxRequestID contextKey = "request_id"
	ctxWorkspace contextKey = "workspace"
)

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRequestID).(string); ok {
		return v
	}
	return ""
}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxRequestID, id)
}

// WorkspaceFromContext returns the workspace bound by the Workspace middleware.
func WorkspaceFromContext(ctx context.Context) *workspace.Workspace {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxWorkspace).(*workspace.Workspace); ok {
		return v
	}
	return nil
}

// WithWorkspace injects a workspace into the context for downstream handlers.
func WithWorkspace(ctx context.Context, ws *workspace.Workspace) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxWorkspace, ws)
}
