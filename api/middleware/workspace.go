package middleware

import (
	"context"
	"net/http"

	"github.com/aimingmed/sctracker-console/api/responses"
	"github.com/aimingmed/sctracker-console/internal/workspace"
	"github.com/aimingmed/sctracker-console/pkg/config"
	pkgerrors "github.com/aimingmed/sctracker-console/pkg/errors"
	"github.com/aimingmed/sctracker-console/pkg/logger"
)

type workspaceAcquirer interface {
	Acquire(ctx context.Context, id string) (*workspace.Workspace, error)
}

// Workspace binds the browser's workspace to the request and holds its lock
// until the handler returns, so one session handles one event at a time.
func Workspace(registry workspaceAcquirer, cfg config.ConsoleConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var current string
			if cookie, err := r.Cookie(cfg.CookieName); err == nil {
				current = cookie.Value
			}

			ws, err := registry.Acquire(r.Context(), current)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "open workspace"))
				return
			}
			if ws.ID != current {
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    ws.ID,
					Path:     "/",
					HttpOnly: true,
					Secure:   cfg.SecureCookie,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ws.Lock()
			defer ws.Unlock()

			ctx := WithWorkspace(r.Context(), ws)
			if logg != nil {
				ctx = logg.WithWorkspaceID(ctx, ws.ID)
				if name := ws.Auth.Username(); name != "" {
					ctx = logg.WithUsername(ctx, name)
				}
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
