package middleware

import (
	"net/http"

	"github.com/aimingmed/sctracker-console/api/responses"
	pkgerrors "github.com/aimingmed/sctracker-console/pkg/errors"
	"github.com/aimingmed/sctracker-console/pkg/logger"
)

// LoginPath is where anonymous sessions are sent.
const LoginPath = "/login"

// RequireSession redirects anonymous workspaces to the login page. Role checks
// stay with the pages, which gate each mutation themselves.
func RequireSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ws := WorkspaceFromContext(r.Context())
			if ws == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "workspace context missing"))
				return
			}
			if !ws.Auth.Snapshot().Authenticated() {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
