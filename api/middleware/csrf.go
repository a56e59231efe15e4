package middleware

import (
	"fmt"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/securecookie"

	"github.com/aimingmed/sctracker-console/api/responses"
	"github.com/aimingmed/sctracker-console/pkg/config"
	pkgerrors "github.com/aimingmed/sctracker-console/pkg/errors"
	"github.com/aimingmed/sctracker-console/pkg/logger"
)

const (
	csrfCookieName = "sct_csrf"
	// CSRFFieldName is the hidden input every form posts.
	CSRFFieldName = "csrf_token"
	csrfKeyLength = 32
)

// CSRF protects every unsafe method with a token bound to a cookie. Without a
// configured key a random one is generated, which invalidates open forms on restart.
func CSRF(cfg config.ConsoleConfig, logg *logger.Logger) (func(http.Handler) http.Handler, error) {
	key := []byte(cfg.CSRFKey)
	if len(key) < csrfKeyLength {
		if len(key) > 0 {
			return nil, fmt.Errorf("csrf key must be at least %d bytes", csrfKeyLength)
		}
		key = securecookie.GenerateRandomKey(csrfKeyLength)
		if key == nil {
			return nil, fmt.Errorf("generate csrf key")
		}
	}
	key = key[:csrfKeyLength]

	protect := csrf.Protect(key,
		csrf.Secure(cfg.SecureCookie),
		csrf.HttpOnly(true),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.CookieName(csrfCookieName),
		csrf.FieldName(CSRFFieldName),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithField(ctx, "reason", fmt.Sprint(csrf.FailureReason(r)))
				logg.Warn(ctx, "csrf.rejected")
			}
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "form expired, reload the page and try again"))
		})),
	)

	return func(next http.Handler) http.Handler {
		protected := protect(next)
		if cfg.SecureCookie {
			return protected
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			protected.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}, nil
}
