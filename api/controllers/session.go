package controllers

import (
	"net/http"

	"github.com/aimingmed/sctracker-console/api/middleware"
	"github.com/aimingmed/sctracker-console/api/validators"
	"github.com/aimingmed/sctracker-console/api/views"
	"github.com/aimingmed/sctracker-console/internal/forms"
	pkgerrors "github.com/aimingmed/sctracker-console/pkg/errors"
	"github.com/aimingmed/sctracker-console/pkg/logger"
)

const homePath = productsPath

// workspaceDropper forgets a workspace after sign-out.
type workspaceDropper interface {
	Drop(id string)
}

func renderLogin(w http.ResponseWriter, r *http.Request, rd Renderer, status int, data *views.LoginPage) {
	data.Layout.Title = "登录"
	rd.Render(w, r, status, "login", data)
}

// LoginPage shows the sign-in form. Signed-in users go straight home.
func LoginPage(rd Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := workspaceOrFail(w, r, logg)
		if ws == nil {
			return
		}
		if ws.Auth.Snapshot().Authenticated() {
			redirect(w, r, homePath)
			return
		}
		renderLogin(w, r, rd, http.StatusOK, &views.LoginPage{})
	}
}

// Login signs the workspace in and preloads the three lists.
func Login(rd Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := workspaceOrFail(w, r, logg)
		if ws == nil {
			return
		}
		values, err := validators.ParseForm(w, r)
		if err != nil {
			renderLogin(w, r, rd, failureStatus(err), &views.LoginPage{Err: pkgerrors.UserMessage(err)})
			return
		}
		form, fieldErrs := forms.DecodeLogin(values)
		if len(fieldErrs) > 0 {
			renderLogin(w, r, rd, http.StatusUnprocessableEntity, &views.LoginPage{
				Username:    form.Username,
				FieldErrors: fieldErrs,
			})
			return
		}
		if err := ws.Auth.Login(r.Context(), form.Username, form.Password); err != nil {
			logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "sign-in failed")
			renderLogin(w, r, rd, failureStatus(err), &views.LoginPage{
				Username: form.Username,
				Err:      pkgerrors.UserMessage(err),
			})
			return
		}
		if err := ws.LoadAll(r.Context()); err != nil {
			// The list pages show their own load errors.
			logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "initial list load failed")
		}
		redirect(w, r, homePath)
	}
}

// Logout signs out and forgets the workspace.
func Logout(registry workspaceDropper, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := workspaceOrFail(w, r, logg)
		if ws == nil {
			return
		}
		ctx := logg.WithUsername(r.Context(), ws.Auth.Username())
		if err := ws.Logout(ctx); err != nil {
			logg.Error(ctx, "failed to clear session token", err)
		}
		logg.Info(ctx, "user signed out")
		if registry != nil {
			registry.Drop(ws.ID)
		}
		redirect(w, r, middleware.LoginPath)
	}
}

func Profile(rd Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := workspaceOrFail(w, r, logg)
		if ws == nil {
			return
		}
		rd.Render(w, r, http.StatusOK, "profile", &views.ProfilePage{Layout: layoutFor(ws, "账户", "profile")})
	}
}

// ProfileRefresh re-reads the profile. A failed refresh has already signed the
// user out, so it lands on the login page.
func ProfileRefresh(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := workspaceOrFail(w, r, logg)
		if ws == nil {
			return
		}
		if err := ws.Auth.Refresh(r.Context()); err != nil {
			logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "profile refresh failed")
			if err := ws.Logout(r.Context()); err != nil {
				logg.Error(r.Context(), "failed to clear session token", err)
			}
			redirect(w, r, middleware.LoginPath)
			return
		}
		redirect(w, r, "/profile")
	}
}

func renderResetPassword(w http.ResponseWriter, r *http.Request, rd Renderer, status int, data *views.ResetPasswordPage) {
	rd.Render(w, r, status, "reset_password", data)
}

func ResetPasswordPage(rd Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := workspaceOrFail(w, r, logg)
		if ws == nil {
			return
		}
		renderResetPassword(w, r, rd, http.StatusOK, &views.ResetPasswordPage{Layout: layoutFor(ws, "重置密码", "profile")})
	}
}

// ResetPassword changes the password and shows the tracker's confirmation.
func ResetPassword(rd Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := workspaceOrFail(w, r, logg)
		if ws == nil {
			return
		}
		data := &views.ResetPasswordPage{Layout: layoutFor(ws, "重置密码", "profile")}
		values, err := validators.ParseForm(w, r)
		if err != nil {
			data.Err = pkgerrors.UserMessage(err)
			renderResetPassword(w, r, rd, failureStatus(err), data)
			return
		}
		form, fieldErrs := forms.DecodeResetPassword(values)
		if len(fieldErrs) > 0 {
			data.FieldErrors = fieldErrs
			renderResetPassword(w, r, rd, http.StatusUnprocessableEntity, data)
			return
		}
		msg, err := ws.Auth.ResetPassword(r.Context(), form.NewPassword)
		if err != nil {
			data.Err = pkgerrors.UserMessage(err)
			renderResetPassword(w, r, rd, failureStatus(err), data)
			return
		}
		if msg == "" {
			msg = "密码已更新"
		}
		data.Done = msg
		renderResetPassword(w, r, rd, http.StatusOK, data)
	}
}
