package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/aimingmed/sctracker-console/api/middleware"
	"github.com/aimingmed/sctracker-console/api/responses"
	"github.com/aimingmed/sctracker-console/api/validators"
	"github.com/aimingmed/sctracker-console/api/views"
	"github.com/aimingmed/sctracker-console/internal/apiclient"
	"github.com/aimingmed/sctracker-console/internal/liststate"
	"github.com/aimingmed/sctracker-console/internal/workspace"
	pkgerrors "github.com/aimingmed/sctracker-console/pkg/errors"
	"github.com/aimingmed/sctracker-console/pkg/logger"
)

// Renderer writes a named page. *views.Renderer implements it.
type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request, status int, page string, data any)
}

// workspaceOrFail returns the request's workspace or writes an error.
func workspaceOrFail(w http.ResponseWriter, r *http.Request, logg *logger.Logger) *workspace.Workspace {
	ws := middleware.WorkspaceFromContext(r.Context())
	if ws == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "workspace context missing"))
	}
	return ws
}

func layoutFor(ws *workspace.Workspace, title, nav string) views.Layout {
	snap := ws.Auth.Snapshot()
	return views.Layout{Title: title, Nav: nav, User: snap.Profile, ExpiresAt: snap.ExpiresAt}
}

// applyListQuery feeds the q and tab parameters into a list. Parameters that
// are absent leave the current filter and tab alone.
func applyListQuery[T any](r *http.Request, list *liststate.Controller[T], validTab func(string) bool) {
	if q, ok := validators.ParseSearch(r); ok {
		list.SetFilter(q)
	}
	if tab, ok := validators.ParseTab(r, validTab); ok {
		list.SetCategory(tab)
	}
}

// ensureLoaded fetches a list on its first visit. Errors stay on the list.
func ensureLoaded[T any](ctx context.Context, list *liststate.Controller[T], logg *logger.Logger) {
	if list.Loaded() || list.Err() != nil {
		return
	}
	if err := list.Load(ctx); err != nil && logg != nil {
		logg.Warn(logg.WithField(ctx, "error", err.Error()), "list load failed")
	}
}

func tableFor[T any](list *liststate.Controller[T], tabs []views.Tab) views.Table {
	t := views.Table{
		Query:  list.Filter(),
		Tab:    list.Category(),
		Tabs:   tabs,
		Loaded: list.Loaded(),
		Total:  len(list.Items()),
	}
	if err := list.Err(); err != nil {
		t.LoadErr = pkgerrors.UserMessage(err)
	}
	return t
}

func listURL(base, tab string) string {
	if tab == "" {
		return base
	}
	return base + "?" + url.Values{"tab": []string{tab}}.Encode()
}

func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func confirmed(values url.Values) bool {
	return values.Get("confirm") == "yes"
}

// failureStatus is the status a page is re-rendered with after err. Tracker
// 4xx answers pass through, anything else from the tracker is a bad gateway.
func failureStatus(err error) int {
	var remote *apiclient.RequestError
	if errors.As(err, &remote) && remote.StatusCode >= 400 && remote.StatusCode < 500 {
		return remote.StatusCode
	}
	if pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		return http.StatusUnprocessableEntity
	}
	return responses.StatusFor(err)
}

func renderError(w http.ResponseWriter, r *http.Request, rd Renderer, ws *workspace.Workspace, status int, msg string) {
	rd.Render(w, r, status, "error", &views.ErrorPage{
		Layout:  layoutFor(ws, http.StatusText(status), ""),
		Status:  status,
		Message: msg,
	})
}

// renderConfirmDelete shows the confirmation step of a delete. The record lives
// at base/id and cancelling returns to the list on its current tab.
func renderConfirmDelete(w http.ResponseWriter, r *http.Request, rd Renderer, ws *workspace.Workspace, nav, base, tab, id, detail string) {
	rd.Render(w, r, http.StatusOK, "confirm_delete", &views.ConfirmDeletePage{
		Layout:  layoutFor(ws, "确认删除", nav),
		Subject: id,
		Detail:  detail,
		Action:  base + "/" + url.PathEscape(id) + "/delete",
		Cancel:  listURL(base, tab),
	})
}
