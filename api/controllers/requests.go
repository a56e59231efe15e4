package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aimingmed/sctracker-console/api/validators"
	"github.com/aimingmed/sctracker-console/api/views"
	"github.com/aimingmed/sctracker-console/internal/forms"
	"github.com/aimingmed/sctracker-console/internal/mutation"
	"github.com/aimingmed/sctracker-console/internal/requests"
	"github.com/aimingmed/sctracker-console/internal/workspace"
	"github.com/aimingmed/sctracker-console/pkg/enums"
	pkgerrors "github.com/aimingmed/sctracker-console/pkg/errors"
	"github.com/aimingmed/sctracker-console/pkg/logger"
)

const requestsPath = "/requests"

func validRequestTab(v string) bool { return enums.RequestStatus(v).IsValid() }

func renderRequests(w http.ResponseWriter, r *http.Request, rd Renderer, ws *workspace.Workspace, status int) {
	page := ws.Requests
	data := &views.RequestsPage{
		Layout: layoutFor(ws, "需求", "requests"),
		Table:  tableFor(page.List, views.Tabs(enums.RequestStatuses(), page.List.Category())),
		Rows:   page.List.View(),
		Modal:  page.Flow.Modal(),
	}
	data.Perms = views.Perms{
		CanMutate:  page.Flow.CanMutate(),
		CanApprove: page.CanApprove(),
		CanFulfill: page.CanFulfill(),
	}
	data.ActionErr = page.Flow.Err()
	if data.Modal.Open {
		data.Products = ws.Products.List.Items()
	}
	rd.Render(w, r, status, "requests", data)
}

func RequestsList(rd Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := workspaceOrFail(w, r, logg)
		if ws == nil {
			return
		}
		ensureLoaded(r.Context(), ws.Requests.List, logg)
		applyListQuery(r, ws.Requests.List, validRequestTab)
		ws.Requests.Flow.Close()
		renderRequests(w, r, rd, ws, http.StatusOK)
	}
}

func RequestsReload(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := workspaceOrFail(w, r, logg)
		if ws == nil {
			return
		}
		if err := ws.Requests.Load(r.Context()); err != nil {
			logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "requests reload failed")
		}
		redirect(w, r, listURL(requestsPath, ws.Requests.List.Category()))
	}
}

func RequestsNew(rd Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := workspaceOrFail(w, r, logg)
		if ws == nil {
			return
		}
		ensureLoaded(r.Context(), ws.Requests.List, logg)
		ensureLoaded(r.Context(), ws.Products.List, logg)
		applyListQuery(r, ws.Requests.List, validRequestTab)
		ws.Requests.OpenCreate()
		renderRequests(w, r, rd, ws, http.StatusOK)
	}
}

func RequestsEdit(rd Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := workspaceOrFail(w, r, logg)
		if ws == nil {
			return
		}
		ensureLoaded(r.Context(), ws.Requests.List, logg)
		ensureLoaded(r.Context(), ws.Products.List, logg)
		applyListQuery(r, ws.Requests.List, validRequestTab)
		if !ws.Requests.OpenEdit(chi.URLParam(r, "requestID")) {
			renderError(w, r, rd, ws, http.StatusNotFound, "request not found")
			return
		}
		renderRequests(w, r, rd, ws, http.StatusOK)
	}
}

func RequestsCreate(rd Renderer, logg *logger.Logger) http.HandlerFunc {
	return submitRequest(rd, logg, mutation.ModeCreate)
}

func RequestsUpdate(rd Renderer, logg *logger.Logger) http.HandlerFunc {
	return submitRequest(rd, logg, mutation.ModeEdit)
}

func submitRequest(rd Renderer, logg *logger.Logger, mode mutation.Mode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := workspaceOrFail(w, r, logg)
		if ws == nil {
			return
		}
		values, err := validators.ParseForm(w, r)
		if err != nil {
			renderError(w, r, rd, ws, failureStatus(err), pkgerrors.UserMessage(err))
			return
		}
		form, fieldErrs := forms.DecodeRequest(values, ws.Auth.Username())
		if mode == mutation.ModeEdit {
			form.RequestID = chi.URLParam(r, "requestID")
		} else {
			form.RequestID = ""
		}
		if err := ws.Requests.Flow.Submit(r.Context(), mode, form, fieldErrs); err != nil {
			renderRequests(w, r, rd, ws, failureStatus(err))
			return
		}
		redirect(w, r, listURL(requestsPath, ws.Requests.List.Category()))
	}
}

func RequestsConfirmDelete(rd Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := workspaceOrFail(w, r, logg)
		if ws == nil {
			return
		}
		ensureLoaded(r.Context(), ws.Requests.List, logg)
		applyListQuery(r, ws.Requests.List, validRequestTab)
		if !ws.Requests.Flow.CanMutate() {
			renderError(w, r, rd, ws, http.StatusForbidden, pkgerrors.MetadataFor(pkgerrors.CodeForbidden).PublicMessage)
			return
		}
		req, ok := ws.Requests.Lookup(chi.URLParam(r, "requestID"))
		if !ok {
			renderError(w, r, rd, ws, http.StatusNotFound, "request not found")
			return
		}
		renderConfirmDelete(w, r, rd, ws, "requests", requestsPath, ws.Requests.List.Category(), req.RequestID, req.RequestProductID)
	}
}

func RequestsDelete(rd Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := workspaceOrFail(w, r, logg)
		if ws == nil {
			return
		}
		values, err := validators.ParseForm(w, r)
		if err != nil {
			renderError(w, r, rd, ws, failureStatus(err), pkgerrors.UserMessage(err))
			return
		}
		err = ws.Requests.Flow.Delete(r.Context(), chi.URLParam(r, "requestID"), confirmed(values))
		if err != nil && !errors.Is(err, mutation.ErrNotConfirmed) {
			renderRequests(w, r, rd, ws, failureStatus(err))
			return
		}
		redirect(w, r, listURL(requestsPath, ws.Requests.List.Category()))
	}
}

// RequestsTransition approves, rejects or fulfils a request.
func RequestsTransition(rd Renderer, logg *logger.Logger, action requests.Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := workspaceOrFail(w, r, logg)
		if ws == nil {
			return
		}
		if err := ws.Requests.Transition(r.Context(), action, chi.URLParam(r, "requestID")); err != nil {
			renderRequests(w, r, rd, ws, failureStatus(err))
			return
		}
		redirect(w, r, listURL(requestsPath, ws.Requests.List.Category()))
	}
}
