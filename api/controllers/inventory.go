package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aimingmed/sctracker-console/api/validators"
	"github.com/aimingmed/sctracker-console/api/views"
	"github.com/aimingmed/sctracker-console/internal/forms"
	"github.com/aimingmed/sctracker-console/internal/mutation"
	"github.com/aimingmed/sctracker-console/internal/workspace"
	"github.com/aimingmed/sctracker-console/pkg/enums"
	pkgerrors "github.com/aimingmed/sctracker-console/pkg/errors"
	"github.com/aimingmed/sctracker-console/pkg/logger"
)

const inventoryPath = "/inventory"

func renderInventory(w http.ResponseWriter, r *http.Request, rd Renderer, ws *workspace.Workspace, status int) {
	page := ws.Inventory
	data := &views.InventoryPage{
		Layout:   layoutFor(ws, "库存", "inventory"),
		Table:    tableFor(page.List, views.Tabs(enums.ProductTypes(), page.List.Category())),
		Rows:     page.List.View(),
		Modal:    page.Flow.Modal(),
		Statuses: enums.InventoryStatuses(),
	}
	data.Perms = views.Perms{CanMutate: page.Flow.CanMutate()}
	data.ActionErr = page.Flow.Err()

	// The form selects need the catalog and the producer accounts.
	if data.Modal.Open {
		data.Products = ws.Products.List.Items()
		producers, err := page.Producers(r.Context())
		if err != nil {
			data.Modal.Err = joinMessages(data.Modal.Err, pkgerrors.UserMessage(err))
		}
		data.Producers = withCurrent(producers, data.Modal.Form.ProducedBy)
	}
	rd.Render(w, r, status, "inventory", data)
}

func InventoryList(rd Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := workspaceOrFail(w, r, logg)
		if ws == nil {
			return
		}
		ensureLoaded(r.Context(), ws.Inventory.List, logg)
		applyListQuery(r, ws.Inventory.List, validProductTab)
		ws.Inventory.Flow.Close()
		renderInventory(w, r, rd, ws, http.StatusOK)
	}
}

func InventoryReload(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := workspaceOrFail(w, r, logg)
		if ws == nil {
			return
		}
		if err := ws.Inventory.Load(r.Context()); err != nil {
			logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "inventory reload failed")
		}
		redirect(w, r, listURL(inventoryPath, ws.Inventory.List.Category()))
	}
}

func InventoryNew(rd Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := workspaceOrFail(w, r, logg)
		if ws == nil {
			return
		}
		ensureLoaded(r.Context(), ws.Inventory.List, logg)
		ensureLoaded(r.Context(), ws.Products.List, logg)
		applyListQuery(r, ws.Inventory.List, validProductTab)
		ws.Inventory.OpenCreate()
		renderInventory(w, r, rd, ws, http.StatusOK)
	}
}

func InventoryEdit(rd Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := workspaceOrFail(w, r, logg)
		if ws == nil {
			return
		}
		ensureLoaded(r.Context(), ws.Inventory.List, logg)
		ensureLoaded(r.Context(), ws.Products.List, logg)
		applyListQuery(r, ws.Inventory.List, validProductTab)
		if !ws.Inventory.OpenEdit(chi.URLParam(r, "batchID")) {
			renderError(w, r, rd, ws, http.StatusNotFound, "batch not found")
			return
		}
		renderInventory(w, r, rd, ws, http.StatusOK)
	}
}

func InventoryCreate(rd Renderer, logg *logger.Logger) http.HandlerFunc {
	return submitInventory(rd, logg, mutation.ModeCreate)
}

func InventoryUpdate(rd Renderer, logg *logger.Logger) http.HandlerFunc {
	return submitInventory(rd, logg, mutation.ModeEdit)
}

func submitInventory(rd Renderer, logg *logger.Logger, mode mutation.Mode) http.HandlerFunc {
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
		form, fieldErrs := forms.DecodeInventory(values, ws.Auth.Username())
		if mode == mutation.ModeEdit {
			form.BatchID = chi.URLParam(r, "batchID")
		} else {
			form.BatchID = ""
		}
		if err := ws.Inventory.Flow.Submit(r.Context(), mode, form, fieldErrs); err != nil {
			renderInventory(w, r, rd, ws, failureStatus(err))
			return
		}
		redirect(w, r, listURL(inventoryPath, ws.Inventory.List.Category()))
	}
}

func InventoryConfirmDelete(rd Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := workspaceOrFail(w, r, logg)
		if ws == nil {
			return
		}
		ensureLoaded(r.Context(), ws.Inventory.List, logg)
		applyListQuery(r, ws.Inventory.List, validProductTab)
		if !ws.Inventory.Flow.CanMutate() {
			renderError(w, r, rd, ws, http.StatusForbidden, pkgerrors.MetadataFor(pkgerrors.CodeForbidden).PublicMessage)
			return
		}
		row, ok := ws.Inventory.Lookup(chi.URLParam(r, "batchID"))
		if !ok {
			renderError(w, r, rd, ws, http.StatusNotFound, "batch not found")
			return
		}
		renderConfirmDelete(w, r, rd, ws, "inventory", inventoryPath, ws.Inventory.List.Category(), row.BatchIDInternal, row.ProductID)
	}
}

func InventoryDelete(rd Renderer, logg *logger.Logger) http.HandlerFunc {
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
		err = ws.Inventory.Flow.Delete(r.Context(), chi.URLParam(r, "batchID"), confirmed(values))
		if err != nil && !errors.Is(err, mutation.ErrNotConfirmed) {
			renderInventory(w, r, rd, ws, failureStatus(err))
			return
		}
		redirect(w, r, listURL(inventoryPath, ws.Inventory.List.Category()))
	}
}

// withCurrent keeps a stored producer selectable even if the account no longer
// holds the producer role.
func withCurrent(options []string, current string) []string {
	if current == "" {
		return options
	}
	for _, o := range options {
		if o == current {
			return options
		}
	}
	return append([]string{current}, options...)
}

func joinMessages(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + "; " + b
	}
}
