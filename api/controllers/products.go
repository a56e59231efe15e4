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

const productsPath = "/products"

func validProductTab(v string) bool { return enums.ProductType(v).IsValid() }

func renderProducts(w http.ResponseWriter, r *http.Request, rd Renderer, ws *workspace.Workspace, status int) {
	page := ws.Products
	data := &views.ProductsPage{
		Layout:        layoutFor(ws, "产品", "products"),
		Table:         tableFor(page.List, views.Tabs(enums.ProductTypes(), page.List.Category())),
		Rows:          page.List.View(),
		Modal:         page.Flow.Modal(),
		Categories:    enums.Categories(),
		SubCategories: enums.SubCategories(),
		Sources:       enums.Sources(),
		Units:         enums.Units(),
	}
	data.Perms = views.Perms{CanMutate: page.Flow.CanMutate()}
	data.ActionErr = page.Flow.Err()
	rd.Render(w, r, status, "products", data)
}

// ProductsList renders the catalog. Visiting the list dismisses any open modal.
func ProductsList(rd Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := workspaceOrFail(w, r, logg)
		if ws == nil {
			return
		}
		ensureLoaded(r.Context(), ws.Products.List, logg)
		applyListQuery(r, ws.Products.List, validProductTab)
		ws.Products.Flow.Close()
		renderProducts(w, r, rd, ws, http.StatusOK)
	}
}

func ProductsReload(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := workspaceOrFail(w, r, logg)
		if ws == nil {
			return
		}
		if err := ws.Products.Load(r.Context()); err != nil {
			logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "products reload failed")
		}
		redirect(w, r, listURL(productsPath, ws.Products.List.Category()))
	}
}

func ProductsNew(rd Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := workspaceOrFail(w, r, logg)
		if ws == nil {
			return
		}
		ensureLoaded(r.Context(), ws.Products.List, logg)
		applyListQuery(r, ws.Products.List, validProductTab)
		ws.Products.Flow.OpenCreate(forms.NewProductForm())
		renderProducts(w, r, rd, ws, http.StatusOK)
	}
}

func ProductsEdit(rd Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := workspaceOrFail(w, r, logg)
		if ws == nil {
			return
		}
		ensureLoaded(r.Context(), ws.Products.List, logg)
		applyListQuery(r, ws.Products.List, validProductTab)
		if !ws.Products.OpenEdit(chi.URLParam(r, "productID")) {
			renderError(w, r, rd, ws, http.StatusNotFound, "product not found")
			return
		}
		renderProducts(w, r, rd, ws, http.StatusOK)
	}
}

func ProductsCreate(rd Renderer, logg *logger.Logger) http.HandlerFunc {
	return submitProduct(rd, logg, mutation.ModeCreate)
}

func ProductsUpdate(rd Renderer, logg *logger.Logger) http.HandlerFunc {
	return submitProduct(rd, logg, mutation.ModeEdit)
}

func submitProduct(rd Renderer, logg *logger.Logger, mode mutation.Mode) http.HandlerFunc {
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
		form, fieldErrs := forms.DecodeProduct(values)
		if mode == mutation.ModeEdit {
			form.ProductID = chi.URLParam(r, "productID")
		}
		if err := ws.Products.Flow.Submit(r.Context(), mode, form, fieldErrs); err != nil {
			renderProducts(w, r, rd, ws, failureStatus(err))
			return
		}
		redirect(w, r, listURL(productsPath, ws.Products.List.Category()))
	}
}

// ProductsConfirmDelete asks before a product is removed.
func ProductsConfirmDelete(rd Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := workspaceOrFail(w, r, logg)
		if ws == nil {
			return
		}
		ensureLoaded(r.Context(), ws.Products.List, logg)
		applyListQuery(r, ws.Products.List, validProductTab)
		if !ws.Products.Flow.CanMutate() {
			renderError(w, r, rd, ws, http.StatusForbidden, pkgerrors.MetadataFor(pkgerrors.CodeForbidden).PublicMessage)
			return
		}
		p, ok := ws.Products.Lookup(chi.URLParam(r, "productID"))
		if !ok {
			renderError(w, r, rd, ws, http.StatusNotFound, "product not found")
			return
		}
		renderConfirmDelete(w, r, rd, ws, "products", productsPath, ws.Products.List.Category(), p.ProductID, p.NameZH)
	}
}

func ProductsDelete(rd Renderer, logg *logger.Logger) http.HandlerFunc {
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
		err = ws.Products.Flow.Delete(r.Context(), chi.URLParam(r, "productID"), confirmed(values))
		if err != nil && !errors.Is(err, mutation.ErrNotConfirmed) {
			renderProducts(w, r, rd, ws, failureStatus(err))
			return
		}
		redirect(w, r, listURL(productsPath, ws.Products.List.Category()))
	}
}

// ProductBatches lists the batches of one product.
func ProductBatches(rd Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := workspaceOrFail(w, r, logg)
		if ws == nil {
			return
		}
		id := chi.URLParam(r, "productID")
		ensureLoaded(r.Context(), ws.Products.List, logg)
		data := &views.BatchesPage{Layout: layoutFor(ws, id, "products")}
		data.Product, _ = ws.Products.Lookup(id)
		data.Product.ProductID = id

		status := http.StatusOK
		rows, err := ws.Inventory.BatchesFor(r.Context(), id)
		if err != nil {
			status = failureStatus(err)
			data.Err = pkgerrors.UserMessage(err)
		}
		data.Rows = rows
		rd.Render(w, r, status, "batches", data)
	}
}
