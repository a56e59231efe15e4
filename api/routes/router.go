package routes

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aimingmed/sctracker-console/api/controllers"
	"github.com/aimingmed/sctracker-console/api/middleware"
	"github.com/aimingmed/sctracker-console/internal/requests"
	"github.com/aimingmed/sctracker-console/internal/workspace"
	"github.com/aimingmed/sctracker-console/pkg/config"
	"github.com/aimingmed/sctracker-console/pkg/logger"
)

type workspaceRegistry interface {
	Acquire(ctx context.Context, id string) (*workspace.Workspace, error)
	Drop(id string)
}

// Params bundles what the console router serves.
type Params struct {
	Config     *config.Config
	Logger     *logger.Logger
	Registry   workspaceRegistry
	Renderer   controllers.Renderer
	Gatherer   prometheus.Gatherer
	ReadyProbe map[string]controllers.Pinger
}

func NewRouter(p Params) (http.Handler, error) {
	if p.Config == nil || p.Registry == nil || p.Renderer == nil {
		return nil, fmt.Errorf("config, registry and renderer are required")
	}
	cfg, logg, rd := p.Config, p.Logger, p.Renderer

	csrfProtect, err := middleware.CSRF(cfg.Console, logg)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.ReadyProbe))
	})
	if p.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(csrfProtect)
		r.Use(middleware.Workspace(p.Registry, cfg.Console, logg))

		r.Get(middleware.LoginPath, controllers.LoginPage(rd, logg))
		r.Post(middleware.LoginPath, controllers.Login(rd, logg))
		r.Post("/logout", controllers.Logout(p.Registry, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(logg))

			r.Get("/", func(w http.ResponseWriter, r *http.Request) {
				http.Redirect(w, r, "/products", http.StatusSeeOther)
			})

			r.Get("/profile", controllers.Profile(rd, logg))
			r.Post("/profile/refresh", controllers.ProfileRefresh(logg))
			r.Get("/reset-password", controllers.ResetPasswordPage(rd, logg))
			r.Post("/reset-password", controllers.ResetPassword(rd, logg))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.ProductsList(rd, logg))
				r.Post("/", controllers.ProductsCreate(rd, logg))
				r.Post("/reload", controllers.ProductsReload(logg))
				r.Get("/new", controllers.ProductsNew(rd, logg))
				r.Route("/{productID}", func(r chi.Router) {
					r.Post("/", controllers.ProductsUpdate(rd, logg))
					r.Get("/edit", controllers.ProductsEdit(rd, logg))
					r.Get("/delete", controllers.ProductsConfirmDelete(rd, logg))
					r.Post("/delete", controllers.ProductsDelete(rd, logg))
					r.Get("/batches", controllers.ProductBatches(rd, logg))
				})
			})

			r.Route("/inventory", func(r chi.Router) {
				r.Get("/", controllers.InventoryList(rd, logg))
				r.Post("/", controllers.InventoryCreate(rd, logg))
				r.Post("/reload", controllers.InventoryReload(logg))
				r.Get("/new", controllers.InventoryNew(rd, logg))
				r.Route("/{batchID}", func(r chi.Router) {
					r.Post("/", controllers.InventoryUpdate(rd, logg))
					r.Get("/edit", controllers.InventoryEdit(rd, logg))
					r.Get("/delete", controllers.InventoryConfirmDelete(rd, logg))
					r.Post("/delete", controllers.InventoryDelete(rd, logg))
				})
			})

			r.Route("/requests", func(r chi.Router) {
				r.Get("/", controllers.RequestsList(rd, logg))
				r.Post("/", controllers.RequestsCreate(rd, logg))
				r.Post("/reload", controllers.RequestsReload(logg))
				r.Get("/new", controllers.RequestsNew(rd, logg))
				r.Route("/{requestID}", func(r chi.Router) {
					r.Post("/", controllers.RequestsUpdate(rd, logg))
					r.Get("/edit", controllers.RequestsEdit(rd, logg))
					r.Get("/delete", controllers.RequestsConfirmDelete(rd, logg))
					r.Post("/delete", controllers.RequestsDelete(rd, logg))
					r.Post("/approve", controllers.RequestsTransition(rd, logg, requests.ActionApprove))
					r.Post("/reject", controllers.RequestsTransition(rd, logg, requests.ActionReject))
					r.Post("/fulfill", controllers.RequestsTransition(rd, logg, requests.ActionFulfill))
				})
			})
		})
	})

	return r, nil
}
