package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"fi-dashboard/internal/api"
	"fi-dashboard/internal/app"
	"fi-dashboard/internal/config"
	"fi-dashboard/internal/middleware"
	"fi-dashboard/internal/ui"
)

// newRouter mounts the health check, the JSON API under /api/v1 and the
// HTML dashboard under /ui. The rate limiter applies to API and UI alike.
func newRouter(a *app.App, cfg *config.Config, limiter *middleware.RateLimiter, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(logger.With("component", "http")))

	r.Get("/healthz", api.Healthz)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui", http.StatusFound)
	})

	apiHandler := api.NewHandler(a.Services.Insight, a.Services.Ingestion, logger.With("component", "api"))
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
			ExposedHeaders: []string{middleware.RequestIDHeader, "Content-Disposition"},
			MaxAge:         300,
		}))
		r.Use(limiter.Handler)
		r.Mount("/", apiHandler.Routes())
	})

	uiHandler := ui.NewHandler(a.Services.Insight, logger.With("component", "ui"), cfg.IsProduction())
	r.Route("/ui", func(r chi.Router) {
		ui.MountRoutes(r, uiHandler, limiter.Handler)
	})

	return r
}
