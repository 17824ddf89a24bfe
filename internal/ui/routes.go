package ui

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fi-dashboard/internal/ui/assets"
)

// MountRoutes registers the dashboard pages on r, which is expected to be
// mounted at /ui. mw wraps every page but not the static assets.
func MountRoutes(r chi.Router, h *Handler, mw ...func(http.Handler) http.Handler) {
	staticFS, err := fs.Sub(assets.StaticFS(), "static")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/ui/static/", http.FileServer(http.FS(staticFS))))
	}

	r.Group(func(r chi.Router) {
		r.Use(mw...)
		r.Get("/", h.Home)
		r.Get("/trends", h.Trends)
		r.Get("/forecasts", h.Forecasts)
		r.Get("/data", h.Data)
	})
}
