// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// footprints viewer. Routes are split into operational endpoints, the
// session-bound viewer, the read-only API and the creator.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"footprints/internal/handlers"
	"footprints/internal/i18n"
	"footprints/internal/metrics"
	"footprints/internal/middleware"
)

// Deps holds everything the router wires together.
type Deps struct {
	Sessions       middleware.SessionStore
	Viewer         *handlers.Viewer
	API            *handlers.API
	Creator        *handlers.Creator
	Metrics        *metrics.Metrics
	CreatorLimiter *middleware.RateLimiter // nil disables rate limiting
	Static         fs.FS                   // served at /static/
	DefaultLang    i18n.Language
	SecureCookies  bool
	BasePath       string // mount prefix, "" for the root
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecureHeaders)
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}

	// Operational endpoints: no session, no CSRF.
	r.Get("/health", healthHandler)
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics.Handler())
	}
	if d.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(d.Static))))
	}

	// Read-only API over the loaded locations.
	r.Get("/api/locations", d.API.Locations)
	r.Get("/api/locations/{id}/qr.png", d.API.ShareQR)

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewCSRF(d.SecureCookies))

		// Viewer: every request is an event on the caller's session.
		r.Group(func(r chi.Router) {
			r.Use(middleware.EnsureSession(d.Sessions, handlers.InitialState(d.DefaultLang)))

			r.Get("/", d.Viewer.Index)
			r.Get("/view", d.Viewer.Index)
			r.Get("/api/view", d.Viewer.APIView)

			r.Route("/events", func(r chi.Router) {
				r.Post("/lang", d.Viewer.SetLanguage)
				r.Post("/category", d.Viewer.SetCategory)
				r.Post("/year", d.Viewer.SetYear)
				r.Post("/search", d.Viewer.SetSearch)
				r.Post("/clear-filters", d.Viewer.ClearFilters)
				r.Post("/select/{id}", d.Viewer.Select)
				r.Post("/show-all", d.Viewer.ShowAll)
				r.Post("/viewport", d.Viewer.Viewport)
				r.Post("/scheme", d.Viewer.ColorScheme)
				r.Post("/toggle-list", d.Viewer.ToggleList)
				r.Post("/reset", d.Viewer.Reset)
			})
		})

		// Creator: stateless, the export is rate limited per client.
		r.Get("/creator", d.Creator.Page)
		r.Get("/api/creator/categories", d.Creator.Categories)
		r.Group(func(r chi.Router) {
			if d.CreatorLimiter != nil {
				r.Use(d.CreatorLimiter.Middleware)
			}
			r.Post("/api/creator/export", d.Creator.Export)
		})
	})

	if d.BasePath == "" {
		return r
	}
	root := chi.NewRouter()
	root.Mount(d.BasePath, r)
	root.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, d.BasePath+"/", http.StatusFound)
	})
	return root
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
