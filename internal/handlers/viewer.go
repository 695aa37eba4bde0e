// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"footprints/internal/i18n"
	"footprints/internal/locations"
	"footprints/internal/mapview"
	"footprints/internal/metrics"
	"footprints/internal/middleware"
	"footprints/internal/render"
	"footprints/internal/session"
	"footprints/internal/viewer"
)

// SessionData loads, saves and drops viewer sessions. *session.Store
// implements it.
type SessionData interface {
	Load(ctx context.Context, id string) (*session.Data, error)
	Save(ctx context.Context, id string, data *session.Data) error
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// PageOptions are the settings every rendered page needs.
type PageOptions struct {
	BasePath    string
	DefaultLang i18n.Language
	Tiles       render.Tiles
}

// Viewer groups the handlers that drive one session's map viewer. Every
// request is one event: the session is locked, its state loaded, the event
// applied to a fresh viewer.Viewer, and the new state saved before the
// response is written.
type Viewer struct {
	renderer *render.Renderer
	sessions SessionData
	locks    *session.Locks
	src      viewer.Source
	layer    *mapview.Layer
	metrics  *metrics.Metrics
	opts     PageOptions
}

// NewViewer creates the viewer handler group.
func NewViewer(renderer *render.Renderer, sessions SessionData, locks *session.Locks, src viewer.Source, m *metrics.Metrics, opts PageOptions) *Viewer {
	return &Viewer{
		renderer: renderer,
		sessions: sessions,
		locks:    locks,
		src:      src,
		layer:    &mapview.Layer{},
		metrics:  m,
		opts:     opts,
	}
}

// InitialState returns the state for a new session: the language comes
// from ?lang, then Accept-Language, then defaultLang.
func InitialState(defaultLang i18n.Language) func(r *http.Request) viewer.State {
	return func(r *http.Request) viewer.State {
		return viewer.NewState(requestLanguage(r, defaultLang), 0, false)
	}
}

// eventFunc applies one event. A non-empty message is a client error.
type eventFunc func(r *http.Request, v *viewer.Viewer, bus *viewer.Bus) (msg string, err error)

// apply runs the lock, load, apply, save cycle for one event and writes
// the resulting view.
func (h *Viewer) apply(w http.ResponseWriter, r *http.Request, event string, fn eventFunc) {
	ctx := r.Context()
	reqID := middleware.RequestIDFromCtx(ctx)

	id := middleware.SessionIDFromCtx(ctx)
	if id == "" {
		slog.Error("viewer event without session", "event", event, "request_id", reqID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	unlock := h.locks.Lock(id)
	defer unlock()

	data, err := h.sessions.Load(ctx, id)
	if err != nil {
		slog.Error("session load failed", "error", err, "event", event, "request_id", reqID)
		h.count(event, "error")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if data == nil {
		// Expired between the middleware check and the lock.
		data = &session.Data{State: InitialState(h.opts.DefaultLang)(r)}
	}

	// The bus lives for this request only and reaches this session's
	// viewer alone; nothing is broadcast to other sessions.
	bus := viewer.NewBus()
	v := viewer.New(data.State, h.src, h.layer)
	v.Open(bus)
	defer v.Close()

	status := http.StatusOK
	msg, err := fn(r, v, bus)
	switch {
	case msg != "":
		h.count(event, "bad_request")
		if wantsJSON(r) {
			writeJSONError(w, http.StatusBadRequest, msg)
		} else {
			http.Error(w, msg, http.StatusBadRequest)
		}
		return
	case errors.Is(err, locations.ErrNotFound):
		h.count(event, "not_found")
		status = http.StatusNotFound
	case errors.Is(err, locations.ErrLoading):
		h.count(event, "loading")
		status = http.StatusServiceUnavailable
	case err != nil:
		slog.Error("viewer event failed", "error", err, "event", event, "request_id", reqID)
		h.count(event, "error")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	default:
		h.count(event, "ok")
	}

	data.State = v.State()
	if err := h.sessions.Save(ctx, id, data); err != nil {
		slog.Error("session save failed", "error", err, "event", event, "request_id", reqID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.respond(w, r, v.View(), status)
}

func (h *Viewer) count(event, status string) {
	if h.metrics != nil {
		h.metrics.ViewerEventsTotal.WithLabelValues(event, status).Inc()
	}
}

// respond writes the view as JSON or as the viewer page (full or HTMX
// fragment).
func (h *Viewer) respond(w http.ResponseWriter, r *http.Request, view viewer.View, status int) {
	if wantsJSON(r) {
		writeJSON(w, status, view)
		return
	}
	h.renderer.PageStatus(w, r, "index", &render.PageData{
		Lang:     view.Language,
		BasePath: h.opts.BasePath,
		Tiles:    h.opts.Tiles,
		View:     &view,
	}, status)
}

// Index renders the viewer. A valid ?lang switches the session language.
func (h *Viewer) Index(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, "view", func(r *http.Request, v *viewer.Viewer, _ *viewer.Bus) (string, error) {
		if lang, ok := i18n.ParseLanguage(r.URL.Query().Get("lang")); ok && lang != v.State().Language {
			v.SetLanguage(lang)
		}
		return "", nil
	})
}

// APIView returns the session's view model as JSON.
func (h *Viewer) APIView(w http.ResponseWriter, r *http.Request) {
	r = r.Clone(r.Context())
	r.Header.Set("Accept", "application/json")
	r.Header.Del("HX-Request")
	h.Index(w, r)
}

// SetLanguage handles POST /events/lang.
func (h *Viewer) SetLanguage(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, "lang", func(r *http.Request, v *viewer.Viewer, _ *viewer.Bus) (string, error) {
		lang, ok := i18n.ParseLanguage(r.FormValue("lang"))
		if !ok {
			return "Unsupported language.", nil
		}
		v.SetLanguage(lang)
		return "", nil
	})
}

// SetCategory handles POST /events/category.
func (h *Viewer) SetCategory(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, "category", func(r *http.Request, v *viewer.Viewer, _ *viewer.Bus) (string, error) {
		value := r.FormValue("category")
		if msg := validateFacet(value); msg != "" {
			return msg, nil
		}
		v.SetCategory(value)
		return "", nil
	})
}

// SetYear handles POST /events/year.
func (h *Viewer) SetYear(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, "year", func(r *http.Request, v *viewer.Viewer, _ *viewer.Bus) (string, error) {
		value := r.FormValue("year")
		if msg := validateFacet(value); msg != "" {
			return msg, nil
		}
		v.SetYear(value)
		return "", nil
	})
}

// SetSearch handles POST /events/search.
func (h *Viewer) SetSearch(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, "search", func(r *http.Request, v *viewer.Viewer, _ *viewer.Bus) (string, error) {
		term := r.FormValue("search")
		if msg := validateSearch(term); msg != "" {
			return msg, nil
		}
		v.SetSearch(term)
		return "", nil
	})
}

// ClearFilters handles POST /events/clear-filters.
func (h *Viewer) ClearFilters(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, "clear_filters", func(_ *http.Request, v *viewer.Viewer, _ *viewer.Bus) (string, error) {
		v.ClearFilters()
		return "", nil
	})
}

// Select handles POST /events/select/{id}.
func (h *Viewer) Select(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, "select", func(r *http.Request, v *viewer.Viewer, _ *viewer.Bus) (string, error) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil || id <= 0 {
			return "Invalid location id.", nil
		}
		return "", v.Select(id)
	})
}

// ShowAll handles POST /events/show-all.
func (h *Viewer) ShowAll(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, "show_all", func(_ *http.Request, v *viewer.Viewer, _ *viewer.Bus) (string, error) {
		v.ShowAll()
		return "", nil
	})
}

// Viewport handles POST /events/viewport. The width is delivered through
// the environment bus the viewer subscribed to.
func (h *Viewer) Viewport(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, "viewport", func(r *http.Request, _ *viewer.Viewer, bus *viewer.Bus) (string, error) {
		width, msg := parseViewportWidth(r.FormValue("width"))
		if msg != "" {
			return msg, nil
		}
		bus.Resize(width)
		return "", nil
	})
}

// ColorScheme handles POST /events/scheme.
func (h *Viewer) ColorScheme(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, "scheme", func(r *http.Request, _ *viewer.Viewer, bus *viewer.Bus) (string, error) {
		dark, err := strconv.ParseBool(r.FormValue("dark"))
		if err != nil {
			return "dark must be true or false.", nil
		}
		bus.ColorScheme(dark)
		return "", nil
	})
}

// ToggleList handles POST /events/toggle-list.
func (h *Viewer) ToggleList(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, "toggle_list", func(_ *http.Request, v *viewer.Viewer, _ *viewer.Bus) (string, error) {
		v.ToggleList()
		return "", nil
	})
}

// Reset handles POST /events/reset. The session is dropped and the browser
// sent back to the viewer, which starts a fresh one.
func (h *Viewer) Reset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if id := middleware.SessionIDFromCtx(ctx); id != "" {
		unlock := h.locks.Lock(id)
		err := h.sessions.Destroy(ctx, w, r)
		unlock()
		if err != nil {
			slog.Error("session destroy failed", "error", err, "request_id", middleware.RequestIDFromCtx(ctx))
			h.count("reset", "error")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}
	h.count("reset", "ok")

	target := h.opts.BasePath + "/"
	switch {
	case render.IsHTMX(r):
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusNoContent)
	case wantsJSON(r):
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}
