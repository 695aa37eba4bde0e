// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"footprints/internal/creator"
	"footprints/internal/i18n"
	"footprints/internal/metrics"
	"footprints/internal/models"
	"footprints/internal/render"
)

// maxCreatorBody bounds the request body of an export.
const maxCreatorBody = 64 << 10

// Creator groups the handlers of the location creator. Drafts are never
// stored: each export validates the submitted fields and returns JSON to
// paste into locations.json.
type Creator struct {
	renderer *render.Renderer
	metrics  *metrics.Metrics
	opts     PageOptions
}

// NewCreator creates the creator handler group.
func NewCreator(renderer *render.Renderer, m *metrics.Metrics, opts PageOptions) *Creator {
	return &Creator{renderer: renderer, metrics: m, opts: opts}
}

// categoryOptions lists the canonical categories labelled in lang, with
// the draft default preselected.
func categoryOptions(lang i18n.Language) []render.CategoryOption {
	def := creator.NewDraft().Category
	var opts []render.CategoryOption
	for _, c := range i18n.CanonicalCategories() {
		opts = append(opts, render.CategoryOption{
			Value:    c,
			Label:    i18n.CategoryLabel(lang, c),
			Selected: c == def,
		})
	}
	return opts
}

// Page renders the creator form.
func (c *Creator) Page(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r, c.opts.DefaultLang)
	c.renderer.Page(w, r, "creator", &render.PageData{
		Title:      i18n.T(lang, "creator.title"),
		Lang:       lang,
		BasePath:   c.opts.BasePath,
		Tiles:      c.opts.Tiles,
		Categories: categoryOptions(lang),
	})
}

// Categories returns the category select options as JSON.
func (c *Creator) Categories(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r, c.opts.DefaultLang)
	writeJSON(w, http.StatusOK, categoryOptions(lang))
}

// exportResponse is the body of a successful export.
type exportResponse struct {
	JSON   string        `json:"json"`
	Record models.Record `json:"record"`
}

// validationResponse is the body of a rejected export.
type validationResponse struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// Export validates a draft and returns its record JSON. The draft is read
// from a JSON body or from form fields. Validation failures answer 422
// with the localized alert for the first invalid field.
func (c *Creator) Export(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(r, c.opts.DefaultLang)
	r.Body = http.MaxBytesReader(w, r.Body, maxCreatorBody)

	draft, err := decodeDraft(r)
	if err != nil {
		c.count("bad_request")
		writeJSONError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if msg := validateDraft(draft); msg != "" {
		c.count("bad_request")
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}

	rec, err := draft.Validate()
	var verr *creator.ValidationError
	if errors.As(err, &verr) {
		c.count("invalid")
		writeJSON(w, http.StatusUnprocessableEntity, validationResponse{
			Field: verr.Field,
			Error: verr.Message(lang),
		})
		return
	}
	if err != nil {
		slog.Error("creator validation failed", "error", err)
		c.count("error")
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	out, err := draft.Export()
	if err != nil {
		slog.Error("creator export failed", "error", err)
		c.count("error")
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.count("ok")
	writeJSON(w, http.StatusOK, exportResponse{JSON: out, Record: rec})
}

func (c *Creator) count(result string) {
	if c.metrics != nil {
		c.metrics.CreatorExportsTotal.WithLabelValues(result).Inc()
	}
}

// decodeDraft reads a draft from a JSON or form-encoded body. A missing
// category falls back to the default.
func decodeDraft(r *http.Request) (creator.Draft, error) {
	draft := creator.NewDraft()

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			return creator.Draft{}, err
		}
		return draft, nil
	}

	if err := r.ParseForm(); err != nil {
		return creator.Draft{}, err
	}
	draft.Name = r.PostFormValue("name")
	draft.Description = r.PostFormValue("description")
	draft.VisitDate = r.PostFormValue("visitDate")
	draft.Coordinates = r.PostFormValue("coordinates")
	if cat := r.PostFormValue("category"); cat != "" {
		draft.Category = cat
	}
	return draft, nil
}
