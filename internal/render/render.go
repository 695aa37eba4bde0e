// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the viewer and the
// creator pages. It supports full-page and HTMX partial rendering,
// automatically detecting the request type via the HX-Request header.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"path"

	"footprints/internal/i18n"
	"footprints/internal/middleware"
	"footprints/internal/viewer"
)

//go:embed templates/*.html
var templateFS embed.FS

// Tiles holds the tile layer settings handed to the browser map.
type Tiles struct {
	Light       string
	Dark        string
	Attribution string
}

// CategoryOption is one entry of the creator's category select.
type CategoryOption struct {
	Value    string `json:"value"`    // canonical (Chinese) label, submitted with the form
	Label    string `json:"label"`    // label in the page language
	Selected bool   `json:"selected"`
}

// PageData holds all data passed to templates.
type PageData struct {
	Title      string        // Page title for <title> tag
	Lang       i18n.Language // Page language; drives every t call
	BasePath   string        // URL prefix the app is mounted under
	CSRFToken  string        // CSRF token for forms and HTMX headers
	Tiles      Tiles
	View       *viewer.View     // viewer page only
	Categories []CategoryOption // creator page only
}

// Renderer handles template parsing and execution.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
}

// New creates a Renderer by parsing all page templates from the embedded
// filesystem. Each page template is paired with the base layout.
// When devMode is true, pages load the unminified HTMX build.
func New(devMode bool) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			"t": i18n.T,
			// isDev returns true when the app runs in development mode.
			"isDev": func() bool {
				return devMode
			},
			// otherLang is the language the toggle button switches to.
			"otherLang": func(lang i18n.Language) i18n.Language {
				if lang == i18n.English {
					return i18n.Chinese
				}
				return i18n.English
			},
			"activeClass": func(active bool) string {
				if active {
					return "active"
				}
				return ""
			},
		},
	}

	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" || path.Ext(name) != ".html" {
			continue
		}
		tmplName := name[:len(name)-len(".html")]

		tmpl, err := template.New("base.html").Funcs(r.funcMap).ParseFS(
			templateFS, "templates/base.html", "templates/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[tmplName] = tmpl
	}

	return r, nil
}

// Page renders a full page or an HTMX partial, depending on the request
// headers. For HTMX requests, only the "content" block is sent.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	rn.page(w, r, name, data, http.StatusOK)
}

// PageStatus is Page with an explicit status code.
func (rn *Renderer) PageStatus(w http.ResponseWriter, r *http.Request, name string, data *PageData, status int) {
	rn.page(w, r, name, data, status)
}

func (rn *Renderer) page(w http.ResponseWriter, r *http.Request, name string, data *PageData, status int) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	// Inject CSRF token from context (set by CSRF middleware).
	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())
	if data.Title == "" {
		data.Title = i18n.T(data.Lang, "app.title")
	}

	execName := "base.html"
	if IsHTMX(r) {
		execName = "content"
	}

	var buf bytes.Buffer
	if err := executeTemplate(&buf, tmpl, execName, data); err != nil {
		slog.Error("render template", "template", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Vary", "HX-Request")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// executeTemplate wraps template execution with error handling.
func executeTemplate(w io.Writer, tmpl *template.Template, name string, data any) error {
	return tmpl.ExecuteTemplate(w, name, data)
}

// IsHTMX returns true if the request was made by HTMX (has HX-Request header).
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
