// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"footprints/internal/i18n"
	"footprints/internal/render"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeJSONError writes {"error": msg}.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// wantsJSON reports whether a non-HTMX client asked for JSON.
func wantsJSON(r *http.Request) bool {
	if render.IsHTMX(r) {
		return false
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// requestLanguage picks the language of a request that has no session
// state to go by: the lang query parameter, then Accept-Language, then
// fallback.
func requestLanguage(r *http.Request, fallback i18n.Language) i18n.Language {
	if lang, ok := i18n.ParseLanguage(r.URL.Query().Get("lang")); ok {
		return lang
	}
	if header := r.Header.Get("Accept-Language"); header != "" {
		return i18n.Negotiate(header)
	}
	return fallback
}
