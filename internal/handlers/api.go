// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"footprints/internal/cache"
	"footprints/internal/i18n"
	"footprints/internal/metrics"
	"footprints/internal/models"
	"footprints/internal/viewer"
)

// ResponseCache stores encoded responses. *cache.ResponseCache implements it.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, body []byte)
}

// API groups the JSON endpoints over the loaded locations.
type API struct {
	src         viewer.Source
	cache       ResponseCache
	metrics     *metrics.Metrics
	defaultLang i18n.Language
}

// NewAPI creates the API handler group. cache may be nil.
func NewAPI(src viewer.Source, rc ResponseCache, m *metrics.Metrics, defaultLang i18n.Language) *API {
	return &API{src: src, cache: rc, metrics: m, defaultLang: defaultLang}
}

// Locations returns every loaded location with its _id, categories
// localized for the requested language. Responses are cached per language
// and load generation.
func (a *API) Locations(w http.ResponseWriter, r *http.Request) {
	snap, ok := a.src.Snapshot()
	if !ok {
		w.Header().Set("Retry-After", "1")
		writeJSONError(w, http.StatusServiceUnavailable, i18n.T(a.defaultLang, "common.loading"))
		return
	}

	lang := requestLanguage(r, a.defaultLang)
	key := cache.LocationsKey(string(lang), snap.Generation)

	if a.cache != nil {
		if body, ok := a.cache.Get(r.Context(), key); ok {
			a.cacheResult(true)
			writeCached(w, body, "HIT")
			return
		}
		a.cacheResult(false)
	}

	out := make([]models.Location, len(snap.Locations))
	for i, loc := range snap.Locations {
		loc.Category = i18n.Localize(loc.Category, lang)
		out[i] = loc
	}
	body, err := json.Marshal(out)
	if err != nil {
		slog.Error("encode locations failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if a.cache != nil {
		a.cache.Set(r.Context(), key, body)
	}
	writeCached(w, body, "MISS")
}

func (a *API) cacheResult(hit bool) {
	if a.metrics == nil {
		return
	}
	if hit {
		a.metrics.CacheHits.WithLabelValues("locations").Inc()
	} else {
		a.metrics.CacheMisses.WithLabelValues("locations").Inc()
	}
}

func writeCached(w http.ResponseWriter, body []byte, state string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Cache", state)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
