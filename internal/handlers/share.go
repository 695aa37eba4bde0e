// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"

	"footprints/internal/locations"
	"footprints/internal/models"
	"footprints/internal/slug"
)

// qrSize is the edge length of share QR codes in pixels.
const qrSize = 256

// GeoURI returns the RFC 5870 geo URI of a location, with its name as the
// query label understood by most map apps.
func GeoURI(loc models.Location) string {
	return fmt.Sprintf("geo:%g,%g?q=%s", loc.Coordinates.Lat(), loc.Coordinates.Lng(), url.QueryEscape(loc.Name))
}

// ShareQR serves GET /api/locations/{id}/qr.png: a PNG QR code of the
// location's geo URI.
func (a *API) ShareQR(w http.ResponseWriter, r *http.Request) {
	snap, ok := a.src.Snapshot()
	if !ok {
		w.Header().Set("Retry-After", "1")
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid location id", http.StatusBadRequest)
		return
	}
	loc, err := snap.ByID(id)
	if errors.Is(err, locations.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	png, err := qrcode.Encode(GeoURI(loc), qrcode.Medium, qrSize)
	if err != nil {
		slog.Error("qr code generation failed", "error", err, "location_id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{
		"filename": slug.FileName("footprint", loc.ID, loc.Name, "png"),
	}))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(png)
}
