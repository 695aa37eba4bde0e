// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package mapview is the server-side model of the browser map widget.
// The viewer drives a Map the way it would drive the widget itself
// (center, zoom, style, markers, popups); the resulting State is sent to
// the browser, whose script replays it against the real widget.
package mapview

import (
	"fmt"
	"html"
	"sync"

	"footprints/internal/i18n"
	"footprints/internal/models"
)

// Style is a map style variant.
type Style string

const (
	StyleLight Style = "macaron"
	StyleDark  Style = "darkblue"
)

// StyleFor picks the style variant for the OS color-scheme preference.
func StyleFor(dark bool) Style {
	if dark {
		return StyleDark
	}
	return StyleLight
}

// Zoom limits of the widget.
const (
	MinZoom = 3.0
	MaxZoom = 20.0
)

// popupDescriptionLimit is the number of description runes shown in a popup.
const popupDescriptionLimit = 50

// Marker is one location pin with its popup content.
type Marker struct {
	ID       int                `json:"id"`
	Position models.Coordinates `json:"position"`
	Class    string             `json:"class"`
	Popup    string             `json:"popup"`
}

// MarkerSet is the set of markers placed on a map, with at most one
// open popup.
type MarkerSet struct {
	markers []Marker
	index   map[int]int
	open    int
}

// ShowPopup opens the popup of the marker with id. It returns false if no
// such marker exists, in which case nothing changes.
func (ms *MarkerSet) ShowPopup(id int) bool {
	if _, ok := ms.index[id]; !ok {
		return false
	}
	ms.open = id
	return true
}

// HideAllPopups closes every popup.
func (ms *MarkerSet) HideAllPopups() {
	ms.open = 0
}

// Sync closes all popups and opens exactly the one for selectedID (0 for
// none). It walks the whole set, which is fine at travel-log scale.
func (ms *MarkerSet) Sync(selectedID int) {
	ms.HideAllPopups()
	for _, m := range ms.markers {
		if m.ID == selectedID {
			ms.ShowPopup(m.ID)
			return
		}
	}
}

// Open returns the ID of the marker whose popup is open, or 0.
func (ms *MarkerSet) Open() int {
	return ms.open
}

// Len returns the number of markers.
func (ms *MarkerSet) Len() int {
	return len(ms.markers)
}

// Markers returns the markers with the active class applied to the one
// whose popup is open.
func (ms *MarkerSet) Markers() []Marker {
	out := make([]Marker, len(ms.markers))
	copy(out, ms.markers)
	if i, ok := ms.index[ms.open]; ok {
		out[i].Class += " active"
	}
	return out
}

// BuildMarkers creates one marker per location with a valid position,
// with popup content in lang.
func BuildMarkers(locs []models.Location, lang i18n.Language) []Marker {
	out := make([]Marker, 0, len(locs))
	for _, loc := range locs {
		// Out-of-range positions stay in the list but get no marker.
		if !loc.Coordinates.Valid() {
			continue
		}
		out = append(out, Marker{
			ID:       loc.ID,
			Position: loc.Coordinates,
			Class:    "custom-marker " + i18n.MarkerClass(loc.Category),
			Popup:    popupHTML(loc, lang),
		})
	}
	return out
}

// popupHTML renders the info window content. Every field is escaped.
func popupHTML(loc models.Location, lang i18n.Language) string {
	return fmt.Sprintf(
		`<div class="popup"><h3>%s</h3><p class="popup-date">%s %s</p><p class="popup-desc">%s</p></div>`,
		html.EscapeString(loc.Name),
		html.EscapeString(i18n.T(lang, "location.visitDate")),
		html.EscapeString(loc.VisitDate),
		html.EscapeString(truncate(loc.Description, popupDescriptionLimit)),
	)
}

// truncate shortens s to limit runes, appending "..." when it cut anything.
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}

// Layer caches built markers so they are rebuilt only when the location
// list (identified by its load generation) or the language changes.
// It is safe for concurrent use.
type Layer struct {
	mu      sync.Mutex
	gen     uint64
	lang    i18n.Language
	markers []Marker
	builds  int
}

// Markers returns the markers for generation gen, rebuilding them on change.
func (l *Layer) Markers(gen uint64, locs []models.Location, lang i18n.Language) []Marker {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.markers == nil || l.gen != gen || l.lang != lang {
		l.markers = BuildMarkers(locs, lang)
		l.gen = gen
		l.lang = lang
		l.builds++
	}
	return l.markers
}

// Builds returns how many times the layer rebuilt its markers.
func (l *Layer) Builds() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.builds
}

// Map is one map widget instance.
type Map struct {
	container string
	center    models.Coordinates
	zoom      float64
	style     Style
	markers   *MarkerSet
	destroyed bool
}

// New creates a map in container with the initial camera and style.
func New(container string, zoom float64, center models.Coordinates, style Style) *Map {
	return &Map{
		container: container,
		center:    center,
		zoom:      clampZoom(zoom),
		style:     style,
	}
}

func clampZoom(z float64) float64 {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}

// SetCenter moves the camera.
func (m *Map) SetCenter(c models.Coordinates) {
	if m.destroyed {
		return
	}
	m.center = c
}

// SetZoom changes the zoom level, clamped to the widget limits.
func (m *Map) SetZoom(level float64) {
	if m.destroyed {
		return
	}
	m.zoom = clampZoom(level)
}

// SetStyle switches the style variant.
func (m *Map) SetStyle(s Style) {
	if m.destroyed {
		return
	}
	m.style = s
}

// Center returns the camera center.
func (m *Map) Center() models.Coordinates { return m.center }

// Zoom returns the zoom level.
func (m *Map) Zoom() float64 { return m.zoom }

// Style returns the style variant.
func (m *Map) Style() Style { return m.style }

// PlaceMarkers replaces the map's markers with one per location.
func (m *Map) PlaceMarkers(locs []models.Location, lang i18n.Language) *MarkerSet {
	return m.attach(BuildMarkers(locs, lang))
}

// PlaceLayer replaces the map's markers with the layer's cached markers.
// A nil layer places freshly built markers.
func (m *Map) PlaceLayer(l *Layer, gen uint64, locs []models.Location, lang i18n.Language) *MarkerSet {
	if l == nil {
		return m.PlaceMarkers(locs, lang)
	}
	return m.attach(l.Markers(gen, locs, lang))
}

func (m *Map) attach(markers []Marker) *MarkerSet {
	ms := &MarkerSet{
		markers: markers,
		index:   make(map[int]int, len(markers)),
	}
	for i, mk := range markers {
		ms.index[mk.ID] = i
	}
	if !m.destroyed {
		m.markers = ms
	}
	return ms
}

// Markers returns the placed marker set, or nil.
func (m *Map) Markers() *MarkerSet {
	return m.markers
}

// Destroy removes all markers and detaches the map. Further calls on the
// map are ignored.
func (m *Map) Destroy() {
	m.markers = nil
	m.destroyed = true
}

// Destroyed reports whether Destroy was called.
func (m *Map) Destroyed() bool {
	return m.destroyed
}

// State is the JSON snapshot of a map replayed by the browser.
type State struct {
	Container string             `json:"container"`
	Center    models.Coordinates `json:"center"`
	Zoom      float64            `json:"zoom"`
	MinZoom   float64            `json:"minZoom"`
	MaxZoom   float64            `json:"maxZoom"`
	Style     Style              `json:"style"`
	Markers   []Marker           `json:"markers"`
	OpenPopup int                `json:"openPopup"`
}

// State returns the current snapshot.
func (m *Map) State() State {
	s := State{
		Container: m.container,
		Center:    m.center,
		Zoom:      m.zoom,
		MinZoom:   MinZoom,
		MaxZoom:   MaxZoom,
		Style:     m.style,
		Markers:   []Marker{},
	}
	if m.markers != nil {
		s.Markers = m.markers.Markers()
		s.OpenPopup = m.markers.Open()
	}
	return s
}
