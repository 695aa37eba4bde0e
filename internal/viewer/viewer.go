// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package viewer composes the location store, filter engine, selection
// coordinator and map model around one session's State. A Viewer is built
// per event from the persisted state, applies that event and hands the
// updated state back for saving.
package viewer

import (
	"footprints/internal/filter"
	"footprints/internal/i18n"
	"footprints/internal/locations"
	"footprints/internal/mapview"
	"footprints/internal/selection"
)

// MapContainer is the DOM id of the map element.
const MapContainer = "map-container"

// Source provides the loaded locations. *locations.Store implements it.
type Source interface {
	Snapshot() (locations.Snapshot, bool)
}

// Viewer applies events to one session's state. It is not safe for
// concurrent use; callers serialize events per session.
type Viewer struct {
	state State
	src   Source
	layer *mapview.Layer
	m     *mapview.Map
	sel   *selection.Coordinator

	releases []func()
	opened   bool
	closed   bool
}

// New rebuilds a viewer from persisted state. layer may be shared between
// viewers so markers are only rebuilt when the data or language changes;
// with a nil layer they are built on every View.
func New(state State, src Source, layer *mapview.Layer) *Viewer {
	if state.ViewportWidth <= 0 {
		state.ViewportWidth = DesktopWidth
	}

	v := &Viewer{state: state, src: src, layer: layer}
	v.m = mapview.New(MapContainer, state.Camera.Zoom, state.Camera.Center, mapview.StyleFor(state.DarkMode))
	v.sel = selection.New(v.m, listPanel{v})

	if state.SelectedID != 0 {
		if snap, ok := src.Snapshot(); ok {
			loc, err := snap.ByID(state.SelectedID)
			if err == nil {
				v.sel.Restore(&loc)
			} else {
				v.state.SelectedID = 0
			}
		}
	}
	v.state.Camera = Camera{Center: v.m.Center(), Zoom: v.m.Zoom()}
	return v
}

// listPanel lets the selection coordinator collapse the list.
type listPanel struct{ v *Viewer }

func (p listPanel) HideList() { p.v.state.ListVisible = false }

// State returns the state to persist.
func (v *Viewer) State() State {
	return v.state
}

// Open subscribes the viewer to viewport and color scheme changes. Calling
// Open again, or after Close, does nothing.
func (v *Viewer) Open(env Environment) {
	if v.opened || v.closed {
		return
	}
	v.opened = true
	v.releases = append(v.releases,
		env.OnResize(func(width int) {
			if !v.closed {
				v.Resize(width)
			}
		}),
		env.OnColorScheme(func(dark bool) {
			if !v.closed {
				v.SetColorScheme(dark)
			}
		}),
	)
}

// Close releases every listener acquired by Open and destroys the map.
// It is idempotent.
func (v *Viewer) Close() {
	if v.closed {
		return
	}
	v.closed = true
	for _, release := range v.releases {
		release()
	}
	v.releases = nil
	v.m.Destroy()
}

// SetLanguage switches the display language. Category and year go back to
// the new language's ALL sentinel, since a stale sentinel would never
// compare equal again. The search term is kept.
func (v *Viewer) SetLanguage(lang i18n.Language) {
	v.state.Language = lang
	v.state.Filter = filter.Switch(v.state.Filter, lang)
}

// SetCategory selects a category facet. An empty value means ALL.
func (v *Viewer) SetCategory(category string) {
	if category == "" {
		category = i18n.All(v.state.Language)
	}
	v.state.Filter.Category = category
}

// SetYear selects a year facet. An empty value means ALL.
func (v *Viewer) SetYear(year string) {
	if year == "" {
		year = i18n.All(v.state.Language)
	}
	v.state.Filter.Year = year
}

// SetSearch sets the free-text search term.
func (v *Viewer) SetSearch(term string) {
	v.state.Filter.Search = term
}

// ClearFilters resets category, year and search.
func (v *Viewer) ClearFilters() {
	v.state.Filter = filter.Reset(v.state.Language)
}

// Select focuses the location with id. It returns locations.ErrLoading
// before the store is ready and locations.ErrNotFound for unknown ids.
func (v *Viewer) Select(id int) error {
	snap, ok := v.src.Snapshot()
	if !ok {
		return locations.ErrLoading
	}
	loc, err := snap.ByID(id)
	if err != nil {
		return err
	}
	v.sel.Select(loc, v.state.ViewportWidth)
	v.syncCamera()
	return nil
}

// ShowAll drops the selection and returns the camera to the overview.
func (v *Viewer) ShowAll() {
	v.sel.Clear(v.state.ViewportWidth)
	v.syncCamera()
}

// Resize records a new viewport width. The list is shown only on wide
// viewports, and without a selection the camera follows the width's
// default zoom.
func (v *Viewer) Resize(width int) {
	if width <= 0 {
		return
	}
	v.state.ViewportWidth = width
	v.state.ListVisible = !selection.Narrow(width)
	if v.sel.Selected() == nil {
		v.m.SetCenter(selection.DefaultCenter)
		v.m.SetZoom(selection.DefaultZoom(width))
	}
	v.syncCamera()
}

// SetColorScheme switches between the light and dark map styles.
func (v *Viewer) SetColorScheme(dark bool) {
	v.state.DarkMode = dark
	v.m.SetStyle(mapview.StyleFor(dark))
}

// ToggleList shows or hides the list panel.
func (v *Viewer) ToggleList() {
	v.state.ListVisible = !v.state.ListVisible
}

func (v *Viewer) syncCamera() {
	v.state.Camera = Camera{Center: v.m.Center(), Zoom: v.m.Zoom()}
	v.state.SelectedID = v.sel.SelectedID()
}
