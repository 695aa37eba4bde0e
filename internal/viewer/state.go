// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package viewer

import (
	"footprints/internal/filter"
	"footprints/internal/i18n"
	"footprints/internal/models"
	"footprints/internal/selection"
)

// DesktopWidth is the viewport width assumed before the browser reports
// its real size.
const DesktopWidth = 1280

// Camera is the persisted map camera.
type Camera struct {
	Center models.Coordinates `json:"center"`
	Zoom   float64            `json:"zoom"`
}

// State is everything one browser session remembers between events. It is
// stored in the session as JSON.
type State struct {
	Language      i18n.Language `json:"language"`
	Filter        filter.State  `json:"filter"`
	SelectedID    int           `json:"selectedId,omitempty"`
	Camera        Camera        `json:"camera"`
	ViewportWidth int           `json:"viewportWidth"`
	DarkMode      bool          `json:"darkMode"`
	ListVisible   bool          `json:"listVisible"`
}

// NewState returns the initial state of a fresh session: filters reset,
// camera on the overview and the list shown only on wide viewports.
func NewState(lang i18n.Language, width int, dark bool) State {
	if width <= 0 {
		width = DesktopWidth
	}
	return State{
		Language:      lang,
		Filter:        filter.Reset(lang),
		Camera:        Camera{Center: selection.DefaultCenter, Zoom: selection.DefaultZoom(width)},
		ViewportWidth: width,
		DarkMode:      dark,
		ListVisible:   !selection.Narrow(width),
	}
}
