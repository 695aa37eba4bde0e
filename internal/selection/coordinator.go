// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package selection holds the single source of truth for the currently
// selected location. Selecting or clearing forwards camera requests to the
// map and, on narrow viewports, asks the list panel to collapse.
package selection

import "footprints/internal/models"

const (
	// SelectedZoom is the close-in zoom level used when a location is selected.
	SelectedZoom = 12.0

	// ListBreakpoint is the viewport width (logical px) at or below which
	// the list panel collapses by default and after a selection.
	ListBreakpoint = 1024
)

// DefaultCenter is the camera center when nothing is selected.
var DefaultCenter = models.Coordinates{104.5, 36.0}

// DefaultZoom returns the overview zoom level for a viewport width.
func DefaultZoom(width int) float64 {
	switch {
	case width <= 480:
		return 3
	case width <= 768:
		return 3.5
	case width <= ListBreakpoint:
		return 4
	default:
		return 4.5
	}
}

// Narrow reports whether width is at or below the list breakpoint.
func Narrow(width int) bool {
	return width <= ListBreakpoint
}

// Camera receives camera movement requests. The map adapter implements it.
type Camera interface {
	SetCenter(c models.Coordinates)
	SetZoom(level float64)
}

// Panel receives list panel visibility requests.
type Panel interface {
	HideList()
}

// Coordinator tracks the selected location. It holds no map state of its
// own; every camera change is forwarded.
type Coordinator struct {
	selected *models.Location
	camera   Camera
	panel    Panel
}

// New creates a coordinator with nothing selected. panel may be nil.
func New(camera Camera, panel Panel) *Coordinator {
	return &Coordinator{camera: camera, panel: panel}
}

// Restore sets the selection without moving the camera. It is used when
// rebuilding a session whose camera position was persisted separately.
func (c *Coordinator) Restore(loc *models.Location) {
	c.selected = loc
}

// Select makes loc the only selected location and moves the camera to it.
func (c *Coordinator) Select(loc models.Location, viewportWidth int) {
	c.selected = &loc
	c.camera.SetCenter(loc.Coordinates)
	c.camera.SetZoom(SelectedZoom)
	if c.panel != nil && Narrow(viewportWidth) {
		c.panel.HideList()
	}
}

// Clear drops the selection and resets the camera to the overview.
func (c *Coordinator) Clear(viewportWidth int) {
	c.selected = nil
	c.camera.SetZoom(DefaultZoom(viewportWidth))
	c.camera.SetCenter(DefaultCenter)
}

// Selected returns the selected location, or nil.
func (c *Coordinator) Selected() *models.Location {
	return c.selected
}

// SelectedID returns the selected location's ID, or 0 when none is selected.
func (c *Coordinator) SelectedID() int {
	if c.selected == nil {
		return 0
	}
	return c.selected.ID
}

// IsSelected reports whether the location with id is the selected one.
func (c *Coordinator) IsSelected(id int) bool {
	return c.selected != nil && c.selected.ID == id
}
