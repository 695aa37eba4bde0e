// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package viewer

import (
	"html/template"

	"footprints/internal/filter"
	"footprints/internal/i18n"
	"footprints/internal/mapview"
	"footprints/internal/markdown"
	"footprints/internal/models"
)

// Facet is one filter button.
type Facet struct {
	Value  string `json:"value"`
	Active bool   `json:"active"`
}

// Card is one entry of the location list.
type Card struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	VisitDate   string `json:"visitDate"`
	Category    string `json:"category"`
	MarkerClass string `json:"markerClass"`
	Active      bool   `json:"active"`
}

// Detail is the selected location panel.
type Detail struct {
	ID              int                `json:"id"`
	Name            string             `json:"name"`
	VisitDate       string             `json:"visitDate"`
	Category        string             `json:"category"`
	Coordinates     models.Coordinates `json:"coordinates"`
	Description     string             `json:"description"`
	DescriptionHTML template.HTML      `json:"descriptionHtml"`
}

// View is the render model of the whole page for one session.
type View struct {
	Loading      bool          `json:"loading"`
	Language     i18n.Language `json:"language"`
	Filter       filter.State  `json:"filter"`
	FilterActive bool          `json:"filterActive"`
	Categories   []Facet       `json:"categories"`
	Years        []Facet       `json:"years"`
	Locations    []Card        `json:"locations"`
	Total        int           `json:"total"`
	Shown        int           `json:"shown"`
	Stats        string        `json:"stats"`
	Selected     *Detail       `json:"selected,omitempty"`
	ListVisible  bool          `json:"listVisible"`
	DarkMode     bool          `json:"darkMode"`
	Map          mapview.State `json:"map"`
}

// View builds the render model. While the store is loading only the
// loading flag, the session flags and an empty map are set.
func (v *Viewer) View() View {
	lang := v.state.Language
	out := View{
		Language:     lang,
		Filter:       v.state.Filter,
		FilterActive: v.state.Filter.Active(),
		Categories:   []Facet{},
		Years:        []Facet{},
		Locations:    []Card{},
		ListVisible:  v.state.ListVisible,
		DarkMode:     v.state.DarkMode,
	}

	snap, ok := v.src.Snapshot()
	if !ok {
		out.Loading = true
		out.Map = v.m.State()
		return out
	}

	for _, c := range filter.Categories(snap.Locations, lang) {
		out.Categories = append(out.Categories, Facet{Value: c, Active: c == v.state.Filter.Category})
	}
	for _, y := range filter.Years(snap.Locations, lang) {
		out.Years = append(out.Years, Facet{Value: y, Active: y == v.state.Filter.Year})
	}

	shown := filter.Apply(snap.Locations, v.state.Filter)
	for _, loc := range shown {
		out.Locations = append(out.Locations, Card{
			ID:          loc.ID,
			Name:        loc.Name,
			Description: loc.Description,
			VisitDate:   loc.VisitDate,
			Category:    i18n.Localize(loc.Category, lang),
			MarkerClass: i18n.MarkerClass(loc.Category),
			Active:      v.sel.IsSelected(loc.ID),
		})
	}
	out.Total = len(snap.Locations)
	out.Shown = len(shown)
	out.Stats = i18n.T(lang, "list.stats", out.Shown)
	if out.Shown != out.Total {
		out.Stats += i18n.T(lang, "list.statsFiltered", out.Total)
	}

	if loc := v.sel.Selected(); loc != nil {
		out.Selected = &Detail{
			ID:              loc.ID,
			Name:            loc.Name,
			VisitDate:       loc.VisitDate,
			Category:        i18n.Localize(loc.Category, lang),
			Coordinates:     loc.Coordinates,
			Description:     loc.Description,
			DescriptionHTML: markdown.Render(loc.Description),
		}
	}

	markers := v.m.PlaceLayer(v.layer, snap.Generation, snap.Locations, lang)
	markers.Sync(v.sel.SelectedID())
	out.Map = v.m.State()
	return out
}
