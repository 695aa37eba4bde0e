// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package filter derives the visible subset of locations from the active
// category, year, search term and language, and builds the category and
// year facet lists shown as filter buttons.
package filter

import (
	"slices"
	"strings"

	"footprints/internal/i18n"
	"footprints/internal/models"
)

// State is the filter state of one viewer session. Category and Year hold
// either a facet value or the ALL sentinel of Language.
type State struct {
	Category string        `json:"category"`
	Year     string        `json:"year"`
	Search   string        `json:"search"`
	Language i18n.Language `json:"language"`
}

// Reset returns the state with both sentinels for lang and no search term.
func Reset(lang i18n.Language) State {
	all := i18n.All(lang)
	return State{Category: all, Year: all, Language: lang}
}

// Switch moves s to lang. Category and year return to the ALL sentinel of
// lang because the sentinel is a translated string; the search term is
// language-neutral and survives.
func Switch(s State, lang i18n.Language) State {
	next := Reset(lang)
	next.Search = s.Search
	return next
}

// Active reports whether any filter narrows the list.
func (s State) Active() bool {
	all := i18n.All(s.Language)
	return s.Category != all || s.Year != all || s.Search != ""
}

// Apply returns the locations matching s, preserving their relative order.
func Apply(locations []models.Location, s State) []models.Location {
	all := i18n.All(s.Language)
	term := strings.ToLower(s.Search)

	out := make([]models.Location, 0, len(locations))
	for _, loc := range locations {
		if matchesCategory(loc, s, all) && matchesYear(loc, s, all) && matchesSearch(loc, term) {
			out = append(out, loc)
		}
	}
	return out
}

func matchesCategory(loc models.Location, s State, all string) bool {
	switch {
	case s.Category == all:
		return true
	case s.Language == i18n.English:
		return i18n.Localize(loc.Category, i18n.English) == s.Category
	default:
		return loc.Category == s.Category
	}
}

func matchesYear(loc models.Location, s State, all string) bool {
	return s.Year == all || loc.Year() == s.Year
}

// matchesSearch expects term already lowercased. An empty term matches.
func matchesSearch(loc models.Location, term string) bool {
	return strings.Contains(strings.ToLower(loc.Name), term) ||
		strings.Contains(strings.ToLower(loc.Description), term)
}

// Categories builds the category facet: the ALL sentinel followed by the
// distinct stored categories in first-seen order. In English each label
// is localized; in Chinese labels are shown as stored.
func Categories(locations []models.Location, lang i18n.Language) []string {
	seen := make(map[string]bool, len(locations))
	out := []string{i18n.All(lang)}
	for _, loc := range locations {
		if seen[loc.Category] {
			continue
		}
		seen[loc.Category] = true
		if lang == i18n.English {
			out = append(out, i18n.Localize(loc.Category, i18n.English))
		} else {
			out = append(out, loc.Category)
		}
	}
	return out
}

// Years builds the year facet: the ALL sentinel followed by the distinct
// visit years sorted descending. Years are compared as strings, which
// matches numeric order for four-digit years.
func Years(locations []models.Location, lang i18n.Language) []string {
	seen := make(map[string]bool, len(locations))
	var years []string
	for _, loc := range locations {
		y := loc.Year()
		if seen[y] {
			continue
		}
		seen[y] = true
		years = append(years, y)
	}
	slices.Sort(years)
	slices.Reverse(years)
	return append([]string{i18n.All(lang)}, years...)
}
