// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"footprints/internal/creator"
)

// Input limits for event values and creator fields.
const (
	maxSearchLen      = 200
	maxFacetLen       = 100
	maxViewportWidth  = 16_384
	maxNameLen        = 300
	maxDescriptionLen = 10_000
	maxCoordinatesLen = 100
)

// validateSearch checks a search term and returns the first error found.
func validateSearch(term string) string {
	if utf8.RuneCountInString(term) > maxSearchLen {
		return fmt.Sprintf("Search term is too long (max %d characters).", maxSearchLen)
	}
	return ""
}

// validateFacet checks a category or year filter value.
func validateFacet(value string) string {
	if utf8.RuneCountInString(value) > maxFacetLen {
		return fmt.Sprintf("Filter value is too long (max %d characters).", maxFacetLen)
	}
	return ""
}

// parseViewportWidth parses the width of a viewport event.
func parseViewportWidth(s string) (int, string) {
	width, err := strconv.Atoi(s)
	if err != nil || width <= 0 {
		return 0, "Width must be a positive integer."
	}
	if width > maxViewportWidth {
		return 0, fmt.Sprintf("Width is too large (max %d).", maxViewportWidth)
	}
	return width, ""
}

// validateDraft checks creator field sizes. Content rules live in
// creator.Draft.Validate; this only bounds what the server accepts.
func validateDraft(d creator.Draft) string {
	if utf8.RuneCountInString(d.Name) > maxNameLen {
		return fmt.Sprintf("Name is too long (max %d characters).", maxNameLen)
	}
	if utf8.RuneCountInString(d.Description) > maxDescriptionLen {
		return fmt.Sprintf("Description is too long (max %d characters).", maxDescriptionLen)
	}
	if utf8.RuneCountInString(d.Coordinates) > maxCoordinatesLen {
		return "Coordinates are too long."
	}
	if utf8.RuneCountInString(d.Category) > maxFacetLen {
		return "Category is too long."
	}
	return ""
}
