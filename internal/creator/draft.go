// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package creator assembles a new location record from the manual entry
// form and exports it as pretty-printed JSON. The record is detached: it
// is never merged into the loaded locations and must be added to the data
// source by hand.
package creator

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"footprints/internal/i18n"
	"footprints/internal/models"
)

// Draft is the form state of the Creator panel.
type Draft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	VisitDate   string `json:"visitDate"`
	Category    string `json:"category"`
	Coordinates string `json:"coordinates"`
}

// NewDraft returns an empty draft with the default category.
func NewDraft() Draft {
	return Draft{Category: i18n.DefaultCategory}
}

// ValidationError names the first invalid field. MessageKey is the catalog
// key of the user-facing alert.
type ValidationError struct {
	Field      string
	MessageKey string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("creator: invalid %s", e.Field)
}

// Message returns the localized alert text.
func (e *ValidationError) Message(lang i18n.Language) string {
	return i18n.T(lang, e.MessageKey)
}

const dateLayout = "2006-01-02"

// Validate checks the draft in form order (name, coordinates, description,
// date) and returns the parsed record. Nothing is retained on failure.
func (d Draft) Validate() (models.Record, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return models.Record{}, &ValidationError{Field: "name", MessageKey: "creator.alerts.noName"}
	}

	if strings.TrimSpace(d.Coordinates) == "" {
		return models.Record{}, &ValidationError{Field: "coordinates", MessageKey: "creator.alerts.noCoordinates"}
	}
	coords, err := ParseCoordinates(d.Coordinates)
	if err != nil {
		return models.Record{}, &ValidationError{Field: "coordinates", MessageKey: "creator.alerts.badCoordinates"}
	}

	desc := strings.TrimSpace(d.Description)
	if desc == "" {
		return models.Record{}, &ValidationError{Field: "description", MessageKey: "creator.alerts.noDescription"}
	}

	date := strings.TrimSpace(d.VisitDate)
	if date == "" {
		return models.Record{}, &ValidationError{Field: "visitDate", MessageKey: "creator.alerts.noDate"}
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return models.Record{}, &ValidationError{Field: "visitDate", MessageKey: "creator.alerts.badDate"}
	}

	category := d.Category
	if category == "" {
		category = i18n.DefaultCategory
	}

	return models.Record{
		Name:        name,
		Description: desc,
		Coordinates: coords,
		VisitDate:   date,
		Category:    category,
	}, nil
}

// ParseCoordinates parses a "lng, lat" pair into numeric coordinates.
func ParseCoordinates(s string) (models.Coordinates, error) {
	lngText, latText, ok := strings.Cut(s, ",")
	if !ok {
		return models.Coordinates{}, fmt.Errorf("coordinates %q: want \"lng, lat\"", s)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngText), 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("longitude: %w", err)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latText), 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("latitude: %w", err)
	}

	c := models.Coordinates{lng, lat}
	if !c.Valid() {
		return models.Coordinates{}, fmt.Errorf("coordinates %q out of range", s)
	}
	return c, nil
}

// Export validates the draft and returns the record as JSON indented with
// two spaces, in the locations.json record shape.
func (d Draft) Export() (string, error) {
	rec, err := d.Validate()
	if err != nil {
		return "", err
	}
	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("creator marshal: %w", err)
	}
	return string(out), nil
}
