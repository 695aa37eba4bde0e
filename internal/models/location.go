// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"strings"
)

// Coordinates is a [longitude, latitude] pair, serialized as a two-element
// JSON array to match the locations.json format.
type Coordinates [2]float64

// Lng returns the longitude.
func (c Coordinates) Lng() float64 { return c[0] }

// Lat returns the latitude.
func (c Coordinates) Lat() float64 { return c[1] }

// Valid reports whether the pair is a valid geographic coordinate.
func (c Coordinates) Valid() bool {
	return c[0] >= -180 && c[0] <= 180 && c[1] >= -90 && c[1] <= 90
}

// String formats the pair the way the Creator form displays it ("lng, lat").
func (c Coordinates) String() string {
	return fmt.Sprintf("%g, %g", c[0], c[1])
}

// Location is a single visited place. Records are immutable once loaded;
// ID is assigned by the location store at load time (1-based position in
// the loaded list) and is never part of the source data.
type Location struct {
	ID          int         `json:"_id,omitempty"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Coordinates Coordinates `json:"coordinates"`
	VisitDate   string      `json:"visitDate"`
	Category    string      `json:"category"`
}

// Year extracts the visit year: the prefix of VisitDate before the first
// "-", or the whole string if it has no dash.
func (l Location) Year() string {
	return YearOf(l.VisitDate)
}

// YearOf returns the prefix of a YYYY-MM-DD date before the first "-".
func YearOf(date string) string {
	year, _, _ := strings.Cut(date, "-")
	return year
}

// Record is the exported shape of a location without its load-time ID.
// The Creator panel emits it and the database source scans into it.
type Record struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Coordinates Coordinates `json:"coordinates"`
	VisitDate   string      `json:"visitDate"`
	Category    string      `json:"category"`
}

// Location converts a record into a location with the given load-time ID.
func (r Record) Location(id int) Location {
	return Location{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
		Coordinates: r.Coordinates,
		VisitDate:   r.VisitDate,
		Category:    r.Category,
	}
}
