// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"footprints/internal/models"
)

// LocationStore reads location records from the database.
type LocationStore struct {
	db *sql.DB
}

// NewLocationStore returns a new LocationStore.
func NewLocationStore(db *sql.DB) *LocationStore {
	return &LocationStore{db: db}
}

const locationColumns = `name, description, lng, lat, visit_date, category`

// scanRecord scans a row into a Record.
func scanRecord(scanner interface{ Scan(...any) error }) (models.Record, error) {
	var r models.Record
	var lng, lat float64
	if err := scanner.Scan(&r.Name, &r.Description, &lng, &lat, &r.VisitDate, &r.Category); err != nil {
		return models.Record{}, err
	}
	r.Coordinates = models.Coordinates{lng, lat}
	return r, nil
}

// ListAll returns every record in display order. It returns a nil slice
// when the table is empty.
func (s *LocationStore) ListAll(ctx context.Context) ([]models.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+locationColumns+` FROM locations ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var out []models.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locations: %w", err)
	}
	return out, nil
}

// Append stores r after the last record.
func (s *LocationStore) Append(ctx context.Context, r models.Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO locations (position, name, description, lng, lat, visit_date, category)
		VALUES ((SELECT COALESCE(MAX(position), 0) + 1 FROM locations), $1, $2, $3, $4, $5, $6)
	`, r.Name, r.Description, r.Coordinates.Lng(), r.Coordinates.Lat(), r.VisitDate, r.Category)
	if err != nil {
		return fmt.Errorf("append location %q: %w", r.Name, err)
	}
	return nil
}

// Count returns the number of stored records.
func (s *LocationStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM locations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count locations: %w", err)
	}
	return n, nil
}
