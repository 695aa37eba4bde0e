// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"footprints/internal/models"
)

// Seed fills an empty locations table with records, in order. It is a
// no-op when the table already has rows.
func Seed(ctx context.Context, db *sql.DB, records []models.Record) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM locations").Scan(&count); err != nil {
		return fmt.Errorf("seed check locations: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	for i, r := range records {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO locations (position, name, description, lng, lat, visit_date, category)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, i+1, r.Name, r.Description, r.Coordinates.Lng(), r.Coordinates.Lat(), r.VisitDate, r.Category)
		if err != nil {
			return fmt.Errorf("seed insert %q: %w", r.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with locations", "count", len(records))
	return nil
}
