package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/sheetmap/internal/models"
	"github.com/jackc/pgx/v5"
)

const schemaQuery = `
	CREATE TABLE IF NOT EXISTS book_points (
		position INTEGER PRIMARY KEY,
		lat      DOUBLE PRECISION NOT NULL,
		lng      DOUBLE PRECISION NOT NULL,
		count    INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS volunteers (
		position INTEGER PRIMARY KEY,
		id       INTEGER NOT NULL,
		lat      DOUBLE PRECISION NOT NULL,
		lng      DOUBLE PRECISION NOT NULL,
		name     TEXT NOT NULL,
		books    INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS schools (
		position INTEGER PRIMARY KEY,
		id       INTEGER NOT NULL,
		lat      DOUBLE PRECISION NOT NULL,
		lng      DOUBLE PRECISION NOT NULL,
		name     TEXT NOT NULL,
		students INTEGER NOT NULL
	);
`

// EnsureSchema creates the book_points, volunteers and schools tables if they do not exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schemaQuery); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// ReplaceDataset swaps the stored records for the ones in data inside a single
// transaction. The position column keeps the order rows had in the workbook.
// On any failure the transaction is rolled back and previous contents survive.
func (r *Repository) ReplaceDataset(ctx context.Context, data *models.Dataset) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err = r.replace(ctx, tx, data); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			r.log.ErrorContext(ctx, "Failed to roll back transaction", "error", rbErr)
		}
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.log.InfoContext(ctx, "Dataset stored in database",
		"book_points", len(data.BookData),
		"volunteers", len(data.Volunteers),
		"schools", len(data.Schools))

	return nil
}

func (r *Repository) replace(ctx context.Context, tx pgx.Tx, data *models.Dataset) error {
	for _, table := range []string{"book_points", "volunteers", "schools"} {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table+";"); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i, p := range data.BookData {
		_, err := tx.Exec(ctx,
			`INSERT INTO book_points (position, lat, lng, count) VALUES ($1, $2, $3, $4);`,
			i+1, p.Latitude, p.Longitude, p.Count)
		if err != nil {
			return fmt.Errorf("failed to insert book point: %w", err)
		}
	}

	for i, v := range data.Volunteers {
		_, err := tx.Exec(ctx,
			`INSERT INTO volunteers (position, id, lat, lng, name, books) VALUES ($1, $2, $3, $4, $5, $6);`,
			i+1, v.ID, v.Latitude, v.Longitude, v.Name, v.Books)
		if err != nil {
			return fmt.Errorf("failed to insert volunteer: %w", err)
		}
	}

	for i, s := range data.Schools {
		_, err := tx.Exec(ctx,
			`INSERT INTO schools (position, id, lat, lng, name, students) VALUES ($1, $2, $3, $4, $5, $6);`,
			i+1, s.ID, s.Latitude, s.Longitude, s.Name, s.Students)
		if err != nil {
			return fmt.Errorf("failed to insert school: %w", err)
		}
	}

	return nil
}
