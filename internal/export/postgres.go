package export

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/sheetmap/internal/models"
)

// DatasetStore persists a whole dataset.
type DatasetStore interface {
	EnsureSchema(ctx context.Context) error
	ReplaceDataset(ctx context.Context, data *models.Dataset) error
}

// Postgres replaces the stored dataset with data, creating tables on first use.
func Postgres(ctx context.Context, store DatasetStore, data *models.Dataset) error {
	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to prepare database schema: %w", err)
	}
	if err := store.ReplaceDataset(ctx, data); err != nil {
		return fmt.Errorf("failed to store dataset: %w", err)
	}

	return nil
}
