package products

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophcatalog/internal/client/models"
)

// Repository stores the last successfully fetched product list.
type Repository interface {
	// ReplaceAll swaps the stored list for products in one transaction and
	// records the time of the snapshot.
	ReplaceAll(ctx context.Context, products []models.Product) error

	// GetAll returns the stored list in the order it was saved.
	GetAll(ctx context.Context) ([]models.Product, error)

	// Upsert stores p, keeping its position when it already exists and
	// appending it otherwise.
	Upsert(ctx context.Context, p models.Product) error

	// DeleteByID removes the record with id. Missing ids are not an error.
	DeleteByID(ctx context.Context, id string) error

	// SyncedAt returns when ReplaceAll last succeeded; zero if never.
	SyncedAt(ctx context.Context) (time.Time, error)
}
