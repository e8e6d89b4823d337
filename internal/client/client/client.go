package client

import (
	"context"

	"github.com/dmitrijs2005/gophcatalog/internal/client/models"
)

// Client is the contract for talking to the remote product collection.
type Client interface {
	// List returns the whole collection as stored by the API.
	List(ctx context.Context) ([]models.Product, error)
	// Create posts a new record. The returned product is nil when the API does
	// not echo the record back.
	Create(ctx context.Context, form Form) (*models.Product, error)
	// Update replaces the record identified by id.
	Update(ctx context.Context, id string, form Form) (*models.Product, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// Form is the multipart payload of a create or update.
type Form struct {
	Name        string
	Price       string
	Description string
	// Image is nil unless a new file should be uploaded.
	Image *models.FileRef
}

// FormFromDraft builds the payload for d. Preview never leaves the client.
func FormFromDraft(d models.Draft) Form {
	return Form{
		Name:        d.Name,
		Price:       models.FormatPrice(d.Price),
		Description: d.Description,
		Image:       d.Image,
	}
}
