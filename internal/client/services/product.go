// Package services contains the application services of the catalog client.
// ProductService combines the remote API, record normalization and the local
// snapshot cache.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophcatalog/internal/client/client"
	"github.com/dmitrijs2005/gophcatalog/internal/client/models"
	"github.com/dmitrijs2005/gophcatalog/internal/client/repositories/products"
	"github.com/dmitrijs2005/gophcatalog/internal/logging"
)

// ProductService defines the product operations used by the synchronizer.
//
// Contract:
//   - Fetch returns the normalized remote collection and stores it as the
//     local snapshot.
//   - Create/Update send a draft; the returned record is normalized, or nil
//     when the API did not echo one.
//   - Delete removes the record remotely, then from the snapshot.
//   - Cached returns the snapshot and when it was taken.
//
// Snapshot failures never fail a remote operation; they are logged.
type ProductService interface {
	Fetch(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, draft models.Draft) (*models.Product, error)
	Update(ctx context.Context, id string, draft models.Draft) (*models.Product, error)
	Delete(ctx context.Context, id string) error
	Remember(ctx context.Context, p models.Product)
	Cached(ctx context.Context) ([]models.Product, time.Time, error)
	Close(ctx context.Context) error
}

type productService struct {
	client client.Client
	repo   products.Repository
	log    logging.Logger
}

// NewProductService wires a service. repo may be nil when the snapshot cache
// is disabled.
func NewProductService(c client.Client, repo products.Repository, log logging.Logger) ProductService {
	return &productService{client: c, repo: repo, log: log.With("component", "product_service")}
}

func (s *productService) Fetch(ctx context.Context) ([]models.Product, error) {
	list, err := s.client.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}

	normalized := models.Normalize(list)
	for _, p := range normalized {
		if len(p.Issues) > 0 {
			s.log.Warn(ctx, "record partly unreadable", "id", p.ID, "issues", p.Issues)
		}
	}

	if s.repo != nil {
		if err := s.repo.ReplaceAll(ctx, normalized); err != nil {
			s.log.Warn(ctx, "snapshot not saved", "error", err)
		}
	}
	return normalized, nil
}

func (s *productService) Create(ctx context.Context, draft models.Draft) (*models.Product, error) {
	p, err := s.client.Create(ctx, client.FormFromDraft(draft))
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return normalized(p), nil
}

func (s *productService) Update(ctx context.Context, id string, draft models.Draft) (*models.Product, error) {
	p, err := s.client.Update(ctx, id, client.FormFromDraft(draft))
	if err != nil {
		return nil, fmt.Errorf("update product %s: %w", id, err)
	}
	return normalized(p), nil
}

func normalized(p *models.Product) *models.Product {
	if p == nil {
		return nil
	}
	n := p.Normalized()
	return &n
}

func (s *productService) Delete(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	if s.repo != nil {
		if err := s.repo.DeleteByID(ctx, id); err != nil {
			s.log.Warn(ctx, "snapshot not updated after delete", "id", id, "error", err)
		}
	}
	return nil
}

// Remember stores a single written record in the snapshot.
func (s *productService) Remember(ctx context.Context, p models.Product) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Upsert(ctx, p.Normalized()); err != nil {
		s.log.Warn(ctx, "snapshot not updated after write", "id", p.ID, "error", err)
	}
}

func (s *productService) Cached(ctx context.Context) ([]models.Product, time.Time, error) {
	if s.repo == nil {
		return nil, time.Time{}, nil
	}
	list, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("read snapshot: %w", err)
	}
	at, err := s.repo.SyncedAt(ctx)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("read snapshot: %w", err)
	}
	return list, at, nil
}

func (s *productService) Close(ctx context.Context) error {
	return s.client.Close()
}
