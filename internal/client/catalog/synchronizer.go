// Package catalog keeps the product form, the remote collection and the local
// list consistent across list, create, update and delete.
//
// The local list is always replaced wholesale by a successful fetch. A write
// triggers a fresh fetch unless merge-on-write is enabled, and a delete drops
// the record locally without refetching. Operations log their failures and
// return them; callers that only need the state may ignore the error.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/gophcatalog/internal/client/client"
	"github.com/dmitrijs2005/gophcatalog/internal/client/models"
	"github.com/dmitrijs2005/gophcatalog/internal/client/preview"
	"github.com/dmitrijs2005/gophcatalog/internal/client/services"
	"github.com/dmitrijs2005/gophcatalog/internal/logging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrUnknownProduct = errors.New("product not in local list")

// Option customizes a Synchronizer.
type Option func(*Synchronizer)

// WithMergeOnWrite makes Submit upsert the record echoed by the API into the
// local list instead of refetching the collection. Without an echoed record
// Submit falls back to a fetch.
func WithMergeOnWrite(enabled bool) Option {
	return func(s *Synchronizer) { s.mergeOnWrite = enabled }
}

// Synchronizer owns the draft, the id being edited, and the local list.
type Synchronizer struct {
	svc          services.ProductService
	log          logging.Logger
	mergeOnWrite bool

	mu        sync.Mutex
	draft     models.Draft
	editingID string
	products  []models.Product
	mode      Mode
	// selection is bumped on every file selection and every draft reset;
	// a preview applies only if it still matches.
	selection uint64
}

func New(svc services.ProductService, log logging.Logger, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		svc:   svc,
		log:   log.With("component", "catalog"),
		draft: models.EmptyDraft(),
		mode:  ModeOffline,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// withRequest tags ctx with a request id shared by the HTTP call and the
// logs of one operation.
func (s *Synchronizer) withRequest(ctx context.Context, op string) (context.Context, logging.Logger) {
	id := uuid.NewString()
	return client.WithRequestID(ctx, id), s.log.With("operation", op, "request_id", id)
}

// LoadAll fetches the remote collection and replaces the local list with it.
// On failure the list is left as it was and the mode becomes offline.
func (s *Synchronizer) LoadAll(ctx context.Context) ([]models.Product, error) {
	ctx, log := s.withRequest(ctx, "loadAll")

	list, err := s.svc.Fetch(ctx)
	if err != nil {
		log.Error(ctx, "fetch failed", "error", client.Detail(err))
		s.mu.Lock()
		s.mode = ModeOffline
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	s.products = list
	s.mode = ModeOnline
	s.mu.Unlock()

	log.Debug(ctx, "list replaced", "count", len(list))
	return slices.Clone(list), nil
}

// Restore fills an empty local list from the snapshot cache. It does nothing
// when the list already holds a fetch result.
func (s *Synchronizer) Restore(ctx context.Context) (int, error) {
	s.mu.Lock()
	loaded := len(s.products) > 0 || s.mode == ModeOnline
	s.mu.Unlock()
	if loaded {
		return 0, nil
	}

	list, at, err := s.svc.Cached(ctx)
	if err != nil {
		s.log.Warn(ctx, "snapshot unavailable", "operation", "restore", "error", err)
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.products) > 0 || s.mode == ModeOnline {
		return 0, nil
	}
	s.products = list
	if len(list) > 0 {
		s.log.Info(ctx, "restored snapshot", "operation", "restore", "count", len(list), "synced_at", at)
	}
	return len(list), nil
}

// Submit sends the draft as a create, or as an update when an edit is in
// progress. On success the draft is reset and the list refreshed; on failure
// the draft and the edit target are kept.
func (s *Synchronizer) Submit(ctx context.Context) error {
	ctx, log := s.withRequest(ctx, "submit")

	s.mu.Lock()
	draft := s.draft
	id := s.editingID
	s.mu.Unlock()

	var (
		written *models.Product
		err     error
	)
	if id != "" {
		written, err = s.svc.Update(ctx, id, draft)
	} else {
		written, err = s.svc.Create(ctx, draft)
	}
	if err != nil {
		log.Error(ctx, "submit failed", "id", id, "error", client.Detail(err))
		return err
	}

	s.mu.Lock()
	s.resetLocked()
	merged := s.mergeOnWrite && written != nil && written.ID != ""
	if merged {
		s.products = upsert(s.products, *written)
	}
	s.mu.Unlock()

	if merged {
		s.svc.Remember(ctx, *written)
		log.Info(ctx, "submitted", "id", written.ID, "merged", true)
		return nil
	}

	log.Info(ctx, "submitted", "id", id)
	// A failed refresh is logged by LoadAll; the write itself succeeded.
	_, _ = s.LoadAll(ctx)
	return nil
}

func upsert(list []models.Product, p models.Product) []models.Product {
	out := slices.Clone(list)
	if i := slices.IndexFunc(out, func(x models.Product) bool { return x.ID == p.ID }); i >= 0 {
		out[i] = p
		return out
	}
	return append(out, p)
}

// Remove deletes the record remotely and drops it from the local list.
func (s *Synchronizer) Remove(ctx context.Context, id string) error {
	ctx, log := s.withRequest(ctx, "remove")

	if err := s.svc.Delete(ctx, id); err != nil {
		log.Error(ctx, "delete failed", "id", id, "error", client.Detail(err))
		return err
	}

	s.mu.Lock()
	s.products = slices.DeleteFunc(slices.Clone(s.products), func(p models.Product) bool { return p.ID == id })
	s.mu.Unlock()

	log.Info(ctx, "deleted", "id", id)
	return nil
}

// BeginEdit loads record into the draft. The image is never carried over;
// the current image stays visible through the preview.
func (s *Synchronizer) BeginEdit(record models.Product) models.Draft {
	d := models.DraftFromProduct(record.Normalized())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection++
	s.draft = d
	s.editingID = record.ID
	return d
}

// BeginEditByID starts editing the record with id from the local list.
func (s *Synchronizer) BeginEditByID(id string) (models.Draft, error) {
	s.mu.Lock()
	i := slices.IndexFunc(s.products, func(p models.Product) bool { return p.ID == id })
	var record models.Product
	if i >= 0 {
		record = s.products[i]
	}
	s.mu.Unlock()

	if i < 0 {
		return models.Draft{}, fmt.Errorf("%w: %s", ErrUnknownProduct, id)
	}
	return s.BeginEdit(record), nil
}

// SelectFile records file as the image to upload and starts reading it for
// the preview. The returned Future completes after the preview was applied,
// or dropped because the selection changed meanwhile. A zero file is ignored
// and yields nil.
func (s *Synchronizer) SelectFile(ctx context.Context, file models.FileRef) *preview.Future {
	if file.IsZero() {
		return nil
	}

	s.mu.Lock()
	s.selection++
	gen := s.selection
	f := file
	s.draft.Image = &f
	s.mu.Unlock()

	return preview.ReadThen(ctx, file, func(uri string, err error) {
		if err != nil {
			s.log.Warn(ctx, "preview failed", "operation", "selectFile", "file", file.Name, "error", err)
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.selection != gen {
			return
		}
		s.draft.Preview = uri
	})
}

func (s *Synchronizer) SetName(name string) {
	s.mu.Lock()
	s.draft.Name = name
	s.mu.Unlock()
}

func (s *Synchronizer) SetPrice(price decimal.Decimal) {
	s.mu.Lock()
	s.draft.Price = price
	s.mu.Unlock()
}

func (s *Synchronizer) SetDescription(desc string) {
	s.mu.Lock()
	s.draft.Description = desc
	s.mu.Unlock()
}

// CancelEdit discards the draft and leaves edit mode.
func (s *Synchronizer) CancelEdit() {
	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()
}

func (s *Synchronizer) resetLocked() {
	s.selection++
	s.draft = models.EmptyDraft()
	s.editingID = ""
}

func (s *Synchronizer) Draft() models.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// EditingID is empty when the draft describes a new record.
func (s *Synchronizer) EditingID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingID
}

// Products returns a copy of the local list.
func (s *Synchronizer) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.products)
}

func (s *Synchronizer) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}
