package catalog

import (
	"context"
	"log"

	"empadas-server/src/apperr"
	"empadas-server/src/models"
	"empadas-server/src/store"
)

const scope = "catálogo"

// OverrideProvider yields the catalog override store, built lazily on first use.
type OverrideProvider interface {
	CatalogOverrides(ctx context.Context) (store.Store[models.CatalogProductOverride], error)
}

type Service struct {
	provider OverrideProvider
	verbose  bool
}

func New(provider OverrideProvider, verboseErrors bool) *Service {
	return &Service{provider: provider, verbose: verboseErrors}
}

func (s *Service) wrap(err error) error {
	return store.FriendlyDriveError(scope, err, s.verbose)
}

// MergeOverrides applies the sparse overrides onto the default products by
// id; a field the override leaves nil keeps its default.
func MergeOverrides(defaults []models.Product, overrides []models.CatalogProductOverride) []models.Product {
	byID := make(map[string]models.CatalogProductOverride, len(overrides))
	for _, o := range overrides {
		byID[o.ID] = o
	}

	items := make([]models.Product, len(defaults))
	for i, p := range defaults {
		if o, ok := byID[p.ID]; ok {
			if o.Price != nil {
				p.Price = *o.Price
			}
			if o.Availability != nil {
				p.Availability = *o.Availability
			}
		}
		if p.Availability == "" {
			p.Availability = models.AvailabilityAvailable
		}
		items[i] = p
	}
	return items
}

// List returns the merged catalog. The storefront is public and must keep
// working when Drive is down, so override read failures degrade to defaults.
func (s *Service) List(ctx context.Context) []models.Product {
	var overrides []models.CatalogProductOverride
	if overrideStore, err := s.provider.CatalogOverrides(ctx); err == nil {
		if items, listErr := overrideStore.List(ctx); listErr == nil {
			overrides = items
		} else {
			log.Printf("ERROR: Failed to list catalog overrides, serving defaults: %v", listErr)
		}
	}
	return MergeOverrides(DefaultProducts, overrides)
}

// Get returns a single merged product.
func (s *Service) Get(ctx context.Context, id string) (models.Product, bool) {
	for _, p := range s.List(ctx) {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// Update upserts a sparse override for a product.
func (s *Service) Update(ctx context.Context, override models.CatalogProductOverride) error {
	if err := override.Validate(); err != nil {
		return apperr.BadRequest(err.Error())
	}
	overrideStore, err := s.provider.CatalogOverrides(ctx)
	if err != nil {
		return s.wrap(err)
	}
	if _, err := overrideStore.Put(ctx, override); err != nil {
		return s.wrap(err)
	}
	return nil
}

// Reset deletes the override, reverting the product to its defaults.
func (s *Service) Reset(ctx context.Context, id string) error {
	overrideStore, err := s.provider.CatalogOverrides(ctx)
	if err != nil {
		return s.wrap(err)
	}
	if err := overrideStore.Delete(ctx, id); err != nil {
		return s.wrap(err)
	}
	return nil
}
