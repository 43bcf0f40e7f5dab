package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"empadas-server/src/apperr"
	"empadas-server/src/models"
	"empadas-server/src/store"
)

type fakeOverrideProvider struct {
	store store.Store[models.CatalogProductOverride]
	err   error
}

func (p *fakeOverrideProvider) CatalogOverrides(ctx context.Context) (store.Store[models.CatalogProductOverride], error) {
	return p.store, p.err
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	local := store.NewLocalStore[models.CatalogProductOverride](t.TempDir(), "")
	return New(&fakeOverrideProvider{store: local}, true)
}

func floatPtr(f float64) *float64 { return &f }

func availabilityPtr(a models.ProductAvailability) *models.ProductAvailability { return &a }

func TestMergeOverridesAppliesSparseFields(t *testing.T) {
	defaults := []models.Product{
		{ID: "p1", Name: "Um", Price: 10, Availability: models.AvailabilityAvailable},
		{ID: "p2", Name: "Dois", Price: 10, Availability: models.AvailabilityAvailable},
	}
	overrides := []models.CatalogProductOverride{
		{ID: "p1", Price: floatPtr(12.5)},
		{ID: "p2", Availability: availabilityPtr(models.AvailabilityUnavailable)},
		{ID: "ghost", Price: floatPtr(99)},
	}

	merged := MergeOverrides(defaults, overrides)
	require.Len(t, merged, 2, "overrides for unknown products are ignored")

	assert.Equal(t, 12.5, merged[0].Price)
	assert.Equal(t, models.AvailabilityAvailable, merged[0].Availability)
	assert.Equal(t, 10.0, merged[1].Price)
	assert.Equal(t, models.AvailabilityUnavailable, merged[1].Availability)
}

func TestMergeOverridesDefaultsEmptyAvailability(t *testing.T) {
	defaults := []models.Product{{ID: "p1", Name: "Um", Price: 10}}

	merged := MergeOverrides(defaults, nil)
	require.Len(t, merged, 1)
	assert.Equal(t, models.AvailabilityAvailable, merged[0].Availability)
}

func TestListServesDefaultsWhenStoreUnavailable(t *testing.T) {
	svc := New(&fakeOverrideProvider{err: errors.New("variável de ambiente faltando: GOOGLE_DRIVE_ADMIN_FOLDER_ID")}, true)

	items := svc.List(context.Background())
	require.Len(t, items, len(DefaultProducts))
	assert.Equal(t, DefaultProducts[0].Price, items[0].Price)
}

func TestUpdateThenListReflectsOverride(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	err := svc.Update(ctx, models.CatalogProductOverride{
		ID:           "empada-frango",
		Price:        floatPtr(14),
		Availability: availabilityPtr(models.AvailabilityOnDemand),
	})
	require.NoError(t, err)

	product, ok := svc.Get(ctx, "empada-frango")
	require.True(t, ok)
	assert.Equal(t, 14.0, product.Price)
	assert.Equal(t, models.AvailabilityOnDemand, product.Availability)
	assert.Equal(t, "Empada de Frango", product.Name, "fixed content is untouched")
}

func TestUpdateRejectsInvalidOverride(t *testing.T) {
	svc := newTestService(t)

	err := svc.Update(context.Background(), models.CatalogProductOverride{
		ID:    "empada-frango",
		Price: floatPtr(-1),
	})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.CodeBadRequest, appErr.Code)
}

func TestResetRevertsToDefaults(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Update(ctx, models.CatalogProductOverride{
		ID:    "empada-queijo",
		Price: floatPtr(20),
	}))
	require.NoError(t, svc.Reset(ctx, "empada-queijo"))

	product, ok := svc.Get(ctx, "empada-queijo")
	require.True(t, ok)
	assert.Equal(t, 10.0, product.Price)
}

func TestGetUnknownProduct(t *testing.T) {
	svc := newTestService(t)

	_, ok := svc.Get(context.Background(), "empada-inexistente")
	assert.False(t, ok)
}
