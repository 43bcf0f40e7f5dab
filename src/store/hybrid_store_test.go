package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"empadas-server/src/models"
)

var errNoQuota = errors.New("googleapi: Error 403: Service Accounts do not have storage quota. Leverage shared drives instead., storageQuotaExceeded")

// fakeStore is an in-memory Store with injectable failures, standing in for
// the Drive backend.
type fakeStore struct {
	items   map[string]models.Category
	listErr error
	getErr  error
	putErr  error
	delErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: make(map[string]models.Category)}
}

func (f *fakeStore) List(ctx context.Context) ([]models.Category, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Category, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeStore) Get(ctx context.Context, id string) (models.Category, bool, error) {
	if f.getErr != nil {
		return models.Category{}, false, f.getErr
	}
	item, ok := f.items[id]
	return item, ok, nil
}

func (f *fakeStore) Put(ctx context.Context, item models.Category) (models.Category, error) {
	if f.putErr != nil {
		return models.Category{}, f.putErr
	}
	f.items[item.ID] = item
	return item, nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.items, id)
	return nil
}

func cat(id, name string) models.Category {
	return models.Category{ID: id, Name: name, Kind: models.CategoryKindIn}
}

func TestIsNoQuotaError(t *testing.T) {
	assert.True(t, IsNoQuotaError(errNoQuota))
	assert.True(t, IsNoQuotaError(&googleapi.Error{
		Code:    403,
		Message: "Service Accounts do not have storage quota. Leverage shared drives instead.",
	}))
	assert.False(t, IsNoQuotaError(errors.New("googleapi: Error 404: File not found")))
	assert.False(t, IsNoQuotaError(nil))
}

func TestHybridPutPrefersDrive(t *testing.T) {
	drive, local := newFakeStore(), newFakeStore()
	s := NewHybridStore[models.Category](drive, local, true)
	ctx := context.Background()

	_, err := s.Put(ctx, cat("c1", "Vendas"))
	require.NoError(t, err)
	assert.Contains(t, drive.items, "c1")
	assert.NotContains(t, local.items, "c1")
}

func TestHybridPutDriveSuccessDropsStaleLocalCopy(t *testing.T) {
	drive, local := newFakeStore(), newFakeStore()
	local.items["c1"] = cat("c1", "Velho")
	s := NewHybridStore[models.Category](drive, local, true)

	_, err := s.Put(context.Background(), cat("c1", "Novo"))
	require.NoError(t, err)
	assert.Equal(t, "Novo", drive.items["c1"].Name)
	assert.NotContains(t, local.items, "c1")
}

func TestHybridPutNoQuotaFallsBackAndSeedsLocal(t *testing.T) {
	drive, local := newFakeStore(), newFakeStore()
	drive.items["existing"] = cat("existing", "Antiga")
	drive.putErr = errNoQuota
	s := NewHybridStore[models.Category](drive, local, true)

	stored, err := s.Put(context.Background(), cat("c1", "Vendas"))
	require.NoError(t, err)
	assert.Equal(t, "c1", stored.ID)
	assert.Contains(t, local.items, "c1")
	assert.Contains(t, local.items, "existing", "drive contents are seeded into the local store")
}

func TestHybridPutOtherDriveErrorsPropagate(t *testing.T) {
	drive, local := newFakeStore(), newFakeStore()
	drive.putErr = errors.New("googleapi: Error 500: backend error")
	s := NewHybridStore[models.Category](drive, local, true)

	_, err := s.Put(context.Background(), cat("c1", "Vendas"))
	require.Error(t, err)
	assert.Empty(t, local.items)
}

func TestHybridPutNoFallbackPropagatesNoQuota(t *testing.T) {
	drive, local := newFakeStore(), newFakeStore()
	drive.putErr = errNoQuota
	s := NewHybridStore[models.Category](drive, local, false)

	_, err := s.Put(context.Background(), cat("c1", "Vendas"))
	require.Error(t, err)
	assert.Empty(t, local.items)
}

func TestHybridListMergesLocalWins(t *testing.T) {
	drive, local := newFakeStore(), newFakeStore()
	drive.items["c1"] = cat("c1", "Drive")
	drive.items["c2"] = cat("c2", "Só no Drive")
	local.items["c1"] = cat("c1", "Local")
	local.items["c3"] = cat("c3", "Só local")
	s := NewHybridStore[models.Category](drive, local, true)

	items, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)

	byID := make(map[string]models.Category, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	assert.Equal(t, "Local", byID["c1"].Name)
	assert.Equal(t, "Só no Drive", byID["c2"].Name)
	assert.Equal(t, "Só local", byID["c3"].Name)
}

func TestHybridListSurvivesDriveOutageWithFallback(t *testing.T) {
	drive, local := newFakeStore(), newFakeStore()
	drive.listErr = errors.New("googleapi: Error 500: backend error")
	local.items["c1"] = cat("c1", "Local")
	s := NewHybridStore[models.Category](drive, local, true)

	items, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "c1", items[0].ID)
}

func TestHybridListBothFailingReturnsDriveError(t *testing.T) {
	drive, local := newFakeStore(), newFakeStore()
	driveErr := errors.New("googleapi: Error 500: backend error")
	drive.listErr = driveErr
	local.listErr = errors.New("permission denied")
	s := NewHybridStore[models.Category](drive, local, true)

	_, err := s.List(context.Background())
	require.ErrorIs(t, err, driveErr)
}

func TestHybridGetPrefersLocalWithFallback(t *testing.T) {
	drive, local := newFakeStore(), newFakeStore()
	drive.items["c1"] = cat("c1", "Drive")
	local.items["c1"] = cat("c1", "Local")
	s := NewHybridStore[models.Category](drive, local, true)

	got, ok, err := s.Get(context.Background(), "c1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Local", got.Name)
}

func TestHybridDeleteNoQuotaFallsBackToLocal(t *testing.T) {
	drive, local := newFakeStore(), newFakeStore()
	drive.delErr = errNoQuota
	local.items["c1"] = cat("c1", "Local")
	s := NewHybridStore[models.Category](drive, local, true)

	require.NoError(t, s.Delete(context.Background(), "c1"))
	assert.NotContains(t, local.items, "c1")
}
