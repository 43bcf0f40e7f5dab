package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	drivev3 "google.golang.org/api/drive/v3"

	"empadas-server/src/config"
	"empadas-server/src/drive"
	"empadas-server/src/models"
)

const (
	collectionCategories   = "finance_categories"
	collectionTransactions = "finance_transactions"
	collectionAccounts     = "finance_accounts"
	collectionCatalog      = "catalog_products"
)

// FinanceStores groups the three finance collections behind one bootstrap.
type FinanceStores struct {
	Categories   Store[models.Category]
	Transactions Store[models.Transaction]
	Accounts     Store[models.AccountItem]
}

// Provider lazily constructs the Drive client and the hybrid stores. Nothing
// is built at startup: a missing env var surfaces as an error on the first
// operation that needs storage, and construction is retried on the next call
// instead of caching the failure.
type Provider struct {
	localRoot string
	fallback  bool

	mu      sync.Mutex
	svc     *drivev3.Service
	finance *FinanceStores
	catalog Store[models.CatalogProductOverride]
}

func NewProvider(localDataDir string, fallbackEnabled bool) *Provider {
	return &Provider{localRoot: localDataDir, fallback: fallbackEnabled}
}

func (p *Provider) driveService(ctx context.Context) (*drivev3.Service, error) {
	if p.svc != nil {
		return p.svc, nil
	}
	svc, err := drive.NewService(ctx, os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON_BASE64"))
	if err != nil {
		return nil, err
	}
	p.svc = svc
	return svc, nil
}

// collectionFolder resolves the folder and filename prefix for a collection.
// Accounts that cannot create child folders fall back to keeping every
// collection in the root folder behind a filename prefix.
func collectionFolder(ctx context.Context, svc *drivev3.Service, rootID, name string) (folderID, prefix string) {
	folderID, err := EnsureFolder(ctx, svc, rootID, name)
	if err != nil {
		return rootID, name + "__"
	}
	return folderID, ""
}

func newHybrid[E Entity](ctx context.Context, svc *drivev3.Service, rootID, localRoot, name string, fallback bool) (Store[E], error) {
	folderID, prefix := collectionFolder(ctx, svc, rootID, name)
	driveStore, err := NewDriveStore[E](svc, folderID, prefix)
	if err != nil {
		return nil, err
	}
	local := NewLocalStore[E](filepath.Join(localRoot, name), prefix)
	return NewHybridStore[E](driveStore, local, fallback), nil
}

// Finance returns the finance stores, building them on first use.
func (p *Provider) Finance(ctx context.Context) (*FinanceStores, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finance != nil {
		return p.finance, nil
	}

	svc, err := p.driveService(ctx)
	if err != nil {
		return nil, err
	}
	rootID, err := config.Required("GOOGLE_DRIVE_ADMIN_FOLDER_ID")
	if err != nil {
		return nil, err
	}

	categories, err := newHybrid[models.Category](ctx, svc, rootID, p.localRoot, collectionCategories, p.fallback)
	if err != nil {
		return nil, err
	}
	transactions, err := newHybrid[models.Transaction](ctx, svc, rootID, p.localRoot, collectionTransactions, p.fallback)
	if err != nil {
		return nil, err
	}
	accounts, err := newHybrid[models.AccountItem](ctx, svc, rootID, p.localRoot, collectionAccounts, p.fallback)
	if err != nil {
		return nil, err
	}

	p.finance = &FinanceStores{
		Categories:   categories,
		Transactions: transactions,
		Accounts:     accounts,
	}
	return p.finance, nil
}

// CatalogOverrides returns the catalog override store, building it on first use.
func (p *Provider) CatalogOverrides(ctx context.Context) (Store[models.CatalogProductOverride], error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.catalog != nil {
		return p.catalog, nil
	}

	svc, err := p.driveService(ctx)
	if err != nil {
		return nil, err
	}
	rootID, err := config.Required("GOOGLE_DRIVE_ADMIN_FOLDER_ID")
	if err != nil {
		return nil, err
	}

	catalog, err := newHybrid[models.CatalogProductOverride](ctx, svc, rootID, p.localRoot, collectionCatalog, p.fallback)
	if err != nil {
		return nil, err
	}
	p.catalog = catalog
	return p.catalog, nil
}

// Ping checks live connectivity by fetching the configured root folder.
func (p *Provider) Ping(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	svc, err := p.driveService(ctx)
	if err != nil {
		return err
	}
	rootID, err := config.Required("GOOGLE_DRIVE_ADMIN_FOLDER_ID")
	if err != nil {
		return err
	}
	if _, err := svc.Files.Get(rootID).Fields("id,name").SupportsAllDrives(true).Context(ctx).Do(); err != nil {
		return fmt.Errorf("drive connectivity check failed: %w", err)
	}
	return nil
}
