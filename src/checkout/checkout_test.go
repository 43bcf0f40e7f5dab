package checkout

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"empadas-server/src/apperr"
	"empadas-server/src/catalog"
	"empadas-server/src/finance"
	"empadas-server/src/models"
	"empadas-server/src/store"
	"empadas-server/src/util"
)

type testStores struct {
	finance    *store.FinanceStores
	catalog    store.Store[models.CatalogProductOverride]
	financeErr error
}

func (p *testStores) Finance(ctx context.Context) (*store.FinanceStores, error) {
	if p.financeErr != nil {
		return nil, p.financeErr
	}
	return p.finance, nil
}

func (p *testStores) CatalogOverrides(ctx context.Context) (store.Store[models.CatalogProductOverride], error) {
	return p.catalog, nil
}

func newTestStores(t *testing.T) *testStores {
	t.Helper()
	dir := t.TempDir()
	return &testStores{
		finance: &store.FinanceStores{
			Categories:   store.NewLocalStore[models.Category](filepath.Join(dir, "finance_categories"), ""),
			Transactions: store.NewLocalStore[models.Transaction](filepath.Join(dir, "finance_transactions"), ""),
			Accounts:     store.NewLocalStore[models.AccountItem](filepath.Join(dir, "finance_accounts"), ""),
		},
		catalog: store.NewLocalStore[models.CatalogProductOverride](filepath.Join(dir, "catalog_products"), ""),
	}
}

func newTestService(t *testing.T, stores *testStores, checkoutCategoryID string) (*Service, *finance.Service) {
	t.Helper()
	catalogSvc := catalog.New(stores, true)
	financeSvc := finance.New(stores, true)
	svc := New(catalogSvc, financeSvc, checkoutCategoryID)
	svc.now = func() time.Time { return time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC) }
	return svc, financeSvc
}

func validInput() Input {
	return Input{
		Items:          []CartItem{{ProductID: "empada-frango", Quantity: 3}},
		CustomerName:   "Maria",
		CustomerPhone:  "71999990000",
		DeliveryMethod: "delivery",
		PaymentMethod:  "pix",
	}
}

func requireBadRequest(t *testing.T, err error) {
	t.Helper()
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.CodeBadRequest, appErr.Code)
}

func TestPlaceValidation(t *testing.T) {
	svc, _ := newTestService(t, newTestStores(t), "")
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*Input)
	}{
		{"empty cart", func(in *Input) { in.Items = nil }},
		{"zero quantity", func(in *Input) { in.Items[0].Quantity = 0 }},
		{"excess quantity", func(in *Input) { in.Items[0].Quantity = catalog.MaxOrderQuantity + 1 }},
		{"blank name", func(in *Input) { in.CustomerName = "   " }},
		{"blank phone", func(in *Input) { in.CustomerPhone = "" }},
		{"bad delivery method", func(in *Input) { in.DeliveryMethod = "drone" }},
		{"bad payment method", func(in *Input) { in.PaymentMethod = "cheque" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)
			_, err := svc.Place(ctx, input)
			requireBadRequest(t, err)
		})
	}
}

func TestPlaceUnknownProduct(t *testing.T) {
	svc, _ := newTestService(t, newTestStores(t), "")

	input := validInput()
	input.Items[0].ProductID = "empada-inexistente"
	_, err := svc.Place(context.Background(), input)
	requireBadRequest(t, err)
}

func TestPlaceUnavailableProduct(t *testing.T) {
	stores := newTestStores(t)
	svc, _ := newTestService(t, stores, "")
	ctx := context.Background()

	unavailable := models.AvailabilityUnavailable
	_, err := stores.catalog.Put(ctx, models.CatalogProductOverride{
		ID:           "empada-frango",
		Availability: &unavailable,
	})
	require.NoError(t, err)

	_, err = svc.Place(ctx, validInput())
	requireBadRequest(t, err)
}

func TestPlaceBuildsOrderAndTotal(t *testing.T) {
	svc, _ := newTestService(t, newTestStores(t), "")

	input := validInput()
	input.Items = append(input.Items, CartItem{ProductID: "empada-camarao", Quantity: 2})
	result, err := svc.Place(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 50.0, result.Total)
	assert.Contains(t, result.Message, "3x")
	assert.Contains(t, result.Message, "Empada de Frango")
	assert.Contains(t, result.Message, "Empada de Camarão")
	assert.Contains(t, result.WhatsAppURL, "https://wa.me/")
	assert.Empty(t, result.TransactionID, "no ledger category configured")
}

func TestPlaceUsesOverriddenPrice(t *testing.T) {
	stores := newTestStores(t)
	svc, _ := newTestService(t, stores, "")
	ctx := context.Background()

	price := 12.5
	_, err := stores.catalog.Put(ctx, models.CatalogProductOverride{ID: "empada-frango", Price: &price})
	require.NoError(t, err)

	result, err := svc.Place(ctx, validInput())
	require.NoError(t, err)
	assert.Equal(t, 37.5, result.Total)
}

func TestPlaceRecordsPendingInflow(t *testing.T) {
	stores := newTestStores(t)
	svc, financeSvc := newTestService(t, stores, "cat-checkout")
	ctx := context.Background()

	result, err := svc.Place(ctx, validInput())
	require.NoError(t, err)
	require.NotEmpty(t, result.TransactionID)

	items, err := financeSvc.ListTransactions(ctx, finance.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)

	tx := items[0]
	assert.Equal(t, result.TransactionID, tx.ID)
	assert.Equal(t, models.TransactionTypeIn, tx.Type)
	assert.Equal(t, models.TransactionStatusPending, tx.Status)
	assert.Equal(t, "2024-03-10", tx.DateISO)
	assert.Equal(t, 30.0, tx.Amount)
	assert.Equal(t, "cat-checkout", tx.CategoryID)
	assert.Equal(t, models.PaymentMethodPix, tx.PaymentMethod)
	assert.Equal(t, "Pedido WhatsApp - Maria", tx.Description)
	assert.Equal(t, models.TransactionSourceCheckout, tx.Source)
	assert.Equal(t, "3x Empada de Frango", tx.Reference)
}

func TestPlaceLedgerFailureDoesNotFailCheckout(t *testing.T) {
	stores := newTestStores(t)
	stores.financeErr = errors.New("variável de ambiente faltando: GOOGLE_DRIVE_ADMIN_FOLDER_ID")
	svc, _ := newTestService(t, stores, "cat-checkout")

	result, err := svc.Place(context.Background(), validInput())
	require.NoError(t, err)
	assert.Empty(t, result.TransactionID)
	assert.NotEmpty(t, result.Message)
}

func TestLedgerPaymentMethodMapping(t *testing.T) {
	for in, want := range map[util.CheckoutPayment]models.PaymentMethod{
		util.CheckoutPaymentPix:  models.PaymentMethodPix,
		util.CheckoutPaymentCard: models.PaymentMethodCard,
		util.CheckoutPaymentCash: models.PaymentMethodCash,
	} {
		assert.Equal(t, want, ledgerPaymentMethod(in))
	}
}
