// Package finance holds the bookkeeping domain services: category,
// transaction and account CRUD plus status transitions, operating on the
// record stores. All domain errors surface as apperr values.
package finance

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"empadas-server/src/apperr"
	"empadas-server/src/models"
	"empadas-server/src/store"
)

const scope = "financeiro"

// StoreProvider yields the finance record stores, built lazily on first use.
type StoreProvider interface {
	Finance(ctx context.Context) (*store.FinanceStores, error)
}

type Service struct {
	provider StoreProvider
	verbose  bool
}

// New wires the finance service. verbose enables error detail in responses
// (disabled in production).
func New(provider StoreProvider, verboseErrors bool) *Service {
	return &Service{provider: provider, verbose: verboseErrors}
}

func (s *Service) wrap(err error) error {
	return store.FriendlyDriveError(scope, err, s.verbose)
}

func (s *Service) stores(ctx context.Context) (*store.FinanceStores, error) {
	stores, err := s.provider.Finance(ctx)
	if err != nil {
		return nil, s.wrap(err)
	}
	return stores, nil
}

// --- Categories ---

func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	stores, err := s.stores(ctx)
	if err != nil {
		return nil, err
	}
	items, err := stores.Categories.List(ctx)
	if err != nil {
		return nil, s.wrap(err)
	}
	return items, nil
}

func (s *Service) CreateCategory(ctx context.Context, name string, kind models.CategoryKind) (models.Category, error) {
	item := models.Category{ID: uuid.NewString(), Name: name, Kind: kind}
	if err := item.Validate(); err != nil {
		return models.Category{}, apperr.BadRequest(err.Error())
	}
	stores, err := s.stores(ctx)
	if err != nil {
		return models.Category{}, err
	}
	stored, err := stores.Categories.Put(ctx, item)
	if err != nil {
		return models.Category{}, s.wrap(err)
	}
	return stored, nil
}

type CategoryPatch struct {
	Name *string              `json:"name,omitempty"`
	Kind *models.CategoryKind `json:"kind,omitempty"`
}

func (s *Service) UpdateCategory(ctx context.Context, id string, patch CategoryPatch) (models.Category, error) {
	stores, err := s.stores(ctx)
	if err != nil {
		return models.Category{}, err
	}
	existing, ok, err := stores.Categories.Get(ctx, id)
	if err != nil {
		return models.Category{}, s.wrap(err)
	}
	if !ok {
		return models.Category{}, apperr.NotFound("categoria não encontrada")
	}

	if patch.Name != nil {
		existing.Name = *patch.Name
	}
	if patch.Kind != nil {
		existing.Kind = *patch.Kind
	}
	existing.ID = id
	if err := existing.Validate(); err != nil {
		return models.Category{}, apperr.BadRequest(err.Error())
	}

	stored, err := stores.Categories.Put(ctx, existing)
	if err != nil {
		return models.Category{}, s.wrap(err)
	}
	return stored, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	stores, err := s.stores(ctx)
	if err != nil {
		return err
	}
	transactions, err := stores.Transactions.List(ctx)
	if err != nil {
		return s.wrap(err)
	}
	for _, t := range transactions {
		if t.CategoryID == id {
			return apperr.BadRequest(
				"Não é possível excluir: existem lançamentos usando esta categoria. " +
					"Reclassifique os lançamentos e tente novamente.")
		}
	}
	if err := stores.Categories.Delete(ctx, id); err != nil {
		return s.wrap(err)
	}
	return nil
}

// --- Transactions ---

type TransactionFilter struct {
	From       string
	To         string
	Status     models.TransactionStatus
	Type       models.TransactionType
	CategoryID string
}

func (f TransactionFilter) matches(t models.Transaction) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.CategoryID != "" && t.CategoryID != f.CategoryID {
		return false
	}
	return inDateRange(t.DateISO, f.From, f.To)
}

// Dates are zero-padded YYYY-MM-DD, so lexicographic comparison orders them.
func inDateRange(dateISO, from, to string) bool {
	if from != "" && dateISO < from {
		return false
	}
	if to != "" && dateISO > to {
		return false
	}
	return true
}

func (s *Service) ListTransactions(ctx context.Context, filter TransactionFilter) ([]models.Transaction, error) {
	stores, err := s.stores(ctx)
	if err != nil {
		return nil, err
	}
	all, err := stores.Transactions.List(ctx)
	if err != nil {
		return nil, s.wrap(err)
	}

	items := make([]models.Transaction, 0, len(all))
	for _, t := range all {
		if filter.matches(t) {
			items = append(items, t)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].DateISO > items[j].DateISO })
	return items, nil
}

type TransactionInput struct {
	Type          models.TransactionType   `json:"type"`
	Status        models.TransactionStatus `json:"status,omitempty"`
	DateISO       string                   `json:"dateISO"`
	Amount        float64                  `json:"amount"`
	CategoryID    string                   `json:"categoryId"`
	PaymentMethod models.PaymentMethod     `json:"paymentMethod"`
	Description   string                   `json:"description"`
	Source        models.TransactionSource `json:"source"`
	Reference     string                   `json:"reference,omitempty"`
}

func (s *Service) CreateTransaction(ctx context.Context, input TransactionInput) (models.Transaction, error) {
	status := input.Status
	if status == "" {
		status = models.TransactionStatusPending
	}
	item := models.Transaction{
		ID:            uuid.NewString(),
		Type:          input.Type,
		Status:        status,
		DateISO:       input.DateISO,
		Amount:        input.Amount,
		CategoryID:    input.CategoryID,
		PaymentMethod: input.PaymentMethod,
		Description:   input.Description,
		Source:        input.Source,
		Reference:     input.Reference,
	}
	if err := item.Validate(); err != nil {
		return models.Transaction{}, apperr.BadRequest(err.Error())
	}

	stores, err := s.stores(ctx)
	if err != nil {
		return models.Transaction{}, err
	}
	stored, err := stores.Transactions.Put(ctx, item)
	if err != nil {
		return models.Transaction{}, s.wrap(err)
	}
	return stored, nil
}

type TransactionPatch struct {
	Type          *models.TransactionType   `json:"type,omitempty"`
	Status        *models.TransactionStatus `json:"status,omitempty"`
	DateISO       *string                   `json:"dateISO,omitempty"`
	Amount        *float64                  `json:"amount,omitempty"`
	CategoryID    *string                   `json:"categoryId,omitempty"`
	PaymentMethod *models.PaymentMethod     `json:"paymentMethod,omitempty"`
	Description   *string                   `json:"description,omitempty"`
	Source        *models.TransactionSource `json:"source,omitempty"`
	Reference     *string                   `json:"reference,omitempty"`
}

func (s *Service) UpdateTransaction(ctx context.Context, id string, patch TransactionPatch) (models.Transaction, error) {
	stores, err := s.stores(ctx)
	if err != nil {
		return models.Transaction{}, err
	}
	existing, ok, err := stores.Transactions.Get(ctx, id)
	if err != nil {
		return models.Transaction{}, s.wrap(err)
	}
	if !ok {
		return models.Transaction{}, apperr.NotFound("lançamento não encontrado")
	}

	if patch.Type != nil {
		existing.Type = *patch.Type
	}
	if patch.Status != nil {
		existing.Status = *patch.Status
	}
	if patch.DateISO != nil {
		existing.DateISO = *patch.DateISO
	}
	if patch.Amount != nil {
		existing.Amount = *patch.Amount
	}
	if patch.CategoryID != nil {
		existing.CategoryID = *patch.CategoryID
	}
	if patch.PaymentMethod != nil {
		existing.PaymentMethod = *patch.PaymentMethod
	}
	if patch.Description != nil {
		existing.Description = *patch.Description
	}
	if patch.Source != nil {
		existing.Source = *patch.Source
	}
	if patch.Reference != nil {
		existing.Reference = *patch.Reference
	}
	existing.ID = id
	if err := existing.Validate(); err != nil {
		return models.Transaction{}, apperr.BadRequest(err.Error())
	}

	stored, err := stores.Transactions.Put(ctx, existing)
	if err != nil {
		return models.Transaction{}, s.wrap(err)
	}
	return stored, nil
}

func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	stores, err := s.stores(ctx)
	if err != nil {
		return err
	}
	if err := stores.Transactions.Delete(ctx, id); err != nil {
		return s.wrap(err)
	}
	return nil
}

// ConfirmTransaction advances a transaction to CONFIRMED, optionally fixing
// the payment method actually used.
func (s *Service) ConfirmTransaction(ctx context.Context, id string, paymentMethod *models.PaymentMethod) (models.Transaction, error) {
	stores, err := s.stores(ctx)
	if err != nil {
		return models.Transaction{}, err
	}
	existing, ok, err := stores.Transactions.Get(ctx, id)
	if err != nil {
		return models.Transaction{}, s.wrap(err)
	}
	if !ok {
		return models.Transaction{}, apperr.NotFound("lançamento não encontrado")
	}

	existing.Status = models.TransactionStatusConfirmed
	if paymentMethod != nil {
		existing.PaymentMethod = *paymentMethod
	}
	if err := existing.Validate(); err != nil {
		return models.Transaction{}, apperr.BadRequest(err.Error())
	}

	stored, err := stores.Transactions.Put(ctx, existing)
	if err != nil {
		return models.Transaction{}, s.wrap(err)
	}
	return stored, nil
}

func (s *Service) CancelTransaction(ctx context.Context, id string) (models.Transaction, error) {
	stores, err := s.stores(ctx)
	if err != nil {
		return models.Transaction{}, err
	}
	existing, ok, err := stores.Transactions.Get(ctx, id)
	if err != nil {
		return models.Transaction{}, s.wrap(err)
	}
	if !ok {
		return models.Transaction{}, apperr.NotFound("lançamento não encontrado")
	}

	existing.Status = models.TransactionStatusCanceled
	stored, err := stores.Transactions.Put(ctx, existing)
	if err != nil {
		return models.Transaction{}, s.wrap(err)
	}
	return stored, nil
}

// --- Accounts (payable/receivable) ---

func (s *Service) ListAccounts(ctx context.Context) ([]models.AccountItem, error) {
	stores, err := s.stores(ctx)
	if err != nil {
		return nil, err
	}
	items, err := stores.Accounts.List(ctx)
	if err != nil {
		return nil, s.wrap(err)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].DueDateISO < items[j].DueDateISO })
	return items, nil
}

type AccountInput struct {
	Kind       models.AccountKind   `json:"kind"`
	DueDateISO string               `json:"dueDateISO"`
	Amount     float64              `json:"amount"`
	Status     models.AccountStatus `json:"status,omitempty"`
	Notes      string               `json:"notes,omitempty"`
}

func (s *Service) CreateAccount(ctx context.Context, input AccountInput) (models.AccountItem, error) {
	status := input.Status
	if status == "" {
		status = models.AccountStatusOpen
	}
	item := models.AccountItem{
		ID:         uuid.NewString(),
		Kind:       input.Kind,
		DueDateISO: input.DueDateISO,
		Amount:     input.Amount,
		Status:     status,
		Notes:      input.Notes,
	}
	if err := item.Validate(); err != nil {
		return models.AccountItem{}, apperr.BadRequest(err.Error())
	}

	stores, err := s.stores(ctx)
	if err != nil {
		return models.AccountItem{}, err
	}
	stored, err := stores.Accounts.Put(ctx, item)
	if err != nil {
		return models.AccountItem{}, s.wrap(err)
	}
	return stored, nil
}

type AccountPatch struct {
	Kind       *models.AccountKind   `json:"kind,omitempty"`
	DueDateISO *string               `json:"dueDateISO,omitempty"`
	Amount     *float64              `json:"amount,omitempty"`
	Status     *models.AccountStatus `json:"status,omitempty"`
	Notes      *string               `json:"notes,omitempty"`
}

func (s *Service) UpdateAccount(ctx context.Context, id string, patch AccountPatch) (models.AccountItem, error) {
	stores, err := s.stores(ctx)
	if err != nil {
		return models.AccountItem{}, err
	}
	existing, ok, err := stores.Accounts.Get(ctx, id)
	if err != nil {
		return models.AccountItem{}, s.wrap(err)
	}
	if !ok {
		return models.AccountItem{}, apperr.NotFound("conta não encontrada")
	}

	if patch.Kind != nil {
		existing.Kind = *patch.Kind
	}
	if patch.DueDateISO != nil {
		existing.DueDateISO = *patch.DueDateISO
	}
	if patch.Amount != nil {
		existing.Amount = *patch.Amount
	}
	if patch.Status != nil {
		existing.Status = *patch.Status
	}
	if patch.Notes != nil {
		existing.Notes = *patch.Notes
	}
	existing.ID = id
	if err := existing.Validate(); err != nil {
		return models.AccountItem{}, apperr.BadRequest(err.Error())
	}

	stored, err := stores.Accounts.Put(ctx, existing)
	if err != nil {
		return models.AccountItem{}, s.wrap(err)
	}
	return stored, nil
}

func (s *Service) DeleteAccount(ctx context.Context, id string) error {
	stores, err := s.stores(ctx)
	if err != nil {
		return err
	}
	if err := stores.Accounts.Delete(ctx, id); err != nil {
		return s.wrap(err)
	}
	return nil
}

// PayAccount marks an account PAID. The current status is intentionally not
// checked first: paying an already PAID (or even CANCELED) account keeps the
// same result shape.
func (s *Service) PayAccount(ctx context.Context, id string) (models.AccountItem, error) {
	stores, err := s.stores(ctx)
	if err != nil {
		return models.AccountItem{}, err
	}
	existing, ok, err := stores.Accounts.Get(ctx, id)
	if err != nil {
		return models.AccountItem{}, s.wrap(err)
	}
	if !ok {
		return models.AccountItem{}, apperr.NotFound("conta não encontrada")
	}

	existing.Status = models.AccountStatusPaid
	stored, err := stores.Accounts.Put(ctx, existing)
	if err != nil {
		return models.AccountItem{}, s.wrap(err)
	}
	return stored, nil
}
