package finance

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"empadas-server/src/models"
)

const unknownCategoryName = "Sem categoria"

type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type SummaryTotals struct {
	InConfirmed  float64 `json:"inConfirmed"`
	OutConfirmed float64 `json:"outConfirmed"`
	Balance      float64 `json:"balance"`
	PendingCount int     `json:"pendingCount"`
	// PendingAmount sums every PENDING transaction regardless of type, so
	// incoming and outgoing pending amounts land in one unsigned figure.
	// Inherited behavior; do not "fix" without confirming intent.
	PendingAmount float64 `json:"pendingAmount"`
}

type CategoryTotal struct {
	CategoryID   string  `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	Total        float64 `json:"total"`
}

type PaymentTotal struct {
	Method models.PaymentMethod `json:"method"`
	Total  float64              `json:"total"`
}

type Summary struct {
	Range      DateRange       `json:"range"`
	Totals     SummaryTotals   `json:"totals"`
	ByCategory []CategoryTotal `json:"byCategory"`
	ByPayment  []PaymentTotal  `json:"byPayment"`
}

func signedAmount(t models.Transaction) decimal.Decimal {
	amount := decimal.NewFromFloat(t.Amount)
	if t.Type == models.TransactionTypeOut {
		return amount.Neg()
	}
	return amount
}

// ComputeSummary aggregates transactions over an optional inclusive date
// range: confirmed totals and balance, pending figures, top-5 category
// breakdown and payment-method breakdown. Amounts are summed with decimals
// to keep the money arithmetic exact.
func ComputeSummary(transactions []models.Transaction, categories []models.Category, from, to string) Summary {
	catNames := make(map[string]string, len(categories))
	for _, c := range categories {
		catNames[c.ID] = c.Name
	}

	var confirmed, pending []models.Transaction
	for _, t := range transactions {
		if !inDateRange(t.DateISO, from, to) {
			continue
		}
		switch t.Status {
		case models.TransactionStatusConfirmed:
			confirmed = append(confirmed, t)
		case models.TransactionStatusPending:
			pending = append(pending, t)
		}
	}

	inConfirmed := decimal.Zero
	outConfirmed := decimal.Zero
	adjustConfirmed := decimal.Zero
	for _, t := range confirmed {
		amount := decimal.NewFromFloat(t.Amount)
		switch t.Type {
		case models.TransactionTypeIn:
			inConfirmed = inConfirmed.Add(amount)
		case models.TransactionTypeOut:
			outConfirmed = outConfirmed.Add(amount)
		case models.TransactionTypeAdjust:
			adjustConfirmed = adjustConfirmed.Add(amount)
		}
	}

	pendingAmount := decimal.Zero
	for _, t := range pending {
		pendingAmount = pendingAmount.Add(decimal.NewFromFloat(t.Amount))
	}

	byCategoryTotals := make(map[string]decimal.Decimal)
	for _, t := range confirmed {
		byCategoryTotals[t.CategoryID] = byCategoryTotals[t.CategoryID].Add(signedAmount(t))
	}
	byCategory := make([]CategoryTotal, 0, len(byCategoryTotals))
	for categoryID, total := range byCategoryTotals {
		name, ok := catNames[categoryID]
		if !ok {
			name = unknownCategoryName
		}
		totalF, _ := total.Float64()
		byCategory = append(byCategory, CategoryTotal{
			CategoryID:   categoryID,
			CategoryName: name,
			Total:        totalF,
		})
	}
	sort.Slice(byCategory, func(i, j int) bool {
		absI := abs(byCategory[i].Total)
		absJ := abs(byCategory[j].Total)
		if absI != absJ {
			return absI > absJ
		}
		return byCategory[i].CategoryID < byCategory[j].CategoryID
	})
	if len(byCategory) > 5 {
		byCategory = byCategory[:5]
	}

	byPaymentTotals := make(map[models.PaymentMethod]decimal.Decimal)
	for _, t := range confirmed {
		byPaymentTotals[t.PaymentMethod] = byPaymentTotals[t.PaymentMethod].Add(signedAmount(t))
	}
	byPayment := make([]PaymentTotal, 0, len(byPaymentTotals))
	for _, method := range []models.PaymentMethod{models.PaymentMethodPix, models.PaymentMethodCash, models.PaymentMethodCard} {
		if total, ok := byPaymentTotals[method]; ok {
			totalF, _ := total.Float64()
			byPayment = append(byPayment, PaymentTotal{Method: method, Total: totalF})
		}
	}

	balance, _ := inConfirmed.Sub(outConfirmed).Add(adjustConfirmed).Float64()
	inF, _ := inConfirmed.Float64()
	outF, _ := outConfirmed.Float64()
	pendingF, _ := pendingAmount.Float64()

	return Summary{
		Range: DateRange{From: from, To: to},
		Totals: SummaryTotals{
			InConfirmed:   inF,
			OutConfirmed:  outF,
			Balance:       balance,
			PendingCount:  len(pending),
			PendingAmount: pendingF,
		},
		ByCategory: byCategory,
		ByPayment:  byPayment,
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// DashboardSummary loads transactions and categories and aggregates them.
func (s *Service) DashboardSummary(ctx context.Context, from, to string) (Summary, error) {
	stores, err := s.stores(ctx)
	if err != nil {
		return Summary{}, err
	}
	transactions, err := stores.Transactions.List(ctx)
	if err != nil {
		return Summary{}, s.wrap(err)
	}
	categories, err := stores.Categories.List(ctx)
	if err != nil {
		return Summary{}, s.wrap(err)
	}
	return ComputeSummary(transactions, categories, from, to), nil
}
