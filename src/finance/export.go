package finance

import (
	"context"
	"strconv"

	"github.com/gocarina/gocsv"

	"empadas-server/src/models"
)

// exportRow is the flat CSV shape of a transaction, with the category id
// resolved to its display name.
type exportRow struct {
	ID            string `csv:"id"`
	Type          string `csv:"type"`
	Status        string `csv:"status"`
	DateISO       string `csv:"dateISO"`
	Amount        string `csv:"amount"`
	CategoryID    string `csv:"categoryId"`
	CategoryName  string `csv:"categoryName"`
	PaymentMethod string `csv:"paymentMethod"`
	Description   string `csv:"description"`
	Source        string `csv:"source"`
	Reference     string `csv:"reference"`
}

// BuildCSV serializes the date-filtered transactions as a comma-separated
// table. Quoting follows RFC 4180: embedded double quotes are doubled.
func BuildCSV(transactions []models.Transaction, categories []models.Category, from, to string) (string, error) {
	catNames := make(map[string]string, len(categories))
	for _, c := range categories {
		catNames[c.ID] = c.Name
	}

	rows := make([]exportRow, 0, len(transactions))
	for _, t := range transactions {
		if !inDateRange(t.DateISO, from, to) {
			continue
		}
		rows = append(rows, exportRow{
			ID:            t.ID,
			Type:          string(t.Type),
			Status:        string(t.Status),
			DateISO:       t.DateISO,
			Amount:        strconv.FormatFloat(t.Amount, 'f', -1, 64),
			CategoryID:    t.CategoryID,
			CategoryName:  catNames[t.CategoryID],
			PaymentMethod: string(t.PaymentMethod),
			Description:   t.Description,
			Source:        string(t.Source),
			Reference:     t.Reference,
		})
	}

	return gocsv.MarshalString(&rows)
}

// ExportCSV loads all transactions (optionally date-filtered) and renders
// them as CSV for download.
func (s *Service) ExportCSV(ctx context.Context, from, to string) (string, error) {
	stores, err := s.stores(ctx)
	if err != nil {
		return "", err
	}
	transactions, err := stores.Transactions.List(ctx)
	if err != nil {
		return "", s.wrap(err)
	}
	categories, err := stores.Categories.List(ctx)
	if err != nil {
		return "", s.wrap(err)
	}
	return BuildCSV(transactions, categories, from, to)
}
