package models

import "fmt"

type TransactionType string

const (
	TransactionTypeIn     TransactionType = "IN"
	TransactionTypeOut    TransactionType = "OUT"
	TransactionTypeAdjust TransactionType = "ADJUST"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeIn, TransactionTypeOut, TransactionTypeAdjust:
		return true
	}
	return false
}

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusConfirmed TransactionStatus = "CONFIRMED"
	TransactionStatusCanceled  TransactionStatus = "CANCELED"
)

func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusConfirmed, TransactionStatusCanceled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodPix  PaymentMethod = "PIX"
	PaymentMethodCash PaymentMethod = "DINHEIRO"
	PaymentMethodCard PaymentMethod = "CARTAO"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodPix, PaymentMethodCash, PaymentMethodCard:
		return true
	}
	return false
}

type TransactionSource string

const (
	TransactionSourceManual   TransactionSource = "manual"
	TransactionSourceCheckout TransactionSource = "checkout"
)

func (s TransactionSource) Valid() bool {
	return s == TransactionSourceManual || s == TransactionSourceCheckout
}

// Transaction is a dated financial movement. Dates are zero-padded
// YYYY-MM-DD strings so range filters can compare lexicographically.
type Transaction struct {
	ID            string            `json:"id"`
	Type          TransactionType   `json:"type"`
	Status        TransactionStatus `json:"status"`
	DateISO       string            `json:"dateISO"`
	Amount        float64           `json:"amount"`
	CategoryID    string            `json:"categoryId"`
	PaymentMethod PaymentMethod     `json:"paymentMethod"`
	Description   string            `json:"description"`
	Source        TransactionSource `json:"source"`
	Reference     string            `json:"reference,omitempty"`
}

func (t Transaction) GetID() string { return t.ID }

func (t Transaction) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("transaction id is required")
	}
	if !t.Type.Valid() {
		return fmt.Errorf("invalid transaction type: %q", t.Type)
	}
	if !t.Status.Valid() {
		return fmt.Errorf("invalid transaction status: %q", t.Status)
	}
	if t.DateISO == "" {
		return fmt.Errorf("transaction date is required")
	}
	if t.Amount < 0 {
		return fmt.Errorf("transaction amount must be non-negative")
	}
	if t.CategoryID == "" {
		return fmt.Errorf("transaction category is required")
	}
	if !t.PaymentMethod.Valid() {
		return fmt.Errorf("invalid payment method: %q", t.PaymentMethod)
	}
	if t.Description == "" {
		return fmt.Errorf("transaction description is required")
	}
	if !t.Source.Valid() {
		return fmt.Errorf("invalid transaction source: %q", t.Source)
	}
	return nil
}
