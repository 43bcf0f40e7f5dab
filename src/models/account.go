package models

import "fmt"

type AccountKind string

const (
	AccountKindPayable    AccountKind = "PAYABLE"
	AccountKindReceivable AccountKind = "RECEIVABLE"
)

func (k AccountKind) Valid() bool {
	return k == AccountKindPayable || k == AccountKindReceivable
}

type AccountStatus string

const (
	AccountStatusOpen     AccountStatus = "OPEN"
	AccountStatusPaid     AccountStatus = "PAID"
	AccountStatusCanceled AccountStatus = "CANCELED"
)

func (s AccountStatus) Valid() bool {
	switch s {
	case AccountStatusOpen, AccountStatusPaid, AccountStatusCanceled:
		return true
	}
	return false
}

// AccountItem is a scheduled payable or receivable obligation,
// independent of the transaction ledger.
type AccountItem struct {
	ID         string        `json:"id"`
	Kind       AccountKind   `json:"kind"`
	DueDateISO string        `json:"dueDateISO"`
	Amount     float64       `json:"amount"`
	Status     AccountStatus `json:"status"`
	Notes      string        `json:"notes,omitempty"`
}

func (a AccountItem) GetID() string { return a.ID }

func (a AccountItem) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("account id is required")
	}
	if !a.Kind.Valid() {
		return fmt.Errorf("invalid account kind: %q", a.Kind)
	}
	if a.DueDateISO == "" {
		return fmt.Errorf("account due date is required")
	}
	if a.Amount < 0 {
		return fmt.Errorf("account amount must be non-negative")
	}
	if !a.Status.Valid() {
		return fmt.Errorf("invalid account status: %q", a.Status)
	}
	return nil
}
