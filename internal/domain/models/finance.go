package models

import "fmt"

// FinancialKind distinguishes income from expense entries.
type FinancialKind string

const (
	Income  FinancialKind = "income"
	Expense FinancialKind = "expense"
)

// Valid reports whether k is a known ledger kind.
func (k FinancialKind) Valid() bool { return k == Income || k == Expense }

// FinancialRecord is an immutable ledger entry.
type FinancialRecord struct {
	ID          string        `json:"id"`
	Kind        FinancialKind `json:"type"`
	Category    string        `json:"category"`
	Amount      float64       `json:"amount"`
	Date        string        `json:"date"`
	Description string        `json:"description"`
}

// Validate checks the invariants every stored ledger entry must satisfy.
func (r FinancialRecord) Validate() error {
	switch {
	case !r.Kind.Valid():
		return fmt.Errorf("%w: unknown financial record type %q", ErrInvalidArgument, r.Kind)
	case r.Amount < 0:
		return fmt.Errorf("%w: amount must be >= 0", ErrInvalidArgument)
	case r.Description == "":
		return fmt.Errorf("%w: description is required", ErrInvalidArgument)
	}
	return nil
}

// Balance returns total income minus total expense. It is always derived, never stored.
func Balance(records []FinancialRecord) float64 {
	var income, expense float64
	for _, r := range records {
		switch r.Kind {
		case Income:
			income += r.Amount
		case Expense:
			expense += r.Amount
		}
	}
	return income - expense
}
