package models

import "time"

// ExpenseCategory classifies an operating expense.
type ExpenseCategory string

const (
	ExpenseInsurance   ExpenseCategory = "insurance"
	ExpenseUtilities   ExpenseCategory = "utilities"
	ExpensePhone       ExpenseCategory = "phone"
	ExpenseFuel        ExpenseCategory = "fuel"
	ExpenseConsumables ExpenseCategory = "consumables"
	ExpenseEquipment   ExpenseCategory = "equipment"
	ExpenseOther       ExpenseCategory = "other"
)

// Canonical maps unknown category values to "other" for display grouping.
// Totals always sum the raw entries regardless of category, so an
// unrecognized category never falls out of an aggregate.
func (c ExpenseCategory) Canonical() ExpenseCategory {
	switch c {
	case ExpenseInsurance, ExpenseUtilities, ExpensePhone, ExpenseFuel,
		ExpenseConsumables, ExpenseEquipment, ExpenseOther:
		return c
	}
	return ExpenseOther
}

// Expense is a dated monetary entry. CashflowOnly entries (owner draws and
// similar) move cash but are excluded from overhead and net profit.
type Expense struct {
	ID           string          `bson:"_id,omitempty" json:"id"`
	Date         string          `bson:"date" json:"date"` // ISO date string
	Amount       float64         `bson:"amount" json:"amount"`
	Category     ExpenseCategory `bson:"category" json:"category"`
	CashflowOnly bool            `bson:"cashflow_only" json:"cashflow_only"`
	Description  string          `bson:"description,omitempty" json:"description,omitempty"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
}
