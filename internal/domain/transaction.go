package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncomeCategory is the reserved category name that marks a transaction as
// income. Every other category is an expense category.
const IncomeCategory = "Income"

// Transaction represents a single recorded money movement (income or expense).
type Transaction struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Date     time.Time       `json:"date"`
}

// IsIncome reports whether the transaction increases income rather than expense.
func (t Transaction) IsIncome() bool {
	return t.Category == IncomeCategory
}

// SignedAmount returns the transaction's contribution to the net balance:
// positive for income, negative for expenses.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.IsIncome() {
		return t.Amount
	}
	return t.Amount.Neg()
}
