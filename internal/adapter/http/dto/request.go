package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/codehasanali/mywallet/internal/domain"
	"github.com/codehasanali/mywallet/internal/ledger"
)

// AddExpenseRequest represents a request to record an expense.
type AddExpenseRequest struct {
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Date     time.Time       `json:"date"`
}

// ToTransaction converts to a domain transaction. The ID is left empty for
// the ledger to fill in.
func (r *AddExpenseRequest) ToTransaction() domain.Transaction {
	return domain.Transaction{
		Name:     r.Name,
		Amount:   r.Amount,
		Category: r.Category,
		Date:     r.Date,
	}
}

// AddIncomeRequest represents a request to record an income entry.
type AddIncomeRequest struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
}

// ToLedgerInput converts to ledger input.
func (r *AddIncomeRequest) ToLedgerInput() ledger.AddIncomeInput {
	return ledger.AddIncomeInput{
		Name:   r.Name,
		Amount: r.Amount,
		Date:   r.Date,
	}
}

// UpdateLimitRequest represents a request to set a category limit.
type UpdateLimitRequest struct {
	Limit decimal.Decimal `json:"limit"`
}

// LoginRequest represents a session login request.
type LoginRequest struct {
	Username string `json:"username"`
}
