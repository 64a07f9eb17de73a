package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/codehasanali/mywallet/internal/domain"
	"github.com/codehasanali/mywallet/internal/ledger"
	"github.com/codehasanali/mywallet/internal/report"
)

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Date     time.Time       `json:"date"`
	Income   bool            `json:"income"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:       t.ID,
		Name:     t.Name,
		Amount:   t.Amount,
		Category: t.Category,
		Date:     t.Date,
		Income:   t.IsIncome(),
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txs []domain.Transaction) []TransactionResponse {
	result := make([]TransactionResponse, len(txs))
	for i, t := range txs {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// WalletResponse represents the wallet summary.
type WalletResponse struct {
	Balance      decimal.Decimal `json:"balance"`
	Income       decimal.Decimal `json:"income"`
	Expense      decimal.Decimal `json:"expense"`
	Transactions int             `json:"transactions"`
}

// WalletFromSnapshot converts a ledger snapshot to the summary response.
func WalletFromSnapshot(s ledger.Snapshot) WalletResponse {
	return WalletResponse{
		Balance:      s.Balance,
		Income:       s.Income,
		Expense:      s.Expense,
		Transactions: len(s.Transactions),
	}
}

// CategoryLimitResponse represents a category limit.
type CategoryLimitResponse struct {
	Name  string          `json:"name"`
	Limit decimal.Decimal `json:"limit"`
}

// LimitsFromDomain converts category limits to responses.
func LimitsFromDomain(limits []domain.CategoryLimit) []CategoryLimitResponse {
	result := make([]CategoryLimitResponse, len(limits))
	for i, cl := range limits {
		result[i] = CategoryLimitResponse{Name: cl.Name, Limit: cl.Limit}
	}
	return result
}

// HistoryBucketResponse represents one period of the aggregated history.
type HistoryBucketResponse struct {
	Period string                `json:"period"`
	Total  decimal.Decimal       `json:"total"`
	Items  []TransactionResponse `json:"items"`
}

// HistoryResponse represents the aggregated history report.
type HistoryResponse struct {
	Granularity string                  `json:"granularity"`
	Buckets     []HistoryBucketResponse `json:"buckets"`
}

// HistoryFromBuckets converts report buckets to the history response.
func HistoryFromBuckets(g report.Granularity, buckets []report.Bucket) HistoryResponse {
	out := make([]HistoryBucketResponse, len(buckets))
	for i, b := range buckets {
		out[i] = HistoryBucketResponse{
			Period: b.Period,
			Total:  b.Total,
			Items:  TransactionsFromDomain(b.Items),
		}
	}
	return HistoryResponse{
		Granularity: string(g),
		Buckets:     out,
	}
}

// SessionResponse represents the active session.
type SessionResponse struct {
	Username string `json:"username"`
}
