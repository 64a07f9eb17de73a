package ledger

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Store implementations for absent keys.
var ErrKeyNotFound = errors.New("key not found")

// Store defines the durable key-value store the ledger persists into.
// Keys and values are plain strings; implementations namespace keys as needed.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Storage keys. One ledger occupies exactly these five keys in the store.
const (
	KeyBalance        = "balance"
	KeyIncome         = "income"
	KeyExpense        = "expense"
	KeyExpenses       = "expenses"
	KeyCategoryLimits = "categoryLimits"
)

// StorageKeys lists every key the ledger owns, in persist order.
func StorageKeys() []string {
	return []string{KeyBalance, KeyIncome, KeyExpense, KeyExpenses, KeyCategoryLimits}
}
