package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxNameLength     = 255
	MaxCategoryLength = 64
	MaxAmount         = "1000000000" // 1 billion
)

// ValidateTransactionName validates a transaction label. The engine itself
// never re-checks names; callers run this before handing input to the ledger.
func ValidateTransactionName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return ErrEmptyName
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrEmptyName, MaxNameLength)
	}

	return nil
}

// ValidateAmount validates a transaction amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrInvalidAmount, MaxAmount)
	}

	return nil
}

// ValidateExpenseCategory validates a category for the expense path.
// The income category is reserved and must go through the income path.
func ValidateExpenseCategory(category string) error {
	category = strings.TrimSpace(category)

	if category == "" {
		return ErrEmptyCategory
	}

	if category == IncomeCategory {
		return fmt.Errorf("%w: %q", ErrReservedCategory, IncomeCategory)
	}

	if len(category) > MaxCategoryLength {
		return fmt.Errorf("%w: category exceeds %d characters", ErrEmptyCategory, MaxCategoryLength)
	}

	return nil
}

// ValidateLimit validates a category limit value.
func ValidateLimit(limit decimal.Decimal) error {
	if limit.IsNegative() {
		return ErrNegativeLimit
	}
	return nil
}

// ValidateUsername validates a session username.
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return ErrEmptyUsername
	}
	return nil
}
