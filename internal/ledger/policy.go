package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/codehasanali/mywallet/internal/domain"
)

// LimitPolicy selects how category limits are enforced on expenses.
type LimitPolicy int

const (
	// LimitPerEntry rejects an expense when its amount alone exceeds the
	// category limit. This is the default policy.
	LimitPerEntry LimitPolicy = iota

	// LimitCumulative rejects an expense when the category's existing spend
	// plus the new amount exceeds the category limit.
	LimitCumulative
)

// String returns the policy's configuration name.
func (p LimitPolicy) String() string {
	switch p {
	case LimitCumulative:
		return "cumulative"
	default:
		return "per-entry"
	}
}

// ParseLimitPolicy parses a policy configuration name.
func ParseLimitPolicy(s string) (LimitPolicy, error) {
	switch s {
	case "per-entry", "":
		return LimitPerEntry, nil
	case "cumulative":
		return LimitCumulative, nil
	default:
		return LimitPerEntry, fmt.Errorf("unknown limit policy %q", s)
	}
}

// checkLimitLocked enforces the configured limit policy for an expense.
// Income entries and categories without a limit are never rejected.
func (l *Ledger) checkLimitLocked(tx domain.Transaction) error {
	if tx.IsIncome() {
		return nil
	}

	limit, ok := domain.LimitFor(l.limits, tx.Category)
	if !ok {
		return nil
	}

	spend := tx.Amount
	if l.policy == LimitCumulative {
		spend = spend.Add(l.categorySpendLocked(tx.Category))
	}

	if spend.GreaterThan(limit) {
		return fmt.Errorf("%w: %s limit is %s", domain.ErrLimitExceeded, tx.Category, limit)
	}

	return nil
}

// categorySpendLocked sums the recorded spend for a single expense category.
func (l *Ledger) categorySpendLocked(category string) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range l.entries {
		if tx.Category == category {
			total = total.Add(tx.Amount)
		}
	}
	return total
}
