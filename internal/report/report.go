package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/codehasanali/mywallet/internal/domain"
)

// Granularity selects the time bucket size for history reports.
type Granularity string

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
)

// ParseGranularity parses a granularity name as supplied by API callers.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case Daily, Weekly, Monthly:
		return Granularity(s), nil
	default:
		return "", fmt.Errorf("unknown granularity %q", s)
	}
}

// Bucket is one period of the aggregated history. Total is the signed net
// for the period: income counts positive, expenses negative.
type Bucket struct {
	Period string               `json:"period"`
	Total  decimal.Decimal      `json:"total"`
	Items  []domain.Transaction `json:"items"`
}

// GroupByPeriod buckets transactions by calendar period. Items keep their
// original log order and buckets appear in first-encounter order; callers
// needing chronological display order must sort the result themselves.
//
// Dates are bucketed in the offset they were recorded with; no timezone
// normalization is performed.
func GroupByPeriod(txs []domain.Transaction, g Granularity) []Bucket {
	var buckets []Bucket
	index := make(map[string]int)

	for _, tx := range txs {
		key := periodKey(tx, g)

		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, Bucket{Period: key, Total: decimal.Zero})
		}

		buckets[i].Items = append(buckets[i].Items, tx)
		buckets[i].Total = buckets[i].Total.Add(tx.SignedAmount())
	}

	return buckets
}

func periodKey(tx domain.Transaction, g Granularity) string {
	date := tx.Date

	switch g {
	case Weekly:
		// Start of week is the most recent Sunday on or before the date.
		// AddDate returns a new value, leaving the transaction date intact.
		weekStart := date.AddDate(0, 0, -int(date.Weekday()))
		return weekStart.Format("2006-01-02")
	case Monthly:
		// Zero-padded month so string order matches chronological order.
		return date.Format("2006-01")
	default:
		return date.Format("2006-01-02")
	}
}
