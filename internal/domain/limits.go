package domain

import "github.com/shopspring/decimal"

// CategoryLimit is a soft spending cap for a named expense category.
type CategoryLimit struct {
	Name  string          `json:"name"`
	Limit decimal.Decimal `json:"limit"`
}

// DefaultCategoryLimits returns the canonical starting set of category limits.
// Insertion order is preserved; the wallet stores limits as an ordered list.
func DefaultCategoryLimits() []CategoryLimit {
	return []CategoryLimit{
		{Name: "Konaklama", Limit: decimal.NewFromInt(500)},
		{Name: "Dışarıda Yemek", Limit: decimal.NewFromInt(300)},
		{Name: "Alışveriş", Limit: decimal.NewFromInt(400)},
		{Name: "Eğlence", Limit: decimal.NewFromInt(200)},
		{Name: "Ulaşım", Limit: decimal.NewFromInt(250)},
		{Name: "Hediye", Limit: decimal.NewFromInt(100)},
		{Name: "Spor", Limit: decimal.NewFromInt(150)},
		{Name: "Tatil", Limit: decimal.NewFromInt(1000)},
		{Name: "Diğer", Limit: decimal.NewFromInt(200)},
	}
}

// LimitFor looks up the limit for a category in an ordered limit list.
// Categories without an entry are uncapped.
func LimitFor(limits []CategoryLimit, category string) (decimal.Decimal, bool) {
	for _, cl := range limits {
		if cl.Name == category {
			return cl.Limit, true
		}
	}
	return decimal.Decimal{}, false
}
