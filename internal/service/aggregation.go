package service

import (
	"time"

	"github.com/dafibh/fortuna/budget-tracker/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Aggregator computes derived budget values over a fixed snapshot of categories
// and expenses. It holds no state beyond the snapshot and never caches results.
type Aggregator struct {
	categories []*domain.Category
	expenses   []*domain.Expense
	byID       map[string]*domain.Category
}

// NewAggregator creates an Aggregator over the given snapshot
func NewAggregator(categories []*domain.Category, expenses []*domain.Expense) *Aggregator {
	byID := make(map[string]*domain.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	return &Aggregator{
		categories: categories,
		expenses:   expenses,
		byID:       byID,
	}
}

// TotalSpent returns the sum of all expense amounts
func (a *Aggregator) TotalSpent() decimal.Decimal {
	total := decimal.Zero
	for _, e := range a.expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// MonthlyBudget returns the sum of all category limits
func (a *Aggregator) MonthlyBudget() decimal.Decimal {
	total := decimal.Zero
	for _, c := range a.categories {
		total = total.Add(c.Limit)
	}
	return total
}

// Remaining returns the unspent part of the monthly budget. It goes negative when overspent.
func (a *Aggregator) Remaining() decimal.Decimal {
	return a.MonthlyBudget().Sub(a.TotalSpent())
}

// BudgetUsedPercent returns total spending as a percentage of the monthly budget, or 0 without a budget
func (a *Aggregator) BudgetUsedPercent() decimal.Decimal {
	return percentOf(a.TotalSpent(), a.MonthlyBudget())
}

// CategorySpend returns the sum of expenses logged against exactly this category ID
func (a *Aggregator) CategorySpend(categoryID string) decimal.Decimal {
	total := decimal.Zero
	for _, e := range a.expenses {
		if e.CategoryID == categoryID {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// CategoryPercent returns spending as a percentage of the category limit.
// ok is false when the category does not exist.
func (a *Aggregator) CategoryPercent(categoryID string) (percent decimal.Decimal, ok bool) {
	category, ok := a.byID[categoryID]
	if !ok {
		return decimal.Zero, false
	}
	return percentOf(a.CategorySpend(categoryID), category.Limit), true
}

// DistributionPercent returns the category's share of total spending, or 0 when nothing was spent
func (a *Aggregator) DistributionPercent(categoryID string) decimal.Decimal {
	return percentOf(a.CategorySpend(categoryID), a.TotalSpent())
}

// IsNearLimit reports whether the category is at or past the alert threshold.
// ok is false when the category does not exist.
func (a *Aggregator) IsNearLimit(categoryID string) (nearLimit bool, ok bool) {
	category, ok := a.byID[categoryID]
	if !ok {
		return false, false
	}
	return IsNearLimit(a.CategorySpend(categoryID), category.Limit), true
}

// Categories returns per-category derived values in store order
func (a *Aggregator) Categories() []domain.CategorySummary {
	total := a.TotalSpent()
	result := make([]domain.CategorySummary, 0, len(a.categories))
	for _, c := range a.categories {
		spent := a.CategorySpend(c.ID)
		result = append(result, domain.CategorySummary{
			Category:     *c,
			Spent:        spent,
			Remaining:    c.Limit.Sub(spent),
			Percentage:   percentOf(spent, c.Limit),
			Distribution: percentOf(spent, total),
			NearLimit:    IsNearLimit(spent, c.Limit),
		})
	}
	return result
}

// History returns expenses newest first joined with their categories.
// Expenses whose category no longer exists are skipped.
func (a *Aggregator) History() []domain.HistoryEntry {
	result := make([]domain.HistoryEntry, 0, len(a.expenses))
	for _, e := range a.expenses {
		category, ok := a.byID[e.CategoryID]
		if !ok {
			continue
		}
		result = append(result, domain.HistoryEntry{
			Expense:       *e,
			CategoryName:  category.Name,
			CategoryIcon:  category.Icon,
			CategoryColor: category.Color,
		})
	}
	return result
}

// Summary builds the full dashboard snapshot
func (a *Aggregator) Summary() *domain.BudgetSummary {
	categories := a.Categories()

	var status domain.StatusCounts
	for _, c := range categories {
		if c.NearLimit {
			status.NearLimit++
		} else {
			status.WithinLimit++
		}
	}

	return &domain.BudgetSummary{
		TotalSpent:        a.TotalSpent(),
		MonthlyBudget:     a.MonthlyBudget(),
		Remaining:         a.Remaining(),
		BudgetUsedPercent: a.BudgetUsedPercent(),
		Categories:        categories,
		Status:            status,
		History:           a.History(),
		GeneratedAt:       time.Now().UTC(),
	}
}

// percentOf returns part/whole*100, defined as 0 for a zero whole
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}
