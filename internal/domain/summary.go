package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategorySummary is the derived state of a single category
type CategorySummary struct {
	Category     Category
	Spent        decimal.Decimal
	Remaining    decimal.Decimal
	Percentage   decimal.Decimal // share of the category limit
	Distribution decimal.Decimal // share of total spending
	NearLimit    bool
}

// HistoryEntry is an expense joined with the category it was logged against
type HistoryEntry struct {
	Expense       Expense
	CategoryName  string
	CategoryIcon  string
	CategoryColor string
}

// StatusCounts counts categories by alert state
type StatusCounts struct {
	WithinLimit int
	NearLimit   int
}

// BudgetSummary is a read-only snapshot of everything the dashboard renders
type BudgetSummary struct {
	TotalSpent        decimal.Decimal
	MonthlyBudget     decimal.Decimal
	Remaining         decimal.Decimal
	BudgetUsedPercent decimal.Decimal
	Categories        []CategorySummary
	Status            StatusCounts
	History           []HistoryEntry
	GeneratedAt       time.Time
}
