package handler

import (
	"net/http"
	"time"

	"github.com/dafibh/fortuna/budget-tracker/internal/domain"
	"github.com/dafibh/fortuna/budget-tracker/internal/middleware"
	"github.com/labstack/echo/v4"
)

// SummaryHandler handles dashboard summary HTTP requests
type SummaryHandler struct{}

// NewSummaryHandler creates a new SummaryHandler
func NewSummaryHandler() *SummaryHandler {
	return &SummaryHandler{}
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
	Limit string `json:"limit"`
}

// CategorySummaryResponse represents a category with its derived spending figures
type CategorySummaryResponse struct {
	CategoryResponse
	Spent        string `json:"spent"`
	Remaining    string `json:"remaining"`
	Percentage   string `json:"percentage"`
	Distribution string `json:"distribution"`
	NearLimit    bool   `json:"nearLimit"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          string `json:"id"`
	CategoryID  string `json:"categoryId"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// HistoryEntryResponse represents an expense joined with its category
type HistoryEntryResponse struct {
	ExpenseResponse
	CategoryName  string `json:"categoryName"`
	CategoryIcon  string `json:"categoryIcon"`
	CategoryColor string `json:"categoryColor"`
}

// StatusCountsResponse counts categories by alert state
type StatusCountsResponse struct {
	WithinLimit int `json:"withinLimit"`
	NearLimit   int `json:"nearLimit"`
}

// SummaryResponse represents the full dashboard snapshot
type SummaryResponse struct {
	TotalSpent        string                    `json:"totalSpent"`
	MonthlyBudget     string                    `json:"monthlyBudget"`
	Remaining         string                    `json:"remaining"`
	BudgetUsedPercent string                    `json:"budgetUsedPercent"`
	Categories        []CategorySummaryResponse `json:"categories"`
	Status            StatusCountsResponse      `json:"status"`
	History           []HistoryEntryResponse    `json:"history"`
	GeneratedAt       string                    `json:"generatedAt"`
}

// GetSummary handles GET /api/v1/summary
func (h *SummaryHandler) GetSummary(c echo.Context) error {
	tracker := middleware.GetTracker(c)
	if tracker == nil {
		return NewNotFoundError(c, "Session not found")
	}

	return c.JSON(http.StatusOK, toSummaryResponse(tracker.Summary()))
}

func toCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:    category.ID,
		Name:  category.Name,
		Icon:  category.Icon,
		Color: category.Color,
		Limit: category.Limit.StringFixed(2),
	}
}

func toCategorySummaryResponse(summary domain.CategorySummary) CategorySummaryResponse {
	return CategorySummaryResponse{
		CategoryResponse: toCategoryResponse(&summary.Category),
		Spent:            summary.Spent.StringFixed(2),
		Remaining:        summary.Remaining.StringFixed(2),
		Percentage:       summary.Percentage.StringFixed(2),
		Distribution:     summary.Distribution.StringFixed(2),
		NearLimit:        summary.NearLimit,
	}
}

func toExpenseResponse(expense *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          expense.ID,
		CategoryID:  expense.CategoryID,
		Amount:      expense.Amount.StringFixed(2),
		Description: expense.Description,
		Date:        expense.Date.Format("2006-01-02"),
	}
}

func toHistoryResponse(history []domain.HistoryEntry) []HistoryEntryResponse {
	response := make([]HistoryEntryResponse, len(history))
	for i, entry := range history {
		response[i] = HistoryEntryResponse{
			ExpenseResponse: toExpenseResponse(&entry.Expense),
			CategoryName:    entry.CategoryName,
			CategoryIcon:    entry.CategoryIcon,
			CategoryColor:   entry.CategoryColor,
		}
	}
	return response
}

func toSummaryResponse(summary *domain.BudgetSummary) SummaryResponse {
	categories := make([]CategorySummaryResponse, len(summary.Categories))
	for i, cs := range summary.Categories {
		categories[i] = toCategorySummaryResponse(cs)
	}

	return SummaryResponse{
		TotalSpent:        summary.TotalSpent.StringFixed(2),
		MonthlyBudget:     summary.MonthlyBudget.StringFixed(2),
		Remaining:         summary.Remaining.StringFixed(2),
		BudgetUsedPercent: summary.BudgetUsedPercent.StringFixed(2),
		Categories:        categories,
		Status: StatusCountsResponse{
			WithinLimit: summary.Status.WithinLimit,
			NearLimit:   summary.Status.NearLimit,
		},
		History:     toHistoryResponse(summary.History),
		GeneratedAt: summary.GeneratedAt.Format(time.RFC3339),
	}
}
