package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/fortuna/budget-tracker/internal/domain"
	"github.com/dafibh/fortuna/budget-tracker/internal/middleware"
	"github.com/dafibh/fortuna/budget-tracker/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ExpenseHandler handles expense HTTP requests
type ExpenseHandler struct{}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler() *ExpenseHandler {
	return &ExpenseHandler{}
}

// AddExpenseRequest represents the raw expense form input
type AddExpenseRequest struct {
	CategoryID  string `json:"categoryId"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// UpdateDraftRequest represents a change to the expense draft.
// Omitted fields are left as they are.
type UpdateDraftRequest struct {
	CategoryID  *string `json:"categoryId"`
	Amount      *string `json:"amount"`
	Description *string `json:"description"`
}

// DraftResponse represents the expense draft
type DraftResponse struct {
	CategoryID  string `json:"categoryId"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// SubmitExpenseResponse represents an accepted expense and its notification
type SubmitExpenseResponse struct {
	Expense       ExpenseResponse     `json:"expense"`
	Notification  domain.Notification `json:"notification"`
	CategorySpent string              `json:"categorySpent"`
	NearLimit     bool                `json:"nearLimit"`
}

// GetExpenses handles GET /api/v1/expenses
func (h *ExpenseHandler) GetExpenses(c echo.Context) error {
	tracker := middleware.GetTracker(c)
	if tracker == nil {
		return NewNotFoundError(c, "Session not found")
	}

	return c.JSON(http.StatusOK, toHistoryResponse(tracker.Snapshot().History()))
}

// AddExpense handles POST /api/v1/expenses
func (h *ExpenseHandler) AddExpense(c echo.Context) error {
	tracker := middleware.GetTracker(c)
	if tracker == nil {
		return NewNotFoundError(c, "Session not found")
	}

	var req AddExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	result, err := tracker.AddExpense(domain.ExpenseDraft{
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Description: req.Description,
	})
	return submitResponse(c, tracker, result, err)
}

// GetDraft handles GET /api/v1/expenses/draft
func (h *ExpenseHandler) GetDraft(c echo.Context) error {
	tracker := middleware.GetTracker(c)
	if tracker == nil {
		return NewNotFoundError(c, "Session not found")
	}

	return c.JSON(http.StatusOK, toDraftResponse(tracker.ExpenseDraft()))
}

// UpdateDraft handles PATCH /api/v1/expenses/draft
func (h *ExpenseHandler) UpdateDraft(c echo.Context) error {
	tracker := middleware.GetTracker(c)
	if tracker == nil {
		return NewNotFoundError(c, "Session not found")
	}

	var req UpdateDraftRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	draft := tracker.UpdateExpenseDraft(service.DraftUpdate{
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Description: req.Description,
	})

	return c.JSON(http.StatusOK, toDraftResponse(draft))
}

// SubmitDraft handles POST /api/v1/expenses/draft/submit
func (h *ExpenseHandler) SubmitDraft(c echo.Context) error {
	tracker := middleware.GetTracker(c)
	if tracker == nil {
		return NewNotFoundError(c, "Session not found")
	}

	result, err := tracker.SubmitExpenseDraft()
	return submitResponse(c, tracker, result, err)
}

func submitResponse(c echo.Context, tracker *service.Tracker, result *service.SubmitResult, err error) error {
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			log.Debug().
				Err(err).
				Str("session_id", tracker.SessionID().String()).
				Msg("Expense rejected")
			return NewRejectionError(c, err, result.Notification)
		}
		log.Error().Err(err).Str("session_id", tracker.SessionID().String()).Msg("Failed to add expense")
		return NewInternalError(c, "Failed to add expense")
	}

	log.Info().
		Str("session_id", tracker.SessionID().String()).
		Str("expense_id", result.Expense.ID).
		Str("category_id", result.Expense.CategoryID).
		Str("amount", result.Expense.Amount.String()).
		Bool("near_limit", result.NearLimit).
		Msg("Expense added")

	return c.JSON(http.StatusCreated, SubmitExpenseResponse{
		Expense:       toExpenseResponse(result.Expense),
		Notification:  result.Notification,
		CategorySpent: result.CategorySpent.StringFixed(2),
		NearLimit:     result.NearLimit,
	})
}

func toDraftResponse(draft domain.ExpenseDraft) DraftResponse {
	return DraftResponse{
		CategoryID:  draft.CategoryID,
		Amount:      draft.Amount,
		Description: draft.Description,
	}
}
