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

// CategoryHandler handles category HTTP requests
type CategoryHandler struct{}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// CreateCategoryRequest represents the create category request body
type CreateCategoryRequest struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
	Limit string `json:"limit"`
}

// UpdateCategoryEditRequest represents a change to the staged category.
// Omitted fields are left as they are.
type UpdateCategoryEditRequest struct {
	Name  *string `json:"name"`
	Limit *string `json:"limit"`
}

// CategoryEditResponse represents the staged category copy
type CategoryEditResponse struct {
	Category   CategoryResponse `json:"category"`
	LimitInput string           `json:"limitInput"`
}

// CategoryMutationResponse represents a stored category change and its notification
type CategoryMutationResponse struct {
	Category     CategoryResponse    `json:"category"`
	Notification domain.Notification `json:"notification"`
}

// GetCategories handles GET /api/v1/categories
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	tracker := middleware.GetTracker(c)
	if tracker == nil {
		return NewNotFoundError(c, "Session not found")
	}

	categories := tracker.Snapshot().Categories()
	response := make([]CategorySummaryResponse, len(categories))
	for i, cs := range categories {
		response[i] = toCategorySummaryResponse(cs)
	}

	return c.JSON(http.StatusOK, response)
}

// CreateCategory handles POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	tracker := middleware.GetTracker(c)
	if tracker == nil {
		return NewNotFoundError(c, "Session not found")
	}

	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, notification, err := tracker.CreateCategory(service.NewCategoryInput{
		Name:  req.Name,
		Icon:  req.Icon,
		Color: req.Color,
		Limit: req.Limit,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return NewRejectionError(c, err, notification)
		}
		log.Error().Err(err).Str("session_id", tracker.SessionID().String()).Msg("Failed to create category")
		return NewInternalError(c, "Failed to create category")
	}

	log.Info().
		Str("session_id", tracker.SessionID().String()).
		Str("category_id", category.ID).
		Str("name", category.Name).
		Msg("Category created")

	return c.JSON(http.StatusCreated, CategoryMutationResponse{
		Category:     toCategoryResponse(category),
		Notification: notification,
	})
}

// DeleteCategory handles DELETE /api/v1/categories/:id
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	tracker := middleware.GetTracker(c)
	if tracker == nil {
		return NewNotFoundError(c, "Session not found")
	}

	categoryID := c.Param("id")
	if err := tracker.DeleteCategory(categoryID); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		log.Error().Err(err).Str("category_id", categoryID).Msg("Failed to delete category")
		return NewInternalError(c, "Failed to delete category")
	}

	log.Info().
		Str("session_id", tracker.SessionID().String()).
		Str("category_id", categoryID).
		Msg("Category deleted")

	return c.NoContent(http.StatusNoContent)
}

// BeginEdit handles POST /api/v1/categories/:id/edit
func (h *CategoryHandler) BeginEdit(c echo.Context) error {
	tracker := middleware.GetTracker(c)
	if tracker == nil {
		return NewNotFoundError(c, "Session not found")
	}

	edit, err := tracker.BeginCategoryEdit(c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		log.Error().Err(err).Str("category_id", c.Param("id")).Msg("Failed to begin category edit")
		return NewInternalError(c, "Failed to begin category edit")
	}

	return c.JSON(http.StatusOK, toCategoryEditResponse(edit))
}

// GetEdit handles GET /api/v1/categories/edit
func (h *CategoryHandler) GetEdit(c echo.Context) error {
	tracker := middleware.GetTracker(c)
	if tracker == nil {
		return NewNotFoundError(c, "Session not found")
	}

	edit, err := tracker.CategoryEdit()
	if err != nil {
		return categoryEditError(c, err)
	}

	return c.JSON(http.StatusOK, toCategoryEditResponse(edit))
}

// UpdateEdit handles PATCH /api/v1/categories/edit
func (h *CategoryHandler) UpdateEdit(c echo.Context) error {
	tracker := middleware.GetTracker(c)
	if tracker == nil {
		return NewNotFoundError(c, "Session not found")
	}

	var req UpdateCategoryEditRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	edit, err := tracker.UpdateCategoryEdit(service.CategoryEditUpdate{
		Name:  req.Name,
		Limit: req.Limit,
	})
	if err != nil {
		return categoryEditError(c, err)
	}

	return c.JSON(http.StatusOK, toCategoryEditResponse(edit))
}

// ConfirmEdit handles POST /api/v1/categories/edit/confirm
func (h *CategoryHandler) ConfirmEdit(c echo.Context) error {
	tracker := middleware.GetTracker(c)
	if tracker == nil {
		return NewNotFoundError(c, "Session not found")
	}

	category, notification, err := tracker.ConfirmCategoryEdit()
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return NewRejectionError(c, err, notification)
		}
		return categoryEditError(c, err)
	}

	log.Info().
		Str("session_id", tracker.SessionID().String()).
		Str("category_id", category.ID).
		Str("limit", category.Limit.String()).
		Msg("Category updated")

	return c.JSON(http.StatusOK, CategoryMutationResponse{
		Category:     toCategoryResponse(category),
		Notification: notification,
	})
}

// CancelEdit handles DELETE /api/v1/categories/edit
func (h *CategoryHandler) CancelEdit(c echo.Context) error {
	tracker := middleware.GetTracker(c)
	if tracker == nil {
		return NewNotFoundError(c, "Session not found")
	}

	tracker.CancelCategoryEdit()
	return c.NoContent(http.StatusNoContent)
}

func categoryEditError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNoEditInProgress):
		return NewConflictError(c, "No category edit in progress")
	case errors.Is(err, domain.ErrCategoryNotFound):
		return NewNotFoundError(c, "Category not found")
	}
	log.Error().Err(err).Msg("Category edit failed")
	return NewInternalError(c, "Category edit failed")
}

func toCategoryEditResponse(edit *domain.CategoryEdit) CategoryEditResponse {
	return CategoryEditResponse{
		Category:   toCategoryResponse(&edit.Category),
		LimitInput: edit.LimitInput,
	}
}
