package handler

import (
	"github.com/dafibh/fortuna/budget-tracker/internal/middleware"
	"github.com/labstack/echo/v4"
)

// Handlers groups the HTTP handlers mounted under /api/v1
type Handlers struct {
	Session   *SessionHandler
	Summary   *SummaryHandler
	Category  *CategoryHandler
	Expense   *ExpenseHandler
	WebSocket *WebSocketHandler
}

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, sessions middleware.SessionProvider, rateLimiter *middleware.RateLimiter, h Handlers) {
	// API version 1
	api := e.Group("/api/v1")

	requireSession := middleware.RequireSession(sessions)
	rateLimit := middleware.RateLimitMiddleware(rateLimiter)

	// Session routes
	api.POST("/sessions", h.Session.CreateSession)
	api.DELETE("/sessions", h.Session.EndSession, requireSession)

	// WebSocket stream (session passed as query parameter)
	api.GET("/ws", h.WebSocket.HandleWS)

	// Summary route (session-scoped)
	api.GET("/summary", h.Summary.GetSummary, requireSession, rateLimit)

	// Category routes (session-scoped)
	categories := api.Group("/categories")
	categories.Use(requireSession, rateLimit)
	categories.GET("", h.Category.GetCategories)
	categories.POST("", h.Category.CreateCategory)
	categories.GET("/edit", h.Category.GetEdit)
	categories.PATCH("/edit", h.Category.UpdateEdit)
	categories.DELETE("/edit", h.Category.CancelEdit)
	categories.POST("/edit/confirm", h.Category.ConfirmEdit)
	categories.DELETE("/:id", h.Category.DeleteCategory)
	categories.POST("/:id/edit", h.Category.BeginEdit)

	// Expense routes (session-scoped)
	expenses := api.Group("/expenses")
	expenses.Use(requireSession, rateLimit)
	expenses.GET("", h.Expense.GetExpenses)
	expenses.POST("", h.Expense.AddExpense)
	expenses.GET("/draft", h.Expense.GetDraft)
	expenses.PATCH("/draft", h.Expense.UpdateDraft)
	expenses.POST("/draft/submit", h.Expense.SubmitDraft)
}
