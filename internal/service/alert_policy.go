package service

import (
	"errors"
	"fmt"

	"github.com/dafibh/fortuna/budget-tracker/internal/domain"
	"github.com/shopspring/decimal"
)

// NearLimitThreshold is the share of a category limit at which spending is flagged
var NearLimitThreshold = decimal.RequireFromString("0.9")

// Notification messages
const (
	MsgFillAllFields    = "Fill in all fields"
	MsgInvalidAmount    = "Amount must be a positive number"
	MsgUnknownCategory  = "Selected category does not exist"
	MsgExpenseAdded     = "Expense added"
	MsgCategoryUpdated  = "Category updated"
	MsgCategoryCreated  = "Category created"
	MsgCategoryDeleted  = "Category deleted"
	MsgNameRequired     = "Category name is required"
	MsgNameTooLong      = "Category name is too long"
	msgApproachingLimit = "Warning! You are approaching the limit of category %q"
)

// IsNearLimit reports whether spent has reached NearLimitThreshold of limit (inclusive).
// A category without a positive limit is flagged as soon as anything is spent in it.
func IsNearLimit(spent, limit decimal.Decimal) bool {
	if !limit.IsPositive() {
		return spent.IsPositive()
	}
	return spent.GreaterThanOrEqual(limit.Mul(NearLimitThreshold))
}

// insertionNotification classifies an accepted expense against the category total after insertion
func insertionNotification(category *domain.Category, totalAfter decimal.Decimal) domain.Notification {
	if IsNearLimit(totalAfter, category.Limit) {
		n := domain.NewNotification(domain.NotificationWarning, fmt.Sprintf(msgApproachingLimit, category.Name))
		n.CategoryID = category.ID
		return n
	}
	n := domain.NewNotification(domain.NotificationSuccess, MsgExpenseAdded)
	n.CategoryID = category.ID
	return n
}

// rejectionNotification turns a validation failure into an error-level notification
func rejectionNotification(err error) domain.Notification {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return domain.NewNotification(domain.NotificationError, MsgInvalidAmount)
	case errors.Is(err, domain.ErrNameRequired):
		return domain.NewNotification(domain.NotificationError, MsgNameRequired)
	case errors.Is(err, domain.ErrNameTooLong):
		return domain.NewNotification(domain.NotificationError, MsgNameTooLong)
	case errors.Is(err, domain.ErrCategoryNotFound):
		return domain.NewNotification(domain.NotificationError, MsgUnknownCategory)
	default:
		return domain.NewNotification(domain.NotificationError, MsgFillAllFields)
	}
}
