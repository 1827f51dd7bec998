package memory

import (
	"strconv"

	"github.com/dafibh/fortuna/budget-tracker/internal/domain"
)

// ExpenseRepository is an in-memory expense store ordered newest first.
// It is not safe for concurrent use; the owning tracker serializes access.
type ExpenseRepository struct {
	expenses []*domain.Expense
	nextID   int
}

// NewExpenseRepository creates an ExpenseRepository holding copies of the given expenses in the given order
func NewExpenseRepository(seed []*domain.Expense) *ExpenseRepository {
	r := &ExpenseRepository{
		expenses: make([]*domain.Expense, 0, len(seed)),
		nextID:   1,
	}
	for _, e := range seed {
		r.expenses = append(r.expenses, e.Clone())
		if n, err := strconv.Atoi(e.ID); err == nil && n >= r.nextID {
			r.nextID = n + 1
		}
	}
	return r
}

// Prepend assigns the expense a fresh ID and stores it at the front
func (r *ExpenseRepository) Prepend(expense *domain.Expense) (*domain.Expense, error) {
	stored := expense.Clone()
	stored.ID = strconv.Itoa(r.nextID)
	r.nextID++

	r.expenses = append([]*domain.Expense{stored}, r.expenses...)
	return stored.Clone(), nil
}

// GetAll returns copies of all expenses, newest first
func (r *ExpenseRepository) GetAll() []*domain.Expense {
	result := make([]*domain.Expense, len(r.expenses))
	for i, e := range r.expenses {
		result[i] = e.Clone()
	}
	return result
}

// Count returns the number of stored expenses
func (r *ExpenseRepository) Count() int {
	return len(r.expenses)
}

var _ domain.ExpenseRepository = (*ExpenseRepository)(nil)
