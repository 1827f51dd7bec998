package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single logged expense. CategoryID is not checked against the
// category store once recorded; an expense can outlive its category.
type Expense struct {
	ID          string          `json:"id"`
	CategoryID  string          `json:"categoryId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

// Clone returns an independent copy of the expense
func (e *Expense) Clone() *Expense {
	cp := *e
	return &cp
}

// ExpenseDraft holds raw form input for an expense that has not been submitted yet
type ExpenseDraft struct {
	CategoryID  string `json:"categoryId"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// IsEmpty reports whether no field has been filled in
func (d ExpenseDraft) IsEmpty() bool {
	return d.CategoryID == "" && d.Amount == "" && d.Description == ""
}

// ExpenseRepository stores expenses newest first
type ExpenseRepository interface {
	Prepend(expense *Expense) (*Expense, error)
	GetAll() []*Expense
	Count() int
}
