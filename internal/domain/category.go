package domain

import "github.com/shopspring/decimal"

// Category is a spending category with a monthly limit.
// Icon and Color are presentation attributes and are passed through untouched.
type Category struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Icon  string          `json:"icon"`
	Color string          `json:"color"`
	Limit decimal.Decimal `json:"limit"`
}

// Clone returns an independent copy of the category
func (c *Category) Clone() *Category {
	cp := *c
	return &cp
}

// CategoryEdit is a staged copy of a category being edited.
// LimitInput keeps the raw text last typed into the limit field.
type CategoryEdit struct {
	Category   Category `json:"category"`
	LimitInput string   `json:"limitInput"`
}

type CategoryRepository interface {
	Create(category *Category) (*Category, error)
	GetByID(id string) (*Category, error)
	GetAll() []*Category
	Replace(category *Category) (*Category, error)
	Delete(id string) error
}
