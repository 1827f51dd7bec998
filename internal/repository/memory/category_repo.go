package memory

import (
	"strconv"

	"github.com/dafibh/fortuna/budget-tracker/internal/domain"
)

// CategoryRepository is an ordered in-memory category store.
// It is not safe for concurrent use; the owning tracker serializes access.
type CategoryRepository struct {
	categories []*domain.Category
	nextID     int
}

// NewCategoryRepository creates a CategoryRepository holding copies of the given categories
func NewCategoryRepository(seed []*domain.Category) *CategoryRepository {
	r := &CategoryRepository{
		categories: make([]*domain.Category, 0, len(seed)),
		nextID:     1,
	}
	for _, c := range seed {
		r.categories = append(r.categories, c.Clone())
		r.reserveID(c.ID)
	}
	return r
}

// Create appends a category and assigns it a fresh ID
func (r *CategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	stored := category.Clone()
	stored.ID = strconv.Itoa(r.nextID)
	r.nextID++
	r.categories = append(r.categories, stored)
	return stored.Clone(), nil
}

// GetByID retrieves a copy of the category with the given ID
func (r *CategoryRepository) GetByID(id string) (*domain.Category, error) {
	idx := r.indexOf(id)
	if idx < 0 {
		return nil, domain.ErrCategoryNotFound
	}
	return r.categories[idx].Clone(), nil
}

// GetAll returns copies of all categories in store order
func (r *CategoryRepository) GetAll() []*domain.Category {
	result := make([]*domain.Category, len(r.categories))
	for i, c := range r.categories {
		result[i] = c.Clone()
	}
	return result
}

// Replace swaps the stored record that has the same ID, keeping its position
func (r *CategoryRepository) Replace(category *domain.Category) (*domain.Category, error) {
	idx := r.indexOf(category.ID)
	if idx < 0 {
		return nil, domain.ErrCategoryNotFound
	}
	r.categories[idx] = category.Clone()
	return category.Clone(), nil
}

// Delete removes a category. Its ID is never handed out again.
func (r *CategoryRepository) Delete(id string) error {
	idx := r.indexOf(id)
	if idx < 0 {
		return domain.ErrCategoryNotFound
	}
	r.categories = append(r.categories[:idx], r.categories[idx+1:]...)
	return nil
}

func (r *CategoryRepository) indexOf(id string) int {
	for i, c := range r.categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// reserveID moves the ID counter past numeric seed IDs
func (r *CategoryRepository) reserveID(id string) {
	if n, err := strconv.Atoi(id); err == nil && n >= r.nextID {
		r.nextID = n + 1
	}
}

var _ domain.CategoryRepository = (*CategoryRepository)(nil)
