package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dafibh/fortuna/budget-tracker/internal/domain"
	"github.com/dafibh/fortuna/budget-tracker/internal/repository/memory"
	"github.com/dafibh/fortuna/budget-tracker/internal/websocket"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tracker owns the category and expense stores of one session and is the only
// way to mutate them. Every method runs under the tracker lock, so a mutation
// and the alert evaluation that follows it form a single step.
type Tracker struct {
	sessionID      uuid.UUID
	categoryRepo   domain.CategoryRepository
	expenseRepo    domain.ExpenseRepository
	eventPublisher websocket.EventPublisher
	now            func() time.Time

	mu    sync.Mutex
	draft domain.ExpenseDraft
	edit  *domain.CategoryEdit
}

// NewTracker creates a Tracker over the given stores
func NewTracker(sessionID uuid.UUID, categoryRepo domain.CategoryRepository, expenseRepo domain.ExpenseRepository) *Tracker {
	return &Tracker{
		sessionID:    sessionID,
		categoryRepo: categoryRepo,
		expenseRepo:  expenseRepo,
		now:          time.Now,
	}
}

// NewSeededTracker creates a Tracker whose stores start with the sample data
func NewSeededTracker(sessionID uuid.UUID) *Tracker {
	return NewTracker(
		sessionID,
		memory.NewCategoryRepository(domain.SeedCategories()),
		memory.NewExpenseRepository(domain.SeedExpenses()),
	)
}

// SetEventPublisher sets the event publisher for notifications and real-time updates
func (t *Tracker) SetEventPublisher(publisher websocket.EventPublisher) {
	t.eventPublisher = publisher
}

// SetClock overrides the time source used to stamp new expenses
func (t *Tracker) SetClock(now func() time.Time) {
	t.now = now
}

// SessionID returns the session this tracker belongs to
func (t *Tracker) SessionID() uuid.UUID {
	return t.sessionID
}

// publishEvent publishes a WebSocket event if a publisher is configured
func (t *Tracker) publishEvent(event websocket.Event) {
	if t.eventPublisher != nil {
		t.eventPublisher.Publish(t.sessionID, event)
	}
}

func (t *Tracker) notify(n domain.Notification) {
	t.publishEvent(websocket.NotificationCreated(n))
}

// Snapshot returns an Aggregator over a copy of the current stores
func (t *Tracker) Snapshot() *Aggregator {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot()
}

func (t *Tracker) snapshot() *Aggregator {
	return NewAggregator(t.categoryRepo.GetAll(), t.expenseRepo.GetAll())
}

// Summary returns the dashboard snapshot
func (t *Tracker) Summary() *domain.BudgetSummary {
	return t.Snapshot().Summary()
}

// Categories returns all categories in store order
func (t *Tracker) Categories() []*domain.Category {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.categoryRepo.GetAll()
}

// Expenses returns all expenses newest first, including ones whose category is gone
func (t *Tracker) Expenses() []*domain.Expense {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.expenseRepo.GetAll()
}

// ExpenseCount returns the number of stored expenses
func (t *Tracker) ExpenseCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.expenseRepo.Count()
}

// DraftUpdate carries the expense form fields changed by one input event.
// Nil fields are left as they are.
type DraftUpdate struct {
	CategoryID  *string
	Amount      *string
	Description *string
}

// ExpenseDraft returns the expense currently being composed
func (t *Tracker) ExpenseDraft() domain.ExpenseDraft {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.draft
}

// UpdateExpenseDraft stages form input without validating it
func (t *Tracker) UpdateExpenseDraft(update DraftUpdate) domain.ExpenseDraft {
	t.mu.Lock()
	defer t.mu.Unlock()

	if update.CategoryID != nil {
		t.draft.CategoryID = *update.CategoryID
	}
	if update.Amount != nil {
		t.draft.Amount = *update.Amount
	}
	if update.Description != nil {
		t.draft.Description = *update.Description
	}
	return t.draft
}

// SubmitResult describes the outcome of an expense submission
type SubmitResult struct {
	Expense       *domain.Expense // nil when rejected
	Notification  domain.Notification
	CategorySpent decimal.Decimal
	NearLimit     bool
}

// SubmitExpenseDraft validates the draft and, when valid, records it as a new expense.
// On rejection the returned result still carries the error notification, the error
// wraps domain.ErrValidation, and the draft is kept so it can be corrected.
func (t *Tracker) SubmitExpenseDraft() (*SubmitResult, error) {
	t.mu.Lock()
	result, err := t.submitLocked()
	t.mu.Unlock()

	t.notify(result.Notification)
	if err == nil {
		t.publishEvent(websocket.ExpenseCreated(result.Expense))
	}
	return result, err
}

// AddExpense replaces the draft with the given input and submits it
func (t *Tracker) AddExpense(input domain.ExpenseDraft) (*SubmitResult, error) {
	t.mu.Lock()
	t.draft = input
	result, err := t.submitLocked()
	t.mu.Unlock()

	t.notify(result.Notification)
	if err == nil {
		t.publishEvent(websocket.ExpenseCreated(result.Expense))
	}
	return result, err
}

func (t *Tracker) submitLocked() (*SubmitResult, error) {
	category, amount, err := t.validateDraft(t.draft)
	if err != nil {
		return &SubmitResult{Notification: rejectionNotification(err)}, err
	}

	expense, err := t.expenseRepo.Prepend(&domain.Expense{
		CategoryID:  category.ID,
		Amount:      amount,
		Description: strings.TrimSpace(t.draft.Description),
		Date:        t.now().UTC(),
	})
	if err != nil {
		return &SubmitResult{Notification: domain.NewNotification(domain.NotificationError, err.Error())}, err
	}
	t.draft = domain.ExpenseDraft{}

	spent := t.snapshot().CategorySpend(category.ID)
	return &SubmitResult{
		Expense:       expense,
		Notification:  insertionNotification(category, spent),
		CategorySpent: spent,
		NearLimit:     IsNearLimit(spent, category.Limit),
	}, nil
}

func (t *Tracker) validateDraft(draft domain.ExpenseDraft) (*domain.Category, decimal.Decimal, error) {
	categoryID := strings.TrimSpace(draft.CategoryID)
	if categoryID == "" {
		return nil, decimal.Zero, domain.ErrCategoryRequired
	}
	if strings.TrimSpace(draft.Amount) == "" {
		return nil, decimal.Zero, domain.ErrAmountRequired
	}
	if strings.TrimSpace(draft.Description) == "" {
		return nil, decimal.Zero, domain.ErrDescriptionRequired
	}

	amount := domain.ParseNumber(draft.Amount)
	if !amount.Valid || !amount.Value.IsPositive() {
		return nil, decimal.Zero, domain.ErrInvalidAmount
	}

	category, err := t.categoryRepo.GetByID(categoryID)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	return category, amount.Value, nil
}

// BeginCategoryEdit stages a copy of the category for editing, replacing any edit in progress
func (t *Tracker) BeginCategoryEdit(categoryID string) (*domain.CategoryEdit, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	category, err := t.categoryRepo.GetByID(categoryID)
	if err != nil {
		return nil, err
	}

	t.edit = &domain.CategoryEdit{
		Category:   *category,
		LimitInput: category.Limit.String(),
	}
	cp := *t.edit
	return &cp, nil
}

// CategoryEdit returns the staged category copy
func (t *Tracker) CategoryEdit() (*domain.CategoryEdit, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.edit == nil {
		return nil, domain.ErrNoEditInProgress
	}
	cp := *t.edit
	return &cp, nil
}

// CategoryEditUpdate carries the edit form fields changed by one input event.
// Nil fields are left as they are.
type CategoryEditUpdate struct {
	Name  *string
	Limit *string
}

// UpdateCategoryEdit changes the staged copy only. Limit text that is not a
// number becomes 0, and so does a negative limit.
func (t *Tracker) UpdateCategoryEdit(update CategoryEditUpdate) (*domain.CategoryEdit, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.edit == nil {
		return nil, domain.ErrNoEditInProgress
	}

	if update.Name != nil {
		t.edit.Category.Name = *update.Name
	}
	if update.Limit != nil {
		t.edit.LimitInput = *update.Limit
		t.edit.Category.Limit = limitFromInput(*update.Limit)
	}

	cp := *t.edit
	return &cp, nil
}

// ConfirmCategoryEdit writes the staged copy over the stored category with the same ID.
// An invalid name keeps the edit open and returns an error notification.
func (t *Tracker) ConfirmCategoryEdit() (*domain.Category, domain.Notification, error) {
	t.mu.Lock()
	updated, err := t.confirmEditLocked()
	t.mu.Unlock()

	if err != nil {
		if errors.Is(err, domain.ErrNoEditInProgress) {
			return nil, domain.Notification{}, err
		}
		n := rejectionNotification(err)
		t.notify(n)
		return nil, n, err
	}

	n := domain.NewNotification(domain.NotificationSuccess, MsgCategoryUpdated)
	n.CategoryID = updated.ID
	t.notify(n)
	t.publishEvent(websocket.CategoryUpdated(updated))
	return updated, n, nil
}

func (t *Tracker) confirmEditLocked() (*domain.Category, error) {
	if t.edit == nil {
		return nil, domain.ErrNoEditInProgress
	}

	staged := t.edit.Category
	name, err := validateCategoryName(staged.Name)
	if err != nil {
		return nil, err
	}
	staged.Name = name

	updated, err := t.categoryRepo.Replace(&staged)
	if err != nil {
		return nil, err
	}
	t.edit = nil
	return updated, nil
}

// CancelCategoryEdit discards the staged copy. The store is not touched.
func (t *Tracker) CancelCategoryEdit() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.edit = nil
}

// NewCategoryInput holds raw form input for a new category
type NewCategoryInput struct {
	Name  string
	Icon  string
	Color string
	Limit string
}

// CreateCategory appends a new category with a fresh ID
func (t *Tracker) CreateCategory(input NewCategoryInput) (*domain.Category, domain.Notification, error) {
	name, err := validateCategoryName(input.Name)
	if err != nil {
		n := rejectionNotification(err)
		t.notify(n)
		return nil, n, err
	}

	t.mu.Lock()
	created, err := t.categoryRepo.Create(&domain.Category{
		Name:  name,
		Icon:  input.Icon,
		Color: input.Color,
		Limit: limitFromInput(input.Limit),
	})
	t.mu.Unlock()
	if err != nil {
		return nil, domain.Notification{}, err
	}

	n := domain.NewNotification(domain.NotificationSuccess, MsgCategoryCreated)
	n.CategoryID = created.ID
	t.notify(n)
	t.publishEvent(websocket.CategoryCreated(created))
	return created, n, nil
}

// DeleteCategory removes a category. Expenses logged against it stay in the
// expense store and drop out of category-scoped views.
func (t *Tracker) DeleteCategory(categoryID string) error {
	t.mu.Lock()
	category, err := t.categoryRepo.GetByID(categoryID)
	if err == nil {
		err = t.categoryRepo.Delete(categoryID)
	}
	if err == nil && t.edit != nil && t.edit.Category.ID == categoryID {
		t.edit = nil
	}
	t.mu.Unlock()
	if err != nil {
		return err
	}

	n := domain.NewNotification(domain.NotificationInfo, MsgCategoryDeleted)
	n.CategoryID = categoryID
	t.notify(n)
	t.publishEvent(websocket.CategoryDeleted(category))
	return nil
}

func validateCategoryName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", domain.ErrNameRequired
	}
	if len([]rune(name)) > domain.MaxCategoryNameLength {
		return "", domain.ErrNameTooLong
	}
	return name, nil
}

// limitFromInput applies the 0 fallback for limit text
func limitFromInput(raw string) decimal.Decimal {
	limit := domain.ParseNumber(raw).OrZero()
	if limit.IsNegative() {
		return decimal.Zero
	}
	return limit
}
