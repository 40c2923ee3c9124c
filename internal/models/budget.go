package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNonPositiveBudget  = errors.New("budget amount must be positive")
	ErrInvalidBudgetMonth = errors.New("budget month must be between 1 and 12")
)

// Budget is a monthly spending target for one category. One budget per
// category per calendar month.
type Budget struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CategoryID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_budgets_category_month" json:"category_id"`
	Year       int             `gorm:"not null;uniqueIndex:idx_budgets_category_month" json:"year"`
	Month      int             `gorm:"not null;uniqueIndex:idx_budgets_category_month" json:"month"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Active     bool            `gorm:"not null;default:true" json:"active"`
	Note       string          `gorm:"type:text" json:"note,omitempty"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updated_at"`

	// Associations
	Category Category `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate hook for Budget
func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = now
	}

	return b.Validate()
}

// BeforeUpdate hook for Budget
func (b *Budget) BeforeUpdate(tx *gorm.DB) error {
	b.UpdatedAt = time.Now()
	return b.Validate()
}

// Validate validates the budget fields
func (b *Budget) Validate() error {
	if b.CategoryID == uuid.Nil {
		return errors.New("category ID is required")
	}

	if b.Year < 1970 {
		return errors.New("budget year is required")
	}

	if b.Month < 1 || b.Month > 12 {
		return ErrInvalidBudgetMonth
	}

	if b.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrNonPositiveBudget
	}

	return nil
}

// TableName returns the table name for Budget
func (b *Budget) TableName() string {
	return "budgets"
}

// BudgetReport compares one month's budgeted categories against actual
// spending across the selected accounts.
type BudgetReport struct {
	Year        int          `json:"year"`
	Month       time.Month   `json:"month"`
	Lines       []BudgetLine `json:"lines"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// BudgetLine is one budgeted category's progress for the month. Spent is the
// absolute expense total; Remaining goes negative once the budget is blown.
type BudgetLine struct {
	BudgetID     uuid.UUID       `json:"budget_id"`
	CategoryID   uuid.UUID       `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Budgeted     decimal.Decimal `json:"budgeted"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
}
