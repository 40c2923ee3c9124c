package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CategoryKindIncome  = "income"
	CategoryKindExpense = "expense"
)

var (
	ErrCategoryNameEmpty   = errors.New("category name is required")
	ErrInvalidCategoryKind = errors.New("invalid category kind")
	ErrCategorySelfParent  = errors.New("category cannot be its own parent")
)

// Category groups transactions for reporting. One level of nesting is
// allowed: a category may name a parent, but the parent must itself be a
// root. The depth rule is enforced at creation by the ledger service, which
// has the parent row at hand.
type Category struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name      string     `gorm:"type:varchar(100);not null" json:"name"`
	Kind      string     `gorm:"type:varchar(10);not null" json:"kind"`
	ParentID  *uuid.UUID `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Active    bool       `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`

	// Associations
	Parent *Category `gorm:"foreignKey:ParentID" json:"-"`
}

// BeforeCreate hook for Category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}

	return c.Validate()
}

// BeforeUpdate hook for Category
func (c *Category) BeforeUpdate(tx *gorm.DB) error {
	c.UpdatedAt = time.Now()
	return c.Validate()
}

// Validate validates the category fields
func (c *Category) Validate() error {
	if c.Name == "" {
		return ErrCategoryNameEmpty
	}

	if !IsValidCategoryKind(c.Kind) {
		return ErrInvalidCategoryKind
	}

	if c.ParentID != nil && *c.ParentID == c.ID {
		return ErrCategorySelfParent
	}

	return nil
}

// IsRoot returns true if the category has no parent
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// TableName returns the table name for Category
func (c *Category) TableName() string {
	return "categories"
}

// IsValidCategoryKind checks if the category kind is valid
func IsValidCategoryKind(kind string) bool {
	switch kind {
	case CategoryKindIncome, CategoryKindExpense:
		return true
	default:
		return false
	}
}

// DefaultIncomeCategories are seeded for a fresh user store
var DefaultIncomeCategories = []string{
	"Salary", "Freelance", "Investments", "Gifts",
}

// DefaultExpenseCategories are seeded for a fresh user store
var DefaultExpenseCategories = []string{
	"Groceries", "Dining", "Transportation", "Entertainment",
	"Healthcare", "Rent/Mortgage", "Utilities", "Subscriptions",
	"Insurance", "Credit Card Payment",
}
