package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionSourceManual    = "manual"
	TransactionSourceRecurring = "recurring-rule"
	TransactionSourceImport    = "statement-import"
	TransactionSourceInterest  = "interest"

	CategoryOriginNone   = "none"
	CategoryOriginRule   = "rule"
	CategoryOriginManual = "manual"
)

var (
	ErrInvalidTransactionSource = errors.New("invalid transaction source")
	ErrInvalidCategoryOrigin    = errors.New("invalid category origin")
	ErrZeroAmount               = errors.New("transaction amount must not be zero")
	ErrPayeeRequired            = errors.New("transaction payee is required")
)

// Transaction represents a single dated ledger entry. Amount is signed:
// negative for expenses, positive for income. Date is a calendar date, not a
// timestamp.
type Transaction struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	AccountID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"account_id"`
	Date           time.Time       `gorm:"not null;index" json:"date"`
	Amount         decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Payee          string          `gorm:"type:varchar(255);not null" json:"payee"`
	CategoryID     *uuid.UUID      `gorm:"type:uuid;index" json:"category_id,omitempty"`
	CategoryOrigin string          `gorm:"type:varchar(10);not null;default:'none'" json:"category_origin"`
	Source         string          `gorm:"type:varchar(20);not null;default:'manual'" json:"source"`
	SourceRuleID   *uuid.UUID      `gorm:"type:uuid;index" json:"source_rule_id,omitempty"`
	StatementID    *uuid.UUID      `gorm:"type:uuid;index" json:"statement_id,omitempty"`
	Paid           bool            `gorm:"not null;default:false" json:"paid"`
	Note           string          `gorm:"type:text" json:"note,omitempty"`
	CreatedAt      time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null" json:"updated_at"`

	// Associations
	Account  Account   `gorm:"foreignKey:AccountID" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	if t.Source == "" {
		t.Source = TransactionSourceManual
	}

	if t.CategoryOrigin == "" {
		t.CategoryOrigin = CategoryOriginNone
	}

	t.Date = DateOnly(t.Date)

	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	return t.Validate()
}

// BeforeUpdate hook for Transaction
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return t.Validate()
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.AccountID == uuid.Nil {
		return errors.New("account ID is required")
	}

	if t.Amount.IsZero() {
		return ErrZeroAmount
	}

	if t.Payee == "" {
		return ErrPayeeRequired
	}

	if t.Date.IsZero() {
		return errors.New("transaction date is required")
	}

	if !IsValidTransactionSource(t.Source) {
		return ErrInvalidTransactionSource
	}

	if !IsValidCategoryOrigin(t.CategoryOrigin) {
		return ErrInvalidCategoryOrigin
	}

	if t.Source == TransactionSourceRecurring && t.SourceRuleID == nil {
		return errors.New("rule-generated transaction must reference its rule")
	}

	if t.CategoryID == nil && t.CategoryOrigin != CategoryOriginNone {
		return errors.New("category origin set without a category")
	}

	return nil
}

// IsIncome returns true if the amount is positive
func (t *Transaction) IsIncome() bool {
	return t.Amount.IsPositive()
}

// IsExpense returns true if the amount is negative
func (t *Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// AssignCategory sets the category with the given provenance
func (t *Transaction) AssignCategory(categoryID uuid.UUID, origin string) {
	id := categoryID
	t.CategoryID = &id
	t.CategoryOrigin = origin
}

// ClearCategory removes the category assignment
func (t *Transaction) ClearCategory() {
	t.CategoryID = nil
	t.CategoryOrigin = CategoryOriginNone
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// IsValidTransactionSource checks if the transaction source is valid
func IsValidTransactionSource(source string) bool {
	switch source {
	case TransactionSourceManual, TransactionSourceRecurring, TransactionSourceImport, TransactionSourceInterest:
		return true
	default:
		return false
	}
}

// IsValidCategoryOrigin checks if the category origin is valid
func IsValidCategoryOrigin(origin string) bool {
	switch origin {
	case CategoryOriginNone, CategoryOriginRule, CategoryOriginManual:
		return true
	default:
		return false
	}
}
