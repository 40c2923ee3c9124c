package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	AccountKindChecking   = "checking"
	AccountKindSavings    = "savings"
	AccountKindCreditCard = "credit-card"
)

var (
	ErrInvalidAccountKind = errors.New("invalid account kind")
	ErrAccountNameEmpty   = errors.New("account name is required")
	ErrInvalidCurrency    = errors.New("currency must be a 3-letter code")
)

// Account represents a personal finance account. For a credit-card account
// the balance tracks the amount owed, so CreditLimit and APR apply.
type Account struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name           string          `gorm:"type:varchar(100);not null" json:"name"`
	Kind           string          `gorm:"type:varchar(20);not null" json:"kind"`
	Currency       string          `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"opening_balance"`
	CreditLimit    decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"credit_limit,omitempty"`
	APR            decimal.Decimal `gorm:"type:decimal(6,3);default:0" json:"apr,omitempty"`
	Note           string          `gorm:"type:text" json:"note,omitempty"`
	CreatedAt      time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null" json:"updated_at"`

	// Associations
	Transactions []Transaction `gorm:"foreignKey:AccountID" json:"-"`
}

// BeforeCreate hook for Account
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	if a.Currency == "" {
		a.Currency = "USD"
	}

	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}

	return a.Validate()
}

// BeforeUpdate hook for Account
func (a *Account) BeforeUpdate(tx *gorm.DB) error {
	a.UpdatedAt = time.Now()
	return a.Validate()
}

// Validate validates the account fields
func (a *Account) Validate() error {
	if a.Name == "" {
		return ErrAccountNameEmpty
	}

	if !IsValidAccountKind(a.Kind) {
		return ErrInvalidAccountKind
	}

	if len(a.Currency) != 3 {
		return ErrInvalidCurrency
	}

	return nil
}

// IsCreditCard returns true if the account is a credit card
func (a *Account) IsCreditCard() bool {
	return a.Kind == AccountKindCreditCard
}

// TableName returns the table name for Account
func (a *Account) TableName() string {
	return "accounts"
}

// IsValidAccountKind checks if the account kind is valid
func IsValidAccountKind(kind string) bool {
	switch kind {
	case AccountKindChecking, AccountKindSavings, AccountKindCreditCard:
		return true
	default:
		return false
	}
}
