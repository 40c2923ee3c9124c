package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrPeriodOrder       = errors.New("period start must not be after period end")
	ErrNonPositiveAmount = errors.New("payment amount must be positive")
)

// CreditCardStatement is an issuer statement for one billing period.
// ClosingBalance is the amount the issuer states as owed. PaidAmount
// accumulates payments; CarriedCredit is overpayment credit pulled forward
// from the previous statement at import time.
type CreditCardStatement struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	AccountID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"account_id"`
	PeriodStart    time.Time       `gorm:"not null" json:"period_start"`
	PeriodEnd      time.Time       `gorm:"not null;index" json:"period_end"`
	ClosingBalance decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"closing_balance"`
	MinimumDue     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"minimum_due"`
	DueDate        time.Time       `gorm:"not null" json:"due_date"`
	PaidAmount     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"paid_amount"`
	CarriedCredit  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"carried_credit"`
	Note           string          `gorm:"type:text" json:"note,omitempty"`
	CreatedAt      time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null" json:"updated_at"`

	// Associations
	Account   Account             `gorm:"foreignKey:AccountID" json:"-"`
	LineItems []StatementLineItem `gorm:"foreignKey:StatementID" json:"line_items,omitempty"`
	Payments  []Payment           `gorm:"foreignKey:StatementID" json:"payments,omitempty"`
}

// BeforeCreate hook for CreditCardStatement
func (s *CreditCardStatement) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	s.PeriodStart = DateOnly(s.PeriodStart)
	s.PeriodEnd = DateOnly(s.PeriodEnd)
	if !s.DueDate.IsZero() {
		s.DueDate = DateOnly(s.DueDate)
	}

	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = now
	}

	return s.Validate()
}

// BeforeUpdate hook for CreditCardStatement
func (s *CreditCardStatement) BeforeUpdate(tx *gorm.DB) error {
	s.UpdatedAt = time.Now()
	return s.Validate()
}

// Validate validates the statement fields
func (s *CreditCardStatement) Validate() error {
	if s.AccountID == uuid.Nil {
		return errors.New("account ID is required")
	}

	if s.PeriodStart.IsZero() || s.PeriodEnd.IsZero() {
		return errors.New("statement period is required")
	}

	if s.PeriodStart.After(s.PeriodEnd) {
		return ErrPeriodOrder
	}

	return nil
}

// Outstanding returns the balance still owed on the statement. Negative
// means overpayment; the credit carries forward to the next statement.
func (s *CreditCardStatement) Outstanding() decimal.Decimal {
	return s.ClosingBalance.Sub(s.CarriedCredit).Sub(s.PaidAmount)
}

// IsSettled returns true when nothing remains owed
func (s *CreditCardStatement) IsSettled() bool {
	return s.Outstanding().LessThanOrEqual(decimal.Zero)
}

// Overlaps reports whether the statement period overlaps [start, end]
func (s *CreditCardStatement) Overlaps(start, end time.Time) bool {
	return !s.PeriodStart.After(DateOnly(end)) && !DateOnly(start).After(s.PeriodEnd)
}

// ContainsDate reports whether the date falls inside the statement period
func (s *CreditCardStatement) ContainsDate(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(s.PeriodStart) && !d.After(s.PeriodEnd)
}

// TableName returns the table name for CreditCardStatement
func (s *CreditCardStatement) TableName() string {
	return "credit_card_statements"
}

// DefaultMinimumDue computes the issuer rule of thumb: the greater of the
// floor and pct percent of the statement balance.
func DefaultMinimumDue(balance decimal.Decimal, pct, floor decimal.Decimal) decimal.Decimal {
	due := balance.Abs().Mul(pct).Div(decimal.NewFromInt(100)).Round(2)
	if due.LessThan(floor) {
		return floor
	}
	return due
}

// StatementLineItem is one issuer line on a statement. TransactionID is set
// once the line has been matched to, or materialized as, a ledger
// transaction.
type StatementLineItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	StatementID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"statement_id"`
	Date          time.Time       `gorm:"not null" json:"date"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Description   string          `gorm:"type:varchar(255);not null" json:"description"`
	TransactionID *uuid.UUID      `gorm:"type:uuid;index" json:"transaction_id,omitempty"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
}

// BeforeCreate hook for StatementLineItem
func (li *StatementLineItem) BeforeCreate(tx *gorm.DB) error {
	if li.ID == uuid.Nil {
		li.ID = uuid.New()
	}
	li.Date = DateOnly(li.Date)
	if li.CreatedAt.IsZero() {
		li.CreatedAt = time.Now()
	}
	return nil
}

// TableName returns the table name for StatementLineItem
func (li *StatementLineItem) TableName() string {
	return "statement_line_items"
}

// Payment is applied against a statement's outstanding balance.
type Payment struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	StatementID uuid.UUID       `gorm:"type:uuid;not null;index" json:"statement_id"`
	Date        time.Time       `gorm:"not null" json:"date"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Note        string          `gorm:"type:text" json:"note,omitempty"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
}

// BeforeCreate hook for Payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.Date = DateOnly(p.Date)
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	return p.Validate()
}

// Validate validates the payment fields
func (p *Payment) Validate() error {
	if p.StatementID == uuid.Nil {
		return errors.New("statement ID is required")
	}

	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrNonPositiveAmount
	}

	return nil
}

// TableName returns the table name for Payment
func (p *Payment) TableName() string {
	return "payments"
}
