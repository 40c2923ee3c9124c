package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest carries the input for a new account
type CreateAccountRequest struct {
	Name           string          `json:"name" validate:"required,max=100"`
	Kind           string          `json:"kind" validate:"required,account_kind"`
	Currency       string          `json:"currency" validate:"omitempty,len=3"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	CreditLimit    decimal.Decimal `json:"credit_limit"`
	APR            decimal.Decimal `json:"apr"`
	Note           string          `json:"note"`
}

// CreateTransactionRequest carries the input for a manually entered transaction
type CreateTransactionRequest struct {
	AccountID  uuid.UUID       `json:"account_id" validate:"required"`
	Date       time.Time       `json:"date" validate:"required"`
	Amount     decimal.Decimal `json:"amount" validate:"nonzero_amount"`
	Payee      string          `json:"payee" validate:"required,max=255"`
	CategoryID *uuid.UUID      `json:"category_id"`
	Note       string          `json:"note"`
}

// CreateCategoryRequest carries the input for a new category
type CreateCategoryRequest struct {
	Name     string     `json:"name" validate:"required,max=100"`
	Kind     string     `json:"kind" validate:"required,category_kind"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// CreateRecurringRuleRequest carries the input for a new recurring rule
type CreateRecurringRuleRequest struct {
	AccountID      uuid.UUID       `json:"account_id" validate:"required"`
	Payee          string          `json:"payee" validate:"required,max=255"`
	Amount         decimal.Decimal `json:"amount" validate:"nonzero_amount"`
	CategoryID     *uuid.UUID      `json:"category_id"`
	Frequency      string          `json:"frequency" validate:"required,frequency"`
	Interval       int             `json:"interval" validate:"omitempty,min=1"`
	StartDate      time.Time       `json:"start_date" validate:"required"`
	EndDate        *time.Time      `json:"end_date"`
	MaxOccurrences *int            `json:"max_occurrences"`
	Note           string          `json:"note"`
}

// CreateCategorizationRuleRequest carries the input for a new categorization rule
type CreateCategorizationRuleRequest struct {
	Priority         int              `json:"priority" validate:"omitempty,min=0"`
	PayeePattern     string           `json:"payee_pattern" validate:"omitempty,max=255"`
	CaseSensitive    bool             `json:"case_sensitive"`
	AmountMin        *decimal.Decimal `json:"amount_min"`
	AmountMax        *decimal.Decimal `json:"amount_max"`
	AccountID        *uuid.UUID       `json:"account_id"`
	TargetCategoryID uuid.UUID        `json:"target_category_id" validate:"required"`
}

// StatementLine is one issuer line supplied to a statement import
type StatementLine struct {
	Date        time.Time       `json:"date" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"nonzero_amount"`
	Description string          `json:"description" validate:"required,max=255"`
}

// ImportStatementRequest carries a full issuer statement for import
type ImportStatementRequest struct {
	AccountID      uuid.UUID       `json:"account_id" validate:"required"`
	PeriodStart    time.Time       `json:"period_start" validate:"required"`
	PeriodEnd      time.Time       `json:"period_end" validate:"required"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	Lines          []StatementLine `json:"lines" validate:"dive"`
	Note           string          `json:"note"`
}

// ApplyPaymentRequest applies a payment against a statement
type ApplyPaymentRequest struct {
	StatementID uuid.UUID       `json:"statement_id" validate:"required"`
	Date        time.Time       `json:"date" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"positive_amount"`
	Note        string          `json:"note"`
}

// CreateBudgetRequest sets a monthly spending target for a category
type CreateBudgetRequest struct {
	CategoryID uuid.UUID       `json:"category_id" validate:"required"`
	Year       int             `json:"year" validate:"required,min=1970"`
	Month      time.Month      `json:"month" validate:"required,min=1,max=12"`
	Amount     decimal.Decimal `json:"amount" validate:"positive_amount"`
	Note       string          `json:"note"`
}

// BudgetReportRequest selects the accounts and month for budget progress
type BudgetReportRequest struct {
	AccountIDs []uuid.UUID `json:"account_ids" validate:"required,min=1"`
	Year       int         `json:"year" validate:"required,min=1970"`
	Month      time.Month  `json:"month" validate:"required,min=1,max=12"`
}

// SummarizeRequest selects the accounts and month to aggregate
type SummarizeRequest struct {
	AccountIDs []uuid.UUID `json:"account_ids" validate:"required,min=1"`
	Year       int         `json:"year" validate:"required,min=1970"`
	Month      time.Month  `json:"month" validate:"required,min=1,max=12"`
}
