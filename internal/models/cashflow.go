package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashFlowSummary aggregates one calendar month of transactions across the
// selected accounts.
type CashFlowSummary struct {
	Year               int             `json:"year"`
	Month              time.Month      `json:"month"`
	IncomeTotal        decimal.Decimal `json:"income_total"`
	ExpenseTotal       decimal.Decimal `json:"expense_total"`
	Net                decimal.Decimal `json:"net"`
	ByCategory         []CategoryFlow  `json:"by_category"`
	UncategorizedCount int             `json:"uncategorized_count"`
	GeneratedAt        time.Time       `json:"generated_at"`
}

// CategoryFlow is one row of the per-category breakdown. CategoryID is nil
// for the synthetic "Uncategorized" row.
type CategoryFlow struct {
	CategoryID   *uuid.UUID      `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name"`
	Net          decimal.Decimal `json:"net"`
	Count        int             `json:"count"`
}

// MonthlyFlow is one point of the income/expense trend series.
type MonthlyFlow struct {
	Year    int             `json:"year"`
	Month   time.Month      `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}
