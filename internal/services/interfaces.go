package services

import (
	"time"

	"homeledger/internal/dto"
	"homeledger/internal/models"

	"github.com/google/uuid"
)

// SchedulerServiceInterface expands recurring rules into dated transactions
type SchedulerServiceInterface interface {
	// Materialize emits every occurrence of the rule dated after its
	// watermark and at or before asOf. Returns the number of transactions
	// emitted.
	Materialize(rule *models.RecurringRule, asOf time.Time) (int, error)
	// MaterializeDueRules runs Materialize over every active rule.
	MaterializeDueRules(asOf time.Time) (int, error)
}

// CategorizerServiceInterface assigns categories to transactions by rule
type CategorizerServiceInterface interface {
	// Categorize applies the first matching rule to the transaction in
	// memory. Returns true when the assignment changed. Manual assignments
	// are never touched.
	Categorize(transaction *models.Transaction, rules []models.CategorizationRule) bool
	// RecategorizeAll re-runs the rule set over every transaction whose
	// category is rule-owned or absent. Returns the number updated.
	RecategorizeAll() (int, error)
	// OverrideCategory pins a category on the transaction with manual
	// provenance, or clears the assignment when categoryID is nil.
	OverrideCategory(transactionID uuid.UUID, categoryID *uuid.UUID) error
}

// ReconciliationServiceInterface imports issuer statements and applies payments
type ReconciliationServiceInterface interface {
	ImportStatement(req dto.ImportStatementRequest) (*models.CreditCardStatement, error)
	ApplyPayment(req dto.ApplyPaymentRequest) (*models.CreditCardStatement, error)
	// AccrueInterest posts one monthly interest charge per credit-card
	// account carrying an owed balance as of the given date.
	AccrueInterest(asOf time.Time) (int, error)
}

// AggregatorServiceInterface produces cash-flow reports
type AggregatorServiceInterface interface {
	Summarize(accountIDs []uuid.UUID, year int, month time.Month) (*models.CashFlowSummary, error)
	// MonthlySeries returns one income/expense pair per calendar month in
	// [from, to] for trend display.
	MonthlySeries(accountIDs []uuid.UUID, from, to time.Time) ([]models.MonthlyFlow, error)
	// BudgetReport compares the month's budget targets against actual
	// expense totals per budgeted category.
	BudgetReport(accountIDs []uuid.UUID, year int, month time.Month) (*models.BudgetReport, error)
}

// LedgerServiceInterface is the single entry point callers use
type LedgerServiceInterface interface {
	CreateAccount(req dto.CreateAccountRequest) (*models.Account, error)
	GetAccounts() ([]models.Account, error)
	DeleteAccount(id uuid.UUID) error

	CreateTransaction(req dto.CreateTransactionRequest) (*models.Transaction, error)
	DeleteTransaction(id uuid.UUID) error

	CreateCategory(req dto.CreateCategoryRequest) (*models.Category, error)
	SeedDefaultCategories() error

	CreateRecurringRule(req dto.CreateRecurringRuleRequest) (*models.RecurringRule, error)
	CreateCategorizationRule(req dto.CreateCategorizationRuleRequest) (*models.CategorizationRule, error)
	CreateBudget(req dto.CreateBudgetRequest) (*models.Budget, error)

	MaterializeDueRules(asOf time.Time) (int, error)
	RecategorizeAll() (int, error)
	OverrideCategory(transactionID uuid.UUID, categoryID *uuid.UUID) error
	ImportStatement(req dto.ImportStatementRequest) (*models.CreditCardStatement, error)
	ApplyPayment(req dto.ApplyPaymentRequest) (*models.CreditCardStatement, error)
	Summarize(req dto.SummarizeRequest) (*models.CashFlowSummary, error)
	BudgetReport(req dto.BudgetReportRequest) (*models.BudgetReport, error)
}

// MetricsRecorderInterface abstracts metrics collection
type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
