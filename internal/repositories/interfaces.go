package repositories

import (
	"time"

	"homeledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountRepositoryInterface defines the contract for account repository operations
type AccountRepositoryInterface interface {
	Create(account *models.Account) error
	GetByID(id uuid.UUID) (*models.Account, error)
	GetAll() ([]models.Account, error)
	GetByKind(kind string) ([]models.Account, error)
	Update(account *models.Account) error
	Delete(id uuid.UUID) error
	CountTransactions(accountID uuid.UUID) (int64, error)
}

// TransactionRepositoryInterface defines the contract for transaction repository operations
type TransactionRepositoryInterface interface {
	Create(transaction *models.Transaction) error
	CreateBatch(transactions []models.Transaction) error
	GetByID(id uuid.UUID) (*models.Transaction, error)
	GetByAccountID(accountID uuid.UUID) ([]models.Transaction, error)
	GetByAccountsAndDateRange(accountIDs []uuid.UUID, startDate, endDate time.Time) ([]models.Transaction, error)
	GetLatestByRuleID(ruleID uuid.UUID) (*models.Transaction, error)
	GetRecategorizable() ([]models.Transaction, error)
	// FindUnclaimedMatch finds the oldest transaction on the account with
	// the exact date and amount that is not linked to any statement and not
	// in the excluded set.
	FindUnclaimedMatch(accountID uuid.UUID, date time.Time, amount decimal.Decimal, excluded []uuid.UUID) (*models.Transaction, error)
	Update(transaction *models.Transaction) error
	UpdateCategory(id uuid.UUID, categoryID *uuid.UUID, origin string) error
	Delete(id uuid.UUID) error
}

// CategoryRepositoryInterface defines the contract for category repository operations
type CategoryRepositoryInterface interface {
	Create(category *models.Category) error
	GetByID(id uuid.UUID) (*models.Category, error)
	GetAll() ([]models.Category, error)
	GetByIDs(ids []uuid.UUID) (map[uuid.UUID]models.Category, error)
	Update(category *models.Category) error
	Delete(id uuid.UUID) error
	SeedDefaults() error
}

// BudgetRepositoryInterface defines the contract for budget repository operations
type BudgetRepositoryInterface interface {
	Create(budget *models.Budget) error
	GetByID(id uuid.UUID) (*models.Budget, error)
	GetForMonth(year, month int) ([]models.Budget, error)
	Update(budget *models.Budget) error
	Delete(id uuid.UUID) error
}

// RecurringRuleRepositoryInterface defines the contract for recurring rule repository operations
type RecurringRuleRepositoryInterface interface {
	Create(rule *models.RecurringRule) error
	GetByID(id uuid.UUID) (*models.RecurringRule, error)
	GetAll() ([]models.RecurringRule, error)
	GetActive() ([]models.RecurringRule, error)
	Update(rule *models.RecurringRule) error
	Delete(id uuid.UUID) error
	// SaveMaterialization persists emitted transactions together with the
	// rule's advanced watermark in a single database transaction.
	SaveMaterialization(rule *models.RecurringRule, transactions []models.Transaction) error
}

// CategorizationRuleRepositoryInterface defines the contract for categorization rule repository operations
type CategorizationRuleRepositoryInterface interface {
	Create(rule *models.CategorizationRule) error
	GetByID(id uuid.UUID) (*models.CategorizationRule, error)
	GetAll() ([]models.CategorizationRule, error)
	GetActiveOrdered() ([]models.CategorizationRule, error)
	Update(rule *models.CategorizationRule) error
	Delete(id uuid.UUID) error
}

// StatementImportLine is one issuer line handed to Import, resolved to the
// transaction it settles on: NewTransaction is created when the line matched
// nothing, MatchedTransactionID claims an existing transaction instead.
// Item carries the issuer's date, amount, and description as stated.
type StatementImportLine struct {
	Item                 models.StatementLineItem
	NewTransaction       *models.Transaction
	MatchedTransactionID *uuid.UUID
}

// StatementRepositoryInterface defines the contract for statement and payment repository operations
type StatementRepositoryInterface interface {
	GetByID(id uuid.UUID) (*models.CreditCardStatement, error)
	GetByAccountID(accountID uuid.UUID) ([]models.CreditCardStatement, error)
	GetOverlapping(accountID uuid.UUID, start, end time.Time) ([]models.CreditCardStatement, error)
	GetLatestBefore(accountID uuid.UUID, periodStart time.Time) (*models.CreditCardStatement, error)
	// Import persists the statement with its line items, any transactions
	// materialized from unmatched lines, and the statement linkage of
	// matched transactions, atomically.
	Import(statement *models.CreditCardStatement, lines []StatementImportLine) error
	// ApplyPayment persists the payment and the statement's accumulator
	// atomically; when markPaid is set it also flags every linked
	// transaction as paid in the same database transaction.
	ApplyPayment(statement *models.CreditCardStatement, payment *models.Payment, markPaid bool) error
	Update(statement *models.CreditCardStatement) error
}
