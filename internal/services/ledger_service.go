package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"homeledger/internal/dto"
	apperrors "homeledger/internal/errors"
	"homeledger/internal/models"
	"homeledger/internal/repositories"
	"homeledger/internal/validation"

	"github.com/google/uuid"
)

// ledgerService implements LedgerServiceInterface. It is the single entry
// point callers use: request validation, referential checks, and dispatch to
// the engine services all happen here.
type ledgerService struct {
	accountRepo  repositories.AccountRepositoryInterface
	txRepo       repositories.TransactionRepositoryInterface
	categoryRepo repositories.CategoryRepositoryInterface
	recurRepo    repositories.RecurringRuleRepositoryInterface
	catRuleRepo  repositories.CategorizationRuleRepositoryInterface
	budgetRepo   repositories.BudgetRepositoryInterface

	scheduler      SchedulerServiceInterface
	categorizer    CategorizerServiceInterface
	reconciliation ReconciliationServiceInterface
	aggregator     AggregatorServiceInterface

	validator *validation.Validator
	metrics   MetricsRecorderInterface
	logger    *slog.Logger
}

// NewLedgerService creates the ledger facade
func NewLedgerService(
	accountRepo repositories.AccountRepositoryInterface,
	txRepo repositories.TransactionRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	recurRepo repositories.RecurringRuleRepositoryInterface,
	catRuleRepo repositories.CategorizationRuleRepositoryInterface,
	budgetRepo repositories.BudgetRepositoryInterface,
	scheduler SchedulerServiceInterface,
	categorizer CategorizerServiceInterface,
	reconciliation ReconciliationServiceInterface,
	aggregator AggregatorServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) LedgerServiceInterface {
	return &ledgerService{
		accountRepo:    accountRepo,
		txRepo:         txRepo,
		categoryRepo:   categoryRepo,
		recurRepo:      recurRepo,
		catRuleRepo:    catRuleRepo,
		budgetRepo:     budgetRepo,
		scheduler:      scheduler,
		categorizer:    categorizer,
		reconciliation: reconciliation,
		aggregator:     aggregator,
		validator:      validation.GetValidator(),
		metrics:        metrics,
		logger:         logger,
	}
}

// requestError folds field-level validation failures into one engine error.
func requestError(code apperrors.ErrorCode, fields map[string]string) error {
	return apperrors.Validationf(code, "invalid request: %v", fields)
}

// CreateAccount creates a new account
func (s *ledgerService) CreateAccount(req dto.CreateAccountRequest) (*models.Account, error) {
	start := time.Now()
	if fields := s.validator.Validate(req); fields != nil {
		return nil, requestError(apperrors.AccountInvalidKind, fields)
	}

	account := &models.Account{
		Name:           req.Name,
		Kind:           req.Kind,
		Currency:       req.Currency,
		OpeningBalance: req.OpeningBalance,
		CreditLimit:    req.CreditLimit,
		APR:            req.APR,
		Note:           req.Note,
	}
	if err := s.accountRepo.Create(account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.metrics.IncrementCounter("ledger_operations_total", map[string]string{"operation": "create_account"})
	s.metrics.RecordProcessingTime("create_account", time.Since(start))
	s.logger.Info("created account", "account_id", account.ID, "kind", account.Kind)
	return account, nil
}

// GetAccounts lists all accounts
func (s *ledgerService) GetAccounts() ([]models.Account, error) {
	return s.accountRepo.GetAll()
}

// DeleteAccount removes an account. Accounts still holding transactions are
// refused with a conflict.
func (s *ledgerService) DeleteAccount(id uuid.UUID) error {
	if err := s.accountRepo.Delete(id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrAccountNotFound):
			return apperrors.NotFound(apperrors.AccountNotFound)
		case errors.Is(err, repositories.ErrAccountInUse):
			return apperrors.Conflict(apperrors.AccountInUse)
		}
		return err
	}
	s.metrics.IncrementCounter("ledger_operations_total", map[string]string{"operation": "delete_account"})
	return nil
}

// CreateTransaction records a manually entered transaction. An explicit
// category pins the assignment as manual; otherwise the rule engine gets a
// chance to categorize the new entry.
func (s *ledgerService) CreateTransaction(req dto.CreateTransactionRequest) (*models.Transaction, error) {
	start := time.Now()
	if fields := s.validator.Validate(req); fields != nil {
		return nil, requestError(apperrors.TransactionZeroAmount, fields)
	}

	if _, err := s.accountRepo.GetByID(req.AccountID); err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.NotFound(apperrors.AccountNotFound)
		}
		return nil, fmt.Errorf("failed to verify account: %w", err)
	}

	transaction := &models.Transaction{
		AccountID: req.AccountID,
		Date:      req.Date,
		Amount:    req.Amount,
		Payee:     req.Payee,
		Source:    models.TransactionSourceManual,
		Note:      req.Note,
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(*req.CategoryID); err != nil {
			if errors.Is(err, repositories.ErrCategoryNotFound) {
				return nil, apperrors.NotFound(apperrors.CategoryNotFound)
			}
			return nil, fmt.Errorf("failed to verify category: %w", err)
		}
		transaction.AssignCategory(*req.CategoryID, models.CategoryOriginManual)
	} else {
		rules, err := s.catRuleRepo.GetActiveOrdered()
		if err != nil {
			return nil, fmt.Errorf("failed to load categorization rules: %w", err)
		}
		s.categorizer.Categorize(transaction, rules)
	}

	if err := s.txRepo.Create(transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.metrics.IncrementCounter("ledger_operations_total", map[string]string{"operation": "create_transaction"})
	s.metrics.RecordProcessingTime("create_transaction", time.Since(start))
	return transaction, nil
}

// DeleteTransaction removes a transaction. Always an explicit user action.
func (s *ledgerService) DeleteTransaction(id uuid.UUID) error {
	if err := s.txRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return apperrors.NotFound(apperrors.TransactionNotFound)
		}
		return err
	}
	s.metrics.IncrementCounter("ledger_operations_total", map[string]string{"operation": "delete_transaction"})
	return nil
}

// CreateCategory creates a new category. Categories nest one level deep: a
// parent must itself be top-level.
func (s *ledgerService) CreateCategory(req dto.CreateCategoryRequest) (*models.Category, error) {
	if fields := s.validator.Validate(req); fields != nil {
		return nil, requestError(apperrors.CategoryNameRequired, fields)
	}

	if req.ParentID != nil {
		parent, err := s.categoryRepo.GetByID(*req.ParentID)
		if err != nil {
			if errors.Is(err, repositories.ErrCategoryNotFound) {
				return nil, apperrors.NotFound(apperrors.CategoryParentMissing)
			}
			return nil, fmt.Errorf("failed to verify parent category: %w", err)
		}
		if parent.ParentID != nil {
			return nil, apperrors.Validation(apperrors.CategoryNestedParent)
		}
	}

	category := &models.Category{
		Name:     req.Name,
		Kind:     req.Kind,
		ParentID: req.ParentID,
		Active:   true,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.metrics.IncrementCounter("ledger_operations_total", map[string]string{"operation": "create_category"})
	return category, nil
}

// SeedDefaultCategories seeds the default category set into an empty store
func (s *ledgerService) SeedDefaultCategories() error {
	return s.categoryRepo.SeedDefaults()
}

// CreateRecurringRule creates a new recurring rule
func (s *ledgerService) CreateRecurringRule(req dto.CreateRecurringRuleRequest) (*models.RecurringRule, error) {
	if fields := s.validator.Validate(req); fields != nil {
		return nil, requestError(apperrors.RecurringInvalidFrequency, fields)
	}

	if _, err := s.accountRepo.GetByID(req.AccountID); err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.NotFound(apperrors.AccountNotFound)
		}
		return nil, fmt.Errorf("failed to verify account: %w", err)
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(*req.CategoryID); err != nil {
			if errors.Is(err, repositories.ErrCategoryNotFound) {
				return nil, apperrors.NotFound(apperrors.CategoryNotFound)
			}
			return nil, fmt.Errorf("failed to verify category: %w", err)
		}
	}

	rule := &models.RecurringRule{
		AccountID:      req.AccountID,
		Payee:          req.Payee,
		Amount:         req.Amount,
		CategoryID:     req.CategoryID,
		Frequency:      req.Frequency,
		Interval:       req.Interval,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		MaxOccurrences: req.MaxOccurrences,
		Note:           req.Note,
	}
	if err := s.recurRepo.Create(rule); err != nil {
		switch {
		case errors.Is(err, models.ErrEndBeforeStart):
			return nil, apperrors.Validation(apperrors.RecurringInvalidEnd).Wrap(err)
		case errors.Is(err, models.ErrInvalidInterval):
			return nil, apperrors.Validation(apperrors.RecurringInvalidInterval).Wrap(err)
		}
		return nil, fmt.Errorf("failed to create recurring rule: %w", err)
	}

	s.metrics.IncrementCounter("ledger_operations_total", map[string]string{"operation": "create_recurring_rule"})
	return rule, nil
}

// CreateCategorizationRule creates a new categorization rule
func (s *ledgerService) CreateCategorizationRule(req dto.CreateCategorizationRuleRequest) (*models.CategorizationRule, error) {
	if fields := s.validator.Validate(req); fields != nil {
		return nil, requestError(apperrors.RuleEmptyPredicate, fields)
	}

	if _, err := s.categoryRepo.GetByID(req.TargetCategoryID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, apperrors.NotFound(apperrors.CategoryNotFound)
		}
		return nil, fmt.Errorf("failed to verify target category: %w", err)
	}
	if req.AccountID != nil {
		if _, err := s.accountRepo.GetByID(*req.AccountID); err != nil {
			if errors.Is(err, repositories.ErrAccountNotFound) {
				return nil, apperrors.NotFound(apperrors.AccountNotFound)
			}
			return nil, fmt.Errorf("failed to verify account: %w", err)
		}
	}

	rule := &models.CategorizationRule{
		Priority:         req.Priority,
		PayeePattern:     req.PayeePattern,
		CaseSensitive:    req.CaseSensitive,
		AmountMin:        req.AmountMin,
		AmountMax:        req.AmountMax,
		AccountID:        req.AccountID,
		TargetCategoryID: req.TargetCategoryID,
		Active:           true,
	}
	if rule.Priority == 0 {
		rule.Priority = 100
	}
	if err := s.catRuleRepo.Create(rule); err != nil {
		switch {
		case errors.Is(err, models.ErrEmptyPredicate):
			return nil, apperrors.Validation(apperrors.RuleEmptyPredicate).Wrap(err)
		case errors.Is(err, models.ErrInvalidAmountRange):
			return nil, apperrors.Validation(apperrors.RuleInvalidRange).Wrap(err)
		}
		return nil, fmt.Errorf("failed to create categorization rule: %w", err)
	}

	s.metrics.IncrementCounter("ledger_operations_total", map[string]string{"operation": "create_categorization_rule"})
	return rule, nil
}

// CreateBudget sets a monthly spending target for a category. One budget per
// category per calendar month.
func (s *ledgerService) CreateBudget(req dto.CreateBudgetRequest) (*models.Budget, error) {
	if fields := s.validator.Validate(req); fields != nil {
		return nil, requestError(apperrors.BudgetNonPositive, fields)
	}

	if _, err := s.categoryRepo.GetByID(req.CategoryID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, apperrors.NotFound(apperrors.CategoryNotFound)
		}
		return nil, fmt.Errorf("failed to verify category: %w", err)
	}

	budget := &models.Budget{
		CategoryID: req.CategoryID,
		Year:       req.Year,
		Month:      int(req.Month),
		Amount:     req.Amount,
		Active:     true,
		Note:       req.Note,
	}
	if err := s.budgetRepo.Create(budget); err != nil {
		switch {
		case errors.Is(err, models.ErrNonPositiveBudget):
			return nil, apperrors.Validation(apperrors.BudgetNonPositive).Wrap(err)
		case errors.Is(err, models.ErrInvalidBudgetMonth):
			return nil, apperrors.Validation(apperrors.BudgetInvalidMonth).Wrap(err)
		case errors.Is(err, repositories.ErrBudgetExists):
			return nil, apperrors.Conflict(apperrors.BudgetDuplicate).Wrap(err)
		}
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	s.metrics.IncrementCounter("ledger_operations_total", map[string]string{"operation": "create_budget"})
	return budget, nil
}

// BudgetReport compares one month's budgets against actual spending on the
// selected accounts
func (s *ledgerService) BudgetReport(req dto.BudgetReportRequest) (*models.BudgetReport, error) {
	if fields := s.validator.Validate(req); fields != nil {
		return nil, requestError(apperrors.AccountNotFound, fields)
	}

	for _, accountID := range req.AccountIDs {
		if _, err := s.accountRepo.GetByID(accountID); err != nil {
			if errors.Is(err, repositories.ErrAccountNotFound) {
				return nil, apperrors.NotFound(apperrors.AccountNotFound)
			}
			return nil, fmt.Errorf("failed to verify account: %w", err)
		}
	}

	start := time.Now()
	report, err := s.aggregator.BudgetReport(req.AccountIDs, req.Year, req.Month)
	if err == nil {
		s.metrics.IncrementCounter("ledger_operations_total", map[string]string{"operation": "budget_report"})
		s.metrics.RecordProcessingTime("budget_report", time.Since(start))
	}
	return report, err
}

// MaterializeDueRules expands every active recurring rule up to asOf
func (s *ledgerService) MaterializeDueRules(asOf time.Time) (int, error) {
	start := time.Now()
	count, err := s.scheduler.MaterializeDueRules(asOf)
	if err == nil {
		s.metrics.IncrementCounter("ledger_operations_total", map[string]string{"operation": "materialize"})
		s.metrics.RecordProcessingTime("materialize", time.Since(start))
		s.metrics.RecordGauge("ledger_materialized_transactions", float64(count), nil)
	}
	return count, err
}

// RecategorizeAll re-runs the categorization rules over the whole ledger
func (s *ledgerService) RecategorizeAll() (int, error) {
	start := time.Now()
	count, err := s.categorizer.RecategorizeAll()
	if err == nil {
		s.metrics.IncrementCounter("ledger_operations_total", map[string]string{"operation": "recategorize"})
		s.metrics.RecordProcessingTime("recategorize", time.Since(start))
	}
	return count, err
}

// OverrideCategory manually pins or clears a transaction's category
func (s *ledgerService) OverrideCategory(transactionID uuid.UUID, categoryID *uuid.UUID) error {
	return s.categorizer.OverrideCategory(transactionID, categoryID)
}

// ImportStatement imports an issuer statement
func (s *ledgerService) ImportStatement(req dto.ImportStatementRequest) (*models.CreditCardStatement, error) {
	if fields := s.validator.Validate(req); fields != nil {
		return nil, requestError(apperrors.StatementPeriodInvalid, fields)
	}
	start := time.Now()
	statement, err := s.reconciliation.ImportStatement(req)
	if err == nil {
		s.metrics.IncrementCounter("ledger_operations_total", map[string]string{"operation": "import_statement"})
		s.metrics.RecordProcessingTime("import_statement", time.Since(start))
	}
	return statement, err
}

// ApplyPayment applies a payment against a statement
func (s *ledgerService) ApplyPayment(req dto.ApplyPaymentRequest) (*models.CreditCardStatement, error) {
	if fields := s.validator.Validate(req); fields != nil {
		return nil, requestError(apperrors.PaymentNonPositive, fields)
	}
	statement, err := s.reconciliation.ApplyPayment(req)
	if err == nil {
		s.metrics.IncrementCounter("ledger_operations_total", map[string]string{"operation": "apply_payment"})
	}
	return statement, err
}

// Summarize aggregates one month of cash flow for the selected accounts
func (s *ledgerService) Summarize(req dto.SummarizeRequest) (*models.CashFlowSummary, error) {
	if fields := s.validator.Validate(req); fields != nil {
		return nil, requestError(apperrors.AccountNotFound, fields)
	}

	for _, accountID := range req.AccountIDs {
		if _, err := s.accountRepo.GetByID(accountID); err != nil {
			if errors.Is(err, repositories.ErrAccountNotFound) {
				return nil, apperrors.NotFound(apperrors.AccountNotFound)
			}
			return nil, fmt.Errorf("failed to verify account: %w", err)
		}
	}

	start := time.Now()
	summary, err := s.aggregator.Summarize(req.AccountIDs, req.Year, req.Month)
	if err == nil {
		s.metrics.IncrementCounter("ledger_operations_total", map[string]string{"operation": "summarize"})
		s.metrics.RecordProcessingTime("summarize", time.Since(start))
	}
	return summary, err
}
