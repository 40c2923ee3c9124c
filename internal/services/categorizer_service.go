package services

import (
	"errors"
	"fmt"
	"log/slog"

	apperrors "homeledger/internal/errors"
	"homeledger/internal/models"
	"homeledger/internal/repositories"

	"github.com/google/uuid"
)

// categorizerService implements CategorizerServiceInterface
type categorizerService struct {
	ruleRepo        repositories.CategorizationRuleRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	categoryRepo    repositories.CategoryRepositoryInterface
	logger          *slog.Logger
}

// NewCategorizerService creates a categorizer service
func NewCategorizerService(
	ruleRepo repositories.CategorizationRuleRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	logger *slog.Logger,
) CategorizerServiceInterface {
	return &categorizerService{
		ruleRepo:        ruleRepo,
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		logger:          logger,
	}
}

// Categorize applies the first matching rule to the transaction. Rules must
// already be in evaluation order; the first active match wins. Transactions
// with a manual assignment are left alone. Returns true when the assignment
// changed.
func (s *categorizerService) Categorize(transaction *models.Transaction, rules []models.CategorizationRule) bool {
	if transaction.CategoryOrigin == models.CategoryOriginManual {
		return false
	}

	for i := range rules {
		rule := &rules[i]
		if !rule.Active || !rule.Matches(transaction) {
			continue
		}

		if transaction.CategoryID != nil &&
			*transaction.CategoryID == rule.TargetCategoryID &&
			transaction.CategoryOrigin == models.CategoryOriginRule {
			return false
		}
		transaction.AssignCategory(rule.TargetCategoryID, models.CategoryOriginRule)
		return true
	}

	// No rule matched: a stale rule assignment is cleared
	if transaction.CategoryID != nil {
		transaction.ClearCategory()
		return true
	}
	return false
}

// RecategorizeAll re-runs the active rule set over every transaction the
// engine owns the category of. Idempotent: a second run changes nothing.
func (s *categorizerService) RecategorizeAll() (int, error) {
	rules, err := s.ruleRepo.GetActiveOrdered()
	if err != nil {
		return 0, fmt.Errorf("failed to load categorization rules: %w", err)
	}

	transactions, err := s.transactionRepo.GetRecategorizable()
	if err != nil {
		return 0, fmt.Errorf("failed to load transactions: %w", err)
	}

	updated := 0
	for i := range transactions {
		transaction := &transactions[i]
		if !s.Categorize(transaction, rules) {
			continue
		}
		if err := s.transactionRepo.UpdateCategory(transaction.ID, transaction.CategoryID, transaction.CategoryOrigin); err != nil {
			return updated, fmt.Errorf("failed to store category for transaction %s: %w", transaction.ID, err)
		}
		updated++
	}

	s.logger.Info("recategorization finished",
		"rules", len(rules),
		"scanned", len(transactions),
		"updated", updated,
	)

	return updated, nil
}

// OverrideCategory pins a category on the transaction with manual provenance.
// A nil categoryID clears the assignment, returning it to rule ownership.
func (s *categorizerService) OverrideCategory(transactionID uuid.UUID, categoryID *uuid.UUID) error {
	if _, err := s.transactionRepo.GetByID(transactionID); err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return apperrors.NotFound(apperrors.TransactionNotFound)
		}
		return err
	}

	origin := models.CategoryOriginNone
	if categoryID != nil {
		if _, err := s.categoryRepo.GetByID(*categoryID); err != nil {
			if errors.Is(err, repositories.ErrCategoryNotFound) {
				return apperrors.NotFound(apperrors.CategoryNotFound)
			}
			return err
		}
		origin = models.CategoryOriginManual
	}

	return s.transactionRepo.UpdateCategory(transactionID, categoryID, origin)
}
