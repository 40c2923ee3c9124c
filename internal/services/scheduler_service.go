package services

import (
	"fmt"
	"log/slog"
	"time"

	"homeledger/internal/models"
	"homeledger/internal/repositories"
)

// schedulerService implements SchedulerServiceInterface
type schedulerService struct {
	ruleRepo        repositories.RecurringRuleRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	logger          *slog.Logger
}

// NewSchedulerService creates a scheduler service
func NewSchedulerService(
	ruleRepo repositories.RecurringRuleRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	logger *slog.Logger,
) SchedulerServiceInterface {
	return &schedulerService{
		ruleRepo:        ruleRepo,
		transactionRepo: transactionRepo,
		logger:          logger,
	}
}

// Materialize emits every pending occurrence of the rule up to asOf. The
// effective watermark is the later of the stored watermark and the latest
// transaction already emitted for the rule, so a re-run after a crash never
// duplicates an occurrence.
func (s *schedulerService) Materialize(rule *models.RecurringRule, asOf time.Time) (int, error) {
	if !rule.Active {
		return 0, nil
	}

	watermark, err := s.effectiveWatermark(rule)
	if err != nil {
		return 0, err
	}

	asOf = models.DateOnly(asOf)

	var emitted []models.Transaction
	n := rule.Occurrences
	deactivate := false

	for {
		date := rule.OccurrenceDate(n)
		if date.After(asOf) {
			break
		}
		if rule.EndReached(date, n+1) {
			deactivate = true
			break
		}

		n++
		if watermark != nil && !date.After(*watermark) {
			// Already emitted on a previous run
			continue
		}

		transaction := models.Transaction{
			AccountID:    rule.AccountID,
			Date:         date,
			Amount:       rule.Amount,
			Payee:        rule.Payee,
			Source:       models.TransactionSourceRecurring,
			SourceRuleID: &rule.ID,
			Note:         rule.Note,
		}
		if rule.CategoryID != nil {
			transaction.AssignCategory(*rule.CategoryID, models.CategoryOriginRule)
		}
		emitted = append(emitted, transaction)
	}

	// An occurrence limit hit exactly at the last emission also retires the
	// rule
	if rule.MaxOccurrences != nil && n >= *rule.MaxOccurrences {
		deactivate = true
	}

	if len(emitted) == 0 && !deactivate && n == rule.Occurrences {
		return 0, nil
	}

	rule.Occurrences = n
	if deactivate {
		rule.Active = false
	}
	if len(emitted) > 0 {
		last := emitted[len(emitted)-1].Date
		rule.LastMaterialized = &last
	} else if watermark != nil && (rule.LastMaterialized == nil || watermark.After(*rule.LastMaterialized)) {
		rule.LastMaterialized = watermark
	}

	if err := s.ruleRepo.SaveMaterialization(rule, emitted); err != nil {
		return 0, fmt.Errorf("failed to save materialization: %w", err)
	}

	s.logger.Info("materialized recurring rule",
		"rule_id", rule.ID,
		"payee", rule.Payee,
		"emitted", len(emitted),
		"active", rule.Active,
	)

	return len(emitted), nil
}

// MaterializeDueRules materializes every active rule. A failing rule does not
// stop the others; the last failure is returned.
func (s *schedulerService) MaterializeDueRules(asOf time.Time) (int, error) {
	rules, err := s.ruleRepo.GetActive()
	if err != nil {
		return 0, fmt.Errorf("failed to load active rules: %w", err)
	}

	total := 0
	var lastErr error
	for i := range rules {
		count, err := s.Materialize(&rules[i], asOf)
		if err != nil {
			s.logger.Error("failed to materialize rule", "error", err, "rule_id", rules[i].ID)
			lastErr = err
			continue
		}
		total += count
	}

	return total, lastErr
}

// effectiveWatermark returns the later of the rule's stored watermark and the
// latest emitted transaction date.
func (s *schedulerService) effectiveWatermark(rule *models.RecurringRule) (*time.Time, error) {
	watermark := rule.LastMaterialized

	latest, err := s.transactionRepo.GetLatestByRuleID(rule.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to derive watermark: %w", err)
	}
	if latest != nil && (watermark == nil || latest.Date.After(*watermark)) {
		watermark = &latest.Date
	}

	return watermark, nil
}
