package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"homeledger/internal/config"
	"homeledger/internal/dto"
	apperrors "homeledger/internal/errors"
	"homeledger/internal/models"
	"homeledger/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const interestPayee = "Interest Charge"

// reconciliationService implements ReconciliationServiceInterface
type reconciliationService struct {
	statementRepo   repositories.StatementRepositoryInterface
	accountRepo     repositories.AccountRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	engineConfig    config.EngineConfig
	logger          *slog.Logger
}

// NewReconciliationService creates a reconciliation service
func NewReconciliationService(
	statementRepo repositories.StatementRepositoryInterface,
	accountRepo repositories.AccountRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	engineConfig config.EngineConfig,
	logger *slog.Logger,
) ReconciliationServiceInterface {
	return &reconciliationService{
		statementRepo:   statementRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		engineConfig:    engineConfig,
		logger:          logger,
	}
}

// ImportStatement records an issuer statement against a credit-card account.
// Each line is matched to an existing unclaimed transaction with the same
// date and amount; unmatched lines become new transactions. A credit left on
// the preceding statement is pulled forward so it reduces what this statement
// still owes.
func (s *reconciliationService) ImportStatement(req dto.ImportStatementRequest) (*models.CreditCardStatement, error) {
	account, err := s.accountRepo.GetByID(req.AccountID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, apperrors.NotFound(apperrors.AccountNotFound)
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if !account.IsCreditCard() {
		return nil, apperrors.Validation(apperrors.AccountNotCreditCard)
	}

	periodStart := models.DateOnly(req.PeriodStart)
	periodEnd := models.DateOnly(req.PeriodEnd)
	if periodStart.After(periodEnd) {
		return nil, apperrors.Validation(apperrors.StatementPeriodInvalid)
	}

	overlapping, err := s.statementRepo.GetOverlapping(account.ID, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to check statement overlap: %w", err)
	}
	if len(overlapping) > 0 {
		return nil, apperrors.Validation(apperrors.StatementPeriodOverlap)
	}

	statement := &models.CreditCardStatement{
		AccountID:      account.ID,
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		ClosingBalance: req.ClosingBalance,
		MinimumDue: models.DefaultMinimumDue(req.ClosingBalance,
			s.engineConfig.MinimumDuePercent, s.engineConfig.MinimumDueFloor),
		DueDate: periodEnd.AddDate(0, 0, s.engineConfig.PaymentDueDays),
		Note:    req.Note,
	}

	previous, err := s.statementRepo.GetLatestBefore(account.ID, periodStart)
	if err != nil {
		return nil, fmt.Errorf("failed to load preceding statement: %w", err)
	}
	if previous != nil && previous.Outstanding().IsNegative() {
		statement.CarriedCredit = previous.Outstanding().Neg()
	}

	var lines []repositories.StatementImportLine
	var matchedIDs []uuid.UUID

	for _, line := range req.Lines {
		lineDate := models.DateOnly(line.Date)
		if !statement.ContainsDate(lineDate) {
			return nil, apperrors.Validationf(apperrors.StatementPeriodInvalid,
				"statement line dated %s falls outside the period", lineDate.Format("2006-01-02"))
		}

		item := models.StatementLineItem{
			Date:        lineDate,
			Amount:      line.Amount,
			Description: line.Description,
		}

		match, err := s.transactionRepo.FindUnclaimedMatch(account.ID, lineDate, line.Amount, matchedIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to find matching transaction: %w", err)
		}
		if match != nil {
			matchedIDs = append(matchedIDs, match.ID)
			matchedID := match.ID
			lines = append(lines, repositories.StatementImportLine{
				Item:                 item,
				MatchedTransactionID: &matchedID,
			})
			continue
		}

		lines = append(lines, repositories.StatementImportLine{
			Item: item,
			NewTransaction: &models.Transaction{
				AccountID: account.ID,
				Date:      lineDate,
				Amount:    line.Amount,
				Payee:     line.Description,
				Source:    models.TransactionSourceImport,
			},
		})
	}

	if err := s.statementRepo.Import(statement, lines); err != nil {
		return nil, fmt.Errorf("failed to import statement: %w", err)
	}

	s.logger.Info("imported statement",
		"statement_id", statement.ID,
		"account_id", account.ID,
		"period_end", periodEnd.Format("2006-01-02"),
		"matched", len(matchedIDs),
		"created", len(lines)-len(matchedIDs),
	)

	return statement, nil
}

// ApplyPayment applies a payment against a statement's outstanding balance.
// When the payment settles the statement, every linked transaction is marked
// paid in the same database transaction.
func (s *reconciliationService) ApplyPayment(req dto.ApplyPaymentRequest) (*models.CreditCardStatement, error) {
	statement, err := s.statementRepo.GetByID(req.StatementID)
	if err != nil {
		if errors.Is(err, repositories.ErrStatementNotFound) {
			return nil, apperrors.NotFound(apperrors.StatementNotFound)
		}
		return nil, fmt.Errorf("failed to load statement: %w", err)
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.Validation(apperrors.PaymentNonPositive)
	}

	paymentDate := models.DateOnly(req.Date)
	if paymentDate.Before(statement.PeriodStart) {
		return nil, apperrors.Validation(apperrors.PaymentBeforeStart)
	}

	payment := &models.Payment{
		StatementID: statement.ID,
		Date:        paymentDate,
		Amount:      req.Amount,
		Note:        req.Note,
	}

	settles := statement.Outstanding().Sub(req.Amount).LessThanOrEqual(decimal.Zero)
	if err := s.statementRepo.ApplyPayment(statement, payment, settles); err != nil {
		return nil, fmt.Errorf("failed to apply payment: %w", err)
	}

	s.logger.Info("applied payment",
		"statement_id", statement.ID,
		"amount", req.Amount.String(),
		"outstanding", statement.Outstanding().String(),
		"settled", settles,
	)

	return statement, nil
}

// AccrueInterest posts a monthly interest charge to every credit-card account
// with an APR that carries an owed balance as of the given date. The charge
// is APR/12 of the owed balance. Accounts already charged for the month are
// skipped, so the operation is safe to re-run.
func (s *reconciliationService) AccrueInterest(asOf time.Time) (int, error) {
	cards, err := s.accountRepo.GetByKind(models.AccountKindCreditCard)
	if err != nil {
		return 0, fmt.Errorf("failed to load credit-card accounts: %w", err)
	}

	asOf = models.DateOnly(asOf)
	monthStart, monthEnd := models.MonthBounds(asOf.Year(), asOf.Month())

	posted := 0
	for i := range cards {
		card := &cards[i]
		if !card.APR.IsPositive() {
			continue
		}

		transactions, err := s.transactionRepo.GetByAccountID(card.ID)
		if err != nil {
			return posted, fmt.Errorf("failed to load transactions for account %s: %w", card.ID, err)
		}

		balance := card.OpeningBalance
		alreadyCharged := false
		for j := range transactions {
			t := &transactions[j]
			if t.Date.After(asOf) {
				continue
			}
			balance = balance.Add(t.Amount)
			if t.Source == models.TransactionSourceInterest && !t.Date.Before(monthStart) && !t.Date.After(monthEnd) {
				alreadyCharged = true
			}
		}

		owed := balance.Neg()
		if alreadyCharged || !owed.IsPositive() {
			continue
		}

		interest := owed.Mul(card.APR).
			Div(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(12)).
			Round(2)
		if interest.IsZero() {
			continue
		}

		charge := &models.Transaction{
			AccountID: card.ID,
			Date:      asOf,
			Amount:    interest.Neg(),
			Payee:     interestPayee,
			Source:    models.TransactionSourceInterest,
		}
		if err := s.transactionRepo.Create(charge); err != nil {
			return posted, fmt.Errorf("failed to post interest charge: %w", err)
		}

		s.logger.Info("accrued interest",
			"account_id", card.ID,
			"owed", owed.String(),
			"interest", interest.String(),
		)
		posted++
	}

	return posted, nil
}
