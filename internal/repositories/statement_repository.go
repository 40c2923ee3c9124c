package repositories

import (
	"errors"
	"fmt"
	"time"

	"homeledger/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrStatementNotFound = errors.New("statement not found")

// statementRepository implements StatementRepositoryInterface
type statementRepository struct {
	db *gorm.DB
}

// NewStatementRepository creates a new statement repository
func NewStatementRepository(db *gorm.DB) StatementRepositoryInterface {
	return &statementRepository{db: db}
}

// GetByID retrieves a statement by ID with its line items and payments
func (r *statementRepository) GetByID(id uuid.UUID) (*models.CreditCardStatement, error) {
	var statement models.CreditCardStatement
	if err := r.db.Preload("LineItems").Preload("Payments").First(&statement, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStatementNotFound
		}
		return nil, fmt.Errorf("failed to get statement: %w", err)
	}
	return &statement, nil
}

// GetByAccountID retrieves all statements for an account, newest period first
func (r *statementRepository) GetByAccountID(accountID uuid.UUID) ([]models.CreditCardStatement, error) {
	var statements []models.CreditCardStatement
	if err := r.db.Where("account_id = ?", accountID).
		Order("period_start DESC").
		Find(&statements).Error; err != nil {
		return nil, fmt.Errorf("failed to get account statements: %w", err)
	}
	return statements, nil
}

// GetOverlapping retrieves statements whose period intersects [start, end]
func (r *statementRepository) GetOverlapping(accountID uuid.UUID, start, end time.Time) ([]models.CreditCardStatement, error) {
	var statements []models.CreditCardStatement
	if err := r.db.Where("account_id = ? AND period_start <= ? AND period_end >= ?", accountID, end, start).
		Find(&statements).Error; err != nil {
		return nil, fmt.Errorf("failed to get overlapping statements: %w", err)
	}
	return statements, nil
}

// GetLatestBefore retrieves the most recent statement whose period ended
// before the given period start, or nil when the account has none.
func (r *statementRepository) GetLatestBefore(accountID uuid.UUID, periodStart time.Time) (*models.CreditCardStatement, error) {
	var statement models.CreditCardStatement
	err := r.db.Where("account_id = ? AND period_end < ?", accountID, periodStart).
		Order("period_end DESC").
		First(&statement).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get preceding statement: %w", err)
	}
	return &statement, nil
}

// Import persists a statement, its emitted transactions, line items, and the
// claim marks on matched existing transactions in a single transaction.
func (r *statementRepository) Import(statement *models.CreditCardStatement, lines []StatementImportLine) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(statement).Error; err != nil {
			return fmt.Errorf("failed to create statement: %w", err)
		}

		for i := range lines {
			line := &lines[i]
			item := line.Item
			item.StatementID = statement.ID

			switch {
			case line.MatchedTransactionID != nil:
				matchedID := *line.MatchedTransactionID
				result := tx.Model(&models.Transaction{}).
					Where("id = ? AND statement_id IS NULL", matchedID).
					Update("statement_id", statement.ID)
				if result.Error != nil {
					return fmt.Errorf("failed to claim matched transaction: %w", result.Error)
				}
				if result.RowsAffected == 0 {
					return fmt.Errorf("matched transaction %s already claimed", matchedID)
				}
				item.TransactionID = &matchedID
			case line.NewTransaction != nil:
				line.NewTransaction.StatementID = &statement.ID
				if err := tx.Create(line.NewTransaction).Error; err != nil {
					return fmt.Errorf("failed to create statement transaction: %w", err)
				}
				item.TransactionID = &line.NewTransaction.ID
			}

			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to create statement line item: %w", err)
			}
		}

		return nil
	})
}

// ApplyPayment persists a payment together with the statement's updated paid
// accumulator. When markPaid is set, every transaction linked to the
// statement gets its paid flag raised in the same transaction.
func (r *statementRepository) ApplyPayment(statement *models.CreditCardStatement, payment *models.Payment, markPaid bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		statement.PaidAmount = statement.PaidAmount.Add(payment.Amount)
		if err := tx.Save(statement).Error; err != nil {
			return fmt.Errorf("failed to update statement: %w", err)
		}

		if markPaid {
			if err := tx.Model(&models.Transaction{}).
				Where("statement_id = ?", statement.ID).
				Update("paid", true).Error; err != nil {
				return fmt.Errorf("failed to mark statement transactions paid: %w", err)
			}
		}
		return nil
	})
}

// Update updates a statement
func (r *statementRepository) Update(statement *models.CreditCardStatement) error {
	if err := r.db.Save(statement).Error; err != nil {
		return fmt.Errorf("failed to update statement: %w", err)
	}
	return nil
}
