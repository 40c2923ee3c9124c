package repositories

import (
	"errors"
	"fmt"
	"time"

	"homeledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{db: db}
}

// Create creates a new transaction
func (r *transactionRepository) Create(transaction *models.Transaction) error {
	if err := r.db.Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// CreateBatch creates multiple transactions in a single database transaction
func (r *transactionRepository) CreateBatch(transactions []models.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range transactions {
			if err := tx.Create(&transactions[i]).Error; err != nil {
				return fmt.Errorf("failed to create transaction batch: %w", err)
			}
		}
		return nil
	})
}

// GetByID retrieves a transaction by ID
func (r *transactionRepository) GetByID(id uuid.UUID) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.First(&transaction, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}

// GetByAccountID retrieves all transactions for an account, newest first
func (r *transactionRepository) GetByAccountID(accountID uuid.UUID) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Where("account_id = ?", accountID).
		Order("date DESC, created_at DESC").Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions for account: %w", err)
	}
	return transactions, nil
}

// GetByAccountsAndDateRange retrieves transactions across the given accounts
// dated within [startDate, endDate], with category preloaded for reporting
func (r *transactionRepository) GetByAccountsAndDateRange(accountIDs []uuid.UUID, startDate, endDate time.Time) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Preload("Category").
		Where("account_id IN ? AND date >= ? AND date <= ?", accountIDs, models.DateOnly(startDate), models.DateOnly(endDate)).
		Order("date ASC, created_at ASC").Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions by date range: %w", err)
	}
	return transactions, nil
}

// GetLatestByRuleID returns the most recently dated transaction emitted from
// the rule, or nil when the rule has never emitted. Used to re-derive the
// scheduler watermark after a crash between emission and watermark update.
func (r *transactionRepository) GetLatestByRuleID(ruleID uuid.UUID) (*models.Transaction, error) {
	var transaction models.Transaction
	err := r.db.Where("source_rule_id = ?", ruleID).
		Order("date DESC").First(&transaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest rule transaction: %w", err)
	}
	return &transaction, nil
}

// GetRecategorizable returns transactions whose category may be rewritten by
// the rule engine: uncategorized ones and those whose category came from a
// rule. Manual assignments are excluded.
func (r *transactionRepository) GetRecategorizable() ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Where("category_origin IN ?", []string{models.CategoryOriginNone, models.CategoryOriginRule}).
		Order("date ASC, created_at ASC").Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get recategorizable transactions: %w", err)
	}
	return transactions, nil
}

// FindUnclaimedMatch finds the oldest transaction on the account with the
// exact date and amount that is not yet linked to any statement. IDs in the
// excluded set are skipped so one import can match several identical lines
// to distinct transactions.
func (r *transactionRepository) FindUnclaimedMatch(accountID uuid.UUID, date time.Time, amount decimal.Decimal, excluded []uuid.UUID) (*models.Transaction, error) {
	query := r.db.Where("account_id = ? AND date = ? AND amount = ? AND statement_id IS NULL",
		accountID, models.DateOnly(date), amount)
	if len(excluded) > 0 {
		query = query.Where("id NOT IN ?", excluded)
	}

	var transaction models.Transaction
	err := query.Order("created_at ASC").First(&transaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find matching transaction: %w", err)
	}
	return &transaction, nil
}

// Update updates a transaction
func (r *transactionRepository) Update(transaction *models.Transaction) error {
	if err := r.db.Save(transaction).Error; err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return nil
}

// UpdateCategory sets the category assignment and its provenance
func (r *transactionRepository) UpdateCategory(id uuid.UUID, categoryID *uuid.UUID, origin string) error {
	result := r.db.Model(&models.Transaction{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"category_id":     categoryID,
			"category_origin": origin,
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update transaction category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// Delete removes a transaction. Removal is always an explicit user action;
// the engine never deletes transactions on its own.
func (r *transactionRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Transaction{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}
