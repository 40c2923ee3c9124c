package repositories

import (
	"errors"
	"fmt"

	"homeledger/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrRuleNotFound = errors.New("recurring rule not found")

// recurringRuleRepository implements RecurringRuleRepositoryInterface
type recurringRuleRepository struct {
	db *gorm.DB
}

// NewRecurringRuleRepository creates a new recurring rule repository
func NewRecurringRuleRepository(db *gorm.DB) RecurringRuleRepositoryInterface {
	return &recurringRuleRepository{db: db}
}

// Create creates a new recurring rule
func (r *recurringRuleRepository) Create(rule *models.RecurringRule) error {
	if err := r.db.Create(rule).Error; err != nil {
		return fmt.Errorf("failed to create recurring rule: %w", err)
	}
	return nil
}

// GetByID retrieves a recurring rule by ID
func (r *recurringRuleRepository) GetByID(id uuid.UUID) (*models.RecurringRule, error) {
	var rule models.RecurringRule
	if err := r.db.First(&rule, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRuleNotFound
		}
		return nil, fmt.Errorf("failed to get recurring rule: %w", err)
	}
	return &rule, nil
}

// GetAll retrieves all recurring rules
func (r *recurringRuleRepository) GetAll() ([]models.RecurringRule, error) {
	var rules []models.RecurringRule
	if err := r.db.Order("created_at ASC").Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("failed to get recurring rules: %w", err)
	}
	return rules, nil
}

// GetActive retrieves rules still eligible for materialization
func (r *recurringRuleRepository) GetActive() ([]models.RecurringRule, error) {
	var rules []models.RecurringRule
	if err := r.db.Where("active = ?", true).Order("created_at ASC").Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("failed to get active recurring rules: %w", err)
	}
	return rules, nil
}

// Update updates a recurring rule
func (r *recurringRuleRepository) Update(rule *models.RecurringRule) error {
	if err := r.db.Save(rule).Error; err != nil {
		return fmt.Errorf("failed to update recurring rule: %w", err)
	}
	return nil
}

// Delete removes a recurring rule. Emitted transactions are kept and retain
// their rule reference as provenance.
func (r *recurringRuleRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.RecurringRule{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete recurring rule: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRuleNotFound
	}
	return nil
}

// SaveMaterialization persists a batch of emitted transactions together with
// the advanced rule watermark. Either everything lands or nothing does, so a
// crash can never leave emitted transactions ahead of the watermark.
func (r *recurringRuleRepository) SaveMaterialization(rule *models.RecurringRule, transactions []models.Transaction) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range transactions {
			if err := tx.Create(&transactions[i]).Error; err != nil {
				return fmt.Errorf("failed to create materialized transaction: %w", err)
			}
		}
		if err := tx.Save(rule).Error; err != nil {
			return fmt.Errorf("failed to advance rule watermark: %w", err)
		}
		return nil
	})
}
