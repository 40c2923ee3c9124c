package repositories

import (
	"errors"
	"fmt"

	"homeledger/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrCategorizationRuleNotFound = errors.New("categorization rule not found")

// categorizationRuleRepository implements CategorizationRuleRepositoryInterface
type categorizationRuleRepository struct {
	db *gorm.DB
}

// NewCategorizationRuleRepository creates a new categorization rule repository
func NewCategorizationRuleRepository(db *gorm.DB) CategorizationRuleRepositoryInterface {
	return &categorizationRuleRepository{db: db}
}

// Create creates a new categorization rule
func (r *categorizationRuleRepository) Create(rule *models.CategorizationRule) error {
	if err := r.db.Create(rule).Error; err != nil {
		return fmt.Errorf("failed to create categorization rule: %w", err)
	}
	return nil
}

// GetByID retrieves a categorization rule by ID
func (r *categorizationRuleRepository) GetByID(id uuid.UUID) (*models.CategorizationRule, error) {
	var rule models.CategorizationRule
	if err := r.db.First(&rule, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategorizationRuleNotFound
		}
		return nil, fmt.Errorf("failed to get categorization rule: %w", err)
	}
	return &rule, nil
}

// GetAll retrieves all categorization rules in evaluation order
func (r *categorizationRuleRepository) GetAll() ([]models.CategorizationRule, error) {
	var rules []models.CategorizationRule
	if err := r.db.Order("priority ASC, seq ASC").Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("failed to get categorization rules: %w", err)
	}
	return rules, nil
}

// GetActiveOrdered retrieves active rules in evaluation order. Lower priority
// evaluates first, ties broken by creation order.
func (r *categorizationRuleRepository) GetActiveOrdered() ([]models.CategorizationRule, error) {
	var rules []models.CategorizationRule
	if err := r.db.Where("active = ?", true).Order("priority ASC, seq ASC").Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("failed to get active categorization rules: %w", err)
	}
	return rules, nil
}

// Update updates a categorization rule
func (r *categorizationRuleRepository) Update(rule *models.CategorizationRule) error {
	if err := r.db.Save(rule).Error; err != nil {
		return fmt.Errorf("failed to update categorization rule: %w", err)
	}
	return nil
}

// Delete removes a categorization rule
func (r *categorizationRuleRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.CategorizationRule{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete categorization rule: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCategorizationRuleNotFound
	}
	return nil
}
