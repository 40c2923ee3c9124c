package repositories

import (
	"errors"
	"fmt"

	"homeledger/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBudgetNotFound = errors.New("budget not found")
	ErrBudgetExists   = errors.New("budget already set for this category and month")
)

// budgetRepository implements BudgetRepositoryInterface
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository
func NewBudgetRepository(db *gorm.DB) BudgetRepositoryInterface {
	return &budgetRepository{db: db}
}

// Create creates a new budget. One budget per category per month.
func (r *budgetRepository) Create(budget *models.Budget) error {
	var count int64
	if err := r.db.Model(&models.Budget{}).
		Where("category_id = ? AND year = ? AND month = ?", budget.CategoryID, budget.Year, budget.Month).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check existing budget: %w", err)
	}
	if count > 0 {
		return ErrBudgetExists
	}

	if err := r.db.Create(budget).Error; err != nil {
		return fmt.Errorf("failed to create budget: %w", err)
	}
	return nil
}

// GetByID retrieves a budget by ID
func (r *budgetRepository) GetByID(id uuid.UUID) (*models.Budget, error) {
	var budget models.Budget
	if err := r.db.First(&budget, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return &budget, nil
}

// GetForMonth retrieves the active budgets for one calendar month
func (r *budgetRepository) GetForMonth(year, month int) ([]models.Budget, error) {
	var budgets []models.Budget
	if err := r.db.Where("year = ? AND month = ? AND active = ?", year, month, true).
		Find(&budgets).Error; err != nil {
		return nil, fmt.Errorf("failed to get budgets for month: %w", err)
	}
	return budgets, nil
}

// Update updates a budget
func (r *budgetRepository) Update(budget *models.Budget) error {
	if err := r.db.Save(budget).Error; err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}
	return nil
}

// Delete removes a budget
func (r *budgetRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Budget{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete budget: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBudgetNotFound
	}
	return nil
}
