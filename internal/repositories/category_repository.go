package repositories

import (
	"errors"
	"fmt"

	"homeledger/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category is referenced by existing transactions or rules")
)

// categoryRepository implements CategoryRepositoryInterface
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepositoryInterface {
	return &categoryRepository{db: db}
}

// Create creates a new category
func (r *categoryRepository) Create(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetByID retrieves a category by ID
func (r *categoryRepository) GetByID(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

// GetAll retrieves all categories ordered by kind and name
func (r *categoryRepository) GetAll() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("kind ASC, name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// GetByIDs retrieves the given categories keyed by ID
func (r *categoryRepository) GetByIDs(ids []uuid.UUID) (map[uuid.UUID]models.Category, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]models.Category{}, nil
	}

	var categories []models.Category
	if err := r.db.Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get categories by ids: %w", err)
	}

	byID := make(map[uuid.UUID]models.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	return byID, nil
}

// Update updates a category
func (r *categoryRepository) Update(category *models.Category) error {
	if err := r.db.Save(category).Error; err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

// Delete removes a category, refusing when transactions or rules still
// reference it
func (r *categoryRepository) Delete(id uuid.UUID) error {
	var count int64
	if err := r.db.Model(&models.Transaction{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count category transactions: %w", err)
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	if err := r.db.Model(&models.CategorizationRule{}).Where("target_category_id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count category rules: %w", err)
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	result := r.db.Delete(&models.Category{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// SeedDefaults creates the default category set for a fresh store. Already
// seeded stores are left untouched.
func (r *categoryRepository) SeedDefaults() error {
	var count int64
	if err := r.db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, name := range models.DefaultIncomeCategories {
			category := models.Category{Name: name, Kind: models.CategoryKindIncome, Active: true}
			if err := tx.Create(&category).Error; err != nil {
				return fmt.Errorf("failed to seed income category %q: %w", name, err)
			}
		}
		for _, name := range models.DefaultExpenseCategories {
			category := models.Category{Name: name, Kind: models.CategoryKindExpense, Active: true}
			if err := tx.Create(&category).Error; err != nil {
				return fmt.Errorf("failed to seed expense category %q: %w", name, err)
			}
		}
		return nil
	})
}
