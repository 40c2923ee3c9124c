package repositories

import (
	"testing"
	"time"

	"homeledger/internal/database"
	"homeledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// BudgetRepositorySuite defines the test suite for BudgetRepository
type BudgetRepositorySuite struct {
	suite.Suite
	db           *database.DB
	repo         BudgetRepositoryInterface
	testCategory *models.Category
}

// SetupTest runs before each test in the suite
func (s *BudgetRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewBudgetRepository(s.db.DB)
	s.testCategory = database.CreateTestCategory(s.T(), s.db, "Groceries", models.CategoryKindExpense)
}

// TearDownTest runs after each test in the suite
func (s *BudgetRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestBudgetRepositorySuite runs the test suite
func TestBudgetRepositorySuite(t *testing.T) {
	suite.Run(t, new(BudgetRepositorySuite))
}

func (s *BudgetRepositorySuite) createBudget(category *models.Category, year int, month time.Month, amount float64) *models.Budget {
	budget := &models.Budget{
		CategoryID: category.ID,
		Year:       year,
		Month:      int(month),
		Amount:     decimal.NewFromFloat(amount),
		Active:     true,
	}
	s.Require().NoError(s.repo.Create(budget))
	return budget
}

func (s *BudgetRepositorySuite) TestCreate() {
	budget := s.createBudget(s.testCategory, 2026, time.March, 500.00)

	s.NotEqual(uuid.Nil, budget.ID)

	found, err := s.repo.GetByID(budget.ID)
	s.NoError(err)
	s.Equal(s.testCategory.ID, found.CategoryID)
	s.Equal(2026, found.Year)
	s.Equal(3, found.Month)
	s.True(found.Amount.Equal(decimal.NewFromFloat(500.00)))
}

func (s *BudgetRepositorySuite) TestCreate_DuplicateCategoryMonth() {
	s.createBudget(s.testCategory, 2026, time.March, 500.00)

	duplicate := &models.Budget{
		CategoryID: s.testCategory.ID,
		Year:       2026,
		Month:      3,
		Amount:     decimal.NewFromFloat(300.00),
		Active:     true,
	}
	s.ErrorIs(s.repo.Create(duplicate), ErrBudgetExists)
}

func (s *BudgetRepositorySuite) TestCreate_RejectsInvalidBudget() {
	zero := &models.Budget{
		CategoryID: s.testCategory.ID,
		Year:       2026,
		Month:      3,
		Amount:     decimal.Zero,
	}
	s.ErrorIs(s.repo.Create(zero), models.ErrNonPositiveBudget)

	badMonth := &models.Budget{
		CategoryID: s.testCategory.ID,
		Year:       2026,
		Month:      13,
		Amount:     decimal.NewFromFloat(100.00),
	}
	s.ErrorIs(s.repo.Create(badMonth), models.ErrInvalidBudgetMonth)
}

func (s *BudgetRepositorySuite) TestGetForMonth() {
	dining := database.CreateTestCategory(s.T(), s.db, "Dining", models.CategoryKindExpense)
	march := s.createBudget(s.testCategory, 2026, time.March, 500.00)
	s.createBudget(s.testCategory, 2026, time.April, 999.00)

	paused := s.createBudget(dining, 2026, time.March, 200.00)
	paused.Active = false
	s.Require().NoError(s.repo.Update(paused))

	budgets, err := s.repo.GetForMonth(2026, 3)
	s.NoError(err)
	s.Require().Len(budgets, 1)
	s.Equal(march.ID, budgets[0].ID)
}

func (s *BudgetRepositorySuite) TestGetByID_NotFound() {
	_, err := s.repo.GetByID(uuid.New())
	s.ErrorIs(err, ErrBudgetNotFound)
}

func (s *BudgetRepositorySuite) TestDelete() {
	budget := s.createBudget(s.testCategory, 2026, time.March, 500.00)

	s.NoError(s.repo.Delete(budget.ID))
	_, err := s.repo.GetByID(budget.ID)
	s.ErrorIs(err, ErrBudgetNotFound)

	s.ErrorIs(s.repo.Delete(budget.ID), ErrBudgetNotFound)
}
