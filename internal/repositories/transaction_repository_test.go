package repositories

import (
	"testing"
	"time"

	"homeledger/internal/database"
	"homeledger/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// TransactionRepositorySuite defines the test suite for TransactionRepository
type TransactionRepositorySuite struct {
	suite.Suite
	db          *database.DB
	repo        TransactionRepositoryInterface
	testAccount *models.Account
}

// SetupTest runs before each test in the suite
func (s *TransactionRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewTransactionRepository(s.db.DB)
	s.testAccount = database.CreateTestAccount(s.T(), s.db, "Checking", models.AccountKindChecking)
}

// TearDownTest runs after each test in the suite
func (s *TransactionRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestTransactionRepositorySuite runs the test suite
func TestTransactionRepositorySuite(t *testing.T) {
	suite.Run(t, new(TransactionRepositorySuite))
}

func (s *TransactionRepositorySuite) TestCreate() {
	tx := &models.Transaction{
		AccountID: s.testAccount.ID,
		Date:      time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Amount:    decimal.NewFromFloat(-42.50),
		Payee:     gofakeit.Company(),
	}

	err := s.repo.Create(tx)
	s.NoError(err)
	s.NotEqual(uuid.Nil, tx.ID)
	s.Equal(models.TransactionSourceManual, tx.Source)
	s.Equal(models.CategoryOriginNone, tx.CategoryOrigin)
}

func (s *TransactionRepositorySuite) TestCreate_ZeroAmount() {
	tx := &models.Transaction{
		AccountID: s.testAccount.ID,
		Date:      time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Amount:    decimal.Zero,
		Payee:     "Nothing",
	}

	err := s.repo.Create(tx)
	s.ErrorIs(err, models.ErrZeroAmount)
}

func (s *TransactionRepositorySuite) TestGetByID_NotFound() {
	_, err := s.repo.GetByID(uuid.New())
	s.ErrorIs(err, ErrTransactionNotFound)
}

func (s *TransactionRepositorySuite) TestGetByAccountsAndDateRange() {
	dates := []time.Time{
		time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		database.CreateTestTransaction(s.T(), s.db, s.testAccount, d, -10.00, gofakeit.Company())
	}

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	found, err := s.repo.GetByAccountsAndDateRange([]uuid.UUID{s.testAccount.ID}, start, end)
	s.NoError(err)
	s.Len(found, 2)
	s.True(found[0].Date.Before(found[1].Date))
}

func (s *TransactionRepositorySuite) TestGetLatestByRuleID() {
	ruleID := uuid.New()

	// No emissions yet: nil without error
	latest, err := s.repo.GetLatestByRuleID(ruleID)
	s.NoError(err)
	s.Nil(latest)

	for _, d := range []time.Time{
		time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
	} {
		tx := &models.Transaction{
			AccountID:    s.testAccount.ID,
			Date:         d,
			Amount:       decimal.NewFromFloat(-15.00),
			Payee:        "Streaming",
			Source:       models.TransactionSourceRecurring,
			SourceRuleID: &ruleID,
		}
		s.NoError(s.repo.Create(tx))
	}

	latest, err = s.repo.GetLatestByRuleID(ruleID)
	s.NoError(err)
	s.NotNil(latest)
	s.True(models.SameDay(latest.Date, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)))
}

func (s *TransactionRepositorySuite) TestGetRecategorizable_ExcludesManual() {
	category := database.CreateTestCategory(s.T(), s.db, "Dining", models.CategoryKindExpense)

	uncategorized := database.CreateTestTransaction(s.T(), s.db, s.testAccount,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), -10.00, "Coffee Shop")

	ruleTagged := database.CreateTestTransaction(s.T(), s.db, s.testAccount,
		time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), -20.00, "Restaurant")
	s.NoError(s.repo.UpdateCategory(ruleTagged.ID, &category.ID, models.CategoryOriginRule))

	manual := database.CreateTestTransaction(s.T(), s.db, s.testAccount,
		time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), -30.00, "Takeout")
	s.NoError(s.repo.UpdateCategory(manual.ID, &category.ID, models.CategoryOriginManual))

	found, err := s.repo.GetRecategorizable()
	s.NoError(err)
	s.Len(found, 2)
	ids := []uuid.UUID{found[0].ID, found[1].ID}
	s.Contains(ids, uncategorized.ID)
	s.Contains(ids, ruleTagged.ID)
}

func (s *TransactionRepositorySuite) TestFindUnclaimedMatch() {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	amount := decimal.NewFromFloat(-55.25)

	tx := &models.Transaction{
		AccountID: s.testAccount.ID,
		Date:      date,
		Amount:    amount,
		Payee:     "Hardware Store",
	}
	s.NoError(s.repo.Create(tx))

	match, err := s.repo.FindUnclaimedMatch(s.testAccount.ID, date, amount, nil)
	s.NoError(err)
	s.NotNil(match)
	s.Equal(tx.ID, match.ID)

	// Excluded transactions are skipped
	match, err = s.repo.FindUnclaimedMatch(s.testAccount.ID, date, amount, []uuid.UUID{tx.ID})
	s.NoError(err)
	s.Nil(match)

	// Claimed transactions never match again
	statementID := uuid.New()
	tx.StatementID = &statementID
	s.NoError(s.repo.Update(tx))

	match, err = s.repo.FindUnclaimedMatch(s.testAccount.ID, date, amount, nil)
	s.NoError(err)
	s.Nil(match)
}

func (s *TransactionRepositorySuite) TestFindUnclaimedMatch_DifferentAmount() {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	database.CreateTestTransaction(s.T(), s.db, s.testAccount, date, -55.25, "Hardware Store")

	match, err := s.repo.FindUnclaimedMatch(s.testAccount.ID, date, decimal.NewFromFloat(-55.26), nil)
	s.NoError(err)
	s.Nil(match)
}

func (s *TransactionRepositorySuite) TestUpdateCategory() {
	category := database.CreateTestCategory(s.T(), s.db, "Groceries", models.CategoryKindExpense)
	tx := database.CreateTestTransaction(s.T(), s.db, s.testAccount,
		time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), -80.00, "Supermarket")

	err := s.repo.UpdateCategory(tx.ID, &category.ID, models.CategoryOriginRule)
	s.NoError(err)

	found, err := s.repo.GetByID(tx.ID)
	s.NoError(err)
	s.NotNil(found.CategoryID)
	s.Equal(category.ID, *found.CategoryID)
	s.Equal(models.CategoryOriginRule, found.CategoryOrigin)

	// Clearing the assignment resets provenance
	err = s.repo.UpdateCategory(tx.ID, nil, models.CategoryOriginNone)
	s.NoError(err)

	found, err = s.repo.GetByID(tx.ID)
	s.NoError(err)
	s.Nil(found.CategoryID)
	s.Equal(models.CategoryOriginNone, found.CategoryOrigin)
}

func (s *TransactionRepositorySuite) TestUpdateCategory_NotFound() {
	err := s.repo.UpdateCategory(uuid.New(), nil, models.CategoryOriginNone)
	s.ErrorIs(err, ErrTransactionNotFound)
}

func (s *TransactionRepositorySuite) TestDelete() {
	tx := database.CreateTestTransaction(s.T(), s.db, s.testAccount,
		time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), -80.00, "Supermarket")

	s.NoError(s.repo.Delete(tx.ID))

	_, err := s.repo.GetByID(tx.ID)
	s.ErrorIs(err, ErrTransactionNotFound)

	s.ErrorIs(s.repo.Delete(tx.ID), ErrTransactionNotFound)
}
