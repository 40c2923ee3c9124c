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

// StatementRepositorySuite defines the test suite for StatementRepository
type StatementRepositorySuite struct {
	suite.Suite
	db       *database.DB
	repo     StatementRepositoryInterface
	testCard *models.Account
}

// SetupTest runs before each test in the suite
func (s *StatementRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewStatementRepository(s.db.DB)
	s.testCard = database.CreateTestAccount(s.T(), s.db, "Visa", models.AccountKindCreditCard)
}

// TearDownTest runs after each test in the suite
func (s *StatementRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestStatementRepositorySuite runs the test suite
func TestStatementRepositorySuite(t *testing.T) {
	suite.Run(t, new(StatementRepositorySuite))
}

func (s *StatementRepositorySuite) newStatement(start, end time.Time, closing float64) *models.CreditCardStatement {
	return &models.CreditCardStatement{
		AccountID:      s.testCard.ID,
		PeriodStart:    start,
		PeriodEnd:      end,
		ClosingBalance: decimal.NewFromFloat(closing),
		DueDate:        end.AddDate(0, 0, 25),
	}
}

func (s *StatementRepositorySuite) TestImport_NewAndMatchedTransactions() {
	existing := database.CreateTestTransaction(s.T(), s.db, s.testCard,
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), -50.00, "Grocery Store")

	statement := s.newStatement(
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		120.00,
	)

	lines := []StatementImportLine{
		{
			Item: models.StatementLineItem{
				Date:        time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
				Amount:      decimal.NewFromFloat(-50.00),
				Description: "GROCERY STORE #104",
			},
			MatchedTransactionID: &existing.ID,
		},
		{
			Item: models.StatementLineItem{
				Date:        time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
				Amount:      decimal.NewFromFloat(-70.00),
				Description: "GAS STATION",
			},
			NewTransaction: &models.Transaction{
				AccountID: s.testCard.ID,
				Date:      time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
				Amount:    decimal.NewFromFloat(-70.00),
				Payee:     "Gas Station",
				Source:    models.TransactionSourceImport,
			},
		},
	}

	err := s.repo.Import(statement, lines)
	s.NoError(err)
	s.NotEqual(uuid.Nil, statement.ID)

	found, err := s.repo.GetByID(statement.ID)
	s.NoError(err)
	s.Require().Len(found.LineItems, 2)

	// Line items keep the issuer's stated date, amount, and description
	for _, item := range found.LineItems {
		s.Require().NotNil(item.TransactionID)
		switch *item.TransactionID {
		case existing.ID:
			s.True(item.Amount.Equal(decimal.NewFromFloat(-50.00)))
			s.Equal("GROCERY STORE #104", item.Description)
			s.True(models.SameDay(item.Date, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)))
		default:
			s.True(item.Amount.Equal(decimal.NewFromFloat(-70.00)))
			s.Equal("GAS STATION", item.Description)
			s.True(models.SameDay(item.Date, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)))
		}
	}

	// The matched transaction is claimed by the statement
	var claimed models.Transaction
	s.NoError(s.db.First(&claimed, "id = ?", existing.ID).Error)
	s.NotNil(claimed.StatementID)
	s.Equal(statement.ID, *claimed.StatementID)

	// The unmatched line became a new linked transaction
	var count int64
	s.NoError(s.db.Model(&models.Transaction{}).Where("statement_id = ?", statement.ID).Count(&count).Error)
	s.Equal(int64(2), count)
}

func (s *StatementRepositorySuite) TestImport_RollsBackWhenMatchAlreadyClaimed() {
	otherID := uuid.New()
	claimed := database.CreateTestTransaction(s.T(), s.db, s.testCard,
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), -50.00, "Grocery Store")
	s.NoError(s.db.Model(&models.Transaction{}).Where("id = ?", claimed.ID).
		Update("statement_id", otherID).Error)

	statement := s.newStatement(
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		50.00,
	)

	err := s.repo.Import(statement, []StatementImportLine{
		{
			Item: models.StatementLineItem{
				Date:        time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
				Amount:      decimal.NewFromFloat(-50.00),
				Description: "GROCERY STORE #104",
			},
			MatchedTransactionID: &claimed.ID,
		},
	})
	s.Error(err)

	var count int64
	s.NoError(s.db.Model(&models.CreditCardStatement{}).Count(&count).Error)
	s.Equal(int64(0), count)
}

func (s *StatementRepositorySuite) TestGetOverlapping() {
	statement := s.newStatement(
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		100.00,
	)
	s.NoError(s.repo.Import(statement, nil))

	overlapping, err := s.repo.GetOverlapping(s.testCard.ID,
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC))
	s.NoError(err)
	s.Len(overlapping, 1)

	clear, err := s.repo.GetOverlapping(s.testCard.ID,
		time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC))
	s.NoError(err)
	s.Len(clear, 0)
}

func (s *StatementRepositorySuite) TestGetLatestBefore() {
	none, err := s.repo.GetLatestBefore(s.testCard.ID, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	s.NoError(err)
	s.Nil(none)

	january := s.newStatement(
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		80.00,
	)
	s.NoError(s.repo.Import(january, nil))

	february := s.newStatement(
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		90.00,
	)
	s.NoError(s.repo.Import(february, nil))

	latest, err := s.repo.GetLatestBefore(s.testCard.ID, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	s.NoError(err)
	s.NotNil(latest)
	s.Equal(february.ID, latest.ID)
}

func (s *StatementRepositorySuite) TestApplyPayment() {
	tx := database.CreateTestTransaction(s.T(), s.db, s.testCard,
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), -120.00, "Grocery Store")

	statement := s.newStatement(
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		120.00,
	)
	s.NoError(s.repo.Import(statement, []StatementImportLine{
		{
			Item: models.StatementLineItem{
				Date:        tx.Date,
				Amount:      tx.Amount,
				Description: "GROCERY STORE #104",
			},
			MatchedTransactionID: &tx.ID,
		},
	}))

	payment := &models.Payment{
		StatementID: statement.ID,
		Date:        time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromFloat(50.00),
	}
	s.NoError(s.repo.ApplyPayment(statement, payment, false))

	found, err := s.repo.GetByID(statement.ID)
	s.NoError(err)
	s.True(found.PaidAmount.Equal(decimal.NewFromFloat(50.00)))
	s.Len(found.Payments, 1)

	var linked models.Transaction
	s.NoError(s.db.First(&linked, "id = ?", tx.ID).Error)
	s.False(linked.Paid)

	// Second payment settles the statement and flags linked transactions
	second := &models.Payment{
		StatementID: statement.ID,
		Date:        time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromFloat(70.00),
	}
	s.NoError(s.repo.ApplyPayment(statement, second, true))

	found, err = s.repo.GetByID(statement.ID)
	s.NoError(err)
	s.True(found.PaidAmount.Equal(decimal.NewFromFloat(120.00)))
	s.True(found.IsSettled())

	s.NoError(s.db.First(&linked, "id = ?", tx.ID).Error)
	s.True(linked.Paid)
}

func (s *StatementRepositorySuite) TestApplyPayment_RejectsNonPositiveAmount() {
	statement := s.newStatement(
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		120.00,
	)
	s.NoError(s.repo.Import(statement, nil))

	payment := &models.Payment{
		StatementID: statement.ID,
		Date:        time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.Zero,
	}
	err := s.repo.ApplyPayment(statement, payment, false)
	s.ErrorIs(err, models.ErrNonPositiveAmount)

	found, getErr := s.repo.GetByID(statement.ID)
	s.NoError(getErr)
	s.True(found.PaidAmount.IsZero())
	s.Len(found.Payments, 0)
}
