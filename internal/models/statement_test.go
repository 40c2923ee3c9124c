package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCreditCardStatement_Validate(t *testing.T) {
	s := CreditCardStatement{
		AccountID:      uuid.New(),
		PeriodStart:    date(2024, 3, 1),
		PeriodEnd:      date(2024, 3, 31),
		ClosingBalance: decimal.NewFromFloat(420.00),
	}
	assert.NoError(t, s.Validate())

	s.PeriodStart = date(2024, 4, 1)
	assert.ErrorIs(t, s.Validate(), ErrPeriodOrder)
}

func TestCreditCardStatement_Outstanding(t *testing.T) {
	s := CreditCardStatement{
		ClosingBalance: decimal.NewFromFloat(120.00),
		PaidAmount:     decimal.NewFromFloat(50.00),
	}
	assert.True(t, s.Outstanding().Equal(decimal.NewFromFloat(70.00)))
	assert.False(t, s.IsSettled())

	s.PaidAmount = decimal.NewFromFloat(120.00)
	assert.True(t, s.Outstanding().IsZero())
	assert.True(t, s.IsSettled())

	// overpayment goes negative, never clamped
	s.PaidAmount = decimal.NewFromFloat(150.00)
	assert.True(t, s.Outstanding().Equal(decimal.NewFromFloat(-30.00)))
	assert.True(t, s.IsSettled())
}

func TestCreditCardStatement_Outstanding_WithCarriedCredit(t *testing.T) {
	s := CreditCardStatement{
		ClosingBalance: decimal.NewFromFloat(200.00),
		CarriedCredit:  decimal.NewFromFloat(30.00),
		PaidAmount:     decimal.NewFromFloat(100.00),
	}
	assert.True(t, s.Outstanding().Equal(decimal.NewFromFloat(70.00)))
}

func TestCreditCardStatement_Overlaps(t *testing.T) {
	s := CreditCardStatement{
		PeriodStart: date(2024, 3, 1),
		PeriodEnd:   date(2024, 3, 31),
	}

	assert.True(t, s.Overlaps(date(2024, 3, 15), date(2024, 4, 14)), "partial overlap")
	assert.True(t, s.Overlaps(date(2024, 2, 1), date(2024, 3, 1)), "single shared day")
	assert.True(t, s.Overlaps(date(2024, 2, 1), date(2024, 5, 1)), "containing period")
	assert.False(t, s.Overlaps(date(2024, 4, 1), date(2024, 4, 30)), "adjacent period")
	assert.False(t, s.Overlaps(date(2024, 1, 1), date(2024, 2, 29)))
}

func TestCreditCardStatement_ContainsDate(t *testing.T) {
	s := CreditCardStatement{
		PeriodStart: date(2024, 3, 1),
		PeriodEnd:   date(2024, 3, 31),
	}

	assert.True(t, s.ContainsDate(date(2024, 3, 1)))
	assert.True(t, s.ContainsDate(date(2024, 3, 31)))
	assert.False(t, s.ContainsDate(date(2024, 4, 1)))
}

func TestDefaultMinimumDue(t *testing.T) {
	pct := decimal.NewFromFloat(3)
	floor := decimal.NewFromFloat(25)

	// 3% of 2000 = 60, above the floor
	assert.True(t, DefaultMinimumDue(decimal.NewFromFloat(2000), pct, floor).Equal(decimal.NewFromFloat(60)))
	// 3% of 100 = 3, floor wins
	assert.True(t, DefaultMinimumDue(decimal.NewFromFloat(100), pct, floor).Equal(floor))
	// sign of the balance is ignored
	assert.True(t, DefaultMinimumDue(decimal.NewFromFloat(-2000), pct, floor).Equal(decimal.NewFromFloat(60)))
}

func TestPayment_Validate(t *testing.T) {
	p := Payment{StatementID: uuid.New(), Amount: decimal.NewFromFloat(50)}
	assert.NoError(t, p.Validate())

	p.Amount = decimal.Zero
	assert.ErrorIs(t, p.Validate(), ErrNonPositiveAmount)

	p.Amount = decimal.NewFromFloat(-10)
	assert.ErrorIs(t, p.Validate(), ErrNonPositiveAmount)
}

func TestCategory_Validate(t *testing.T) {
	c := Category{Name: "Dining", Kind: CategoryKindExpense}
	assert.NoError(t, c.Validate())

	c.Name = ""
	assert.ErrorIs(t, c.Validate(), ErrCategoryNameEmpty)

	c.Name = "Dining"
	c.Kind = "both"
	assert.ErrorIs(t, c.Validate(), ErrInvalidCategoryKind)
}

func TestCategory_SelfParentRejected(t *testing.T) {
	id := uuid.New()
	c := Category{ID: id, Name: "Loop", Kind: CategoryKindExpense, ParentID: &id}
	assert.ErrorIs(t, c.Validate(), ErrCategorySelfParent)
}

func TestAccount_Validate(t *testing.T) {
	a := Account{Name: "Main Checking", Kind: AccountKindChecking, Currency: "USD"}
	assert.NoError(t, a.Validate())

	a.Kind = "brokerage"
	assert.ErrorIs(t, a.Validate(), ErrInvalidAccountKind)

	a.Kind = AccountKindSavings
	a.Name = ""
	assert.ErrorIs(t, a.Validate(), ErrAccountNameEmpty)

	a.Name = "Savings"
	a.Currency = "US"
	assert.ErrorIs(t, a.Validate(), ErrInvalidCurrency)
}

func TestAccount_IsCreditCard(t *testing.T) {
	assert.True(t, (&Account{Kind: AccountKindCreditCard}).IsCreditCard())
	assert.False(t, (&Account{Kind: AccountKindChecking}).IsCreditCard())
}
