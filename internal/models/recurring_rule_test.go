package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validRule() RecurringRule {
	return RecurringRule{
		AccountID: uuid.New(),
		Payee:     "Gym",
		Amount:    decimal.NewFromFloat(-35.00),
		Frequency: FrequencyMonthly,
		Interval:  1,
		StartDate: date(2024, 1, 15),
	}
}

func TestRecurringRule_Validate(t *testing.T) {
	t.Run("valid rule", func(t *testing.T) {
		r := validRule()
		assert.NoError(t, r.Validate())
	})

	t.Run("unknown frequency", func(t *testing.T) {
		r := validRule()
		r.Frequency = "fortnightly"
		assert.ErrorIs(t, r.Validate(), ErrInvalidFrequency)
	})

	t.Run("zero interval", func(t *testing.T) {
		r := validRule()
		r.Interval = 0
		assert.ErrorIs(t, r.Validate(), ErrInvalidInterval)
	})

	t.Run("zero amount", func(t *testing.T) {
		r := validRule()
		r.Amount = decimal.Zero
		assert.ErrorIs(t, r.Validate(), ErrZeroAmount)
	})

	t.Run("end date before start", func(t *testing.T) {
		r := validRule()
		end := date(2023, 12, 1)
		r.EndDate = &end
		assert.ErrorIs(t, r.Validate(), ErrEndBeforeStart)
	})

	t.Run("non-positive occurrence limit", func(t *testing.T) {
		r := validRule()
		limit := 0
		r.MaxOccurrences = &limit
		assert.ErrorIs(t, r.Validate(), ErrInvalidOccurrences)
	})
}

func TestRecurringRule_OccurrenceDate_Daily(t *testing.T) {
	r := validRule()
	r.Frequency = FrequencyDaily
	r.Interval = 3
	r.StartDate = date(2024, 1, 1)

	assert.Equal(t, date(2024, 1, 1), r.OccurrenceDate(0))
	assert.Equal(t, date(2024, 1, 4), r.OccurrenceDate(1))
	assert.Equal(t, date(2024, 1, 31), r.OccurrenceDate(10))
}

func TestRecurringRule_OccurrenceDate_Weekly(t *testing.T) {
	r := validRule()
	r.Frequency = FrequencyWeekly
	r.StartDate = date(2024, 1, 5) // a Friday

	assert.Equal(t, date(2024, 1, 12), r.OccurrenceDate(1))
	assert.Equal(t, date(2024, 2, 2), r.OccurrenceDate(4))
}

func TestRecurringRule_OccurrenceDate_MonthlyDay31NoDrift(t *testing.T) {
	// A day-31 rule clamps in short months but must recover the 31st
	// afterwards: advancement is always from the nominal start day.
	r := validRule()
	r.StartDate = date(2024, 1, 31)

	assert.Equal(t, date(2024, 1, 31), r.OccurrenceDate(0))
	assert.Equal(t, date(2024, 2, 29), r.OccurrenceDate(1))
	assert.Equal(t, date(2024, 3, 31), r.OccurrenceDate(2))
	assert.Equal(t, date(2024, 4, 30), r.OccurrenceDate(3))
	assert.Equal(t, date(2024, 5, 31), r.OccurrenceDate(4))
}

func TestRecurringRule_OccurrenceDate_YearlyLeapDay(t *testing.T) {
	r := validRule()
	r.Frequency = FrequencyYearly
	r.StartDate = date(2024, 2, 29)

	assert.Equal(t, date(2025, 2, 28), r.OccurrenceDate(1))
	assert.Equal(t, date(2028, 2, 29), r.OccurrenceDate(4))
}

func TestRecurringRule_EndReached(t *testing.T) {
	r := validRule()
	end := date(2024, 6, 30)
	r.EndDate = &end

	assert.False(t, r.EndReached(date(2024, 6, 15), 1))
	assert.False(t, r.EndReached(date(2024, 6, 30), 5))
	assert.True(t, r.EndReached(date(2024, 7, 15), 1))

	limit := 3
	r.EndDate = nil
	r.MaxOccurrences = &limit
	assert.False(t, r.EndReached(date(2024, 3, 15), 3))
	assert.True(t, r.EndReached(date(2024, 4, 15), 4))
}
