package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
	FrequencyYearly  = "yearly"
)

var (
	ErrInvalidFrequency   = errors.New("invalid recurrence frequency")
	ErrInvalidInterval    = errors.New("recurrence interval must be at least 1")
	ErrEndBeforeStart     = errors.New("end date precedes start date")
	ErrInvalidOccurrences = errors.New("occurrence limit must be at least 1")
)

// RecurringRule is a template that the scheduler expands into dated
// transactions. LastMaterialized is the watermark: the scheduler never
// re-emits an occurrence dated at or before it.
type RecurringRule struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	AccountID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"account_id"`
	Payee            string          `gorm:"type:varchar(255);not null" json:"payee"`
	Amount           decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	CategoryID       *uuid.UUID      `gorm:"type:uuid" json:"category_id,omitempty"`
	Frequency        string          `gorm:"type:varchar(10);not null" json:"frequency"`
	Interval         int             `gorm:"not null;default:1" json:"interval"`
	StartDate        time.Time       `gorm:"not null" json:"start_date"`
	EndDate          *time.Time      `json:"end_date,omitempty"`
	MaxOccurrences   *int            `json:"max_occurrences,omitempty"`
	Occurrences      int             `gorm:"not null;default:0" json:"occurrences"`
	LastMaterialized *time.Time      `gorm:"index" json:"last_materialized,omitempty"`
	Active           bool            `gorm:"not null;default:true" json:"active"`
	Note             string          `gorm:"type:text" json:"note,omitempty"`
	CreatedAt        time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"not null" json:"updated_at"`

	// Associations
	Account Account `gorm:"foreignKey:AccountID" json:"-"`
}

// BeforeCreate hook for RecurringRule
func (r *RecurringRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}

	if r.Interval == 0 {
		r.Interval = 1
	}

	r.StartDate = DateOnly(r.StartDate)
	if r.EndDate != nil {
		end := DateOnly(*r.EndDate)
		r.EndDate = &end
	}

	now := time.Now()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
		r.Active = true
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = now
	}

	return r.Validate()
}

// BeforeUpdate hook for RecurringRule
func (r *RecurringRule) BeforeUpdate(tx *gorm.DB) error {
	r.UpdatedAt = time.Now()
	return r.Validate()
}

// Validate validates the recurring rule fields
func (r *RecurringRule) Validate() error {
	if r.AccountID == uuid.Nil {
		return errors.New("account ID is required")
	}

	if r.Payee == "" {
		return ErrPayeeRequired
	}

	if r.Amount.IsZero() {
		return ErrZeroAmount
	}

	if !IsValidFrequency(r.Frequency) {
		return ErrInvalidFrequency
	}

	if r.Interval < 1 {
		return ErrInvalidInterval
	}

	if r.StartDate.IsZero() {
		return errors.New("start date is required")
	}

	if r.EndDate != nil && r.EndDate.Before(r.StartDate) {
		return ErrEndBeforeStart
	}

	if r.MaxOccurrences != nil && *r.MaxOccurrences < 1 {
		return ErrInvalidOccurrences
	}

	return nil
}

// OccurrenceDate returns the date of the nth occurrence (0-based). Monthly
// and yearly rules always advance from the nominal start day, so a day-31
// rule clamps to Feb 29 and recovers to Mar 31 rather than drifting.
func (r *RecurringRule) OccurrenceDate(n int) time.Time {
	step := n * r.Interval
	switch r.Frequency {
	case FrequencyDaily:
		return r.StartDate.AddDate(0, 0, step)
	case FrequencyWeekly:
		return r.StartDate.AddDate(0, 0, 7*step)
	case FrequencyMonthly:
		return AddMonthsClamped(r.StartDate, step)
	case FrequencyYearly:
		return AddMonthsClamped(r.StartDate, 12*step)
	default:
		return r.StartDate
	}
}

// EndReached reports whether emitting an occurrence on the given date with
// the given total occurrence count would violate the rule's end condition.
func (r *RecurringRule) EndReached(date time.Time, count int) bool {
	if r.EndDate != nil && date.After(*r.EndDate) {
		return true
	}
	if r.MaxOccurrences != nil && count > *r.MaxOccurrences {
		return true
	}
	return false
}

// TableName returns the table name for RecurringRule
func (r *RecurringRule) TableName() string {
	return "recurring_rules"
}

// IsValidFrequency checks if the recurrence frequency is valid
func IsValidFrequency(frequency string) bool {
	switch frequency {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	default:
		return false
	}
}
