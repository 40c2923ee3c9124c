package models

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrEmptyPredicate     = errors.New("categorization rule needs at least one predicate clause")
	ErrInvalidAmountRange = errors.New("amount range minimum exceeds maximum")
	ErrTargetRequired     = errors.New("target category is required")
)

// CategorizationRule assigns a category to matching transactions. Rules are
// evaluated in ascending (priority, seq) order and the first match wins. Seq
// is a creation-ordered sequence used to break priority ties
// deterministically.
//
// The predicate is a conjunction of optional clauses: a payee substring
// pattern, an inclusive amount range, and an account filter. At least one
// clause must be present.
type CategorizationRule struct {
	ID               uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Seq              int64            `gorm:"not null;uniqueIndex" json:"seq"`
	Priority         int              `gorm:"not null;default:100;index" json:"priority"`
	PayeePattern     string           `gorm:"type:varchar(255)" json:"payee_pattern,omitempty"`
	CaseSensitive    bool             `gorm:"not null;default:false" json:"case_sensitive"`
	AmountMin        *decimal.Decimal `gorm:"type:decimal(15,2)" json:"amount_min,omitempty"`
	AmountMax        *decimal.Decimal `gorm:"type:decimal(15,2)" json:"amount_max,omitempty"`
	AccountID        *uuid.UUID       `gorm:"type:uuid" json:"account_id,omitempty"`
	TargetCategoryID uuid.UUID        `gorm:"type:uuid;not null" json:"target_category_id"`
	Active           bool             `gorm:"not null;default:true" json:"active"`
	CreatedAt        time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time        `gorm:"not null" json:"updated_at"`

	// Associations
	TargetCategory Category `gorm:"foreignKey:TargetCategoryID" json:"-"`
}

// BeforeCreate hook for CategorizationRule
func (r *CategorizationRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}

	if r.Seq == 0 {
		var maxSeq int64
		if err := tx.Model(&CategorizationRule{}).
			Select("COALESCE(MAX(seq), 0)").Scan(&maxSeq).Error; err != nil {
			return err
		}
		r.Seq = maxSeq + 1
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

// BeforeUpdate hook for CategorizationRule
func (r *CategorizationRule) BeforeUpdate(tx *gorm.DB) error {
	r.UpdatedAt = time.Now()
	return r.Validate()
}

// Validate validates the categorization rule fields
func (r *CategorizationRule) Validate() error {
	if r.TargetCategoryID == uuid.Nil {
		return ErrTargetRequired
	}

	if r.PayeePattern == "" && r.AmountMin == nil && r.AmountMax == nil && r.AccountID == nil {
		return ErrEmptyPredicate
	}

	if r.AmountMin != nil && r.AmountMax != nil && r.AmountMin.GreaterThan(*r.AmountMax) {
		return ErrInvalidAmountRange
	}

	return nil
}

// Matches reports whether the transaction satisfies every clause present on
// the rule's predicate.
func (r *CategorizationRule) Matches(t *Transaction) bool {
	if r.PayeePattern != "" && !r.matchesPayee(t.Payee) {
		return false
	}

	if r.AmountMin != nil && t.Amount.LessThan(*r.AmountMin) {
		return false
	}

	if r.AmountMax != nil && t.Amount.GreaterThan(*r.AmountMax) {
		return false
	}

	if r.AccountID != nil && *r.AccountID != t.AccountID {
		return false
	}

	return true
}

func (r *CategorizationRule) matchesPayee(payee string) bool {
	if r.CaseSensitive {
		return strings.Contains(payee, r.PayeePattern)
	}
	return strings.Contains(strings.ToLower(payee), strings.ToLower(r.PayeePattern))
}

// TableName returns the table name for CategorizationRule
func (r *CategorizationRule) TableName() string {
	return "categorization_rules"
}

// SortRules orders rules by (priority, seq) ascending, the evaluation order
// contract. Deterministic because seq is unique.
func SortRules(rules []CategorizationRule) {
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority < rules[j].Priority
		}
		return rules[i].Seq < rules[j].Seq
	})
}
