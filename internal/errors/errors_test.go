package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetErrorMessage_KnownCode(t *testing.T) {
	msg := GetErrorMessage(StatementPeriodOverlap)
	assert.Equal(t, "Statement period overlaps an existing statement", msg)
}

func TestGetErrorMessage_UnknownCode(t *testing.T) {
	msg := GetErrorMessage(ErrorCode("NOPE_999"))
	assert.Equal(t, "An error occurred", msg)
}

func TestIsValidErrorCode(t *testing.T) {
	assert.True(t, IsValidErrorCode(AccountInUse))
	assert.False(t, IsValidErrorCode(ErrorCode("NOPE_999")))
}

func TestValidation_KindAndCode(t *testing.T) {
	err := Validation(PaymentNonPositive)

	assert.True(t, IsValidation(err))
	assert.False(t, IsNotFound(err))
	assert.False(t, IsConflict(err))
	assert.Equal(t, PaymentNonPositive, CodeOf(err))
	assert.Contains(t, err.Error(), "PAYMENT_001")
}

func TestValidationf_CustomMessage(t *testing.T) {
	err := Validationf(RuleInvalidRange, "minimum %s exceeds maximum %s", "10", "5")
	assert.Equal(t, "RULE_003: minimum 10 exceeds maximum 5", err.Error())
}

func TestNotFound_Kind(t *testing.T) {
	err := NotFound(CategoryNotFound)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
}

func TestConflict_Kind(t *testing.T) {
	err := Conflict(AccountInUse)
	assert.True(t, IsConflict(err))
	assert.Equal(t, AccountInUse, CodeOf(err))
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := errors.New("boom")
	err := NotFound(StatementNotFound).Wrap(cause)

	require.ErrorIs(t, err, cause)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "boom")
}

func TestKindPredicates_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("importing statement: %w", Validation(StatementWrongAccount))

	assert.True(t, IsValidation(err))
	assert.Equal(t, StatementWrongAccount, CodeOf(err))
}

func TestCodeOf_NonEngineError(t *testing.T) {
	assert.Equal(t, ErrorCode(""), CodeOf(errors.New("plain")))
}

func TestAllRegisteredCodesHaveMessages(t *testing.T) {
	codes := []ErrorCode{
		AccountNotFound, AccountInvalidKind, AccountInUse, AccountNotCreditCard,
		TransactionNotFound, TransactionZeroAmount, TransactionInvalidRef,
		CategoryNotFound, CategoryNestedParent, CategoryNameRequired, CategoryParentMissing,
		RecurringRuleNotFound, RecurringInvalidFrequency, RecurringInvalidInterval, RecurringInvalidEnd,
		RuleNotFound, RuleEmptyPredicate, RuleInvalidRange,
		StatementNotFound, StatementPeriodInvalid, StatementPeriodOverlap, StatementWrongAccount,
		PaymentNonPositive, PaymentBeforeStart, PaymentNotFound,
	}

	for _, code := range codes {
		assert.True(t, IsValidErrorCode(code), "code %s should be registered", code)
		assert.NotEqual(t, "An error occurred", GetErrorMessage(code), "code %s should have a specific message", code)
	}
}
