package errors

// ErrorCode represents a standardized error code used throughout the engine
type ErrorCode string

// Account error codes (ACCOUNT_*)
const (
	AccountNotFound      ErrorCode = "ACCOUNT_001"
	AccountInvalidKind   ErrorCode = "ACCOUNT_002"
	AccountInUse         ErrorCode = "ACCOUNT_003"
	AccountNotCreditCard ErrorCode = "ACCOUNT_004"
)

// Transaction error codes (TRANSACTION_*)
const (
	TransactionNotFound   ErrorCode = "TRANSACTION_001"
	TransactionZeroAmount ErrorCode = "TRANSACTION_002"
	TransactionInvalidRef ErrorCode = "TRANSACTION_003"
)

// Category error codes (CATEGORY_*)
const (
	CategoryNotFound      ErrorCode = "CATEGORY_001"
	CategoryNestedParent  ErrorCode = "CATEGORY_002"
	CategoryNameRequired  ErrorCode = "CATEGORY_003"
	CategoryParentMissing ErrorCode = "CATEGORY_004"
)

// Recurring rule error codes (RECURRING_*)
const (
	RecurringRuleNotFound     ErrorCode = "RECURRING_001"
	RecurringInvalidFrequency ErrorCode = "RECURRING_002"
	RecurringInvalidInterval  ErrorCode = "RECURRING_003"
	RecurringInvalidEnd       ErrorCode = "RECURRING_004"
)

// Categorization rule error codes (RULE_*)
const (
	RuleNotFound       ErrorCode = "RULE_001"
	RuleEmptyPredicate ErrorCode = "RULE_002"
	RuleInvalidRange   ErrorCode = "RULE_003"
)

// Statement error codes (STATEMENT_*)
const (
	StatementNotFound      ErrorCode = "STATEMENT_001"
	StatementPeriodInvalid ErrorCode = "STATEMENT_002"
	StatementPeriodOverlap ErrorCode = "STATEMENT_003"
	StatementWrongAccount  ErrorCode = "STATEMENT_004"
)

// Payment error codes (PAYMENT_*)
const (
	PaymentNonPositive ErrorCode = "PAYMENT_001"
	PaymentBeforeStart ErrorCode = "PAYMENT_002"
	PaymentNotFound    ErrorCode = "PAYMENT_003"
)

// Budget error codes (BUDGET_*)
const (
	BudgetNotFound     ErrorCode = "BUDGET_001"
	BudgetNonPositive  ErrorCode = "BUDGET_002"
	BudgetInvalidMonth ErrorCode = "BUDGET_003"
	BudgetDuplicate    ErrorCode = "BUDGET_004"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	AccountNotFound:      "Account not found",
	AccountInvalidKind:   "Invalid account kind",
	AccountInUse:         "Account is referenced by existing transactions",
	AccountNotCreditCard: "Account is not a credit card",

	TransactionNotFound:   "Transaction not found",
	TransactionZeroAmount: "Transaction amount must not be zero",
	TransactionInvalidRef: "Transaction references a nonexistent entity",

	CategoryNotFound:      "Category not found",
	CategoryNestedParent:  "Category parent must not itself have a parent",
	CategoryNameRequired:  "Category name is required",
	CategoryParentMissing: "Parent category not found",

	RecurringRuleNotFound:     "Recurring rule not found",
	RecurringInvalidFrequency: "Invalid recurrence frequency",
	RecurringInvalidInterval:  "Recurrence interval must be at least 1",
	RecurringInvalidEnd:       "End condition precedes the rule start date",

	RuleNotFound:       "Categorization rule not found",
	RuleEmptyPredicate: "Categorization rule needs at least one predicate clause",
	RuleInvalidRange:   "Amount range minimum exceeds maximum",

	StatementNotFound:      "Statement not found",
	StatementPeriodInvalid: "Statement period start must not be after period end",
	StatementPeriodOverlap: "Statement period overlaps an existing statement",
	StatementWrongAccount:  "Statements can only be imported for credit card accounts",

	PaymentNonPositive: "Payment amount must be positive",
	PaymentBeforeStart: "Payment date precedes the statement period start",
	PaymentNotFound:    "Payment not found",

	BudgetNotFound:     "Budget not found",
	BudgetNonPositive:  "Budget amount must be positive",
	BudgetInvalidMonth: "Budget month must be between 1 and 12",
	BudgetDuplicate:    "A budget already exists for this category and month",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
