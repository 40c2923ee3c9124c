package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator wraps the go-playground validator with engine-specific rules
type Validator struct {
	validate *validator.Validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("account_kind", validateAccountKind)
	_ = v.RegisterValidation("category_kind", validateCategoryKind)
	_ = v.RegisterValidation("frequency", validateFrequency)
	_ = v.RegisterValidation("nonzero_amount", validateNonzeroAmount)
	_ = v.RegisterValidation("positive_amount", validatePositiveAmount)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Validate runs the registered rules against a struct and returns field
// errors keyed by json name.
func (v *Validator) Validate(s interface{}) map[string]string {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrors := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		fieldErrors["_"] = err.Error()
		return fieldErrors
	}

	for _, fieldErr := range validationErrors {
		fieldErrors[fieldErr.Field()] = messageForTag(fieldErr)
	}
	return fieldErrors
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "account_kind":
		return "must be one of checking, savings, credit-card"
	case "category_kind":
		return "must be income or expense"
	case "frequency":
		return "must be one of daily, weekly, monthly, yearly"
	case "nonzero_amount":
		return "must not be zero"
	case "positive_amount":
		return "must be greater than zero"
	case "min":
		return "is below the allowed minimum"
	case "max":
		return "is above the allowed maximum"
	case "len":
		return "has the wrong length"
	default:
		return "is invalid"
	}
}

// Custom validation functions

func validateAccountKind(fl validator.FieldLevel) bool {
	kind := strings.ToLower(fl.Field().String())
	validKinds := map[string]bool{
		"checking":    true,
		"savings":     true,
		"credit-card": true,
	}
	return validKinds[kind]
}

func validateCategoryKind(fl validator.FieldLevel) bool {
	kind := strings.ToLower(fl.Field().String())
	return kind == "income" || kind == "expense"
}

func validateFrequency(fl validator.FieldLevel) bool {
	frequency := strings.ToLower(fl.Field().String())
	validFrequencies := map[string]bool{
		"daily":   true,
		"weekly":  true,
		"monthly": true,
		"yearly":  true,
	}
	return validFrequencies[frequency]
}

func validateNonzeroAmount(fl validator.FieldLevel) bool {
	if d, ok := fl.Field().Interface().(decimal.Decimal); ok {
		return !d.IsZero()
	}
	return false
}

func validatePositiveAmount(fl validator.FieldLevel) bool {
	if d, ok := fl.Field().Interface().(decimal.Decimal); ok {
		return d.IsPositive()
	}
	return false
}
