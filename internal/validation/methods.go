package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrAddressLength   = errors.New("address must be 32-44 characters")
	ErrAddressAlphabet = errors.New("address contains non-base58 characters")
	ErrAddressDecode   = errors.New("address does not decode to a 32 byte public key")
)

// Issue is one field-level finding. The same shape is used for errors and warnings.
type Issue struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// Validator collects ordered errors and warnings.
type Validator struct {
	Errors   []Issue
	Warnings []Issue
}

// New creates a new validator
func New() *Validator {
	return &Validator{
		Errors:   make([]Issue, 0),
		Warnings: make([]Issue, 0),
	}
}

// Valid checks if there are any validation errors. Warnings never count.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records a fatal issue.
func (v *Validator) AddError(field, code, message string) {
	v.Errors = append(v.Errors, Issue{Field: field, Code: code, Message: message})
}

// AddWarning records a non-fatal issue.
func (v *Validator) AddWarning(field, code, message string) {
	v.Warnings = append(v.Warnings, Issue{Field: field, Code: code, Message: message})
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, code, message string) bool {
	if !ok {
		v.AddError(field, code, message)
	}
	return ok
}

// Address validates a public key field and reports a failure as an error.
func (v *Validator) Address(field, code, message, value string) bool {
	return v.Check(IsValidAddress(value), field, code, message)
}

// Recipient runs ValidateRecipient and records its message on failure.
func (v *Validator) Recipient(field, value string) bool {
	res := ValidateRecipient(value)
	return v.Check(res.Valid, field, CodeInvalidRecipient, res.Error)
}

// Amount runs ValidateAmount and records its message on failure.
func (v *Validator) Amount(field, value string, opts ...AmountOption) bool {
	res := ValidateAmount(value, opts...)
	return v.Check(res.Valid, field, CodeInvalidAmount, res.Error)
}

// MaxLength warns when value has more than n characters.
func (v *Validator) MaxLength(field, code string, value string, n int) bool {
	if utf8.RuneCountInString(value) > n {
		v.AddWarning(field, code, fmt.Sprintf("%s exceeds %d characters", fieldTitle(field), n))
		return false
	}
	return true
}

// MaxLengthError is MaxLength reported as an error instead of a warning.
func (v *Validator) MaxLengthError(field, code string, value string, n int) bool {
	return v.Check(utf8.RuneCountInString(value) <= n, field, code,
		fmt.Sprintf("%s exceeds %d characters", fieldTitle(field), n))
}

func fieldTitle(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
