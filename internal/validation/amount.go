package validation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type amountOptions struct {
	min         *decimal.Decimal
	maxDecimals int32
}

// AmountOption tunes ValidateAmount.
type AmountOption func(*amountOptions)

// WithMinimum rejects amounts below min. An unparsable min is ignored.
func WithMinimum(min string) AmountOption {
	return func(o *amountOptions) {
		if d, err := decimal.NewFromString(min); err == nil {
			o.min = &d
		}
	}
}

// WithMaxDecimals overrides the default of 9 decimal places.
func WithMaxDecimals(n int) AmountOption {
	return func(o *amountOptions) {
		o.maxDecimals = int32(n)
	}
}

// ParseAmount parses a decimal amount string without applying any policy.
func ParseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// ValidateAmount checks that s is a payable decimal amount.
func ValidateAmount(s string, opts ...AmountOption) Result {
	o := amountOptions{maxDecimals: DefaultMaxDecimals}
	for _, opt := range opts {
		opt(&o)
	}

	if s == "" {
		return fail("Amount is required")
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return fail("Invalid number")
	}
	if amount.IsNegative() {
		return fail("Amount must be positive")
	}
	if amount.IsZero() {
		return fail("Amount must be greater than 0")
	}
	if o.min != nil && amount.LessThan(*o.min) {
		return fail(fmt.Sprintf("Minimum amount is %s", o.min.String()))
	}
	if DecimalPlaces(amount) > o.maxDecimals {
		if o.maxDecimals == 2 {
			return fail("Maximum 2 decimal places")
		}
		return fail(fmt.Sprintf("Too many decimal places (max %d)", o.maxDecimals))
	}
	return ok()
}

// DecimalPlaces counts significant fractional digits, ignoring trailing zeros
// ("1.500" has 1).
func DecimalPlaces(d decimal.Decimal) int32 {
	str := d.String()
	if i := strings.IndexByte(str, '.'); i >= 0 {
		return int32(len(str) - i - 1)
	}
	return 0
}
