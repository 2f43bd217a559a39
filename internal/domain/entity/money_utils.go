package entity

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
)

// MaxDecimalPlaces defines the maximum number of decimal places allowed for money amounts
const MaxDecimalPlaces = 2

var (
	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(math.MaxInt64)
)

// ParseAmount validates a decimal string and converts it to cents.
// Zero is accepted here; callers that need a positive amount check it themselves.
func ParseAmount(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}

	return AmountFromDecimal(d)
}

// AmountFromDecimal converts a decimal amount to cents, rejecting negatives and sub-cent precision.
func AmountFromDecimal(d decimal.Decimal) (int64, error) {
	if d.IsNegative() {
		return 0, errs.ErrNegativeAmount
	}

	cents := d.Mul(hundred)
	if !cents.Equal(cents.Truncate(0)) {
		return 0, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
	}
	if cents.GreaterThan(maxCents) {
		return 0, errs.ErrAmountOverflow
	}

	return cents.IntPart(), nil
}

// AmountInCentsToString converts integer amount to a decimal string
// For example:
// - 1015 becomes "10.15"
// - 1000 becomes "10.00"
func AmountInCentsToString(amountInCents int64) string {
	return decimal.New(amountInCents, -MaxDecimalPlaces).StringFixed(MaxDecimalPlaces)
}

// AddCents adds two cent amounts, failing instead of wrapping around.
func AddCents(a, b int64) (int64, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, errs.ErrAmountOverflow
	}
	return a + b, nil
}
