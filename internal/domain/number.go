package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NumberResult is the outcome of parsing user-entered numeric text.
// Valid is false when the text is empty or not a number; Value is then zero.
type NumberResult struct {
	Value decimal.Decimal
	Valid bool
}

// ParseNumber parses a decimal number from raw form input.
// Surrounding whitespace and a comma decimal separator are accepted.
func ParseNumber(raw string) NumberResult {
	s := strings.TrimSpace(raw)
	if s == "" {
		return NumberResult{}
	}
	s = strings.Replace(s, ",", ".", 1)

	value, err := decimal.NewFromString(s)
	if err != nil {
		return NumberResult{}
	}
	return NumberResult{Value: value, Valid: true}
}

// OrZero returns the parsed value, or zero when parsing failed
func (r NumberResult) OrZero() decimal.Decimal {
	if !r.Valid {
		return decimal.Zero
	}
	return r.Value
}
