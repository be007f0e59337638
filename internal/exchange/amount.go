package exchange

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FeeRate is the share of the card amount kept as fee.
var FeeRate = decimal.RequireFromString("0.20")

// Amounts above maxAmount or with more than maxScale significant decimal
// places are rejected, as are exponents outside [minExponent, maxExponent].
var maxAmount = decimal.New(1, 12)

const (
	maxScale    = 8
	maxExponent = 12
	minExponent = -32
)

// ParseAmount reads a positive amount. A comma is accepted as decimal
// separator, a trailing euro sign is ignored and exponent notation is allowed.
func ParseAmount(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimSpace(strings.TrimSuffix(s, "€"))
	s = strings.Replace(s, ",", ".", 1)
	if s == "" {
		return decimal.Zero, validationError("parse_amount", "amount is empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &Error{Kind: KindValidation, Op: "parse_amount", Err: err}
	}
	switch {
	case !d.IsPositive():
		return decimal.Zero, validationError("parse_amount", "amount must be positive")
	case d.Exponent() > maxExponent || d.Exponent() < minExponent:
		return decimal.Zero, validationError("parse_amount", "amount is out of range")
	case d.GreaterThan(maxAmount):
		return decimal.Zero, validationError("parse_amount", "amount is too large")
	case !d.Equal(d.Round(maxScale)):
		return decimal.Zero, validationError("parse_amount", "amount has too many decimal places")
	}
	return d, nil
}

// Split returns fee = round(amount * FeeRate, 2) and payout = amount - fee.
func Split(amount decimal.Decimal) (fee, payout decimal.Decimal) {
	fee = amount.Mul(FeeRate).Round(2)
	return fee, amount.Sub(fee)
}

// FormatAmount renders d with at least one fractional digit: 5 -> "5.0", 5.1 -> "5.1".
func FormatAmount(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
