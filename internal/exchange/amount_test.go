package exchange

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	valid := map[string]string{
		"25":      "25",
		" 25 ":    "25",
		"12.5":    "12.5",
		"12,50":   "12.5",
		"0.01":    "0.01",
		"100€":    "100",
		"100 €":   "100",
		"0000010": "10",
		"25.555":  "25.555",
		"25.500":  "25.5",
		"1e2":     "100",
		"+5":      "5",
		".5":      "0.5",
		"5.":      "5",
		"12.345":  "12.345",

		"12345678901":   "12345678901",
		"1000000000000": "1000000000000",
		"0.00000001":    "0.00000001",
		"2.50000000000": "2.5",
	}
	for in, want := range valid {
		got, err := ParseAmount(in)
		require.NoError(t, err, in)
		assert.True(t, got.Equal(decimal.RequireFromString(want)), "%s -> %s", in, got)
	}

	for _, in := range []string{
		"", "€", "abc", "0", "0.00", "-5", "-0.01", "1,000.00", "12 34", "NaN", "Inf",
		"1000000000000.01", "1e13", "1e999999999", "0.000000001", "1e-999999999",
	} {
		_, err := ParseAmount(in)
		require.Error(t, err, in)
		assert.Equal(t, KindValidation, KindOf(err), in)
	}
}

func TestSplit(t *testing.T) {
	cases := []struct{ amount, fee, payout string }{
		{"25", "5", "20"},
		{"25.5", "5.1", "20.4"},
		{"12.34", "2.47", "9.87"},
		{"0.01", "0", "0.01"},
		{"0.03", "0.01", "0.02"},
		{"100", "20", "80"},
		{"12.345", "2.47", "9.875"},
		{"25.555", "5.11", "20.445"},
		{"0.025", "0.01", "0.015"},
	}
	for _, tc := range cases {
		fee, payout := Split(decimal.RequireFromString(tc.amount))
		assert.True(t, fee.Equal(decimal.RequireFromString(tc.fee)), "fee of %s = %s", tc.amount, fee)
		assert.True(t, payout.Equal(decimal.RequireFromString(tc.payout)), "payout of %s = %s", tc.amount, payout)
	}
}

func TestSplitInvariants(t *testing.T) {
	for cents := int64(1); cents <= 20000; cents += 7 {
		amount := decimal.New(cents, -2)
		fee, payout := Split(amount)
		require.True(t, fee.Add(payout).Equal(amount), "amount %s", amount)
		require.True(t, fee.Equal(amount.Mul(decimal.RequireFromString("0.2")).Round(2)), "amount %s", amount)
		require.LessOrEqual(t, fee.Exponent()*-1, int32(2))
		require.False(t, payout.IsNegative())
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "5.0", FormatAmount(decimal.RequireFromString("5")))
	assert.Equal(t, "20.0", FormatAmount(decimal.RequireFromString("20.00")))
	assert.Equal(t, "5.1", FormatAmount(decimal.RequireFromString("5.10")))
	assert.Equal(t, "12.34", FormatAmount(decimal.RequireFromString("12.34")))
	assert.Equal(t, "0.0", FormatAmount(decimal.Zero))
}
