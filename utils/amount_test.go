package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAmount(t *testing.T) {
	cases := []struct {
		raw      string
		expected string
	}{
		{"128.50", "128.50"},
		{"¥128.50", "128.50"},
		{"￥ 1,280.50", "1280.50"},
		{"RMB 99.99", "99.99"},
		{"358.00元", "358.00"},
		{"人民币358.00", "358.00"},
		{"1，234.56", "1234.56"},
		{"0.01", "0.01"},
		{"100000.00", "100000.00"},
		{"12.345", "12.35"}, // rounded to 2dp
		{"42", "42.00"},
	}

	for _, tc := range cases {
		d, ok := NormalizeAmount(tc.raw)
		assert.True(t, ok, "expected %q to normalize", tc.raw)
		assert.Equal(t, tc.expected, FormatAmount(d), "raw %q", tc.raw)
	}
}

func TestNormalizeAmountRejectsOutOfRange(t *testing.T) {
	rejected := []string{
		"0.00",
		"0.004", // rounds to 0.00
		"100000.01",
		"20240101150405.00",
		"",
		"abc",
		"¥",
	}

	for _, raw := range rejected {
		_, ok := NormalizeAmount(raw)
		assert.False(t, ok, "expected %q to be rejected", raw)
	}
}

func TestNormalizeAmountRoundTrip(t *testing.T) {
	for _, s := range []string{"0.01", "1.00", "9999.99", "100000.00"} {
		d, ok := NormalizeAmount(s)
		assert.True(t, ok)
		assert.Equal(t, s, FormatAmount(d))
	}
}
