package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amounts outside this range are regarded as noise (page numbers, dates,
// serial fragments) and are never surfaced. The bounds are inherited
// heuristics; retuning them needs a labeled invoice corpus.
var (
	minValidAmount = decimal.NewFromFloat(0.01)
	maxValidAmount = decimal.NewFromFloat(100000.00)
)

// currencyGlyphs are stripped from raw amount candidates before parsing.
var currencyGlyphs = []string{"¥", "￥", "RMB", "rmb", "人民币", "元"}

// NormalizeAmount parses a raw numeric candidate into a fixed-point
// amount with exactly two fractional digits. It strips currency glyphs
// and thousands separators, maps full-width punctuation, and rejects
// anything non-numeric or outside [0.01, 100000.00]. The bool result is
// false for rejected candidates; rejection is expected noise, not an
// error condition.
func NormalizeAmount(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	for _, glyph := range currencyGlyphs {
		s = strings.ReplaceAll(s, glyph, "")
	}

	// Thousands separators, ASCII and full-width
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "，", "")

	// Full-width decimal separators occasionally survive text extraction
	s = strings.ReplaceAll(s, "。", ".")
	s = strings.ReplaceAll(s, "．", ".")

	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}

	d = d.Round(2)
	if d.LessThan(minValidAmount) || d.GreaterThan(maxValidAmount) {
		return decimal.Decimal{}, false
	}
	return d, true
}

// FormatAmount renders a normalized amount with two decimal places.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
