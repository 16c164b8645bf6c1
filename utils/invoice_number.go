package utils

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// invoiceNumberPatterns are tried longest first: an 8-digit pattern
// would spuriously match inside a 20-digit number, so shorter tiers are
// never attempted once a longer one matches.
var invoiceNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{20}\b`),
	regexp.MustCompile(`\b\d{10}\b`),
	regexp.MustCompile(`\b\d{8}\b`),
}

var (
	filenameAmountHintPattern = regexp.MustCompile(`\[[¥￥](\d+(?:\.\d{1,2})?)\]`)
	bareDecimalPattern        = regexp.MustCompile(`\d+\.\d{1,2}`)
)

// ResolveInvoiceNumber applies the length-ordered patterns to text and
// returns the first match of the first successful tier, or "" when no
// tier matches.
func ResolveInvoiceNumber(text string) string {
	for _, pattern := range invoiceNumberPatterns {
		if m := pattern.FindString(text); m != "" {
			return m
		}
	}
	return ""
}

// SyntheticInvoiceNumber builds a timestamp-based identifier for
// documents where no invoice number is recoverable. Uniqueness within
// the same second is left to the rename collision handling at the
// filesystem layer, not to the identifier itself.
func SyntheticInvoiceNumber(prefix string) string {
	return prefix + time.Now().Format("20060102150405")
}

// AmountHintFromFilename extracts the bracketed amount convention
// ("[¥99.99]") from a filename, for use as a disambiguation hint.
func AmountHintFromFilename(filename string) (decimal.Decimal, bool) {
	m := filenameAmountHintPattern.FindStringSubmatch(filename)
	if m == nil {
		return decimal.Decimal{}, false
	}
	return NormalizeAmount(m[1])
}

// BareAmountFromFilename extracts the first plausible bare decimal from
// a filename. Last-resort amount source when the document text yields
// nothing.
func BareAmountFromFilename(filename string) (decimal.Decimal, bool) {
	for _, m := range bareDecimalPattern.FindAllString(filename, -1) {
		if d, ok := NormalizeAmount(m); ok {
			return d, true
		}
	}
	return decimal.Decimal{}, false
}
