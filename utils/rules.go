package utils

import (
	"regexp"

	"github.com/invoicetools/invoice-renamer/dto"
)

// Rule tags used across the amount rule table
const (
	TagTaxInclusiveTotal = "tax_inclusive_total"
	TagAmountInWords     = "amount_in_words_lower"
	TagGrandTotal        = "grand_total"
	TagLabeledAmount     = "labeled_amount"
	TagCurrencyGlyph     = "currency_glyph"
	TagGenericDecimal    = "generic_decimal"
)

// PriorityAmountTier is reserved for domain phrasings synonymous with
// the tax-inclusive grand total line of an invoice.
const PriorityAmountTier = 0

// amountRules is the declarative, ordered rule table the candidate
// scanner runs against document text. Lower tiers are checked first by
// the disambiguator; the last tier is the generic two-decimals fallback
// that matches almost anything numeric.
var amountRules = []dto.AmountRule{
	{
		Pattern: regexp.MustCompile(`(?:价税合计|价税总计)[^0-9]{0,20}([0-9][0-9,，]*(?:[.。．][0-9]+)?)`),
		Tag:     TagTaxInclusiveTotal,
		Tier:    0,
	},
	{
		Pattern: regexp.MustCompile(`[（(]?小写[）)]?[^0-9]{0,10}([0-9][0-9,，]*(?:[.。．][0-9]+)?)`),
		Tag:     TagAmountInWords,
		Tier:    0,
	},
	{
		Pattern: regexp.MustCompile(`(?:合\s*计|总\s*计)[^0-9]{0,20}([0-9][0-9,，]*(?:[.。．][0-9]+)?)`),
		Tag:     TagGrandTotal,
		Tier:    0,
	},
	{
		Pattern: regexp.MustCompile(`金额[:：]?\s*[¥￥]?\s*([0-9][0-9,，]*(?:[.。．][0-9]+)?)`),
		Tag:     TagLabeledAmount,
		Tier:    1,
	},
	{
		Pattern: regexp.MustCompile(`[¥￥]\s*([0-9][0-9,，]*(?:\.[0-9]+)?)`),
		Tag:     TagCurrencyGlyph,
		Tier:    2,
	},
	{
		Pattern: regexp.MustCompile(`\b([0-9]+\.[0-9]{2})\b`),
		Tag:     TagGenericDecimal,
		Tier:    3,
	},
}

// AmountRules returns the full tiered rule table in scan order.
func AmountRules() []dto.AmountRule {
	return amountRules
}

var priorityTags = map[string]bool{
	TagTaxInclusiveTotal: true,
	TagAmountInWords:     true,
	TagGrandTotal:        true,
}

// IsPriorityTag reports whether tag belongs to the priority tier of
// grand-total phrasings.
func IsPriorityTag(tag string) bool {
	return priorityTags[tag]
}
