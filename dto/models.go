package dto

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// Synthetic invoice number prefixes, one per extraction source
const (
	SyntheticPrefixPDF = "PDF"
	SyntheticPrefixOFD = "OFD"
	SyntheticPrefixINV = "INV"
)

// ExtractionResult is the outcome of one extraction attempt. Both fields
// are optional: the empty string means "not found", which is a valid
// terminal state rather than an error.
type ExtractionResult struct {
	InvoiceNumber string `json:"invoice_number,omitempty"`
	Amount        string `json:"amount,omitempty"` // always 2 decimal places, e.g. "358.00"
}

// Complete reports whether both fields were recovered.
func (r ExtractionResult) Complete() bool {
	return r.InvoiceNumber != "" && r.Amount != ""
}

// Merge fills the empty fields of r from a lower-priority result. A field
// already set by a higher-priority source is never overridden.
func (r ExtractionResult) Merge(lower ExtractionResult) ExtractionResult {
	if r.InvoiceNumber == "" {
		r.InvoiceNumber = lower.InvoiceNumber
	}
	if r.Amount == "" {
		r.Amount = lower.Amount
	}
	return r
}

// AmountCandidate is a provisional amount produced by the candidate
// scanner and consumed by the disambiguator. Never persisted.
type AmountCandidate struct {
	Value   decimal.Decimal
	RuleTag string
	Context string
}

// AmountRule is one entry of the static, ordered amount rule table.
// Tier 0 holds domain-specific phrasings (tax-inclusive total etc.);
// the highest tier is the generic two-decimals fallback.
type AmountRule struct {
	Pattern *regexp.Regexp
	Tag     string
	Tier    int
}

// RenamePlan maps one processed file to its target path. Created per
// file, consumed once by the rename operation, then discarded.
type RenamePlan struct {
	OriginalPath      string `json:"original_path"`
	TargetPath        string `json:"target_path"`
	CollisionResolved bool   `json:"collision_resolved"`
}
