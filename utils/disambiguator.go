package utils

import (
	"sort"

	"github.com/invoicetools/invoice-renamer/dto"
	"github.com/shopspring/decimal"
)

// outlierDominanceRatio triggers the outlier-max heuristic: a grand
// total line is typically far larger than incidental numbers such as
// item counts or dates, so a largest value exceeding the second largest
// by more than 50% is taken as the total. Inherited threshold, kept
// as-is for lack of a labeled corpus to retune against.
var outlierDominanceRatio = decimal.NewFromFloat(1.5)

// filenameHintTolerance is the absolute tolerance for matching a
// candidate against a bracketed filename amount hint.
var filenameHintTolerance = decimal.NewFromFloat(0.01)

// SelectAmount picks a single amount from the scanned candidates. The
// decision policy is applied in order; the first rule yielding a value
// wins:
//  1. a candidate agreeing with the filename hint within 0.01
//  2. the first candidate (in scan order) carrying a priority-tier tag
//  3. the outlier maximum, when the largest value dominates the rest
//  4. the plain maximum of all candidates
//
// The bool result is false only when candidates is empty.
func SelectAmount(candidates []dto.AmountCandidate, filenameHint *decimal.Decimal) (decimal.Decimal, bool) {
	if len(candidates) == 0 {
		return decimal.Decimal{}, false
	}

	// 1. Filename agreement
	if filenameHint != nil {
		for _, c := range candidates {
			if c.Value.Sub(*filenameHint).Abs().LessThanOrEqual(filenameHintTolerance) {
				return c.Value, true
			}
		}
	}

	// 2. High-priority tag match
	for _, c := range candidates {
		if IsPriorityTag(c.RuleTag) {
			return c.Value, true
		}
	}

	values := make([]decimal.Decimal, len(candidates))
	for i, c := range candidates {
		values[i] = c.Value
	}
	sort.Slice(values, func(i, j int) bool { return values[i].LessThan(values[j]) })

	// 3. Outlier-max heuristic
	if len(values) >= 2 {
		largest := values[len(values)-1]
		second := values[len(values)-2]
		if largest.GreaterThan(second.Mul(outlierDominanceRatio)) {
			return largest, true
		}
	}

	// 4. Fallback maximum
	return values[len(values)-1], true
}
