package utils

import (
	"testing"

	"github.com/invoicetools/invoice-renamer/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func candidate(value string, tag string) dto.AmountCandidate {
	return dto.AmountCandidate{
		Value:   decimal.RequireFromString(value),
		RuleTag: tag,
	}
}

func TestSelectAmountPrefersFilenameAgreement(t *testing.T) {
	hint := decimal.RequireFromString("99.99")
	candidates := []dto.AmountCandidate{
		candidate("199.99", TagTaxInclusiveTotal),
		candidate("99.99", TagGenericDecimal),
	}

	selected, ok := SelectAmount(candidates, &hint)
	assert.True(t, ok)
	assert.Equal(t, "99.99", FormatAmount(selected))
}

func TestSelectAmountPrefersPriorityTag(t *testing.T) {
	candidates := []dto.AmountCandidate{
		candidate("128.50", TagTaxInclusiveTotal),
		candidate("500.00", TagGenericDecimal),
	}

	selected, ok := SelectAmount(candidates, nil)
	assert.True(t, ok)
	assert.Equal(t, "128.50", FormatAmount(selected))
}

func TestSelectAmountOutlierMax(t *testing.T) {
	candidates := []dto.AmountCandidate{
		candidate("10.00", TagGenericDecimal),
		candidate("10.50", TagGenericDecimal),
		candidate("500.00", TagGenericDecimal),
	}

	selected, ok := SelectAmount(candidates, nil)
	assert.True(t, ok)
	assert.Equal(t, "500.00", FormatAmount(selected))
}

func TestSelectAmountFallbackMaximum(t *testing.T) {
	// 14.00 does not dominate 10.00 by more than 50%, so no outlier:
	// the plain maximum wins
	candidates := []dto.AmountCandidate{
		candidate("10.00", TagGenericDecimal),
		candidate("14.00", TagGenericDecimal),
	}

	selected, ok := SelectAmount(candidates, nil)
	assert.True(t, ok)
	assert.Equal(t, "14.00", FormatAmount(selected))
}

func TestSelectAmountEmpty(t *testing.T) {
	_, ok := SelectAmount(nil, nil)
	assert.False(t, ok)
}

func TestSelectAmountAgainstPageNumbers(t *testing.T) {
	// Page markers like 第3页共5页 produce no valid candidates; the
	// tagged grand total must win
	text := "价税合计 ¥128.50\n第3页共5页"

	candidates := ScanAmounts(text, AmountRules())
	selected, ok := SelectAmount(candidates, nil)
	assert.True(t, ok)
	assert.Equal(t, "128.50", FormatAmount(selected))
}

func TestSelectAmountSingleCandidate(t *testing.T) {
	candidates := []dto.AmountCandidate{candidate("42.00", TagGenericDecimal)}

	selected, ok := SelectAmount(candidates, nil)
	assert.True(t, ok)
	assert.Equal(t, "42.00", FormatAmount(selected))
}
