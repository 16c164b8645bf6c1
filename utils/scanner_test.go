package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanAmountsCollectsAllMatches(t *testing.T) {
	text := "项目A ¥10.00 项目B ¥20.00 价税合计（小写）¥30.00"

	candidates := ScanAmounts(text, AmountRules())

	var values []string
	for _, c := range candidates {
		values = append(values, FormatAmount(c.Value))
	}
	assert.Contains(t, values, "10.00")
	assert.Contains(t, values, "20.00")
	assert.Contains(t, values, "30.00")
}

func TestScanAmountsPreservesTierOrder(t *testing.T) {
	text := "金额: 50.00 价税合计 ¥128.50"

	candidates := ScanAmounts(text, AmountRules())
	assert.NotEmpty(t, candidates)

	// Tier-0 rules run first, so the tax-inclusive total leads the list
	assert.Equal(t, TagTaxInclusiveTotal, candidates[0].RuleTag)
	assert.Equal(t, "128.50", FormatAmount(candidates[0].Value))
}

func TestScanAmountsDropsMalformedCandidates(t *testing.T) {
	// The serial-like run exceeds the valid amount bound and must be
	// dropped silently rather than reported
	text := "编号 20240101150405.00 合计 ¥88.00"

	candidates := ScanAmounts(text, AmountRules())
	for _, c := range candidates {
		assert.Equal(t, "88.00", FormatAmount(c.Value))
	}
}

func TestScanAmountsContextWindow(t *testing.T) {
	text := "价税合计 ¥128.50 第3页"

	candidates := ScanAmounts(text, AmountRules())
	assert.NotEmpty(t, candidates)
	assert.Contains(t, candidates[0].Context, "128.50")
	assert.Contains(t, candidates[0].Context, "价税合计")
}

func TestScanAmountsEmptyText(t *testing.T) {
	assert.Empty(t, ScanAmounts("", AmountRules()))
}
