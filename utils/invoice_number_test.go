package utils

import (
	"strings"
	"testing"

	"github.com/invoicetools/invoice-renamer/dto"
	"github.com/stretchr/testify/assert"
)

func TestResolveInvoiceNumberLongestTierFirst(t *testing.T) {
	// A 20-digit run embeds plenty of 8-digit substrings; the full run
	// must win
	text := "发票号码 24312000000012345678 开票日期 2024年01月01日"

	assert.Equal(t, "24312000000012345678", ResolveInvoiceNumber(text))
}

func TestResolveInvoiceNumberTiers(t *testing.T) {
	assert.Equal(t, "1234567890", ResolveInvoiceNumber("代码 1234567890"))
	assert.Equal(t, "87654321", ResolveInvoiceNumber("号码 87654321"))
	assert.Equal(t, "", ResolveInvoiceNumber("无有效号码 123456"))
}

func TestResolveInvoiceNumberFirstMatchWins(t *testing.T) {
	text := "87654321 12345678"
	assert.Equal(t, "87654321", ResolveInvoiceNumber(text))
}

func TestResolveInvoiceNumberIdempotent(t *testing.T) {
	text := "发票号码 87654321 金额 358.00"

	first := ResolveInvoiceNumber(text)
	doubled := ResolveInvoiceNumber(text + " " + text)
	assert.Equal(t, first, doubled)
}

func TestSyntheticInvoiceNumber(t *testing.T) {
	id := SyntheticInvoiceNumber(dto.SyntheticPrefixPDF)

	assert.True(t, strings.HasPrefix(id, "PDF"))
	assert.Len(t, id, len("PDF")+14) // second-resolution timestamp
}

func TestAmountHintFromFilename(t *testing.T) {
	d, ok := AmountHintFromFilename("[¥99.99]12345678.pdf")
	assert.True(t, ok)
	assert.Equal(t, "99.99", FormatAmount(d))

	d, ok = AmountHintFromFilename("[￥358.00]发票.ofd")
	assert.True(t, ok)
	assert.Equal(t, "358.00", FormatAmount(d))

	_, ok = AmountHintFromFilename("invoice_12345678.pdf")
	assert.False(t, ok)
}

func TestBareAmountFromFilename(t *testing.T) {
	d, ok := BareAmountFromFilename("餐饮发票358.00.pdf")
	assert.True(t, ok)
	assert.Equal(t, "358.00", FormatAmount(d))

	_, ok = BareAmountFromFilename("invoice.pdf")
	assert.False(t, ok)
}
