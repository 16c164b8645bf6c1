package utils

import (
	"regexp"
	"strings"

	"github.com/invoicetools/invoice-renamer/dto"
	"github.com/shopspring/decimal"
)

// Label-anchored patterns for the structured key-value QR layout
var (
	qrNumberPattern = regexp.MustCompile(`发票号码[:：]?\s*(\d{8,20})`)
	qrCodePattern   = regexp.MustCompile(`发票代码[:：]?\s*(\d{10,12})`)
	qrAmountPattern = regexp.MustCompile(`金额[:：]?\s*[¥￥]?\s*([0-9][0-9,，]*(?:\.[0-9]+)?)`)
)

// Shapes of the positional CSV layout: code at index 2, number at
// index 3, amount at index 4
var (
	csvCodeShape   = regexp.MustCompile(`^\d{10,12}$`)
	csvNumberShape = regexp.MustCompile(`^(?:\d{8}|\d{20})$`)
)

// ExtractFromQRPayload parses one decoded QR text string against the
// known invoice payload layouts. Three mutually exclusive strategies are
// attempted in order: labeled key-value fields, positional CSV, and a
// generic scan of the whole payload. Malformed or truncated payloads
// degrade to empty fields; this never fails.
func ExtractFromQRPayload(payload string) dto.ExtractionResult {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return dto.ExtractionResult{}
	}

	if result, ok := extractLabeled(payload); ok {
		return result
	}
	if result, ok := extractPositionalCSV(payload); ok {
		return result
	}
	return extractGeneric(payload)
}

// extractLabeled handles payloads carrying the 发票号码 / 发票代码 field
// labels. An 8-digit number alongside a 10-12 digit code is the old
// code+number invoice identity; the two are concatenated.
func extractLabeled(payload string) (dto.ExtractionResult, bool) {
	if !strings.Contains(payload, "发票号码") && !strings.Contains(payload, "发票代码") {
		return dto.ExtractionResult{}, false
	}

	var number string
	if m := qrNumberPattern.FindStringSubmatch(payload); m != nil {
		number = m[1]
	}
	if number == "" {
		return dto.ExtractionResult{}, false
	}

	if len(number) == 8 {
		if m := qrCodePattern.FindStringSubmatch(payload); m != nil {
			number = m[1] + number
		}
	}

	result := dto.ExtractionResult{InvoiceNumber: number}
	if m := qrAmountPattern.FindStringSubmatch(payload); m != nil {
		if d, ok := NormalizeAmount(m[1]); ok {
			result.Amount = FormatAmount(d)
		}
	}
	if result.Amount == "" {
		result.Amount = maxValidDecimal(payload)
	}
	return result, true
}

// extractPositionalCSV handles the comma-delimited layout where the
// invoice code, number and amount sit at fixed field positions.
func extractPositionalCSV(payload string) (dto.ExtractionResult, bool) {
	fields := strings.Split(payload, ",")
	if len(fields) < 5 {
		return dto.ExtractionResult{}, false
	}

	code := strings.TrimSpace(fields[2])
	number := strings.TrimSpace(fields[3])
	if !csvNumberShape.MatchString(number) {
		return dto.ExtractionResult{}, false
	}
	if len(number) == 8 && csvCodeShape.MatchString(code) {
		number = code + number
	}

	result := dto.ExtractionResult{InvoiceNumber: number}
	if d, ok := NormalizeAmount(fields[4]); ok {
		result.Amount = FormatAmount(d)
	}
	if result.Amount == "" {
		result.Amount = maxValidDecimal(payload)
	}
	return result, true
}

// extractGeneric scans the whole payload with the invoice number
// resolver and takes the maximum valid decimal as the amount.
func extractGeneric(payload string) dto.ExtractionResult {
	return dto.ExtractionResult{
		InvoiceNumber: ResolveInvoiceNumber(payload),
		Amount:        maxValidDecimal(payload),
	}
}

// maxValidDecimal returns the largest substring of payload that
// normalizes to a valid amount, formatted to 2dp, or "".
func maxValidDecimal(payload string) string {
	var best decimal.Decimal
	found := false
	for _, m := range bareDecimalPattern.FindAllString(payload, -1) {
		d, ok := NormalizeAmount(m)
		if !ok {
			continue
		}
		if !found || d.GreaterThan(best) {
			best = d
			found = true
		}
	}
	if !found {
		return ""
	}
	return FormatAmount(best)
}
