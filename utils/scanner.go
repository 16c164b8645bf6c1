package utils

import (
	"unicode/utf8"

	"github.com/invoicetools/invoice-renamer/dto"
)

// contextRunes is the number of characters captured on each side of a
// match for diagnostics and disambiguation.
const contextRunes = 20

// ScanAmounts runs every rule of the table against text and collects all
// non-overlapping matches as amount candidates, preserving rule order so
// the disambiguator can prefer earlier tiers deterministically. Raw
// matches that fail normalization are dropped silently; malformed
// numeric substrings are expected noise in extracted document text.
func ScanAmounts(text string, rules []dto.AmountRule) []dto.AmountCandidate {
	var candidates []dto.AmountCandidate

	for _, rule := range rules {
		matches := rule.Pattern.FindAllStringSubmatchIndex(text, -1)
		for _, m := range matches {
			start, end := m[0], m[1]
			raw := text[start:end]
			if len(m) >= 4 && m[2] >= 0 {
				raw = text[m[2]:m[3]]
			}

			value, ok := NormalizeAmount(raw)
			if !ok {
				continue
			}

			candidates = append(candidates, dto.AmountCandidate{
				Value:   value,
				RuleTag: rule.Tag,
				Context: contextWindow(text, start, end),
			})
		}
	}

	return candidates
}

// contextWindow returns ±contextRunes characters around the [start, end)
// byte span, clipped to the text bounds without splitting runes.
func contextWindow(text string, start, end int) string {
	s := start
	for i := 0; i < contextRunes && s > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(text[:s])
		s -= size
	}
	e := end
	for i := 0; i < contextRunes && e < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[e:])
		e += size
	}
	return text[s:e]
}
