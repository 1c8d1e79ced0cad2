package smsparse

import (
	"regexp"
	"strconv"
	"strings"
)

// amountPatterns are tried in order; the first pattern that matches wins,
// even when several amounts appear in a message. Each pattern captures the
// numeric portion, which may carry comma thousands separators.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:rs\.?|inr|₹)\s*([\d,]+(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)([\d,]+(?:\.\d{2})?)\s*(?:rs\.?|inr|₹)`),
	regexp.MustCompile(`\$\s*([\d,]+(?:\.\d{2})?)`),
	regexp.MustCompile(`([\d,]+(?:\.\d{2})?)\s*\$`),
	regexp.MustCompile(`(?i)([\d,]+(?:\.\d{2})?)\s*(?:usd|eur|gbp)\b`),
}

// ExtractAmount finds the first monetary amount in the message text.
// Comma separators are stripped before parsing. Returns false when no
// pattern matches, or when the first match fails to parse to a positive
// number.
func ExtractAmount(text string) (float64, bool) {
	for _, re := range amountPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		raw := strings.ReplaceAll(m[1], ",", "")
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil || amount <= 0 {
			return 0, false
		}
		return amount, true
	}
	return 0, false
}
