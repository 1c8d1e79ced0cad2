package smsparse

import (
	"regexp"
	"strings"
)

// vendorPatterns are contextual phrase patterns tried in order; the first
// capture wins. No normalization is applied beyond trimming whitespace.
var vendorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:at|to|from)\s+([A-Z][A-Za-z0-9&.'\-]+(?:\s+[A-Z][A-Za-z0-9&.'\-]*)*)`),
	regexp.MustCompile(`(?i)merchant\s*:\s*([A-Za-z0-9&.'\- ]{2,40})`),
	regexp.MustCompile(`(?i)(?:paid|payment)\s+to\s+([A-Za-z0-9&.'\- ]{2,40})`),
}

// ExtractVendor finds a merchant name in the message text. Returns false
// when no pattern matches.
func ExtractVendor(text string) (string, bool) {
	for _, re := range vendorPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		vendor := strings.TrimSpace(m[1])
		if vendor == "" {
			continue
		}
		return vendor, true
	}
	return "", false
}
