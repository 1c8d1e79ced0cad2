// Package smsparse implements the rule-based SMS transaction extraction
// pipeline: classify a message, pull out the amount and vendor, map a
// category, and score the result's completeness.
package smsparse

import (
	"fmt"

	"github.com/amitksingh0880/spend-wise-sub000/internal/model"
)

// maxDescriptionLen bounds the description copied from the message body.
const maxDescriptionLen = 100

// Parser turns raw SMS records into expense candidates. Each call is pure
// given its input; the parser holds no mutable state and is safe for
// concurrent use.
type Parser struct{}

// NewParser creates a new SMS parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse runs the full pipeline on one message. It returns (nil, nil) when
// the message is not a transaction or carries no parsable amount; those
// are expected negative outcomes, not failures. An error is returned only
// for a malformed record that should never have reached the parser.
func (p *Parser) Parse(msg model.RawMessage) (*model.ExtractedExpense, error) {
	if err := msg.Validate(); err != nil {
		return nil, fmt.Errorf("cannot parse message: %w", err)
	}

	if !IsTransaction(msg.Body) {
		return nil, nil
	}

	amount, ok := ExtractAmount(msg.Body)
	if !ok {
		// Amount is mandatory; a transaction keyword alone is not enough.
		return nil, nil
	}

	vendor, _ := ExtractVendor(msg.Body)
	txType := DetectType(msg.Body)
	category := Categorize(vendor, msg.Body)
	confidence := Score(amount, vendor, category, true)

	expense := &model.ExtractedExpense{
		Amount:      amount,
		Vendor:      vendor,
		Category:    category,
		Type:        txType,
		Description: truncate(msg.Body, maxDescriptionLen),
		Confidence:  confidence,
		RawMessage:  msg.Body,
	}
	if expense.Vendor == "" {
		expense.Vendor = model.UnknownVendor
	}
	return expense, nil
}

// truncate bounds s to n runes, appending an ellipsis marker when cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
