// Package model defines the core domain models used throughout the application.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// MessageBox identifies which folder a message was read from.
type MessageBox string

// Message box constants.
const (
	BoxInbox MessageBox = "inbox"
	BoxSent  MessageBox = "sent"
)

// ErrInvalidMessage indicates a raw message that failed boundary validation.
var ErrInvalidMessage = errors.New("invalid message")

// RawMessage is a single SMS record as delivered by a message source.
// It is immutable once read; the pipeline never mutates it.
type RawMessage struct {
	ID      string
	Address string
	Body    string
	Date    int64 // epoch milliseconds
	Box     MessageBox
}

// Time returns the message timestamp as a time.Time.
func (m RawMessage) Time() time.Time {
	return time.UnixMilli(m.Date)
}

// Validate checks that the record is well-formed enough to parse.
// Sources must reject malformed records at the boundary rather than
// letting them reach the parser.
func (m RawMessage) Validate() error {
	if strings.TrimSpace(m.Body) == "" {
		return fmt.Errorf("%w: empty body", ErrInvalidMessage)
	}
	if strings.TrimSpace(m.Address) == "" {
		return fmt.Errorf("%w: empty sender address", ErrInvalidMessage)
	}
	if m.Date <= 0 {
		return fmt.Errorf("%w: non-positive timestamp %d", ErrInvalidMessage, m.Date)
	}
	return nil
}
