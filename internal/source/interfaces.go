// Package source provides access to SMS message stores.
package source

import (
	"context"
	"time"

	"github.com/amitksingh0880/spend-wise-sub000/internal/model"
)

// ListOptions bounds a message query.
type ListOptions struct {
	MinDate   *time.Time
	MaxDate   *time.Time
	Box       model.MessageBox
	MaxCount  int
	IndexFrom int
}

// MessageSource lists raw SMS records in source order. Implementations
// reject malformed records at this boundary so the parser only ever sees
// validated input.
type MessageSource interface {
	ListMessages(ctx context.Context, opts ListOptions) ([]model.RawMessage, error)
}

// PermissionGate guards access to the underlying message store.
type PermissionGate interface {
	CheckPermission(ctx context.Context) (bool, error)
	RequestPermission(ctx context.Context) (bool, error)
}
