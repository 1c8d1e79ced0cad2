// Package importer implements the batch SMS import workflow: scan a
// bounded window of messages, parse each into an expense candidate,
// filter by confidence, and persist what survives. Per-item faults are
// accumulated, never propagated; nothing escapes the Import boundary as
// an error.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/amitksingh0880/spend-wise-sub000/internal/common"
	"github.com/amitksingh0880/spend-wise-sub000/internal/model"
	"github.com/amitksingh0880/spend-wise-sub000/internal/service"
	"github.com/amitksingh0880/spend-wise-sub000/internal/smsparse"
	"github.com/amitksingh0880/spend-wise-sub000/internal/source"
)

// ConfidenceThreshold is the minimum score a candidate must exceed to be
// eligible for import. Candidates at or below it are discarded before the
// caller's filter runs.
const ConfidenceThreshold = 0.3

// ImportTag marks transactions created by this importer.
const ImportTag = "sms-import"

// DefaultMaxCount bounds a batch when the caller doesn't.
const DefaultMaxCount = 100

// Options configures one batch run. Window precedence: explicit
// MinDate/MaxDate win over OnlyToday, which wins over DaysBack.
type Options struct {
	MinDate   *time.Time
	MaxDate   *time.Time
	Filter    func(model.ExtractedExpense) bool
	OnMessage func(processed, total int)
	MaxCount  int
	DaysBack  int
	OnlyToday bool
	AutoSave  bool
}

// DefaultOptions returns the default batch configuration: scan up to
// DefaultMaxCount messages with no window bound and persist accepted
// candidates.
func DefaultOptions() Options {
	return Options{
		MaxCount: DefaultMaxCount,
		AutoSave: true,
	}
}

// Result aggregates one batch run. Success is false only when the batch
// could not even begin; per-item faults land in Errors without flipping
// it. TotalProcessed counts every raw message considered, independent of
// how many were accepted.
type Result struct {
	Expenses       []model.ExtractedExpense
	Errors         []string
	TotalProcessed int
	Success        bool
}

// Importer runs batch imports against a message source and a transaction
// store.
type Importer struct {
	src    source.MessageSource
	gate   source.PermissionGate
	store  service.Storage
	parser *smsparse.Parser
	now    func() time.Time
}

// New creates an importer. store may be nil when persistence is never
// requested (AutoSave false on every run).
func New(src source.MessageSource, gate source.PermissionGate, store service.Storage) *Importer {
	return &Importer{
		src:    src,
		gate:   gate,
		store:  store,
		parser: smsparse.NewParser(),
		now:    time.Now,
	}
}

// Import scans a window of messages and returns the aggregate outcome.
// It never returns an error: fatal conditions (permission denied, source
// unavailable) produce Success=false with a descriptive entry in Errors,
// and per-message faults accumulate without aborting the batch.
func (i *Importer) Import(ctx context.Context, opts Options) *Result {
	result := &Result{}

	granted, err := i.checkPermission(ctx)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("failed to access message source: %v", err))
		return result
	}
	if !granted {
		result.Errors = append(result.Errors, common.ErrPermissionDenied.Error())
		return result
	}

	maxCount := opts.MaxCount
	if maxCount <= 0 {
		maxCount = DefaultMaxCount
	}
	minDate, maxDate := i.resolveWindow(opts)

	messages, err := i.src.ListMessages(ctx, source.ListOptions{
		Box:      model.BoxInbox,
		MaxCount: maxCount,
		MinDate:  minDate,
		MaxDate:  maxDate,
	})
	if err != nil {
		if common.IsFatalSourceError(err) {
			result.Errors = append(result.Errors, err.Error())
		} else {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to read messages: %v", err))
		}
		return result
	}

	result.Success = true
	result.TotalProcessed = len(messages)

	for idx, msg := range messages {
		if opts.OnMessage != nil {
			opts.OnMessage(idx+1, len(messages))
		}

		candidate, parseErr := i.parseMessage(msg)
		if parseErr != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("message %s: %v", msg.ID, parseErr))
			continue
		}
		if candidate == nil {
			// Not a transaction, or no parsable amount. Normal outcome.
			continue
		}
		if !aboveThreshold(candidate.Confidence) {
			slog.Debug("Discarding low-confidence candidate",
				"message_id", msg.ID,
				"confidence", candidate.Confidence)
			continue
		}
		if opts.Filter != nil && !opts.Filter(*candidate) {
			continue
		}

		result.Expenses = append(result.Expenses, *candidate)

		if opts.AutoSave {
			if saveErr := i.persist(ctx, msg, candidate); saveErr != nil {
				// The candidate stays in Expenses even though it wasn't
				// durably saved; callers must treat Errors as authoritative
				// for persistence status.
				common.LogError(saveErr, "Failed to save expense", common.Fields{
					"message_id": msg.ID,
					"vendor":     candidate.Vendor,
				})
				result.Errors = append(result.Errors,
					fmt.Sprintf("failed to save expense from message %s: %v", msg.ID, saveErr))
			}
		}
	}

	slog.Debug("Batch import finished",
		"total_processed", result.TotalProcessed,
		"accepted", len(result.Expenses),
		"errors", len(result.Errors))
	return result
}

// aboveThreshold reports whether a candidate clears the confidence bar.
// The comparison is strict: a score exactly at the threshold is
// discarded.
func aboveThreshold(confidence float64) bool {
	return confidence > ConfidenceThreshold
}

// checkPermission consults the gate, attempting a request when the
// initial check comes back negative.
func (i *Importer) checkPermission(ctx context.Context) (bool, error) {
	if i.gate == nil {
		return true, nil
	}
	granted, err := i.gate.CheckPermission(ctx)
	if err != nil {
		return false, err
	}
	if granted {
		return true, nil
	}
	return i.gate.RequestPermission(ctx)
}

// resolveWindow turns the options into absolute bounds. Explicit dates
// take precedence over OnlyToday, which takes precedence over DaysBack.
func (i *Importer) resolveWindow(opts Options) (minDate, maxDate *time.Time) {
	now := i.now()
	switch {
	case opts.MinDate != nil || opts.MaxDate != nil:
		return opts.MinDate, opts.MaxDate
	case opts.OnlyToday:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return &start, &now
	case opts.DaysBack > 0:
		start := now.AddDate(0, 0, -opts.DaysBack)
		return &start, &now
	}
	return nil, nil
}

// parseMessage runs the parser on one message, converting a panic into an
// error so a single bad record cannot unwind the batch loop.
func (i *Importer) parseMessage(msg model.RawMessage) (candidate *model.ExtractedExpense, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse panic: %v", r)
		}
	}()
	return i.parser.Parse(msg)
}

// persist writes one accepted candidate to the transaction store, tagged
// with the import marker and its confidence percentage.
func (i *Importer) persist(ctx context.Context, msg model.RawMessage, candidate *model.ExtractedExpense) error {
	if i.store == nil {
		return fmt.Errorf("no transaction store configured")
	}

	txn := &model.Transaction{
		Date:        msg.Time(),
		Vendor:      candidate.Vendor,
		Category:    candidate.Category,
		Type:        candidate.Type,
		Description: candidate.Description,
		Amount:      candidate.Amount,
		Tags: []string{
			ImportTag,
			fmt.Sprintf("confidence:%d%%", int(math.Round(candidate.Confidence*100))),
		},
	}

	if _, err := i.store.CreateTransaction(ctx, txn); err != nil {
		return err
	}
	return nil
}
