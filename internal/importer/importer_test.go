package importer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amitksingh0880/spend-wise-sub000/internal/common"
	"github.com/amitksingh0880/spend-wise-sub000/internal/model"
	"github.com/amitksingh0880/spend-wise-sub000/internal/service"
	"github.com/amitksingh0880/spend-wise-sub000/internal/source"
)

// mockSource serves a fixed message slice or a fixed error.
type mockSource struct {
	err      error
	messages []model.RawMessage
	lastOpts source.ListOptions
}

func (m *mockSource) ListMessages(_ context.Context, opts source.ListOptions) ([]model.RawMessage, error) {
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	return m.messages, nil
}

// mockGate answers permission checks with canned values.
type mockGate struct {
	checkErr     error
	checkGranted bool
	requestOK    bool
}

func (m *mockGate) CheckPermission(_ context.Context) (bool, error) {
	return m.checkGranted, m.checkErr
}

func (m *mockGate) RequestPermission(_ context.Context) (bool, error) {
	return m.requestOK, nil
}

// mockStore records created transactions and can fail on chosen vendors.
type mockStore struct {
	failVendor string
	created    []model.Transaction
}

func (m *mockStore) Migrate(_ context.Context) error { return nil }

func (m *mockStore) CreateTransaction(_ context.Context, txn *model.Transaction) (*model.Transaction, error) {
	if m.failVendor != "" && txn.Vendor == m.failVendor {
		return nil, errors.New("disk full")
	}
	m.created = append(m.created, *txn)
	return txn, nil
}

func (m *mockStore) GetTransactionByID(_ context.Context, _ string) (*model.Transaction, error) {
	return nil, common.ErrNotFound
}

func (m *mockStore) GetTransactions(_ context.Context, _ service.TransactionFilter) ([]model.Transaction, error) {
	return nil, nil
}

func (m *mockStore) GetCategories(_ context.Context) ([]model.Category, error) {
	return nil, nil
}

func (m *mockStore) Close() error { return nil }

var _ service.Storage = (*mockStore)(nil)

func message(id, body string) model.RawMessage {
	return model.RawMessage{
		ID:      id,
		Address: "VM-SBIINB",
		Body:    body,
		Date:    1705316400000,
		Box:     model.BoxInbox,
	}
}

func newTestImporter(src source.MessageSource, gate source.PermissionGate, store service.Storage) *Importer {
	imp := New(src, gate, store)
	imp.now = func() time.Time {
		return time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	}
	return imp
}

func TestImportHappyPath(t *testing.T) {
	src := &mockSource{messages: []model.RawMessage{
		message("m1", "Rs.750.00 debited for UPI payment to SWIGGY on 15-Jan-24"),
		message("m2", "Rs.500.00 debited from A/c **1234 via card at Starbucks Coffee"),
		message("m3", "Mega sale! Up to 70% off this weekend"),
	}}
	store := &mockStore{}
	imp := newTestImporter(src, &mockGate{checkGranted: true}, store)

	result := imp.Import(context.Background(), DefaultOptions())

	assert.True(t, result.Success)
	assert.Equal(t, 3, result.TotalProcessed)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Expenses, 2)
	assert.Len(t, store.created, 2)

	saved := store.created[0]
	assert.Contains(t, saved.Tags, ImportTag)
	assert.Contains(t, saved.Tags, "confidence:100%")
	assert.Equal(t, time.UnixMilli(1705316400000), saved.Date)
}

func TestImportBatchOfFive(t *testing.T) {
	// 3 genuine transactions, 1 non-transactional chatter, 1 persistence
	// fault: the batch completes with one error and all five counted.
	src := &mockSource{messages: []model.RawMessage{
		message("m1", "Rs.750.00 debited for UPI payment to SWIGGY"),
		message("m2", "Rs.2,500.00 credited to your account. Ref salary Jan"),
		message("m3", "Rs.320.00 paid to Apollo Pharmacy via UPI"),
		message("m4", "Reminder: club meetup at 6pm tomorrow"),
		message("m5", "Rs.100.00 debited via UPI"),
	}}
	store := &mockStore{failVendor: "Apollo Pharmacy"}
	imp := newTestImporter(src, &mockGate{checkGranted: true}, store)

	result := imp.Import(context.Background(), DefaultOptions())

	assert.True(t, result.Success)
	assert.Equal(t, 5, result.TotalProcessed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "failed to save")

	// The failed-persist candidate stays in Expenses; only its save is
	// reported in Errors.
	assert.GreaterOrEqual(t, len(result.Expenses), 2)
	assert.LessOrEqual(t, len(result.Expenses), 4)
	assert.Len(t, store.created, len(result.Expenses)-1)
}

func TestImportFetchFailureIsFatal(t *testing.T) {
	tests := []struct {
		err      error
		name     string
		wantText string
	}{
		{
			name:     "source unavailable surfaces its own message",
			err:      fmt.Errorf("%w: file missing", common.ErrSourceUnavailable),
			wantText: "message source unavailable",
		},
		{
			name:     "permission denied surfaces its own message",
			err:      fmt.Errorf("%w: backup file", common.ErrPermissionDenied),
			wantText: "sms permission denied",
		},
		{
			name:     "unexpected fetch error is prefixed",
			err:      errors.New("read timeout"),
			wantText: "failed to read messages",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &mockSource{err: tt.err}
			imp := newTestImporter(src, &mockGate{checkGranted: true}, &mockStore{})

			result := imp.Import(context.Background(), DefaultOptions())

			assert.False(t, result.Success)
			assert.Empty(t, result.Expenses)
			assert.Equal(t, 0, result.TotalProcessed)
			require.Len(t, result.Errors, 1)
			assert.Contains(t, result.Errors[0], tt.wantText)
		})
	}
}

func TestImportPermissionDeniedIsFatal(t *testing.T) {
	imp := newTestImporter(&mockSource{}, &mockGate{checkGranted: false, requestOK: false}, &mockStore{})

	result := imp.Import(context.Background(), DefaultOptions())

	assert.False(t, result.Success)
	assert.Empty(t, result.Expenses)
	assert.Equal(t, 0, result.TotalProcessed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "permission denied")
}

func TestImportPermissionGrantedOnRequest(t *testing.T) {
	src := &mockSource{messages: []model.RawMessage{
		message("m1", "Rs.750.00 debited for UPI payment to SWIGGY"),
	}}
	imp := newTestImporter(src, &mockGate{checkGranted: false, requestOK: true}, &mockStore{})

	result := imp.Import(context.Background(), DefaultOptions())
	assert.True(t, result.Success)
	assert.Len(t, result.Expenses, 1)
}

func TestImportPerMessageFaultDoesNotAbortBatch(t *testing.T) {
	// The malformed record fails parsing; the remaining messages are
	// still processed.
	bad := model.RawMessage{ID: "bad", Address: "VM-SBIINB", Date: 1}
	src := &mockSource{messages: []model.RawMessage{
		message("m1", "Rs.750.00 debited for UPI payment to SWIGGY"),
		bad,
		message("m3", "Rs.2,500.00 credited to your account salary"),
	}}
	imp := newTestImporter(src, &mockGate{checkGranted: true}, &mockStore{})

	result := imp.Import(context.Background(), DefaultOptions())

	assert.True(t, result.Success)
	assert.Equal(t, 3, result.TotalProcessed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "bad")
	assert.Len(t, result.Expenses, 2)
}

func TestAboveThreshold(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		want       bool
	}{
		{"zero score", 0.0, false},
		{"just below threshold", 0.29, false},
		{"exactly at threshold is discarded", ConfidenceThreshold, false},
		{"just above threshold", 0.31, true},
		{"amount-only score", 0.5, true},
		{"full score", 1.0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, aboveThreshold(tt.confidence))
		})
	}
}

func TestImportConfidenceThreshold(t *testing.T) {
	// Amount-only extraction scores 0.5, above the 0.3 threshold; every
	// imported candidate must clear it.
	src := &mockSource{messages: []model.RawMessage{
		message("m1", "Rs.100.00 debited via UPI"),
	}}
	imp := newTestImporter(src, &mockGate{checkGranted: true}, &mockStore{})

	result := imp.Import(context.Background(), DefaultOptions())
	require.Len(t, result.Expenses, 1)
	assert.Greater(t, result.Expenses[0].Confidence, ConfidenceThreshold)
}

func TestImportTypeFilter(t *testing.T) {
	src := &mockSource{messages: []model.RawMessage{
		message("m1", "Rs.750.00 debited for UPI payment to SWIGGY"),
		message("m2", "Rs.2,500.00 credited to your account salary"),
	}}
	imp := newTestImporter(src, &mockGate{checkGranted: true}, &mockStore{})

	opts := DefaultOptions()
	opts.Filter = func(e model.ExtractedExpense) bool { return e.Type == model.TypeIncome }

	result := imp.Import(context.Background(), opts)
	require.Len(t, result.Expenses, 1)
	assert.Equal(t, model.TypeIncome, result.Expenses[0].Type)
	// Filtered-out candidates are not errors.
	assert.Empty(t, result.Errors)
	assert.Equal(t, 2, result.TotalProcessed)
}

func TestImportDryRunSkipsPersistence(t *testing.T) {
	src := &mockSource{messages: []model.RawMessage{
		message("m1", "Rs.750.00 debited for UPI payment to SWIGGY"),
	}}
	store := &mockStore{}
	imp := newTestImporter(src, &mockGate{checkGranted: true}, store)

	opts := DefaultOptions()
	opts.AutoSave = false

	result := imp.Import(context.Background(), opts)
	assert.Len(t, result.Expenses, 1)
	assert.Empty(t, store.created)
	assert.Empty(t, result.Errors)
}

func TestImportProgressCallback(t *testing.T) {
	src := &mockSource{messages: []model.RawMessage{
		message("m1", "Rs.100.00 debited via UPI"),
		message("m2", "Rs.200.00 debited via UPI"),
	}}
	imp := newTestImporter(src, &mockGate{checkGranted: true}, &mockStore{})

	var calls []int
	opts := DefaultOptions()
	opts.OnMessage = func(processed, total int) {
		assert.Equal(t, 2, total)
		calls = append(calls, processed)
	}

	imp.Import(context.Background(), opts)
	assert.Equal(t, []int{1, 2}, calls)
}

func TestResolveWindow(t *testing.T) {
	imp := newTestImporter(&mockSource{}, &mockGate{checkGranted: true}, &mockStore{})
	now := imp.now()
	explicitMin := now.AddDate(0, -1, 0)
	explicitMax := now.AddDate(0, 0, -1)

	tests := []struct {
		wantMin *time.Time
		wantMax *time.Time
		name    string
		opts    Options
	}{
		{
			name: "no bounds",
			opts: Options{},
		},
		{
			name:    "days back",
			opts:    Options{DaysBack: 7},
			wantMin: timePtr(now.AddDate(0, 0, -7)),
			wantMax: &now,
		},
		{
			name:    "only today",
			opts:    Options{OnlyToday: true},
			wantMin: timePtr(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)),
			wantMax: &now,
		},
		{
			name:    "only today beats days back",
			opts:    Options{OnlyToday: true, DaysBack: 30},
			wantMin: timePtr(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)),
			wantMax: &now,
		},
		{
			name:    "explicit dates beat everything",
			opts:    Options{MinDate: &explicitMin, MaxDate: &explicitMax, OnlyToday: true, DaysBack: 30},
			wantMin: &explicitMin,
			wantMax: &explicitMax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotMin, gotMax := imp.resolveWindow(tt.opts)
			assert.Equal(t, tt.wantMin, gotMin)
			assert.Equal(t, tt.wantMax, gotMax)
		})
	}
}

func TestImportPassesWindowToSource(t *testing.T) {
	src := &mockSource{}
	imp := newTestImporter(src, &mockGate{checkGranted: true}, &mockStore{})

	opts := DefaultOptions()
	opts.DaysBack = 7
	opts.MaxCount = 25

	imp.Import(context.Background(), opts)

	assert.Equal(t, model.BoxInbox, src.lastOpts.Box)
	assert.Equal(t, 25, src.lastOpts.MaxCount)
	require.NotNil(t, src.lastOpts.MinDate)
	assert.Equal(t, imp.now().AddDate(0, 0, -7), *src.lastOpts.MinDate)
}

func timePtr(t time.Time) *time.Time { return &t }
