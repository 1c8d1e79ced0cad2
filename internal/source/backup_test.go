package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amitksingh0880/spend-wise-sub000/internal/common"
	"github.com/amitksingh0880/spend-wise-sub000/internal/model"
)

const sampleBackup = `<?xml version='1.0' encoding='UTF-8' standalone='yes' ?>
<smses count="5">
  <sms protocol="0" address="VM-SBIINB" date="1705316400000" type="1" body="Rs.500.00 debited from A/c **1234 on 15-Jan-24" />
  <sms protocol="0" address="AD-HDFCBK" date="1705402800000" type="1" body="Rs.2,500.00 credited to your account" />
  <sms protocol="0" address="+919876543210" date="1705489200000" type="2" body="on my way, see you soon" />
  <sms protocol="0" address="VM-SBIINB" date="0" type="1" body="bad record with zero date" />
  <sms protocol="0" address="" date="1705575600000" type="1" body="bad record with no address" />
</smses>
`

func writeBackup(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sms.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestBackupSourceListMessages(t *testing.T) {
	src := NewBackupSource(writeBackup(t, sampleBackup))

	messages, err := src.ListMessages(context.Background(), ListOptions{})
	require.NoError(t, err)

	// The two malformed records are skipped at the boundary.
	require.Len(t, messages, 3)
	assert.Equal(t, "VM-SBIINB", messages[0].Address)
	assert.Equal(t, int64(1705316400000), messages[0].Date)
	assert.Equal(t, model.BoxInbox, messages[0].Box)
	assert.Equal(t, model.BoxSent, messages[2].Box)
	assert.NotEmpty(t, messages[0].ID)
}

func TestBackupSourceBoxFilter(t *testing.T) {
	src := NewBackupSource(writeBackup(t, sampleBackup))

	messages, err := src.ListMessages(context.Background(), ListOptions{Box: model.BoxInbox})
	require.NoError(t, err)
	require.Len(t, messages, 2)
	for _, msg := range messages {
		assert.Equal(t, model.BoxInbox, msg.Box)
	}
}

func TestBackupSourceDateWindow(t *testing.T) {
	src := NewBackupSource(writeBackup(t, sampleBackup))

	minDate := time.UnixMilli(1705402800000).Add(-time.Minute)
	maxDate := time.UnixMilli(1705402800000).Add(time.Minute)

	messages, err := src.ListMessages(context.Background(), ListOptions{
		MinDate: &minDate,
		MaxDate: &maxDate,
	})
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "AD-HDFCBK", messages[0].Address)
}

func TestBackupSourceMaxCountAndIndexFrom(t *testing.T) {
	src := NewBackupSource(writeBackup(t, sampleBackup))

	messages, err := src.ListMessages(context.Background(), ListOptions{MaxCount: 1})
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "VM-SBIINB", messages[0].Address)

	messages, err = src.ListMessages(context.Background(), ListOptions{IndexFrom: 1})
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "AD-HDFCBK", messages[0].Address)

	messages, err = src.ListMessages(context.Background(), ListOptions{IndexFrom: 99})
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestBackupSourceMissingFile(t *testing.T) {
	src := NewBackupSource(filepath.Join(t.TempDir(), "absent.xml"))

	_, err := src.ListMessages(context.Background(), ListOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrSourceUnavailable)
}

func TestBackupSourceMalformedFile(t *testing.T) {
	src := NewBackupSource(writeBackup(t, "this is not xml at all"))

	_, err := src.ListMessages(context.Background(), ListOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrSourceUnavailable)
}

func TestBackupSourcePermissionGate(t *testing.T) {
	path := writeBackup(t, sampleBackup)
	src := NewBackupSource(path)

	granted, err := src.CheckPermission(context.Background())
	require.NoError(t, err)
	assert.True(t, granted)

	granted, err = src.RequestPermission(context.Background())
	require.NoError(t, err)
	assert.True(t, granted)
}

func TestBackupSourceCheckPermissionMissingFile(t *testing.T) {
	src := NewBackupSource(filepath.Join(t.TempDir(), "absent.xml"))

	granted, err := src.CheckPermission(context.Background())
	assert.False(t, granted)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrSourceUnavailable)
}
