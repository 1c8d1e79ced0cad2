package source

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"os"

	"github.com/amitksingh0880/spend-wise-sub000/internal/common"
	"github.com/amitksingh0880/spend-wise-sub000/internal/model"
)

// backupBoxReceived is the box code for received messages in SMS Backup &
// Restore exports; 2 means sent.
const (
	backupBoxReceived = 1
	backupBoxSent     = 2
)

// BackupSource reads messages from an SMS Backup & Restore XML export.
// It implements both MessageSource and PermissionGate: "permission" for a
// file-backed store means the file exists and is readable.
type BackupSource struct {
	path string
}

// NewBackupSource creates a source reading from the given export file.
func NewBackupSource(path string) *BackupSource {
	return &BackupSource{path: path}
}

// backupFile mirrors the <smses> document root of an export.
type backupFile struct {
	XMLName  xml.Name        `xml:"smses"`
	Messages []backupMessage `xml:"sms"`
}

// backupMessage mirrors one <sms> element. All fields are attributes.
type backupMessage struct {
	Address string `xml:"address,attr"`
	Body    string `xml:"body,attr"`
	Date    int64  `xml:"date,attr"`
	Type    int    `xml:"type,attr"`
}

// CheckPermission reports whether the export file can be opened.
func (s *BackupSource) CheckPermission(_ context.Context) (bool, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsPermission(err) {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, fmt.Errorf("%w: %s", common.ErrSourceUnavailable, s.path)
		}
		return false, err
	}
	_ = f.Close()
	return true, nil
}

// RequestPermission is equivalent to CheckPermission for a file-backed
// store; there is no interactive grant to request.
func (s *BackupSource) RequestPermission(ctx context.Context) (bool, error) {
	return s.CheckPermission(ctx)
}

// ListMessages reads the export and returns validated records matching the
// options, in file order. Malformed records are logged and skipped rather
// than propagated.
func (s *BackupSource) ListMessages(_ context.Context, opts ListOptions) ([]model.RawMessage, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", common.ErrPermissionDenied, s.path)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrSourceUnavailable, err)
	}
	defer func() { _ = f.Close() }()

	var backup backupFile
	if err := xml.NewDecoder(f).Decode(&backup); err != nil {
		return nil, fmt.Errorf("%w: malformed backup file: %v", common.ErrSourceUnavailable, err)
	}

	var messages []model.RawMessage
	skipped := 0
	for i, raw := range backup.Messages {
		msg := model.RawMessage{
			ID:      fmt.Sprintf("sms-%d-%d", raw.Date, i),
			Address: raw.Address,
			Body:    raw.Body,
			Date:    raw.Date,
			Box:     boxFromType(raw.Type),
		}

		if err := msg.Validate(); err != nil {
			skipped++
			slog.Warn("Skipping malformed message record", "index", i, "error", err)
			continue
		}
		if opts.Box != "" && msg.Box != opts.Box {
			continue
		}
		if opts.MinDate != nil && msg.Time().Before(*opts.MinDate) {
			continue
		}
		if opts.MaxDate != nil && msg.Time().After(*opts.MaxDate) {
			continue
		}
		messages = append(messages, msg)
	}

	if skipped > 0 {
		common.LogDebug("Backup scan complete", common.Fields{
			"total":   len(backup.Messages),
			"skipped": skipped,
		})
	}

	if opts.IndexFrom > 0 {
		if opts.IndexFrom >= len(messages) {
			return nil, nil
		}
		messages = messages[opts.IndexFrom:]
	}
	if opts.MaxCount > 0 && len(messages) > opts.MaxCount {
		messages = messages[:opts.MaxCount]
	}
	return messages, nil
}

func boxFromType(t int) model.MessageBox {
	switch t {
	case backupBoxReceived:
		return model.BoxInbox
	case backupBoxSent:
		return model.BoxSent
	default:
		return ""
	}
}
