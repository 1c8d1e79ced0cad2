package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Transaction represents a persisted ledger entry created from an
// imported expense candidate.
type Transaction struct {
	Date        time.Time
	CreatedAt   time.Time
	ID          string
	Vendor      string
	Category    string
	Description string
	Hash        string
	Type        TransactionType
	Tags        []string
	Amount      float64
}

// GenerateHash creates a content hash for audit purposes. Two imports of
// the same message produce the same hash; the store does not enforce
// uniqueness on it, so re-running an import can double-import by design.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%s",
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.Vendor,
		t.Type)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
