package model

// TransactionType indicates the direction of money movement.
type TransactionType string

// Transaction type constants.
const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// UnknownVendor is the sentinel vendor name used when extraction
// could not resolve a merchant.
const UnknownVendor = "Unknown"

// CategoryOther is the fallback category when no keyword matched.
const CategoryOther = "other"

// ExtractedExpense is the parser's output for one message: a structured
// guess at a transaction's amount, vendor, category, and type, with an
// attached completeness confidence in [0,1]. Constructed once, never
// mutated; either discarded below the confidence threshold or handed to
// persistence.
type ExtractedExpense struct {
	Vendor      string
	Category    string
	Type        TransactionType
	Description string
	RawMessage  string
	Amount      float64
	Confidence  float64
}
