package smsparse

import (
	"regexp"
	"strings"

	"github.com/amitksingh0880/spend-wise-sub000/internal/model"
)

// transactionKeywords mark a message as transaction-related. Matching is a
// case-insensitive substring check against the body.
var transactionKeywords = []string{
	"debited", "credited", "paid", "received", "transaction", "purchase",
	"spent", "withdrawn", "deposit", "transfer", "upi", "card", "atm",
	"payment", "bill", "recharge", "refund", "cashback", "charged",
}

// incomeKeywords flip the transaction type to income; everything else is
// treated as an expense.
var incomeKeywords = []string{
	"credited", "received", "deposit", "refund", "cashback", "salary",
}

// bankShortCode matches the DLT-style sender IDs used by Indian banks and
// payment apps, e.g. "VM-SBIINB" or "AD-HDFCBK".
var bankShortCode = regexp.MustCompile(`^[A-Z]{2}-[A-Z0-9]{4,8}$`)

// knownBankSenders are sender IDs seen without an operator prefix.
var knownBankSenders = []string{
	"SBIINB", "SBIPSG", "HDFCBK", "ICICIB", "AXISBK", "KOTAKB", "PNBSMS",
	"BOIIND", "CANBNK", "PAYTM", "PHONPE", "GPAY", "AMZNPAY", "SLICEIT",
}

// IsTransaction reports whether the body looks transaction-related.
func IsTransaction(body string) bool {
	lower := strings.ToLower(body)
	for _, kw := range transactionKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// DetectType classifies the body as income or expense. Expense is the
// fallback, not a separately tested condition.
func DetectType(body string) model.TransactionType {
	lower := strings.ToLower(body)
	for _, kw := range incomeKeywords {
		if strings.Contains(lower, kw) {
			return model.TypeIncome
		}
	}
	return model.TypeExpense
}

// IsBankSender reports whether the sender address looks like a bank or
// payment-app short code. This is an auxiliary signal only; the body
// keyword check in IsTransaction is authoritative for acceptance.
func IsBankSender(address string) bool {
	addr := strings.ToUpper(strings.TrimSpace(address))
	if bankShortCode.MatchString(addr) {
		return true
	}
	for _, s := range knownBankSenders {
		if addr == s {
			return true
		}
	}
	return false
}
