package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeedEntry is a denormalized activity-log row mirroring one source document.
// It exists purely for list/report UIs and carries no invariants of its own
// beyond staying in sync with its document.
//
// Amount is signed: inflow events (payment-in, sales invoice, income,
// purchase return) are positive; outflow events (payment-out, purchase
// invoice, expense, sales return) are negative. This sign convention serves
// the human-readable feed and is independent of the ledger's debit/credit
// convention.
type FeedEntry struct {
	EntryID         string          `json:"entryID"`
	TenantID        string          `json:"tenantID"`
	TransactionType DocumentType    `json:"transactionType"`
	ReferenceID     string          `json:"referenceID"`
	ReferenceType   DocumentType    `json:"referenceType"`
	Amount          decimal.Decimal `json:"amount"` // signed
	EntryDate       time.Time       `json:"entryDate"`
	Description     string          `json:"description"`
	Status          DocumentStatus  `json:"status"`
	PaymentMethod   string          `json:"paymentMethod"`
	AuditFields
}
