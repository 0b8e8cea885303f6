package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostingDirection indicates whether a posting debits or credits its account.
type PostingDirection string

const (
	Debit  PostingDirection = "DEBIT"
	Credit PostingDirection = "CREDIT"
)

// Opposite returns the reversing direction.
func (d PostingDirection) Opposite() PostingDirection {
	if d == Debit {
		return Credit
	}
	return Debit
}

// LedgerPosting is one half of a double entry in the append-only journal.
// Every source-document event produces exactly two postings with equal
// amounts and opposite directions. Postings are immutable once written.
type LedgerPosting struct {
	PostingID    string           `json:"postingID"`
	TenantID     string           `json:"tenantID"`
	PostingDate  time.Time        `json:"postingDate"`
	DocType      DocumentType     `json:"sourceDocumentType"`
	DocumentID   string           `json:"sourceDocumentID"`
	AccountID    string           `json:"accountID"`
	Direction    PostingDirection `json:"direction"`
	Amount       decimal.Decimal  `json:"amount"` // positive, minor currency units
	Description  string           `json:"description"`
	AuditFields
}
