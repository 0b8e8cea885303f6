package domain

import "time"

// AuditFields are embedded in every persisted entity.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// CompensationMode controls what happens to ledger postings when their source
// document is updated or deleted.
type CompensationMode string

const (
	// CompensationPreserve leaves historical postings untouched. This matches
	// the historical behavior of the mobile app: deleting an invoice removes
	// the document and its feed entry but keeps the postings as an audit trail.
	CompensationPreserve CompensationMode = "preserve"
	// CompensationCompensate appends equal-and-opposite reversal postings,
	// keeping the journal append-only while correcting balances.
	CompensationCompensate CompensationMode = "compensate"
	// CompensationCascade deletes the postings belonging to the document.
	CompensationCascade CompensationMode = "cascade"
)

// ParseCompensationMode maps a config string to a CompensationMode,
// defaulting to preserve for unknown values.
func ParseCompensationMode(s string) CompensationMode {
	switch CompensationMode(s) {
	case CompensationCompensate:
		return CompensationCompensate
	case CompensationCascade:
		return CompensationCascade
	default:
		return CompensationPreserve
	}
}
