package repositories

import (
	"context"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
)

// LedgerRepository defines the persistence operations for the append-only
// posting journal. Postings are only ever inserted in batches; they are never
// updated individually.
type LedgerRepository interface {
	// AppendPostings inserts the batch atomically. A partial write would
	// violate the double-entry invariant and must not be observable.
	AppendPostings(ctx context.Context, postings []domain.LedgerPosting) error
	FindPostingsByReference(ctx context.Context, tenantID string, docType domain.DocumentType, documentID string) ([]domain.LedgerPosting, error)
	// FindPostingsByAccount returns postings ordered by posting date ascending
	// (creation time as tiebreaker). An empty accountID selects all accounts.
	FindPostingsByAccount(ctx context.Context, tenantID, accountID string) ([]domain.LedgerPosting, error)
}
