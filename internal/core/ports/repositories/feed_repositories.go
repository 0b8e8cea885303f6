package repositories

import (
	"context"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
)

// FeedRepository defines read operations over the transaction feed
// projection. Feed rows are written inside document units of work, never
// independently.
type FeedRepository interface {
	// ListFeed returns feed entries newest first with token pagination.
	ListFeed(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.FeedEntry, *string, error)
	FindFeedEntryByReference(ctx context.Context, tenantID string, refType domain.DocumentType, referenceID string) (*domain.FeedEntry, error)
}
