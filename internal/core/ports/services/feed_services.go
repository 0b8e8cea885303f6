package services

import (
	"context"

	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// FeedSvcFacade exposes the transaction feed projection for list UIs.
type FeedSvcFacade interface {
	ListFeed(ctx context.Context, tenantID string, params dto.ListFeedParams) (*dto.ListFeedResponse, error)
}
