package services

import (
	"context"
	"fmt"

	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// feedService serves the denormalized transaction feed.
type feedService struct {
	BaseService
	feedRepo portsrepo.FeedRepository
}

// NewFeedService creates a new feed service.
func NewFeedService(feedRepo portsrepo.FeedRepository) portssvc.FeedSvcFacade {
	return &feedService{feedRepo: feedRepo}
}

var _ portssvc.FeedSvcFacade = (*feedService)(nil)

// ListFeed returns a page of feed entries, newest first.
func (s *feedService) ListFeed(ctx context.Context, tenantID string, params dto.ListFeedParams) (*dto.ListFeedResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, nextToken, err := s.feedRepo.ListFeed(ctx, tenantID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list transaction feed: %w", err)
	}

	return &dto.ListFeedResponse{
		Entries:   dto.ToFeedEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}
