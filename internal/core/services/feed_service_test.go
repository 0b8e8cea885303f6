package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/bizbooks/bizbooks_backend/internal/core/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

func TestFeedService_ListFeedDefaultsLimit(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockFeedRepository)
	service := services.NewFeedService(mockRepo)
	tenantID := uuid.NewString()

	entries := []domain.FeedEntry{
		{EntryID: uuid.NewString(), TenantID: tenantID, TransactionType: domain.DocExpense, Amount: decimal.NewFromInt(-200)},
	}
	token := "next-page"
	mockRepo.On("ListFeed", ctx, tenantID, 20, (*string)(nil)).Return(entries, &token, nil).Once()

	resp, err := service.ListFeed(ctx, tenantID, dto.ListFeedParams{})

	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)
	assert.True(t, resp.Entries[0].Amount.Equal(decimal.NewFromInt(-200)))
	require.NotNil(t, resp.NextToken)
	assert.Equal(t, token, *resp.NextToken)
	mockRepo.AssertExpectations(t)
}

func TestFeedService_ListFeedPropagatesRepoError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockFeedRepository)
	service := services.NewFeedService(mockRepo)
	tenantID := uuid.NewString()

	mockRepo.On("ListFeed", ctx, tenantID, 50, (*string)(nil)).Return(nil, nil, assert.AnError).Once()

	resp, err := service.ListFeed(ctx, tenantID, dto.ListFeedParams{Limit: 50})

	require.Error(t, err)
	assert.Nil(t, resp)
}
