package dto

import (
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListFeedParams holds pagination parameters for the transaction feed.
type ListFeedParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"next_token"`
}

// FeedEntryResponse defines the data returned for a transaction feed entry.
// Amount is signed: positive for inflows, negative for outflows.
type FeedEntryResponse struct {
	EntryID         string                `json:"entryID"`
	TransactionType domain.DocumentType   `json:"transactionType"`
	ReferenceID     string                `json:"referenceID"`
	ReferenceType   domain.DocumentType   `json:"referenceType"`
	Amount          decimal.Decimal       `json:"amount"`
	Date            time.Time             `json:"date"`
	Description     string                `json:"description,omitempty"`
	Status          domain.DocumentStatus `json:"status"`
	PaymentMethod   string                `json:"paymentMethod,omitempty"`
}

// ListFeedResponse is a page of feed entries with the cursor for the next page.
type ListFeedResponse struct {
	Entries   []FeedEntryResponse `json:"entries"`
	NextToken *string             `json:"nextToken,omitempty"`
}

// ToFeedEntryResponses converts a slice of domain feed entries.
func ToFeedEntryResponses(entries []domain.FeedEntry) []FeedEntryResponse {
	responses := make([]FeedEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = FeedEntryResponse{
			EntryID:         e.EntryID,
			TransactionType: e.TransactionType,
			ReferenceID:     e.ReferenceID,
			ReferenceType:   e.ReferenceType,
			Amount:          e.Amount,
			Date:            e.EntryDate,
			Description:     e.Description,
			Status:          e.Status,
			PaymentMethod:   e.PaymentMethod,
		}
	}
	return responses
}
