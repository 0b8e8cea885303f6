package dto

import (
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DocumentItemRequest is one line on a recorded document.
type DocumentItemRequest struct {
	Name      string          `json:"name" binding:"required,max=200"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unitPrice" binding:"required"`
}

// RecordDocumentRequest defines the payload for recording a source document
// (sales invoice, payment, expense, ...). Amount is in minor currency units.
type RecordDocumentRequest struct {
	Amount         decimal.Decimal       `json:"amount" binding:"required"`
	Date           time.Time             `json:"date" binding:"required"`
	CounterpartyID string                `json:"counterpartyID" binding:"max=64"`
	PaymentMethod  string                `json:"paymentMethod" binding:"max=50"`
	Description    string                `json:"description" binding:"max=500"`
	Status         domain.DocumentStatus `json:"status" binding:"omitempty,oneof=PENDING COMPLETED CANCELLED"`
	Items          []DocumentItemRequest `json:"items" binding:"omitempty,dive"`
}

// UpdateDocumentRequest defines the payload for updating a source document.
// Nil fields are left unchanged.
type UpdateDocumentRequest struct {
	Amount        *decimal.Decimal       `json:"amount"`
	Date          *time.Time             `json:"date"`
	Status        *domain.DocumentStatus `json:"status" binding:"omitempty,oneof=PENDING COMPLETED CANCELLED"`
	PaymentMethod *string                `json:"paymentMethod" binding:"omitempty,max=50"`
	Description   *string                `json:"description" binding:"omitempty,max=500"`
}

// DocumentItemResponse mirrors one document line.
type DocumentItemResponse struct {
	ItemID    string          `json:"itemID"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// DocumentResponse defines the data returned for a source document.
type DocumentResponse struct {
	DocumentID     string                 `json:"documentID"`
	DocType        domain.DocumentType    `json:"docType"`
	Amount         decimal.Decimal        `json:"amount"`
	Date           time.Time              `json:"date"`
	Status         domain.DocumentStatus  `json:"status"`
	CounterpartyID string                 `json:"counterpartyID,omitempty"`
	PaymentMethod  string                 `json:"paymentMethod,omitempty"`
	Description    string                 `json:"description,omitempty"`
	Items          []DocumentItemResponse `json:"items,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
}

// PostingResponse defines the data returned for a ledger posting.
type PostingResponse struct {
	PostingID   string                  `json:"postingID"`
	PostingDate time.Time               `json:"postingDate"`
	DocType     domain.DocumentType     `json:"sourceDocumentType"`
	DocumentID  string                  `json:"sourceDocumentID"`
	AccountID   string                  `json:"accountID"`
	Direction   domain.PostingDirection `json:"direction"`
	Amount      decimal.Decimal         `json:"amount"`
	Description string                  `json:"description,omitempty"`
}

// ToDocumentResponse converts a domain document and its items.
func ToDocumentResponse(doc *domain.SourceDocument, items []domain.DocumentItem) DocumentResponse {
	resp := DocumentResponse{
		DocumentID:     doc.DocumentID,
		DocType:        doc.DocType,
		Amount:         doc.Amount,
		Date:           doc.DocumentDate,
		Status:         doc.Status,
		CounterpartyID: doc.CounterpartyID,
		PaymentMethod:  doc.PaymentMethod,
		Description:    doc.Description,
		CreatedAt:      doc.CreatedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, DocumentItemResponse{
			ItemID:    item.ItemID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return resp
}

// ToPostingResponses converts a slice of domain postings.
func ToPostingResponses(postings []domain.LedgerPosting) []PostingResponse {
	responses := make([]PostingResponse, len(postings))
	for i, p := range postings {
		responses[i] = PostingResponse{
			PostingID:   p.PostingID,
			PostingDate: p.PostingDate,
			DocType:     p.DocType,
			DocumentID:  p.DocumentID,
			AccountID:   p.AccountID,
			Direction:   p.Direction,
			Amount:      p.Amount,
			Description: p.Description,
		}
	}
	return responses
}
