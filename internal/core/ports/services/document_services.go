package services

import (
	"context"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// DocumentSvcFacade records and maintains source documents. Every mutation is
// one atomic unit of work covering the document row, its feed entry and its
// ledger postings.
type DocumentSvcFacade interface {
	RecordSalesInvoice(ctx context.Context, tenantID string, req dto.RecordDocumentRequest, userID string) (*domain.SourceDocument, error)
	RecordSalesReturn(ctx context.Context, tenantID string, req dto.RecordDocumentRequest, userID string) (*domain.SourceDocument, error)
	RecordPurchaseInvoice(ctx context.Context, tenantID string, req dto.RecordDocumentRequest, userID string) (*domain.SourceDocument, error)
	RecordPurchaseReturn(ctx context.Context, tenantID string, req dto.RecordDocumentRequest, userID string) (*domain.SourceDocument, error)
	RecordPaymentIn(ctx context.Context, tenantID string, req dto.RecordDocumentRequest, userID string) (*domain.SourceDocument, error)
	RecordPaymentOut(ctx context.Context, tenantID string, req dto.RecordDocumentRequest, userID string) (*domain.SourceDocument, error)
	RecordIncome(ctx context.Context, tenantID string, req dto.RecordDocumentRequest, userID string) (*domain.SourceDocument, error)
	RecordExpense(ctx context.Context, tenantID string, req dto.RecordDocumentRequest, userID string) (*domain.SourceDocument, error)

	GetDocument(ctx context.Context, tenantID string, docType domain.DocumentType, documentID string) (*domain.SourceDocument, []domain.DocumentItem, error)
	UpdateDocument(ctx context.Context, tenantID string, docType domain.DocumentType, documentID string, req dto.UpdateDocumentRequest, userID string) (*domain.SourceDocument, error)
	DeleteDocument(ctx context.Context, tenantID string, docType domain.DocumentType, documentID string, userID string) error
	ListPostingsForDocument(ctx context.Context, tenantID string, docType domain.DocumentType, documentID string) ([]domain.LedgerPosting, error)
}
