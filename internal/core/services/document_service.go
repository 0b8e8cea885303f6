package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// documentService records source documents. Every mutation runs as one atomic
// unit of work: the document row, its transaction-feed entry and its ledger
// postings commit or roll back together. Reports never read the documents
// directly; the journal is the single source of financial truth.
type documentService struct {
	BaseService
	accountSvc   portssvc.AccountSvcFacade
	documentRepo portsrepo.DocumentRepository
	ledgerRepo   portsrepo.LedgerRepository
	mode         domain.CompensationMode
}

// NewDocumentService creates a new document service. mode controls how ledger
// postings are treated when a document is updated or deleted.
func NewDocumentService(documentRepo portsrepo.DocumentRepository, ledgerRepo portsrepo.LedgerRepository, accountSvc portssvc.AccountSvcFacade, mode domain.CompensationMode) portssvc.DocumentSvcFacade {
	return &documentService{
		accountSvc:   accountSvc,
		documentRepo: documentRepo,
		ledgerRepo:   ledgerRepo,
		mode:         mode,
	}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

func (s *documentService) RecordSalesInvoice(ctx context.Context, tenantID string, req dto.RecordDocumentRequest, userID string) (*domain.SourceDocument, error) {
	return s.recordDocument(ctx, tenantID, domain.DocSalesInvoice, req, userID)
}

func (s *documentService) RecordSalesReturn(ctx context.Context, tenantID string, req dto.RecordDocumentRequest, userID string) (*domain.SourceDocument, error) {
	return s.recordDocument(ctx, tenantID, domain.DocSalesReturn, req, userID)
}

func (s *documentService) RecordPurchaseInvoice(ctx context.Context, tenantID string, req dto.RecordDocumentRequest, userID string) (*domain.SourceDocument, error) {
	return s.recordDocument(ctx, tenantID, domain.DocPurchaseInvoice, req, userID)
}

func (s *documentService) RecordPurchaseReturn(ctx context.Context, tenantID string, req dto.RecordDocumentRequest, userID string) (*domain.SourceDocument, error) {
	return s.recordDocument(ctx, tenantID, domain.DocPurchaseReturn, req, userID)
}

func (s *documentService) RecordPaymentIn(ctx context.Context, tenantID string, req dto.RecordDocumentRequest, userID string) (*domain.SourceDocument, error) {
	return s.recordDocument(ctx, tenantID, domain.DocPaymentIn, req, userID)
}

func (s *documentService) RecordPaymentOut(ctx context.Context, tenantID string, req dto.RecordDocumentRequest, userID string) (*domain.SourceDocument, error) {
	return s.recordDocument(ctx, tenantID, domain.DocPaymentOut, req, userID)
}

func (s *documentService) RecordIncome(ctx context.Context, tenantID string, req dto.RecordDocumentRequest, userID string) (*domain.SourceDocument, error) {
	return s.recordDocument(ctx, tenantID, domain.DocIncome, req, userID)
}

func (s *documentService) RecordExpense(ctx context.Context, tenantID string, req dto.RecordDocumentRequest, userID string) (*domain.SourceDocument, error) {
	return s.recordDocument(ctx, tenantID, domain.DocExpense, req, userID)
}

// recordDocument derives the posting pair and feed entry for the event and
// persists everything in one transaction. Account resolution failures abort
// before anything is written, so a missing chart of accounts can never leave
// a document without its postings.
func (s *documentService) recordDocument(ctx context.Context, tenantID string, docType domain.DocumentType, req dto.RecordDocumentRequest, userID string) (*domain.SourceDocument, error) {
	drafts, err := DeriveEntries(docType, req.Amount)
	if err != nil {
		return nil, err
	}

	feedAmount, err := FeedAmount(docType, req.Amount)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = domain.StatusCompleted
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	doc := domain.SourceDocument{
		DocumentID:     uuid.NewString(),
		TenantID:       tenantID,
		DocType:        docType,
		Amount:         req.Amount,
		DocumentDate:   req.Date,
		Status:         status,
		CounterpartyID: req.CounterpartyID,
		PaymentMethod:  req.PaymentMethod,
		Description:    req.Description,
		AuditFields:    audit,
	}

	items := make([]domain.DocumentItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.DocumentItem{
			ItemID:     uuid.NewString(),
			DocumentID: doc.DocumentID,
			TenantID:   tenantID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		}
	}

	feed := domain.FeedEntry{
		EntryID:         uuid.NewString(),
		TenantID:        tenantID,
		TransactionType: docType,
		ReferenceID:     doc.DocumentID,
		ReferenceType:   docType,
		Amount:          feedAmount,
		EntryDate:       req.Date,
		Description:     req.Description,
		Status:          status,
		PaymentMethod:   req.PaymentMethod,
		AuditFields:     audit,
	}

	postings, err := s.resolveDrafts(ctx, tenantID, doc, drafts[:], userID, now)
	if err != nil {
		return nil, err
	}

	if err := s.documentRepo.CreateDocumentUnit(ctx, doc, items, feed, postings); err != nil {
		s.LogError(ctx, err, "Failed to persist document unit",
			slog.String("tenant_id", tenantID),
			slog.String("doc_type", string(docType)))
		return nil, fmt.Errorf("failed to record %s: %w", docType, err)
	}

	s.LogInfo(ctx, "Document recorded",
		slog.String("tenant_id", tenantID),
		slog.String("doc_type", string(docType)),
		slog.String("document_id", doc.DocumentID),
		slog.String("amount", req.Amount.String()))
	return &doc, nil
}

// resolveDrafts binds account names to ids and materializes the drafts into
// postings for the given document.
func (s *documentService) resolveDrafts(ctx context.Context, tenantID string, doc domain.SourceDocument, drafts []PostingDraft, userID string, now time.Time) ([]domain.LedgerPosting, error) {
	postings := make([]domain.LedgerPosting, len(drafts))
	for i, draft := range drafts {
		accountID, err := s.accountSvc.ResolveAccountID(ctx, tenantID, draft.AccountName)
		if err != nil {
			return nil, err
		}
		postings[i] = domain.LedgerPosting{
			PostingID:   uuid.NewString(),
			TenantID:    tenantID,
			PostingDate: doc.DocumentDate,
			DocType:     doc.DocType,
			DocumentID:  doc.DocumentID,
			AccountID:   accountID,
			Direction:   draft.Direction,
			Amount:      draft.Amount,
			Description: doc.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}
	return postings, nil
}

// GetDocument retrieves a document and its item lines.
func (s *documentService) GetDocument(ctx context.Context, tenantID string, docType domain.DocumentType, documentID string) (*domain.SourceDocument, []domain.DocumentItem, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, tenantID, docType, documentID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.documentRepo.FindDocumentItems(ctx, tenantID, documentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load document items: %w", err)
	}
	return doc, items, nil
}

// UpdateDocument applies field changes to a document and its feed entry
// atomically. The ledger treatment of an amount or date change depends on
// the configured compensation mode.
func (s *documentService) UpdateDocument(ctx context.Context, tenantID string, docType domain.DocumentType, documentID string, req dto.UpdateDocumentRequest, userID string) (*domain.SourceDocument, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, tenantID, docType, documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%s %s: %w", docType, documentID, apperrors.ErrNotFound)
		}
		return nil, err
	}

	postingRelevant := false
	if req.Amount != nil && !req.Amount.Equal(doc.Amount) {
		if _, err := DeriveEntries(docType, *req.Amount); err != nil {
			return nil, err
		}
		doc.Amount = *req.Amount
		postingRelevant = true
	}
	if req.Date != nil && !req.Date.Equal(doc.DocumentDate) {
		doc.DocumentDate = *req.Date
		postingRelevant = true
	}
	if req.Status != nil {
		doc.Status = *req.Status
	}
	if req.PaymentMethod != nil {
		doc.PaymentMethod = *req.PaymentMethod
	}
	if req.Description != nil {
		doc.Description = *req.Description
	}

	now := time.Now().UTC()
	doc.LastUpdatedAt = now
	doc.LastUpdatedBy = userID

	feedAmount, err := FeedAmount(docType, doc.Amount)
	if err != nil {
		return nil, err
	}
	feed := domain.FeedEntry{
		TenantID:        tenantID,
		TransactionType: docType,
		ReferenceID:     doc.DocumentID,
		ReferenceType:   docType,
		Amount:          feedAmount,
		EntryDate:       doc.DocumentDate,
		Description:     doc.Description,
		Status:          doc.Status,
		PaymentMethod:   doc.PaymentMethod,
		AuditFields: domain.AuditFields{
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	var mutation portsrepo.LedgerMutation
	if postingRelevant {
		mutation, err = s.ledgerMutationForUpdate(ctx, *doc, userID, now)
		if err != nil {
			return nil, err
		}
	}

	if err := s.documentRepo.UpdateDocumentUnit(ctx, *doc, feed, mutation); err != nil {
		s.LogError(ctx, err, "Failed to update document unit",
			slog.String("document_id", documentID),
			slog.String("doc_type", string(docType)))
		return nil, fmt.Errorf("failed to update %s %s: %w", docType, documentID, err)
	}

	s.LogInfo(ctx, "Document updated",
		slog.String("tenant_id", tenantID),
		slog.String("doc_type", string(docType)),
		slog.String("document_id", documentID),
		slog.String("compensation_mode", string(s.mode)))
	return doc, nil
}

// ledgerMutationForUpdate decides what happens to the document's postings
// when its amount or date changed:
//   - preserve: nothing; the journal keeps the original postings (the
//     historical mobile-app behavior).
//   - compensate: append equal-and-opposite reversals of the existing
//     postings plus a fresh pair at the new amount, keeping the journal
//     append-only.
//   - cascade: replace the existing postings with a freshly derived pair.
func (s *documentService) ledgerMutationForUpdate(ctx context.Context, doc domain.SourceDocument, userID string, now time.Time) (portsrepo.LedgerMutation, error) {
	var mutation portsrepo.LedgerMutation

	if s.mode == domain.CompensationPreserve {
		return mutation, nil
	}

	drafts, err := DeriveEntries(doc.DocType, doc.Amount)
	if err != nil {
		return mutation, err
	}
	fresh, err := s.resolveDrafts(ctx, doc.TenantID, doc, drafts[:], userID, now)
	if err != nil {
		return mutation, err
	}

	switch s.mode {
	case domain.CompensationCascade:
		mutation.DeleteExisting = true
		mutation.Append = fresh
	case domain.CompensationCompensate:
		existing, err := s.ledgerRepo.FindPostingsByReference(ctx, doc.TenantID, doc.DocType, doc.DocumentID)
		if err != nil {
			return mutation, fmt.Errorf("failed to load postings for compensation: %w", err)
		}
		mutation.Append = append(s.reversalsOf(existing, userID, now), fresh...)
	}
	return mutation, nil
}

// reversalsOf builds equal-and-opposite postings for the given postings.
func (s *documentService) reversalsOf(postings []domain.LedgerPosting, userID string, now time.Time) []domain.LedgerPosting {
	reversals := make([]domain.LedgerPosting, len(postings))
	for i, p := range postings {
		reversals[i] = domain.LedgerPosting{
			PostingID:   uuid.NewString(),
			TenantID:    p.TenantID,
			PostingDate: now,
			DocType:     p.DocType,
			DocumentID:  p.DocumentID,
			AccountID:   p.AccountID,
			Direction:   p.Direction.Opposite(),
			Amount:      p.Amount,
			Description: "Reversal of: " + p.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}
	return reversals
}

// DeleteDocument removes a document and its feed entry atomically. In the
// default preserve mode the ledger postings stay behind as an audit trail,
// referencing the now-deleted document id; compensate appends reversals and
// cascade deletes the postings outright.
func (s *documentService) DeleteDocument(ctx context.Context, tenantID string, docType domain.DocumentType, documentID string, userID string) error {
	if _, err := s.documentRepo.FindDocumentByID(ctx, tenantID, docType, documentID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%s %s: %w", docType, documentID, apperrors.ErrNotFound)
		}
		return err
	}

	var mutation portsrepo.LedgerMutation
	switch s.mode {
	case domain.CompensationCascade:
		mutation.DeleteExisting = true
	case domain.CompensationCompensate:
		existing, err := s.ledgerRepo.FindPostingsByReference(ctx, tenantID, docType, documentID)
		if err != nil {
			return fmt.Errorf("failed to load postings for compensation: %w", err)
		}
		mutation.Append = s.reversalsOf(existing, userID, time.Now().UTC())
	}

	if err := s.documentRepo.DeleteDocumentUnit(ctx, tenantID, docType, documentID, mutation); err != nil {
		s.LogError(ctx, err, "Failed to delete document unit",
			slog.String("document_id", documentID),
			slog.String("doc_type", string(docType)))
		return fmt.Errorf("failed to delete %s %s: %w", docType, documentID, err)
	}

	s.LogInfo(ctx, "Document deleted",
		slog.String("tenant_id", tenantID),
		slog.String("doc_type", string(docType)),
		slog.String("document_id", documentID),
		slog.String("compensation_mode", string(s.mode)))
	return nil
}

// ListPostingsForDocument returns the journal postings referencing a document.
// After a delete in preserve mode these remain queryable.
func (s *documentService) ListPostingsForDocument(ctx context.Context, tenantID string, docType domain.DocumentType, documentID string) ([]domain.LedgerPosting, error) {
	return s.ledgerRepo.FindPostingsByReference(ctx, tenantID, docType, documentID)
}
