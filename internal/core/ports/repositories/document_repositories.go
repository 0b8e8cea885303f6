package repositories

import (
	"context"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
)

// LedgerMutation describes what a document unit of work does to the ledger
// postings referencing the document. The zero value leaves postings untouched
// (the preserve compensation mode).
type LedgerMutation struct {
	DeleteExisting bool
	Append         []domain.LedgerPosting
}

// DocumentRepository defines the persistence operations for source documents.
// The *Unit methods are atomic: document, item lines, feed entry and ledger
// mutation commit or roll back together.
type DocumentRepository interface {
	CreateDocumentUnit(ctx context.Context, doc domain.SourceDocument, items []domain.DocumentItem, feed domain.FeedEntry, postings []domain.LedgerPosting) error
	UpdateDocumentUnit(ctx context.Context, doc domain.SourceDocument, feed domain.FeedEntry, ledger LedgerMutation) error
	DeleteDocumentUnit(ctx context.Context, tenantID string, docType domain.DocumentType, documentID string, ledger LedgerMutation) error

	FindDocumentByID(ctx context.Context, tenantID string, docType domain.DocumentType, documentID string) (*domain.SourceDocument, error)
	FindDocumentItems(ctx context.Context, tenantID, documentID string) ([]domain.DocumentItem, error)
	// ListDocumentIDsByCounterparty returns the ids of a counterparty's
	// documents of one type, optionally restricted to completed documents.
	// Counterparty balance derivation intersects these id sets with the
	// control account's postings.
	ListDocumentIDsByCounterparty(ctx context.Context, tenantID string, docType domain.DocumentType, counterpartyID string, onlyCompleted bool) ([]string, error)
}
