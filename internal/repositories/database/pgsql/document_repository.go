package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDocumentRepository struct {
	BaseRepository
}

// newPgxDocumentRepository creates a new repository for source documents and
// their atomic units of work.
func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepository {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DocumentRepository = (*PgxDocumentRepository)(nil)

const documentColumns = `document_id, tenant_id, doc_type, amount, document_date, status, counterparty_id, payment_method, description, created_at, created_by, last_updated_at, last_updated_by`

func scanDocument(row pgx.Row) (domain.SourceDocument, error) {
	var d domain.SourceDocument
	err := row.Scan(
		&d.DocumentID,
		&d.TenantID,
		&d.DocType,
		&d.Amount,
		&d.DocumentDate,
		&d.Status,
		&d.CounterpartyID,
		&d.PaymentMethod,
		&d.Description,
		&d.CreatedAt,
		&d.CreatedBy,
		&d.LastUpdatedAt,
		&d.LastUpdatedBy,
	)
	return d, err
}

// CreateDocumentUnit persists a document together with its item lines, feed
// entry and ledger postings in one transaction.
func (r *PgxDocumentRepository) CreateDocumentUnit(ctx context.Context, doc domain.SourceDocument, items []domain.DocumentItem, feed domain.FeedEntry, postings []domain.LedgerPosting) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	insertDoc := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, insertDoc,
		doc.DocumentID,
		doc.TenantID,
		doc.DocType,
		doc.Amount,
		doc.DocumentDate,
		doc.Status,
		doc.CounterpartyID,
		doc.PaymentMethod,
		doc.Description,
		doc.CreatedAt,
		doc.CreatedBy,
		doc.LastUpdatedAt,
		doc.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: document %s", apperrors.ErrDuplicate, doc.DocumentID)
		}
		return fmt.Errorf("failed to insert document %s: %w", doc.DocumentID, err)
	}

	batch := &pgx.Batch{}
	insertItem := `
		INSERT INTO document_items (item_id, document_id, tenant_id, name, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, item := range items {
		batch.Queue(insertItem,
			item.ItemID,
			item.DocumentID,
			item.TenantID,
			item.Name,
			item.Quantity,
			item.UnitPrice,
		)
	}
	queueFeedInsert(batch, feed)
	queuePostingInserts(batch, postings)

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to write document unit for %s: %w", doc.DocumentID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateDocumentUnit updates a document, rewrites its feed entry and applies
// the ledger mutation in one transaction.
func (r *PgxDocumentRepository) UpdateDocumentUnit(ctx context.Context, doc domain.SourceDocument, feed domain.FeedEntry, ledger portsrepo.LedgerMutation) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	updateDoc := `
		UPDATE documents
		SET amount = $4, document_date = $5, status = $6, counterparty_id = $7,
		    payment_method = $8, description = $9, last_updated_at = $10, last_updated_by = $11
		WHERE document_id = $1 AND tenant_id = $2 AND doc_type = $3;
	`
	cmdTag, err := tx.Exec(ctx, updateDoc,
		doc.DocumentID,
		doc.TenantID,
		doc.DocType,
		doc.Amount,
		doc.DocumentDate,
		doc.Status,
		doc.CounterpartyID,
		doc.PaymentMethod,
		doc.Description,
		doc.LastUpdatedAt,
		doc.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update document %s: %w", doc.DocumentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	updateFeed := `
		UPDATE transactions_feed
		SET transaction_type = $4, amount = $5, entry_date = $6, description = $7,
		    status = $8, payment_method = $9, last_updated_at = $10, last_updated_by = $11
		WHERE tenant_id = $1 AND reference_type = $2 AND reference_id = $3;
	`
	_, err = tx.Exec(ctx, updateFeed,
		feed.TenantID,
		feed.ReferenceType,
		feed.ReferenceID,
		feed.TransactionType,
		feed.Amount,
		feed.EntryDate,
		feed.Description,
		feed.Status,
		feed.PaymentMethod,
		feed.LastUpdatedAt,
		feed.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update feed entry for document %s: %w", doc.DocumentID, err)
	}

	if err := applyLedgerMutation(ctx, tx, doc.TenantID, doc.DocType, doc.DocumentID, ledger); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteDocumentUnit removes a document, its item lines and its feed entry,
// and applies the ledger mutation, all in one transaction. In preserve mode
// the mutation is zero and the postings stay behind as the audit trail.
func (r *PgxDocumentRepository) DeleteDocumentUnit(ctx context.Context, tenantID string, docType domain.DocumentType, documentID string, ledger portsrepo.LedgerMutation) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	deleteItems := `DELETE FROM document_items WHERE tenant_id = $1 AND document_id = $2;`
	if _, err := tx.Exec(ctx, deleteItems, tenantID, documentID); err != nil {
		return fmt.Errorf("failed to delete items for document %s: %w", documentID, err)
	}

	deleteFeed := `DELETE FROM transactions_feed WHERE tenant_id = $1 AND reference_type = $2 AND reference_id = $3;`
	if _, err := tx.Exec(ctx, deleteFeed, tenantID, docType, documentID); err != nil {
		return fmt.Errorf("failed to delete feed entry for document %s: %w", documentID, err)
	}

	if err := applyLedgerMutation(ctx, tx, tenantID, docType, documentID, ledger); err != nil {
		return err
	}

	deleteDoc := `DELETE FROM documents WHERE document_id = $1 AND tenant_id = $2 AND doc_type = $3;`
	cmdTag, err := tx.Exec(ctx, deleteDoc, documentID, tenantID, docType)
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", documentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// applyLedgerMutation deletes and/or appends postings for one document inside
// an open transaction.
func applyLedgerMutation(ctx context.Context, tx pgx.Tx, tenantID string, docType domain.DocumentType, documentID string, ledger portsrepo.LedgerMutation) error {
	if ledger.DeleteExisting {
		deletePostings := `DELETE FROM ledger_postings WHERE tenant_id = $1 AND source_document_type = $2 AND source_document_id = $3;`
		if _, err := tx.Exec(ctx, deletePostings, tenantID, docType, documentID); err != nil {
			return fmt.Errorf("failed to delete postings for document %s: %w", documentID, err)
		}
	}

	if len(ledger.Append) > 0 {
		batch := &pgx.Batch{}
		queuePostingInserts(batch, ledger.Append)
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return fmt.Errorf("failed to append postings for document %s: %w", documentID, err)
		}
	}

	return nil
}

// queueFeedInsert adds the feed entry insert to the batch.
func queueFeedInsert(batch *pgx.Batch, feed domain.FeedEntry) {
	insertFeed := `
		INSERT INTO transactions_feed (` + feedColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	batch.Queue(insertFeed,
		feed.EntryID,
		feed.TenantID,
		feed.TransactionType,
		feed.ReferenceID,
		feed.ReferenceType,
		feed.Amount,
		feed.EntryDate,
		feed.Description,
		feed.Status,
		feed.PaymentMethod,
		feed.CreatedAt,
		feed.CreatedBy,
		feed.LastUpdatedAt,
		feed.LastUpdatedBy,
	)
}

// FindDocumentByID retrieves one document scoped by tenant and type.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, tenantID string, docType domain.DocumentType, documentID string) (*domain.SourceDocument, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE document_id = $1 AND tenant_id = $2 AND doc_type = $3;
	`
	doc, err := scanDocument(r.Pool.QueryRow(ctx, query, documentID, tenantID, docType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}
	return &doc, nil
}

// FindDocumentItems retrieves the item lines of a document.
func (r *PgxDocumentRepository) FindDocumentItems(ctx context.Context, tenantID, documentID string) ([]domain.DocumentItem, error) {
	query := `
		SELECT item_id, document_id, tenant_id, name, quantity, unit_price
		FROM document_items
		WHERE tenant_id = $1 AND document_id = $2
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for document %s: %w", documentID, err)
	}
	defer rows.Close()

	items := []domain.DocumentItem{}
	for rows.Next() {
		var item domain.DocumentItem
		if err := rows.Scan(&item.ItemID, &item.DocumentID, &item.TenantID, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", rows.Err())
	}
	return items, nil
}

// ListDocumentIDsByCounterparty retrieves the ids of a counterparty's
// documents of one type, optionally restricted to completed documents.
func (r *PgxDocumentRepository) ListDocumentIDsByCounterparty(ctx context.Context, tenantID string, docType domain.DocumentType, counterpartyID string, onlyCompleted bool) ([]string, error) {
	query := `
		SELECT document_id
		FROM documents
		WHERE tenant_id = $1 AND doc_type = $2 AND counterparty_id = $3
	`
	args := []any{tenantID, docType, counterpartyID}
	if onlyCompleted {
		query += ` AND status = $4`
		args = append(args, domain.StatusCompleted)
	}
	query += `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s documents for counterparty %s: %w", docType, counterpartyID, err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan document id: %w", err)
		}
		ids = append(ids, id)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating document id rows: %w", rows.Err())
	}
	return ids, nil
}
