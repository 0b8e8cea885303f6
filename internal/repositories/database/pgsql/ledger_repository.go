package pgsql

import (
	"context"
	"fmt"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for the posting journal.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

const postingColumns = `posting_id, tenant_id, posting_date, source_document_type, source_document_id, account_id, direction, amount, description, created_at, created_by, last_updated_at, last_updated_by`

const insertPostingQuery = `
	INSERT INTO ledger_postings (` + postingColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
`

func scanPosting(row pgx.Row) (domain.LedgerPosting, error) {
	var p domain.LedgerPosting
	err := row.Scan(
		&p.PostingID,
		&p.TenantID,
		&p.PostingDate,
		&p.DocType,
		&p.DocumentID,
		&p.AccountID,
		&p.Direction,
		&p.Amount,
		&p.Description,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	return p, err
}

// queuePostingInserts adds insert statements for each posting to the batch.
// Shared with the document repository so document units of work write ledger
// rows in the exact same shape.
func queuePostingInserts(batch *pgx.Batch, postings []domain.LedgerPosting) {
	for _, p := range postings {
		batch.Queue(insertPostingQuery,
			p.PostingID,
			p.TenantID,
			p.PostingDate,
			p.DocType,
			p.DocumentID,
			p.AccountID,
			p.Direction,
			p.Amount,
			p.Description,
			p.CreatedAt,
			p.CreatedBy,
			p.LastUpdatedAt,
			p.LastUpdatedBy,
		)
	}
}

// AppendPostings inserts a batch of postings in one transaction. Postings
// always travel in balanced pairs; a partial insert must never be visible.
func (r *PgxLedgerRepository) AppendPostings(ctx context.Context, postings []domain.LedgerPosting) error {
	if len(postings) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	queuePostingInserts(batch, postings)

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert posting batch: %w", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxLedgerRepository) queryPostings(ctx context.Context, query string, args ...any) ([]domain.LedgerPosting, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger postings: %w", err)
	}
	defer rows.Close()

	postings := []domain.LedgerPosting{}
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan posting row: %w", err)
		}
		postings = append(postings, p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating posting rows: %w", rows.Err())
	}
	return postings, nil
}

// FindPostingsByReference retrieves all postings written for one source
// document, oldest first. Includes compensating entries if any were appended.
func (r *PgxLedgerRepository) FindPostingsByReference(ctx context.Context, tenantID string, docType domain.DocumentType, documentID string) ([]domain.LedgerPosting, error) {
	query := `
		SELECT ` + postingColumns + `
		FROM ledger_postings
		WHERE tenant_id = $1 AND source_document_type = $2 AND source_document_id = $3
		ORDER BY posting_date ASC, created_at ASC;
	`
	return r.queryPostings(ctx, query, tenantID, docType, documentID)
}

// FindPostingsByAccount retrieves postings ordered by posting date ascending
// with creation time as tiebreaker. An empty accountID selects every account.
func (r *PgxLedgerRepository) FindPostingsByAccount(ctx context.Context, tenantID, accountID string) ([]domain.LedgerPosting, error) {
	if accountID == "" {
		query := `
			SELECT ` + postingColumns + `
			FROM ledger_postings
			WHERE tenant_id = $1
			ORDER BY posting_date ASC, created_at ASC;
		`
		return r.queryPostings(ctx, query, tenantID)
	}

	query := `
		SELECT ` + postingColumns + `
		FROM ledger_postings
		WHERE tenant_id = $1 AND account_id = $2
		ORDER BY posting_date ASC, created_at ASC;
	`
	return r.queryPostings(ctx, query, tenantID, accountID)
}
