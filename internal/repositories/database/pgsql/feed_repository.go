package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	"github.com/bizbooks/bizbooks_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxFeedRepository struct {
	BaseRepository
}

// newPgxFeedRepository creates a new repository for the transaction feed.
func newPgxFeedRepository(pool *pgxpool.Pool) portsrepo.FeedRepository {
	return &PgxFeedRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FeedRepository = (*PgxFeedRepository)(nil)

const feedColumns = `entry_id, tenant_id, transaction_type, reference_id, reference_type, amount, entry_date, description, status, payment_method, created_at, created_by, last_updated_at, last_updated_by`

func scanFeedEntry(row pgx.Row) (domain.FeedEntry, error) {
	var e domain.FeedEntry
	err := row.Scan(
		&e.EntryID,
		&e.TenantID,
		&e.TransactionType,
		&e.ReferenceID,
		&e.ReferenceType,
		&e.Amount,
		&e.EntryDate,
		&e.Description,
		&e.Status,
		&e.PaymentMethod,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	return e, err
}

// ListFeed retrieves feed entries newest first using keyset pagination on
// (entry_date, entry_id). The returned token is nil when no more pages exist.
func (r *PgxFeedRepository) ListFeed(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.FeedEntry, *string, error) {
	args := []any{tenantID}
	query := `
		SELECT ` + feedColumns + `
		FROM transactions_feed
		WHERE tenant_id = $1
	`

	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 2 {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		cursorDate, err := time.Parse(time.RFC3339Nano, fields[0])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token date", apperrors.ErrValidation)
		}
		query += ` AND (entry_date, entry_id) < ($2, $3)`
		args = append(args, cursorDate, fields[1])
	}

	query += fmt.Sprintf(`
		ORDER BY entry_date DESC, entry_id DESC
		LIMIT $%d;
	`, len(args)+1)
	args = append(args, limit+1) // fetch one extra to detect the next page

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transaction feed: %w", err)
	}
	defer rows.Close()

	entries := []domain.FeedEntry{}
	for rows.Next() {
		e, err := scanFeedEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan feed row: %w", err)
		}
		entries = append(entries, e)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating feed rows: %w", rows.Err())
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		t := pagination.EncodeMultiFieldToken(last.EntryDate.Format(time.RFC3339Nano), last.EntryID)
		token = &t
	}

	return entries, token, nil
}

// FindFeedEntryByReference retrieves the feed entry mirroring one source document.
func (r *PgxFeedRepository) FindFeedEntryByReference(ctx context.Context, tenantID string, refType domain.DocumentType, referenceID string) (*domain.FeedEntry, error) {
	query := `
		SELECT ` + feedColumns + `
		FROM transactions_feed
		WHERE tenant_id = $1 AND reference_type = $2 AND reference_id = $3;
	`
	e, err := scanFeedEntry(r.Pool.QueryRow(ctx, query, tenantID, refType, referenceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find feed entry for %s %s: %w", refType, referenceID, err)
	}
	return &e, nil
}
