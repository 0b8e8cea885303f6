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

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, tenant_id, name, account_type, description, is_system_default, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (domain.Account, error) {
	var acc domain.Account
	err := row.Scan(
		&acc.AccountID,
		&acc.TenantID,
		&acc.Name,
		&acc.AccountType,
		&acc.Description,
		&acc.IsSystemDefault,
		&acc.CreatedAt,
		&acc.CreatedBy,
		&acc.LastUpdatedAt,
		&acc.LastUpdatedBy,
	)
	return acc, err
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.TenantID,
		account.Name,
		account.AccountType,
		account.Description,
		account.IsSystemDefault,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account %q for tenant %s", apperrors.ErrDuplicate, account.Name, account.TenantID)
		}
		return fmt.Errorf("failed to save account %s: %w", account.AccountID, err)
	}
	return nil
}

// SaveAccounts inserts a batch of accounts in one transaction. Used by
// default chart provisioning; either the whole chart lands or none of it.
func (r *PgxAccountRepository) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	if len(accounts) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, acc := range accounts {
		batch.Queue(query,
			acc.AccountID,
			acc.TenantID,
			acc.Name,
			acc.AccountType,
			acc.Description,
			acc.IsSystemDefault,
			acc.CreatedAt,
			acc.CreatedBy,
			acc.LastUpdatedAt,
			acc.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: default accounts already exist", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert account batch: %w", err)
	}

	return r.Commit(ctx, tx)
}

// FindAccountByID retrieves an account scoped by tenant.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = $1 AND tenant_id = $2;
	`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return &acc, nil
}

// FindAccountByName retrieves an account by its exact name.
func (r *PgxAccountRepository) FindAccountByName(ctx context.Context, tenantID, name string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE tenant_id = $1 AND name = $2;
	`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, tenantID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by name %q: %w", name, err)
	}
	return &acc, nil
}

func (r *PgxAccountRepository) queryAccounts(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", rows.Err())
	}
	return accounts, nil
}

// ListAccounts retrieves the tenant's accounts ordered by name.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, tenantID string) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE tenant_id = $1
		ORDER BY name;
	`
	return r.queryAccounts(ctx, query, tenantID)
}

// ListAccountsByType retrieves the tenant's accounts of one accounting type, ordered by name.
func (r *PgxAccountRepository) ListAccountsByType(ctx context.Context, tenantID string, accountType domain.AccountType) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE tenant_id = $1 AND account_type = $2
		ORDER BY name;
	`
	return r.queryAccounts(ctx, query, tenantID, accountType)
}

// CountDefaultAccounts counts the tenant's system-default accounts.
func (r *PgxAccountRepository) CountDefaultAccounts(ctx context.Context, tenantID string) (int, error) {
	query := `SELECT COUNT(*) FROM accounts WHERE tenant_id = $1 AND is_system_default = TRUE;`

	var count int
	if err := r.Pool.QueryRow(ctx, query, tenantID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count default accounts for tenant %s: %w", tenantID, err)
	}
	return count, nil
}

// UpdateAccount updates the mutable fields of an existing account.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $3, description = $4, last_updated_at = $5, last_updated_by = $6
		WHERE account_id = $1 AND tenant_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.TenantID,
		account.Name,
		account.Description,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account named %q already exists", apperrors.ErrDuplicate, account.Name)
		}
		return fmt.Errorf("failed to execute update account %s: %w", account.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAccount removes an account. Postings referencing it are not checked.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, tenantID, accountID string) error {
	query := `DELETE FROM accounts WHERE account_id = $1 AND tenant_id = $2;`

	cmdTag, err := r.Pool.Exec(ctx, query, accountID, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
