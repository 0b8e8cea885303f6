package repositories

import (
	"context"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
)

// AccountRepository defines the persistence operations for the chart of accounts.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	// SaveAccounts inserts a batch of accounts atomically. Used by default
	// chart provisioning so a partial chart is never observable.
	SaveAccounts(ctx context.Context, accounts []domain.Account) error
	FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)
	FindAccountByName(ctx context.Context, tenantID, name string) (*domain.Account, error)
	ListAccounts(ctx context.Context, tenantID string) ([]domain.Account, error)
	ListAccountsByType(ctx context.Context, tenantID string, accountType domain.AccountType) ([]domain.Account, error)
	CountDefaultAccounts(ctx context.Context, tenantID string) (int, error)
	UpdateAccount(ctx context.Context, account domain.Account) error
	DeleteAccount(ctx context.Context, tenantID, accountID string) error
}
