package services

import (
	"context"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// AccountSvcFacade exposes the chart-of-accounts registry.
type AccountSvcFacade interface {
	// ProvisionDefaults idempotently creates the default chart of accounts
	// for a tenant. Safe to call multiple times.
	ProvisionDefaults(ctx context.Context, tenantID, userID string) ([]domain.Account, error)
	// ResolveAccountID performs an exact-name lookup. It is the binding point
	// the posting engine depends on; failure aborts the enclosing write.
	ResolveAccountID(ctx context.Context, tenantID, name string) (string, error)
	CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, tenantID string, accountType *domain.AccountType) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)
	DeleteAccount(ctx context.Context, tenantID, accountID string) error
}
