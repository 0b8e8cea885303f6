package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// defaultChart is the fixed chart of accounts provisioned for every tenant.
// The posting rules engine binds to these names; they must exist before any
// document is recorded.
var defaultChart = []struct {
	name        string
	accountType domain.AccountType
}{
	{domain.AccountBankCash, domain.Asset},
	{domain.AccountReceivable, domain.Asset},
	{domain.AccountInventory, domain.Asset},
	{domain.AccountPayable, domain.Liability},
	{domain.AccountSalesRevenue, domain.Revenue},
	{domain.AccountSalesReturns, domain.Revenue},
	{domain.AccountPurchaseReturns, domain.Expense},
	{domain.AccountIncome, domain.Revenue},
	{domain.AccountExpenses, domain.Expense},
}

// accountService implements the chart-of-accounts registry.
//
// Name resolution is served from a per-tenant name->id cache loaded on first
// use and invalidated on any account mutation, so recording a document does
// not re-query the chart per posting.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepository

	mu        sync.RWMutex
	nameCache map[string]map[string]string // tenantID -> account name -> account id
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepository) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		nameCache:   make(map[string]map[string]string),
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// ProvisionDefaults creates the default chart of accounts for a tenant if it
// does not exist yet. Calling it twice yields exactly one chart: a prior
// check short-circuits, and the unique (tenant_id, name) index turns the
// remaining check-then-insert race into ErrDuplicate instead of duplicates.
func (s *accountService) ProvisionDefaults(ctx context.Context, tenantID, userID string) ([]domain.Account, error) {
	count, err := s.accountRepo.CountDefaultAccounts(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing default accounts: %w", err)
	}
	if count > 0 {
		s.LogInfo(ctx, "Default accounts already provisioned", slog.String("tenant_id", tenantID), slog.Int("count", count))
		return s.listDefaults(ctx, tenantID)
	}

	now := time.Now().UTC()
	accounts := make([]domain.Account, len(defaultChart))
	for i, def := range defaultChart {
		accounts[i] = domain.Account{
			AccountID:       uuid.NewString(),
			TenantID:        tenantID,
			Name:            def.name,
			AccountType:     def.accountType,
			IsSystemDefault: true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	if err := s.accountRepo.SaveAccounts(ctx, accounts); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Another caller provisioned concurrently; the chart exists.
			s.LogWarn(ctx, "Default accounts provisioned concurrently", slog.String("tenant_id", tenantID))
			return s.listDefaults(ctx, tenantID)
		}
		return nil, fmt.Errorf("failed to provision default accounts: %w", err)
	}
	s.invalidateCache(tenantID)

	s.LogInfo(ctx, "Default accounts provisioned", slog.String("tenant_id", tenantID), slog.Int("count", len(accounts)))
	return accounts, nil
}

func (s *accountService) listDefaults(ctx context.Context, tenantID string) ([]domain.Account, error) {
	all, err := s.accountRepo.ListAccounts(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defaults := make([]domain.Account, 0, len(all))
	for _, acc := range all {
		if acc.IsSystemDefault {
			defaults = append(defaults, acc)
		}
	}
	return defaults, nil
}

// ResolveAccountID looks up the account id for an exact name. The tenant's
// chart is loaded into the cache once and reused for subsequent resolutions.
func (s *accountService) ResolveAccountID(ctx context.Context, tenantID, name string) (string, error) {
	s.mu.RLock()
	if byName, ok := s.nameCache[tenantID]; ok {
		id, found := byName[name]
		s.mu.RUnlock()
		if found {
			return id, nil
		}
		return "", fmt.Errorf("%w: %q for tenant %s", ErrAccountNotFound, name, tenantID)
	}
	s.mu.RUnlock()

	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID)
	if err != nil {
		return "", fmt.Errorf("failed to load chart of accounts for tenant %s: %w", tenantID, err)
	}

	byName := make(map[string]string, len(accounts))
	for _, acc := range accounts {
		byName[acc.Name] = acc.AccountID
	}

	s.mu.Lock()
	s.nameCache[tenantID] = byName
	s.mu.Unlock()

	if id, ok := byName[name]; ok {
		return id, nil
	}
	return "", fmt.Errorf("%w: %q for tenant %s", ErrAccountNotFound, name, tenantID)
}

func (s *accountService) invalidateCache(tenantID string) {
	s.mu.Lock()
	delete(s.nameCache, tenantID)
	s.mu.Unlock()
}

// CreateAccount creates a user-defined account in the tenant's chart.
func (s *accountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    tenantID,
		Name:        req.Name,
		AccountType: req.AccountType,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account named %q already exists", apperrors.ErrDuplicate, req.Name)
		}
		s.LogError(ctx, err, "Failed to save account", slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}
	s.invalidateCache(tenantID)

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("tenant_id", tenantID))
	return &account, nil
}

// GetAccountByID retrieves a single account scoped to the tenant.
func (s *accountService) GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts lists the tenant's accounts ordered by name, optionally
// filtered to one accounting type.
func (s *accountService) ListAccounts(ctx context.Context, tenantID string, accountType *domain.AccountType) ([]domain.Account, error) {
	if accountType != nil {
		return s.accountRepo.ListAccountsByType(ctx, tenantID, *accountType)
	}
	return s.accountRepo.ListAccounts(ctx, tenantID)
}

// UpdateAccount renames or re-describes an account.
func (s *accountService) UpdateAccount(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil && *req.Name != account.Name {
		account.Name = *req.Name
		updated = true
	}
	if req.Description != nil && *req.Description != account.Description {
		account.Description = *req.Description
		updated = true
	}
	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	s.invalidateCache(tenantID)

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID), slog.String("tenant_id", tenantID))
	return account, nil
}

// DeleteAccount removes an account from the tenant's chart. Postings
// referencing the account are not checked; deleting a referenced account
// leaves its postings pointing at a missing account, and reports over it
// degrade to zero.
func (s *accountService) DeleteAccount(ctx context.Context, tenantID, accountID string) error {
	if err := s.accountRepo.DeleteAccount(ctx, tenantID, accountID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		}
		return err
	}
	s.invalidateCache(tenantID)

	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID), slog.String("tenant_id", tenantID))
	return nil
}
