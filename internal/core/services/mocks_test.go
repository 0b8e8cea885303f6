package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// MockAccountRepository is a mock type for the AccountRepository interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	args := m.Called(ctx, accounts)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByName(ctx context.Context, tenantID, name string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, tenantID string) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByType(ctx context.Context, tenantID string, accountType domain.AccountType) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) CountDefaultAccounts(ctx context.Context, tenantID string) (int, error) {
	args := m.Called(ctx, tenantID)
	return args.Int(0), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, tenantID, accountID string) error {
	args := m.Called(ctx, tenantID, accountID)
	return args.Error(0)
}

// MockLedgerRepository is a mock type for the LedgerRepository interface
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) AppendPostings(ctx context.Context, postings []domain.LedgerPosting) error {
	args := m.Called(ctx, postings)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindPostingsByReference(ctx context.Context, tenantID string, docType domain.DocumentType, documentID string) ([]domain.LedgerPosting, error) {
	args := m.Called(ctx, tenantID, docType, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerPosting), args.Error(1)
}

func (m *MockLedgerRepository) FindPostingsByAccount(ctx context.Context, tenantID, accountID string) ([]domain.LedgerPosting, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerPosting), args.Error(1)
}

// MockDocumentRepository is a mock type for the DocumentRepository interface
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) CreateDocumentUnit(ctx context.Context, doc domain.SourceDocument, items []domain.DocumentItem, feed domain.FeedEntry, postings []domain.LedgerPosting) error {
	args := m.Called(ctx, doc, items, feed, postings)
	return args.Error(0)
}

func (m *MockDocumentRepository) UpdateDocumentUnit(ctx context.Context, doc domain.SourceDocument, feed domain.FeedEntry, ledger portsrepo.LedgerMutation) error {
	args := m.Called(ctx, doc, feed, ledger)
	return args.Error(0)
}

func (m *MockDocumentRepository) DeleteDocumentUnit(ctx context.Context, tenantID string, docType domain.DocumentType, documentID string, ledger portsrepo.LedgerMutation) error {
	args := m.Called(ctx, tenantID, docType, documentID, ledger)
	return args.Error(0)
}

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, tenantID string, docType domain.DocumentType, documentID string) (*domain.SourceDocument, error) {
	args := m.Called(ctx, tenantID, docType, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SourceDocument), args.Error(1)
}

func (m *MockDocumentRepository) FindDocumentItems(ctx context.Context, tenantID, documentID string) ([]domain.DocumentItem, error) {
	args := m.Called(ctx, tenantID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentItem), args.Error(1)
}

func (m *MockDocumentRepository) ListDocumentIDsByCounterparty(ctx context.Context, tenantID string, docType domain.DocumentType, counterpartyID string, onlyCompleted bool) ([]string, error) {
	args := m.Called(ctx, tenantID, docType, counterpartyID, onlyCompleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockFeedRepository is a mock type for the FeedRepository interface
type MockFeedRepository struct {
	mock.Mock
}

func (m *MockFeedRepository) ListFeed(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.FeedEntry, *string, error) {
	args := m.Called(ctx, tenantID, limit, nextToken)
	var entries []domain.FeedEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.FeedEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockFeedRepository) FindFeedEntryByReference(ctx context.Context, tenantID string, refType domain.DocumentType, referenceID string) (*domain.FeedEntry, error) {
	args := m.Called(ctx, tenantID, refType, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeedEntry), args.Error(1)
}

// MockAccountService is a mock type for the AccountSvcFacade interface
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) ProvisionDefaults(ctx context.Context, tenantID, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) ResolveAccountID(ctx context.Context, tenantID, name string) (string, error) {
	args := m.Called(ctx, tenantID, name)
	return args.String(0), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, tenantID string, accountType *domain.AccountType) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, tenantID, accountID string) error {
	args := m.Called(ctx, tenantID, accountID)
	return args.Error(0)
}

// testPosting builds a posting with just the fields derivation cares about.
func testPosting(accountID string, direction domain.PostingDirection, amount int64, date time.Time) domain.LedgerPosting {
	return domain.LedgerPosting{
		AccountID:   accountID,
		Direction:   direction,
		Amount:      decimal.NewFromInt(amount),
		PostingDate: date,
	}
}
