package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
	"github.com/bizbooks/bizbooks_backend/internal/handlers"
	"github.com/bizbooks/bizbooks_backend/internal/middleware"
)

// --- Mock AccountService ---
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

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) GetLedgerReport(ctx context.Context, tenantID string, params dto.LedgerReportParams) (*domain.LedgerReport, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerReport), args.Error(1)
}
func (m *MockReportingService) GetAccountBalance(ctx context.Context, tenantID, accountID string, asOf *time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, accountID, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockReportingService) GetCounterpartyBalance(ctx context.Context, tenantID, counterpartyID string, kind domain.CounterpartyKind) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, counterpartyID, kind)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockAccountService   *MockAccountService
	mockReportingService *MockReportingService
	tenantID             string
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.tenantID = uuid.NewString()

	suite.mockAccountService = new(MockAccountService)
	suite.mockReportingService = new(MockReportingService)

	tenant := suite.router.Group("/api/v1/tenants/:tenant_id", middleware.TenantScope())
	handlers.RegisterAccountRoutes(tenant, suite.mockAccountService, suite.mockReportingService)
}

func (suite *AccountHandlerTestSuite) TestProvisionDefaults_Success() {
	accounts := []domain.Account{
		{AccountID: uuid.NewString(), TenantID: suite.tenantID, Name: domain.AccountBankCash, AccountType: domain.Asset, IsSystemDefault: true},
	}
	suite.mockAccountService.On("ProvisionDefaults", mock.Anything, suite.tenantID, "system").Return(accounts, nil).Once()

	url := fmt.Sprintf("/api/v1/tenants/%s/accounts/defaults", suite.tenantID)
	req, _ := http.NewRequest(http.MethodPost, url, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp []dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal(domain.AccountBankCash, resp[0].Name)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	reqBody := dto.CreateAccountRequest{Name: "Petty Cash", AccountType: domain.Asset}
	created := &domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Name:        reqBody.Name,
		AccountType: reqBody.AccountType,
	}
	suite.mockAccountService.On("CreateAccount", mock.Anything, suite.tenantID, reqBody, "someone").Return(created, nil).Once()

	body, _ := json.Marshal(reqBody)
	url := fmt.Sprintf("/api/v1/tenants/%s/accounts", suite.tenantID)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "someone")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.AccountID, resp.AccountID)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_InvalidType() {
	body := []byte(`{"name": "Weird", "accountType": "NONSENSE"}`)
	url := fmt.Sprintf("/api/v1/tenants/%s/accounts", suite.tenantID)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	accountID := uuid.NewString()
	suite.mockAccountService.On("GetAccountByID", mock.Anything, suite.tenantID, accountID).Return(nil, apperrors.ErrNotFound).Once()

	url := fmt.Sprintf("/api/v1/tenants/%s/accounts/%s", suite.tenantID, accountID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccountBalance_Success() {
	accountID := uuid.NewString()
	suite.mockReportingService.On("GetAccountBalance", mock.Anything, suite.tenantID, accountID, (*time.Time)(nil)).
		Return(decimal.NewFromInt(500), nil).Once()

	url := fmt.Sprintf("/api/v1/tenants/%s/accounts/%s/balance", suite.tenantID, accountID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.BalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Balance.Equal(decimal.NewFromInt(500)))
	suite.mockReportingService.AssertExpectations(suite.T())
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
