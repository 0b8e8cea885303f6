package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/core/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

type DocumentServiceTestSuite struct {
	suite.Suite
	mockDocRepo    *MockDocumentRepository
	mockLedgerRepo *MockLedgerRepository
	mockAccountSvc *MockAccountService
	tenantID       string
	userID         string
}

func (suite *DocumentServiceTestSuite) SetupTest() {
	suite.mockDocRepo = new(MockDocumentRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *DocumentServiceTestSuite) newService(mode domain.CompensationMode) portssvc.DocumentSvcFacade {
	return services.NewDocumentService(suite.mockDocRepo, suite.mockLedgerRepo, suite.mockAccountSvc, mode)
}

func (suite *DocumentServiceTestSuite) expectResolve(name, id string) {
	suite.mockAccountSvc.On("ResolveAccountID", mock.Anything, suite.tenantID, name).Return(id, nil)
}

func (suite *DocumentServiceTestSuite) TestRecordExpense_LedgerAndFeedConventions() {
	ctx := context.Background()
	service := suite.newService(domain.CompensationPreserve)

	expensesID := uuid.NewString()
	bankID := uuid.NewString()
	suite.expectResolve(domain.AccountExpenses, expensesID)
	suite.expectResolve(domain.AccountBankCash, bankID)

	var gotFeed domain.FeedEntry
	var gotPostings []domain.LedgerPosting
	suite.mockDocRepo.On("CreateDocumentUnit", ctx,
		mock.AnythingOfType("domain.SourceDocument"),
		mock.AnythingOfType("[]domain.DocumentItem"),
		mock.AnythingOfType("domain.FeedEntry"),
		mock.AnythingOfType("[]domain.LedgerPosting"),
	).Run(func(args mock.Arguments) {
		gotFeed = args.Get(3).(domain.FeedEntry)
		gotPostings = args.Get(4).([]domain.LedgerPosting)
	}).Return(nil).Once()

	req := dto.RecordDocumentRequest{
		Amount: decimal.NewFromInt(200),
		Date:   time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
	}
	doc, err := service.RecordExpense(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(doc)
	suite.Equal(domain.DocExpense, doc.DocType)
	suite.Equal(domain.StatusCompleted, doc.Status)

	// The feed stores the outflow negated while the journal never signs
	// amounts; direction carries the semantics there.
	suite.True(gotFeed.Amount.Equal(decimal.NewFromInt(-200)))
	suite.Equal(doc.DocumentID, gotFeed.ReferenceID)

	suite.Require().Len(gotPostings, 2)
	suite.Equal(expensesID, gotPostings[0].AccountID)
	suite.Equal(domain.Debit, gotPostings[0].Direction)
	suite.Equal(bankID, gotPostings[1].AccountID)
	suite.Equal(domain.Credit, gotPostings[1].Direction)
	suite.True(gotPostings[0].Amount.Equal(decimal.NewFromInt(200)))
	suite.True(gotPostings[1].Amount.Equal(decimal.NewFromInt(200)))
	suite.Equal(doc.DocumentID, gotPostings[0].DocumentID)
	suite.Equal(doc.DocumentID, gotPostings[1].DocumentID)

	suite.mockDocRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestRecordPaymentIn_BeforeProvisioningFailsLoudly() {
	ctx := context.Background()
	service := suite.newService(domain.CompensationPreserve)

	// No chart of accounts yet: resolution fails on the first draft and the
	// unit of work is never attempted.
	suite.mockAccountSvc.On("ResolveAccountID", mock.Anything, suite.tenantID, domain.AccountBankCash).
		Return("", services.ErrAccountNotFound).Once()

	req := dto.RecordDocumentRequest{
		Amount: decimal.NewFromInt(1000),
		Date:   time.Now().UTC(),
	}
	doc, err := service.RecordPaymentIn(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(doc)
	suite.ErrorIs(err, services.ErrAccountNotFound)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "CreateDocumentUnit",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestRecordSalesInvoice_RejectsFractionalAmount() {
	ctx := context.Background()
	service := suite.newService(domain.CompensationPreserve)

	req := dto.RecordDocumentRequest{
		Amount: decimal.RequireFromString("99.99"),
		Date:   time.Now().UTC(),
	}
	doc, err := service.RecordSalesInvoice(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(doc)
	suite.ErrorIs(err, services.ErrInvalidAmount)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "ResolveAccountID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestDeleteDocument_PreserveKeepsPostings() {
	ctx := context.Background()
	service := suite.newService(domain.CompensationPreserve)
	documentID := uuid.NewString()

	doc := &domain.SourceDocument{
		DocumentID: documentID,
		TenantID:   suite.tenantID,
		DocType:    domain.DocExpense,
		Amount:     decimal.NewFromInt(200),
	}
	suite.mockDocRepo.On("FindDocumentByID", ctx, suite.tenantID, domain.DocExpense, documentID).Return(doc, nil).Once()

	// Preserve mode hands the repository a zero mutation: no deletes, no
	// compensating postings. The journal keeps the orphaned audit trail.
	suite.mockDocRepo.On("DeleteDocumentUnit", ctx, suite.tenantID, domain.DocExpense, documentID,
		portsrepo.LedgerMutation{}).Return(nil).Once()

	err := service.DeleteDocument(ctx, suite.tenantID, domain.DocExpense, documentID, suite.userID)

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "FindPostingsByReference",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockDocRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestDeleteDocument_CompensateAppendsReversals() {
	ctx := context.Background()
	service := suite.newService(domain.CompensationCompensate)
	documentID := uuid.NewString()
	expensesID := uuid.NewString()
	bankID := uuid.NewString()

	doc := &domain.SourceDocument{
		DocumentID: documentID,
		TenantID:   suite.tenantID,
		DocType:    domain.DocExpense,
		Amount:     decimal.NewFromInt(200),
	}
	existing := []domain.LedgerPosting{
		{PostingID: uuid.NewString(), TenantID: suite.tenantID, DocType: domain.DocExpense, DocumentID: documentID, AccountID: expensesID, Direction: domain.Debit, Amount: decimal.NewFromInt(200)},
		{PostingID: uuid.NewString(), TenantID: suite.tenantID, DocType: domain.DocExpense, DocumentID: documentID, AccountID: bankID, Direction: domain.Credit, Amount: decimal.NewFromInt(200)},
	}

	suite.mockDocRepo.On("FindDocumentByID", ctx, suite.tenantID, domain.DocExpense, documentID).Return(doc, nil).Once()
	suite.mockLedgerRepo.On("FindPostingsByReference", ctx, suite.tenantID, domain.DocExpense, documentID).Return(existing, nil).Once()

	var gotMutation portsrepo.LedgerMutation
	suite.mockDocRepo.On("DeleteDocumentUnit", ctx, suite.tenantID, domain.DocExpense, documentID,
		mock.AnythingOfType("repositories.LedgerMutation")).
		Run(func(args mock.Arguments) {
			gotMutation = args.Get(4).(portsrepo.LedgerMutation)
		}).Return(nil).Once()

	err := service.DeleteDocument(ctx, suite.tenantID, domain.DocExpense, documentID, suite.userID)

	suite.Require().NoError(err)
	suite.False(gotMutation.DeleteExisting)
	suite.Require().Len(gotMutation.Append, 2)
	suite.Equal(domain.Credit, gotMutation.Append[0].Direction) // reversal of the debit
	suite.Equal(expensesID, gotMutation.Append[0].AccountID)
	suite.Equal(domain.Debit, gotMutation.Append[1].Direction)
	suite.Equal(bankID, gotMutation.Append[1].AccountID)
	suite.mockDocRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestUpdateDocument_CascadeReplacesPostings() {
	ctx := context.Background()
	service := suite.newService(domain.CompensationCascade)
	documentID := uuid.NewString()

	suite.expectResolve(domain.AccountExpenses, uuid.NewString())
	suite.expectResolve(domain.AccountBankCash, uuid.NewString())

	doc := &domain.SourceDocument{
		DocumentID:   documentID,
		TenantID:     suite.tenantID,
		DocType:      domain.DocExpense,
		Amount:       decimal.NewFromInt(200),
		DocumentDate: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Status:       domain.StatusCompleted,
	}
	suite.mockDocRepo.On("FindDocumentByID", ctx, suite.tenantID, domain.DocExpense, documentID).Return(doc, nil).Once()

	var gotDoc domain.SourceDocument
	var gotFeed domain.FeedEntry
	var gotMutation portsrepo.LedgerMutation
	suite.mockDocRepo.On("UpdateDocumentUnit", ctx,
		mock.AnythingOfType("domain.SourceDocument"),
		mock.AnythingOfType("domain.FeedEntry"),
		mock.AnythingOfType("repositories.LedgerMutation")).
		Run(func(args mock.Arguments) {
			gotDoc = args.Get(1).(domain.SourceDocument)
			gotFeed = args.Get(2).(domain.FeedEntry)
			gotMutation = args.Get(3).(portsrepo.LedgerMutation)
		}).Return(nil).Once()

	newAmount := decimal.NewFromInt(350)
	updated, err := service.UpdateDocument(ctx, suite.tenantID, domain.DocExpense, documentID,
		dto.UpdateDocumentRequest{Amount: &newAmount}, suite.userID)

	suite.Require().NoError(err)
	suite.True(updated.Amount.Equal(newAmount))
	suite.True(gotDoc.Amount.Equal(newAmount))
	suite.True(gotFeed.Amount.Equal(newAmount.Neg()))

	suite.True(gotMutation.DeleteExisting)
	suite.Require().Len(gotMutation.Append, 2)
	suite.True(gotMutation.Append[0].Amount.Equal(newAmount))
	suite.True(gotMutation.Append[1].Amount.Equal(newAmount))
	suite.mockDocRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestUpdateDocument_PreserveLeavesLedgerUntouched() {
	ctx := context.Background()
	service := suite.newService(domain.CompensationPreserve)
	documentID := uuid.NewString()

	doc := &domain.SourceDocument{
		DocumentID:   documentID,
		TenantID:     suite.tenantID,
		DocType:      domain.DocIncome,
		Amount:       decimal.NewFromInt(500),
		DocumentDate: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Status:       domain.StatusCompleted,
	}
	suite.mockDocRepo.On("FindDocumentByID", ctx, suite.tenantID, domain.DocIncome, documentID).Return(doc, nil).Once()

	var gotMutation portsrepo.LedgerMutation
	suite.mockDocRepo.On("UpdateDocumentUnit", ctx,
		mock.AnythingOfType("domain.SourceDocument"),
		mock.AnythingOfType("domain.FeedEntry"),
		mock.AnythingOfType("repositories.LedgerMutation")).
		Run(func(args mock.Arguments) {
			gotMutation = args.Get(3).(portsrepo.LedgerMutation)
		}).Return(nil).Once()

	newAmount := decimal.NewFromInt(750)
	_, err := service.UpdateDocument(ctx, suite.tenantID, domain.DocIncome, documentID,
		dto.UpdateDocumentRequest{Amount: &newAmount}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(portsrepo.LedgerMutation{}, gotMutation)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "ResolveAccountID", mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentServiceTestSuite))
}
