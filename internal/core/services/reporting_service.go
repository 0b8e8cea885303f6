package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
	"github.com/bizbooks/bizbooks_backend/internal/utils/accounting"
)

// reportingService derives balances and ledger reports by replaying the
// posting journal. Reads are the mirror image of the write path: where the
// posting engine fails loudly, derivation degrades quietly to zero/empty with
// a logged warning, so reports render even over incomplete data.
type reportingService struct {
	BaseService
	ledgerRepo   portsrepo.LedgerRepository
	documentRepo portsrepo.DocumentRepository
	accountSvc   portssvc.AccountSvcFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(ledgerRepo portsrepo.LedgerRepository, documentRepo portsrepo.DocumentRepository, accountSvc portssvc.AccountSvcFacade) portssvc.ReportingSvcFacade {
	return &reportingService{
		ledgerRepo:   ledgerRepo,
		documentRepo: documentRepo,
		accountSvc:   accountSvc,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func emptyReport() *domain.LedgerReport {
	return &domain.LedgerReport{
		Lines:          []domain.LedgerLine{},
		OpeningBalance: decimal.Zero,
		ClosingBalance: decimal.Zero,
		NetChange:      decimal.Zero,
	}
}

// GetLedgerReport folds the journal (optionally restricted to one account)
// into a running balance trail over the requested period. The opening
// balance is the running balance immediately before the period's first
// posting; postings after the period are excluded entirely.
func (s *reportingService) GetLedgerReport(ctx context.Context, tenantID string, params dto.LedgerReportParams) (*domain.LedgerReport, error) {
	postings, err := s.ledgerRepo.FindPostingsByAccount(ctx, tenantID, params.AccountID)
	if err != nil {
		s.LogWarn(ctx, "Ledger report degraded to empty: failed to load postings",
			slog.String("tenant_id", tenantID),
			slog.String("account_id", params.AccountID),
			slog.String("error", err.Error()))
		return emptyReport(), nil
	}

	var before, during []domain.LedgerPosting
	for _, p := range postings {
		switch {
		case params.From != nil && p.PostingDate.Before(*params.From):
			before = append(before, p)
		case params.To != nil && p.PostingDate.After(*params.To):
			// Beyond the period; postings are date-ordered but later rows may
			// still fall inside it when dates repeat, so keep scanning.
		default:
			during = append(during, p)
		}
	}

	opening := accounting.SumPostings(before)
	lines := accounting.RunningBalances(during, opening)

	closing := opening
	if len(lines) > 0 {
		closing = lines[len(lines)-1].RunningBalance
	}

	return &domain.LedgerReport{
		Lines:          lines,
		OpeningBalance: opening,
		ClosingBalance: closing,
		NetChange:      closing.Sub(opening),
	}, nil
}

// GetAccountBalance computes the point-in-time balance of one account:
// the sum of its debits minus its credits, optionally up to asOf.
func (s *reportingService) GetAccountBalance(ctx context.Context, tenantID, accountID string, asOf *time.Time) (decimal.Decimal, error) {
	postings, err := s.ledgerRepo.FindPostingsByAccount(ctx, tenantID, accountID)
	if err != nil {
		s.LogWarn(ctx, "Account balance degraded to zero: failed to load postings",
			slog.String("tenant_id", tenantID),
			slog.String("account_id", accountID),
			slog.String("error", err.Error()))
		return decimal.Zero, nil
	}

	balance := decimal.Zero
	for _, p := range postings {
		if asOf != nil && p.PostingDate.After(*asOf) {
			continue
		}
		balance = balance.Add(accounting.SignedAmount(p))
	}
	return balance, nil
}

// counterpartyDocTypes maps a counterparty kind to the document types that
// participate in its control-account balance.
func counterpartyDocTypes(kind domain.CounterpartyKind) (accountName string, invoice, payment, ret domain.DocumentType) {
	if kind == domain.CounterpartyVendor {
		return domain.AccountPayable, domain.DocPurchaseInvoice, domain.DocPaymentOut, domain.DocPurchaseReturn
	}
	return domain.AccountReceivable, domain.DocSalesInvoice, domain.DocPaymentIn, domain.DocSalesReturn
}

// GetCounterpartyBalance computes the outstanding balance of a customer or
// vendor against its control account (Accounts Receivable / Accounts
// Payable). The counterparty's document id sets are gathered from the
// document store and intersected with the control account's postings:
// invoices add, payments and completed returns subtract.
func (s *reportingService) GetCounterpartyBalance(ctx context.Context, tenantID, counterpartyID string, kind domain.CounterpartyKind) (decimal.Decimal, error) {
	accountName, invoiceType, paymentType, returnType := counterpartyDocTypes(kind)

	accountID, err := s.accountSvc.ResolveAccountID(ctx, tenantID, accountName)
	if err != nil {
		s.LogWarn(ctx, "Counterparty balance degraded to zero: control account missing",
			slog.String("tenant_id", tenantID),
			slog.String("counterparty_id", counterpartyID),
			slog.String("account_name", accountName),
			slog.String("error", err.Error()))
		return decimal.Zero, nil
	}

	invoiceIDs := s.documentIDSet(ctx, tenantID, invoiceType, counterpartyID, false)
	paymentIDs := s.documentIDSet(ctx, tenantID, paymentType, counterpartyID, false)
	returnIDs := s.documentIDSet(ctx, tenantID, returnType, counterpartyID, true)

	postings, err := s.ledgerRepo.FindPostingsByAccount(ctx, tenantID, accountID)
	if err != nil {
		s.LogWarn(ctx, "Counterparty balance degraded to zero: failed to load postings",
			slog.String("tenant_id", tenantID),
			slog.String("counterparty_id", counterpartyID),
			slog.String("error", err.Error()))
		return decimal.Zero, nil
	}

	balance := decimal.Zero
	for _, p := range postings {
		switch {
		case p.DocType == invoiceType && invoiceIDs[p.DocumentID]:
			balance = balance.Add(p.Amount)
		case p.DocType == paymentType && paymentIDs[p.DocumentID]:
			balance = balance.Sub(p.Amount)
		case p.DocType == returnType && returnIDs[p.DocumentID]:
			balance = balance.Sub(p.Amount)
		}
	}
	return balance, nil
}

// documentIDSet gathers the id set of a counterparty's documents of one type,
// degrading to the empty set on failure.
func (s *reportingService) documentIDSet(ctx context.Context, tenantID string, docType domain.DocumentType, counterpartyID string, onlyCompleted bool) map[string]bool {
	ids, err := s.documentRepo.ListDocumentIDsByCounterparty(ctx, tenantID, docType, counterpartyID, onlyCompleted)
	if err != nil {
		s.LogWarn(ctx, "Counterparty document set degraded to empty",
			slog.String("tenant_id", tenantID),
			slog.String("doc_type", string(docType)),
			slog.String("counterparty_id", counterpartyID),
			slog.String("error", err.Error()))
		return map[string]bool{}
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
