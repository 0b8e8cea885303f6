package services

import (
	"context"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// ReportingSvcFacade derives balances and ledger reports by replaying the
// posting journal. All methods are read-only and degrade to zero/empty on
// derivation failures rather than erroring; reports must render even with
// incomplete data.
type ReportingSvcFacade interface {
	GetLedgerReport(ctx context.Context, tenantID string, params dto.LedgerReportParams) (*domain.LedgerReport, error)
	GetAccountBalance(ctx context.Context, tenantID, accountID string, asOf *time.Time) (decimal.Decimal, error)
	GetCounterpartyBalance(ctx context.Context, tenantID, counterpartyID string, kind domain.CounterpartyKind) (decimal.Decimal, error)
}
