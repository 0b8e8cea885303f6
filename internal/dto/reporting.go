package dto

import (
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerReportParams holds the filters for a ledger report.
type LedgerReportParams struct {
	AccountID string     `form:"account_id"`
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
}

// LedgerLineResponse is a posting annotated with the balance after it.
type LedgerLineResponse struct {
	Posting        PostingResponse `json:"posting"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// LedgerReportResponse is a balance trail over a period.
type LedgerReportResponse struct {
	Lines          []LedgerLineResponse `json:"lines"`
	OpeningBalance decimal.Decimal      `json:"openingBalance"`
	ClosingBalance decimal.Decimal      `json:"closingBalance"`
	NetChange      decimal.Decimal      `json:"netChange"`
}

// BalanceResponse carries a single derived balance.
type BalanceResponse struct {
	AccountID      string          `json:"accountID,omitempty"`
	CounterpartyID string          `json:"counterpartyID,omitempty"`
	Balance        decimal.Decimal `json:"balance"`
	AsOf           *time.Time      `json:"asOf,omitempty"`
}

// ToLedgerReportResponse converts a domain ledger report.
func ToLedgerReportResponse(report *domain.LedgerReport) LedgerReportResponse {
	resp := LedgerReportResponse{
		Lines:          make([]LedgerLineResponse, len(report.Lines)),
		OpeningBalance: report.OpeningBalance,
		ClosingBalance: report.ClosingBalance,
		NetChange:      report.NetChange,
	}
	for i, line := range report.Lines {
		resp.Lines[i] = LedgerLineResponse{
			Posting: PostingResponse{
				PostingID:   line.Posting.PostingID,
				PostingDate: line.Posting.PostingDate,
				DocType:     line.Posting.DocType,
				DocumentID:  line.Posting.DocumentID,
				AccountID:   line.Posting.AccountID,
				Direction:   line.Posting.Direction,
				Amount:      line.Posting.Amount,
				Description: line.Posting.Description,
			},
			RunningBalance: line.RunningBalance,
		}
	}
	return resp
}
