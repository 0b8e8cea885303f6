package accounting

import (
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount maps a posting to its contribution to a running ledger
// balance: debits add, credits subtract. The fold is direction-based and
// independent of the account's accounting type; ledger reports present every
// account as a debit-positive trail.
func SignedAmount(p domain.LedgerPosting) decimal.Decimal {
	if p.Direction == domain.Debit {
		return p.Amount
	}
	return p.Amount.Neg()
}

// RunningBalances folds postings (assumed ordered by posting date ascending)
// into ledger lines, attaching the balance after each posting. The starting
// balance is the balance carried in from before the first posting.
func RunningBalances(postings []domain.LedgerPosting, starting decimal.Decimal) []domain.LedgerLine {
	lines := make([]domain.LedgerLine, len(postings))
	running := starting
	for i, p := range postings {
		running = running.Add(SignedAmount(p))
		lines[i] = domain.LedgerLine{Posting: p, RunningBalance: running}
	}
	return lines
}

// SumPostings folds postings into a single balance without materializing lines.
func SumPostings(postings []domain.LedgerPosting) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range postings {
		sum = sum.Add(SignedAmount(p))
	}
	return sum
}
