package accounting_test

import (
	"testing"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/bizbooks/bizbooks_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func posting(direction domain.PostingDirection, amount int64) domain.LedgerPosting {
	return domain.LedgerPosting{
		Direction: direction,
		Amount:    decimal.NewFromInt(amount),
	}
}

func TestSignedAmount(t *testing.T) {
	assert.True(t, accounting.SignedAmount(posting(domain.Debit, 1000)).Equal(decimal.NewFromInt(1000)))
	assert.True(t, accounting.SignedAmount(posting(domain.Credit, 1000)).Equal(decimal.NewFromInt(-1000)))
}

func TestRunningBalances(t *testing.T) {
	postings := []domain.LedgerPosting{
		posting(domain.Debit, 1000),
		posting(domain.Credit, 1000),
		posting(domain.Debit, 500),
	}

	lines := accounting.RunningBalances(postings, decimal.Zero)

	assert.Len(t, lines, 3)
	assert.True(t, lines[0].RunningBalance.Equal(decimal.NewFromInt(1000)))
	assert.True(t, lines[1].RunningBalance.Equal(decimal.Zero))
	assert.True(t, lines[2].RunningBalance.Equal(decimal.NewFromInt(500)))
}

func TestRunningBalancesWithOpeningBalance(t *testing.T) {
	lines := accounting.RunningBalances([]domain.LedgerPosting{
		posting(domain.Credit, 300),
	}, decimal.NewFromInt(1000))

	assert.Len(t, lines, 1)
	assert.True(t, lines[0].RunningBalance.Equal(decimal.NewFromInt(700)))
}

func TestSumPostings(t *testing.T) {
	sum := accounting.SumPostings([]domain.LedgerPosting{
		posting(domain.Debit, 5000),
		posting(domain.Credit, 3000),
	})
	assert.True(t, sum.Equal(decimal.NewFromInt(2000)))

	assert.True(t, accounting.SumPostings(nil).Equal(decimal.Zero))
}
