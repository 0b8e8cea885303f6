package domain

import "github.com/shopspring/decimal"

// LedgerLine is a journal posting annotated with the running balance after it.
type LedgerLine struct {
	Posting        LedgerPosting   `json:"posting"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// LedgerReport is a point-in-time balance trail over a date range.
// Opening is the running balance immediately before the period's first
// posting, Closing the balance after its last, NetChange their difference.
type LedgerReport struct {
	Lines          []LedgerLine    `json:"lines"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	NetChange      decimal.Decimal `json:"netChange"`
}

// CounterpartyKind selects which control account a counterparty balance is
// computed against.
type CounterpartyKind string

const (
	CounterpartyCustomer CounterpartyKind = "customer"
	CounterpartyVendor   CounterpartyKind = "vendor"
)
