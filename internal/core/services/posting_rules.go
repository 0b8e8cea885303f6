package services

import (
	"errors"
	"fmt"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrInvalidAmount       = errors.New("amount must be a positive whole number of minor currency units")
	ErrUnknownDocumentType = errors.New("unknown document type")
)

// PostingDraft is an account-name-level posting produced by the rules engine,
// before names are resolved to account ids.
type PostingDraft struct {
	AccountName string
	Direction   domain.PostingDirection
	Amount      decimal.Decimal
}

type accountPair struct {
	debit  string
	credit string
}

// postingRules is the single mapping from business event to the debit/credit
// account pair it posts against. The pairs are fixed policy, not
// configuration; every event type must name both sides of its entry here.
var postingRules = map[domain.DocumentType]accountPair{
	domain.DocPaymentIn:       {debit: domain.AccountBankCash, credit: domain.AccountReceivable},
	domain.DocSalesInvoice:    {debit: domain.AccountReceivable, credit: domain.AccountSalesRevenue},
	domain.DocSalesReturn:     {debit: domain.AccountSalesReturns, credit: domain.AccountReceivable},
	domain.DocPaymentOut:      {debit: domain.AccountPayable, credit: domain.AccountBankCash},
	domain.DocPurchaseInvoice: {debit: domain.AccountInventory, credit: domain.AccountPayable},
	domain.DocPurchaseReturn:  {debit: domain.AccountPayable, credit: domain.AccountPurchaseReturns},
	domain.DocIncome:          {debit: domain.AccountBankCash, credit: domain.AccountIncome},
	domain.DocExpense:         {debit: domain.AccountExpenses, credit: domain.AccountBankCash},
}

// feedInflow marks the document types whose feed amounts are positive. The
// remaining types are outflows and stored negative. This convention serves
// the human-readable feed and is independent of debit/credit.
var feedInflow = map[domain.DocumentType]bool{
	domain.DocPaymentIn:       true,
	domain.DocSalesInvoice:    true,
	domain.DocIncome:          true,
	domain.DocPurchaseReturn:  true,
	domain.DocPaymentOut:      false,
	domain.DocPurchaseInvoice: false,
	domain.DocExpense:         false,
	domain.DocSalesReturn:     false,
}

// DeriveEntries maps a business event to the two postings it requires: one
// debit and one credit of the identical amount. This is the fundamental
// double-entry guarantee; callers must persist both drafts in one atomic
// batch together with the source document itself.
func DeriveEntries(docType domain.DocumentType, amount decimal.Decimal) ([2]PostingDraft, error) {
	var drafts [2]PostingDraft

	rule, ok := postingRules[docType]
	if !ok {
		return drafts, fmt.Errorf("%w: %s", ErrUnknownDocumentType, docType)
	}

	if err := validateAmount(amount); err != nil {
		return drafts, err
	}

	drafts[0] = PostingDraft{AccountName: rule.debit, Direction: domain.Debit, Amount: amount}
	drafts[1] = PostingDraft{AccountName: rule.credit, Direction: domain.Credit, Amount: amount}
	return drafts, nil
}

// FeedAmount returns the signed amount the transaction feed stores for an
// event of the given type.
func FeedAmount(docType domain.DocumentType, amount decimal.Decimal) (decimal.Decimal, error) {
	inflow, ok := feedInflow[docType]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownDocumentType, docType)
	}
	if err := validateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	if inflow {
		return amount, nil
	}
	return amount.Neg(), nil
}

// validateAmount rejects zero, negative and fractional minor-unit amounts.
// The original mobile app did not validate this; the check is added here so
// an unbalanced or nonsensical posting can never enter the journal.
func validateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) || !amount.IsInteger() {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, amount.String())
	}
	return nil
}
