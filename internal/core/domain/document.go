package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType enumerates the business events that produce ledger postings.
type DocumentType string

const (
	DocSalesInvoice    DocumentType = "SALES_INVOICE"
	DocSalesReturn     DocumentType = "SALES_RETURN"
	DocPurchaseInvoice DocumentType = "PURCHASE_INVOICE"
	DocPurchaseReturn  DocumentType = "PURCHASE_RETURN"
	DocPaymentIn       DocumentType = "PAYMENT_IN"
	DocPaymentOut      DocumentType = "PAYMENT_OUT"
	DocIncome          DocumentType = "INCOME"
	DocExpense         DocumentType = "EXPENSE"
)

// DocumentTypes lists every known document type.
var DocumentTypes = []DocumentType{
	DocSalesInvoice, DocSalesReturn,
	DocPurchaseInvoice, DocPurchaseReturn,
	DocPaymentIn, DocPaymentOut,
	DocIncome, DocExpense,
}

// ParseDocumentType converts the kebab-case route form (e.g. "sales-invoice")
// or the canonical form into a DocumentType.
func ParseDocumentType(s string) (DocumentType, error) {
	switch s {
	case "sales-invoice", string(DocSalesInvoice):
		return DocSalesInvoice, nil
	case "sales-return", string(DocSalesReturn):
		return DocSalesReturn, nil
	case "purchase-invoice", string(DocPurchaseInvoice):
		return DocPurchaseInvoice, nil
	case "purchase-return", string(DocPurchaseReturn):
		return DocPurchaseReturn, nil
	case "payment-in", string(DocPaymentIn):
		return DocPaymentIn, nil
	case "payment-out", string(DocPaymentOut):
		return DocPaymentOut, nil
	case "income", string(DocIncome):
		return DocIncome, nil
	case "expense", string(DocExpense):
		return DocExpense, nil
	default:
		return "", fmt.Errorf("unknown document type %q", s)
	}
}

// DocumentStatus tracks the lifecycle state of a source document.
type DocumentStatus string

const (
	StatusPending   DocumentStatus = "PENDING"
	StatusCompleted DocumentStatus = "COMPLETED"
	StatusCancelled DocumentStatus = "CANCELLED"
)

// SourceDocument is a business document (invoice, return, payment, income,
// expense). The ledger is a derived audit trail keyed by (DocType, DocumentID);
// the document itself is owned independently of its postings.
type SourceDocument struct {
	DocumentID     string          `json:"documentID"`
	TenantID       string          `json:"tenantID"`
	DocType        DocumentType    `json:"docType"`
	Amount         decimal.Decimal `json:"amount"` // minor currency units
	DocumentDate   time.Time       `json:"documentDate"`
	Status         DocumentStatus  `json:"status"`
	CounterpartyID string          `json:"counterpartyID"` // customer or vendor, may be empty
	PaymentMethod  string          `json:"paymentMethod"`
	Description    string          `json:"description"`
	AuditFields
}

// DocumentItem is a single line on a source document, where applicable.
type DocumentItem struct {
	ItemID     string          `json:"itemID"`
	DocumentID string          `json:"documentID"`
	TenantID   string          `json:"tenantID"`
	Name       string          `json:"name"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"` // minor currency units
}
