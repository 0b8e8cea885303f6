package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Names of the default accounts provisioned for every tenant. The posting
// rules engine binds to accounts by these exact names, so they must exist
// before any document is recorded.
const (
	AccountBankCash        = "Bank/Cash"
	AccountReceivable      = "Accounts Receivable"
	AccountInventory       = "Inventory"
	AccountPayable         = "Accounts Payable"
	AccountSalesRevenue    = "Sales Revenue"
	AccountSalesReturns    = "Sales Returns"
	AccountPurchaseReturns = "Purchase Returns"
	AccountIncome          = "Income"
	AccountExpenses        = "Expenses"
)

// Account is a named bucket in a tenant's chart of accounts.
// Names are unique per tenant.
type Account struct {
	AccountID       string      `json:"accountID"`
	TenantID        string      `json:"tenantID"`
	Name            string      `json:"name"`
	AccountType     AccountType `json:"accountType"`
	Description     string      `json:"description"`
	IsSystemDefault bool        `json:"isSystemDefault"`
	AuditFields
}
