package models

// TransactionType carries the direction of a transaction. Amounts are always
// stored as positive magnitudes; the direction lives here.
type TransactionType string

// Transaction types
const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// PendingDate is the literal date marker for rows that have no posting date yet.
const PendingDate = "Pending"

// DateLayoutISO is the canonical output layout for Transaction.Date.
const DateLayoutISO = "2006-01-02"

// Categories
const (
	CategoryUncategorized = "Uncategorized"
	CategoryFood          = "Food"
	CategoryTransport     = "Transportation"
	CategoryEntertainment = "Entertainment"
	CategoryUtilities     = "Utilities"
	CategoryShopping      = "Shopping"
	CategoryHealthcare    = "Healthcare"
	CategoryFinance       = "Finance"
)

// File permissions
const (
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
