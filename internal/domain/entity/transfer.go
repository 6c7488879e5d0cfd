package entity

// LedgerRow is the flat tabular shape of a spending used for import and export.
type LedgerRow struct {
	Date        string
	Amount      string
	Currency    string
	Category    string
	Description string
}

// RejectedRow is an import row that could not be accepted.
type RejectedRow struct {
	Line   int // 1-based position in the imported batch
	Row    LedgerRow
	Reason string
}

// ImportResult summarizes a partial-success import.
type ImportResult struct {
	Accepted      int
	Rejected      []RejectedRow
	NewCategories []string
	NewCurrencies []string
}
