package model

// TransactionRecord is one parsed statement line.
type TransactionRecord struct {
	Date        string // raw source token, e.g. "01/15/24" or "01/15"
	Description string
	Amount      string // two fractional digits, no currency symbol or separators
}

// Entry returns the record without its date, as stored in a Ledger group.
func (r TransactionRecord) Entry() LedgerEntry {
	return LedgerEntry{Description: r.Description, Amount: r.Amount}
}

// WithDescription returns a copy of r carrying a new description.
func (r TransactionRecord) WithDescription(desc string) TransactionRecord {
	return TransactionRecord{Date: r.Date, Description: desc, Amount: r.Amount}
}

// BalanceEntry is the statement period-end date and ending balance of one statement.
type BalanceEntry struct {
	Date    string // YYYY/MM/DD
	Balance string
}
