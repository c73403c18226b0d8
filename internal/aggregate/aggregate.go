// Package aggregate folds parsed records into ledgers and monthly balance summaries.
package aggregate

import (
	"github.com/cleared-dev/tally/internal/dates"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/money"
)

// GroupByDate groups records by their raw date, keeping input order inside
// each date.
func GroupByDate(recs []model.TransactionRecord) *model.Ledger {
	l := model.NewLedger()
	for _, r := range recs {
		l.Append(r.Date, r.Entry())
	}
	return l
}

// MergeLedgers concatenates the groups of every ledger per date, in the order
// the ledgers are given. Nothing is deduplicated.
func MergeLedgers(ledgers ...*model.Ledger) *model.Ledger {
	out := model.NewLedger()
	for _, l := range ledgers {
		for _, date := range l.Dates() {
			out.Touch(date)
			out.Append(date, l.Entries(date)...)
		}
	}
	return out
}

// AddBalances accumulates entries into summary by year/month bucket. A bucket
// seen for the first time starts at "0.00".
func AddBalances(summary *model.BalanceSummary, entries []model.BalanceEntry) error {
	for _, e := range entries {
		bucket, err := dates.ToMonth(e.Date)
		if err != nil {
			return err
		}

		acc, ok := summary.Get(bucket)
		if !ok {
			acc = money.Zero.String()
		}

		sum, err := money.Add(acc, e.Balance)
		if err != nil {
			return err
		}
		summary.Set(bucket, sum)
	}
	return nil
}
