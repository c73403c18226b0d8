package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cleared-dev/tally/internal/model"
)

// BalanceHeader is the header row of balance and summary files.
const BalanceHeader = "date,balance"

const (
	numBalanceFields = 2
	colDate          = 0
	colBalance       = 1
)

// WriteBalances writes one row per statement, ordered by date then balance.
func WriteBalances(w io.Writer, entries []model.BalanceEntry) error {
	sorted := append([]model.BalanceEntry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		return sorted[i].Balance < sorted[j].Balance
	})

	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(BalanceHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, e := range sorted {
		if err := cw.Write(MarshalBalance(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummary writes one row per bucket in ascending bucket order.
func WriteSummary(w io.Writer, s *model.BalanceSummary) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(BalanceHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, bucket := range s.Buckets() {
		bal, _ := s.Get(bucket)
		if err := cw.Write([]string{bucket, bal}); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalBalance converts a BalanceEntry to a CSV row.
func MarshalBalance(e model.BalanceEntry) []string {
	row := make([]string, numBalanceFields)
	row[colDate] = e.Date
	row[colBalance] = e.Balance
	return row
}

// ReadBalances reads a balance file, skipping its header row.
func ReadBalances(r io.Reader) ([]model.BalanceEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading balance CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	entries := make([]model.BalanceEntry, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != numBalanceFields {
			return nil, &model.FormatError{Line: i + 2, Value: strings.Join(rec, ","), Reason: "expected date,balance"}
		}
		entries = append(entries, model.BalanceEntry{Date: rec[colDate], Balance: rec[colBalance]})
	}
	return entries, nil
}
