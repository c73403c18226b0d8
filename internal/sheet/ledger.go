// Package sheet reads and writes the flat CSV files tally produces.
//
// A ledger file has no header. Each date is a one-field row followed by one
// "description,amount" row per entry:
//
//	01/03/24
//	Amazon,-12.99
//	Coffee,-6.45
//	01/05/24
//	Payroll,2150.00
//
// Balance files start with a "date,balance" header.
package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/money"
)

const (
	colDesc   = 0
	colAmount = 1
)

// WriteLedger writes l with dates in ascending order.
func WriteLedger(w io.Writer, l *model.Ledger) error {
	cw := csv.NewWriter(w)

	for _, date := range l.Dates() {
		if err := cw.Write([]string{date}); err != nil {
			return fmt.Errorf("writing date %s: %w", date, err)
		}
		for i, e := range l.Entries(date) {
			if err := cw.Write(MarshalEntry(e)); err != nil {
				return fmt.Errorf("writing %s entry %d: %w", date, i+1, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalEntry converts a LedgerEntry to a CSV row.
func MarshalEntry(e model.LedgerEntry) []string {
	row := make([]string, 2)
	row[colDesc] = e.Description
	row[colAmount] = e.Amount
	return row
}

// ReadLedger reads a ledger file. An entry row before any date row, an amount
// that is not a two-decimal number, or a row that has neither one nor two
// fields, is a FormatError.
func ReadLedger(r io.Reader) (*model.Ledger, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	l := model.NewLedger()
	date, seenDate := "", false
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading ledger CSV: %w", err)
		}

		switch len(rec) {
		case 1:
			date, seenDate = rec[0], true
			l.Touch(date)
		case 2:
			if !seenDate {
				return nil, &model.FormatError{Line: row, Value: strings.Join(rec, ","), Reason: "entry before any date row"}
			}
			if _, err := money.ParseSigned(rec[colAmount]); err != nil {
				return nil, &model.FormatError{Line: row, Value: rec[colAmount], Reason: "unexpected money format"}
			}
			l.Append(date, model.LedgerEntry{Description: rec[colDesc], Amount: rec[colAmount]})
		default:
			return nil, &model.FormatError{Line: row, Value: strings.Join(rec, ","), Reason: fmt.Sprintf("expected 1 or 2 fields, got %d", len(rec))}
		}
	}
	return l, nil
}
