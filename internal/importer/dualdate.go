package importer

import (
	"io"
	"strings"

	"github.com/cleared-dev/tally/internal/dates"
	"github.com/cleared-dev/tally/internal/model"
)

// DualDateParser reads exports whose lines start with either a transaction
// and a posting date or a single date:
//
//	01/14 01/15 WHOLEFDS MKT 10234 $45.20
//	01/16 PAYMENT THANK YOU -$500.00
//
// The first date is kept. The last token is the amount.
type DualDateParser struct {
	Name      string
	TitleCase bool
}

// Format returns the parser name.
func (p *DualDateParser) Format() string { return p.Name }

// Parse reads every non-blank line as a record.
func (p *DualDateParser) Parse(r io.Reader) ([]model.TransactionRecord, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	var recs []model.TransactionRecord
	for i, line := range lines {
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}

		descStart := 1
		if len(tokens) >= 3 && dates.IsShortDate(tokens[0]) && dates.IsShortDate(tokens[1]) {
			descStart = 2
		}
		if len(tokens) < 2 {
			return nil, &model.FormatError{Line: i + 1, Value: line, Reason: "malformed line"}
		}

		amount, err := parseAmount(tokens[len(tokens)-1], i+1)
		if err != nil {
			return nil, err
		}

		recs = append(recs, model.TransactionRecord{
			Date:        tokens[0],
			Description: caseDescription(strings.Join(tokens[descStart:len(tokens)-1], " "), p.TitleCase),
			Amount:      amount,
		})
	}
	return recs, nil
}
