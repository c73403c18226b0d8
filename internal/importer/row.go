package importer

import (
	"io"
	"strings"

	"github.com/cleared-dev/tally/internal/model"
)

// RowParser reads exports with one transaction per line:
//
//	01/15/24 01/15/24 AMAZON MKTP US 8477 5521 -12.00
//
// The first token is the date and the last is the amount. The description is
// every token from the third up to, but not including, the last three.
type RowParser struct {
	Name      string
	TitleCase bool
}

const rowMinTokens = 2

// Format returns the parser name.
func (p *RowParser) Format() string { return p.Name }

// Parse reads every non-blank line as a record.
func (p *RowParser) Parse(r io.Reader) ([]model.TransactionRecord, error) {
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
		if len(tokens) < rowMinTokens {
			return nil, &model.FormatError{Line: i + 1, Value: line, Reason: "malformed line"}
		}

		amount, err := parseAmount(tokens[len(tokens)-1], i+1)
		if err != nil {
			return nil, err
		}

		var desc string
		if len(tokens) > 5 {
			desc = strings.Join(tokens[2:len(tokens)-3], " ")
		}

		recs = append(recs, model.TransactionRecord{
			Date:        tokens[0],
			Description: caseDescription(desc, p.TitleCase),
			Amount:      amount,
		})
	}
	return recs, nil
}
