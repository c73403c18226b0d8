package importer

import (
	"io"
	"strconv"
	"strings"

	"github.com/cleared-dev/tally/internal/model"
)

// ColumnarParser reads exports laid out as three blocks of equal length:
// all dates, then all descriptions, then all amounts. Line i of each block
// forms one record.
type ColumnarParser struct {
	Name      string
	TitleCase bool
}

// Format returns the parser name.
func (p *ColumnarParser) Format() string { return p.Name }

// Parse splits the text into its three blocks. A line count that is not a
// multiple of three fails before any record is built.
func (p *ColumnarParser) Parse(r io.Reader) ([]model.TransactionRecord, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	if len(lines)%3 != 0 {
		return nil, &model.FormatError{
			Value:  strconv.Itoa(len(lines)),
			Reason: "the number of lines is not a multiple of 3",
		}
	}

	n := len(lines) / 3
	if n == 0 {
		return nil, nil
	}

	recs := make([]model.TransactionRecord, 0, n)
	for i := 0; i < n; i++ {
		amtLine := 2*n + i + 1
		amount, err := parseAmount(strings.TrimSpace(lines[2*n+i]), amtLine)
		if err != nil {
			return nil, err
		}
		recs = append(recs, model.TransactionRecord{
			Date:        strings.TrimSpace(lines[i]),
			Description: caseDescription(strings.TrimSpace(lines[n+i]), p.TitleCase),
			Amount:      amount,
		})
	}
	return recs, nil
}
