// Package descriptions rewrites transaction descriptions.
package descriptions

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/cleared-dev/tally/internal/model"
)

// Column headers of a description conversion file.
const (
	PatternColumn     = "Description Regex Pattern"
	ReplacementColumn = "Substituting Name"
)

// Rule replaces a whole description when Pattern matches anywhere in it.
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// Table is an ordered rule list. The first matching rule wins.
type Table []Rule

// Rewrite returns the replacement of the first rule matching desc.
func (t Table) Rewrite(desc string) (string, bool) {
	for _, r := range t {
		if r.Pattern.MatchString(desc) {
			return r.Replacement, true
		}
	}
	return desc, false
}

// Apply returns rec with its description rewritten, or rec itself if no rule matches.
func (t Table) Apply(rec model.TransactionRecord) model.TransactionRecord {
	desc, ok := t.Rewrite(rec.Description)
	if !ok {
		return rec
	}
	return rec.WithDescription(desc)
}

// ApplyAll rewrites every record and reports how many matched a rule.
func (t Table) ApplyAll(recs []model.TransactionRecord) ([]model.TransactionRecord, int) {
	out := make([]model.TransactionRecord, len(recs))
	hits := 0
	for i, rec := range recs {
		out[i] = t.Apply(rec)
		if out[i] != rec {
			hits++
		}
	}
	return out, hits
}

// ReadTable reads a conversion CSV. Columns are found by header name; a
// pattern listed twice keeps its first position and its last replacement.
func ReadTable(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading conversion header: %w", err)
	}

	colPattern, colReplacement := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) {
		case PatternColumn:
			colPattern = i
		case ReplacementColumn:
			colReplacement = i
		}
	}
	if colPattern < 0 || colReplacement < 0 {
		return nil, &model.FormatError{
			Value:  strings.Join(header, ","),
			Reason: fmt.Sprintf("conversion header must name %q and %q", PatternColumn, ReplacementColumn),
		}
	}

	var table Table
	index := make(map[string]int)
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		if colPattern >= len(rec) || colReplacement >= len(rec) {
			return nil, &model.FormatError{Line: row, Value: strings.Join(rec, ","), Reason: "missing conversion column"}
		}

		pattern, replacement := rec[colPattern], rec[colReplacement]
		if i, ok := index[pattern]; ok {
			table[i].Replacement = replacement
			continue
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, &model.FormatError{Line: row, Value: pattern, Reason: "invalid description pattern"}
		}
		index[pattern] = len(table)
		table = append(table, Rule{Pattern: re, Replacement: replacement})
	}
	return table, nil
}

// Load reads a conversion CSV from disk.
func Load(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening description conversions: %w", err)
	}
	defer f.Close()

	table, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("reading description conversions: %w", model.WithSource(err, path))
	}
	return table, nil
}
