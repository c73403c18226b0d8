// Package balance pulls the period-end date and ending balance out of
// statement text.
package balance

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cleared-dev/tally/internal/dates"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/money"
)

// Extractor finds one (date, balance) pair in the full text of a statement.
type Extractor interface {
	Extract(text string, account model.AccountType) (model.BalanceEntry, error)
	Bank() string
	// Sectioned reports whether Extract needs an account type.
	Sectioned() bool
}

var sectionLabels = map[model.AccountType]string{
	model.AccountTypeChecking: "CHECKING SUMMARY",
	model.AccountTypeSavings:  "SAVINGS SUMMARY",
}

// SectionLabel returns the summary header that opens the account's section.
func SectionLabel(account model.AccountType) (string, bool) {
	l, ok := sectionLabels[account]
	return l, ok
}

// MarkerExtractor scans statement lines with two single-group patterns.
// DateMarker captures a human date ("January 5, 2024") and BalanceMarker
// captures the ending balance text. When Sections is set the balance is
// only looked for after the line equal to the account's section label.
type MarkerExtractor struct {
	Name          string
	DateMarker    *regexp.Regexp
	BalanceMarker *regexp.Regexp
	Sections      bool
}

// NewMarkerExtractor compiles the two markers. Each must have exactly one
// capture group.
func NewMarkerExtractor(name, dateMarker, balanceMarker string, sections bool) (*MarkerExtractor, error) {
	dm, err := compileMarker(dateMarker)
	if err != nil {
		return nil, fmt.Errorf("date marker: %w", err)
	}
	bm, err := compileMarker(balanceMarker)
	if err != nil {
		return nil, fmt.Errorf("balance marker: %w", err)
	}
	return &MarkerExtractor{Name: name, DateMarker: dm, BalanceMarker: bm, Sections: sections}, nil
}

func compileMarker(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	if re.NumSubexp() != 1 {
		return nil, fmt.Errorf("%q must have exactly one capture group", pattern)
	}
	return re, nil
}

// Bank returns the extractor name.
func (e *MarkerExtractor) Bank() string { return e.Name }

// Sectioned reports whether the extractor gates on an account section.
func (e *MarkerExtractor) Sectioned() bool { return e.Sections }

// Extract returns the statement's period-end date and ending balance.
func (e *MarkerExtractor) Extract(text string, account model.AccountType) (model.BalanceEntry, error) {
	lines := splitLines(text)

	date, err := e.extractDate(lines)
	if err != nil {
		return model.BalanceEntry{}, err
	}
	bal, err := e.extractBalance(lines, account)
	if err != nil {
		return model.BalanceEntry{}, err
	}
	return model.BalanceEntry{Date: date, Balance: bal}, nil
}

func (e *MarkerExtractor) extractDate(lines []string) (string, error) {
	for _, line := range lines {
		m := e.DateMarker.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		return dates.Normalize(m[1])
	}
	return "", &model.NotFoundError{What: "date"}
}

func (e *MarkerExtractor) extractBalance(lines []string, account model.AccountType) (string, error) {
	inSection := !e.Sections
	var label string
	if e.Sections {
		l, ok := SectionLabel(account)
		if !ok {
			return "", &model.ConfigError{Flag: "account-type", Reason: fmt.Sprintf("%s statements need --account-type checking|savings", e.Name)}
		}
		label = l
	}

	for _, line := range lines {
		if !inSection {
			inSection = strings.TrimSpace(line) == label
			continue
		}
		m := e.BalanceMarker.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		return normalizeBalance(m[1])
	}
	return "", &model.NotFoundError{What: "balance"}
}

func normalizeBalance(human string) (string, error) {
	amt := money.Normalize(human)
	if _, err := money.Parse(amt); err != nil {
		return "", &model.FormatError{Value: human, Reason: "unexpected money format"}
	}
	return amt, nil
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}
	return lines
}
