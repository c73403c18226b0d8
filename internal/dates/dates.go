// Package dates converts statement date text into sortable date strings.
package dates

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cleared-dev/tally/internal/model"
)

var (
	humanPattern = regexp.MustCompile(`^(\w+) (\d+), (\d+)$`)
	shortPattern = regexp.MustCompile(`^\d\d/\d\d$`)
	fullPattern  = regexp.MustCompile(`^(\d+)/(\d+)/(\d+)$`)
)

var months = map[string]string{
	"January":   "01",
	"February":  "02",
	"March":     "03",
	"April":     "04",
	"May":       "05",
	"June":      "06",
	"July":      "07",
	"August":    "08",
	"September": "09",
	"October":   "10",
	"November":  "11",
	"December":  "12",
}

// MonthNumber returns the two-digit month for an English month name.
func MonthNumber(name string) (string, bool) {
	m, ok := months[name]
	return m, ok
}

// Normalize turns "January 5, 2023" into "2023/01/05".
func Normalize(human string) (string, error) {
	human = strings.TrimSpace(human)
	m := humanPattern.FindStringSubmatch(human)
	if m == nil {
		return "", &model.FormatError{Value: human, Reason: "unexpected date format"}
	}

	month, ok := MonthNumber(m[1])
	if !ok {
		return "", &model.FormatError{Value: m[1], Reason: "unexpected month name"}
	}

	day := m[2]
	switch len(day) {
	case 1:
		day = "0" + day
	case 2:
	default:
		return "", &model.FormatError{Value: day, Reason: "unexpected day format"}
	}

	return fmt.Sprintf("%s/%s/%s", m[3], month, day), nil
}

// ToMonth reduces a full date to its year/month bucket. Year-first dates
// ("2024/01/15") and year-last dates ("3/14/2024") are both accepted; the
// month token is kept exactly as written.
func ToMonth(full string) (string, error) {
	m := fullPattern.FindStringSubmatch(full)
	if m == nil {
		return "", &model.FormatError{Value: full, Reason: "unexpected date format"}
	}
	switch {
	case len(m[1]) == 4:
		return m[1] + "/" + m[2], nil
	case len(m[3]) == 4:
		return m[3] + "/" + m[1], nil
	}
	return "", &model.FormatError{Value: full, Reason: "unexpected date format"}
}

// IsShortDate reports whether tok looks like "MM/DD".
func IsShortDate(tok string) bool {
	return shortPattern.MatchString(tok)
}
