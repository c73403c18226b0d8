// Package money holds exact two-decimal currency amounts.
package money

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

var (
	unsignedPattern = regexp.MustCompile(`^\d+\.\d\d$`)
	signedPattern   = regexp.MustCompile(`^-?\d+\.\d\d$`)
)

// Money is an exact amount with two fractional digits.
type Money struct {
	d decimal.Decimal
}

// Zero is "0.00".
var Zero = Money{}

// Parse reads an unsigned amount such as "1234.50".
func Parse(s string) (Money, error) {
	if !unsignedPattern.MatchString(s) {
		return Money{}, &model.FormatError{Value: s, Reason: "unexpected money format"}
	}
	return fromString(s)
}

// ParseSigned reads an amount that may carry a leading minus sign.
func ParseSigned(s string) (Money, error) {
	if !signedPattern.MatchString(s) {
		return Money{}, &model.FormatError{Value: s, Reason: "unexpected money format"}
	}
	return fromString(s)
}

func fromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, &model.FormatError{Value: s, Reason: "unexpected money format"}
	}
	return Money{d: d}, nil
}

// Normalize strips currency symbols, thousands separators and surrounding
// spaces from human money text: "$1,234.56" -> "1234.56", "-$4.00" -> "-4.00".
func Normalize(human string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '$', ',', ' ', '\t':
			return -1
		}
		return r
	}, human)
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{d: m.d.Add(o.d)}
}

// String renders m with exactly two fractional digits and at least one integer digit.
func (m Money) String() string {
	return m.d.StringFixed(2)
}

// Add sums two unsigned amount strings exactly.
func Add(a, b string) (string, error) {
	ma, err := Parse(a)
	if err != nil {
		return "", err
	}
	mb, err := Parse(b)
	if err != nil {
		return "", err
	}
	return ma.Add(mb).String(), nil
}
