package model

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// AccountType selects an account section in statements that carry several.
type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
)

// AccountTypes lists the accepted account types in display order.
var AccountTypes = []AccountType{AccountTypeChecking, AccountTypeSavings}

var _ pflag.Value = (*AccountType)(nil)

// ParseAccountType validates s as an account type.
func ParseAccountType(s string) (AccountType, error) {
	for _, at := range AccountTypes {
		if string(at) == s {
			return at, nil
		}
	}
	return "", fmt.Errorf("invalid account type %q (want %s)", s, accountTypeChoices())
}

// String implements pflag.Value.
func (a *AccountType) String() string { return string(*a) }

// Set implements pflag.Value.
func (a *AccountType) Set(s string) error {
	at, err := ParseAccountType(s)
	if err != nil {
		return err
	}
	*a = at
	return nil
}

// Type implements pflag.Value.
func (a *AccountType) Type() string { return "account-type" }

func accountTypeChoices() string {
	names := make([]string, len(AccountTypes))
	for i, at := range AccountTypes {
		names[i] = string(at)
	}
	return strings.Join(names, "|")
}
