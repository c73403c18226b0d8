package model

import "sort"

// LedgerEntry is a transaction inside a Ledger date group.
type LedgerEntry struct {
	Description string
	Amount      string
}

// Ledger maps a date to its entries. Entries keep insertion order.
type Ledger struct {
	groups map[string][]LedgerEntry
}

// NewLedger returns an empty Ledger.
func NewLedger() *Ledger {
	return &Ledger{groups: make(map[string][]LedgerEntry)}
}

// Touch makes sure date exists as a key, possibly with no entries.
func (l *Ledger) Touch(date string) {
	if _, ok := l.groups[date]; !ok {
		l.groups[date] = nil
	}
}

// Append adds entries to the end of the date group.
func (l *Ledger) Append(date string, entries ...LedgerEntry) {
	l.groups[date] = append(l.groups[date], entries...)
}

// Entries returns the entries recorded for date.
func (l *Ledger) Entries(date string) []LedgerEntry {
	return l.groups[date]
}

// Dates returns every date key in ascending string order.
func (l *Ledger) Dates() []string {
	return sortedKeys(l.groups)
}

// Len returns the number of entries across all dates.
func (l *Ledger) Len() int {
	n := 0
	for _, g := range l.groups {
		n += len(g)
	}
	return n
}

// BalanceSummary maps a YYYY/MM bucket to an accumulated balance.
type BalanceSummary struct {
	buckets map[string]string
}

// NewBalanceSummary returns an empty BalanceSummary.
func NewBalanceSummary() *BalanceSummary {
	return &BalanceSummary{buckets: make(map[string]string)}
}

// Get returns the balance of bucket and whether it has been seen.
func (s *BalanceSummary) Get(bucket string) (string, bool) {
	b, ok := s.buckets[bucket]
	return b, ok
}

// Set stores the balance of bucket.
func (s *BalanceSummary) Set(bucket, balance string) {
	s.buckets[bucket] = balance
}

// Buckets returns every bucket in ascending string order.
func (s *BalanceSummary) Buckets() []string {
	return sortedKeys(s.buckets)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
