package sheet

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cleared-dev/tally/internal/model"
)

// WriteFile writes path through write. The content goes to a temporary file
// next to path and is renamed into place only when write succeeds, so a
// failed run never leaves a partial output behind.
func WriteFile(path string, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("setting output mode: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("moving output into place: %w", err)
	}
	return nil
}

// ReadLedgerFile reads a ledger file from disk.
func ReadLedgerFile(path string) (*model.Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	l, err := ReadLedger(f)
	if err != nil {
		return nil, model.WithSource(err, path)
	}
	return l, nil
}

// ReadBalancesFile reads a balance file from disk.
func ReadBalancesFile(path string) ([]model.BalanceEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening balances: %w", err)
	}
	defer f.Close()

	entries, err := ReadBalances(f)
	if err != nil {
		return nil, model.WithSource(err, path)
	}
	return entries, nil
}
