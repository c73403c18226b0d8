package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/commands"
	"github.com/cleared-dev/tally/internal/config"
	"github.com/cleared-dev/tally/internal/model"
)

const testdata = "../../testdata"

func runTally(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvPath, "")

	cmd := commands.NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

// assertNoOutput checks that a failed run left nothing in dir.
func assertNoOutput(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStatement_BofaWithConversions(t *testing.T) {
	out := filepath.Join(t.TempDir(), "ledger.csv")
	_, err := runTally(t, "statement",
		"--format", "bofa",
		"-i", filepath.Join(testdata, "bofa_statement.txt"),
		"-d", filepath.Join(testdata, "description_conversions.csv"),
		"-o", out,
	)
	require.NoError(t, err)

	want := "01/03/24\n" +
		"Amazon,-12.99\n" +
		"Coffee,-6.45\n" +
		"01/05/24\n" +
		"PAYROLL ACME CORP,2150.00\n" +
		"12/30/23\n" +
		"SHELL OIL 574412,-48.10\n"
	assert.Equal(t, want, readFile(t, out))
}

func TestStatement_ChaseTitleCase(t *testing.T) {
	out := filepath.Join(t.TempDir(), "ledger.csv")
	_, err := runTally(t, "statement", "-f", "chase", "-i", filepath.Join(testdata, "chase_activity.txt"), "-o", out)
	require.NoError(t, err)

	want := "01/02/2024\n" +
		"Wholefds Mkt 10234,-45.20\n" +
		"Uber Trip,-18.75\n" +
		"01/04/2024\n" +
		"Netflix.com,-15.49\n"
	assert.Equal(t, want, readFile(t, out))
}

func TestStatement_MultipleFilesKeepInputOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.txt"), "01/14 TEA $2.00\n")
	writeFile(t, filepath.Join(dir, "a.txt"), "01/14 COFFEE $3.00\n01/13 BAGEL $1.50\n")
	writeFile(t, filepath.Join(dir, ".hidden"), "not a statement\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	extra := filepath.Join(t.TempDir(), "extra.txt")
	writeFile(t, extra, "01/14 JUICE $4.00\n")

	out := filepath.Join(t.TempDir(), "ledger.csv")
	_, err := runTally(t, "statement", "-f", "citi", "-i", extra, "-I", dir, "-o", out)
	require.NoError(t, err)

	want := "01/13\n" +
		"BAGEL,1.50\n" +
		"01/14\n" +
		"JUICE,4.00\n" +
		"COFFEE,3.00\n" +
		"TEA,2.00\n"
	assert.Equal(t, want, readFile(t, out))
}

func TestStatement_MissingFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		flag string
	}{
		{"output", []string{"statement", "-f", "bofa", "-i", "x.txt"}, "output-file-path"},
		{"input", []string{"statement", "-f", "bofa", "-o", "out.csv"}, "input-file-path"},
		{"format", []string{"statement", "-i", "x.txt", "-o", "out.csv"}, "format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runTally(t, tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrConfiguration)
			assert.Equal(t, "please specify --"+tt.flag, err.Error())
		})
	}
}

func TestStatement_UnknownFormat(t *testing.T) {
	dir := t.TempDir()
	_, err := runTally(t, "statement", "-f", "wells", "-i", filepath.Join(testdata, "bofa_statement.txt"), "-o", filepath.Join(dir, "out.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrConfiguration)
	assert.Contains(t, err.Error(), "bofa, bofa-legacy, chase, citi")
	assertNoOutput(t, dir)
}

func TestStatement_FormatErrorWritesNothing(t *testing.T) {
	dir := t.TempDir()
	_, err := runTally(t, "statement", "-f", "chase", "-i", filepath.Join(testdata, "citi_statement.txt"), "-o", filepath.Join(dir, "out.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrFormat)
	assert.Contains(t, err.Error(), "citi_statement.txt")
	assertNoOutput(t, dir)
}

func TestStatement_ProfileFile(t *testing.T) {
	dir := t.TempDir()
	profile := filepath.Join(dir, "tally.yaml")
	writeFile(t, profile, "statements:\n  - name: card\n    layout: dual-date\n    title_case: true\n")

	out := filepath.Join(dir, "ledger.csv")
	_, err := runTally(t, "statement", "--config", profile, "-f", "card", "-i", filepath.Join(testdata, "citi_statement.txt"), "-o", out)
	require.NoError(t, err)
	assert.Contains(t, readFile(t, out), "Payment Thank You,-500.00\n")

	_, err = runTally(t, "statement", "--config", profile, "-f", "citi", "-i", filepath.Join(testdata, "citi_statement.txt"), "-o", out)
	assert.ErrorIs(t, err, model.ErrConfiguration, "profile file replaces the built-in formats")
}

func TestStatement_VerboseLogs(t *testing.T) {
	out := filepath.Join(t.TempDir(), "ledger.csv")
	logs, err := runTally(t, "-v", "statement", "-f", "citi", "-i", filepath.Join(testdata, "citi_statement.txt"), "-o", out)
	require.NoError(t, err)
	assert.Contains(t, logs, "processing statement file")
	assert.Contains(t, logs, "parsed statement")

	logs, err = runTally(t, "statement", "-f", "citi", "-i", filepath.Join(testdata, "citi_statement.txt"), "-o", out)
	require.NoError(t, err)
	assert.Contains(t, logs, "processing statement file")
	assert.NotContains(t, logs, "parsed statement")
}

func TestCombine(t *testing.T) {
	out := filepath.Join(t.TempDir(), "combined.csv")
	_, err := runTally(t, "combine",
		"-i", filepath.Join(testdata, "ledger_a.csv"),
		"-i", filepath.Join(testdata, "ledger_b.csv"),
		"-o", out,
	)
	require.NoError(t, err)

	want := "01/02/24\n" +
		"Uber Trip,-18.75\n" +
		"01/03/24\n" +
		"Amazon,-12.99\n" +
		"Coffee,-6.45\n" +
		"Whole Foods,-45.20\n" +
		"01/05/24\n" +
		"Payroll,2150.00\n"
	assert.Equal(t, want, readFile(t, out))
}

func TestCombine_NoDedup(t *testing.T) {
	out := filepath.Join(t.TempDir(), "combined.csv")
	a := filepath.Join(testdata, "ledger_a.csv")
	_, err := runTally(t, "combine", "-i", a, "-i", a, "-o", out)
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count([]byte(readFile(t, out)), []byte("Amazon,-12.99")))
}

func TestCombine_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.csv")
	writeFile(t, bad, "Amazon,-12.99\n")

	outDir := t.TempDir()
	_, err := runTally(t, "combine", "-i", filepath.Join(testdata, "ledger_a.csv"), "-i", bad, "-o", filepath.Join(outDir, "out.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrFormat)
	assert.Contains(t, err.Error(), "bad.csv:1")
	assertNoOutput(t, outDir)

	_, err = runTally(t, "combine", "-o", filepath.Join(outDir, "out.csv"))
	assert.ErrorIs(t, err, model.ErrConfiguration)
}

func TestCombine_BadAmount(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.csv")
	writeFile(t, in, "01/03/24\nCoffee,$4.5\nTea,abc\n")

	outDir := t.TempDir()
	_, err := runTally(t, "combine", "-i", in, "-o", filepath.Join(outDir, "out.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrFormat)
	assert.Contains(t, err.Error(), "in.csv:2")
	assertNoOutput(t, outDir)
}

func TestBalance_ChaseAccountTypes(t *testing.T) {
	tests := []struct {
		account string
		want    string
	}{
		{"checking", "date,balance\n2024/01/08,1234.56\n"},
		{"savings", "date,balance\n2024/01/08,10012.50\n"},
	}
	for _, tt := range tests {
		t.Run(tt.account, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "balances.csv")
			_, err := runTally(t, "balance", "-b", "chase", "-t", tt.account, "-i", filepath.Join(testdata, "chase_balance.txt"), "-o", out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, readFile(t, out))
		})
	}
}

func TestBalance_ChaseNeedsAccountType(t *testing.T) {
	dir := t.TempDir()
	_, err := runTally(t, "balance", "-b", "chase", "-i", filepath.Join(testdata, "chase_balance.txt"), "-o", filepath.Join(dir, "out.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrConfiguration)
	assert.Equal(t, "please specify --account-type", err.Error())
	assertNoOutput(t, dir)
}

func TestBalance_AccountTypeCheckedBeforeInputs(t *testing.T) {
	dir := t.TempDir()
	profile := filepath.Join(dir, "tally.yaml")
	writeFile(t, profile, "balances:\n  - name: credit-union\n    date_marker: '^through (.*)$'\n    balance_marker: '^Ending \\$(.*)$'\n    sectioned: true\n")

	missing := filepath.Join(dir, "missing.txt")
	_, err := runTally(t, "balance", "--config", profile, "-b", "credit-union", "-i", missing, "-o", filepath.Join(dir, "out.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrConfiguration)
	assert.NotErrorIs(t, err, os.ErrNotExist)
}

func TestBalance_UnknownBank(t *testing.T) {
	_, err := runTally(t, "balance", "-b", "citi", "-i", "x.txt", "-o", "out.csv")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrConfiguration)
	assert.Contains(t, err.Error(), "available: bofa, chase")
}

func TestBalance_InvalidAccountType(t *testing.T) {
	_, err := runTally(t, "balance", "-b", "chase", "-t", "business", "-i", "x.txt", "-o", "out.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checking|savings")
}

func TestBalance_DirectorySortedByDate(t *testing.T) {
	dir := t.TempDir()
	bofa := readFile(t, filepath.Join(testdata, "bofa_balance.txt"))
	writeFile(t, filepath.Join(dir, "a.txt"), bofa)
	writeFile(t, filepath.Join(dir, "b.txt"),
		"for November 8, 2023 to December 7, 2023 Account number: 1234\n"+
			"Ending balance on December 7, 2023 $3,120.44\n")

	out := filepath.Join(t.TempDir(), "balances.csv")
	_, err := runTally(t, "balance", "--bank", "bofa", "-I", dir, "-o", out)
	require.NoError(t, err)

	want := "date,balance\n" +
		"2023/12/07,3120.44\n" +
		"2024/01/05,4201.37\n"
	assert.Equal(t, want, readFile(t, out))
}

func TestBalance_PDFStatement(t *testing.T) {
	out := filepath.Join(t.TempDir(), "balances.csv")
	_, err := runTally(t, "balance", "-b", "bofa", "-i", filepath.Join(testdata, "bofa_balance.pdf"), "-o", out)
	require.NoError(t, err)
	assert.Equal(t, "date,balance\n2024/01/31,1234.56\n", readFile(t, out))
}

func TestBalance_MarkerNotFound(t *testing.T) {
	dir := t.TempDir()
	_, err := runTally(t, "balance", "-b", "bofa", "-i", filepath.Join(testdata, "chase_balance.txt"), "-o", filepath.Join(dir, "out.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Contains(t, err.Error(), "chase_balance.txt: date not found")
	assertNoOutput(t, dir)
}

func TestBalance_MissingFlags(t *testing.T) {
	_, err := runTally(t, "balance", "-b", "bofa", "-i", "x.txt")
	assert.ErrorIs(t, err, model.ErrConfiguration)

	_, err = runTally(t, "balance", "-b", "bofa", "-o", "out.csv")
	assert.ErrorIs(t, err, model.ErrConfiguration)

	_, err = runTally(t, "balance", "-i", "x.txt", "-o", "out.csv")
	assert.ErrorIs(t, err, model.ErrConfiguration)
}

func TestAggregate(t *testing.T) {
	out := filepath.Join(t.TempDir(), "summary.csv")
	_, err := runTally(t, "aggregate",
		"-i", filepath.Join(testdata, "balances_checking.csv"),
		"-i", filepath.Join(testdata, "balances_savings.csv"),
		"-o", out,
	)
	require.NoError(t, err)

	want := "date,balance\n" +
		"2024/01,11247.06\n" +
		"2024/02,11320.00\n"
	assert.Equal(t, want, readFile(t, out))
}

func TestAggregate_OrderIndependent(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.csv")
	writeFile(t, a, "date,balance\n2024/01/15,100.00\n")
	writeFile(t, b, "date,balance\n2024/01/20,50.00\n")

	out1 := filepath.Join(dir, "ab.csv")
	out2 := filepath.Join(dir, "ba.csv")
	_, err := runTally(t, "aggregate", "-i", a, "-i", b, "-o", out1)
	require.NoError(t, err)
	_, err = runTally(t, "aggregate", "-i", b, "-i", a, "-o", out2)
	require.NoError(t, err)

	assert.Equal(t, "date,balance\n2024/01,150.00\n", readFile(t, out1))
	assert.Equal(t, readFile(t, out1), readFile(t, out2))
}

func TestAggregate_SignedBalanceRejected(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.csv")
	writeFile(t, in, "date,balance\n2024/01/15,-100.00\n")

	_, err := runTally(t, "aggregate", "-i", in, "-o", filepath.Join(dir, "out.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrFormat)
	assert.Contains(t, err.Error(), "in.csv")
	_, statErr := os.Stat(filepath.Join(dir, "out.csv"))
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.yaml")
	out, err := runTally(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote default profiles to "+path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = runTally(t, "config", "init", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestVersion(t *testing.T) {
	out, err := runTally(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "tally version dev")
}
