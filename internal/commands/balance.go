package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/balance"
	"github.com/cleared-dev/tally/internal/logger"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/pdftext"
	"github.com/cleared-dev/tally/internal/sheet"
)

type balanceOptions struct {
	bank       string
	inputFiles []string
	inputDir   string
	outputFile string
	account    model.AccountType
}

func newBalanceCommand(g *globals) *cobra.Command {
	var opts balanceOptions

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Extract the ending balance of each statement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			extractors, err := cfg.Extractors()
			if err != nil {
				return err
			}
			e := extractors.Get(opts.bank)
			if e == nil {
				return &model.ConfigError{
					Flag:   "bank",
					Reason: fmt.Sprintf("unknown bank %q (available: %s)", opts.bank, strings.Join(extractors.Banks(), ", ")),
				}
			}
			if e.Sectioned() && opts.account == "" {
				return model.MissingFlag("account-type")
			}
			return runBalance(cmd.Context(), e, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.bank, "bank", "b", "", "balance profile name")
	cmd.Flags().StringArrayVarP(&opts.inputFiles, "input-file-path", "i", nil, "statement file (repeatable)")
	cmd.Flags().StringVarP(&opts.inputDir, "input-directory-path", "I", "", "directory of statements")
	cmd.Flags().StringVarP(&opts.outputFile, "output-file-path", "o", "", "balance file to write")
	cmd.Flags().VarP(&opts.account, "account-type", "t", "account section to read (checking|savings)")

	return cmd
}

func (o balanceOptions) validate() error {
	if o.outputFile == "" {
		return model.MissingFlag("output-file-path")
	}
	if len(o.inputFiles) == 0 && o.inputDir == "" {
		return model.MissingFlag("input-directory-path")
	}
	if o.bank == "" {
		return model.MissingFlag("bank")
	}
	return nil
}

func runBalance(ctx context.Context, e balance.Extractor, opts balanceOptions) error {
	log := logger.FromContext(ctx)

	paths, err := inputPaths(opts.inputFiles, opts.inputDir)
	if err != nil {
		return err
	}

	entries := make([]model.BalanceEntry, 0, len(paths))
	for _, path := range paths {
		log.Info().Str("file", path).Str("bank", e.Bank()).Msg("processing statement file")

		text, err := pdftext.Read(path)
		if err != nil {
			return err
		}
		entry, err := e.Extract(text, opts.account)
		if err != nil {
			return model.WithSource(err, path)
		}
		log.Debug().Str("file", path).Str("date", entry.Date).Str("balance", entry.Balance).Msg("extracted balance")
		entries = append(entries, entry)
	}

	if err := sheet.WriteFile(opts.outputFile, func(w io.Writer) error {
		return sheet.WriteBalances(w, entries)
	}); err != nil {
		return err
	}
	log.Info().Str("file", opts.outputFile).Int("statements", len(entries)).Msg("wrote balances")
	return nil
}
