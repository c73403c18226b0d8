package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/aggregate"
	"github.com/cleared-dev/tally/internal/descriptions"
	"github.com/cleared-dev/tally/internal/importer"
	"github.com/cleared-dev/tally/internal/logger"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/sheet"
)

type statementOptions struct {
	format      string
	inputFiles  []string
	inputDir    string
	outputFile  string
	conversions string
}

func newStatementCommand(g *globals) *cobra.Command {
	var opts statementOptions

	cmd := &cobra.Command{
		Use:   "statement",
		Short: "Parse statement exports into a per-date ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			parsers, err := cfg.Parsers()
			if err != nil {
				return err
			}
			p := parsers.Get(opts.format)
			if p == nil {
				return &model.ConfigError{
					Flag:   "format",
					Reason: fmt.Sprintf("unknown format %q (available: %s)", opts.format, strings.Join(parsers.Formats(), ", ")),
				}
			}
			return runStatement(cmd.Context(), p, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "statement format name")
	cmd.Flags().StringArrayVarP(&opts.inputFiles, "input-file-path", "i", nil, "statement file (repeatable)")
	cmd.Flags().StringVarP(&opts.inputDir, "input-directory-path", "I", "", "directory of statement files")
	cmd.Flags().StringVarP(&opts.outputFile, "output-file-path", "o", "", "ledger file to write")
	cmd.Flags().StringVarP(&opts.conversions, "description-conversion-file-path", "d", "", "description conversion table")

	return cmd
}

func (o statementOptions) validate() error {
	if o.outputFile == "" {
		return model.MissingFlag("output-file-path")
	}
	if len(o.inputFiles) == 0 && o.inputDir == "" {
		return model.MissingFlag("input-file-path")
	}
	if o.format == "" {
		return model.MissingFlag("format")
	}
	return nil
}

func runStatement(ctx context.Context, p importer.Parser, opts statementOptions) error {
	log := logger.FromContext(ctx)

	var rules descriptions.Table
	if opts.conversions != "" {
		var err error
		rules, err = descriptions.Load(opts.conversions)
		if err != nil {
			return err
		}
		log.Debug().Int("rules", len(rules)).Str("file", opts.conversions).Msg("loaded description conversions")
	}

	paths, err := inputPaths(opts.inputFiles, opts.inputDir)
	if err != nil {
		return err
	}

	ledgers := make([]*model.Ledger, 0, len(paths))
	for _, path := range paths {
		log.Info().Str("file", path).Str("format", p.Format()).Msg("processing statement file")

		recs, err := importer.ParseFile(p, path)
		if err != nil {
			return err
		}
		if rules != nil {
			var hits int
			recs, hits = rules.ApplyAll(recs)
			log.Debug().Str("file", path).Int("rewritten", hits).Msg("applied description conversions")
		}
		l := aggregate.GroupByDate(recs)
		log.Debug().Str("file", path).Int("records", len(recs)).Int("dates", len(l.Dates())).Msg("parsed statement")
		ledgers = append(ledgers, l)
	}

	merged := aggregate.MergeLedgers(ledgers...)
	if err := sheet.WriteFile(opts.outputFile, func(w io.Writer) error {
		return sheet.WriteLedger(w, merged)
	}); err != nil {
		return err
	}
	log.Info().Str("file", opts.outputFile).Int("dates", len(merged.Dates())).Int("records", merged.Len()).Msg("wrote ledger")
	return nil
}

// inputPaths returns files followed by the files in dir, in name order.
func inputPaths(files []string, dir string) ([]string, error) {
	paths := append([]string(nil), files...)
	if dir == "" {
		return paths, nil
	}
	found, err := importer.Scan(dir, "")
	if err != nil {
		return nil, err
	}
	for _, f := range found {
		paths = append(paths, f.Path)
	}
	return paths, nil
}
