package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/aggregate"
	"github.com/cleared-dev/tally/internal/logger"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/sheet"
)

func newCombineCommand() *cobra.Command {
	var inputFiles []string
	var outputFile string

	cmd := &cobra.Command{
		Use:   "combine",
		Short: "Merge ledger files per date, in input order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputFile == "" {
				return model.MissingFlag("output-file-path")
			}
			if len(inputFiles) == 0 {
				return model.MissingFlag("input-file-path")
			}

			log := logger.FromContext(cmd.Context())
			ledgers := make([]*model.Ledger, 0, len(inputFiles))
			for _, path := range inputFiles {
				log.Info().Str("file", path).Msg("processing ledger file")
				l, err := sheet.ReadLedgerFile(path)
				if err != nil {
					return err
				}
				log.Debug().Str("file", path).Int("records", l.Len()).Msg("read ledger")
				ledgers = append(ledgers, l)
			}

			merged := aggregate.MergeLedgers(ledgers...)
			if err := sheet.WriteFile(outputFile, func(w io.Writer) error {
				return sheet.WriteLedger(w, merged)
			}); err != nil {
				return err
			}
			log.Info().Str("file", outputFile).Int("dates", len(merged.Dates())).Int("records", merged.Len()).Msg("wrote ledger")
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&inputFiles, "input-file-path", "i", nil, "ledger file (repeatable)")
	cmd.Flags().StringVarP(&outputFile, "output-file-path", "o", "", "combined ledger file to write")

	return cmd
}
