package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/aggregate"
	"github.com/cleared-dev/tally/internal/logger"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/sheet"
)

func newAggregateCommand() *cobra.Command {
	var inputFiles []string
	var outputFile string

	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Sum balance files into monthly totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputFile == "" {
				return model.MissingFlag("output-file-path")
			}
			if len(inputFiles) == 0 {
				return model.MissingFlag("input-file-path")
			}

			log := logger.FromContext(cmd.Context())
			summary := model.NewBalanceSummary()
			for _, path := range inputFiles {
				log.Info().Str("file", path).Msg("processing balance file")
				entries, err := sheet.ReadBalancesFile(path)
				if err != nil {
					return err
				}
				if err := aggregate.AddBalances(summary, entries); err != nil {
					return model.WithSource(err, path)
				}
			}
			for _, bucket := range summary.Buckets() {
				total, _ := summary.Get(bucket)
				log.Debug().Str("month", bucket).Str("balance", total).Msg("bucket total")
			}

			if err := sheet.WriteFile(outputFile, func(w io.Writer) error {
				return sheet.WriteSummary(w, summary)
			}); err != nil {
				return err
			}
			log.Info().Str("file", outputFile).Int("months", len(summary.Buckets())).Msg("wrote balance summary")
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&inputFiles, "input-file-path", "i", nil, "balance file (repeatable)")
	cmd.Flags().StringVarP(&outputFile, "output-file-path", "o", "", "summary file to write")

	return cmd
}
