package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/dataprep/pkg/config"
	"github.com/ajitpratap0/dataprep/pkg/random"
	"github.com/ajitpratap0/dataprep/pkg/report"
	"github.com/ajitpratap0/dataprep/pkg/rows"
	"github.com/ajitpratap0/dataprep/pkg/sampling"
)

func newSubsampleCmd() *cobra.Command {
	var common commonFlags

	cmd := &cobra.Command{
		Use:   "subsample [flags] [input]",
		Short: "Keep each row with probability RATE",
		Long: `Subsample a delimited file with a header row. The header is always kept.
Each data row is kept with probability RATE using a generator seeded with
SEED, so equal inputs and options always give equal outputs.

With --key-column, rows sharing a value in that column are kept or dropped
together.

Examples:
  dataprep subsample -r 0.1 people.csv
  dataprep subsample -r 0.5 -k name -s 1234 -o sample.csv people.csv
  dataprep subsample -d tab -r 0.01 < people.tsv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := common.resolve(cmd, args)
			if err != nil {
				return err
			}
			if common.dumpConfig != "" {
				return common.dump(cmd, cfg)
			}

			subsampler, err := sampling.New(cfg.SamplingOptions())
			if err != nil {
				return err
			}

			j := common.newJob(cmd, "subsample", cfg)
			j.decorate = func(rep *report.Report) {
				opts := subsampler.Options()
				rep.Rate = opts.Rate
				rep.Seed = opts.Seed
				rep.KeyColumn = opts.KeyColumn
				rep.Generator = string(opts.Generator)
			}
			return j.run(cmd.Context(), func(_ context.Context, r rows.Reader, w rows.Writer) (outcome, error) {
				stats, err := subsampler.Run(r, w)
				return outcome{
					RowsRead:     stats.RowsRead,
					RowsKept:     stats.RowsKept,
					DistinctKeys: stats.DistinctKeys,
				}, err
			})
		},
	}

	fs := cmd.Flags()
	fs.Float64P("rate", "r", config.DefaultRate, "Probability of keeping a row (or a key group), within [0, 1]")
	fs.Uint64P("seed", "s", config.DefaultSeed, "Seed for the random generator")
	fs.StringP("key-column", "k", "", "Keep or drop all rows sharing a value in this column together")
	fs.String("generator", string(random.DefaultKind), "Random generator: mt19937 or pcg")
	common.register(fs)

	return cmd
}
