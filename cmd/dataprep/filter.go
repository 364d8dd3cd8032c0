package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/dataprep/pkg/errors"
	"github.com/ajitpratap0/dataprep/pkg/filter"
	"github.com/ajitpratap0/dataprep/pkg/rows"
)

// operatorFlags maps each operator flag to the operator it selects.
var operatorFlags = []struct {
	name  string
	short string
	op    filter.Op
	usage string
}{
	{"equals", "E", filter.Equals, "Keep rows whose column equals this value"},
	{"not-equals", "e", filter.NotEquals, "Keep rows whose column does not equal this value"},
	{"contains", "C", filter.Contains, "Keep rows whose column contains this value"},
	{"not-contains", "c", filter.NotContains, "Keep rows whose column does not contain this value"},
}

func newFilterCmd() *cobra.Command {
	var (
		common commonFlags
		column string
	)

	cmd := &cobra.Command{
		Use:   "filter -n column (-E|-e|-C|-c) value [flags] [input]",
		Short: "Keep rows whose column matches a value",
		Long: `Keep the rows of a delimited file whose named column satisfies one test.
Empty values never equal or contain anything, so they are kept by -e and -c
and dropped by -E and -C.

Examples:
  dataprep filter -n subject -C algebra curriculum.csv
  dataprep filter -n subject -e algebra curriculum.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := common.resolve(cmd, args)
			if err != nil {
				return err
			}
			if common.dumpConfig != "" {
				return common.dump(cmd, cfg)
			}

			pred, err := predicateFromFlags(cmd, column)
			if err != nil {
				return err
			}

			return common.newJob(cmd, "filter", cfg).run(cmd.Context(), func(_ context.Context, r rows.Reader, w rows.Writer) (outcome, error) {
				stats, err := filter.Filter(r, w, pred)
				return outcome{RowsRead: stats.RowsRead, RowsKept: stats.RowsKept}, err
			})
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&column, "name", "n", "", "Name of the column to filter on")
	names := make([]string, 0, len(operatorFlags))
	for _, f := range operatorFlags {
		fs.StringP(f.name, f.short, "", f.usage)
		names = append(names, f.name)
	}
	_ = cmd.MarkFlagRequired("name")
	cmd.MarkFlagsMutuallyExclusive(names...)
	common.register(fs)

	return cmd
}

func predicateFromFlags(cmd *cobra.Command, column string) (filter.Predicate, error) {
	for _, f := range operatorFlags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		value, err := cmd.Flags().GetString(f.name)
		if err != nil {
			return filter.Predicate{}, err
		}
		pred := filter.Predicate{Column: column, Op: f.op, Value: value}
		return pred, pred.Validate()
	}
	return filter.Predicate{}, errors.New(errors.ErrorTypeConfig,
		"one of --equals, --not-equals, --contains or --not-contains is required")
}
