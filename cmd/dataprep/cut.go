package main

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/dataprep/pkg/cut"
	"github.com/ajitpratap0/dataprep/pkg/errors"
	"github.com/ajitpratap0/dataprep/pkg/rows"
)

func newCutCmd() *cobra.Command {
	var (
		common   commonFlags
		keepList string
		keepFile string
	)

	cmd := &cobra.Command{
		Use:   "cut [flags] [input]",
		Short: "Keep selected columns",
		Long: `Keep the named columns of a delimited file, in the order given.

Examples:
  dataprep cut -l name,age people.csv
  dataprep cut -d tab -l name people.tsv
  dataprep cut -f columns.txt people.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := common.resolve(cmd, args)
			if err != nil {
				return err
			}
			if common.dumpConfig != "" {
				return common.dump(cmd, cfg)
			}

			keep, err := keepColumns(keepList, keepFile)
			if err != nil {
				return err
			}

			return common.newJob(cmd, "cut", cfg).run(cmd.Context(), func(_ context.Context, r rows.Reader, w rows.Writer) (outcome, error) {
				stats, err := cut.Cut(r, w, keep)
				return outcome{RowsRead: stats.RowsRead, RowsKept: stats.RowsWritten}, err
			})
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&keepList, "keep-list", "l", "", "Only keep columns in this comma delimited list")
	fs.StringVarP(&keepFile, "keep-file", "f", "", "Only keep columns named in this file, one per line")
	cmd.MarkFlagsMutuallyExclusive("keep-list", "keep-file")
	common.register(fs)

	return cmd
}

// keepColumns returns the columns named by -f, else by -l. Neither yields
// an empty list.
func keepColumns(list, file string) ([]string, error) {
	if file != "" {
		f, err := os.Open(file) //nolint:gosec // G304: path comes from the command line
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to open keep file").
				WithDetail("path", file)
		}
		defer f.Close()
		return readKeepFile(f)
	}
	if list == "" {
		return nil, nil
	}
	return strings.Split(list, ","), nil
}

// readKeepFile returns one name per line. Surrounding whitespace is trimmed;
// blank lines and lines starting with # are skipped.
func readKeepFile(r io.Reader) ([]string, error) {
	var names []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to read keep file")
	}
	return names, nil
}
