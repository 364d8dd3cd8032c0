// Package cut keeps a chosen list of columns from a row stream.
package cut

import (
	"io"

	"github.com/ajitpratap0/dataprep/pkg/errors"
	"github.com/ajitpratap0/dataprep/pkg/rows"
)

// Stats summarizes one cut run. Header rows are not counted.
type Stats struct {
	RowsRead    int
	RowsWritten int
}

// Cut writes keep as the new header followed by each data row projected onto
// the named columns, in the order given by keep. Every name must appear in
// the input header; otherwise nothing is written. An empty keep list yields
// one empty line per input row.
func Cut(r rows.Reader, w rows.Writer, keep []string) (Stats, error) {
	var stats Stats
	header, err := r.Next()
	if err == io.EOF {
		return stats, nil
	}
	if err != nil {
		return stats, err
	}

	indices := make([]int, len(keep))
	for i, name := range keep {
		indices[i] = header.Index(name)
		if indices[i] < 0 {
			return stats, errors.ColumnNotFound(name, header)
		}
	}

	if err := w.WriteRow(rows.Row(keep)); err != nil {
		return stats, err
	}

	for {
		row, err := r.Next()
		if err == io.EOF {
			return stats, nil
		}
		if err != nil {
			return stats, err
		}
		stats.RowsRead++
		out := make(rows.Row, len(indices))
		for i, idx := range indices {
			if idx >= len(row) {
				return stats, errors.RowShape(stats.RowsRead, len(row), idx)
			}
			out[i] = row[idx]
		}
		if err := w.WriteRow(out); err != nil {
			return stats, err
		}
		stats.RowsWritten++
	}
}
