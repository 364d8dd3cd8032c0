package sampling

import (
	"io"

	"github.com/ajitpratap0/dataprep/pkg/errors"
	"github.com/ajitpratap0/dataprep/pkg/random"
	"github.com/ajitpratap0/dataprep/pkg/rows"
)

// Options configures a Subsampler.
type Options struct {
	// Rate is the inclusion probability, within [0, 1].
	Rate float64
	// Seed initializes the generator at the start of every run.
	Seed uint64
	// KeyColumn groups rows by the value of this header column. Empty means
	// every row is decided on its own.
	KeyColumn string
	// Generator selects the random algorithm. Empty means random.DefaultKind.
	Generator random.Kind
}

// Validate checks rate, generator and seed.
func (o Options) Validate() error {
	if o.Rate < 0 || o.Rate > 1 || o.Rate != o.Rate {
		return errors.Newf(errors.ErrorTypeConfig, "rate %v must be within [0, 1]", o.Rate).
			WithDetail("rate", o.Rate)
	}
	kind, err := random.ParseKind(string(o.Generator))
	if err != nil {
		return err
	}
	if kind == random.MT19937 && o.Seed > random.MaxMT19937Seed {
		return errors.Newf(errors.ErrorTypeConfig, "seed %d out of range for mt19937", o.Seed)
	}
	return nil
}

// Stats summarizes one run.
type Stats struct {
	// RowsRead counts data rows, excluding the header.
	RowsRead int
	// RowsKept counts data rows written.
	RowsKept int
	// DistinctKeys counts key values seen in keyed mode; zero otherwise.
	DistinctKeys int
}

// Subsampler selects rows from a stream. A Subsampler holds no per-run
// state, so one value may be reused for many runs, each reproducing the
// same decisions.
type Subsampler struct {
	opts Options
}

// New validates opts and returns a Subsampler.
func New(opts Options) (*Subsampler, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Generator == "" {
		opts.Generator = random.DefaultKind
	}
	return &Subsampler{opts: opts}, nil
}

// Options returns the configuration of s.
func (s *Subsampler) Options() Options {
	return s.opts
}

// Run reads the header and all data rows from r and writes the header and
// the selected rows to w. It does not flush or close w.
func (s *Subsampler) Run(r rows.Reader, w rows.Writer) (Stats, error) {
	var stats Stats

	gen, err := random.New(s.opts.Generator, s.opts.Seed)
	if err != nil {
		return stats, err
	}

	header, err := r.Next()
	if err == io.EOF {
		return stats, nil
	}
	if err != nil {
		return stats, err
	}

	keyIndex := -1
	if s.opts.KeyColumn != "" {
		keyIndex = header.Index(s.opts.KeyColumn)
		if keyIndex < 0 {
			return stats, errors.ColumnNotFound(s.opts.KeyColumn, header)
		}
	}

	if err := w.WriteRow(header); err != nil {
		return stats, err
	}

	decide := newDecider(gen, s.opts.Rate, keyIndex)
	for {
		row, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, err
		}
		stats.RowsRead++

		keep, err := decide.keep(row, stats.RowsRead)
		if err != nil {
			return stats, err
		}
		if !keep {
			continue
		}
		if err := w.WriteRow(row); err != nil {
			return stats, err
		}
		stats.RowsKept++
	}

	stats.DistinctKeys = len(decide.cache)
	return stats, nil
}

// Subsample runs a Subsampler using the default generator.
func Subsample(r rows.Reader, w rows.Writer, rate float64, seed uint64, keyColumn string) error {
	s, err := New(Options{Rate: rate, Seed: seed, KeyColumn: keyColumn})
	if err != nil {
		return err
	}
	_, err = s.Run(r, w)
	return err
}
