// Package dataprep provides seeded, reproducible reduction of delimited text
// files: row subsampling with optional key coherence, column cutting, and row
// filtering.
//
// Every tool reads a file whose first line is a header, always writes that
// header (or the selected part of it), and streams the remaining rows one at
// a time, so inputs larger than memory are fine.
//
// # Subsampling
//
// Each data row is kept with probability rate. Decisions come from a
// generator seeded at the start of every run, so the same input, rate and
// seed always produce the same output:
//
//	s, err := sampling.New(sampling.Options{Rate: 0.1, Seed: 1234})
//	if err != nil {
//	    return err
//	}
//	w := rows.NewCSVWriter(os.Stdout, ',')
//	stats, err := s.Run(rows.NewCSVReader(os.Stdin, ','), w)
//	if err != nil {
//	    return err
//	}
//	return w.Flush()
//
// With a KeyColumn, all rows sharing a value in that column are kept or
// dropped together: the first row of each value consumes one draw and later
// rows reuse the decision.
//
// The default mt19937 generator reproduces the draws of the 32-bit Mersenne
// Twister with init_genrand seeding and 53-bit doubles. A pcg generator from
// math/rand/v2 is also available.
//
// # Key Packages
//
//	pkg/rows          - Row streams, CSV reader and writer, delimiter aliases
//	pkg/random        - Seeded generators
//	pkg/sampling      - Key-coherent subsampling
//	pkg/cut           - Column selection
//	pkg/filter        - Row predicates
//	pkg/storage       - Local, stdio, S3 and GCS inputs and outputs
//	pkg/compression   - gzip, zstd, snappy, s2 and lz4 streams
//	pkg/config        - YAML job files, DATAPREP_* variables, flag layering
//	pkg/errors        - Structured error handling
//	pkg/logger        - Structured logging
//	pkg/metrics       - Prometheus counters written as a textfile
//	pkg/observability - OpenTelemetry spans
//	pkg/report        - JSON run reports
//
// # Command Line
//
//	dataprep subsample -r 0.5 -k name -s 1234 people.csv
//	dataprep cut -l name,age people.csv
//	dataprep filter -n subject -C algebra curriculum.csv
//
// Environment variables are supported in job files with ${VAR_NAME} syntax.
package dataprep
