// Package sampling implements seeded, reproducible subsampling of row streams.
//
// Each data row is kept with probability Rate. When a key column is named,
// the decision is made once per distinct key value and reused for every
// later row carrying that value, so all rows of a key are kept or dropped
// together. Decisions come from an explicitly seeded generator owned by a
// single run; the same input, rate, seed, key column and generator always
// produce the same output.
//
// The header row is written verbatim before any data row. A key column that
// is not in the header is a configuration error reported before anything is
// written. A data row too short to hold the key column stops the run with a
// row shape error; rows already written stay written.
//
// Example:
//
//	s, err := sampling.New(sampling.Options{Rate: 0.1, Seed: 1234, KeyColumn: "user_id"})
//	if err != nil {
//	    return err
//	}
//	stats, err := s.Run(rows.NewCSVReader(in, ','), rows.NewCSVWriter(out, ','))
package sampling
