package rows

import "io"

// SliceReader serves rows from memory.
type SliceReader struct {
	rows []Row
	pos  int
}

// NewSliceReader returns a reader over rows. The first row is the header.
func NewSliceReader(rows ...Row) *SliceReader {
	return &SliceReader{rows: rows}
}

// Next returns the next row or io.EOF.
func (s *SliceReader) Next() (Row, error) {
	if s.pos >= len(s.rows) {
		return nil, io.EOF
	}
	row := s.rows[s.pos]
	s.pos++
	return row, nil
}

// SliceWriter collects rows in memory.
type SliceWriter struct {
	Rows []Row
}

// WriteRow appends a copy of row.
func (s *SliceWriter) WriteRow(row Row) error {
	s.Rows = append(s.Rows, row.Clone())
	return nil
}
