// Package rows defines the row stream abstraction shared by the dataprep
// tools and its delimited-text implementation.
//
// A stream is a header row followed by zero or more data rows. Readers are
// lazy, finite and non-restartable; Next returns io.EOF once exhausted.
// Writers accept rows one at a time and never close the underlying stream.
package rows

import (
	"io"
)

// Row is one record of ordered field values.
type Row []string

// Clone returns a copy of r that does not share its backing array.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// Index returns the position of name in r, or -1 if absent.
func (r Row) Index(name string) int {
	for i, field := range r {
		if field == name {
			return i
		}
	}
	return -1
}

// Reader produces rows in order.
type Reader interface {
	// Next returns the next row, or io.EOF when the stream is exhausted.
	Next() (Row, error)
}

// Writer consumes rows in order.
type Writer interface {
	WriteRow(row Row) error
}

// Flusher is implemented by writers that buffer output.
type Flusher interface {
	Flush() error
}

// Copy writes every remaining row of r to w and returns the number of rows copied.
func Copy(w Writer, r Reader) (int, error) {
	n := 0
	for {
		row, err := r.Next()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		if err := w.WriteRow(row); err != nil {
			return n, err
		}
		n++
	}
}
