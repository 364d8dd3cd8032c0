// Package filter keeps the rows of a stream whose named column satisfies a
// string predicate.
package filter

import (
	"io"
	"strings"

	"github.com/ajitpratap0/dataprep/pkg/errors"
	"github.com/ajitpratap0/dataprep/pkg/rows"
)

// Op is a comparison applied to a column value.
type Op string

const (
	// Equals keeps rows whose value equals the operand.
	Equals Op = "equals"
	// NotEquals keeps rows whose value differs from the operand.
	NotEquals Op = "not_equals"
	// Contains keeps rows whose value contains the operand.
	Contains Op = "contains"
	// NotContains keeps rows whose value does not contain the operand.
	NotContains Op = "not_contains"
)

// Predicate selects rows by the value of one column.
type Predicate struct {
	Column string
	Op     Op
	Value  string
}

// Validate checks that the predicate names a column and a known operator.
func (p Predicate) Validate() error {
	if p.Column == "" {
		return errors.New(errors.ErrorTypeConfig, "filter column is required")
	}
	switch p.Op {
	case Equals, NotEquals, Contains, NotContains:
		return nil
	default:
		return errors.Newf(errors.ErrorTypeConfig, "unknown filter operator %q", p.Op)
	}
}

// Match reports whether value satisfies p. An empty value never equals or
// contains anything, and so always passes the negated operators.
func (p Predicate) Match(value string) bool {
	if value == "" {
		return p.Op == NotEquals || p.Op == NotContains
	}
	switch p.Op {
	case Equals:
		return value == p.Value
	case NotEquals:
		return value != p.Value
	case Contains:
		return strings.Contains(value, p.Value)
	case NotContains:
		return !strings.Contains(value, p.Value)
	}
	return false
}

// Stats summarizes one filter run.
type Stats struct {
	RowsRead int
	RowsKept int
}

// Filter writes the header and every data row matching p.
func Filter(r rows.Reader, w rows.Writer, p Predicate) (Stats, error) {
	var stats Stats
	if err := p.Validate(); err != nil {
		return stats, err
	}

	header, err := r.Next()
	if err == io.EOF {
		return stats, nil
	}
	if err != nil {
		return stats, err
	}
	index := header.Index(p.Column)
	if index < 0 {
		return stats, errors.ColumnNotFound(p.Column, header)
	}
	if err := w.WriteRow(header); err != nil {
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
		if index >= len(row) {
			return stats, errors.RowShape(stats.RowsRead, len(row), index)
		}
		if !p.Match(row[index]) {
			continue
		}
		if err := w.WriteRow(row); err != nil {
			return stats, err
		}
		stats.RowsKept++
	}
}
