package rows

import (
	"encoding/csv"
	stderrors "errors"
	"io"

	"github.com/ajitpratap0/dataprep/pkg/errors"
)

// CSVReader reads delimited rows from an io.Reader.
type CSVReader struct {
	reader *csv.Reader
}

// NewCSVReader creates a reader splitting fields on delimiter. Rows of any
// length are accepted; field counts are not checked against the header.
// A quote inside an unquoted field is kept as data.
func NewCSVReader(r io.Reader, delimiter rune) *CSVReader {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return &CSVReader{reader: reader}
}

// Next returns the next row or io.EOF.
func (c *CSVReader) Next() (Row, error) {
	record, err := c.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		wrapped := errors.Wrap(err, errors.ErrorTypeData, "failed to parse delimited row")
		var parseErr *csv.ParseError
		if stderrors.As(err, &parseErr) {
			wrapped = wrapped.WithDetail("line", parseErr.Line)
		}
		return nil, wrapped
	}
	return Row(record), nil
}

// CSVWriter writes delimited, CRLF-terminated rows to an io.Writer.
type CSVWriter struct {
	writer *csv.Writer
}

// NewCSVWriter creates a writer joining fields with delimiter. Fields are
// quoted when they contain the delimiter, a quote or a line break, and also
// when they begin with a space or tab.
func NewCSVWriter(w io.Writer, delimiter rune) *CSVWriter {
	writer := csv.NewWriter(w)
	writer.Comma = delimiter
	writer.UseCRLF = true
	return &CSVWriter{writer: writer}
}

// WriteRow buffers one row.
func (c *CSVWriter) WriteRow(row Row) error {
	if err := c.writer.Write(row); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write row")
	}
	return nil
}

// Flush writes buffered rows to the underlying writer.
func (c *CSVWriter) Flush() error {
	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to flush rows")
	}
	return nil
}
