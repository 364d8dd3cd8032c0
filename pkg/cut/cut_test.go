package cut

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/dataprep/pkg/errors"
	"github.com/ajitpratap0/dataprep/pkg/rows"
)

const (
	commaInput = "name,age,weight\r\nian,1,11\r\ndaniel,2,22\r\nchang,3,33"
	pipeInput  = "name|age|weight\r\nian|1|11\r\ndaniel|2|22\r\nchang|3|33"
)

func cutString(t *testing.T, input string, delimiter rune, keep []string) string {
	t.Helper()
	var out bytes.Buffer
	w := rows.NewCSVWriter(&out, delimiter)
	_, err := Cut(rows.NewCSVReader(strings.NewReader(input), delimiter), w, keep)
	require.NoError(t, err)
	require.NoError(t, w.Flush())
	return out.String()
}

func TestCut(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		delimiter rune
		keep      []string
		want      string
	}{
		{"keep name", commaInput, ',', []string{"name"}, "name\r\nian\r\ndaniel\r\nchang\r\n"},
		{"keep name age", commaInput, ',', []string{"name", "age"}, "name,age\r\nian,1\r\ndaniel,2\r\nchang,3\r\n"},
		{"keep age name", commaInput, ',', []string{"age", "name"}, "age,name\r\n1,ian\r\n2,daniel\r\n3,chang\r\n"},
		{"keep age name pipe", pipeInput, '|', []string{"age", "name"}, "age|name\r\n1|ian\r\n2|daniel\r\n3|chang\r\n"},
		{"keep empty", commaInput, ',', []string{}, "\r\n\r\n\r\n\r\n"},
		{"keep nil", commaInput, ',', nil, "\r\n\r\n\r\n\r\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cutString(t, tt.input, tt.delimiter, tt.keep))
		})
	}
}

func TestCut_UnknownColumn(t *testing.T) {
	w := &rows.SliceWriter{}
	_, err := Cut(rows.NewCSVReader(strings.NewReader(commaInput), ','), w, []string{"name", "height"})

	assert.True(t, errors.IsConfiguration(err))
	assert.Empty(t, w.Rows)
}

func TestCut_ShortRow(t *testing.T) {
	w := &rows.SliceWriter{}
	r := rows.NewSliceReader(rows.Row{"a", "b"}, rows.Row{"1", "2"}, rows.Row{"3"})
	stats, err := Cut(r, w, []string{"b"})

	assert.True(t, errors.IsRowShape(err))
	assert.Equal(t, Stats{RowsRead: 2, RowsWritten: 1}, stats)
	assert.Equal(t, []rows.Row{{"b"}, {"2"}}, w.Rows)
}

func TestCut_EmptyInput(t *testing.T) {
	w := &rows.SliceWriter{}
	stats, err := Cut(rows.NewSliceReader(), w, []string{"a"})
	require.NoError(t, err)
	assert.Zero(t, stats)
	assert.Empty(t, w.Rows)
}

func TestCut_Stats(t *testing.T) {
	w := &rows.SliceWriter{}
	stats, err := Cut(rows.NewCSVReader(strings.NewReader(commaInput), ','), w, []string{"age"})
	require.NoError(t, err)
	assert.Equal(t, Stats{RowsRead: 3, RowsWritten: 3}, stats)
	assert.Len(t, w.Rows, 4)
}
