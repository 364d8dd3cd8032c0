package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/dataprep/pkg/config"
	"github.com/ajitpratap0/dataprep/pkg/errors"
	"github.com/ajitpratap0/dataprep/pkg/testutil"
)

// execute runs the CLI with stdin as input and returns what it wrote.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append(args, "--log-level", "error"))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "dataprep v"+version)
}

func TestSubsample(t *testing.T) {
	tests := []struct {
		name  string
		input string
		args  []string
		want  string
	}{
		{
			name:  "rate zero comma",
			input: testutil.CommaCSV,
			args:  []string{"-r", "0", "-s", "1234"},
			want:  testutil.CRLF("name,age,weight"),
		},
		{
			name:  "rate half comma",
			input: testutil.CommaCSV,
			args:  []string{"-r", "0.5", "-s", "1234"},
			want:  testutil.CRLF("name,age,weight", "ian,1,11", "chang,3,33"),
		},
		{
			name:  "rate half pipe",
			input: testutil.PipeCSV,
			args:  []string{"-r", "0.5", "-s", "1234", "-d", "|"},
			want:  testutil.CRLF("name|age|weight", "ian|1|11", "chang|3|33"),
		},
		{
			name:  "rate half pipe alias",
			input: testutil.PipeCSV,
			args:  []string{"--rate", "0.5", "--seed", "1234", "--delimiter", "pipe"},
			want:  testutil.CRLF("name|age|weight", "ian|1|11", "chang|3|33"),
		},
		{
			name:  "rate half key name",
			input: testutil.LongCSV,
			args:  []string{"-r", "0.5", "-s", "1234", "-k", "name"},
			want:  testutil.CRLF("name,age,weight", "ian,1,11", "ian,1b,11b", "chang,3,33", "chang,3b,33b"),
		},
		{
			name:  "empty input",
			input: "",
			args:  []string{"-r", "1"},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.input, append([]string{"subsample"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestSubsample_UnknownKeyColumnWritesNothing(t *testing.T) {
	stdout, _, err := execute(t, testutil.CommaCSV, "subsample", "-r", "1", "-k", "height")

	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err), "got %v", err)
	assert.Contains(t, err.Error(), `"height"`)
	assert.Empty(t, stdout)
}

func TestSubsample_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"rate above one", []string{"-r", "1.5"}},
		{"bad delimiter", []string{"-d", "ab"}},
		{"seed out of range", []string{"-s", "4294967296"}},
		{"unknown generator", []string{"--generator", "lcg"}},
		{"unknown compression", []string{"--output-compression", "bz2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, testutil.CommaCSV, append([]string{"subsample"}, tt.args...)...)
			require.Error(t, err)
			assert.True(t, errors.IsConfiguration(err), "got %v", err)
			assert.Empty(t, stdout)
		})
	}
}

func TestSubsample_TooManyInputs(t *testing.T) {
	_, _, err := execute(t, "", "subsample", "a.csv", "b.csv")
	assert.Error(t, err)
}

func TestSubsample_EnvironmentOverridesDefault(t *testing.T) {
	t.Setenv("DATAPREP_RATE", "0")

	stdout, _, err := execute(t, testutil.CommaCSV, "subsample")
	require.NoError(t, err)
	assert.Equal(t, testutil.CRLF("name,age,weight"), stdout)
}

func TestSubsample_FlagOverridesEnvironment(t *testing.T) {
	t.Setenv("DATAPREP_RATE", "0")

	stdout, _, err := execute(t, testutil.CommaCSV, "subsample", "-r", "1")
	require.NoError(t, err)
	assert.Equal(t, testutil.CRLF("name,age,weight", "ian,1,11", "daniel,2,22", "chang,3,33"), stdout)
}

func TestSubsample_DumpConfig(t *testing.T) {
	stdout, _, err := execute(t, "", "subsample", "--dump-config", "-r", "0.5", "-k", "name")
	require.NoError(t, err)
	assert.Contains(t, stdout, "rate: 0.5\n")
	assert.Contains(t, stdout, "key_column: name\n")
	assert.Contains(t, stdout, "generator: mt19937\n")
}

func TestSubsample_BareQuoteInField(t *testing.T) {
	stdout, _, err := execute(t, "name,height\nian,5'11\"", "subsample", "-r", "1")
	require.NoError(t, err)
	assert.Equal(t, testutil.CRLF("name,height", `ian,"5'11"""`), stdout)
}

func TestSubsample_DumpConfigToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yaml")

	stdout, _, err := execute(t, testutil.CommaCSV, "subsample", "--dump-config="+path, "-r", "0.25", "-s", "7")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	var cfg config.JobConfig
	require.NoError(t, config.Load(path, &cfg))
	assert.Equal(t, 0.25, cfg.Rate)
	assert.Equal(t, uint64(7), cfg.Seed)

	// the dumped file replays as a job configuration
	stdout, _, err = execute(t, testutil.CommaCSV, "subsample", "--config", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "name,age,weight\r\n"))
}

func TestSubsample_PCGIsDeterministic(t *testing.T) {
	args := []string{"subsample", "-r", "0.5", "-s", "99", "--generator", "pcg"}
	first, _, err := execute(t, testutil.LongCSV, args...)
	require.NoError(t, err)
	second, _, err := execute(t, testutil.LongCSV, args...)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(first, "name,age,weight\r\n"))
}

func TestSubsample_Trace(t *testing.T) {
	_, stderr, err := execute(t, testutil.CommaCSV, "subsample", "-r", "1", "--trace")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"Name": "subsample"`)
}

func TestSubsample_ReportToStderr(t *testing.T) {
	_, stderr, err := execute(t, testutil.CommaCSV, "subsample", "-r", "0.5", "-s", "1234", "--report", "-")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"command": "subsample"`)
	assert.Contains(t, stderr, `"rows_read": 3`)
	assert.Contains(t, stderr, `"rows_kept": 2`)
}

func TestCut(t *testing.T) {
	tests := []struct {
		name  string
		input string
		args  []string
		want  string
	}{
		{"keep name", testutil.CommaCSV, []string{"-l", "name"}, testutil.CRLF("name", "ian", "daniel", "chang")},
		{"keep age name", testutil.CommaCSV, []string{"-l", "age,name"}, testutil.CRLF("age,name", "1,ian", "2,daniel", "3,chang")},
		{"keep age name pipe", testutil.PipeCSV, []string{"-d", "|", "-l", "age,name"}, testutil.CRLF("age|name", "1|ian", "2|daniel", "3|chang")},
		{"keep nothing", testutil.CommaCSV, nil, "\r\n\r\n\r\n\r\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.input, append([]string{"cut"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestCut_UnknownColumn(t *testing.T) {
	stdout, _, err := execute(t, testutil.CommaCSV, "cut", "-l", "name,height")
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
	assert.Empty(t, stdout)
}

func TestCut_ReportCountsRowsRead(t *testing.T) {
	_, stderr, err := execute(t, "a,b\n1,2\n3\n4,5\n", "cut", "-l", "b", "--report", "-")
	require.Error(t, err)
	assert.True(t, errors.IsRowShape(err))
	assert.Contains(t, stderr, `"rows_read": 2`)
	assert.Contains(t, stderr, `"rows_kept": 1`)
}

func TestCut_ListAndFileAreExclusive(t *testing.T) {
	_, _, err := execute(t, testutil.CommaCSV, "cut", "-l", "name", "-f", "cols.txt")
	assert.Error(t, err)
}

func TestReadKeepFile(t *testing.T) {
	names, err := readKeepFile(strings.NewReader("# columns to keep\n\n  name  \nage\n#weight\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age"}, names)
}

func TestKeepColumns(t *testing.T) {
	keep, err := keepColumns("", "")
	require.NoError(t, err)
	assert.Empty(t, keep)

	keep, err = keepColumns("b,a", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, keep)

	_, err = keepColumns("", "/nonexistent/keep.txt")
	assert.True(t, errors.IsType(err, errors.ErrorTypeFile))
}

func TestFilter(t *testing.T) {
	const input = "name,subject\nian,algebra\ndaniel,\nchang,geometry\nlee,linear algebra"

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"equals", []string{"-E", "algebra"}, testutil.CRLF("name,subject", "ian,algebra")},
		{"not equals", []string{"-e", "algebra"}, testutil.CRLF("name,subject", "daniel,", "chang,geometry", "lee,linear algebra")},
		{"contains", []string{"-C", "algebra"}, testutil.CRLF("name,subject", "ian,algebra", "lee,linear algebra")},
		{"not contains", []string{"-c", "algebra"}, testutil.CRLF("name,subject", "daniel,", "chang,geometry")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"filter", "-n", "subject"}, tt.args...)
			stdout, _, err := execute(t, input, args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestFilter_RequiresOperator(t *testing.T) {
	_, _, err := execute(t, testutil.CommaCSV, "filter", "-n", "name")
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
}

func TestFilter_RequiresName(t *testing.T) {
	_, _, err := execute(t, testutil.CommaCSV, "filter", "-E", "ian")
	assert.Error(t, err)
}

func TestFilter_OperatorsAreExclusive(t *testing.T) {
	_, _, err := execute(t, testutil.CommaCSV, "filter", "-n", "name", "-E", "ian", "-C", "an")
	assert.Error(t, err)
}
