package config

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/dataprep/pkg/errors"
	"github.com/ajitpratap0/dataprep/pkg/random"
	"github.com/ajitpratap0/dataprep/pkg/testutil"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	return testutil.WriteFile(t, t.TempDir(), "job.yaml", content)
}

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Float64P("rate", "r", DefaultRate, "")
	fs.Uint64P("seed", "s", DefaultSeed, "")
	fs.StringP("key-column", "k", "", "")
	fs.StringP("delimiter", "d", DefaultDelimiter, "")
	fs.String("report", "", "")
	fs.Bool("trace", false, "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestDefaultsAreValid(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 0.01, cfg.Rate)
	assert.Equal(t, uint64(0), cfg.Seed)
	assert.Equal(t, ",", cfg.Delimiter)
	assert.Equal(t, string(random.MT19937), cfg.Generator)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*JobConfig)
	}{
		{"rate above one", func(c *JobConfig) { c.Rate = 1.5 }},
		{"negative rate", func(c *JobConfig) { c.Rate = -0.1 }},
		{"multi-character delimiter", func(c *JobConfig) { c.Delimiter = ",," }},
		{"empty delimiter", func(c *JobConfig) { c.Delimiter = "" }},
		{"unknown generator", func(c *JobConfig) { c.Generator = "xorshift" }},
		{"seed out of range", func(c *JobConfig) { c.Seed = 1 << 32 }},
		{"unknown input compression", func(c *JobConfig) { c.InputCompression = "bz2" }},
		{"unknown output compression", func(c *JobConfig) { c.OutputCompression = "rar" }},
		{"unknown log format", func(c *JobConfig) { c.LogFormat = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsConfiguration(err), "got %v", err)
		})
	}
}

func TestSamplingOptions(t *testing.T) {
	cfg := Defaults()
	cfg.Rate = 0.5
	cfg.Seed = 7
	cfg.KeyColumn = "name"
	cfg.Generator = "PCG"

	opts := cfg.SamplingOptions()
	assert.Equal(t, 0.5, opts.Rate)
	assert.Equal(t, uint64(7), opts.Seed)
	assert.Equal(t, "name", opts.KeyColumn)
	assert.Equal(t, random.PCG, opts.Generator)
}

func TestLoadSubstitutesEnv(t *testing.T) {
	t.Setenv("DATAPREP_TEST_BUCKET", "samples")
	path := writeConfig(t, "input: s3://${DATAPREP_TEST_BUCKET}/people.csv\nrate: 0.25\n")

	var cfg JobConfig
	require.NoError(t, Load(path, &cfg))
	assert.Equal(t, "s3://samples/people.csv", cfg.Input)
	assert.Equal(t, 0.25, cfg.Rate)
}

func TestLoadMissingFile(t *testing.T) {
	var cfg JobConfig
	err := Load(filepath.Join(t.TempDir(), "missing.yaml"), &cfg)
	assert.Error(t, err)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := Defaults()
	cfg.KeyColumn = "name"
	cfg.Seed = 1234

	require.NoError(t, Save(path, cfg))

	var loaded JobConfig
	require.NoError(t, Load(path, &loaded))
	assert.Equal(t, *cfg, loaded)
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	cfg := Defaults()
	require.NoError(t, Encode(&buf, cfg))
	assert.Contains(t, buf.String(), "rate: 0.01\n")
	assert.Contains(t, buf.String(), "generator: mt19937\n")
	assert.NotContains(t, buf.String(), "key_column")
}

func TestSubstituteEnvVars(t *testing.T) {
	t.Setenv("DP_A", "x")
	assert.Equal(t, "x-", substituteEnvVars("${DP_A}-${DP_UNSET_VARIABLE}"))
	assert.Equal(t, "open ${brace", substituteEnvVars("open ${brace"))
}

func TestSubstituteEnvVars_ValuesAreNotExpanded(t *testing.T) {
	t.Setenv("DP_SELF", "${DP_SELF}")
	t.Setenv("DP_OTHER", "${DP_A}")
	t.Setenv("DP_A", "x")

	assert.Equal(t, "${DP_SELF}/${DP_A}/x", substituteEnvVars("${DP_SELF}/${DP_OTHER}/${DP_A}"))
}

func TestLoad_SelfReferencingVariable(t *testing.T) {
	t.Setenv("DP_SELF", "${DP_SELF}")
	path := writeConfig(t, "key_column: ${DP_SELF}\n")

	done := make(chan error, 1)
	var cfg JobConfig
	go func() { done <- Load(path, &cfg) }()

	select {
	case err := <-done:
		require.NoError(t, err)
		assert.Equal(t, "${DP_SELF}", cfg.KeyColumn)
	case <-time.After(5 * time.Second):
		t.Fatal("Load did not return")
	}
}

func TestResolver_Defaults(t *testing.T) {
	r := NewResolver()
	require.NoError(t, r.BindFlags(newFlags(t)))

	cfg, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestResolver_Precedence(t *testing.T) {
	path := writeConfig(t, "rate: 0.2\nseed: 11\nkey_column: name\ndelimiter: pipe\n")
	t.Setenv("DATAPREP_SEED", "22")
	t.Setenv("DATAPREP_KEY_COLUMN", "city")

	r := NewResolver()
	require.NoError(t, r.ReadFile(path))
	require.NoError(t, r.BindFlags(newFlags(t, "--key-column", "age")))

	cfg, err := r.Resolve()
	require.NoError(t, err)

	// file beats defaults
	assert.Equal(t, 0.2, cfg.Rate)
	assert.Equal(t, "pipe", cfg.Delimiter)
	// env beats file
	assert.Equal(t, uint64(22), cfg.Seed)
	// explicit flag beats env
	assert.Equal(t, "age", cfg.KeyColumn)
}

func TestResolver_UnsetFlagDoesNotOverride(t *testing.T) {
	path := writeConfig(t, "rate: 0.3\n")

	r := NewResolver()
	require.NoError(t, r.ReadFile(path))
	require.NoError(t, r.BindFlags(newFlags(t)))

	cfg, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 0.3, cfg.Rate)
}

func TestResolver_RenamedFlag(t *testing.T) {
	r := NewResolver()
	require.NoError(t, r.BindFlags(newFlags(t, "--report", "run.json", "--trace")))

	cfg, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "run.json", cfg.ReportFile)
	assert.True(t, cfg.Trace)
}

func TestResolver_Set(t *testing.T) {
	r := NewResolver()
	r.Set("input", "people.csv")

	cfg, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "people.csv", cfg.Input)
}

func TestResolver_Errors(t *testing.T) {
	t.Run("unknown key", func(t *testing.T) {
		r := NewResolver()
		err := r.ReadFile(writeConfig(t, "sample_rate: 0.5\n"))
		require.Error(t, err)
		assert.True(t, errors.IsConfiguration(err))
	})

	t.Run("negative seed", func(t *testing.T) {
		r := NewResolver()
		require.NoError(t, r.ReadFile(writeConfig(t, "seed: -1\n")))
		_, err := r.Resolve()
		require.Error(t, err)
		assert.True(t, errors.IsConfiguration(err))
	})

	t.Run("rate from env out of range", func(t *testing.T) {
		t.Setenv("DATAPREP_RATE", "2")
		_, err := NewResolver().Resolve()
		require.Error(t, err)
		assert.True(t, errors.IsConfiguration(err))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		err := NewResolver().ReadFile(writeConfig(t, "rate: [\n"))
		require.Error(t, err)
		assert.True(t, errors.IsConfiguration(err))
	})
}
