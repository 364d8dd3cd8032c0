package config

import (
	"strings"

	"github.com/ajitpratap0/dataprep/pkg/compression"
	"github.com/ajitpratap0/dataprep/pkg/errors"
	"github.com/ajitpratap0/dataprep/pkg/random"
	"github.com/ajitpratap0/dataprep/pkg/rows"
	"github.com/ajitpratap0/dataprep/pkg/sampling"
)

// Default values used when neither a file, the environment nor a flag sets a key.
const (
	DefaultRate      = 0.01
	DefaultSeed      = 0
	DefaultDelimiter = ","
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// JobConfig is the full set of settings for one run.
type JobConfig struct {
	// Input is a local path, s3://bucket/key, gs://bucket/object, or empty/"-" for stdin
	Input string `yaml:"input,omitempty"`
	// Output uses the same forms as Input; empty or "-" means stdout
	Output string `yaml:"output,omitempty"`
	// Delimiter is a single character or one of the aliases accepted by rows.ParseDelimiter
	Delimiter string `yaml:"delimiter"`

	// Rate is the inclusion probability for subsample, within [0, 1]
	Rate float64 `yaml:"rate"`
	// Seed initializes the generator
	Seed uint64 `yaml:"seed"`
	// KeyColumn enables key-coherent sampling when set
	KeyColumn string `yaml:"key_column,omitempty"`
	// Generator is mt19937 or pcg
	Generator string `yaml:"generator"`

	InputCompression  string `yaml:"input_compression"`
	OutputCompression string `yaml:"output_compression"`

	// S3Region overrides the region from the AWS default chain
	S3Region string `yaml:"s3_region,omitempty"`
	// GCSCredentialsFile points at a service account key; empty uses ADC
	GCSCredentialsFile string `yaml:"gcs_credentials_file,omitempty"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// MetricsFile receives Prometheus text exposition after the run
	MetricsFile string `yaml:"metrics_file,omitempty"`
	// ReportFile receives the JSON run report; "-" writes it to stderr
	ReportFile string `yaml:"report_file,omitempty"`
	// Trace prints OpenTelemetry spans to stderr
	Trace bool `yaml:"trace"`
}

// Defaults returns a JobConfig with every default applied.
func Defaults() *JobConfig {
	return &JobConfig{
		Delimiter:         DefaultDelimiter,
		Rate:              DefaultRate,
		Seed:              DefaultSeed,
		Generator:         string(random.DefaultKind),
		InputCompression:  string(compression.None),
		OutputCompression: string(compression.None),
		LogLevel:          DefaultLogLevel,
		LogFormat:         DefaultLogFormat,
	}
}

// Validate checks every field that has a restricted domain. All errors are
// of type config.
func (c *JobConfig) Validate() error {
	if _, err := rows.ParseDelimiter(c.Delimiter); err != nil {
		return err
	}
	if err := c.SamplingOptions().Validate(); err != nil {
		return err
	}
	if _, err := compression.ParseAlgorithm(c.InputCompression); err != nil {
		return err
	}
	if _, err := compression.ParseAlgorithm(c.OutputCompression); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "json", "console":
	default:
		return errors.Newf(errors.ErrorTypeConfig, "unknown log format %q", c.LogFormat).
			WithDetail("log_format", c.LogFormat)
	}
	return nil
}

// DelimiterRune returns the resolved field delimiter.
func (c *JobConfig) DelimiterRune() (rune, error) {
	return rows.ParseDelimiter(c.Delimiter)
}

// SamplingOptions converts the sampling fields into sampling.Options.
func (c *JobConfig) SamplingOptions() sampling.Options {
	return sampling.Options{
		Rate:      c.Rate,
		Seed:      c.Seed,
		KeyColumn: c.KeyColumn,
		Generator: random.Kind(strings.ToLower(c.Generator)),
	}
}
