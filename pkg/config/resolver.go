package config

import (
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ajitpratap0/dataprep/pkg/errors"
)

// EnvPrefix prefixes every environment variable the Resolver consults,
// e.g. DATAPREP_RATE or DATAPREP_KEY_COLUMN.
const EnvPrefix = "DATAPREP"

// keys lists every JobConfig key in yaml form.
var keys = []string{
	"input", "output", "delimiter",
	"rate", "seed", "key_column", "generator",
	"input_compression", "output_compression",
	"s3_region", "gcs_credentials_file",
	"log_level", "log_format",
	"metrics_file", "report_file", "trace",
}

// flagNames maps keys whose flag is not simply the key with dashes.
var flagNames = map[string]string{
	"report_file": "report",
}

// Resolver layers configuration sources. From lowest to highest precedence:
// defaults, the config file, DATAPREP_* environment variables, and flags the
// user set explicitly.
type Resolver struct {
	v *viper.Viper
}

// NewResolver returns a Resolver seeded with Defaults.
func NewResolver() *Resolver {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("delimiter", d.Delimiter)
	v.SetDefault("rate", d.Rate)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("generator", d.Generator)
	v.SetDefault("input_compression", d.InputCompression)
	v.SetDefault("output_compression", d.OutputCompression)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("trace", d.Trace)

	return &Resolver{v: v}
}

// ReadFile merges a YAML config file. ${VAR} references are expanded first.
func (r *Resolver) ReadFile(path string) error {
	values := map[string]interface{}{}
	if err := Load(path, &values); err != nil {
		return err
	}
	for k := range values {
		if !isKey(k) {
			return errors.Newf(errors.ErrorTypeConfig, "unknown config key %q", k).
				WithDetail("path", path)
		}
	}
	return r.v.MergeConfigMap(values)
}

// BindFlags binds every flag in fs that corresponds to a config key. Flag
// values only take effect when the user set them on the command line.
func (r *Resolver) BindFlags(fs *pflag.FlagSet) error {
	for _, key := range keys {
		name, ok := flagNames[key]
		if !ok {
			name = strings.ReplaceAll(key, "_", "-")
		}
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := r.v.BindPFlag(key, flag); err != nil {
			return errors.Wrap(err, errors.ErrorTypeInternal, "failed to bind flag").
				WithDetail("flag", name)
		}
	}
	return nil
}

// Set overrides key with the highest precedence.
func (r *Resolver) Set(key string, value interface{}) {
	r.v.Set(key, value)
}

// Resolve builds and validates the effective JobConfig.
func (r *Resolver) Resolve() (*JobConfig, error) {
	rate, err := cast.ToFloat64E(r.v.Get("rate"))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "invalid rate")
	}
	seed, err := cast.ToUint64E(r.v.Get("seed"))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "invalid seed")
	}
	trace, err := cast.ToBoolE(r.v.Get("trace"))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "invalid trace")
	}

	cfg := &JobConfig{
		Input:              r.v.GetString("input"),
		Output:             r.v.GetString("output"),
		Delimiter:          r.v.GetString("delimiter"),
		Rate:               rate,
		Seed:               seed,
		KeyColumn:          r.v.GetString("key_column"),
		Generator:          r.v.GetString("generator"),
		InputCompression:   r.v.GetString("input_compression"),
		OutputCompression:  r.v.GetString("output_compression"),
		S3Region:           r.v.GetString("s3_region"),
		GCSCredentialsFile: r.v.GetString("gcs_credentials_file"),
		LogLevel:           r.v.GetString("log_level"),
		LogFormat:          r.v.GetString("log_format"),
		MetricsFile:        r.v.GetString("metrics_file"),
		ReportFile:         r.v.GetString("report_file"),
		Trace:              trace,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func isKey(k string) bool {
	for _, key := range keys {
		if key == k {
			return true
		}
	}
	return false
}
