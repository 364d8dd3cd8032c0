package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ajitpratap0/dataprep/pkg/config"
)

// commonFlags are registered on every row command.
type commonFlags struct {
	configFile string
	dumpConfig string
	cpuProfile string
	memProfile string
}

func (c *commonFlags) register(fs *pflag.FlagSet) {
	fs.StringP("output", "o", "", "Write to this file, s3://bucket/key or gs://bucket/object rather than stdout")
	fs.StringP("delimiter", "d", config.DefaultDelimiter, "Column delimiter: one character, or t/tab, comma, pipe, semicolon, space")
	fs.String("input-compression", "none", "Decompress the input: none, gzip, zstd, snappy, s2, lz4")
	fs.String("output-compression", "none", "Compress the output: none, gzip, zstd, snappy, s2, lz4")
	fs.String("s3-region", "", "AWS region for s3:// targets (default from the AWS config chain)")
	fs.String("gcs-credentials-file", "", "Service account key for gs:// targets (default application credentials)")
	fs.String("log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	fs.String("log-format", config.DefaultLogFormat, "Log encoding (json, console)")
	fs.String("metrics-file", "", "Write Prometheus metrics in text format to this file after the run")
	fs.String("report", "", "Write a JSON run report to this file; - for stderr")
	fs.Bool("trace", false, "Print OpenTelemetry spans to stderr")
	fs.StringVar(&c.configFile, "config", "", "YAML job configuration file")
	fs.StringVar(&c.dumpConfig, "dump-config", "", "Write the resolved configuration as YAML to stdout, or to FILE with --dump-config=FILE, and exit")
	fs.Lookup("dump-config").NoOptDefVal = "-"
	fs.StringVar(&c.cpuProfile, "cpuprofile", "", "Write a CPU profile to this file")
	fs.StringVar(&c.memProfile, "memprofile", "", "Write a heap profile to this file after the run")
}

// newJob builds the job for cmd once its configuration is resolved.
func (c *commonFlags) newJob(cmd *cobra.Command, name string, cfg *config.JobConfig) *job {
	return &job{
		command:  name,
		cfg:      cfg,
		stdin:    cmd.InOrStdin(),
		stdout:   cmd.OutOrStdout(),
		stderr:   cmd.ErrOrStderr(),
		profiler: profiler{cpuFile: c.cpuProfile, memFile: c.memProfile},
	}
}

// dump writes cfg as YAML to stdout, or to the file named by --dump-config.
func (c *commonFlags) dump(cmd *cobra.Command, cfg *config.JobConfig) error {
	if c.dumpConfig == "-" {
		return config.Encode(cmd.OutOrStdout(), cfg)
	}
	return config.Save(c.dumpConfig, cfg)
}

// resolve layers defaults, the config file, DATAPREP_* variables and the
// flags set on cmd. A positional argument names the input.
func (c *commonFlags) resolve(cmd *cobra.Command, args []string) (*config.JobConfig, error) {
	r := config.NewResolver()
	if c.configFile != "" {
		if err := r.ReadFile(c.configFile); err != nil {
			return nil, err
		}
	}
	if err := r.BindFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	if len(args) == 1 {
		r.Set("input", args[0])
	}
	return r.Resolve()
}
