// Package config provides the job configuration shared by every dataprep
// command.
//
// # Sources
//
// A JobConfig is assembled by a Resolver from four layers, lowest
// precedence first:
//
//   - Defaults: rate 0.01, seed 0, delimiter ",", generator mt19937
//   - A YAML file passed with --config
//   - DATAPREP_* environment variables (DATAPREP_RATE, DATAPREP_KEY_COLUMN, ...)
//   - Flags set explicitly on the command line
//
// # Environment Variable Substitution
//
// Config files may reference environment variables with ${VAR_NAME}:
//
//	# job.yaml
//	input: s3://${SAMPLE_BUCKET}/people.csv
//	output: people.sample.csv
//	rate: 0.05
//	key_column: name
//
// Unset variables expand to the empty string.
//
// # Validation
//
// JobConfig.Validate rejects a rate outside [0, 1], an unusable delimiter,
// an unknown generator or compression, and a seed that mt19937 cannot
// represent. Every validation failure is an errors.ErrorTypeConfig error.
package config
