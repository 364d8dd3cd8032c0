package config

import (
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ajitpratap0/dataprep/pkg/errors"
)

// Load reads the YAML file at filePath into config after expanding
// ${VAR} references. A missing file is a file error; malformed YAML is a
// config error.
func Load(filePath string, config interface{}) error {
	data, err := os.ReadFile(filePath) //nolint:gosec // G304: path comes from the --config flag
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to read config file").
			WithDetail("path", filePath)
	}

	content := substituteEnvVars(string(data))
	if err := yaml.Unmarshal([]byte(content), config); err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "failed to parse config file").
			WithDetail("path", filePath)
	}
	return nil
}

// Save writes config to filePath as YAML.
func Save(filePath string, config interface{}) error {
	f, err := os.Create(filePath) //nolint:gosec // G304: path comes from the caller
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to create config file").
			WithDetail("path", filePath)
	}
	if err := Encode(f, config); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Encode writes config to w as YAML with two-space indentation.
func Encode(w io.Writer, config interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(config); err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "failed to encode config")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write config")
	}
	return nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
// Substituted values are not expanded again.
func substituteEnvVars(content string) string {
	var b strings.Builder
	for {
		start := strings.Index(content, "${")
		if start == -1 {
			break
		}
		end := strings.Index(content[start:], "}")
		if end == -1 {
			break
		}
		end += start

		b.WriteString(content[:start])
		b.WriteString(os.Getenv(content[start+2 : end]))
		content = content[end+1:]
	}
	b.WriteString(content)
	return b.String()
}
