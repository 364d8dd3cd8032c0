// Package storage opens input and creates output byte streams for the
// dataprep tools. Targets are stdin/stdout, local paths, S3 objects
// (s3://bucket/key) and GCS objects (gs://bucket/object).
package storage

import (
	"path/filepath"
	"strings"

	"github.com/ajitpratap0/dataprep/pkg/errors"
)

// Scheme identifies where a target lives.
type Scheme string

const (
	// SchemeStdio is stdin for inputs and stdout for outputs
	SchemeStdio Scheme = "stdio"
	// SchemeFile is a local file path
	SchemeFile Scheme = "file"
	// SchemeS3 is an Amazon S3 object
	SchemeS3 Scheme = "s3"
	// SchemeGCS is a Google Cloud Storage object
	SchemeGCS Scheme = "gs"
)

// Target is a parsed input or output location.
type Target struct {
	Scheme Scheme
	// Path is the local path for SchemeFile.
	Path string
	// Bucket and Key address remote objects.
	Bucket string
	Key    string
}

// String renders t in the form accepted by ParseTarget.
func (t Target) String() string {
	switch t.Scheme {
	case SchemeStdio:
		return "-"
	case SchemeS3, SchemeGCS:
		return string(t.Scheme) + "://" + t.Bucket + "/" + t.Key
	default:
		return t.Path
	}
}

// ParseTarget parses "", "-", a local path, s3://bucket/key or gs://bucket/object.
func ParseTarget(s string) (Target, error) {
	switch {
	case s == "" || s == "-":
		return Target{Scheme: SchemeStdio}, nil
	case strings.HasPrefix(s, "s3://"):
		return parseObject(SchemeS3, strings.TrimPrefix(s, "s3://"), s)
	case strings.HasPrefix(s, "gs://"):
		return parseObject(SchemeGCS, strings.TrimPrefix(s, "gs://"), s)
	case strings.Contains(s, "://"):
		return Target{}, errors.Newf(errors.ErrorTypeConfig, "unsupported target scheme in %q", s)
	default:
		return Target{Scheme: SchemeFile, Path: s}, nil
	}
}

func parseObject(scheme Scheme, rest, raw string) (Target, error) {
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return Target{}, errors.Newf(errors.ErrorTypeConfig, "target %q must name a bucket and an object key", raw)
	}
	return Target{Scheme: scheme, Bucket: bucket, Key: key}, nil
}

// SameTarget reports whether two targets name the same location. Stdio
// never conflicts with itself since stdin and stdout are distinct streams.
func SameTarget(a, b Target) bool {
	if a.Scheme != b.Scheme {
		return false
	}
	switch a.Scheme {
	case SchemeStdio:
		return false
	case SchemeFile:
		pa, errA := filepath.Abs(a.Path)
		pb, errB := filepath.Abs(b.Path)
		if errA != nil || errB != nil {
			return filepath.Clean(a.Path) == filepath.Clean(b.Path)
		}
		return pa == pb
	default:
		return a.Bucket == b.Bucket && a.Key == b.Key
	}
}
