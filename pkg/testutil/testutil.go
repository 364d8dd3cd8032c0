// Package testutil provides testing utilities for dataprep
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// Fixture inputs shared by the tool tests. Each names three people; Long
// repeats every name twice with distinct other fields.
const (
	CommaCSV = "name,age,weight\nian,1,11\ndaniel,2,22\nchang,3,33"
	PipeCSV  = "name|age|weight\nian|1|11\ndaniel|2|22\nchang|3|33"
	LongCSV  = "name,age,weight\nian,1,11\ndaniel,2,22\nian,1b,11b\nchang,3,33" +
		"\ndaniel,2b,22b\nchang,3b,33b"
)

// TestLogger creates a test logger that writes to the test output.
// The logger is automatically cleaned up when the test completes.
func TestLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}

// TestContext creates a test context with a 30-second timeout.
// The caller must call the returned cancel function to avoid leaks.
func TestContext(_ *testing.T) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// WriteFile writes content to name inside dir and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// ReadFile returns the content of path.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) //nolint:gosec // test helper
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// CRLF joins lines with CRLF terminators, including after the last line.
func CRLF(lines ...string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\r\n") + "\r\n"
}
