// Package report builds the JSON summary written after a dataprep run.
package report

import (
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/ajitpratap0/dataprep/pkg/errors"
)

// Report summarizes one command invocation.
type Report struct {
	RunID     string `json:"run_id"`
	Command   string `json:"command"`
	Input     string `json:"input"`
	Output    string `json:"output"`
	Delimiter string `json:"delimiter"`

	Rate      float64 `json:"rate,omitempty"`
	Seed      uint64  `json:"seed"`
	KeyColumn string  `json:"key_column,omitempty"`
	Generator string  `json:"generator,omitempty"`

	RowsRead     int `json:"rows_read"`
	RowsKept     int `json:"rows_kept"`
	DistinctKeys int `json:"distinct_keys,omitempty"`

	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration_ns"`
	RSSBytes  uint64        `json:"rss_bytes"`
	Error     string        `json:"error,omitempty"`
}

// KeptFraction returns RowsKept / RowsRead, or 0 for an empty input.
func (r *Report) KeptFraction() float64 {
	if r.RowsRead == 0 {
		return 0
	}
	return float64(r.RowsKept) / float64(r.RowsRead)
}

// CaptureMemory fills RSSBytes from the current process. Failures leave it at zero.
func (r *Report) CaptureMemory() {
	proc, err := process.NewProcess(int32(os.Getpid())) //nolint:gosec // pid fits in int32
	if err != nil {
		return
	}
	info, err := proc.MemoryInfo()
	if err != nil || info == nil {
		return
	}
	r.RSSBytes = info.RSS
}

// Encode writes r as indented JSON followed by a newline.
func Encode(w io.Writer, r *Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "failed to encode report")
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write report")
	}
	return nil
}

// Write stores r at path; "-" writes to stderr.
func Write(path string, r *Report) error {
	if path == "-" {
		return Encode(os.Stderr, r)
	}
	f, err := os.Create(path) //nolint:gosec // G304: path comes from the command line
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to create report").WithDetail("path", path)
	}
	if err := Encode(f, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Read loads a report previously written by Write.
func Read(path string) (*Report, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the caller
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to read report").WithDetail("path", path)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to decode report").WithDetail("path", path)
	}
	return &r, nil
}
