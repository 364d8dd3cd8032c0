// Package metrics tracks row throughput of the dataprep tools with
// Prometheus collectors.
//
// A Collector owns its registry, so runs in one process never share
// counters. Batch tools have no scrape endpoint; results are written in the
// text exposition format for the node exporter textfile collector.
//
//	collector := metrics.NewCollector("subsample")
//	r := collector.InstrumentReader(rows.NewCSVReader(in, ','))
//	w := collector.InstrumentWriter(rows.NewCSVWriter(out, ','))
//	...
//	collector.ObserveRun(time.Since(start), stats.DistinctKeys)
//	err := collector.WriteTextfile("/var/lib/node_exporter/dataprep.prom")
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ajitpratap0/dataprep/pkg/errors"
	"github.com/ajitpratap0/dataprep/pkg/rows"
)

// Collector holds the metrics of one command invocation.
type Collector struct {
	command      string
	registry     *prometheus.Registry
	rowsRead     prometheus.Counter
	rowsWritten  prometheus.Counter
	distinctKeys prometheus.Gauge
	runDuration  prometheus.Histogram
}

// NewCollector creates a collector labelled with command.
func NewCollector(command string) *Collector {
	labels := prometheus.Labels{"command": command}
	c := &Collector{
		command:  command,
		registry: prometheus.NewRegistry(),
		rowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "dataprep_rows_read_total",
			Help:        "Rows read from the input, header included",
			ConstLabels: labels,
		}),
		rowsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "dataprep_rows_written_total",
			Help:        "Rows written to the output, header included",
			ConstLabels: labels,
		}),
		distinctKeys: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "dataprep_distinct_keys",
			Help:        "Distinct key values seen by the last keyed run",
			ConstLabels: labels,
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "dataprep_run_duration_seconds",
			Help:        "Wall time of a run",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}
	c.registry.MustRegister(c.rowsRead, c.rowsWritten, c.distinctKeys, c.runDuration)
	return c
}

// Registry exposes the underlying registry, e.g. for testutil gathering.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveRun records the duration and key count of a finished run.
func (c *Collector) ObserveRun(d time.Duration, distinctKeys int) {
	c.runDuration.Observe(d.Seconds())
	c.distinctKeys.Set(float64(distinctKeys))
}

// WriteTextfile writes all metrics to path in the text exposition format.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write metrics textfile").
			WithDetail("path", path)
	}
	return nil
}

// InstrumentReader counts every row returned by r.
func (c *Collector) InstrumentReader(r rows.Reader) rows.Reader {
	return &countingReader{Reader: r, counter: c.rowsRead}
}

// InstrumentWriter counts every row successfully written to w. The returned
// writer forwards Flush when w implements rows.Flusher.
func (c *Collector) InstrumentWriter(w rows.Writer) rows.Writer {
	return &countingWriter{Writer: w, counter: c.rowsWritten}
}

type countingReader struct {
	rows.Reader
	counter prometheus.Counter
}

func (r *countingReader) Next() (rows.Row, error) {
	row, err := r.Reader.Next()
	if err == nil {
		r.counter.Inc()
	}
	return row, err
}

type countingWriter struct {
	rows.Writer
	counter prometheus.Counter
}

func (w *countingWriter) WriteRow(row rows.Row) error {
	if err := w.Writer.WriteRow(row); err != nil {
		return err
	}
	w.counter.Inc()
	return nil
}

func (w *countingWriter) Flush() error {
	if f, ok := w.Writer.(rows.Flusher); ok {
		return f.Flush()
	}
	return nil
}
