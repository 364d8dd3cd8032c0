package main

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ajitpratap0/dataprep/pkg/compression"
	"github.com/ajitpratap0/dataprep/pkg/config"
	"github.com/ajitpratap0/dataprep/pkg/errors"
	"github.com/ajitpratap0/dataprep/pkg/logger"
	"github.com/ajitpratap0/dataprep/pkg/metrics"
	"github.com/ajitpratap0/dataprep/pkg/observability"
	"github.com/ajitpratap0/dataprep/pkg/report"
	"github.com/ajitpratap0/dataprep/pkg/rows"
	"github.com/ajitpratap0/dataprep/pkg/storage"
)

// outcome is what a row function reports back to the job.
type outcome struct {
	RowsRead     int
	RowsKept     int
	DistinctKeys int
}

// rowFunc moves rows from r to w. It must not flush or close w.
type rowFunc func(ctx context.Context, r rows.Reader, w rows.Writer) (outcome, error)

// job runs one row command against the configured input and output.
type job struct {
	command string
	cfg     *config.JobConfig

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	profiler profiler

	// decorate adds command specific fields to the report
	decorate func(*report.Report)
}

func (j *job) run(ctx context.Context, fn rowFunc) (err error) {
	cfg := j.cfg

	if err := logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Encoding:    cfg.LogFormat,
		OutputPaths: []string{"stderr"},
	}); err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "failed to initialize logger")
	}
	defer func() { _ = logger.Sync() }()

	runID := uuid.NewString()
	ctx = context.WithValue(ctx, logger.RunIDKey, runID)
	ctx = context.WithValue(ctx, logger.CommandKey, j.command)
	log := logger.WithContext(ctx)

	if err := j.profiler.start(); err != nil {
		return err
	}
	defer func() {
		if perr := j.profiler.stop(); perr != nil {
			log.Warn("failed to write profile", zap.Error(perr))
		}
	}()

	delimiter, err := cfg.DelimiterRune()
	if err != nil {
		return err
	}
	in, err := storage.ParseTarget(cfg.Input)
	if err != nil {
		return err
	}
	out, err := storage.ParseTarget(cfg.Output)
	if err != nil {
		return err
	}
	if storage.SameTarget(in, out) {
		return errors.Newf(errors.ErrorTypeConfig, "output %s is the input; in-place editing is not supported", out).
			WithDetail("target", out.String())
	}
	inAlg, err := compression.ParseAlgorithm(cfg.InputCompression)
	if err != nil {
		return err
	}
	outAlg, err := compression.ParseAlgorithm(cfg.OutputCompression)
	if err != nil {
		return err
	}

	var traceOut io.Writer
	if cfg.Trace {
		traceOut = j.stderr
	}
	tracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "dataprep",
		ServiceVersion: version,
		Output:         traceOut,
		PrettyPrint:    true,
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "failed to initialize tracing")
	}
	defer func() {
		if serr := tracing.Shutdown(context.Background()); serr != nil {
			log.Warn("failed to shut down tracing", zap.Error(serr))
		}
	}()

	ctx, span := tracing.StartSpan(ctx, j.command,
		attribute.String("run_id", runID),
		attribute.String("input", in.String()),
		attribute.String("output", out.String()),
	)
	defer func() { observability.EndSpan(span, err) }()

	opener := &storage.Opener{
		Stdin:           j.stdin,
		Stdout:          j.stdout,
		Logger:          log,
		Region:          cfg.S3Region,
		CredentialsFile: cfg.GCSCredentialsFile,
	}

	log.Info("starting run",
		zap.String("input", in.String()),
		zap.String("output", out.String()),
		zap.String("delimiter", string(delimiter)))

	src, err := opener.Open(ctx, in)
	if err != nil {
		return err
	}
	defer src.Close()

	decoded, err := compression.NewReader(src, inAlg)
	if err != nil {
		return err
	}
	defer decoded.Close()

	collector := metrics.NewCollector(j.command)
	dst := &sink{
		ctx:       ctx,
		opener:    opener,
		target:    out,
		algorithm: outAlg,
		delimiter: delimiter,
	}

	start := time.Now()
	result, runErr := fn(ctx,
		collector.InstrumentReader(rows.NewCSVReader(decoded, delimiter)),
		collector.InstrumentWriter(dst))
	if runErr == nil {
		// an empty input still produces an (empty) output
		runErr = dst.ensureOpen()
	}
	if cerr := dst.Close(); runErr == nil {
		runErr = cerr
	}
	elapsed := time.Since(start)
	collector.ObserveRun(elapsed, result.DistinctKeys)

	if runErr != nil {
		log.Error("run failed", zap.Error(runErr), zap.Int("rows_read", result.RowsRead))
	} else {
		log.Info("run completed",
			zap.Duration("duration", elapsed),
			zap.Int("rows_read", result.RowsRead),
			zap.Int("rows_kept", result.RowsKept))
	}

	if cfg.MetricsFile != "" {
		if merr := collector.WriteTextfile(cfg.MetricsFile); merr != nil && runErr == nil {
			runErr = merr
		}
	}
	if cfg.ReportFile != "" {
		rep := &report.Report{
			RunID:        runID,
			Command:      j.command,
			Input:        in.String(),
			Output:       out.String(),
			Delimiter:    string(delimiter),
			RowsRead:     result.RowsRead,
			RowsKept:     result.RowsKept,
			DistinctKeys: result.DistinctKeys,
			StartedAt:    start.UTC(),
			Duration:     elapsed,
		}
		if j.decorate != nil {
			j.decorate(rep)
		}
		if runErr != nil {
			rep.Error = runErr.Error()
		}
		rep.CaptureMemory()
		if rerr := j.writeReport(rep); rerr != nil && runErr == nil {
			runErr = rerr
		}
	}

	return runErr
}

func (j *job) writeReport(rep *report.Report) error {
	if j.cfg.ReportFile == "-" {
		return report.Encode(j.stderr, rep)
	}
	return report.Write(j.cfg.ReportFile, rep)
}

// sink is the output side of a job. The destination is created on the
// first row, so a run that fails before writing its header leaves no output
// behind. Close flushes the CSV writer, then the codec, then the destination.
type sink struct {
	ctx       context.Context
	opener    *storage.Opener
	target    storage.Target
	algorithm compression.Algorithm
	delimiter rune

	dst   io.WriteCloser
	codec io.WriteCloser
	csv   *rows.CSVWriter
}

func (s *sink) WriteRow(row rows.Row) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	return s.csv.WriteRow(row)
}

func (s *sink) ensureOpen() error {
	if s.csv != nil {
		return nil
	}
	dst, err := s.opener.Create(s.ctx, s.target)
	if err != nil {
		return err
	}
	codec, err := compression.NewWriter(dst, s.algorithm, compression.Default)
	if err != nil {
		_ = dst.Close()
		return err
	}
	s.dst, s.codec = dst, codec
	s.csv = rows.NewCSVWriter(codec, s.delimiter)
	return nil
}

func (s *sink) Close() error {
	if s.csv == nil {
		return nil
	}
	err := s.csv.Flush()
	if cerr := s.codec.Close(); err == nil && cerr != nil {
		err = errors.Wrap(cerr, errors.ErrorTypeFile, "failed to finish compressed output")
	}
	if cerr := s.dst.Close(); err == nil && cerr != nil {
		err = errors.Wrap(cerr, errors.ErrorTypeFile, "failed to close output").
			WithDetail("target", s.target.String())
	}
	return err
}
