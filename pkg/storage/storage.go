package storage

import (
	"context"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/ajitpratap0/dataprep/pkg/errors"
)

// Opener opens inputs and creates outputs. The zero value uses the process
// stdin/stdout and lazily builds cloud clients from ambient credentials.
type Opener struct {
	Stdin  io.Reader
	Stdout io.Writer
	Logger *zap.Logger

	// Region for S3 clients; empty uses the SDK default chain.
	Region string
	// CredentialsFile for GCS clients; empty uses application default credentials.
	CredentialsFile string
}

// Open returns a reader for target. Closing a stdin reader is a no-op.
func (o *Opener) Open(ctx context.Context, target Target) (io.ReadCloser, error) {
	o.logger().Debug("opening input", zap.String("target", target.String()))

	switch target.Scheme {
	case SchemeStdio:
		return io.NopCloser(o.stdin()), nil
	case SchemeFile:
		f, err := os.Open(target.Path) //nolint:gosec // G304: path comes from the command line
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to open input").
				WithDetail("path", target.Path)
		}
		return f, nil
	case SchemeS3:
		return o.openS3(ctx, target)
	case SchemeGCS:
		return o.openGCS(ctx, target)
	default:
		return nil, errors.Newf(errors.ErrorTypeConfig, "unsupported input scheme %q", target.Scheme)
	}
}

// Create returns a writer for target. Data reaches remote targets only once
// Close returns without error. Closing a stdout writer is a no-op.
func (o *Opener) Create(ctx context.Context, target Target) (io.WriteCloser, error) {
	o.logger().Debug("creating output", zap.String("target", target.String()))

	switch target.Scheme {
	case SchemeStdio:
		return nopWriteCloser{o.stdout()}, nil
	case SchemeFile:
		f, err := os.Create(target.Path) //nolint:gosec // G304: path comes from the command line
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to create output").
				WithDetail("path", target.Path)
		}
		return f, nil
	case SchemeS3:
		return o.createS3(ctx, target)
	case SchemeGCS:
		return o.createGCS(ctx, target)
	default:
		return nil, errors.Newf(errors.ErrorTypeConfig, "unsupported output scheme %q", target.Scheme)
	}
}

func (o *Opener) stdin() io.Reader {
	if o.Stdin != nil {
		return o.Stdin
	}
	return os.Stdin
}

func (o *Opener) stdout() io.Writer {
	if o.Stdout != nil {
		return o.Stdout
	}
	return os.Stdout
}

func (o *Opener) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
