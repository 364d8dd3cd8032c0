package storage

import (
	"context"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/ajitpratap0/dataprep/pkg/errors"
)

func (o *Opener) gcsClient(ctx context.Context) (*storage.Client, error) {
	var opts []option.ClientOption
	if o.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(o.CredentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "failed to create GCS client")
	}
	return client, nil
}

func (o *Opener) openGCS(ctx context.Context, target Target) (io.ReadCloser, error) {
	client, err := o.gcsClient(ctx)
	if err != nil {
		return nil, err
	}
	r, err := client.Bucket(target.Bucket).Object(target.Key).NewReader(ctx)
	if err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "failed to read GCS object").
			WithDetail("bucket", target.Bucket).
			WithDetail("object", target.Key)
	}
	return &gcsReader{Reader: r, client: client}, nil
}

func (o *Opener) createGCS(ctx context.Context, target Target) (io.WriteCloser, error) {
	client, err := o.gcsClient(ctx)
	if err != nil {
		return nil, err
	}
	w := client.Bucket(target.Bucket).Object(target.Key).NewWriter(ctx)
	w.ContentType = "text/csv"
	return &gcsWriter{Writer: w, client: client, target: target}, nil
}

type gcsReader struct {
	*storage.Reader
	client *storage.Client
}

func (r *gcsReader) Close() error {
	err := r.Reader.Close()
	_ = r.client.Close()
	return err
}

type gcsWriter struct {
	*storage.Writer
	client *storage.Client
	target Target
}

// Close commits the object; it becomes visible only if Close succeeds.
func (w *gcsWriter) Close() error {
	err := w.Writer.Close()
	_ = w.client.Close()
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeConnection, "failed to write GCS object").
			WithDetail("bucket", w.target.Bucket).
			WithDetail("object", w.target.Key)
	}
	return nil
}
