package storage

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/ajitpratap0/dataprep/pkg/errors"
)

const defaultUploadPartSize = 5 * 1024 * 1024 // 5MB

func (o *Opener) s3Client(ctx context.Context) (*s3.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if o.Region != "" {
		opts = append(opts, awsconfig.WithRegion(o.Region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "failed to load AWS configuration")
	}
	return s3.NewFromConfig(cfg), nil
}

func (o *Opener) openS3(ctx context.Context, target Target) (io.ReadCloser, error) {
	client, err := o.s3Client(ctx)
	if err != nil {
		return nil, err
	}
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(target.Bucket),
		Key:    aws.String(target.Key),
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "failed to get S3 object").
			WithDetail("bucket", target.Bucket).
			WithDetail("key", target.Key)
	}
	return out.Body, nil
}

func (o *Opener) createS3(ctx context.Context, target Target) (io.WriteCloser, error) {
	client, err := o.s3Client(ctx)
	if err != nil {
		return nil, err
	}
	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = defaultUploadPartSize
	})

	pr, pw := io.Pipe()
	done := make(chan error, 1)
	go func() {
		_, err := uploader.Upload(ctx, &s3.PutObjectInput{
			Bucket: aws.String(target.Bucket),
			Key:    aws.String(target.Key),
			Body:   pr,
		})
		// Unblock the writer side if the upload gave up early.
		_ = pr.CloseWithError(err)
		done <- err
	}()

	return &pipeUpload{
		pw:   pw,
		done: done,
		onErr: func(err error) error {
			return errors.Wrap(err, errors.ErrorTypeConnection, "failed to upload S3 object").
				WithDetail("bucket", target.Bucket).
				WithDetail("key", target.Key)
		},
		onOK: func() {
			o.logger().Debug("uploaded S3 object",
				zap.String("bucket", target.Bucket),
				zap.String("key", target.Key))
		},
	}, nil
}

// pipeUpload feeds an upload running in another goroutine.
type pipeUpload struct {
	pw    *io.PipeWriter
	done  <-chan error
	onErr func(error) error
	onOK  func()
}

func (p *pipeUpload) Write(b []byte) (int, error) {
	return p.pw.Write(b)
}

// Close ends the stream and waits for the upload to finish.
func (p *pipeUpload) Close() error {
	_ = p.pw.Close()
	if err := <-p.done; err != nil {
		return p.onErr(err)
	}
	p.onOK()
	return nil
}
