package blob

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Uploader stores a named binary object and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, name string, body io.Reader, size int64, contentType string) (string, error)
}

// S3Uploader uploads objects to an S3-compatible bucket.
type S3Uploader struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// Ensure S3Uploader implements Uploader
var _ Uploader = (*S3Uploader)(nil)

// Options configures the S3-compatible endpoint.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL overrides the base URL used when building object links,
	// for deployments serving the bucket through a CDN.
	PublicURL string
}

// NewS3Uploader creates an uploader against an S3-compatible endpoint.
func NewS3Uploader(opts Options) (*S3Uploader, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("blob client: %w", err)
	}

	publicURL := opts.PublicURL
	if publicURL == "" {
		scheme := "http"
		if opts.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s", scheme, opts.Endpoint)
	}

	return &S3Uploader{
		client:    client,
		bucket:    opts.Bucket,
		publicURL: publicURL,
	}, nil
}

// Upload stores the object and returns its public URL.
func (u *S3Uploader) Upload(ctx context.Context, name string, body io.Reader, size int64, contentType string) (string, error) {
	_, err := u.client.PutObject(ctx, u.bucket, name, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", name, err)
	}
	return fmt.Sprintf("%s/%s/%s", u.publicURL, u.bucket, name), nil
}
