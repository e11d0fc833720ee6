package origin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"birl/internal/platform/config"
	"birl/pkg/platform/sentinel"
)

// Minio implements ports.OriginStore over an S3-compatible bucket.
type Minio struct {
	client *minio.Client
	bucket string
}

// NewMinio connects to the bucket described by cfg.
func NewMinio(cfg config.MinioConfig) (*Minio, error) {
	if err := validateMinio(cfg); err != nil {
		return nil, fmt.Errorf("invalid minio config: %w", err)
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return NewMinioWithClient(client, cfg.Bucket), nil
}

// NewMinioWithClient uses a pre-configured client.
func NewMinioWithClient(client *minio.Client, bucket string) *Minio {
	return &Minio{client: client, bucket: bucket}
}

func validateMinio(cfg config.MinioConfig) error {
	if cfg.Bucket == "" {
		return errors.New("bucket is required")
	}
	if cfg.Endpoint == "" {
		return errors.New("endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return errors.New("access key and secret key are required")
	}
	return nil
}

// Get downloads the object stored under key.
func (s *Minio) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, translate(key, err)
	}
	defer func() {
		_ = obj.Close()
	}()

	// GetObject is lazy; a missing key surfaces on the first read.
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, translate(key, err)
	}
	return data, nil
}

// Put uploads data under key.
func (s *Minio) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType(key),
	})
	if err != nil {
		return translate(key, err)
	}
	return nil
}

// translate maps S3 error codes onto store sentinels.
func translate(key string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return fmt.Errorf("%w: %s", sentinel.ErrNotFound, key)
	}
	return fmt.Errorf("%w: minio %s: %w", sentinel.ErrUnavailable, key, err)
}

func contentType(key string) string {
	switch path.Ext(key) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".json":
		return "application/json"
	}
	return "application/octet-stream"
}

// Health reports whether the bucket is reachable.
func (s *Minio) Health(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("%w: bucket %s: %w", sentinel.ErrUnavailable, s.bucket, err)
	}
	if !ok {
		return fmt.Errorf("%w: bucket %s", sentinel.ErrNotFound, s.bucket)
	}
	return nil
}
