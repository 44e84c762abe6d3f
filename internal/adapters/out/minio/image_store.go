// Package minio keeps order photos in an S3 compatible bucket.
package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"jewelryorders/internal/core/domain/model/kernel"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Options configure the bucket connection.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// ImageStore implements ports.ImageStore. Object names are random UUIDs.
type ImageStore struct {
	client *minio.Client
	bucket string
	clock  kernel.Clock
}

func NewImageStore(opts Options, clock kernel.Clock) (*ImageStore, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	if clock == nil {
		clock = kernel.SystemClock
	}
	return &ImageStore{client: client, bucket: opts.Bucket, clock: clock}, nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *ImageStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}
	return nil
}

func (s *ImageStore) Put(ctx context.Context, blob []byte, mime string) (string, error) {
	id := kernel.NewUUID().String()
	_, err := s.client.PutObject(ctx, s.bucket, id, bytes.NewReader(blob), int64(len(blob)), minio.PutObjectOptions{
		ContentType: mime,
	})
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return id, nil
}

func (s *ImageStore) Get(ctx context.Context, id string) ([]byte, bool, error) {
	object, err := s.client.GetObject(ctx, s.bucket, id, minio.GetObjectOptions{})
	if err != nil {
		return nil, false, fmt.Errorf("open image %s: %w", id, err)
	}
	defer object.Close()

	// GetObject is lazy; a missing key only shows up on the first read.
	blob, err := io.ReadAll(object)
	if err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read image %s: %w", id, err)
	}
	return blob, true, nil
}

func (s *ImageStore) Delete(ctx context.Context, id string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, id, minio.RemoveObjectOptions{}); err != nil && !isNotFound(err) {
		return fmt.Errorf("delete image %s: %w", id, err)
	}
	return nil
}

func (s *ImageStore) PurgeOlderThan(ctx context.Context, days int) (int, error) {
	cutoff := s.clock().Add(-time.Duration(days) * 24 * time.Hour)

	removed := 0
	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if info.Err != nil {
			return removed, fmt.Errorf("list images: %w", info.Err)
		}
		if !info.LastModified.Before(cutoff) {
			continue
		}
		if err := s.Delete(ctx, info.Key); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func isNotFound(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NoSuchObject"
}
