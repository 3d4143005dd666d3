// Package minio provides a MinIO (S3-compatible) backed checksum input
// source.
package minio

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/minio/minio-go/v7"
)

// Source opens MinIO objects as sequential streams. Names are "bucket/key".
type Source struct {
	client *minio.Client
}

// New creates a Source around an existing client.
func New(client *minio.Client) *Source {
	return &Source{client: client}
}

// Open streams one object. Missing buckets or keys map to os.ErrNotExist.
func (s *Source) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	bucket, key, ok := strings.Cut(name, "/")
	if !ok || bucket == "" || key == "" {
		return nil, fmt.Errorf("minio: name %q is not bucket/key", name)
	}

	// GetObject is lazy; stat first so missing objects surface at open time.
	if _, err := s.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{}); err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.Code == "NoSuchBucket" || errResp.Code == "NotFound" {
			return nil, fmt.Errorf("minio: %s: %w", name, os.ErrNotExist)
		}
		return nil, err
	}

	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	return obj, nil
}
