// Package s3 provides an AWS S3 backed checksum input source.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Source opens S3 objects as sequential streams. Names are "bucket/key"
// (the scheme prefix is stripped by the resolver). Objects are fetched with
// a single GetObject; no parallel multipart download, because the checksum
// needs the bytes in order.
type Source struct {
	client *s3.Client
}

// New creates a Source around an existing client.
func New(client *s3.Client) *Source {
	return &Source{client: client}
}

// NewFromConfig creates a Source from the default AWS config chain.
// optFns can override region, profile or endpoint.
func NewFromConfig(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (*Source, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, err
	}
	return New(s3.NewFromConfig(cfg)), nil
}

// Open streams one object. Missing buckets or keys map to os.ErrNotExist.
func (s *Source) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	bucket, key, ok := strings.Cut(name, "/")
	if !ok || bucket == "" || key == "" {
		return nil, fmt.Errorf("s3: name %q is not bucket/key", name)
	}

	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		var nsb *types.NoSuchBucket
		if errors.As(err, &nsk) || errors.As(err, &nsb) {
			return nil, fmt.Errorf("s3: %s: %w", name, os.ErrNotExist)
		}
		return nil, err
	}
	return resp.Body, nil
}
