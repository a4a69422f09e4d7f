package store

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	s3opts "github.com/kart-io/wizora/pkg/options/s3"
)

// PutObjectAPI is the part of the S3 client the store uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store writes images to a bucket. Objects are addressed as
// <base>/<prefix>/<name>, so the base URL should point at the bucket or a CDN
// in front of it.
type S3Store struct {
	client  PutObjectAPI
	bucket  string
	prefix  string
	baseURL string
}

var _ ImageStore = (*S3Store)(nil)

// NewS3Store loads the default AWS configuration for opts.Region.
func NewS3Store(ctx context.Context, opts *s3opts.Options, baseURL string) (*S3Store, error) {
	if opts == nil || opts.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(opts.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	})
	return NewS3StoreWithClient(client, opts.Bucket, opts.Prefix, baseURL), nil
}

// NewS3StoreWithClient creates an S3Store on an existing client.
func NewS3StoreWithClient(client PutObjectAPI, bucket, prefix, baseURL string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix, baseURL: baseURL}
}

// Name returns the backend name.
func (s *S3Store) Name() string {
	return "s3"
}

func (s *S3Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Save uploads data as a PNG object.
func (s *S3Store) Save(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.key(name)),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String("image/png"),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to S3: %w", name, err)
	}
	return nil
}

// URL returns <base>/<prefix>/<name>.
func (s *S3Store) URL(name string) string {
	return joinURL(s.baseURL, s.key(name))
}
