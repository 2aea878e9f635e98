// Package s3 provides the object-store backend for obfx, implementing
// obfx.BlobStore on top of AWS S3.
package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/hengadev/obfx"
)

// s3Client interface for the S3 operations the store uses (allows mocking)
type s3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store implements obfx.BlobStore using S3 GetObject/PutObject. One Store is
// safe for concurrent use across requests.
type Store struct {
	client s3Client
	region string
}

// Config holds configuration for the S3 store.
type Config struct {
	// Region is the AWS region (e.g., "eu-west-2")
	// If empty, uses AWS_REGION environment variable or AWS config file
	Region string

	// AWSConfig is an optional pre-configured AWS config
	// If provided, Region is ignored
	AWSConfig *aws.Config
}

// New creates an S3-backed store.
//
// Usage:
//
//	// Using default AWS configuration
//	store, err := s3.New(ctx, s3.Config{})
//
//	// With specific region
//	store, err := s3.New(ctx, s3.Config{Region: "eu-west-2"})
func New(ctx context.Context, cfg Config) (*Store, error) {
	var awsConfig aws.Config
	var err error

	if cfg.AWSConfig != nil {
		awsConfig = *cfg.AWSConfig
	} else {
		opts := []func(*awsconfig.LoadOptions) error{}
		if cfg.Region != "" {
			opts = append(opts, awsconfig.WithRegion(cfg.Region))
		}
		awsConfig, err = awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to load AWS config: %w", obfx.ErrInvalidConfiguration, err)
		}
	}

	return &Store{
		client: s3.NewFromConfig(awsConfig),
		region: awsConfig.Region,
	}, nil
}

// Fetch downloads the complete object. Every retrieval failure, including a
// missing key and access denial, surfaces as ErrSourceNotFound: from the
// caller's point of view the source could not be read.
func (s *Store) Fetch(ctx context.Context, loc obfx.Locator) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", obfx.ErrSourceNotFound, loc.Raw, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", obfx.ErrSourceNotFound, loc.Raw, err)
	}
	return data, nil
}

// Store overwrites the object with data.
func (s *Store) Store(ctx context.Context, loc obfx.Locator, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(loc.Bucket),
		Key:         aws.String(loc.Key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", obfx.ErrWriteFailure, loc.Raw, err)
	}
	return nil
}
