package s3

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/acct-ai/transaction-summary/pkg/stores"
)

// ObjectStore is an implementation of the stores.ObjectStore interface for
// AWS S3. Writes are plain puts: an existing object under the same key is
// overwritten.
type ObjectStore struct {
	client *s3.Client
	bucket string
}

// Config holds the configuration for an S3 object store
type Config struct {
	Region   string
	Bucket   string
	Endpoint string
}

// Factory creates S3 object store instances
type Factory struct{}

// NewFactory creates a new S3 factory
func NewFactory() *Factory {
	return &Factory{}
}

// CreateObjectStore implements the ObjectStoreFactory interface
func (f *Factory) CreateObjectStore(config map[string]interface{}) (stores.ObjectStore, error) {
	// Extract configuration
	cfg := Config{
		Region: "us-east-1", // Default region
	}

	if region, ok := config["region"].(string); ok {
		cfg.Region = region
	}
	if bucket, ok := config["bucket"].(string); ok {
		cfg.Bucket = bucket
	}
	if endpoint, ok := config["endpoint"].(string); ok {
		cfg.Endpoint = endpoint
	}

	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}

	return NewObjectStore(cfg)
}

// NewObjectStore creates a new S3 object store instance
func NewObjectStore(cfg Config) (*ObjectStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			// Use a custom endpoint (e.g., for MinIO or localstack)
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &ObjectStore{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// PutObject implements the ObjectStore interface
func (s *ObjectStore) PutObject(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("PutObject operation failed: %w", err)
	}

	return nil
}
