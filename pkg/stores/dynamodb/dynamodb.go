package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/acct-ai/transaction-summary/pkg/stores"
)

// RecordStore is an implementation of the stores.RecordStore interface for
// AWS DynamoDB. Each Scan call fetches one page; the continuation token is
// the page's LastEvaluatedKey.
type RecordStore struct {
	client      *dynamodb.Client
	tableName   string
	initialized bool
}

// Config holds the configuration for a DynamoDB record store
type Config struct {
	Region    string
	TableName string
	Endpoint  string
}

// Factory creates DynamoDB record store instances
type Factory struct{}

// NewFactory creates a new DynamoDB factory
func NewFactory() *Factory {
	return &Factory{}
}

// CreateRecordStore implements the RecordStoreFactory interface
func (f *Factory) CreateRecordStore(config map[string]interface{}) (stores.RecordStore, error) {
	// Extract configuration
	cfg := Config{
		Region:    "us-east-1", // Default region
		TableName: "transactions",
	}

	if region, ok := config["region"].(string); ok {
		cfg.Region = region
	}
	if tableName, ok := config["tableName"].(string); ok {
		cfg.TableName = tableName
	}
	if endpoint, ok := config["endpoint"].(string); ok {
		cfg.Endpoint = endpoint
	}

	return NewRecordStore(cfg)
}

// NewRecordStore creates a new DynamoDB record store instance
func NewRecordStore(cfg Config) (*RecordStore, error) {
	store := &RecordStore{
		tableName:   cfg.TableName,
		initialized: false,
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	if cfg.Endpoint != "" {
		// Use a custom endpoint (e.g., for local DynamoDB)
		customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:           cfg.Endpoint,
				SigningRegion: cfg.Region,
			}, nil
		})
		awsCfg.EndpointResolverWithOptions = customResolver
	}

	store.client = dynamodb.NewFromConfig(awsCfg)

	return store, nil
}

// Initialize implements the RecordStore interface
func (s *RecordStore) Initialize(ctx context.Context) error {
	if s.initialized {
		return nil
	}

	// Check if table exists
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.tableName),
	})

	if err != nil {
		var notFoundErr *types.ResourceNotFoundException
		if errors.As(err, &notFoundErr) {
			return fmt.Errorf("table %s does not exist", s.tableName)
		}
		return fmt.Errorf("error checking table: %w", err)
	}

	s.initialized = true
	return nil
}

// Close implements the RecordStore interface
func (s *RecordStore) Close() error {
	// DynamoDB doesn't require explicit connection closing
	s.initialized = false
	return nil
}

// Scan implements the RecordStore interface. token must be nil or a value
// previously returned in Page.NextToken.
func (s *RecordStore) Scan(ctx context.Context, token stores.PageToken) (*stores.Page, error) {
	if !s.initialized {
		return nil, errors.New("record store not initialized")
	}

	input := &dynamodb.ScanInput{
		TableName: aws.String(s.tableName),
	}

	if token != nil {
		startKey, ok := token.(map[string]types.AttributeValue)
		if !ok {
			return nil, fmt.Errorf("unexpected continuation token type %T", token)
		}
		input.ExclusiveStartKey = startKey
	}

	result, err := s.client.Scan(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("Scan operation failed: %w", err)
	}

	page := &stores.Page{
		Items: make([]stores.Record, 0, len(result.Items)),
	}
	for _, item := range result.Items {
		record, err := decodeItem(item)
		if err != nil {
			return nil, fmt.Errorf("failed to decode item: %w", err)
		}
		page.Items = append(page.Items, record)
	}

	if len(result.LastEvaluatedKey) > 0 {
		page.NextToken = result.LastEvaluatedKey
	}

	return page, nil
}
