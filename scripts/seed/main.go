package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// Command line flags
var (
	tableName = flag.String("table", "transactions", "DynamoDB table to seed")
	region    = flag.String("region", "us-east-1", "AWS region")
	endpoint  = flag.String("endpoint", "http://localhost:8000", "DynamoDB endpoint (local by default)")
	count     = flag.Int("count", 25, "Number of sample transactions to write")
)

var vendors = []string{"Staples", "Uber", "AWS", "Blue Bottle", "Delta", "Costco"}

func main() {
	flag.Parse()

	log.SetOutput(os.Stdout)
	log.SetFlags(log.Ldate | log.Ltime)

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(*region))
	if err != nil {
		log.Fatalf("Unable to load SDK config: %v", err)
	}

	if *endpoint != "" {
		customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:           *endpoint,
				SigningRegion: region,
			}, nil
		})
		awsCfg.EndpointResolverWithOptions = customResolver
	}

	client := dynamodb.NewFromConfig(awsCfg)
	ctx := context.Background()

	if err := ensureTable(ctx, client); err != nil {
		log.Fatalf("Failed to create table: %v", err)
	}

	log.Printf("Seeding %d transactions into %s...", *count, *tableName)
	for i := 0; i < *count; i++ {
		if err := writeTransaction(ctx, client); err != nil {
			log.Fatalf("Failed to write transaction %d: %v", i, err)
		}
	}

	log.Printf("Done.")
}

// ensureTable creates the transactions table if it does not exist yet.
func ensureTable(ctx context.Context, client *dynamodb.Client) error {
	_, err := client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(*tableName),
		AttributeDefinitions: []types.AttributeDefinition{
			{
				AttributeName: aws.String("id"),
				AttributeType: types.ScalarAttributeTypeS,
			},
		},
		KeySchema: []types.KeySchemaElement{
			{
				AttributeName: aws.String("id"),
				KeyType:       types.KeyTypeHash,
			},
		},
		ProvisionedThroughput: &types.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(5),
			WriteCapacityUnits: aws.Int64(5),
		},
	})
	if err != nil {
		var alreadyExistsErr *types.ResourceInUseException
		if errors.As(err, &alreadyExistsErr) {
			// Table already exists, which is fine
			return nil
		}
		return err
	}

	waiter := dynamodb.NewTableExistsWaiter(client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(*tableName),
	}, 5*time.Minute); err != nil {
		return fmt.Errorf("failed to wait for table creation: %w", err)
	}

	return nil
}

func writeTransaction(ctx context.Context, client *dynamodb.Client) error {
	// Cents-granular amounts, the same shape OCR parsing produces
	amount := float64(rand.Intn(50000)) / 100

	item, err := attributevalue.MarshalMap(map[string]interface{}{
		"id":     uuid.New().String(),
		"vendor": vendors[rand.Intn(len(vendors))],
		"amount": amount,
		"date":   time.Now().AddDate(0, 0, -rand.Intn(90)).Format("2006-01-02"),
		"source": "seed",
	})
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}

	_, err = client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(*tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("PutItem operation failed: %w", err)
	}

	return nil
}
