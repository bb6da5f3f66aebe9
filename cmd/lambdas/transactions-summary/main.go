package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/acct-ai/transaction-summary/internal/summary"
	dynamostore "github.com/acct-ai/transaction-summary/pkg/stores/dynamodb"
	s3store "github.com/acct-ai/transaction-summary/pkg/stores/s3"
)

var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "Content-Type",
	"Access-Control-Allow-Methods": "OPTIONS,GET,POST",
}

var (
	handler *summary.Handler
	logger  *zap.SugaredLogger
)

func init() {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		fmt.Printf("Error creating logger: %v\n", err)
		os.Exit(1)
	}
	logger = zapLogger.Sugar()

	// Get configuration from environment variables
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-1"
	}

	tableName := os.Getenv("DYNAMODB_TABLE")
	if tableName == "" {
		tableName = "transactions"
	}

	bucket := os.Getenv("SUMMARY_BUCKET")
	if bucket == "" {
		bucket = "acct-ai-uploads-https"
	}

	prefix := os.Getenv("SUMMARY_PREFIX")
	if prefix == "" {
		prefix = "summaries/"
	}

	// Configure the record store
	recordConfig := map[string]interface{}{
		"region":    region,
		"tableName": tableName,
	}
	if endpoint := os.Getenv("DYNAMODB_ENDPOINT"); endpoint != "" {
		recordConfig["endpoint"] = endpoint
	}

	recordStore, err := dynamostore.NewFactory().CreateRecordStore(recordConfig)
	if err != nil {
		logger.Fatalw("error creating record store", "error", err)
	}
	if err := recordStore.Initialize(context.Background()); err != nil {
		logger.Fatalw("error initializing record store", "error", err)
	}

	// Configure the object store
	objectConfig := map[string]interface{}{
		"region": region,
		"bucket": bucket,
	}
	if endpoint := os.Getenv("S3_ENDPOINT"); endpoint != "" {
		objectConfig["endpoint"] = endpoint
	}

	objectStore, err := s3store.NewFactory().CreateObjectStore(objectConfig)
	if err != nil {
		logger.Fatalw("error creating object store", "error", err)
	}

	handler = summary.NewHandler(
		summary.NewLoader(recordStore),
		summary.NewPublisher(objectStore, prefix),
		logger,
	)
}

func handleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if request.HTTPMethod == "OPTIONS" {
		return events.APIGatewayProxyResponse{
			StatusCode: 204,
			Headers:    corsHeaders,
		}, nil
	}

	limit := summary.ParseLimit(request.QueryStringParameters["limit"])

	response, err := handler.Handle(ctx, limit)
	if err != nil {
		logger.Errorw("request failed", "error", err)
		return jsonResponse(500, summary.ErrorResponse{
			Status:  summary.StatusError,
			Message: err.Error(),
		})
	}

	return jsonResponse(200, response)
}

func jsonResponse(statusCode int, body interface{}) (events.APIGatewayProxyResponse, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: 500,
			Headers:    corsHeaders,
			Body:       `{"status":"error","message":"failed to encode response"}`,
		}, nil
	}

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    corsHeaders,
		Body:       string(encoded),
	}, nil
}

func main() {
	lambda.Start(handleRequest)
}
