package repository

import (
	"context"
	"time"

	"printhub/internal/domain/entities"
	"printhub/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const defaultPrintJobsTableName = "print_jobs"

type printJobRecord struct {
	ID             string  `dynamodbav:"id"`
	UserID         string  `dynamodbav:"user_id"`
	EstimateID     string  `dynamodbav:"estimate_id"`
	FileName       string  `dynamodbav:"file_name"`
	StoragePath    string  `dynamodbav:"storage_path,omitempty"`
	FileSizeBytes  int64   `dynamodbav:"file_size_bytes"`
	Material       string  `dynamodbav:"material"`
	Quality        string  `dynamodbav:"quality"`
	EstimatedPrice float64 `dynamodbav:"estimated_price"`
	CreatedAt      string  `dynamodbav:"created_at"`
}

// PrintJobDynamoRepository persists PrintJob records in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
type PrintJobDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPrintJobRepository = (*PrintJobDynamoRepository)(nil)

func NewPrintJobDynamoRepository(ddb *dynamodb.Client) *PrintJobDynamoRepository {
	return &PrintJobDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PRINT_JOBS_TABLE", defaultPrintJobsTableName),
	}
}

func (r *PrintJobDynamoRepository) Create(ctx context.Context, j entities.PrintJob) error {
	av, err := attributevalue.MarshalMap(printJobRecord{
		ID:             j.ID,
		UserID:         j.UserID,
		EstimateID:     j.EstimateID,
		FileName:       j.FileName,
		StoragePath:    j.StoragePath,
		FileSizeBytes:  j.FileSizeBytes,
		Material:       j.Material,
		Quality:        j.Quality,
		EstimatedPrice: j.EstimatedPrice,
		CreatedAt:      j.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}
