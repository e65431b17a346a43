package interfaces

import (
	"context"

	"printhub/internal/domain/entities"
)

// IPrintJobRepository abstracts DynamoDB persistence for PrintJob.
type IPrintJobRepository interface {
	Create(ctx context.Context, j entities.PrintJob) error
}
