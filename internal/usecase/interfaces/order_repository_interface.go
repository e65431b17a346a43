package interfaces

import (
	"context"

	"printhub/internal/domain/entities"
)

// IOrderRepository abstracts DynamoDB persistence for Order.
type IOrderRepository interface {
	Create(ctx context.Context, o entities.Order) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	ListByUserID(ctx context.Context, userID string) ([]entities.Order, error)
	ListAll(ctx context.Context) ([]entities.Order, error)
	UpdateStatus(ctx context.Context, id string, status entities.OrderStatus) (entities.Order, error)
}
