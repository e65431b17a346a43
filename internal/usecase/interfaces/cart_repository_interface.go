package interfaces

import (
	"context"

	"printhub/internal/domain/entities"
)

// ICartRepository abstracts DynamoDB persistence for Cart.
//
// The cart is a single item keyed by user, written whole. GetByUserID
// returns a zero-value Cart (empty ID) when the user has none yet.
type ICartRepository interface {
	GetByUserID(ctx context.Context, userID string) (entities.Cart, error)
	Save(ctx context.Context, c entities.Cart) (entities.Cart, error)
}
