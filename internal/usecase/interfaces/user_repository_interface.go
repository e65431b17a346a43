package interfaces

import (
	"context"
	"time"

	"printhub/internal/domain/entities"
)

// IUserRepository abstracts DynamoDB persistence for User.
//
// Lookups return a zero-value User (empty ID) when no record matches; the
// use cases translate that into their own not-found sentinels.
type IUserRepository interface {
	Create(ctx context.Context, u entities.User) (entities.User, error)
	GetByID(ctx context.Context, id string) (entities.User, error)
	GetByEmail(ctx context.Context, email string) (entities.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetAvatar(ctx context.Context, id, avatarURL string) error
	SetResetToken(ctx context.Context, id, tokenHash string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, id string) error
}
