package interfaces

import (
	"context"
	"errors"

	"printhub/internal/domain/entities"
)

// ErrRefreshTokenNotFound signals that no refresh token is stored for the
// user (never issued, expired out of Redis, or revoked by logout).
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// IRefreshTokenRepository abstracts the Redis-backed refresh-token store.
// One record per user; Save replaces any previous record (token rotation).
type IRefreshTokenRepository interface {
	Save(ctx context.Context, t entities.RefreshToken) error
	GetByUserID(ctx context.Context, userID string) (entities.RefreshToken, error)
	Delete(ctx context.Context, userID string) error
}
