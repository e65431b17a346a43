package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"printhub/internal/domain/entities"
	"printhub/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

// RefreshTokenRedisRepository implements interfaces.IRefreshTokenRepository
// on Redis. One record per user under "refresh:<userID>"; the TTL matches
// the refresh token's own expiry so revocation is automatic.
type RefreshTokenRedisRepository struct {
	client *redis.Client
	prefix string
}

var _ interfaces.IRefreshTokenRepository = (*RefreshTokenRedisRepository)(nil)

func NewRefreshTokenRedisRepository(client *redis.Client) *RefreshTokenRedisRepository {
	return &RefreshTokenRedisRepository{
		client: client,
		prefix: "refresh:",
	}
}

func (r *RefreshTokenRedisRepository) Save(ctx context.Context, t entities.RefreshToken) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal refresh token: %w", err)
	}
	ttl := time.Until(t.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("refresh token already expired")
	}
	return r.client.Set(ctx, r.prefix+t.UserID, data, ttl).Err()
}

func (r *RefreshTokenRedisRepository) GetByUserID(ctx context.Context, userID string) (entities.RefreshToken, error) {
	data, err := r.client.Get(ctx, r.prefix+userID).Result()
	if err != nil {
		if err == redis.Nil {
			return entities.RefreshToken{}, interfaces.ErrRefreshTokenNotFound
		}
		return entities.RefreshToken{}, err
	}

	var t entities.RefreshToken
	if err := json.Unmarshal([]byte(data), &t); err != nil {
		return entities.RefreshToken{}, fmt.Errorf("failed to unmarshal refresh token: %w", err)
	}
	if t.Expired(time.Now()) {
		r.client.Del(ctx, r.prefix+userID)
		return entities.RefreshToken{}, interfaces.ErrRefreshTokenNotFound
	}
	return t, nil
}

func (r *RefreshTokenRedisRepository) Delete(ctx context.Context, userID string) error {
	return r.client.Del(ctx, r.prefix+userID).Err()
}
