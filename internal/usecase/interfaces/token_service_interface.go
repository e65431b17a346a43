package interfaces

import (
	"errors"
	"time"

	"printhub/internal/domain/entities"
)

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
	ErrTokenMalformed = errors.New("token malformed")
)

// TokenClaims are the verified contents of an access token.
type TokenClaims struct {
	UserID    string
	Role      entities.UserRole
	ExpiresAt time.Time
}

// ITokenService issues and verifies credentials.
//
// Access tokens are signed JWTs carrying user ID and role. Refresh and
// password-reset tokens are opaque random strings; only their bcrypt hash is
// ever stored, so a leaked datastore cannot be replayed.
type ITokenService interface {
	GenerateAccessToken(userID string, role entities.UserRole) (token string, expiresAt time.Time, err error)
	ParseAccessToken(token string) (*TokenClaims, error)

	GenerateOpaqueToken() (plain, hash string, err error)
	VerifyOpaqueToken(plain, hash string) error

	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}
