package entities

import "time"

// UserRole gates storefront vs admin surfaces.
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

// User is an account record persisted in DynamoDB.
//
// Storage model:
//   - PK: id
//   - GSI1 (email-index): email
//
// PasswordHash and the reset-token fields never leave the persistence and
// auth layers; API responses are built from the public fields only.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         UserRole  `json:"role"`
	AvatarURL    string    `json:"avatarUrl,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Password-reset state. The plain token is delivered out of band and
	// only its bcrypt hash is stored.
	ResetTokenHash      string    `json:"-"`
	ResetTokenExpiresAt time.Time `json:"-"`
}

// RefreshToken is the server-side record of an issued refresh token, stored
// in Redis keyed by user. Only the bcrypt hash of the opaque token is kept.
type RefreshToken struct {
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"token_hash"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the refresh token is past its expiry.
func (t RefreshToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
