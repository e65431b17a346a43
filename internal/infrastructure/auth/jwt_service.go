package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"printhub/internal/domain/entities"
	"printhub/internal/usecase/interfaces"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const opaqueTokenBytes = 32

// JWTService implements interfaces.ITokenService.
//
// Access tokens are HS256 JWTs. Refresh and reset tokens are opaque random
// strings; GenerateOpaqueToken returns both the plain value (for the
// caller) and a bcrypt hash (the only thing persisted).
type JWTService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

type accessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

var _ interfaces.ITokenService = (*JWTService)(nil)

func NewJWTService(secret string, accessTTL, refreshTTL time.Duration) *JWTService {
	return &JWTService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *JWTService) GenerateAccessToken(userID string, role entities.UserRole) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.accessTTL)
	claims := accessClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

func (s *JWTService) ParseAccessToken(token string) (*interfaces.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &accessClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, interfaces.ErrTokenMalformed
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, interfaces.ErrTokenExpired
		}
		return nil, interfaces.ErrTokenInvalid
	}
	claims, ok := parsed.Claims.(*accessClaims)
	if !ok || !parsed.Valid {
		return nil, interfaces.ErrTokenInvalid
	}
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, interfaces.ErrTokenMalformed
	}
	return &interfaces.TokenClaims{
		UserID:    claims.Subject,
		Role:      entities.UserRole(claims.Role),
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (s *JWTService) GenerateOpaqueToken() (string, string, error) {
	buf := make([]byte, opaqueTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	plain := base64.RawURLEncoding.EncodeToString(buf)
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}
	return plain, string(hashed), nil
}

func (s *JWTService) VerifyOpaqueToken(plain, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

func (s *JWTService) AccessTTL() time.Duration  { return s.accessTTL }
func (s *JWTService) RefreshTTL() time.Duration { return s.refreshTTL }
