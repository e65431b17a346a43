package response

import (
	"time"

	"printhub/internal/domain/entities"
	"printhub/internal/usecase"
)

type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type AuthPayloadResponse struct {
	User             UserResponse `json:"user"`
	AccessToken      string       `json:"accessToken"`
	AccessExpiresAt  time.Time    `json:"accessExpiresAt"`
	RefreshToken     string       `json:"refreshToken"`
	RefreshExpiresAt time.Time    `json:"refreshExpiresAt"`
}

type OAuthStartResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

type OAuthCallbackResponse struct {
	AuthPayloadResponse
	Redirect string `json:"redirect,omitempty"`
}

func FromUser(u entities.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		AvatarURL: u.AvatarURL,
	}
}

func FromAuthResult(r usecase.AuthResult) AuthPayloadResponse {
	return AuthPayloadResponse{
		User:             FromUser(r.User),
		AccessToken:      r.AccessToken,
		AccessExpiresAt:  r.AccessExpiresAt,
		RefreshToken:     r.RefreshToken,
		RefreshExpiresAt: r.RefreshExpiresAt,
	}
}
