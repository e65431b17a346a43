package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"printhub/internal/domain/entities"
	"printhub/internal/usecase/interfaces"
	mock_interfaces "printhub/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type authMocks struct {
	users    *mock_interfaces.MockIUserRepository
	refresh  *mock_interfaces.MockIRefreshTokenRepository
	carts    *mock_interfaces.MockICartRepository
	password *mock_interfaces.MockIPasswordService
	tokens   *mock_interfaces.MockITokenService
	mailer   *mock_interfaces.MockIMailer
	oauth    *mock_interfaces.MockIOAuthManager
}

func newAuthUseCaseForTest(ctrl *gomock.Controller) (*AuthUseCase, authMocks) {
	m := authMocks{
		users:    mock_interfaces.NewMockIUserRepository(ctrl),
		refresh:  mock_interfaces.NewMockIRefreshTokenRepository(ctrl),
		carts:    mock_interfaces.NewMockICartRepository(ctrl),
		password: mock_interfaces.NewMockIPasswordService(ctrl),
		tokens:   mock_interfaces.NewMockITokenService(ctrl),
		mailer:   mock_interfaces.NewMockIMailer(ctrl),
		oauth:    mock_interfaces.NewMockIOAuthManager(ctrl),
	}
	uc := NewAuthUseCase(m.users, m.refresh, m.carts, m.password, m.tokens, m.mailer, m.oauth)
	return uc, m
}

func expectIssueTokens(m authMocks, userID string) {
	m.tokens.EXPECT().GenerateAccessToken(userID, gomock.Any()).
		Return("access-jwt", time.Now().Add(15*time.Minute), nil)
	m.tokens.EXPECT().GenerateOpaqueToken().Return("plain-refresh", "hashed-refresh", nil)
	m.tokens.EXPECT().RefreshTTL().Return(14 * 24 * time.Hour)
	m.refresh.EXPECT().Save(gomock.Any(), gomock.AssignableToTypeOf(entities.RefreshToken{})).DoAndReturn(
		func(_ context.Context, rt entities.RefreshToken) error {
			if rt.UserID != userID || rt.TokenHash != "hashed-refresh" {
				panic("unexpected refresh record")
			}
			return nil
		},
	)
}

func TestAuthUseCase_Register(t *testing.T) {
	t.Run("weak password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _ := newAuthUseCaseForTest(ctrl)

		_, err := uc.Register(context.Background(), "Ann", "ann@example.com", "short")
		if !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("email taken", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newAuthUseCaseForTest(ctrl)

		m.users.EXPECT().GetByEmail(gomock.Any(), "ann@example.com").
			Return(entities.User{ID: "existing"}, nil)

		_, err := uc.Register(context.Background(), "Ann", "Ann@Example.com ", "password123")
		if !errors.Is(err, ErrEmailTaken) {
			t.Fatalf("expected ErrEmailTaken, got %v", err)
		}
	})

	t.Run("success creates user, cart and tokens", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newAuthUseCaseForTest(ctrl)

		m.users.EXPECT().GetByEmail(gomock.Any(), "ann@example.com").Return(entities.User{}, nil)
		m.password.EXPECT().Hash("password123").Return("bcrypt-hash", nil)

		var createdID string
		m.users.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.User{})).DoAndReturn(
			func(_ context.Context, u entities.User) (entities.User, error) {
				if u.ID == "" || u.Email != "ann@example.com" || u.Role != entities.RoleCustomer {
					t.Fatalf("unexpected user: %+v", u)
				}
				if u.PasswordHash != "bcrypt-hash" {
					t.Fatalf("expected hashed password, got %q", u.PasswordHash)
				}
				createdID = u.ID
				return u, nil
			},
		)
		m.carts.EXPECT().Save(gomock.Any(), gomock.AssignableToTypeOf(entities.Cart{})).DoAndReturn(
			func(_ context.Context, c entities.Cart) (entities.Cart, error) {
				if c.UserID != createdID || len(c.Items) != 0 {
					t.Fatalf("unexpected initial cart: %+v", c)
				}
				return c, nil
			},
		)
		m.tokens.EXPECT().GenerateAccessToken(gomock.Any(), entities.RoleCustomer).
			Return("access-jwt", time.Now().Add(15*time.Minute), nil)
		m.tokens.EXPECT().GenerateOpaqueToken().Return("plain-refresh", "hashed-refresh", nil)
		m.tokens.EXPECT().RefreshTTL().Return(14 * 24 * time.Hour)
		m.refresh.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
		m.mailer.EXPECT().SendWelcome(gomock.Any(), "ann@example.com", "Ann").Return(nil)

		res, err := uc.Register(context.Background(), " Ann ", "Ann@Example.com", "password123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.AccessToken != "access-jwt" || res.RefreshToken != "plain-refresh" {
			t.Fatalf("unexpected tokens: %+v", res)
		}
		if res.RefreshToken == "hashed-refresh" {
			t.Fatalf("plain refresh token must never be the stored hash")
		}
	})
}

func TestAuthUseCase_Login(t *testing.T) {
	t.Run("unknown email and wrong password fail the same way", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newAuthUseCaseForTest(ctrl)

		m.users.EXPECT().GetByEmail(gomock.Any(), "ghost@example.com").Return(entities.User{}, nil)
		_, errUnknown := uc.Login(context.Background(), "ghost@example.com", "whatever")

		m.users.EXPECT().GetByEmail(gomock.Any(), "ann@example.com").
			Return(entities.User{ID: "user-1", PasswordHash: "hash"}, nil)
		m.password.EXPECT().Verify("hash", "wrong").Return(false)
		_, errWrong := uc.Login(context.Background(), "ann@example.com", "wrong")

		if !errors.Is(errUnknown, ErrInvalidCredentials) || !errors.Is(errWrong, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials twice, got %v / %v", errUnknown, errWrong)
		}
	})

	t.Run("success issues a token pair", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newAuthUseCaseForTest(ctrl)

		m.users.EXPECT().GetByEmail(gomock.Any(), "ann@example.com").
			Return(entities.User{ID: "user-1", Role: entities.RoleCustomer, PasswordHash: "hash"}, nil)
		m.password.EXPECT().Verify("hash", "password123").Return(true)
		expectIssueTokens(m, "user-1")

		res, err := uc.Login(context.Background(), "ann@example.com", "password123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.User.ID != "user-1" || res.RefreshToken != "plain-refresh" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})
}

func TestAuthUseCase_Refresh(t *testing.T) {
	t.Run("missing record", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newAuthUseCaseForTest(ctrl)

		m.refresh.EXPECT().GetByUserID(gomock.Any(), "user-1").
			Return(entities.RefreshToken{}, interfaces.ErrRefreshTokenNotFound)

		_, err := uc.Refresh(context.Background(), "user-1", "token")
		if !errors.Is(err, ErrRefreshInvalid) {
			t.Fatalf("expected ErrRefreshInvalid, got %v", err)
		}
	})

	t.Run("expired record", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newAuthUseCaseForTest(ctrl)

		m.refresh.EXPECT().GetByUserID(gomock.Any(), "user-1").
			Return(entities.RefreshToken{UserID: "user-1", TokenHash: "h", ExpiresAt: time.Now().Add(-time.Minute)}, nil)

		_, err := uc.Refresh(context.Background(), "user-1", "token")
		if !errors.Is(err, ErrRefreshInvalid) {
			t.Fatalf("expected ErrRefreshInvalid, got %v", err)
		}
	})

	t.Run("hash mismatch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newAuthUseCaseForTest(ctrl)

		m.refresh.EXPECT().GetByUserID(gomock.Any(), "user-1").
			Return(entities.RefreshToken{UserID: "user-1", TokenHash: "stored-hash", ExpiresAt: time.Now().Add(time.Hour)}, nil)
		m.tokens.EXPECT().VerifyOpaqueToken("stolen", "stored-hash").Return(errors.New("mismatch"))

		_, err := uc.Refresh(context.Background(), "user-1", "stolen")
		if !errors.Is(err, ErrRefreshInvalid) {
			t.Fatalf("expected ErrRefreshInvalid, got %v", err)
		}
	})

	t.Run("success rotates the pair", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newAuthUseCaseForTest(ctrl)

		m.refresh.EXPECT().GetByUserID(gomock.Any(), "user-1").
			Return(entities.RefreshToken{UserID: "user-1", TokenHash: "stored-hash", ExpiresAt: time.Now().Add(time.Hour)}, nil)
		m.tokens.EXPECT().VerifyOpaqueToken("old-plain", "stored-hash").Return(nil)
		m.users.EXPECT().GetByID(gomock.Any(), "user-1").
			Return(entities.User{ID: "user-1", Role: entities.RoleCustomer}, nil)
		expectIssueTokens(m, "user-1")

		res, err := uc.Refresh(context.Background(), "user-1", "old-plain")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.RefreshToken != "plain-refresh" {
			t.Fatalf("expected rotated refresh token, got %q", res.RefreshToken)
		}
	})
}

func TestAuthUseCase_ForgotPassword(t *testing.T) {
	t.Run("unknown email reports success without mail", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newAuthUseCaseForTest(ctrl)

		m.users.EXPECT().GetByEmail(gomock.Any(), "ghost@example.com").Return(entities.User{}, nil)

		if err := uc.ForgotPassword(context.Background(), "ghost@example.com"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("known email stores hash and mails userID-dot-plain", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newAuthUseCaseForTest(ctrl)

		m.users.EXPECT().GetByEmail(gomock.Any(), "ann@example.com").
			Return(entities.User{ID: "user-1", Email: "ann@example.com"}, nil)
		m.tokens.EXPECT().GenerateOpaqueToken().Return("plain-reset", "hashed-reset", nil)
		m.users.EXPECT().SetResetToken(gomock.Any(), "user-1", "hashed-reset", gomock.Any()).Return(nil)
		m.mailer.EXPECT().SendPasswordReset(gomock.Any(), "ann@example.com", "user-1.plain-reset").Return(nil)

		if err := uc.ForgotPassword(context.Background(), "ann@example.com"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestAuthUseCase_OAuthStart(t *testing.T) {
	t.Run("unknown provider", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newAuthUseCaseForTest(ctrl)

		m.oauth.EXPECT().GenerateAuthURL("gitlab", "").
			Return("", "", errors.New("oauth provider not configured"))

		_, _, err := uc.OAuthStart("gitlab", "")
		if !errors.Is(err, ErrOAuthUnavailable) {
			t.Fatalf("expected ErrOAuthUnavailable, got %v", err)
		}
	})

	t.Run("success passes through url and state", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newAuthUseCaseForTest(ctrl)

		m.oauth.EXPECT().GenerateAuthURL("google", "/estimate").
			Return("https://accounts.google.com/o/oauth2/auth?state=s1", "s1", nil)

		url, state, err := uc.OAuthStart("google", "/estimate")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if url == "" || state != "s1" {
			t.Fatalf("unexpected start result: url=%q state=%q", url, state)
		}
	})
}

func TestAuthUseCase_OAuthCallback(t *testing.T) {
	profile := interfaces.OAuthProfile{
		Provider:  "github",
		Subject:   "12345",
		Email:     "Ann@Example.com",
		Name:      "Ann",
		AvatarURL: "https://avatars.example.com/ann.png",
	}

	t.Run("failed exchange", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newAuthUseCaseForTest(ctrl)

		m.oauth.EXPECT().Exchange(gomock.Any(), "github", "s1", "code").
			Return(interfaces.OAuthProfile{}, "", errors.New("oauth state invalid or expired"))

		_, _, err := uc.OAuthCallback(context.Background(), "github", "s1", "code")
		if !errors.Is(err, ErrOAuthFailed) {
			t.Fatalf("expected ErrOAuthFailed, got %v", err)
		}
	})

	t.Run("profile without email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newAuthUseCaseForTest(ctrl)

		m.oauth.EXPECT().Exchange(gomock.Any(), "github", "s1", "code").
			Return(interfaces.OAuthProfile{Provider: "github", Subject: "12345"}, "", nil)

		_, _, err := uc.OAuthCallback(context.Background(), "github", "s1", "code")
		if !errors.Is(err, ErrOAuthFailed) {
			t.Fatalf("expected ErrOAuthFailed, got %v", err)
		}
	})

	t.Run("first sign-in creates user with cart and avatar", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newAuthUseCaseForTest(ctrl)

		m.oauth.EXPECT().Exchange(gomock.Any(), "github", "s1", "code").
			Return(profile, "/cart", nil)
		m.users.EXPECT().GetByEmail(gomock.Any(), "ann@example.com").Return(entities.User{}, nil)

		var createdID string
		m.users.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.User{})).DoAndReturn(
			func(_ context.Context, u entities.User) (entities.User, error) {
				if u.Email != "ann@example.com" || u.Role != entities.RoleCustomer {
					t.Fatalf("unexpected user: %+v", u)
				}
				if u.AvatarURL != profile.AvatarURL {
					t.Fatalf("expected avatar from the provider, got %q", u.AvatarURL)
				}
				if u.PasswordHash != "" {
					t.Fatalf("oauth account must not carry a password hash")
				}
				createdID = u.ID
				return u, nil
			},
		)
		m.carts.EXPECT().Save(gomock.Any(), gomock.AssignableToTypeOf(entities.Cart{})).DoAndReturn(
			func(_ context.Context, c entities.Cart) (entities.Cart, error) {
				if c.UserID != createdID {
					t.Fatalf("cart for wrong user: %+v", c)
				}
				return c, nil
			},
		)
		m.mailer.EXPECT().SendWelcome(gomock.Any(), "ann@example.com", "Ann").Return(nil)
		m.tokens.EXPECT().GenerateAccessToken(gomock.Any(), entities.RoleCustomer).
			Return("access-jwt", time.Now().Add(15*time.Minute), nil)
		m.tokens.EXPECT().GenerateOpaqueToken().Return("plain-refresh", "hashed-refresh", nil)
		m.tokens.EXPECT().RefreshTTL().Return(14 * 24 * time.Hour)
		m.refresh.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		res, redirect, err := uc.OAuthCallback(context.Background(), "github", "s1", "code")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.AccessToken != "access-jwt" || redirect != "/cart" {
			t.Fatalf("unexpected result: %+v redirect=%q", res, redirect)
		}
	})

	t.Run("existing account adopted by email backfills avatar", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newAuthUseCaseForTest(ctrl)

		m.oauth.EXPECT().Exchange(gomock.Any(), "github", "s1", "code").
			Return(profile, "", nil)
		m.users.EXPECT().GetByEmail(gomock.Any(), "ann@example.com").
			Return(entities.User{ID: "user-1", Email: "ann@example.com", Role: entities.RoleCustomer}, nil)
		m.users.EXPECT().SetAvatar(gomock.Any(), "user-1", profile.AvatarURL).Return(nil)
		expectIssueTokens(m, "user-1")

		res, _, err := uc.OAuthCallback(context.Background(), "github", "s1", "code")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.User.AvatarURL != profile.AvatarURL {
			t.Fatalf("expected backfilled avatar on the result, got %+v", res.User)
		}
	})

	t.Run("existing avatar is never overwritten", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newAuthUseCaseForTest(ctrl)

		m.oauth.EXPECT().Exchange(gomock.Any(), "github", "s1", "code").
			Return(profile, "", nil)
		m.users.EXPECT().GetByEmail(gomock.Any(), "ann@example.com").
			Return(entities.User{
				ID: "user-1", Email: "ann@example.com", Role: entities.RoleCustomer,
				AvatarURL: "https://cdn.example.com/chosen.png",
			}, nil)
		expectIssueTokens(m, "user-1")

		res, _, err := uc.OAuthCallback(context.Background(), "github", "s1", "code")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.User.AvatarURL != "https://cdn.example.com/chosen.png" {
			t.Fatalf("expected the stored avatar to survive, got %+v", res.User)
		}
	})
}

func TestAuthUseCase_ResetPassword(t *testing.T) {
	t.Run("malformed token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _ := newAuthUseCaseForTest(ctrl)

		_, err := uc.ResetPassword(context.Background(), "no-separator", "password123")
		if !errors.Is(err, ErrResetTokenInvalid) {
			t.Fatalf("expected ErrResetTokenInvalid, got %v", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newAuthUseCaseForTest(ctrl)

		m.users.EXPECT().GetByID(gomock.Any(), "user-1").Return(entities.User{
			ID:                  "user-1",
			ResetTokenHash:      "hashed-reset",
			ResetTokenExpiresAt: time.Now().Add(-time.Minute),
		}, nil)

		_, err := uc.ResetPassword(context.Background(), "user-1.plain-reset", "password123")
		if !errors.Is(err, ErrResetTokenInvalid) {
			t.Fatalf("expected ErrResetTokenInvalid, got %v", err)
		}
	})

	t.Run("success updates password and signs in", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newAuthUseCaseForTest(ctrl)

		m.users.EXPECT().GetByID(gomock.Any(), "user-1").Return(entities.User{
			ID:                  "user-1",
			Role:                entities.RoleCustomer,
			ResetTokenHash:      "hashed-reset",
			ResetTokenExpiresAt: time.Now().Add(time.Hour),
		}, nil)
		m.tokens.EXPECT().VerifyOpaqueToken("plain-reset", "hashed-reset").Return(nil)
		m.password.EXPECT().Hash("newpassword1").Return("new-hash", nil)
		m.users.EXPECT().UpdatePassword(gomock.Any(), "user-1", "new-hash").Return(nil)
		m.users.EXPECT().ClearResetToken(gomock.Any(), "user-1").Return(nil)
		expectIssueTokens(m, "user-1")

		res, err := uc.ResetPassword(context.Background(), "user-1.plain-reset", "newpassword1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.AccessToken != "access-jwt" {
			t.Fatalf("expected implicit login, got %+v", res)
		}
	})
}
