package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"printhub/internal/domain/entities"
	"printhub/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrRefreshInvalid     = errors.New("refresh token invalid")
	ErrResetTokenInvalid  = errors.New("reset token invalid")
	ErrWeakPassword       = errors.New("password too short")
	ErrOAuthUnavailable   = errors.New("oauth provider unavailable")
	ErrOAuthFailed        = errors.New("oauth sign-in failed")
)

const minPasswordLength = 8

// AuthResult is one issued credential pair plus the owning user. Handlers
// serialize it as the AuthPayload wire shape.
type AuthResult struct {
	User             entities.User
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// IAuthUseCase exposes account and credential operations.
//
// Every success path that issues tokens does so atomically from the
// caller's perspective: the refresh record is stored before the result is
// returned, and failures leave no partial credential state behind.
type IAuthUseCase interface {
	Register(ctx context.Context, name, email, password string) (AuthResult, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
	Refresh(ctx context.Context, userID, refreshToken string) (AuthResult, error)
	Me(ctx context.Context, userID string) (entities.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) (AuthResult, error)
	OAuthStart(provider, redirect string) (url string, state string, err error)
	OAuthCallback(ctx context.Context, provider, state, code string) (AuthResult, string, error)
}

type AuthUseCase struct {
	users    interfaces.IUserRepository
	refresh  interfaces.IRefreshTokenRepository
	carts    interfaces.ICartRepository
	password interfaces.IPasswordService
	tokens   interfaces.ITokenService
	mailer   interfaces.IMailer
	oauth    interfaces.IOAuthManager
}

var _ IAuthUseCase = (*AuthUseCase)(nil)

func NewAuthUseCase(
	users interfaces.IUserRepository,
	refresh interfaces.IRefreshTokenRepository,
	carts interfaces.ICartRepository,
	password interfaces.IPasswordService,
	tokens interfaces.ITokenService,
	mailer interfaces.IMailer,
	oauth interfaces.IOAuthManager,
) *AuthUseCase {
	return &AuthUseCase{
		users:    users,
		refresh:  refresh,
		carts:    carts,
		password: password,
		tokens:   tokens,
		mailer:   mailer,
		oauth:    oauth,
	}
}

func (u *AuthUseCase) Register(ctx context.Context, name, email, password string) (AuthResult, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if email == "" || password == "" {
		return AuthResult{}, ErrInvalidCredentials
	}
	if len(password) < minPasswordLength {
		return AuthResult{}, ErrWeakPassword
	}

	existing, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, err
	}
	if existing.ID != "" {
		return AuthResult{}, ErrEmailTaken
	}

	hash, err := u.password.Hash(password)
	if err != nil {
		return AuthResult{}, err
	}

	now := time.Now().UTC()
	user := entities.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		Role:         entities.RoleCustomer,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	user, err = u.users.Create(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}

	// Every account starts with an empty cart.
	if _, err := u.carts.Save(ctx, entities.Cart{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Items:     []entities.CartItem{},
		UpdatedAt: now,
	}); err != nil {
		log.Printf("[auth][usecase] failed to create cart user_id=%s err=%v", user.ID, err)
	}

	res, err := u.issueTokens(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	if err := u.mailer.SendWelcome(ctx, user.Email, user.Name); err != nil {
		log.Printf("[auth][usecase] welcome mail failed user_id=%s err=%v", user.ID, err)
	}
	return res, nil
}

func (u *AuthUseCase) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = normalizeEmail(email)
	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, err
	}
	// Same failure for unknown email and wrong password.
	if user.ID == "" || !u.password.Verify(user.PasswordHash, password) {
		return AuthResult{}, ErrInvalidCredentials
	}
	return u.issueTokens(ctx, user)
}

func (u *AuthUseCase) Refresh(ctx context.Context, userID, refreshToken string) (AuthResult, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || refreshToken == "" {
		return AuthResult{}, ErrRefreshInvalid
	}

	record, err := u.refresh.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, interfaces.ErrRefreshTokenNotFound) {
			return AuthResult{}, ErrRefreshInvalid
		}
		return AuthResult{}, err
	}
	if record.Expired(time.Now()) {
		return AuthResult{}, ErrRefreshInvalid
	}
	if err := u.tokens.VerifyOpaqueToken(refreshToken, record.TokenHash); err != nil {
		return AuthResult{}, ErrRefreshInvalid
	}

	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return AuthResult{}, err
	}
	if user.ID == "" {
		return AuthResult{}, ErrRefreshInvalid
	}
	// Rotation: issueTokens replaces the stored record.
	return u.issueTokens(ctx, user)
}

func (u *AuthUseCase) Me(ctx context.Context, userID string) (entities.User, error) {
	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return entities.User{}, err
	}
	if user.ID == "" {
		return entities.User{}, ErrUserNotFound
	}
	return user, nil
}

// ForgotPassword always reports success to the caller so the endpoint
// cannot be used to probe for registered addresses.
func (u *AuthUseCase) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.ID == "" {
		log.Printf("[auth][usecase] forgot-password for unknown email")
		return nil
	}

	plain, hash, err := u.tokens.GenerateOpaqueToken()
	if err != nil {
		return err
	}
	expiresAt := time.Now().UTC().Add(1 * time.Hour)
	if err := u.users.SetResetToken(ctx, user.ID, hash, expiresAt); err != nil {
		return err
	}
	// The deliverable token embeds the user ID so reset can find the record
	// without a token index.
	return u.mailer.SendPasswordReset(ctx, user.Email, user.ID+"."+plain)
}

func (u *AuthUseCase) ResetPassword(ctx context.Context, token, newPassword string) (AuthResult, error) {
	if len(newPassword) < minPasswordLength {
		return AuthResult{}, ErrWeakPassword
	}
	userID, secret, ok := strings.Cut(strings.TrimSpace(token), ".")
	if !ok || userID == "" || secret == "" {
		return AuthResult{}, ErrResetTokenInvalid
	}

	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return AuthResult{}, err
	}
	if user.ID == "" || user.ResetTokenHash == "" {
		return AuthResult{}, ErrResetTokenInvalid
	}
	if time.Now().After(user.ResetTokenExpiresAt) {
		return AuthResult{}, ErrResetTokenInvalid
	}
	if err := u.tokens.VerifyOpaqueToken(secret, user.ResetTokenHash); err != nil {
		return AuthResult{}, ErrResetTokenInvalid
	}

	hash, err := u.password.Hash(newPassword)
	if err != nil {
		return AuthResult{}, err
	}
	if err := u.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return AuthResult{}, err
	}
	if err := u.users.ClearResetToken(ctx, user.ID); err != nil {
		log.Printf("[auth][usecase] failed to clear reset token user_id=%s err=%v", user.ID, err)
	}

	// A successful reset is an implicit login.
	return u.issueTokens(ctx, user)
}

func (u *AuthUseCase) OAuthStart(provider, redirect string) (string, string, error) {
	if u.oauth == nil {
		return "", "", ErrOAuthUnavailable
	}
	url, state, err := u.oauth.GenerateAuthURL(provider, redirect)
	if err != nil {
		return "", "", ErrOAuthUnavailable
	}
	return url, state, nil
}

// OAuthCallback redeems the provider code and signs the subject in, creating
// the account on first sight. Adoption is by email: a provider identity whose
// address matches an existing account signs into that account.
func (u *AuthUseCase) OAuthCallback(ctx context.Context, provider, state, code string) (AuthResult, string, error) {
	if u.oauth == nil {
		return AuthResult{}, "", ErrOAuthUnavailable
	}
	profile, redirect, err := u.oauth.Exchange(ctx, provider, state, code)
	if err != nil {
		log.Printf("[auth][usecase] oauth exchange failed provider=%s err=%v", provider, err)
		return AuthResult{}, "", ErrOAuthFailed
	}

	email := normalizeEmail(profile.Email)
	if email == "" {
		// Without an address there is nothing to key the account on.
		return AuthResult{}, "", ErrOAuthFailed
	}

	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, "", err
	}
	if user.ID == "" {
		now := time.Now().UTC()
		user = entities.User{
			ID:        uuid.NewString(),
			Email:     email,
			Name:      strings.TrimSpace(profile.Name),
			Role:      entities.RoleCustomer,
			AvatarURL: profile.AvatarURL,
			CreatedAt: now,
			UpdatedAt: now,
		}
		user, err = u.users.Create(ctx, user)
		if err != nil {
			return AuthResult{}, "", err
		}
		if _, err := u.carts.Save(ctx, entities.Cart{
			ID:        uuid.NewString(),
			UserID:    user.ID,
			Items:     []entities.CartItem{},
			UpdatedAt: now,
		}); err != nil {
			log.Printf("[auth][usecase] failed to create cart user_id=%s err=%v", user.ID, err)
		}
		if err := u.mailer.SendWelcome(ctx, user.Email, user.Name); err != nil {
			log.Printf("[auth][usecase] welcome mail failed user_id=%s err=%v", user.ID, err)
		}
	} else if user.AvatarURL == "" && profile.AvatarURL != "" {
		if err := u.users.SetAvatar(ctx, user.ID, profile.AvatarURL); err != nil {
			log.Printf("[auth][usecase] failed to set avatar user_id=%s err=%v", user.ID, err)
		} else {
			user.AvatarURL = profile.AvatarURL
		}
	}

	res, err := u.issueTokens(ctx, user)
	if err != nil {
		return AuthResult{}, "", err
	}
	return res, redirect, nil
}

func (u *AuthUseCase) issueTokens(ctx context.Context, user entities.User) (AuthResult, error) {
	access, accessExp, err := u.tokens.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return AuthResult{}, err
	}
	plain, hash, err := u.tokens.GenerateOpaqueToken()
	if err != nil {
		return AuthResult{}, err
	}
	now := time.Now().UTC()
	refreshExp := now.Add(u.tokens.RefreshTTL())
	if err := u.refresh.Save(ctx, entities.RefreshToken{
		UserID:    user.ID,
		TokenHash: hash,
		ExpiresAt: refreshExp,
		CreatedAt: now,
	}); err != nil {
		return AuthResult{}, err
	}
	return AuthResult{
		User:             user,
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     plain,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
