package client

import (
	"context"
	"errors"
	"net/http"
	"sync"
)

// AuthState is the AuthStore lifecycle. Consumers must treat
// StateUninitialized as distinct from StateAnonymous and hold off
// redirect/denial decisions until Bootstrap has completed.
type AuthState string

const (
	StateUninitialized AuthState = "uninitialized"
	StateAnonymous     AuthState = "anonymous"
	StateAuthenticated AuthState = "authenticated"
)

// AuthStore owns the client-side auth session: the current user, the token
// pair, and the persisted credential snapshot. It is the only writer to its
// TokenStorage.
type AuthStore struct {
	api     *Client
	storage TokenStorage

	mu    sync.Mutex
	state AuthState
	user  User
	creds Credentials

	bootMu sync.Mutex
	booted bool
}

func NewAuthStore(api *Client, storage TokenStorage) *AuthStore {
	return &AuthStore{
		api:     api,
		storage: storage,
		state:   StateUninitialized,
	}
}

// State returns the current lifecycle state.
func (s *AuthStore) State() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentUser returns the signed-in user, if any.
func (s *AuthStore) CurrentUser() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user, s.state == StateAuthenticated
}

// AccessToken returns the current access token, or "" when anonymous.
func (s *AuthStore) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds.AccessToken
}

// Bootstrap restores the session from storage. It is idempotent and
// single-flight: concurrent calls perform at most one verification request.
//
// No stored credentials means anonymous with no network call. Stored
// credentials are verified against /auth/me; a rejected access token is
// retried once through refresh, and if that fails too the snapshot is
// cleared and the session comes up anonymous. Transport errors leave the
// store uninitialized so a later Bootstrap can retry.
func (s *AuthStore) Bootstrap(ctx context.Context) error {
	s.bootMu.Lock()
	defer s.bootMu.Unlock()

	if s.booted {
		return nil
	}

	creds, ok, err := s.storage.Get()
	if err != nil {
		// Corrupt snapshot. Fail closed.
		_ = s.storage.Clear()
		s.becomeAnonymous()
		s.booted = true
		return nil
	}
	if !ok {
		s.becomeAnonymous()
		s.booted = true
		return nil
	}

	user, err := s.api.Me(ctx, creds.AccessToken)
	if err == nil {
		s.become(user, creds)
		s.booted = true
		return nil
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	if apiErr.StatusCode == http.StatusUnauthorized && creds.RefreshToken != "" {
		payload, rerr := s.api.Refresh(ctx, creds.UserID, creds.RefreshToken)
		if rerr == nil {
			if err := s.adopt(payload); err != nil {
				return err
			}
			s.booted = true
			return nil
		}
		if !errors.As(rerr, &apiErr) {
			return rerr
		}
	}

	_ = s.storage.Clear()
	s.becomeAnonymous()
	s.booted = true
	return nil
}

// Login signs in and adopts the returned token pair. State is untouched on
// failure.
func (s *AuthStore) Login(ctx context.Context, email, password string) (User, error) {
	payload, err := s.api.Login(ctx, email, password)
	if err != nil {
		return User{}, err
	}
	if err := s.adopt(payload); err != nil {
		return User{}, err
	}
	s.markBooted()
	return payload.User, nil
}

// Register creates an account and signs in.
func (s *AuthStore) Register(ctx context.Context, name, email, password string) (User, error) {
	payload, err := s.api.Register(ctx, name, email, password)
	if err != nil {
		return User{}, err
	}
	if err := s.adopt(payload); err != nil {
		return User{}, err
	}
	s.markBooted()
	return payload.User, nil
}

// Refresh rotates the token pair. It is a no-op when there is nothing to
// refresh. A rejected refresh token clears the session.
func (s *AuthStore) Refresh(ctx context.Context) error {
	s.mu.Lock()
	creds := s.creds
	s.mu.Unlock()

	if creds.UserID == "" || creds.RefreshToken == "" {
		return nil
	}

	payload, err := s.api.Refresh(ctx, creds.UserID, creds.RefreshToken)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			_ = s.storage.Clear()
			s.becomeAnonymous()
		}
		return err
	}
	return s.adopt(payload)
}

// Logout drops the session locally. No network call; the refresh token
// simply stops being used and ages out server-side.
func (s *AuthStore) Logout() error {
	err := s.storage.Clear()
	s.becomeAnonymous()
	s.markBooted()
	return err
}

// ForgotPassword requests a reset email. The server answers the same way
// whether or not the account exists.
func (s *AuthStore) ForgotPassword(ctx context.Context, email string) error {
	return s.api.ForgotPassword(ctx, email)
}

// ResetPassword redeems a recovery token and signs in with the new
// password.
func (s *AuthStore) ResetPassword(ctx context.Context, token, newPassword string) (User, error) {
	payload, err := s.api.ResetPassword(ctx, token, newPassword)
	if err != nil {
		return User{}, err
	}
	if err := s.adopt(payload); err != nil {
		return User{}, err
	}
	s.markBooted()
	return payload.User, nil
}

// adopt persists the new snapshot first and only then swaps the in-memory
// session, so storage and memory never disagree on success.
func (s *AuthStore) adopt(payload AuthPayload) error {
	creds := Credentials{
		UserID:       payload.User.ID,
		AccessToken:  payload.AccessToken,
		RefreshToken: payload.RefreshToken,
	}
	if err := s.storage.Set(creds); err != nil {
		return err
	}
	s.become(payload.User, creds)
	return nil
}

func (s *AuthStore) become(user User, creds Credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateAuthenticated
	s.user = user
	s.creds = creds
}

func (s *AuthStore) becomeAnonymous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateAnonymous
	s.user = User{}
	s.creds = Credentials{}
}

func (s *AuthStore) markBooted() {
	s.bootMu.Lock()
	s.booted = true
	s.bootMu.Unlock()
}
