package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"printhub/internal/usecase/interfaces"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

var (
	ErrProviderUnknown = errors.New("oauth provider not configured")
	ErrStateInvalid    = errors.New("oauth state invalid or expired")
	ErrExchangeFailed  = errors.New("oauth code exchange failed")
)

const stateTTL = 10 * time.Minute

type stateEntry struct {
	Provider  string
	Redirect  string
	ExpiresAt time.Time
}

// Manager holds the oauth2 configs for every provider that has credentials
// in the environment and tracks the in-flight state values it has issued.
//
// States live in process memory, so a callback must land on the instance
// that issued the state.
type Manager struct {
	providers map[string]*oauth2.Config

	mu     sync.Mutex
	states map[string]stateEntry
}

var _ interfaces.IOAuthManager = (*Manager)(nil)

// NewManager reads OAUTH_<PROVIDER>_CLIENT_ID / OAUTH_<PROVIDER>_CLIENT_SECRET
// pairs for google and github. Providers without both values are skipped.
func NewManager() *Manager {
	publicURL := strings.TrimRight(os.Getenv("PUBLIC_URL"), "/")
	if publicURL == "" {
		publicURL = "http://localhost:8080"
	}

	providers := map[string]*oauth2.Config{}
	if id, secret := os.Getenv("OAUTH_GOOGLE_CLIENT_ID"), os.Getenv("OAUTH_GOOGLE_CLIENT_SECRET"); id != "" && secret != "" {
		providers["google"] = &oauth2.Config{
			ClientID:     id,
			ClientSecret: secret,
			Endpoint:     endpoints.Google,
			RedirectURL:  publicURL + "/v1/auth/oauth/google/callback",
			Scopes:       []string{"openid", "email", "profile"},
		}
	}
	if id, secret := os.Getenv("OAUTH_GITHUB_CLIENT_ID"), os.Getenv("OAUTH_GITHUB_CLIENT_SECRET"); id != "" && secret != "" {
		providers["github"] = &oauth2.Config{
			ClientID:     id,
			ClientSecret: secret,
			Endpoint:     endpoints.GitHub,
			RedirectURL:  publicURL + "/v1/auth/oauth/github/callback",
			Scopes:       []string{"read:user", "user:email"},
		}
	}

	return &Manager{
		providers: providers,
		states:    map[string]stateEntry{},
	}
}

func (m *Manager) Providers() []string {
	names := make([]string, 0, len(m.providers))
	for name := range m.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *Manager) GenerateAuthURL(provider, redirect string) (string, string, error) {
	cfg, ok := m.providers[provider]
	if !ok {
		return "", "", ErrProviderUnknown
	}

	state := uuid.NewString()
	m.mu.Lock()
	m.pruneLocked(time.Now())
	m.states[state] = stateEntry{
		Provider:  provider,
		Redirect:  redirect,
		ExpiresAt: time.Now().Add(stateTTL),
	}
	m.mu.Unlock()

	url := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	return url, state, nil
}

// Exchange validates the state before touching the network, consumes it,
// then redeems the code and fetches the provider profile.
func (m *Manager) Exchange(ctx context.Context, provider, state, code string) (interfaces.OAuthProfile, string, error) {
	cfg, ok := m.providers[provider]
	if !ok {
		return interfaces.OAuthProfile{}, "", ErrProviderUnknown
	}

	m.mu.Lock()
	entry, found := m.states[state]
	delete(m.states, state)
	m.mu.Unlock()
	if !found || entry.Provider != provider || time.Now().After(entry.ExpiresAt) {
		return interfaces.OAuthProfile{}, "", ErrStateInvalid
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return interfaces.OAuthProfile{}, "", fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}

	profile, err := fetchProfile(ctx, provider, cfg.Client(ctx, token))
	if err != nil {
		return interfaces.OAuthProfile{}, "", err
	}
	return profile, entry.Redirect, nil
}

func (m *Manager) pruneLocked(now time.Time) {
	for state, entry := range m.states {
		if now.After(entry.ExpiresAt) {
			delete(m.states, state)
		}
	}
}

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	githubUserURL     = "https://api.github.com/user"
	githubEmailsURL   = "https://api.github.com/user/emails"
)

func fetchProfile(ctx context.Context, provider string, client *http.Client) (interfaces.OAuthProfile, error) {
	switch provider {
	case "google":
		return fetchGoogleProfile(ctx, client)
	case "github":
		return fetchGitHubProfile(ctx, client)
	default:
		return interfaces.OAuthProfile{}, ErrProviderUnknown
	}
}

func fetchGoogleProfile(ctx context.Context, client *http.Client) (interfaces.OAuthProfile, error) {
	var payload struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := getJSON(ctx, client, googleUserInfoURL, &payload); err != nil {
		return interfaces.OAuthProfile{}, err
	}
	return interfaces.OAuthProfile{
		Provider:  "google",
		Subject:   payload.ID,
		Email:     payload.Email,
		Name:      payload.Name,
		AvatarURL: payload.Picture,
	}, nil
}

func fetchGitHubProfile(ctx context.Context, client *http.Client) (interfaces.OAuthProfile, error) {
	var payload struct {
		ID        int64  `json:"id"`
		Login     string `json:"login"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := getJSON(ctx, client, githubUserURL, &payload); err != nil {
		return interfaces.OAuthProfile{}, err
	}

	email := payload.Email
	if email == "" {
		// Most accounts keep the address private; the emails endpoint still
		// lists it for the user:email scope.
		email = fetchGitHubPrimaryEmail(ctx, client)
	}

	name := payload.Name
	if name == "" {
		name = payload.Login
	}
	return interfaces.OAuthProfile{
		Provider:  "github",
		Subject:   fmt.Sprintf("%d", payload.ID),
		Email:     email,
		Name:      name,
		AvatarURL: payload.AvatarURL,
	}, nil
}

func fetchGitHubPrimaryEmail(ctx context.Context, client *http.Client) string {
	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := getJSON(ctx, client, githubEmailsURL, &emails); err != nil {
		return ""
	}
	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email
		}
	}
	for _, e := range emails {
		if e.Verified {
			return e.Email
		}
	}
	return ""
}

func getJSON(ctx context.Context, client *http.Client, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("profile request to %s returned status %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
