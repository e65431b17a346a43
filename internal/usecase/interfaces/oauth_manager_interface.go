package interfaces

import "context"

// OAuthProfile is the normalized identity a provider reports after a
// successful code exchange.
type OAuthProfile struct {
	Provider  string
	Subject   string
	Email     string
	Name      string
	AvatarURL string
}

// IOAuthManager drives the authorization-code flow against the configured
// identity providers.
//
// GenerateAuthURL mints a single-use state value alongside the provider URL;
// Exchange consumes that state, so a state can redeem at most one callback.
type IOAuthManager interface {
	Providers() []string
	GenerateAuthURL(provider, redirect string) (url, state string, err error)
	Exchange(ctx context.Context, provider, state, code string) (OAuthProfile, string, error)
}
