package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOAuth uses the OAuth device authorization grant.
	AuthModeOAuth AuthMode = "oauth"
	// AuthModeMock uses a static dev credential (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oauth", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oauth, mock)", v)
	}
}

// OAuthConfig contains the public client registration and tenant to sign in to.
type OAuthConfig struct {
	// ClientID defaults to the Microsoft Graph command line tools public client.
	ClientID  string `env:"CLIENT_ID" envDefault:"14d82eec-204b-4c2f-b7e8-296a70dab67e"`
	Tenant    string `env:"TENANT"    envDefault:"organizations"`
	Authority string `env:"AUTHORITY" envDefault:"https://login.microsoftonline.com"`
	Scope     string `env:"SCOPE"     envDefault:"https://graph.microsoft.com/.default offline_access"`
	// Discovery fetches the tenant's OIDC metadata; when false the static
	// endpoints are used.
	Discovery    bool   `env:"DISCOVERY"     envDefault:"true"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
}

// DevAuthConfig controls the mock credential.
// Used when AUTH_MODE=mock against a stub directory.
type DevAuthConfig struct {
	// Token is the bearer value presented to the directory; random when empty.
	Token      string        `env:"TOKEN"`
	TokenTTL   time.Duration `env:"TOKEN_TTL"   envDefault:"1h"`
	LoginDelay time.Duration `env:"LOGIN_DELAY" envDefault:"0s"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which identity provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oauth"`

	// OAuth configuration (used when Mode=oauth).
	OAuth OAuthConfig `envPrefix:"OAUTH_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`
}

// Sanitize trims identifiers and clamps negative durations.
func (c *AuthConfig) Sanitize() {
	c.OAuth.ClientID = strings.TrimSpace(c.OAuth.ClientID)
	c.OAuth.Tenant = strings.TrimSpace(c.OAuth.Tenant)
	c.OAuth.Authority = strings.TrimSuffix(strings.TrimSpace(c.OAuth.Authority), "/")
	c.OAuth.Scope = strings.Join(strings.Fields(c.OAuth.Scope), " ")
	c.OAuth.DiscoveryURL = strings.TrimSpace(c.OAuth.DiscoveryURL)

	if c.DevAuth.TokenTTL <= 0 {
		c.DevAuth.TokenTTL = time.Hour
	}
	if c.DevAuth.LoginDelay < 0 {
		c.DevAuth.LoginDelay = 0
	}
}
