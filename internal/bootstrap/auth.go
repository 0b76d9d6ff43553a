package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/target/dirsearch/config"
	"github.com/target/dirsearch/internal/adapters/devauth"
	"github.com/target/dirsearch/internal/adapters/oidc"
	"github.com/target/dirsearch/internal/ports"
)

// AuthConfig contains configuration for the identity provider.
type AuthConfig struct {
	Auth config.AuthConfig
	// Prompt shows the device code; required in oauth mode.
	Prompt     oidc.PromptFunc
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// BuildIdentityProvider creates the identity provider for the configured auth mode.
//
//nolint:ireturn // the provider implementation depends on AUTH_MODE.
func BuildIdentityProvider(ctx context.Context, cfg AuthConfig) (ports.IdentityProvider, error) {
	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		return buildDevAuthProvider(cfg)
	case config.AuthModeOAuth, "":
		return buildOAuthProvider(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.Auth.Mode)
	}
}

//nolint:ireturn // see BuildIdentityProvider.
func buildDevAuthProvider(cfg AuthConfig) (ports.IdentityProvider, error) {
	prov, err := devauth.NewProvider(devauth.Config{
		Token:      cfg.Auth.DevAuth.Token,
		TokenTTL:   cfg.Auth.DevAuth.TokenTTL,
		LoginDelay: cfg.Auth.DevAuth.LoginDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("create dev auth provider: %w", err)
	}
	if cfg.Logger != nil {
		cfg.Logger.Warn("dev auth enabled; directory calls use a static token")
	}
	return prov, nil
}

//nolint:ireturn // see BuildIdentityProvider.
func buildOAuthProvider(ctx context.Context, cfg AuthConfig) (ports.IdentityProvider, error) {
	oauth := cfg.Auth.OAuth
	if oauth.ClientID == "" || (oauth.Tenant == "" && oauth.DiscoveryURL == "") {
		return nil, errors.New("oauth mode requires OAUTH_CLIENT_ID and OAUTH_TENANT or OAUTH_DISCOVERY_URL")
	}

	prov, err := oidc.NewProvider(ctx, oidc.ProviderConfig{
		ClientID:      oauth.ClientID,
		Tenant:        oauth.Tenant,
		Authority:     oauth.Authority,
		DiscoveryURL:  oauth.DiscoveryURL,
		SkipDiscovery: !oauth.Discovery,
		Scope:         oauth.Scope,
		HTTPClient:    cfg.HTTPClient,
		Prompt:        cfg.Prompt,
		Logger:        cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create oidc provider: %w", err)
	}
	return prov, nil
}
