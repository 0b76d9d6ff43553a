package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/dirsearch/config"
	"github.com/target/dirsearch/internal/adapters/devauth"
	"github.com/target/dirsearch/internal/adapters/oidc"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func noopPrompt(context.Context, oidc.DeviceCode) error { return nil }

func TestBuildIdentityProvider_Mock(t *testing.T) {
	prov, err := BuildIdentityProvider(context.Background(), AuthConfig{
		Auth: config.AuthConfig{
			Mode:    config.AuthModeMock,
			DevAuth: config.DevAuthConfig{Token: "dev-token"},
		},
		Logger: discardLogger(),
	})
	require.NoError(t, err)
	assert.IsType(t, &devauth.Provider{}, prov)

	cred, err := prov.NewCredential(context.Background())
	require.NoError(t, err)
	tok, err := cred.Token(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "dev-token", tok.Value)
}

func TestBuildIdentityProvider_OAuthStatic(t *testing.T) {
	prov, err := BuildIdentityProvider(context.Background(), AuthConfig{
		Auth: config.AuthConfig{
			Mode: config.AuthModeOAuth,
			OAuth: config.OAuthConfig{
				ClientID:  "client-id",
				Tenant:    "contoso.onmicrosoft.com",
				Discovery: false,
			},
		},
		Prompt: noopPrompt,
		Logger: discardLogger(),
	})
	require.NoError(t, err)
	assert.IsType(t, &oidc.Provider{}, prov)
}

func TestBuildIdentityProvider_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  AuthConfig
	}{
		{
			name: "oauth without client id",
			cfg: AuthConfig{Auth: config.AuthConfig{
				Mode:  config.AuthModeOAuth,
				OAuth: config.OAuthConfig{Tenant: "common"},
			}, Prompt: noopPrompt},
		},
		{
			name: "oauth without tenant",
			cfg: AuthConfig{Auth: config.AuthConfig{
				Mode:  config.AuthModeOAuth,
				OAuth: config.OAuthConfig{ClientID: "client-id"},
			}, Prompt: noopPrompt},
		},
		{
			name: "oauth without prompt",
			cfg: AuthConfig{Auth: config.AuthConfig{
				Mode:  config.AuthModeOAuth,
				OAuth: config.OAuthConfig{ClientID: "client-id", Tenant: "common"},
			}},
		},
		{
			name: "mock with negative delay",
			cfg: AuthConfig{Auth: config.AuthConfig{
				Mode:    config.AuthModeMock,
				DevAuth: config.DevAuthConfig{LoginDelay: -1},
			}},
		},
		{
			name: "unknown mode",
			cfg:  AuthConfig{Auth: config.AuthConfig{Mode: "saml"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.Logger = discardLogger()
			prov, err := BuildIdentityProvider(context.Background(), tt.cfg)
			require.Error(t, err)
			assert.Nil(t, prov)
		})
	}
}
