package oidc

// Package oidc provides the interactive device-code identity provider backed by
// the directory tenant's OpenID Connect endpoints.

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	domainauth "github.com/target/dirsearch/internal/domain/auth"
	"github.com/target/dirsearch/internal/ports"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"
)

// DefaultAuthority is the sign-in host for the directory.
const DefaultAuthority = "https://login.microsoftonline.com"

// multiTenant aliases resolve to the caller's home tenant, so the issuer in the
// discovery document never matches the URL it was fetched from.
var multiTenant = []string{"common", "organizations", "consumers"}

// DeviceCode is what the operator needs to complete the device login.
type DeviceCode struct {
	UserCode                string
	VerificationURI         string
	VerificationURIComplete string
	ExpiresAt               time.Time
}

// PromptFunc shows a DeviceCode to the operator. It must not block beyond ctx.
type PromptFunc func(ctx context.Context, code DeviceCode) error

// ProviderConfig holds configuration for the device-code provider.
type ProviderConfig struct {
	ClientID  string
	Tenant    string // tenant id or one of common/organizations/consumers
	Authority string // defaults to DefaultAuthority
	// DiscoveryURL overrides the issuer derived from Authority and Tenant.
	DiscoveryURL string
	// SkipDiscovery uses the static endpoints for Tenant without fetching metadata.
	SkipDiscovery bool
	Scope         string
	HTTPClient    *http.Client // Optional, defaults to a client with a 30s timeout
	Prompt        PromptFunc
	Logger        *slog.Logger
}

// Provider implements ports.IdentityProvider with the OAuth 2.0 device
// authorization grant. Credentials refresh silently with the refresh token
// issued at login.
type Provider struct {
	config     *oauth2.Config
	httpClient *http.Client
	prompt     PromptFunc
	logger     *slog.Logger

	// nil when discovery failed and the static endpoints are in use
	verifier *gooidc.IDTokenVerifier
}

var _ ports.IdentityProvider = (*Provider)(nil)

// NewProvider discovers the tenant's endpoints. When discovery fails it falls
// back to the well-known endpoints for the tenant.
func NewProvider(ctx context.Context, cfg ProviderConfig) (*Provider, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if cfg.Tenant == "" && cfg.DiscoveryURL == "" {
		return nil, errors.New("tenant or discovery URL is required")
	}
	if cfg.Prompt == nil {
		return nil, errors.New("device code prompt is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	p := &Provider{
		httpClient: httpClient,
		prompt:     cfg.Prompt,
		logger:     logger,
	}

	issuer := issuerURL(cfg)
	dctx := context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	multi := slices.Contains(multiTenant, strings.ToLower(cfg.Tenant)) && cfg.DiscoveryURL == ""
	if multi {
		dctx = gooidc.InsecureIssuerURLContext(dctx, issuer)
	}

	var endpoint oauth2.Endpoint
	if cfg.SkipDiscovery && cfg.Tenant != "" {
		endpoint = microsoft.AzureADEndpoint(cfg.Tenant)
	} else {
		op, err := gooidc.NewProvider(dctx, issuer)
		switch {
		case err == nil:
			endpoint = op.Endpoint()
			p.verifier = op.Verifier(&gooidc.Config{ClientID: cfg.ClientID, SkipIssuerCheck: multi})
		case cfg.DiscoveryURL != "":
			return nil, fmt.Errorf("oidc new provider: %w", err)
		default:
			logger.Warn("oidc discovery failed; using static endpoints", "issuer", issuer, "error", err)
			endpoint = microsoft.AzureADEndpoint(cfg.Tenant)
		}
	}
	if endpoint.DeviceAuthURL == "" && cfg.Tenant != "" {
		endpoint.DeviceAuthURL = microsoft.AzureADEndpoint(cfg.Tenant).DeviceAuthURL
	}
	if endpoint.DeviceAuthURL == "" {
		return nil, errors.New("provider does not advertise a device authorization endpoint")
	}
	// Public client: no secret, client_id travels in the form body.
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	scope := cfg.Scope
	if strings.TrimSpace(scope) == "" {
		scope = domainauth.DefaultScope + " offline_access"
	}
	p.config = &oauth2.Config{
		ClientID: cfg.ClientID,
		Scopes:   strings.Fields(scope),
		Endpoint: endpoint,
	}
	return p, nil
}

// NewCredential returns an unauthenticated credential. The device login runs on
// its first Token call.
func (p *Provider) NewCredential(_ context.Context) (ports.Credential, error) {
	return &deviceCredential{p: p}, nil
}

// issuerURL derives the v2.0 issuer for the tenant, or strips the well-known
// suffix from an explicit discovery URL.
func issuerURL(cfg ProviderConfig) string {
	if cfg.DiscoveryURL != "" {
		issuer := strings.TrimSuffix(cfg.DiscoveryURL, "/")
		issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")
		return issuer
	}
	authority := strings.TrimSuffix(cfg.Authority, "/")
	if authority == "" {
		authority = DefaultAuthority
	}
	return authority + "/" + cfg.Tenant + "/v2.0"
}

type deviceCredential struct {
	p *Provider

	mu     sync.Mutex
	source oauth2.TokenSource
}

func (c *deviceCredential) Token(ctx context.Context, scopes []string) (domainauth.Token, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.source != nil {
		tok, err := c.source.Token()
		if err != nil {
			return domainauth.Token{}, fmt.Errorf("refresh token: %w", err)
		}
		return toDomainToken(tok), nil
	}

	cfg := *c.p.config
	cfg.Scopes = mergeScopes(scopes, c.p.config.Scopes)
	octx := context.WithValue(ctx, oauth2.HTTPClient, c.p.httpClient)

	da, err := cfg.DeviceAuth(octx)
	if err != nil {
		return domainauth.Token{}, fmt.Errorf("request device code: %w", err)
	}
	code := DeviceCode{
		UserCode:                da.UserCode,
		VerificationURI:         da.VerificationURI,
		VerificationURIComplete: da.VerificationURIComplete,
		ExpiresAt:               da.Expiry,
	}
	if err = c.p.prompt(ctx, code); err != nil {
		return domainauth.Token{}, fmt.Errorf("show device code: %w", err)
	}

	tok, err := cfg.DeviceAccessToken(octx, da)
	if err != nil {
		if ctx.Err() != nil {
			return domainauth.Token{}, context.Cause(ctx)
		}
		return domainauth.Token{}, fmt.Errorf("device access token: %w", err)
	}
	c.inspectIDToken(ctx, tok)

	// Refreshes outlive the login context.
	rctx := context.WithValue(context.Background(), oauth2.HTTPClient, c.p.httpClient)
	c.source = cfg.TokenSource(rctx, tok)
	return toDomainToken(tok), nil
}

// inspectIDToken logs who signed in when the response carries a verifiable id_token.
func (c *deviceCredential) inspectIDToken(ctx context.Context, tok *oauth2.Token) {
	raw, ok := tok.Extra("id_token").(string)
	if !ok || raw == "" || c.p.verifier == nil {
		return
	}
	vctx := context.WithValue(ctx, oauth2.HTTPClient, c.p.httpClient)
	idTok, err := c.p.verifier.Verify(vctx, raw)
	if err != nil {
		c.p.logger.WarnContext(ctx, "id_token verification failed", "error", err)
		return
	}
	var claims struct {
		PreferredUsername string `json:"preferred_username"`
		TenantID          string `json:"tid"`
	}
	if err := idTok.Claims(&claims); err != nil {
		c.p.logger.WarnContext(ctx, "id_token claims unreadable", "error", err)
		return
	}
	c.p.logger.InfoContext(ctx, "device login completed", "user", claims.PreferredUsername, "tenant", claims.TenantID)
}

func toDomainToken(tok *oauth2.Token) domainauth.Token {
	expiresAt := tok.Expiry
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(time.Hour)
	}
	return domainauth.Token{Value: tok.AccessToken, ExpiresAt: expiresAt.UTC()}
}

// mergeScopes returns requested followed by any configured scopes not already present.
func mergeScopes(requested, configured []string) []string {
	out := make([]string, 0, len(requested)+len(configured))
	for _, s := range slices.Concat(requested, configured) {
		if s != "" && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}
