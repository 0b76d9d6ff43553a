package devauth

// Package devauth provides a config-driven IdentityProvider for local development
// against a stub directory.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	domainauth "github.com/target/dirsearch/internal/domain/auth"
	"github.com/target/dirsearch/internal/ports"
)

// Config controls the dev auth provider behavior.
type Config struct {
	// Token is the bearer value handed out; a random one is generated when empty.
	Token string
	// TokenTTL defaults to 1h when zero.
	TokenTTL time.Duration
	// LoginDelay simulates the operator completing an interactive login.
	LoginDelay time.Duration
}

// Provider implements ports.IdentityProvider for local development.
// Its credentials skip the interactive step and mint the configured token.
type Provider struct {
	token      string
	ttl        time.Duration
	loginDelay time.Duration
}

var _ ports.IdentityProvider = (*Provider)(nil)

// NewProvider constructs a dev auth provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.TokenTTL < 0 {
		return nil, errors.New("dev auth: TokenTTL must not be negative")
	}
	if cfg.LoginDelay < 0 {
		return nil, errors.New("dev auth: LoginDelay must not be negative")
	}
	token := cfg.Token
	if token == "" {
		var err error
		if token, err = randomString(32); err != nil {
			return nil, fmt.Errorf("generate dev token: %w", err)
		}
	}
	ttl := cfg.TokenTTL
	if ttl == 0 {
		ttl = time.Hour
	}
	return &Provider{token: token, ttl: ttl, loginDelay: cfg.LoginDelay}, nil
}

// NewCredential returns a credential whose first Token call waits LoginDelay.
func (p *Provider) NewCredential(_ context.Context) (ports.Credential, error) {
	return &credential{p: p}, nil
}

type credential struct {
	p        *Provider
	loggedIn atomic.Bool
}

func (c *credential) Token(ctx context.Context, _ []string) (domainauth.Token, error) {
	if !c.loggedIn.Load() && c.p.loginDelay > 0 {
		t := time.NewTimer(c.p.loginDelay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return domainauth.Token{}, context.Cause(ctx)
		case <-t.C:
		}
	}
	if err := ctx.Err(); err != nil {
		return domainauth.Token{}, context.Cause(ctx)
	}
	c.loggedIn.Store(true)
	return domainauth.Token{Value: c.p.token, ExpiresAt: time.Now().Add(c.p.ttl).UTC()}, nil
}

func randomString(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	b := make([]byte, (n*3+3)/4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := base64.RawURLEncoding.EncodeToString(b)
	if len(s) < n {
		extra := make([]byte, 1)
		if _, err := rand.Read(extra); err != nil {
			return "", err
		}
		s += base64.RawURLEncoding.EncodeToString(extra)
	}
	return s[:n], nil
}
