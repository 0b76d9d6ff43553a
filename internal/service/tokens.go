package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	domainauth "github.com/target/dirsearch/internal/domain/auth"
	"github.com/target/dirsearch/internal/ports"
	"golang.org/x/sync/singleflight"
)

// TokenCacheOptions groups dependencies for TokenCache.
type TokenCacheOptions struct {
	// Scopes requested when minting; defaults to the directory API's default scope.
	Scopes []string
	// Now is injectable for tests; defaults to time.Now.
	Now    func() time.Time
	Logger *slog.Logger
}

// TokenCache holds the current access token and decides between reuse and refresh.
// Refreshes for the same credential are coalesced so concurrent callers cause a
// single credential round trip.
type TokenCache struct {
	scopes []string
	now    func() time.Time
	logger *slog.Logger

	mu      sync.Mutex
	current domainauth.Token
	gen     uint64

	refresh singleflight.Group
}

// NewTokenCache constructs an empty TokenCache.
func NewTokenCache(opts TokenCacheOptions) *TokenCache {
	scopes := slices.Clone(opts.Scopes)
	if len(scopes) == 0 {
		scopes = []string{domainauth.DefaultScope}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &TokenCache{scopes: scopes, now: now, logger: logger}
}

// Scopes returns the scopes used for minting.
func (c *TokenCache) Scopes() []string { return slices.Clone(c.scopes) }

// GetOrRefresh returns the cached token while now < ExpiresAt; otherwise it mints a
// new one through cred, stores it, and returns it.
func (c *TokenCache) GetOrRefresh(ctx context.Context, cred ports.Credential) (domainauth.Token, error) {
	if cred == nil {
		return domainauth.Token{}, errors.New("credential is required")
	}

	c.mu.Lock()
	if c.current.ValidAt(c.now()) {
		tok := c.current
		c.mu.Unlock()
		return tok, nil
	}
	gen := c.gen
	c.mu.Unlock()

	ch := c.refresh.DoChan(fmt.Sprintf("refresh:%d", gen), func() (any, error) {
		tok, err := cred.Token(ctx, c.scopes)
		if err != nil {
			return domainauth.Token{}, err
		}
		if tok.Value == "" {
			return domainauth.Token{}, errors.New("credential returned an empty token")
		}
		tok.ExpiresAt = tok.ExpiresAt.UTC()

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.gen == gen {
			c.current = tok
		}
		c.logger.Debug("access token refreshed", "expires_at", tok.ExpiresAt)
		return tok, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return domainauth.Token{}, res.Err
		}
		tok, ok := res.Val.(domainauth.Token)
		if !ok {
			return domainauth.Token{}, errors.New("unexpected refresh result")
		}
		return tok, nil
	case <-ctx.Done():
		return domainauth.Token{}, context.Cause(ctx)
	}
}

// Peek returns the cached token without refreshing.
func (c *TokenCache) Peek() (domainauth.Token, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current, c.current.ValidAt(c.now())
}

// Clear discards the cached token. A refresh already in flight will not repopulate it.
func (c *TokenCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = domainauth.Token{}
	c.gen++
}
