package auth

// Package auth contains simple hand-written test doubles for the identity and cache ports.
// These are lightweight and suitable for unit tests that need timing control without codegen.

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	domainauth "github.com/target/dirsearch/internal/domain/auth"
	"github.com/target/dirsearch/internal/domain/directory"
	"github.com/target/dirsearch/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.Credential       = (*MockCredential)(nil)
	_ ports.IdentityProvider = (*MockIdentityProvider)(nil)
	_ ports.LookupCache      = (*MemoryLookupCache)(nil)
)

// MockCredential mints deterministic tokens and counts round trips.
type MockCredential struct {
	TokenFunc func(ctx context.Context, scopes []string) (domainauth.Token, error)

	// TTL of minted tokens; defaults to one hour.
	TTL time.Duration
	// Now defaults to time.Now.
	Now func() time.Time

	calls atomic.Int32
}

// Token returns TokenFunc's result, or "mock-token-N" valid for TTL.
func (m *MockCredential) Token(ctx context.Context, scopes []string) (domainauth.Token, error) {
	n := m.calls.Add(1)
	if m.TokenFunc != nil {
		return m.TokenFunc(ctx, scopes)
	}
	if err := ctx.Err(); err != nil {
		return domainauth.Token{}, err
	}
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	ttl := m.TTL
	if ttl == 0 {
		ttl = time.Hour
	}
	return domainauth.Token{
		Value:     fmt.Sprintf("mock-token-%d", n),
		ExpiresAt: now().Add(ttl).UTC(),
	}, nil
}

// Calls reports how many times Token was invoked.
func (m *MockCredential) Calls() int { return int(m.calls.Load()) }

// BlockUntil returns a TokenFunc that waits for release (or ctx) before minting a token.
func BlockUntil(release <-chan struct{}) func(ctx context.Context, scopes []string) (domainauth.Token, error) {
	return func(ctx context.Context, _ []string) (domainauth.Token, error) {
		select {
		case <-release:
			return domainauth.Token{Value: "released-token", ExpiresAt: time.Now().Add(time.Hour).UTC()}, nil
		case <-ctx.Done():
			return domainauth.Token{}, ctx.Err()
		}
	}
}

// MockIdentityProvider hands out Credential, or a fresh MockCredential when nil.
type MockIdentityProvider struct {
	Credential ports.Credential
	Err        error

	mu      sync.Mutex
	created []ports.Credential
}

func (p *MockIdentityProvider) NewCredential(_ context.Context) (ports.Credential, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	cred := p.Credential
	if cred == nil {
		cred = &MockCredential{}
	}
	p.mu.Lock()
	p.created = append(p.created, cred)
	p.mu.Unlock()
	return cred, nil
}

// Created reports how many credentials were handed out.
func (p *MockIdentityProvider) Created() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.created)
}

// MemoryLookupCache is an in-memory LookupCache for unit tests. It ignores TTLs.
type MemoryLookupCache struct {
	mu      sync.Mutex
	entries map[string][]directory.Record
}

// NewMemoryLookupCache creates an empty cache.
func NewMemoryLookupCache() *MemoryLookupCache {
	return &MemoryLookupCache{entries: make(map[string][]directory.Record)}
}

func (c *MemoryLookupCache) Get(_ context.Context, key string) ([]directory.Record, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	recs, ok := c.entries[key]
	return recs, ok, nil
}

func (c *MemoryLookupCache) Set(_ context.Context, key string, records []directory.Record, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = append([]directory.Record(nil), records...)
	return nil
}

func (c *MemoryLookupCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

// Len reports the number of cached keys.
func (c *MemoryLookupCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
