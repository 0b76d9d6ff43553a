package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/dirsearch/internal/domain/directory"
)

func TestMockCredential_Defaults(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cred := &MockCredential{Now: func() time.Time { return fixed }, TTL: time.Minute}

	tok, err := cred.Token(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "mock-token-1", tok.Value)
	assert.Equal(t, fixed.Add(time.Minute), tok.ExpiresAt)

	tok2, err := cred.Token(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "mock-token-2", tok2.Value)
	assert.Equal(t, 2, cred.Calls())
}

func TestMockCredential_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&MockCredential{}).Token(ctx, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestBlockUntil(t *testing.T) {
	release := make(chan struct{})
	cred := &MockCredential{TokenFunc: BlockUntil(release)}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := cred.Token(ctx, nil)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	tok, err := cred.Token(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "released-token", tok.Value)
}

func TestMockIdentityProvider(t *testing.T) {
	p := &MockIdentityProvider{}
	c1, err := p.NewCredential(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, c1)
	assert.Equal(t, 1, p.Created())

	p.Err = errors.New("no browser")
	_, err = p.NewCredential(context.Background())
	require.Error(t, err)
}

func TestMemoryLookupCache(t *testing.T) {
	c := NewMemoryLookupCache()
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	recs := []directory.Record{directory.NewDevice(map[string]any{"deviceName": "PC"})}
	require.NoError(t, c.Set(ctx, "k", recs, time.Minute))
	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, got, 1)

	require.NoError(t, c.Delete(ctx, "k"))
	assert.Equal(t, 0, c.Len())
}
