package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	domainauth "github.com/target/dirsearch/internal/domain/auth"
	"github.com/target/dirsearch/internal/domain/directory"
	"github.com/target/dirsearch/internal/observability/metrics"
	"github.com/target/dirsearch/internal/observability/statsd"
	"github.com/target/dirsearch/internal/ports"
)

// DefaultLookupCacheTTL bounds how stale a cached lookup may be.
const DefaultLookupCacheTTL = 2 * time.Minute

// CachingDirectoryOptions configures CachingDirectory.
type CachingDirectoryOptions struct {
	Next  ports.DirectoryClient
	Cache ports.LookupCache
	TTL   time.Duration
	// Namespace scopes keys, typically to the tenant.
	Namespace string

	Metrics statsd.Sink
	Logger  *slog.Logger
}

// CachingDirectory serves list lookups from a LookupCache and falls through to
// the wrapped client on a miss. Cache failures are logged and never fail a lookup.
// Single-record calls pass straight through.
type CachingDirectory struct {
	ports.DirectoryClient

	cache     ports.LookupCache
	ttl       time.Duration
	namespace string
	metrics   statsd.Sink
	logger    *slog.Logger
}

var _ ports.DirectoryClient = (*CachingDirectory)(nil)

// NewCachingDirectory wraps opts.Next with a lookup cache.
func NewCachingDirectory(opts CachingDirectoryOptions) *CachingDirectory {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultLookupCacheTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ns := opts.Namespace
	if ns == "" {
		ns = "default"
	}
	return &CachingDirectory{
		DirectoryClient: opts.Next,
		cache:           opts.Cache,
		ttl:             ttl,
		namespace:       ns,
		metrics:         opts.Metrics,
		logger:          logger,
	}
}

func (c *CachingDirectory) SearchPrincipals(ctx context.Context, tok domainauth.Token, filter directory.Filter) ([]directory.Record, error) {
	return c.cached(ctx, "principals", string(filter), func() ([]directory.Record, error) {
		return c.DirectoryClient.SearchPrincipals(ctx, tok, filter)
	})
}

func (c *CachingDirectory) SearchDevices(ctx context.Context, tok domainauth.Token, filter directory.Filter) ([]directory.Record, error) {
	return c.cached(ctx, "devices", string(filter), func() ([]directory.Record, error) {
		return c.DirectoryClient.SearchDevices(ctx, tok, filter)
	})
}

func (c *CachingDirectory) GetDevicesByOwner(ctx context.Context, tok domainauth.Token, ownerID string) ([]directory.Record, error) {
	return c.cached(ctx, "owner_devices", ownerID, func() ([]directory.Record, error) {
		return c.DirectoryClient.GetDevicesByOwner(ctx, tok, ownerID)
	})
}

// Key returns the cache key for a lookup of kind with the given argument.
func (c *CachingDirectory) Key(kind, arg string) string {
	sum := sha256.Sum256([]byte(arg))
	return "dirsearch:lookup:" + c.namespace + ":" + kind + ":" + hex.EncodeToString(sum[:])
}

func (c *CachingDirectory) cached(
	ctx context.Context,
	kind, arg string,
	load func() ([]directory.Record, error),
) ([]directory.Record, error) {
	if c.cache == nil {
		return load()
	}
	key := c.Key(kind, arg)

	recs, ok, err := c.cache.Get(ctx, key)
	switch {
	case err != nil:
		c.logger.WarnContext(ctx, "lookup cache read failed", "kind", kind, "error", err)
	case ok:
		metrics.EmitCache(c.metrics, kind, metrics.ResultHit)
		return recs, nil
	default:
		metrics.EmitCache(c.metrics, kind, metrics.ResultMiss)
	}

	recs, err = load()
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, recs, c.ttl); err != nil {
		c.logger.WarnContext(ctx, "lookup cache write failed", "kind", kind, "error", err)
	}
	return recs, nil
}
