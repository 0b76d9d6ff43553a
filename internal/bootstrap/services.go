package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/target/dirsearch/config"
	"github.com/target/dirsearch/internal/adapters/graph"
	redisadapter "github.com/target/dirsearch/internal/adapters/redis"
	domainauth "github.com/target/dirsearch/internal/domain/auth"
	"github.com/target/dirsearch/internal/observability/statsd"
	"github.com/target/dirsearch/internal/ports"
	"github.com/target/dirsearch/internal/service"
)

// ServiceContainer holds the wired application services.
type ServiceContainer struct {
	Session       *service.AuthSession
	Search        *service.SearchCoordinator
	Tokens        *service.TokenCache
	Directory     ports.DirectoryClient
	Observability ObservabilityContainer

	redis redis.UniversalClient
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	MetricsSink   *statsd.Client
	MetricsConfig config.ObservabilityMetricsConfig
}

// Sink returns the metrics sink, or nil when metrics are disabled.
//
//nolint:ireturn // a nil interface keeps emitters on their no-op path.
func (o ObservabilityContainer) Sink() statsd.Sink {
	if o.MetricsSink == nil {
		return nil
	}
	return o.MetricsSink
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config   *config.AppConfig
	Provider ports.IdentityProvider
	// Directory overrides the Graph client built from Config.
	Directory ports.DirectoryClient
	// RedisClient enables the lookup cache when set and CACHE_LOOKUP_ENABLED is true.
	RedisClient redis.UniversalClient

	OnStatus domainauth.StatusFunc
	OnDetail func(text string)
	Logger   *slog.Logger
}

// buildObservability configures the StatsD sink.
func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig) ObservabilityContainer {
	var metricsSink *statsd.Client
	if cfg.Metrics.IsEnabled() {
		client, err := statsd.NewClient(statsd.Config{
			Enabled:    true,
			Address:    cfg.Metrics.StatsdAddress,
			Prefix:     cfg.Metrics.Prefix,
			GlobalTags: cfg.Metrics.GlobalTags(),
			Logger:     logger,
		})
		if err != nil {
			logger.Error("failed to initialise statsd client", "error", err)
		} else {
			metricsSink = client
		}
	}
	return ObservabilityContainer{
		MetricsSink:   metricsSink,
		MetricsConfig: cfg.Metrics,
	}
}

//nolint:ireturn // the directory may be wrapped by the lookup cache.
func buildDirectory(deps *ServiceDeps, obs ObservabilityContainer, logger *slog.Logger) (ports.DirectoryClient, error) {
	dir := deps.Directory
	if dir == nil {
		client, err := graph.NewClient(graph.Config{
			BaseURL:   deps.Config.Directory.BaseURL,
			Timeout:   deps.Config.Directory.Timeout,
			MaxPages:  deps.Config.Directory.MaxPages,
			UserAgent: deps.Config.Directory.UserAgent,
			Logger:    logger,
		})
		if err != nil {
			return nil, fmt.Errorf("create directory client: %w", err)
		}
		dir = client
	}

	if !deps.Config.IsLookupCacheEnabled() {
		return dir, nil
	}
	if deps.RedisClient == nil {
		logger.Warn("lookup cache enabled but redis client not configured; caching disabled")
		return dir, nil
	}

	namespace := deps.Config.Cache.LookupNamespace
	if namespace == "" {
		namespace = strings.ToLower(deps.Config.Auth.OAuth.Tenant)
	}
	return service.NewCachingDirectory(service.CachingDirectoryOptions{
		Next:      dir,
		Cache:     redisadapter.NewLookupCache(deps.RedisClient),
		TTL:       deps.Config.Cache.LookupTTL,
		Namespace: namespace,
		Metrics:   obs.Sink(),
		Logger:    logger,
	}), nil
}

// tokenScopes are the scopes the token cache mints with. In mock mode the
// directory default is enough.
func tokenScopes(cfg *config.AppConfig) []string {
	if cfg.Auth.Mode != config.AuthModeOAuth {
		return nil
	}
	var scopes []string
	for _, s := range strings.Fields(cfg.Auth.OAuth.Scope) {
		// Refresh is implied by the device grant; the token itself is for the directory.
		if s != "offline_access" {
			scopes = append(scopes, s)
		}
	}
	return scopes
}

// NewServices wires the session, token cache, directory client and search
// coordinator. Logging out of the session resets the coordinator.
func NewServices(deps *ServiceDeps) (*ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return nil, errors.New("service config is required")
	}
	if deps.Provider == nil {
		return nil, errors.New("identity provider is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	obs := buildObservability(logger, deps.Config.Observability)
	dir, err := buildDirectory(deps, obs, logger)
	if err != nil {
		if obs.MetricsSink != nil {
			err = errors.Join(err, obs.MetricsSink.Close())
		}
		return nil, err
	}

	tokens := service.NewTokenCache(service.TokenCacheOptions{
		Scopes: tokenScopes(deps.Config),
		Logger: logger,
	})
	session := service.NewAuthSession(service.AuthSessionOptions{
		Provider:  deps.Provider,
		Directory: dir,
		Tokens:    tokens,
		Countdown: deps.Config.Session.Countdown,
		Tick:      deps.Config.Session.Tick,
		OnStatus:  deps.OnStatus,
		Metrics:   obs.Sink(),
		Logger:    logger,
	})
	search := service.NewSearchCoordinator(service.SearchCoordinatorOptions{
		Session:   session,
		Directory: dir,
		OnStatus:  deps.OnStatus,
		OnDetail:  deps.OnDetail,
		Metrics:   obs.Sink(),
		Logger:    logger,
	})
	session.OnLogout(search.Reset)

	return &ServiceContainer{
		Session:       session,
		Search:        search,
		Tokens:        tokens,
		Directory:     dir,
		Observability: obs,
		redis:         deps.RedisClient,
	}, nil
}

// Close releases the metrics sink and the Redis connection.
func (c *ServiceContainer) Close() error {
	var errs []error
	if c.Observability.MetricsSink != nil {
		if err := c.Observability.MetricsSink.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close statsd: %w", err))
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	return errors.Join(errs...)
}
