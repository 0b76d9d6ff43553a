package bootstrap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/dirsearch/config"
	"github.com/target/dirsearch/internal/adapters/devauth"
	domainauth "github.com/target/dirsearch/internal/domain/auth"
	"github.com/target/dirsearch/internal/service"
)

// stubDirectory serves the handful of Graph endpoints the services call.
func stubDirectory(t *testing.T, token string) *httptest.Server {
	t.Helper()
	write := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch {
		case r.URL.Path == "/v1.0/me":
			write(w, map[string]any{"id": "me", "givenName": "Grace", "displayName": "Grace Hopper"})
		case r.URL.Path == "/v1.0/users":
			write(w, map[string]any{"value": []any{
				map[string]any{"id": "u1", "displayName": "Ada Lovelace", "userPrincipalName": "ada@example.com"},
			}})
		case r.URL.Path == "/v1.0/deviceManagement/managedDevices":
			if strings.HasPrefix(r.URL.Query().Get("$filter"), "serialNumber") {
				write(w, map[string]any{"value": []any{
					map[string]any{"id": "d1", "deviceName": "LAPTOP-01", "serialNumber": "ABC123"},
				}})
				return
			}
			write(w, map[string]any{"value": []any{}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

type statusRecorder struct {
	mu    sync.Mutex
	texts []string
}

func (r *statusRecorder) Func() domainauth.StatusFunc {
	return func(s domainauth.Status) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.texts = append(r.texts, s.Text)
	}
}

func (r *statusRecorder) Texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.texts...)
}

func testConfig(baseURL string) *config.AppConfig {
	cfg := &config.AppConfig{
		Auth:      config.AuthConfig{Mode: config.AuthModeMock},
		Session:   config.SessionConfig{Countdown: 60, Tick: time.Second},
		Directory: config.DirectoryConfig{BaseURL: baseURL + "/v1.0"},
	}
	cfg.Sanitize()
	return cfg
}

func TestNewServices_ConnectSearchLogout(t *testing.T) {
	srv := stubDirectory(t, "dev-token")
	prov, err := devauth.NewProvider(devauth.Config{Token: "dev-token"})
	require.NoError(t, err)

	statuses := &statusRecorder{}
	svc, err := NewServices(&ServiceDeps{
		Config:   testConfig(srv.URL),
		Provider: prov,
		OnStatus: statuses.Func(),
		Logger:   discardLogger(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, svc.Close()) })

	ctx := context.Background()
	res, err := svc.Session.Connect(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Grace", res.Identity)
	assert.Equal(t, domainauth.StateConnected, svc.Session.State())

	rs, err := svc.Search.Search(ctx, "ABC123")
	require.NoError(t, err)
	assert.Equal(t, 2, rs.Len())
	assert.Equal(t, []string{
		"1. User: Ada Lovelace (ada@example.com)",
		"2. Device: LAPTOP-01 (Serial: ABC123)",
	}, svc.Search.CurrentPage().Lines())

	require.NoError(t, svc.Session.Logout(ctx))
	assert.Zero(t, svc.Search.Results().Len(), "logout resets the coordinator")
	assert.Contains(t, statuses.Texts(), "Grace is connected.")
	assert.Contains(t, statuses.Texts(), "Logged out.")
}

func TestNewServices_Validation(t *testing.T) {
	_, err := NewServices(nil)
	require.Error(t, err)

	_, err = NewServices(&ServiceDeps{Config: testConfig("http://localhost")})
	require.Error(t, err)

	prov, err := devauth.NewProvider(devauth.Config{})
	require.NoError(t, err)
	cfg := testConfig("http://localhost")
	cfg.Directory.BaseURL = "ftp://example.com"
	_, err = NewServices(&ServiceDeps{Config: cfg, Provider: prov, Logger: discardLogger()})
	require.Error(t, err)
}

func TestNewServices_CacheWithoutRedis(t *testing.T) {
	prov, err := devauth.NewProvider(devauth.Config{})
	require.NoError(t, err)
	cfg := testConfig("http://localhost")
	cfg.Cache.LookupEnabled = true

	svc, err := NewServices(&ServiceDeps{Config: cfg, Provider: prov, Logger: discardLogger()})
	require.NoError(t, err)
	_, cached := svc.Directory.(*service.CachingDirectory)
	assert.False(t, cached)
}

func TestTokenScopes(t *testing.T) {
	cfg := &config.AppConfig{Auth: config.AuthConfig{
		Mode:  config.AuthModeOAuth,
		OAuth: config.OAuthConfig{Scope: "https://graph.microsoft.com/.default offline_access"},
	}}
	assert.Equal(t, []string{"https://graph.microsoft.com/.default"}, tokenScopes(cfg))

	cfg.Auth.Mode = config.AuthModeMock
	assert.Nil(t, tokenScopes(cfg))
}

func TestObservabilityContainer_SinkNilWhenDisabled(t *testing.T) {
	obs := buildObservability(discardLogger(), config.ObservabilityConfig{})
	assert.Nil(t, obs.MetricsSink)
	assert.Nil(t, obs.Sink())
}

type fakeCanceller struct {
	mu       sync.Mutex
	inflight bool
	calls    int
}

func (f *fakeCanceller) Cancel() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	was := f.inflight
	f.inflight = false
	return was
}

func TestWatchSignals(t *testing.T) {
	t.Run("interrupt during login cancels only the login", func(t *testing.T) {
		quit := make(chan os.Signal, 1)
		session := &fakeCanceller{inflight: true}
		ctx, stop := watchSignals(context.Background(), quit, session, discardLogger())
		defer stop()

		quit <- syscall.SIGINT
		require.Eventually(t, func() bool {
			session.mu.Lock()
			defer session.mu.Unlock()
			return session.calls == 1
		}, time.Second, 5*time.Millisecond)
		assert.NoError(t, ctx.Err())

		quit <- syscall.SIGINT
		require.Eventually(t, func() bool { return ctx.Err() != nil }, time.Second, 5*time.Millisecond)
	})

	t.Run("terminate always shuts down", func(t *testing.T) {
		quit := make(chan os.Signal, 1)
		session := &fakeCanceller{inflight: true}
		ctx, stop := watchSignals(context.Background(), quit, session, discardLogger())
		defer stop()

		quit <- syscall.SIGTERM
		require.Eventually(t, func() bool { return ctx.Err() != nil }, time.Second, 5*time.Millisecond)
		assert.Zero(t, session.calls)
	})
}
