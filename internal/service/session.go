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
	apperrors "github.com/target/dirsearch/internal/errors"
	"github.com/target/dirsearch/internal/observability/metrics"
	"github.com/target/dirsearch/internal/observability/statsd"
	"github.com/target/dirsearch/internal/ports"
)

const (
	// DefaultCountdown is the login budget in ticks.
	DefaultCountdown = 60
	// DefaultTick is the countdown tick interval.
	DefaultTick = time.Second
)

// AuthSessionOptions groups dependencies for AuthSession.
type AuthSessionOptions struct {
	Provider  ports.IdentityProvider
	Directory ports.DirectoryClient
	Tokens    *TokenCache

	Countdown int           // ticks; DefaultCountdown when <= 0
	Tick      time.Duration // DefaultTick when <= 0

	OnStatus domainauth.StatusFunc
	Metrics  statsd.Sink
	Logger   *slog.Logger
}

// ConnectResult describes a successful Connect.
type ConnectResult struct {
	Identity         string
	AlreadyConnected bool
}

// AuthSession is the operator's connection state machine:
// Disconnected -> Authenticating -> Connected, back to Disconnected on cancel,
// timeout, failure, or logout.
//
// A Connect attempt races an authentication activity against a countdown. The
// first outcome (success, timeout, cancel, failure) is applied once under mu,
// keyed by the attempt number; everything arriving later is dropped.
type AuthSession struct {
	provider  ports.IdentityProvider
	directory ports.DirectoryClient
	tokens    *TokenCache
	countdown int
	tick      time.Duration
	onStatus  domainauth.StatusFunc
	metrics   statsd.Sink
	logger    *slog.Logger

	mu         sync.Mutex
	state      domainauth.SessionState
	credential ports.Credential
	identity   string
	attempt    uint64
	resolved   bool
	cancel     context.CancelCauseFunc
	onLogout   []func()
}

type authOutcome struct {
	credential ports.Credential
	identity   string
	err        error
}

// NewAuthSession constructs a disconnected AuthSession.
func NewAuthSession(opts AuthSessionOptions) *AuthSession {
	countdown := opts.Countdown
	if countdown <= 0 {
		countdown = DefaultCountdown
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultTick
	}
	tokens := opts.Tokens
	if tokens == nil {
		tokens = NewTokenCache(TokenCacheOptions{Logger: opts.Logger})
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthSession{
		provider:  opts.Provider,
		directory: opts.Directory,
		tokens:    tokens,
		countdown: countdown,
		tick:      tick,
		onStatus:  opts.OnStatus,
		metrics:   opts.Metrics,
		logger:    logger,
		state:     domainauth.StateDisconnected,
	}
}

// State returns the current session state.
func (s *AuthSession) State() domainauth.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Identity returns the display identifier of the connected operator, or "".
func (s *AuthSession) Identity() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// OnLogout registers fn to run after a successful Logout.
func (s *AuthSession) OnLogout(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLogout = append(s.onLogout, fn)
}

// Connect authenticates the operator. It blocks until the attempt succeeds,
// fails, times out, or is cancelled through Cancel or ctx.
func (s *AuthSession) Connect(ctx context.Context) (ConnectResult, error) {
	s.mu.Lock()
	switch s.state {
	case domainauth.StateConnected:
		id := s.identity
		s.emit(domainauth.StatusSuccess, id+" is already connected.")
		s.mu.Unlock()
		return ConnectResult{Identity: id, AlreadyConnected: true}, nil
	case domainauth.StateAuthenticating:
		s.mu.Unlock()
		return ConnectResult{}, apperrors.AlreadyInProgress("authentication already in progress")
	}

	s.attempt++
	attempt := s.attempt
	attemptCtx, cancel := context.WithCancelCause(ctx)
	s.cancel = cancel
	s.resolved = false
	s.state = domainauth.StateAuthenticating
	s.emit(domainauth.StatusProgress, countdownText(s.countdown))
	s.mu.Unlock()
	defer cancel(nil)

	s.logger.InfoContext(ctx, "authentication started", "attempt", attempt, "countdown", s.countdown)
	started := time.Now()

	authDone := make(chan authOutcome, 1)
	expired := make(chan struct{})
	go func() { authDone <- s.authenticate(attemptCtx) }()
	go s.runCountdown(attemptCtx, attempt, expired)

	var out authOutcome
	select {
	case out = <-authDone:
	case <-expired:
		out = authOutcome{err: apperrors.AuthTimeout("Authentication timed out.")}
	case <-attemptCtx.Done():
		out = authOutcome{err: context.Cause(attemptCtx)}
	}

	return s.conclude(attemptCtx, attempt, out, time.Since(started))
}

// Cancel aborts an in-flight Connect. It reports whether there was one.
func (s *AuthSession) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domainauth.StateAuthenticating || s.resolved {
		return false
	}
	s.resolveLocked(authOutcome{err: apperrors.AuthCancelled("Login cancelled.")})
	s.logger.Info("authentication cancelled by operator", "attempt", s.attempt)
	return true
}

// Logout discards the credential and cached token and notifies logout listeners.
func (s *AuthSession) Logout(ctx context.Context) error {
	s.mu.Lock()
	if s.state != domainauth.StateConnected {
		s.mu.Unlock()
		return apperrors.NotAuthenticated("not connected")
	}
	s.credential = nil
	s.identity = ""
	s.state = domainauth.StateDisconnected
	s.tokens.Clear()
	s.emit(domainauth.StatusInfo, "Logged out.")
	listeners := slices.Clone(s.onLogout)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "session logged out")
	for _, fn := range listeners {
		fn()
	}
	return nil
}

// GetToken returns a valid access token, refreshing through the cached credential
// when the current token has expired.
func (s *AuthSession) GetToken(ctx context.Context) (domainauth.Token, error) {
	s.mu.Lock()
	cred := s.credential
	s.mu.Unlock()
	if cred == nil {
		return domainauth.Token{}, apperrors.NotAuthenticated("not connected")
	}
	tok, err := s.tokens.GetOrRefresh(ctx, cred)
	if err != nil {
		return domainauth.Token{}, apperrors.Wrap(err, apperrors.ErrCodeAuthError, "refresh access token")
	}
	return tok, nil
}

// authenticate acquires a credential and token and resolves the operator's
// display identifier. It checks ctx between steps.
func (s *AuthSession) authenticate(ctx context.Context) authOutcome {
	if err := checkpoint(ctx); err != nil {
		return authOutcome{err: err}
	}
	cred, err := s.provider.NewCredential(ctx)
	if err != nil {
		return authOutcome{err: apperrors.Wrap(err, apperrors.ErrCodeAuthError, "create credential")}
	}
	if err = checkpoint(ctx); err != nil {
		return authOutcome{err: err}
	}

	tok, err := s.tokens.GetOrRefresh(ctx, cred)
	if err != nil {
		if cerr := checkpoint(ctx); cerr != nil {
			return authOutcome{err: cerr}
		}
		return authOutcome{err: apperrors.Wrap(err, apperrors.ErrCodeAuthError, "acquire token")}
	}
	if err = checkpoint(ctx); err != nil {
		return authOutcome{err: err}
	}

	profile, err := s.directory.GetCallerProfile(ctx, tok)
	if err != nil {
		if cerr := checkpoint(ctx); cerr != nil {
			return authOutcome{err: cerr}
		}
		return authOutcome{err: apperrors.Wrap(err, apperrors.ErrCodeAuthError, "fetch caller profile")}
	}
	if err = checkpoint(ctx); err != nil {
		return authOutcome{err: err}
	}

	id := firstNonEmpty(profile.Field("givenName"), profile.Field("displayName"), profile.Field("userPrincipalName"))
	return authOutcome{credential: cred, identity: id}
}

func (s *AuthSession) runCountdown(ctx context.Context, attempt uint64, expired chan<- struct{}) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for remaining := s.countdown; remaining > 0; {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			remaining--
			if !s.reportTick(attempt, remaining) {
				return
			}
		}
	}
	close(expired)
}

// reportTick emits the countdown status while the attempt is still open.
func (s *AuthSession) reportTick(attempt uint64, remaining int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if attempt != s.attempt || s.resolved || s.state != domainauth.StateAuthenticating {
		return false
	}
	if remaining > 0 {
		s.emit(domainauth.StatusProgress, countdownText(remaining))
	}
	return true
}

func (s *AuthSession) conclude(ctx context.Context, attempt uint64, out authOutcome, elapsed time.Duration) (ConnectResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if attempt != s.attempt || s.resolved {
		// Cancel got there first.
		if cause := context.Cause(ctx); cause != nil {
			return ConnectResult{}, cause
		}
		return ConnectResult{}, apperrors.AuthCancelled("Login cancelled.")
	}

	s.resolveLocked(out)
	metrics.EmitAuthOutcome(s.metrics, metrics.AuthMetric{
		Result:   authResult(out.err),
		Duration: elapsed,
		Err:      out.err,
	})
	if out.err != nil {
		s.logger.WarnContext(ctx, "authentication failed", "attempt", attempt, "result", authResult(out.err), "error", out.err)
		return ConnectResult{}, out.err
	}
	s.logger.InfoContext(ctx, "authentication succeeded", "attempt", attempt, "elapsed", elapsed)
	return ConnectResult{Identity: out.identity}, nil
}

// resolveLocked applies the single outcome of the current attempt. Caller holds mu.
func (s *AuthSession) resolveLocked(out authOutcome) {
	s.resolved = true
	if out.err == nil {
		s.state = domainauth.StateConnected
		s.credential = out.credential
		s.identity = out.identity
		s.emit(domainauth.StatusSuccess, out.identity+" is connected.")
		return
	}

	if s.cancel != nil {
		s.cancel(out.err)
	}
	s.state = domainauth.StateDisconnected
	s.credential = nil
	s.identity = ""
	s.tokens.Clear()

	switch {
	case apperrors.IsAuthTimeout(out.err):
		s.emit(domainauth.StatusFailure, "Authentication timed out.")
	case apperrors.IsAuthCancelled(out.err), errors.Is(out.err, context.Canceled):
		s.emit(domainauth.StatusFailure, "Login cancelled.")
	default:
		s.emit(domainauth.StatusFailure, "Error: "+out.err.Error())
	}
}

func (s *AuthSession) emit(level domainauth.StatusLevel, text string) {
	s.onStatus.Emit(level, text)
}

func checkpoint(ctx context.Context) error {
	if ctx.Err() == nil {
		return nil
	}
	if cause := context.Cause(ctx); cause != nil {
		return cause
	}
	return ctx.Err()
}

func countdownText(remaining int) string {
	return fmt.Sprintf("Authenticating... (%ds)", remaining)
}

func authResult(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case apperrors.IsAuthTimeout(err):
		return metrics.ResultTimeout
	case apperrors.IsAuthCancelled(err), errors.Is(err, context.Canceled):
		return metrics.ResultCancelled
	default:
		return metrics.ResultError
	}
}

// firstNonEmpty returns the first non-empty string from vals, or empty string if none.
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
