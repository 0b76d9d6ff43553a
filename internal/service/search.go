package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	domainauth "github.com/target/dirsearch/internal/domain/auth"
	"github.com/target/dirsearch/internal/domain/directory"
	apperrors "github.com/target/dirsearch/internal/errors"
	"github.com/target/dirsearch/internal/observability/metrics"
	"github.com/target/dirsearch/internal/observability/statsd"
	"github.com/target/dirsearch/internal/ports"
	"golang.org/x/sync/errgroup"
)

// SearchPlaceholder is the hint shown in an empty search box. Submitting it
// verbatim is treated as an empty query.
const SearchPlaceholder = "Search UPN/Email/Name/Device/Serial"

// Session is the part of AuthSession the search coordinator depends on.
type Session interface {
	State() domainauth.SessionState
	GetToken(ctx context.Context) (domainauth.Token, error)
}

// SearchCoordinatorOptions groups dependencies for SearchCoordinator.
type SearchCoordinatorOptions struct {
	Session   Session
	Directory ports.DirectoryClient

	OnStatus domainauth.StatusFunc
	// OnDetail receives the detail text each time it grows. Stale selections are dropped.
	OnDetail func(text string)

	Metrics statsd.Sink
	Logger  *slog.Logger
}

// SearchCoordinator runs the principal and device lookups for a query, keeps
// the merged ResultSet and current page, and renders record details.
type SearchCoordinator struct {
	session   Session
	directory ports.DirectoryClient
	onStatus  domainauth.StatusFunc
	onDetail  func(string)
	metrics   statsd.Sink
	logger    *slog.Logger

	mu      sync.RWMutex
	results directory.ResultSet
	page    int

	statusMu  sync.Mutex
	detailMu  sync.Mutex
	selection atomic.Uint64
}

// NewSearchCoordinator constructs a SearchCoordinator with an empty result set.
func NewSearchCoordinator(opts SearchCoordinatorOptions) *SearchCoordinator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchCoordinator{
		session:   opts.Session,
		directory: opts.Directory,
		onStatus:  opts.OnStatus,
		onDetail:  opts.OnDetail,
		metrics:   opts.Metrics,
		logger:    logger,
		page:      1,
	}
}

// Search runs both lookups for query and replaces the result set with their
// merged output: principals first, then devices, each in provider order.
//
// A failed lookup does not abort the other one. The returned error joins the
// lookup failures and is returned alongside the partial ResultSet.
func (s *SearchCoordinator) Search(ctx context.Context, query string) (directory.ResultSet, error) {
	q := strings.TrimSpace(query)
	if q == "" || q == SearchPlaceholder {
		s.emit(domainauth.StatusFailure, "Please enter a valid search.")
		return directory.ResultSet{}, apperrors.InvalidInput("Please enter a valid search.")
	}
	if s.session == nil || s.session.State() != domainauth.StateConnected {
		s.emit(domainauth.StatusFailure, "Please connect first.")
		return directory.ResultSet{}, apperrors.NotAuthenticated("Please connect first.")
	}

	tok, err := s.session.GetToken(ctx)
	if err != nil {
		s.emit(domainauth.StatusFailure, "Error: "+err.Error())
		return directory.ResultSet{}, err
	}

	s.Reset()
	s.emit(domainauth.StatusProgress, "Searching for user...")
	s.emit(domainauth.StatusProgress, fmt.Sprintf("Searching for device: %s...", q))

	var (
		principals, devices []directory.Record
		userErr, deviceErr  error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		principals, userErr = s.searchPrincipals(gctx, tok, q)
		return nil
	})
	g.Go(func() error {
		devices, deviceErr = s.searchDevices(gctx, tok, q)
		return nil
	})
	_ = g.Wait()

	var failures []error
	for _, err := range []error{userErr, deviceErr} {
		switch {
		case err == nil:
		case apperrors.IsNotFound(err):
			s.emit(domainauth.StatusInfo, err.Error())
		default:
			s.emit(domainauth.StatusFailure, lookupStatus(err))
			failures = append(failures, err)
		}
	}

	rs := directory.NewResultSet(principals, devices)
	s.mu.Lock()
	s.results = rs
	s.page = 1
	s.mu.Unlock()

	if rs.Len() == 0 {
		s.emit(domainauth.StatusInfo, "No result")
	} else {
		s.emit(domainauth.StatusClear, "")
	}
	s.logger.InfoContext(ctx, "search completed",
		"principals", rs.Principals(),
		"devices", rs.Devices(),
		"failures", len(failures),
	)
	return rs, errors.Join(failures...)
}

func (s *SearchCoordinator) searchPrincipals(ctx context.Context, tok domainauth.Token, q string) ([]directory.Record, error) {
	recs, err := s.timedLookup(ctx, "principal", func(ctx context.Context) ([]directory.Record, error) {
		return s.directory.SearchPrincipals(ctx, tok, directory.PrincipalPrefixFilter(q))
	})
	if err != nil {
		return nil, asLookup("Error searching users", err)
	}
	return recs, nil
}

// searchDevices tries an exact serial-number match and falls back to an exact
// device-name match when that yields nothing.
func (s *SearchCoordinator) searchDevices(ctx context.Context, tok domainauth.Token, q string) ([]directory.Record, error) {
	recs, err := s.timedLookup(ctx, "device_serial", func(ctx context.Context) ([]directory.Record, error) {
		return s.directory.SearchDevices(ctx, tok, directory.DeviceSerialFilter(q))
	})
	if err != nil {
		return nil, asLookup("Error searching device by serial number", err)
	}
	if len(recs) > 0 {
		return recs, nil
	}

	recs, err = s.timedLookup(ctx, "device_name", func(ctx context.Context) ([]directory.Record, error) {
		return s.directory.SearchDevices(ctx, tok, directory.DeviceNameFilter(q))
	})
	if err != nil {
		return nil, asLookup("Error searching device by device name", err)
	}
	if len(recs) == 0 {
		return nil, apperrors.NotFoundf("No device found with serial number or device name: %s", q)
	}
	return recs, nil
}

func (s *SearchCoordinator) timedLookup(
	ctx context.Context,
	source string,
	fn func(context.Context) ([]directory.Record, error),
) ([]directory.Record, error) {
	start := time.Now()
	recs, err := fn(ctx)
	result := metrics.ResultSuccess
	switch {
	case err != nil:
		result = metrics.ResultError
	case len(recs) == 0:
		result = metrics.ResultEmpty
	}
	metrics.EmitLookup(s.metrics, metrics.LookupMetric{
		Source:   source,
		Result:   result,
		Count:    len(recs),
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "directory lookup failed", "source", source, "error", err)
	}
	return recs, err
}

// Results returns the current result set.
func (s *SearchCoordinator) Results() directory.ResultSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.results
}

// GetPage returns page n of the current results, clamped to the valid range.
// It does not move the current page.
func (s *SearchCoordinator) GetPage(n int) directory.Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.results.Page(n)
}

// CurrentPage returns the page the operator is on.
func (s *SearchCoordinator) CurrentPage() directory.Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.results.Page(s.page)
}

// NextPage advances the current page when there is one after it.
func (s *SearchCoordinator) NextPage() directory.Page {
	return s.movePage(1)
}

// PrevPage moves back one page when not on the first.
func (s *SearchCoordinator) PrevPage() directory.Page {
	return s.movePage(-1)
}

// GoToPage sets the current page, clamped.
func (s *SearchCoordinator) GoToPage(n int) directory.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = directory.ClampPage(n, s.results.Len())
	return s.results.Page(s.page)
}

func (s *SearchCoordinator) movePage(delta int) directory.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = directory.ClampPage(s.page+delta, s.results.Len())
	return s.results.Page(s.page)
}

// Reset clears the results and invalidates any detail rendering in flight.
func (s *SearchCoordinator) Reset() {
	s.mu.Lock()
	s.results = directory.ResultSet{}
	s.page = 1
	s.mu.Unlock()
	s.selection.Add(1)
}

func (s *SearchCoordinator) emit(level domainauth.StatusLevel, text string) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.onStatus.Emit(level, text)
}

// asLookup keeps an existing LookupError's reason and relabels it with message.
func asLookup(message string, err error) error {
	return apperrors.Lookup(message, reasonOf(err), err)
}

// reasonOf returns the provider reason carried by err, or its message.
func reasonOf(err error) string {
	if r := apperrors.GetReason(err); r != "" {
		return r
	}
	return err.Error()
}

func lookupStatus(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code == apperrors.ErrCodeLookupError {
		return fmt.Sprintf("%s: %s", appErr.Message, appErr.Reason)
	}
	return "Error: " + err.Error()
}
