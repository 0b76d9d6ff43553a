package graph

// Package graph implements ports.DirectoryClient against the Microsoft Graph REST API.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmespath-community/go-jmespath"
	domainauth "github.com/target/dirsearch/internal/domain/auth"
	"github.com/target/dirsearch/internal/domain/directory"
	apperrors "github.com/target/dirsearch/internal/errors"
	"github.com/target/dirsearch/internal/ports"
	"golang.org/x/net/http/httpproxy"
)

// DefaultBaseURL is the Graph v1.0 root.
const DefaultBaseURL = "https://graph.microsoft.com/v1.0"

const (
	principalSelect = "id,displayName,givenName,surname,jobTitle,mail,mobilePhone,businessPhones,officeLocation,userPrincipalName"
	deviceSelect    = "id,deviceName,model,manufacturer,serialNumber,operatingSystem,userId,userPrincipalName,lastSyncDateTime"

	// maxErrorBody bounds how much of a failed response is read for diagnostics.
	maxErrorBody = 64 << 10
)

// Config configures the Graph client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// MaxPages caps how many @odata.nextLink pages are followed per lookup.
	MaxPages   int
	UserAgent  string
	HTTPClient *http.Client // Optional; built from Timeout with environment proxy settings
	Logger     *slog.Logger
}

// Client is a DirectoryClient over HTTPS.
type Client struct {
	base      *url.URL
	http      *http.Client
	maxPages  int
	userAgent string
	logger    *slog.Logger
}

var _ ports.DirectoryClient = (*Client)(nil)

// NewClient validates cfg and builds a Client.
func NewClient(cfg Config) (*Client, error) {
	raw := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if base.Scheme != "https" && base.Scheme != "http" {
		return nil, fmt.Errorf("base URL must be http(s): %q", raw)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout, Transport: newTransport()}
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = 1
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = "dirsearch"
	}
	return &Client{base: base, http: httpClient, maxPages: maxPages, userAgent: ua, logger: logger}, nil
}

// newTransport clones the default transport and resolves proxies from
// HTTPS_PROXY/HTTP_PROXY/NO_PROXY once at construction.
func newTransport() *http.Transport {
	proxy := httpproxy.FromEnvironment().ProxyFunc()
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.Proxy = func(req *http.Request) (*url.URL, error) { return proxy(req.URL) }
	return t
}

func (c *Client) GetCallerProfile(ctx context.Context, tok domainauth.Token) (directory.Record, error) {
	body, err := c.get(ctx, tok, c.endpoint("/me", "$select="+principalSelect))
	if err != nil {
		return directory.Record{}, err
	}
	return recordFrom(directory.KindPrincipal, body)
}

func (c *Client) SearchPrincipals(ctx context.Context, tok domainauth.Token, filter directory.Filter) ([]directory.Record, error) {
	return c.list(ctx, tok, directory.KindPrincipal, c.endpoint("/users", filterQuery(filter, principalSelect)))
}

func (c *Client) SearchDevices(ctx context.Context, tok domainauth.Token, filter directory.Filter) ([]directory.Record, error) {
	return c.list(ctx, tok, directory.KindDevice, c.endpoint("/deviceManagement/managedDevices", filterQuery(filter, deviceSelect)))
}

func (c *Client) GetPrincipalByID(ctx context.Context, tok domainauth.Token, id string) (directory.Record, error) {
	if id == "" {
		return directory.Record{}, apperrors.InvalidInput("user id is required")
	}
	body, err := c.get(ctx, tok, c.endpoint("/users/"+url.PathEscape(id), "$select="+principalSelect))
	if err != nil {
		return directory.Record{}, err
	}
	return recordFrom(directory.KindPrincipal, body)
}

func (c *Client) GetDevicesByOwner(ctx context.Context, tok domainauth.Token, ownerID string) ([]directory.Record, error) {
	if ownerID == "" {
		return nil, apperrors.InvalidInput("owner id is required")
	}
	return c.list(ctx, tok, directory.KindDevice, c.endpoint("/users/"+url.PathEscape(ownerID)+"/managedDevices", "$select="+deviceSelect))
}

// filterQuery renders $filter and $select. The filter already carries its
// literals percent-encoded, so only the spaces between terms are encoded here.
func filterQuery(filter directory.Filter, sel string) string {
	return "$filter=" + strings.ReplaceAll(string(filter), " ", "%20") + "&$select=" + sel
}

// endpoint joins an already-escaped path onto the base URL.
func (c *Client) endpoint(escapedPath, rawQuery string) string {
	u := *c.base
	p := strings.TrimSuffix(u.EscapedPath(), "/") + escapedPath
	if unescaped, err := url.PathUnescape(p); err == nil {
		u.Path = unescaped
	}
	u.RawPath = p
	u.RawQuery = rawQuery
	return u.String()
}

// list follows @odata.nextLink up to maxPages and returns every "value" entry.
func (c *Client) list(ctx context.Context, tok domainauth.Token, kind directory.Kind, next string) ([]directory.Record, error) {
	var out []directory.Record
	for page := 0; next != "" && page < c.maxPages; page++ {
		body, err := c.get(ctx, tok, next)
		if err != nil {
			return nil, err
		}
		values, err := jmespath.Search("value", body)
		if err != nil {
			return nil, apperrors.Lookup("decode response", "malformed response", err)
		}
		items, _ := values.([]any)
		for _, item := range items {
			rec, err := recordFrom(kind, item)
			if err != nil {
				return nil, err
			}
			out = append(out, rec)
		}
		next = c.nextLink(body)
	}
	return out, nil
}

// nextLink returns the continuation URL when it points at the configured host.
func (c *Client) nextLink(body any) string {
	v, err := jmespath.Search(`"@odata.nextLink"`, body)
	if err != nil {
		return ""
	}
	link, _ := v.(string)
	if link == "" {
		return ""
	}
	u, err := url.Parse(link)
	if err != nil || u.Scheme != c.base.Scheme || u.Host != c.base.Host {
		c.logger.Warn("ignoring foreign nextLink", "link", link)
		return ""
	}
	return link
}

func (c *Client) get(ctx context.Context, tok domainauth.Token, target string) (any, error) {
	if tok.Value == "" {
		return nil, apperrors.NotAuthenticated("missing access token")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+tok.Value)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("client-request-id", requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, context.Cause(ctx)
		}
		return nil, apperrors.Lookup("request failed", "network error", err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "graph request",
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"client_request_id", requestID,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, responseError(resp, requestID)
	}

	var body any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, apperrors.Lookup("decode response", "malformed response", err)
	}
	return body, nil
}

// responseError maps a non-2xx response to an AppError whose Reason is the
// HTTP reason phrase.
func responseError(resp *http.Response, requestID string) error {
	reason := http.StatusText(resp.StatusCode)
	if reason == "" {
		reason = resp.Status
	}
	message := reason
	if raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody)); err == nil && len(raw) > 0 {
		var body any
		if json.Unmarshal(raw, &body) == nil {
			if v, err := jmespath.Search("error.message", body); err == nil {
				if s, ok := v.(string); ok && s != "" {
					message = s
				}
			}
		}
	}
	cause := fmt.Errorf("graph %s: status %d (client-request-id %s)", resp.Request.URL.Path, resp.StatusCode, requestID)

	if resp.StatusCode == http.StatusNotFound {
		e := apperrors.Wrap(cause, apperrors.ErrCodeNotFound, message)
		e.Reason = reason
		return e
	}
	return apperrors.Lookup(message, reason, cause)
}

// recordFrom tags a decoded JSON object as kind.
func recordFrom(kind directory.Kind, v any) (directory.Record, error) {
	fields, ok := v.(map[string]any)
	if !ok {
		return directory.Record{}, apperrors.Lookup("decode response", "malformed response",
			errors.New("expected a JSON object"))
	}
	delete(fields, "@odata.context")
	if kind == directory.KindDevice {
		return directory.NewDevice(fields), nil
	}
	return directory.NewPrincipal(fields), nil
}
