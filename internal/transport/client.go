// Package transport is the single configurable HTTP client for the
// Symptomfy API. It attaches the stored access token to every outgoing
// request and, on an authorization failure, performs exactly one
// refresh-and-retry cycle before declaring the session expired.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/singleflight"

	apperrors "github.com/3ricLu/Symptomfy-sub001/pkg/errors"
)

// ErrSessionExpired is returned when the session cannot be recovered by a
// token refresh. The caller should send the user back to the login screen.
var ErrSessionExpired = errors.New("session expired")

var tokenRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "symptomfy_token_refresh_total",
		Help: "Total number of access token refresh attempts by outcome",
	},
	[]string{"outcome"},
)

// Config holds HTTP client configuration.
type Config struct {
	Timeout         time.Duration
	MaxRetries      int
	RetryWaitMin    time.Duration
	RetryWaitMax    time.Duration
	MaxConnsPerHost int
}

// DefaultConfig returns sensible defaults for the API client.
func DefaultConfig() Config {
	return Config{
		Timeout:         30 * time.Second,
		MaxRetries:      3,
		RetryWaitMin:    time.Second,
		RetryWaitMax:    5 * time.Second,
		MaxConnsPerHost: 100,
	}
}

// TokenStore is the slice of the session store the client needs: reading the
// current credentials, replacing them after a refresh, and clearing them when
// the session dies.
type TokenStore interface {
	AccessToken() (string, bool)
	RefreshToken() (string, bool)
	SetAccessToken(token string)
	SetRefreshToken(token string)
	Clear()
}

// RefreshFunc exchanges a refresh token for a new credential pair. The
// returned refresh token may be empty when the backend does not rotate it.
type RefreshFunc func(ctx context.Context, refreshToken string) (access, refresh string, err error)

// Option configures a Client.
type Option func(*Client)

// WithRefresh sets the function used to mint a new access token on 401.
// Without it, a 401 is terminal immediately.
func WithRefresh(fn RefreshFunc) Option {
	return func(c *Client) { c.refresh = fn }
}

// WithOnAuthRefreshed registers a hook invoked after a successful refresh,
// once per refresh call (not per waiting request).
func WithOnAuthRefreshed(fn func()) Option {
	return func(c *Client) { c.onRefreshed = fn }
}

// WithOnSessionExpired registers a hook invoked when the session is declared
// dead: no refresh token, refresh rejected, or the refreshed token bounced.
func WithOnSessionExpired(fn func()) Option {
	return func(c *Client) { c.onExpired = fn }
}

// WithLogger sets the client logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// Client wraps http.Client with retry logic, bearer attachment, and the
// 401 refresh-and-retry cycle. Concurrent requests that fail with 401 at the
// same time share a single in-flight refresh call.
type Client struct {
	httpClient  *http.Client
	config      Config
	tokens      TokenStore
	refresh     RefreshFunc
	onRefreshed func()
	onExpired   func()
	logger      *slog.Logger
	group       singleflight.Group
}

// New creates an authenticated API client over the given token store.
func New(cfg Config, tokens TokenStore, opts ...Option) *Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   cfg.MaxConnsPerHost,
		MaxConnsPerHost:       cfg.MaxConnsPerHost,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	c := &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		config: cfg,
		tokens: tokens,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Do executes an HTTP request with the access token attached. On a 401
// response it refreshes the token once and replays the request with the new
// credential; a second 401 in the same cycle is terminal. Requests with a
// body must have GetBody set (http.NewRequest does this for common reader
// types) so the replay can rewind it.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if tok, ok := c.tokens.AccessToken(); ok && tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	drain(resp)

	access, err := c.refreshAccessToken(ctx)
	if err != nil {
		c.expireSession(ctx)
		return nil, fmt.Errorf("refresh after 401: %w", errors.Join(err, ErrSessionExpired))
	}

	retry, err := rewind(req)
	if err != nil {
		return nil, fmt.Errorf("replay request: %w", err)
	}
	retry.Header.Set("Authorization", "Bearer "+access)

	resp, err = c.send(ctx, retry)
	if err != nil {
		return nil, err
	}

	// The refreshed token was itself rejected. Terminal: one retry per
	// request, never a loop.
	if resp.StatusCode == http.StatusUnauthorized {
		drain(resp)
		c.expireSession(ctx)
		return nil, fmt.Errorf("retried request rejected: %w", ErrSessionExpired)
	}

	return resp, nil
}

// Get performs an authenticated GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create GET request: %w", err)
	}
	return c.Do(ctx, req)
}

// Post performs an authenticated POST request.
func (c *Client) Post(ctx context.Context, url string, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("create POST request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	return c.Do(ctx, req)
}

// send executes the request with retry on network errors and 5xx responses.
func (c *Client) send(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)

	var resp *http.Response
	var err error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			wait := c.config.RetryWaitMin * time.Duration(1<<uint(attempt-1))
			if wait > c.config.RetryWaitMax {
				wait = c.config.RetryWaitMax
			}

			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}

			// The previous attempt consumed the body.
			if req, err = rewind(req); err != nil {
				return nil, err
			}
		}

		resp, err = c.httpClient.Do(req)
		if err != nil {
			if isRetryableError(err) && attempt < c.config.MaxRetries {
				continue
			}
			return nil, fmt.Errorf("http request failed after %d attempts: %w", attempt+1, err)
		}

		// Retry on 5xx errors (except 501 Not Implemented).
		if resp.StatusCode >= 500 && resp.StatusCode != 501 && attempt < c.config.MaxRetries {
			drain(resp)
			continue
		}

		return resp, nil
	}

	return resp, err
}

// refreshAccessToken performs the single-shot refresh. All concurrently
// failing requests share one in-flight call and its result.
func (c *Client) refreshAccessToken(ctx context.Context) (string, error) {
	v, err, _ := c.group.Do("refresh", func() (any, error) {
		if c.refresh == nil {
			return nil, apperrors.Unauthorized("no refresh configured")
		}

		refreshToken, ok := c.tokens.RefreshToken()
		if !ok || refreshToken == "" {
			return nil, apperrors.Unauthorized("no refresh token")
		}

		access, refresh, err := c.refresh(ctx, refreshToken)
		if err != nil {
			return nil, err
		}

		c.tokens.SetAccessToken(access)
		if refresh != "" {
			c.tokens.SetRefreshToken(refresh)
		}

		if c.onRefreshed != nil {
			c.onRefreshed()
		}

		c.logger.DebugContext(ctx, "access token refreshed")
		return access, nil
	})
	if err != nil {
		tokenRefreshTotal.WithLabelValues("failure").Inc()
		return "", err
	}

	tokenRefreshTotal.WithLabelValues("success").Inc()
	return v.(string), nil
}

// expireSession clears the stored credentials and notifies the owner that
// the user must log in again.
func (c *Client) expireSession(ctx context.Context) {
	c.tokens.Clear()
	if c.onExpired != nil {
		c.onExpired()
	}
	c.logger.InfoContext(ctx, "session expired, credentials cleared")
}

// rewind returns a request whose body is reset so it can be sent again.
// Bodyless requests are returned as-is.
func rewind(req *http.Request) (*http.Request, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return req, nil
	}
	if req.GetBody == nil {
		return nil, errors.New("request body cannot be replayed: GetBody is not set")
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("rewind request body: %w", err)
	}
	clone := req.Clone(req.Context())
	clone.Body = body
	return clone, nil
}

// drain discards and closes a response body so the connection can be reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
	_ = resp.Body.Close()
}

// isRetryableError determines if a transport-level error is retryable.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
