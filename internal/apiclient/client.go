package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/HillaryNyakundi/ecommerce-frontend/internal/logging"
)

const RefreshPath = "/auth/refresh"

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
	onExpired  func(ctx context.Context)
	middleware []Middleware

	raw  Doer
	doer Doer
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds every call. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithSessionExpired registers the hook run when the session cannot be
// recovered, the place a UI sends the user back to sign-in.
func WithSessionExpired(fn func(ctx context.Context)) Option {
	return func(c *Client) { c.onExpired = fn }
}

// WithMiddleware wraps the transport below the refresh decorator, so it sees
// every attempt including the retried one.
func WithMiddleware(mw ...Middleware) Option {
	return func(c *Client) { c.middleware = append(c.middleware, mw...) }
}

func New(baseURL string, store TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		tokens: store,
	}
	for _, opt := range opts {
		opt(c)
	}

	var d Doer = &transport{baseURL: c.baseURL, httpClient: c.httpClient, tokens: store}
	for i := len(c.middleware) - 1; i >= 0; i-- {
		d = c.middleware[i](d)
	}
	c.raw = d
	c.doer = WithRefresh(store, c.Refresh, c.onExpired)(d)
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) Tokens() TokenStore { return c.tokens }

// Do sends r through the refresh decorator and decodes a 2xx JSON body into
// out when out is non-nil.
func (c *Client) Do(ctx context.Context, r *Request, out any) error {
	resp, err := c.doer.Do(ctx, r)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

// DoRaw is Do without JSON decoding.
func (c *Client) DoRaw(ctx context.Context, r *Request) (*Response, error) {
	resp, err := c.doer.Do(ctx, r)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp)
	}
	return resp, nil
}

// Refresh exchanges a refresh token for a new access token. It bypasses the
// refresh decorator and sends no bearer token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (Tokens, error) {
	resp, err := c.raw.Do(ctx, &Request{
		Method:   http.MethodPost,
		Path:     RefreshPath,
		Header:   http.Header{"refresh-token": []string{refreshToken}},
		SkipAuth: true,
	})
	if err != nil {
		return Tokens{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return Tokens{}, newAPIError(resp)
	}
	return DecodeTokens(resp.Body)
}

func decode(resp *Response, out any) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp)
	}
	if out == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// DecodeTokens accepts the token shapes the auth endpoints answer with: a bare
// string, a JSON string, or an object with access_token and refresh_token.
func DecodeTokens(body []byte) (Tokens, error) {
	b := bytes.TrimSpace(body)
	if len(b) == 0 {
		return Tokens{}, errors.New("empty token response")
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return Tokens{}, fmt.Errorf("decode token: %w", err)
		}
		if s == "" {
			return Tokens{}, errors.New("empty token response")
		}
		return Tokens{Access: s}, nil
	case '{':
		var obj struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return Tokens{}, fmt.Errorf("decode token: %w", err)
		}
		if obj.AccessToken == "" {
			return Tokens{}, errors.New("token response without access_token")
		}
		return Tokens{Access: obj.AccessToken, Refresh: obj.RefreshToken}, nil
	}
	return Tokens{Access: string(b)}, nil
}

// Logger logs every attempt at debug level, failures at warn.
func Logger() Middleware {
	return func(next Doer) Doer {
		return DoerFunc(func(ctx context.Context, r *Request) (*Response, error) {
			l := logging.FromContext(ctx).With("method", r.Method, "path", r.Path, "retry", Retried(ctx))
			start := time.Now()
			resp, err := next.Do(ctx, r)
			dur := time.Since(start).Milliseconds()
			switch {
			case err != nil:
				l.Warn("api_call_failed", "duration_ms", dur, "error", err)
			case resp.StatusCode >= 400:
				l.Warn("api_call_completed", "status", resp.StatusCode, "duration_ms", dur)
			default:
				l.Debug("api_call_completed", "status", resp.StatusCode, "duration_ms", dur)
			}
			return resp, err
		})
	}
}
