package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Request is a logical call against the backend. It is turned into a fresh
// *http.Request on every attempt so a retried call can resend its body.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Form   url.Values
	Header http.Header

	// SkipAuth leaves out the Authorization header.
	SkipAuth bool
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

type Doer interface {
	Do(ctx context.Context, r *Request) (*Response, error)
}

type DoerFunc func(ctx context.Context, r *Request) (*Response, error)

func (f DoerFunc) Do(ctx context.Context, r *Request) (*Response, error) { return f(ctx, r) }

type Middleware func(Doer) Doer

type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

type transport struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

func (t *transport) Do(ctx context.Context, r *Request) (*Response, error) {
	req, err := t.build(ctx, r)
	if err != nil {
		return nil, err
	}

	if !r.SkipAuth {
		token, err := t.tokens.AccessToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("read access token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

func (t *transport) build(ctx context.Context, r *Request) (*http.Request, error) {
	u := t.baseURL + "/" + strings.TrimLeft(r.Path, "/")
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case r.Form != nil:
		body = strings.NewReader(r.Form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case r.Body != nil:
		data, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, u, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	return req, nil
}
