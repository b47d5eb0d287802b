package ruru

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"ruru-backoffice/internal/apperr"
	"ruru-backoffice/internal/domain"
	"ruru-backoffice/internal/logx"
)

// DefaultBaseURL is the production Ruru API root.
const DefaultBaseURL = "https://ruru-backend.onrender.com/api/v1"

const maxBodyBytes = 4 << 20

// Doer sends HTTP requests. *http.Client and RetryingDoer implement it.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// TokenSource yields the bearer token of the current admin session.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed bearer token.
type StaticToken string

// Token returns the token itself.
func (t StaticToken) Token() string { return string(t) }

// Client is a pre-configured client for the Ruru REST API.
type Client struct {
	base   *url.URL
	http   Doer
	logger logx.Logger
	token  TokenSource
}

// New creates a client rooted at baseURL. Empty baseURL selects DefaultBaseURL.
func New(baseURL string, doer Doer, logger logx.Logger) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("ruru client: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("ruru client: base url %q must be absolute", baseURL)
	}
	if doer == nil {
		doer = http.DefaultClient
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Client{base: u, http: doer, logger: logger}, nil
}

// As returns a copy of the client that authorizes every request with ts.
func (c *Client) As(ts TokenSource) *Client {
	cp := *c
	cp.token = ts
	return &cp
}

type envelope struct {
	Success    *bool              `json:"success"`
	Message    string             `json:"message"`
	Data       json.RawMessage    `json:"data"`
	Pagination *domain.Pagination `json:"pagination"`
}

// hasData reports whether the envelope carried a non-null data member.
func (e envelope) hasData() bool {
	d := bytes.TrimSpace(e.Data)
	return len(d) > 0 && !bytes.Equal(d, []byte("null"))
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
}

func jsonRequest(method, path string, payload any) (request, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return request{}, fmt.Errorf("encode %s body: %w", path, err)
	}
	return request{method: method, path: path, body: bytes.NewReader(b), contentType: "application/json"}, nil
}

// do sends r and decodes the response envelope. The raw body is returned too,
// for endpoints that answer outside the envelope.
func (c *Client) do(ctx context.Context, r request) (envelope, []byte, error) {
	u := *c.base
	u.Path = c.base.Path + r.path
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), r.body)
	if err != nil {
		return envelope{}, nil, fmt.Errorf("ruru api: build %s %s: %w", r.method, r.path, err)
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if c.token != nil {
		if tok := c.token.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return envelope{}, nil, fmt.Errorf("ruru api %s %s: %w", r.method, r.path, ctxErr)
		}
		return envelope{}, nil, fmt.Errorf("ruru api %s %s: %w: %w", r.method, r.path, apperr.Transport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return envelope{}, nil, fmt.Errorf("ruru api %s %s: read body: %w: %w", r.method, r.path, apperr.Transport, err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("ruru api non-2xx",
			logx.String("method", r.method),
			logx.String("path", r.path),
			logx.Int("status", resp.StatusCode),
			logx.String("message", env.Message),
		)
		return envelope{}, raw, &apperr.APIError{Status: resp.StatusCode, Message: env.Message}
	}
	if len(bytes.TrimSpace(raw)) > 0 && decodeErr != nil {
		return envelope{}, raw, fmt.Errorf("ruru api %s %s: decode: %w: %w", r.method, r.path, apperr.Upstream, decodeErr)
	}
	if env.Success != nil && !*env.Success {
		return envelope{}, raw, &apperr.APIError{Status: resp.StatusCode, Message: env.Message}
	}
	return env, raw, nil
}

// decodeData unmarshals the envelope data into out.
func decodeData(env envelope, path string, out any) error {
	if !env.hasData() {
		return fmt.Errorf("ruru api %s: empty data: %w", path, apperr.Upstream)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("ruru api %s: decode data: %w: %w", path, apperr.Upstream, err)
	}
	return nil
}
