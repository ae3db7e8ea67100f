// Package rest is the HTTP client for the RAG chat backend. A single Client
// implements the chat, auth, document and settings services.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/CoderFake/ragchat"
	"golang.org/x/time/rate"
)

// Interface compliance checks.
var (
	_ ragchat.ChatService     = (*Client)(nil)
	_ ragchat.AuthService     = (*Client)(nil)
	_ ragchat.DocumentService = (*Client)(nil)
	_ ragchat.SettingsService = (*Client)(nil)
)

// Client talks to the backend REST API. Credentials are read from and
// written to a ragchat.StateStore. A request rejected with 401 is retried
// once after refreshing the access token.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      ragchat.StateStore
	limiter    *rate.Limiter
	logger     *slog.Logger

	// refreshMu serialises token refreshes.
	refreshMu sync.Mutex
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithStateStore sets where tokens and the signed-in user are kept.
func WithStateStore(s ragchat.StateStore) Option {
	return func(c *Client) { c.store = s }
}

// WithLimiter throttles outgoing requests.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithLogger sets the logger for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a [Client] for the API rooted at baseURL, for example
// "http://localhost:6868/api". Without WithStateStore, credentials are kept
// in memory only.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(c)
	}
	if c.store == nil {
		c.store = newMemoryStore()
	}
	return c
}

// Health checks that the backend is reachable.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, request{method: http.MethodGet, path: "/health"}, nil)
}

// request describes one API call.
type request struct {
	method string
	path   string
	query  url.Values
	// body is JSON-encoded unless it is a *multipartBody.
	body any
	// auth attaches the bearer token and enables refresh on 401.
	auth bool
}

func (c *Client) do(ctx context.Context, req request, out any) error {
	payload, contentType, err := encodeBody(req.body)
	if err != nil {
		return err
	}

	var token string
	if req.auth {
		token = c.store.Get().AccessToken
	}
	resp, err := c.send(ctx, req, payload, contentType, token)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusUnauthorized && req.auth {
		resp.Body.Close()
		token, err = c.refresh(ctx, token)
		if err != nil {
			return err
		}
		resp, err = c.send(ctx, req, payload, contentType, token)
		if err != nil {
			return err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseHTTPError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.method, req.path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, req request, payload []byte, contentType, token string) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn("request failed", "method", req.method, "path", req.path, "error", err)
		return nil, fmt.Errorf("%s %s: %w", req.method, req.path, err)
	}
	c.logger.Debug("request", "method", req.method, "path", req.path,
		"status", resp.StatusCode, "duration", time.Since(start))
	return resp, nil
}

// refresh exchanges the stored refresh token for a new access token. failed
// is the token that was rejected; if another request has refreshed in the
// meantime the newer token is returned without a second refresh. Any
// failure signs the user out.
func (c *Client) refresh(ctx context.Context, failed string) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	st := c.store.Get()
	if st.AccessToken != "" && st.AccessToken != failed {
		return st.AccessToken, nil
	}
	if st.RefreshToken == "" {
		c.signOut()
		return "", fmt.Errorf("%w: %w", ragchat.ErrUnauthorized, ragchat.ErrNoRefreshToken)
	}

	tokens, err := c.Refresh(ctx, st.RefreshToken)
	if err == nil && tokens.Access == "" {
		err = errors.New("response has no access token")
	}
	if err != nil {
		c.signOut()
		return "", fmt.Errorf("%w: refresh token: %w", ragchat.ErrUnauthorized, err)
	}

	st = c.store.Get()
	st.AccessToken = tokens.Access
	if tokens.Refresh != "" {
		st.RefreshToken = tokens.Refresh
	}
	if err := c.store.Set(st); err != nil {
		return "", fmt.Errorf("store refreshed token: %w", err)
	}
	c.logger.Info("access token refreshed")
	return tokens.Access, nil
}

func (c *Client) signOut() {
	if err := c.store.Clear(); err != nil {
		c.logger.Error("clear credentials", "error", err)
	}
}

func encodeBody(body any) ([]byte, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case *multipartBody:
		return b.data, b.contentType, nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", fmt.Errorf("encode request: %w", err)
		}
		return data, "application/json", nil
	}
}

const maxErrorBody = 200

// parseHTTPError converts a non-2xx response into a *ragchat.APIError. The
// message comes from the first of the error, detail or message JSON fields,
// or the raw body when it is not JSON.
func parseHTTPError(resp *http.Response) error {
	apiErr := &ragchat.APIError{StatusCode: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return apiErr
	}
	var fields map[string]any
	if json.Unmarshal(body, &fields) == nil {
		for _, key := range []string{"error", "detail", "message"} {
			if s, ok := fields[key].(string); ok && s != "" {
				apiErr.Message = s
				return apiErr
			}
		}
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody] + "..."
	}
	apiErr.Message = msg
	return apiErr
}

// memoryStore is the StateStore used when none is configured.
type memoryStore struct {
	mu    sync.Mutex
	state ragchat.State
}

func newMemoryStore() *memoryStore {
	return &memoryStore{state: ragchat.DefaultState()}
}

func (s *memoryStore) Init() error { return nil }

func (s *memoryStore) Get() ragchat.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *memoryStore) Set(st ragchat.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
	return nil
}

func (s *memoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.SignedOut()
	return nil
}
