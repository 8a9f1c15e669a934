// Package remote is the network side of the dual-store pair: a bearer-token
// HTTP client for the StoryKeeper backend. Every call can fail with a
// connectivity or server error; callers (repositories, the sync service)
// decide whether to absorb or propagate that failure.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/storykeeper/internal/api"
	"github.com/dmitrijs2005/storykeeper/internal/common"
)

const defaultTimeout = 15 * time.Second

// Client talks to one StoryKeeper backend on behalf of one account.
type Client struct {
	baseURL string
	http    *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

// NewClient returns a client for the backend at baseURL, e.g.
// "http://127.0.0.1:8080".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// Register creates an account. The session stays unauthenticated; call
// Login afterwards.
func (c *Client) Register(ctx context.Context, login, password string) error {
	req := api.RegisterRequest{Login: login, Password: password}
	return c.do(ctx, http.MethodPost, "/api/auth/register", nil, req, nil)
}

// Login exchanges credentials for a token pair and stores it for subsequent
// calls.
func (c *Client) Login(ctx context.Context, login, password string) error {
	req := api.LoginRequest{Login: login, Password: password}
	var resp api.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, req, &resp); err != nil {
		return err
	}
	c.setTokens(resp.AccessToken, resp.RefreshToken)
	return nil
}

// Refresh rotates the stored token pair.
func (c *Client) Refresh(ctx context.Context) error {
	c.mu.Lock()
	rt := c.refreshToken
	c.mu.Unlock()
	if rt == "" {
		return common.ErrorUnauthorized
	}

	var resp api.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/refresh", nil, api.RefreshRequest{RefreshToken: rt}, &resp); err != nil {
		return err
	}
	c.setTokens(resp.AccessToken, resp.RefreshToken)
	return nil
}

// Ping probes backend reachability; used by the online-status watcher.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil, nil)
}

// Authenticated reports whether a token pair is held.
func (c *Client) Authenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken != ""
}

// Logout discards the held token pair. Subsequent authenticated calls fail
// until the next Login.
func (c *Client) Logout() {
	c.setTokens("", "")
}

func (c *Client) setTokens(access, refresh string) {
	c.mu.Lock()
	c.accessToken = access
	c.refreshToken = refresh
	c.mu.Unlock()
}

// do executes one JSON request. A 401 "token expired" reply triggers a
// single refresh-and-retry, mirroring how interactive sessions outlive the
// access token lifetime.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	err := c.doOnce(ctx, method, path, query, body, out)
	if err == nil {
		return nil
	}

	var se *serverError
	if !errors.As(err, &se) || se.status != http.StatusUnauthorized || se.code != common.ErrTokenExpired.Error() {
		return err
	}

	c.mu.Lock()
	hasRefresh := c.refreshToken != ""
	c.mu.Unlock()
	if !hasRefresh {
		return err
	}
	if err := c.Refresh(ctx); err != nil {
		return err
	}
	return c.doOnce(ctx, method, path, query, body, out)
}

func (c *Client) doOnce(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.mu.Lock()
	if c.accessToken != "" {
		req.Header.Set(common.AuthHeaderName, common.AuthSchemePrefix+c.accessToken)
	}
	c.mu.Unlock()

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.mapError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	} else {
		_, _ = io.Copy(io.Discard, resp.Body)
	}
	return nil
}

// serverError keeps the backend's error envelope for status-based mapping.
type serverError struct {
	status  int
	code    string
	message string
}

func (e *serverError) Error() string {
	if e.message != "" {
		return fmt.Sprintf("server: %s (%s)", e.message, e.code)
	}
	return fmt.Sprintf("server: status %d (%s)", e.status, e.code)
}

// mapError converts a non-2xx reply into a sentinel error where one
// applies, or a serverError otherwise.
func (c *Client) mapError(resp *http.Response) error {
	var envelope api.ErrorResponse
	body, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(body, &envelope)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return common.ErrorNotFound
	case http.StatusConflict:
		return common.ErrorAlreadyExists
	case http.StatusUnauthorized:
		if envelope.Error == common.ErrTokenExpired.Error() {
			return &serverError{status: resp.StatusCode, code: envelope.Error, message: envelope.Message}
		}
		return common.ErrorUnauthorized
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", common.ErrorValidation, envelope.Message)
	default:
		return &serverError{status: resp.StatusCode, code: envelope.Error, message: envelope.Message}
	}
}
