// Package auth is a Go client for the auth API with observable session state.
// Actions never return errors: failures are reported in a Result.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"userhub/internal/api"
	platformhttp "userhub/internal/platform/http"
)

const (
	defaultTimeout = 10 * time.Second
	signInRoute    = "/sign-in"
)

// Result is the outcome of a client action. Error is empty on success.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func ok() Result { return Result{Success: true} }

// fail reports the server's message for API errors and the error text for
// anything else, such as transport failures. fallback covers empty messages.
func fail(err error, fallback string) Result {
	msg := fallback
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		if apiErr.Message != "" {
			msg = apiErr.Message
		}
	case err != nil && err.Error() != "":
		msg = err.Error()
	}
	return Result{Success: false, Error: msg}
}

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// State is a snapshot of the client's session state.
type State struct {
	User            *api.User
	IsAuthenticated bool
}

// Navigator performs client-side navigation.
type Navigator interface {
	Navigate(ctx context.Context, path string) error
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, path string) error

// Navigate calls f.
func (f NavigatorFunc) Navigate(ctx context.Context, path string) error { return f(ctx, path) }

// Client talks to the auth and user API and keeps the current session state.
type Client struct {
	baseURL string
	http    *http.Client
	nav     Navigator

	mu      sync.RWMutex
	user    *api.User
	session *api.Session
	subs    map[int]func(State)
	nextSub int
}

// New creates a Client for the server at baseURL. nav may be nil.
func New(baseURL string, nav Navigator) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    platformhttp.NewHTTPClient(defaultTimeout, jar),
		nav:     nav,
		subs:    make(map[int]func(State)),
	}, nil
}

// User returns the signed-in user, or nil.
func (c *Client) User() *api.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user
}

// IsAuthenticated reports whether the client holds a session.
func (c *Client) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session != nil
}

// State returns a snapshot of the session state.
func (c *Client) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return State{User: c.user, IsAuthenticated: c.session != nil}
}

// Subscribe registers fn to be called after every state change and returns a
// function that removes it.
func (c *Client) Subscribe(fn func(State)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *Client) setState(user *api.User, session *api.Session) {
	c.mu.Lock()
	c.user = user
	c.session = session
	st := State{User: user, IsAuthenticated: session != nil}
	subs := make([]func(State), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(st)
	}
}

// Login signs in with email and password.
func (c *Client) Login(ctx context.Context, email, password string) Result {
	var out api.SessionResponse
	req := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/sign-in/email", req, &out); err != nil {
		return fail(err, "Failed to sign in")
	}
	c.setState(&out.User, &out.Session)
	return ok()
}

// Register creates an account and signs in.
func (c *Client) Register(ctx context.Context, name, email, password string) Result {
	var out api.SessionResponse
	req := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/sign-up/email", req, &out); err != nil {
		return fail(err, "Failed to create account")
	}
	c.setState(&out.User, &out.Session)
	return ok()
}

// Logout signs out and navigates to the sign-in page.
func (c *Client) Logout(ctx context.Context) Result {
	if err := c.do(ctx, http.MethodPost, "/api/auth/sign-out", nil, nil); err != nil {
		return fail(err, "Failed to sign out")
	}
	c.setState(nil, nil)
	if c.nav != nil {
		if err := c.nav.Navigate(ctx, signInRoute); err != nil {
			return fail(err, "Failed to sign out")
		}
	}
	return ok()
}

// Refresh reloads the session state from the server.
func (c *Client) Refresh(ctx context.Context) Result {
	var out *api.SessionResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/get-session", nil, &out); err != nil {
		return fail(err, "Failed to load session")
	}
	if out == nil {
		c.setState(nil, nil)
		return ok()
	}
	c.setState(&out.User, &out.Session)
	return ok()
}

// UpdateProfile changes the name and/or image of the signed-in user.
// Empty arguments are left unchanged.
func (c *Client) UpdateProfile(ctx context.Context, name, image string) Result {
	var out api.ProfileResponse
	req := api.UpdateProfileRequest{Name: name, Image: image}
	if err := c.do(ctx, http.MethodPatch, "/api/user/update", req, &out); err != nil {
		return fail(err, "Failed to update profile")
	}
	c.mu.RLock()
	session := c.session
	c.mu.RUnlock()
	c.setState(&out.User, session)
	return ok()
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e api.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
