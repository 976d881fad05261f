// Package authapi is the client for the external authentication
// backend. Login is the one operation in the system whose errors are
// surfaced to the caller rather than absorbed.
package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// AuthError is a user-displayable login failure.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error %d: %s", e.StatusCode, e.Message)
}

// Client talks to the authentication backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates an authentication backend client.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the backend's successful login payload. Roles and
// identity fields may also arrive embedded in the token; the token is
// the authoritative source for claims.
type LoginResponse struct {
	Username  string   `json:"username"`
	Token     string   `json:"token"`
	Roles     []string `json:"roles,omitempty"`
	Email     string   `json:"email,omitempty"`
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
}

// Login exchanges credentials for a bearer token. Credential and
// transport failures both come back as *AuthError so the caller has
// one displayable message to show.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("marshal login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &AuthError{Message: "authentication service unreachable"}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read login response: %w", err)
	}

	if resp.StatusCode >= 400 {
		c.log.Warn("login rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("username", username),
		)
		return nil, &AuthError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(respBody, resp.StatusCode),
		}
	}

	var login LoginResponse
	if err := json.Unmarshal(respBody, &login); err != nil {
		return nil, fmt.Errorf("unmarshal login response: %w", err)
	}
	if login.Token == "" {
		return nil, &AuthError{
			StatusCode: resp.StatusCode,
			Message:    "login response missing token",
		}
	}

	return &login, nil
}

// errorMessage extracts a backend-supplied message, falling back to
// the HTTP status text.
func errorMessage(body []byte, status int) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return http.StatusText(status)
}
