package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"
)

// User is the public user record as returned by the server.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
	AvatarPath  string `json:"avatar"`
	GoogleID    string `json:"googleId,omitempty"`
}

// AuthResponse is the success body of the authentication endpoints.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// APIError is a non-2xx response from the server. Fields is populated for
// per-field validation errors, Message otherwise.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for field, msg := range e.Fields {
			parts = append(parts, field+": "+msg)
		}
		return fmt.Sprintf("api error (%d): %s", e.Status, strings.Join(parts, "; "))
	}
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

// Client talks to the authentication API. It restores a stored session at
// construction and attaches the bearer token to every request while a
// session is held.
type Client struct {
	baseURL  string
	http     *http.Client
	sessions *SessionStore
}

// New builds a client for the server at baseURL, persisting session state
// at sessionPath.
func New(baseURL, sessionPath string) (*Client, error) {
	store, err := NewSessionStore(sessionPath)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 30 * time.Second},
		sessions: store,
	}, nil
}

// Session returns the current session, or nil when logged out.
func (c *Client) Session() *Session { return c.sessions.Current() }

// Logout clears the stored session. Outstanding requests are not cancelled.
func (c *Client) Logout() error { return c.sessions.Clear() }

// RegisterInput is the multipart payload for registration. Avatar and
// AvatarName are optional.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
	Avatar      io.Reader
	AvatarName  string
}

// Register creates an account and stores the returned session.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*AuthResponse, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("email", in.Email); err != nil {
		return nil, fmt.Errorf("encode form: %w", err)
	}
	if err := w.WriteField("password", in.Password); err != nil {
		return nil, fmt.Errorf("encode form: %w", err)
	}
	if in.DisplayName != "" {
		if err := w.WriteField("displayName", in.DisplayName); err != nil {
			return nil, fmt.Errorf("encode form: %w", err)
		}
	}
	if in.Avatar != nil {
		name := in.AvatarName
		if name == "" {
			name = "avatar.jpg"
		}
		fw, err := w.CreateFormFile("avatar", filepath.Base(name))
		if err != nil {
			return nil, fmt.Errorf("encode avatar: %w", err)
		}
		if _, err := io.Copy(fw, in.Avatar); err != nil {
			return nil, fmt.Errorf("encode avatar: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("encode form: %w", err)
	}

	return c.authRequest(ctx, "/user", &buf, w.FormDataContentType())
}

// Login authenticates with email and password and stores the session.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return c.authRequest(ctx, "/user/auth", bytes.NewReader(body), "application/json")
}

// GoogleLogin signs in with a Google ID-token credential and stores the
// session.
func (c *Client) GoogleLogin(ctx context.Context, credential string) (*AuthResponse, error) {
	body, err := json.Marshal(map[string]string{"credential": credential})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return c.authRequest(ctx, "/user/google", bytes.NewReader(body), "application/json")
}

// Me fetches the authenticated user's record.
func (c *Client) Me(ctx context.Context) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/user/me", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	var resp struct {
		User User `json:"user"`
	}
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *Client) authRequest(ctx context.Context, path string, body io.Reader, contentType string) (*AuthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	var resp AuthResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}

	if _, err := c.sessions.Set(resp.Token); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return &resp, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	if token := c.sessions.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return parseAPIError(resp.StatusCode, data)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseAPIError(status int, data []byte) *APIError {
	apiErr := &APIError{Status: status}

	// The error body is either {"error": "message"} or {"error": {field: message}}.
	var withFields struct {
		Error map[string]string `json:"error"`
	}
	if err := json.Unmarshal(data, &withFields); err == nil && len(withFields.Error) > 0 {
		apiErr.Fields = withFields.Error
		return apiErr
	}

	var withMessage struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &withMessage); err == nil && withMessage.Error != "" {
		apiErr.Message = withMessage.Error
		return apiErr
	}

	apiErr.Message = http.StatusText(status)
	return apiErr
}
