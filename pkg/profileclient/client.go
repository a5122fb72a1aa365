// Package profileclient is a small HTTP client for the volunteer profile API.
// It covers login plus fetching and updating the authenticated volunteer's
// profile, and is consumed by pkg/profileeditor to drive the edit workflow
// outside the browser (CLI tooling, integration tests).
package profileclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Volunteer is the identity portion of the profile payload.
type Volunteer struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	BirthDate   string `json:"birth_date"`
	Gender      string `json:"gender"`
	Description string `json:"description"`
}

// Profile is the full response shape of GET/PUT /volunteer/profile.
type Profile struct {
	Volunteer         Volunteer `json:"volunteer"`
	Skills            []string  `json:"skills"`
	CV                *string   `json:"cv"`
	Privacy           string    `json:"privacy"`
	UnavailableFields []string  `json:"unavailableFields"`
}

// FieldUnavailable reports whether the server declared the named field as
// unsupported by this deployment.
func (p *Profile) FieldUnavailable(field string) bool {
	for _, f := range p.UnavailableFields {
		if f == field {
			return true
		}
	}
	return false
}

// UpdateRequest is the body of PUT /volunteer/profile.
type UpdateRequest struct {
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	CV          *string  `json:"cv"`
	Privacy     string   `json:"privacy"`
}

// APIError is a non-2xx response from the server, carrying the error message
// from the JSON body when one was present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

// Client talks to the VolunteerHub profile API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sets the Bearer token used on authenticated calls. Login also
// stores the token it receives, so this is only needed when the token was
// obtained elsewhere.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a client for the API at baseURL (e.g. "https://api.volunteerhub.org").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login authenticates with email and password and stores the returned token
// for subsequent calls.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}

	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

// GetProfile fetches the authenticated volunteer's profile.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodGet, "/volunteer/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile saves the profile and returns the server-confirmed state.
func (c *Client) UpdateProfile(ctx context.Context, req UpdateRequest) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodPut, "/volunteer/profile", req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// do issues one JSON request and decodes the JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &errBody) == nil {
			apiErr.Message = errBody.Error
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
