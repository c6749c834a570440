package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"quizgem/config"
)

// ErrInvalidToken is returned when the provider rejects an access token.
var ErrInvalidToken = errors.New("identity provider rejected the access token")

// User is the profile returned by the provider for a valid access token.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		FullName string `json:"full_name"`
	} `json:"user_metadata"`
}

// Client talks to a Supabase-compatible auth API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.Supabase.URL, "/"),
		apiKey:     cfg.Supabase.Key,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// AuthorizeURL builds the provider consent page URL the client is redirected to.
func (c *Client) AuthorizeURL(redirectTo string) string {
	query := url.Values{}
	query.Set("provider", "google")
	query.Set("redirect_to", redirectTo)
	return c.baseURL + "/auth/v1/authorize?" + query.Encode()
}

// GetUser fetches the authenticated user for an externally-issued access token.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity provider request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrInvalidToken
	default:
		return nil, fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode identity provider response: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("identity provider returned an empty subject id")
	}
	return &user, nil
}

// SignOut revokes the provider session. A rejected token is not an error here;
// the session is gone either way.
func (c *Client) SignOut(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/v1/logout", nil)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider sign-out failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}
	return nil
}
