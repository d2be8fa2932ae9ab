package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"snapwall/internal/domain"
)

// Client talks to the external OAuth identity provider: the authorize
// redirect, the code-for-token exchange and bearer-token profile lookup.
// The provider API is GitLab-shaped; any provider with the same three
// endpoints works.
type Client struct {
	httpClient   *http.Client
	clientID     string
	clientSecret string
	baseURL      string // hosts /authorize and /token
	apiURL       string // hosts /user
	selfBaseURL  string // our public base, used for redirect_uri
}

func NewClient(clientID, clientSecret, baseURL, apiURL, selfBaseURL string) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      baseURL,
		apiURL:       apiURL,
		selfBaseURL:  selfBaseURL,
	}
}

func (c *Client) redirectURI() string {
	return c.selfBaseURL + "/oauth/code"
}

// AuthorizeURL builds the provider authorize redirect for a state token.
func (c *Client) AuthorizeURL(state string) string {
	q := url.Values{}
	q.Set("client_id", c.clientID)
	q.Set("redirect_uri", c.redirectURI())
	q.Set("response_type", "code")
	q.Set("state", state)
	return c.baseURL + "/authorize?" + q.Encode()
}

// ExchangeCode swaps an authorization code for an access token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("code", code)
	form.Set("grant_type", "authorization_code")
	form.Set("redirect_uri", c.redirectURI())
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", ErrProviderUnreachable
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", ErrProviderUnreachable
	}
	defer resp.Body.Close()

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", ErrUnableToParseResponse
	}
	if body.AccessToken == "" {
		return "", ErrIdentityTokenMissing
	}
	return body.AccessToken, nil
}

// ResolveUser fetches the profile behind a bearer token. It implements
// middleware.IdentityResolver.
func (c *Client) ResolveUser(ctx context.Context, token string) (domain.User, error) {
	if token == "" {
		return domain.User{}, ErrUnauthorized
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/user", nil)
	if err != nil {
		return domain.User{}, ErrProviderUnreachable
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.User{}, ErrProviderUnreachable
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return domain.User{}, ErrUnauthorized
	default:
		return domain.User{}, ErrIdentityLookupFailed
	}

	var user domain.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return domain.User{}, ErrUnableToParseResponse
	}
	return user, nil
}
