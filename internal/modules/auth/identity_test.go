package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizeURL(t *testing.T) {
	c := NewClient("client-id", "secret", "https://gitlab.example/oauth", "https://gitlab.example/api/v4", "https://snapwall.example")

	raw := c.AuthorizeURL("state-token")
	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "/oauth/authorize", parsed.Path)
	q := parsed.Query()
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "https://snapwall.example/oauth/code", q.Get("redirect_uri"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "state-token", q.Get("state"))
}

func TestExchangeCode_Success(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "the-code", r.PostForm.Get("code"))
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "client-id", r.PostForm.Get("client_id"))
		assert.Equal(t, "secret", r.PostForm.Get("client_secret"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-123"}`))
	}))
	defer provider.Close()

	c := NewClient("client-id", "secret", provider.URL, provider.URL, "https://snapwall.example")
	token, err := c.ExchangeCode(context.Background(), "the-code")

	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
}

func TestExchangeCode_MissingToken(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer provider.Close()

	c := NewClient("client-id", "secret", provider.URL, provider.URL, "https://snapwall.example")
	_, err := c.ExchangeCode(context.Background(), "bad-code")
	assert.ErrorIs(t, err, ErrIdentityTokenMissing)
}

func TestExchangeCode_UnparsableResponse(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer provider.Close()

	c := NewClient("client-id", "secret", provider.URL, provider.URL, "https://snapwall.example")
	_, err := c.ExchangeCode(context.Background(), "the-code")
	assert.ErrorIs(t, err, ErrUnableToParseResponse)
}

func TestExchangeCode_ProviderDown(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	provider.Close()

	c := NewClient("client-id", "secret", provider.URL, provider.URL, "https://snapwall.example")
	_, err := c.ExchangeCode(context.Background(), "the-code")
	assert.ErrorIs(t, err, ErrProviderUnreachable)
}

func TestResolveUser_Success(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/user", r.URL.Path)
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":7,"username":"jdoe","name":"J. Doe","avatar_url":"https://img.example/a.png"}`))
	}))
	defer provider.Close()

	c := NewClient("client-id", "secret", provider.URL, provider.URL, "https://snapwall.example")
	user, err := c.ResolveUser(context.Background(), "tok-123")

	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "jdoe", user.Username)
	assert.Equal(t, "J. Doe", user.Name)
}

func TestResolveUser_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"bad token", http.StatusUnauthorized, `{}`, ErrUnauthorized},
		{"provider error", http.StatusInternalServerError, `{}`, ErrIdentityLookupFailed},
		{"garbage body", http.StatusOK, `<oops>`, ErrUnableToParseResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer provider.Close()

			c := NewClient("client-id", "secret", provider.URL, provider.URL, "https://snapwall.example")
			_, err := c.ResolveUser(context.Background(), "whatever")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestResolveUser_EmptyToken(t *testing.T) {
	c := NewClient("client-id", "secret", "http://unused", "http://unused", "https://snapwall.example")
	_, err := c.ResolveUser(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
