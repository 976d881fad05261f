package authapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Login(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(http.MethodPost, r.Method)
		require.Equal("/auth/login", r.URL.Path)

		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		require.NoError(json.NewDecoder(r.Body).Decode(&req))
		assert.Equal("a@b.com", req.Username)
		assert.Equal("x", req.Password)

		json.NewEncoder(w).Encode(map[string]any{
			"username": "a@b.com",
			"token":    "h.p.s",
			"roles":    []string{"CLIENT"},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL)

	resp, err := c.Login(context.Background(), "a@b.com", "x")
	require.NoError(err)
	assert.Equal("a@b.com", resp.Username)
	assert.Equal("h.p.s", resp.Token)
	assert.Equal([]string{"CLIENT"}, resp.Roles)
}

func Test_Login_badCredentials(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid username or password"})
	}))
	defer server.Close()

	c := NewClient(server.URL)

	_, err := c.Login(context.Background(), "a@b.com", "wrong")
	require.Error(err)

	var authErr *AuthError
	require.ErrorAs(err, &authErr)
	assert.Equal(http.StatusUnauthorized, authErr.StatusCode)
	assert.Equal("invalid username or password", authErr.Message)
}

func Test_Login_unreachableBackend(t *testing.T) {
	require := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // connection refused from here on

	c := NewClient(server.URL)

	_, err := c.Login(context.Background(), "a@b.com", "x")
	require.Error(err)

	var authErr *AuthError
	require.ErrorAs(err, &authErr)
	require.NotEmpty(authErr.Message)
}

func Test_Login_missingToken(t *testing.T) {
	require := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"username": "a@b.com"})
	}))
	defer server.Close()

	c := NewClient(server.URL)

	_, err := c.Login(context.Background(), "a@b.com", "x")
	require.Error(err)

	var authErr *AuthError
	require.ErrorAs(err, &authErr)
}
