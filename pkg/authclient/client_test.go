package authclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshTokens_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/refresh", r.URL.Path)

		rc, err := r.Cookie("refreshToken")
		require.NoError(t, err)
		assert.Equal(t, "r-old", rc.Value)

		_ = json.NewEncoder(w).Encode(RefreshResponse{
			AccessToken:  "a-new",
			RefreshToken: "r-new",
			AccessExp:    100,
			RefreshExp:   200,
			Role:         "user",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/")
	res, err := c.RefreshTokens(context.Background(), "r-old", "a-old")
	require.NoError(t, err)
	assert.Equal(t, "a-new", res.AccessToken)
	assert.Equal(t, "r-new", res.RefreshToken)
	assert.Equal(t, "user", res.Role)
}

func TestRefreshTokens_NonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).RefreshTokens(context.Background(), "r", "a")
	require.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "401")
}

func TestRefreshTokens_ServerErrorIsNotRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).RefreshTokens(context.Background(), "r", "a")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRejected)
}

func TestRefreshTokens_EmptyBodyFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).RefreshTokens(context.Background(), "r", "a")
	require.Error(t, err)
}
