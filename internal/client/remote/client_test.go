package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/storykeeper/internal/api"
	"github.com/dmitrijs2005/storykeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLogin_StoresTokenPair(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		var req api.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "bob", req.Login)
		writeJSON(w, http.StatusOK, api.TokenResponse{AccessToken: "a1", RefreshToken: "r1"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	require.False(t, c.Authenticated())

	err := c.Login(context.Background(), "bob", "secret-pass")
	require.NoError(t, err)
	assert.True(t, c.Authenticated())
	assert.Equal(t, "a1", c.accessToken)
	assert.Equal(t, "r1", c.refreshToken)
}

func TestRegister_LeavesSessionUnauthenticated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/register", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	require.NoError(t, c.Register(context.Background(), "bob", "secret-pass"))
	assert.False(t, c.Authenticated())
}

func TestRefresh_WithoutTokenPair(t *testing.T) {
	c := NewClient("http://127.0.0.1:1")
	err := c.Refresh(context.Background())
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestDo_SendsBearerHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get(common.AuthHeaderName)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.setTokens("a1", "r1")
	require.NoError(t, c.Ping(context.Background()))
	assert.Equal(t, "Bearer a1", gotAuth)
}

func TestDo_RetriesOnceAfterTokenExpiry(t *testing.T) {
	var pingCalls, refreshCalls int

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
		var req api.RefreshRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.RefreshToken != "r1" {
			writeJSON(w, http.StatusUnauthorized, api.ErrorResponse{Error: common.ErrorUnauthorized.Error()})
			return
		}
		writeJSON(w, http.StatusOK, api.TokenResponse{AccessToken: "fresh", RefreshToken: "r2"})
	})
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		pingCalls++
		if r.Header.Get(common.AuthHeaderName) != "Bearer fresh" {
			writeJSON(w, http.StatusUnauthorized, api.ErrorResponse{Error: common.ErrTokenExpired.Error()})
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(srv.URL)
	c.setTokens("stale", "r1")

	require.NoError(t, c.Ping(context.Background()))
	assert.Equal(t, 2, pingCalls)
	assert.Equal(t, 1, refreshCalls)
	assert.Equal(t, "fresh", c.accessToken)
	assert.Equal(t, "r2", c.refreshToken)
}

func TestDo_NoRetryWithoutRefreshToken(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeJSON(w, http.StatusUnauthorized, api.ErrorResponse{Error: common.ErrTokenExpired.Error()})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.Ping(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_MapsErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   api.ErrorResponse
		want   error
	}{
		{"not found", http.StatusNotFound, api.ErrorResponse{Error: common.ErrorNotFound.Error()}, common.ErrorNotFound},
		{"conflict", http.StatusConflict, api.ErrorResponse{Error: common.ErrorAlreadyExists.Error()}, common.ErrorAlreadyExists},
		{"unauthorized", http.StatusUnauthorized, api.ErrorResponse{Error: common.ErrorUnauthorized.Error()}, common.ErrorUnauthorized},
		{"validation", http.StatusBadRequest, api.ErrorResponse{Error: common.ErrorValidation.Error(), Message: "login is required"}, common.ErrorValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			}))
			defer srv.Close()

			c := NewClient(srv.URL)
			err := c.do(context.Background(), http.MethodGet, "/api/entities/note/x", nil, nil, nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPing_FailsWhenUnreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1")
	assert.Error(t, c.Ping(context.Background()))
}
