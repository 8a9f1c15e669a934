package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/storykeeper/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUploadURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/media/upload-url", r.URL.Path)
		writeJSON(w, http.StatusOK, api.UploadURLResponse{Key: "k1", URL: "https://bucket/put/k1"})
	}))
	defer srv.Close()

	key, url, err := NewClient(srv.URL).GetUploadURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "k1", key)
	assert.Equal(t, "https://bucket/put/k1", url)
}

func TestGetDownloadURL(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		writeJSON(w, http.StatusOK, api.DownloadURLResponse{URL: "https://bucket/get/k1"})
	}))
	defer srv.Close()

	url, err := NewClient(srv.URL).GetDownloadURL(context.Background(), "k1")
	require.NoError(t, err)
	assert.Equal(t, "k1", gotKey)
	assert.Equal(t, "https://bucket/get/k1", url)
}
