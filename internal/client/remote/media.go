package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/storykeeper/internal/api"
)

// GetUploadURL asks the backend for a presigned PUT URL and the object key
// the asset will live under.
func (c *Client) GetUploadURL(ctx context.Context) (key string, uploadURL string, err error) {
	var resp api.UploadURLResponse
	if err := c.do(ctx, http.MethodGet, "/api/media/upload-url", nil, nil, &resp); err != nil {
		return "", "", err
	}
	return resp.Key, resp.URL, nil
}

// GetDownloadURL asks the backend for a presigned GET URL for an object key.
func (c *Client) GetDownloadURL(ctx context.Context, key string) (string, error) {
	q := url.Values{"key": []string{key}}
	var resp api.DownloadURLResponse
	if err := c.do(ctx, http.MethodGet, "/api/media/download-url", q, nil, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}
