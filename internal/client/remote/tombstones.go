package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/storykeeper/internal/api"
	"github.com/dmitrijs2005/storykeeper/internal/client/models"
)

// GetTombstones returns every remote tombstone for the account.
func (c *Client) GetTombstones(ctx context.Context) ([]models.Tombstone, error) {
	return c.getTombstones(ctx, nil)
}

// GetTombstonesByType returns the remote tombstones for one entity type.
func (c *Client) GetTombstonesByType(ctx context.Context, entityType models.EntityType) ([]models.Tombstone, error) {
	q := url.Values{"type": []string{string(entityType)}}
	return c.getTombstones(ctx, q)
}

func (c *Client) getTombstones(ctx context.Context, q url.Values) ([]models.Tombstone, error) {
	var raw []api.Tombstone
	if err := c.do(ctx, http.MethodGet, "/api/tombstones", q, nil, &raw); err != nil {
		return nil, err
	}
	result := make([]models.Tombstone, 0, len(raw))
	for _, t := range raw {
		result = append(result, models.Tombstone{
			EntityType: models.EntityType(t.EntityType),
			EntityID:   t.EntityID,
			ProjectID:  t.ProjectID,
			Timestamp:  t.Timestamp,
		})
	}
	return result, nil
}

// CleanupTombstones asks the backend to drop tombstones older than the given
// number of days and reports how many were removed.
func (c *Client) CleanupTombstones(ctx context.Context, olderThanDays int) (int, error) {
	req := &api.CleanupRequest{OlderThanDays: olderThanDays}
	var resp api.CleanupResponse
	if err := c.do(ctx, http.MethodPost, "/api/tombstones/cleanup", nil, req, &resp); err != nil {
		return 0, err
	}
	return resp.Removed, nil
}
