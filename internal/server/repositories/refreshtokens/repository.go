// Package refreshtokens declares the repository contract for the refresh
// token rotation chain.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/storykeeper/internal/server/models"
)

// Repository issues, resolves and revokes refresh tokens. A token string is
// the lookup key; the row carries the owner and expiry.
type Repository interface {
	// Create stores a token for userID, expiring validity from now.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// Find resolves a token string to its row, common.ErrorNotFound when
	// the token was never issued or has been rotated away.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete revokes a token. Revoking an absent token is not an error.
	Delete(ctx context.Context, token string) error

	// DeleteExpired drops tokens past their expiry and reports how many
	// rows went away. The janitor calls this on a timer.
	DeleteExpired(ctx context.Context) (int64, error)
}
