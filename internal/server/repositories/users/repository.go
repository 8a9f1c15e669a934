// Package users declares the server-side repository contract for account
// storage.
package users

import (
	"context"

	"github.com/dmitrijs2005/storykeeper/internal/server/models"
)

type Repository interface {
	// Create inserts a new account. A duplicate username yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetUserByLogin returns the account for the given username, or
	// common.ErrorNotFound.
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
}
