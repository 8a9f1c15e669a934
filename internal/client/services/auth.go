// Package services contains application services for the StoryKeeper client.
// This file defines the authentication service: register, login and the
// liveness probe behind the online-status watcher.
package services

import (
	"context"

	"github.com/dmitrijs2005/storykeeper/internal/client/remote"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register: create a new account on the server.
//   - Login: authenticate and store the session token pair on the client.
//   - Ping: check server liveness.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Register(ctx context.Context, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) error
	Ping(ctx context.Context) error
}

// authService is the concrete AuthService backed by the backend HTTP client.
type authService struct {
	client *remote.Client
}

// NewAuthService constructs an AuthService bound to the given API client.
func NewAuthService(client *remote.Client) AuthService {
	return &authService{client: client}
}

// Register creates a new account on the server. The password travels over
// the authenticated channel only; nothing is cached on the client.
func (a *authService) Register(ctx context.Context, username string, password []byte) error {
	return a.client.Register(ctx, username, string(password))
}

// Login exchanges credentials for a token pair held by the client for the
// rest of the session.
func (a *authService) Login(ctx context.Context, username string, password []byte) error {
	return a.client.Login(ctx, username, string(password))
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
