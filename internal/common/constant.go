// Package common contains shared constants and sentinel errors used across
// StoryKeeper components.
package common

// AuthHeaderName is the HTTP header carrying the bearer access token on
// authenticated requests.
const AuthHeaderName = "Authorization"

// AuthSchemePrefix is the scheme prefix expected in AuthHeaderName values.
const AuthSchemePrefix = "Bearer "
