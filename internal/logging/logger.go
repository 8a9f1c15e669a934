// Package logging defines the structured logger the rest of the project
// depends on, so client and server code never import a logging backend
// directly.
package logging

import "context"

// Logger is a leveled, context-aware logger. The variadic args are
// alternating key-value pairs:
//
//	log.Info(ctx, "sync pass finished", "pushed", pushed, "pulled", pulled)
//
// With returns a child logger whose every record carries the given pairs;
// repositories use it to pin their entity type once instead of repeating it
// at each call site.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}
