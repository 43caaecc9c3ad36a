// Package logging is the structured logger used by the service. Callers pass
// key-value pairs after the message:
//
//	log.Info(ctx, "skill approved", "skill_id", id, "lecturer", email)
package logging

import "context"

type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always carries the given pairs.
	With(args ...any) Logger
}
