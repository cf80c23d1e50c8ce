// Package logging provides the structured logger shared by the CLI and the
// fake careers API. Components take a Logger and never touch slog directly.
package logging

import "context"

// Logger writes leveled records with key/value attributes:
//
//	log.Info(ctx, "submitting application", "job_id", jobID, "request_id", id)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	// Warn is for failures the caller recovers from, such as a receipt that
	// could not be recorded after an accepted application.
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger carrying args on every record.
	With(args ...any) Logger
}
