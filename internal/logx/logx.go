// Package logx holds pslog helpers shared by the server and the CLI.
package logx

import (
	"context"

	"pkt.systems/pslog"
)

type contextKey int

const sessionKey contextKey = iota

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// WithSession annotates the logger with the browser session id unless the
// context already carries the same marker.
func WithSession(ctx context.Context, sessionID string) pslog.Logger {
	log := pslog.Ctx(ctx)
	if sessionID == "" {
		return log
	}
	if current, ok := ctx.Value(sessionKey).(string); ok && current == sessionID {
		return log
	}
	return log.With("session", sessionID)
}

// WithAction annotates the logger with an editor action and the revision it
// produced.
func WithAction(log pslog.Logger, kind string, revision uint64) pslog.Logger {
	if kind != "" {
		log = log.With("action", kind)
	}
	if revision > 0 {
		log = log.With("revision", revision)
	}
	return log
}

// ContextWithSessionLogger attaches the logger and session marker to ctx.
func ContextWithSessionLogger(ctx context.Context, log pslog.Logger, sessionID string) context.Context {
	ctx = pslog.ContextWithLogger(ctx, log)
	if sessionID == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionKey, sessionID)
}
