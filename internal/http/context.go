package http

import (
	"context"
	"log/slog"

	"github.com/example/eventflow/internal/logging"
)

type contextKey string

const (
	sessionIDContextKey  contextKey = "session_id"
	attendeeIDContextKey contextKey = "attendee_id"
	speakerIDContextKey  contextKey = "speaker_id"
	roomIDContextKey     contextKey = "room_id"
)

// ContextWithSessionID injects the session identifier resolved from the request path.
func ContextWithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDContextKey, sessionID)
}

// SessionIDFromContext extracts a session identifier previously associated with the context.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDContextKey).(string)
	return id, ok
}

// ContextWithAttendeeID injects the attendee identifier resolved from the request path.
func ContextWithAttendeeID(ctx context.Context, attendeeID string) context.Context {
	return context.WithValue(ctx, attendeeIDContextKey, attendeeID)
}

// AttendeeIDFromContext extracts an attendee identifier previously associated with the context.
func AttendeeIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(attendeeIDContextKey).(string)
	return id, ok
}

// ContextWithSpeakerID injects the speaker identifier resolved from the request path.
func ContextWithSpeakerID(ctx context.Context, speakerID string) context.Context {
	return context.WithValue(ctx, speakerIDContextKey, speakerID)
}

// SpeakerIDFromContext extracts a speaker identifier previously associated with the context.
func SpeakerIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(speakerIDContextKey).(string)
	return id, ok
}

// ContextWithRoomID injects the room identifier resolved from the request path.
func ContextWithRoomID(ctx context.Context, roomID string) context.Context {
	return context.WithValue(ctx, roomIDContextKey, roomID)
}

// RoomIDFromContext extracts a room identifier previously associated with the context.
func RoomIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(roomIDContextKey).(string)
	return id, ok
}

// ContextWithLogger attaches a request-scoped logger to the context.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return logging.ContextWithLogger(ctx, logger)
}

// LoggerFromContext extracts a request-scoped logger, or nil.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx)
}
